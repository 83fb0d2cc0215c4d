package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is feedback from one user about another, optionally tied to an
// item. Ratings are append-only.
type Rating struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	RatedUserID string  `gorm:"size:36;not null;index" json:"ratedUserId"`
	RatedUser   *User   `gorm:"foreignKey:RatedUserID;constraint:OnDelete:CASCADE" json:"-"`
	RaterUserID string  `gorm:"size:36;not null;index" json:"raterUserId"`
	RaterUser   *User   `gorm:"foreignKey:RaterUserID;constraint:OnDelete:CASCADE" json:"-"`
	ItemID      *string `gorm:"size:36" json:"itemId"`
	Item        *Item   `gorm:"foreignKey:ItemID;constraint:OnDelete:SET NULL" json:"-"`
	Rating      int     `gorm:"not null" json:"rating"`
	Comment     *string `gorm:"size:1000" json:"comment"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
