package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchlistEntry is a user's bookmark of an item. A user can watch an
// item at most once.
type WatchlistEntry struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;not null;uniqueIndex:idx_watchlists_user_item" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ItemID string `gorm:"size:36;not null;uniqueIndex:idx_watchlists_user_item" json:"itemId"`
	Item   *Item  `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (WatchlistEntry) TableName() string { return "watchlists" }

func (w *WatchlistEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
