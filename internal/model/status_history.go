package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemStatusHistory is the append-only audit trail of status
// transitions. One row per transition, never mutated.
type ItemStatusHistory struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	ItemID    string  `gorm:"size:36;not null;index" json:"itemId"`
	Item      *Item   `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
	OldStatus *string `gorm:"size:20" json:"oldStatus"`
	NewStatus string  `gorm:"size:20;not null" json:"newStatus"`
	BuyerID   *string `gorm:"size:36" json:"buyerId"`
	Buyer     *User   `gorm:"foreignKey:BuyerID;constraint:OnDelete:SET NULL" json:"-"`
	// Display-name snapshot so the audit row survives buyer renames.
	BuyerName *string `gorm:"size:100" json:"buyerName"`
	ChangedBy string  `gorm:"size:36;not null" json:"changedBy"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ItemStatusHistory) TableName() string { return "item_status_history" }

func (h *ItemStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
