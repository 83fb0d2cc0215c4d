package repository

import (
	"context"

	"github.com/studentbay/backend/internal/model"
	"gorm.io/gorm"
)

type StatusHistoryRepository interface {
	Create(ctx context.Context, entry *model.ItemStatusHistory) error
	ListByItem(ctx context.Context, itemID string) ([]*model.ItemStatusHistory, error)
}

type statusHistoryRepository struct {
	db *gorm.DB
}

func NewStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

func (r *statusHistoryRepository) Create(ctx context.Context, entry *model.ItemStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *statusHistoryRepository) ListByItem(ctx context.Context, itemID string) ([]*model.ItemStatusHistory, error) {
	var entries []*model.ItemStatusHistory
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
