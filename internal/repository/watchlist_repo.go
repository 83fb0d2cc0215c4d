package repository

import (
	"context"

	"github.com/studentbay/backend/internal/model"
	"gorm.io/gorm"
)

type WatchlistRepository interface {
	Find(ctx context.Context, userID, itemID string) (*model.WatchlistEntry, error)
	Create(ctx context.Context, entry *model.WatchlistEntry) error
	Delete(ctx context.Context, userID, itemID string) error
	ListByUser(ctx context.Context, userID string) ([]*model.WatchlistEntry, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Find(ctx context.Context, userID, itemID string) (*model.WatchlistEntry, error) {
	var entry model.WatchlistEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *watchlistRepository) Create(ctx context.Context, entry *model.WatchlistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *watchlistRepository) Delete(ctx context.Context, userID, itemID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&model.WatchlistEntry{}).Error
}

func (r *watchlistRepository) ListByUser(ctx context.Context, userID string) ([]*model.WatchlistEntry, error) {
	var entries []*model.WatchlistEntry
	if err := r.db.WithContext(ctx).
		Preload("Item").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
