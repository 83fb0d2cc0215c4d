package repository

import (
	"context"

	"github.com/studentbay/backend/internal/model"
	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	ListByRatedUser(ctx context.Context, userID string) ([]*model.Rating, error)
	ExistsForRaterAndItem(ctx context.Context, raterID, itemID string) (bool, error)
	AverageForUser(ctx context.Context, userID string) (*float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) ListByRatedUser(ctx context.Context, userID string) ([]*model.Rating, error) {
	var ratings []*model.Rating
	if err := r.db.WithContext(ctx).
		Preload("RaterUser").
		Where("rated_user_id = ?", userID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) ExistsForRaterAndItem(ctx context.Context, raterID, itemID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("rater_user_id = ? AND item_id = ?", raterID, itemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ratingRepository) AverageForUser(ctx context.Context, userID string) (*float64, error) {
	var avg *float64
	if err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("rated_user_id = ?", userID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	return avg, nil
}
