package repository

import (
	"context"
	"errors"
	"time"

	"github.com/studentbay/backend/internal/model"
	"gorm.io/gorm"
)

// UserStats are the derived trust signals shown on profiles.
type UserStats struct {
	RatingCount            int
	AverageRating          *float64
	SuccessfulTransactions int
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	FindByVerificationToken(ctx context.Context, token string, now time.Time) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, updates map[string]any) error
	SetVerificationToken(ctx context.Context, id, token string, expires time.Time) error
	MarkVerified(ctx context.Context, id string) error
	MemberType(ctx context.Context, id string) (string, error)
	Stats(ctx context.Context, id string) (UserStats, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) FindByVerificationToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("verification_token = ? AND verification_token_expires > ?", token, now).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *userRepository) SetVerificationToken(ctx context.Context, id, token string, expires time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"verification_token":         token,
			"verification_token_expires": expires,
		}).Error
}

func (r *userRepository) MarkVerified(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"verified":                   true,
			"verification_token":         nil,
			"verification_token_expires": nil,
		}).Error
}

func (r *userRepository) MemberType(ctx context.Context, id string) (string, error) {
	var memberType string
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Pluck("member_type", &memberType).Error
	if err != nil {
		return "", err
	}
	if memberType == "" {
		return "", gorm.ErrRecordNotFound
	}
	return memberType, nil
}

// Stats computes rating count, average rating and completed sales in a
// single aggregate join.
func (r *userRepository) Stats(ctx context.Context, id string) (UserStats, error) {
	var row struct {
		RatingCount            int
		AverageRating          *float64
		SuccessfulTransactions int
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(DISTINCT r.id) AS rating_count,
			AVG(r.rating) AS average_rating,
			COUNT(DISTINCT CASE WHEN i.status = 'SOLD' THEN i.id END) AS successful_transactions
		FROM users u
		LEFT JOIN ratings r ON r.rated_user_id = u.id
		LEFT JOIN items i ON i.seller_id = u.id
		WHERE u.id = ?`, id).Scan(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserStats{}, err
	}

	return UserStats{
		RatingCount:            row.RatingCount,
		AverageRating:          row.AverageRating,
		SuccessfulTransactions: row.SuccessfulTransactions,
	}, nil
}
