package service

import (
	"context"
	"errors"
	"strings"

	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/repository"
	"github.com/studentbay/backend/pkg/apperror"
	"github.com/studentbay/backend/pkg/validation"
	"gorm.io/gorm"
)

type UserService interface {
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	Profile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, in validation.ProfileUpdateInput) ([]string, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return s.profileWithStats(ctx, userID, false)
}

func (s *userService) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return s.profileWithStats(ctx, userID, true)
}

func (s *userService) profileWithStats(ctx context.Context, userID string, withCompleteness bool) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}

	stats, err := s.users.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	resp.SuccessfulTransactions = &stats.SuccessfulTransactions
	resp.RatingCount = &stats.RatingCount
	resp.AverageRating = roundRating(stats.AverageRating)

	if withCompleteness {
		completeness := profileCompleteness(user)
		resp.ProfileCompleteness = &completeness
	}

	return resp, nil
}

// profileCompleteness is the share of populated optional profile fields
// among {name, avatar, bio, university, enrollment year}, in percent.
func profileCompleteness(user *model.User) int {
	completeness := 0
	for _, populated := range []bool{
		user.Name != nil && *user.Name != "",
		user.Avatar != nil && *user.Avatar != "",
		user.Bio != nil && *user.Bio != "",
		user.University != nil && *user.University != "",
		user.EnrollmentYear != nil,
	} {
		if populated {
			completeness += 20
		}
	}
	return completeness
}

// UpdateProfile applies a partial update: nil fields are untouched, and
// an empty name is treated as "no change".
func (s *userService) UpdateProfile(ctx context.Context, userID string, in validation.ProfileUpdateInput) ([]string, error) {
	if errs := validation.ValidateProfileUpdate(in); len(errs) > 0 {
		return errs, nil
	}

	updates := map[string]any{}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Avatar != nil {
		updates["avatar"] = *in.Avatar
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	if in.University != nil {
		updates["university"] = *in.University
	}
	if in.EnrollmentYear != nil {
		updates["enrollment_year"] = *in.EnrollmentYear
	}

	if len(updates) == 0 {
		return nil, nil
	}

	if err := s.users.UpdateProfile(ctx, userID, updates); err != nil {
		return nil, err
	}
	return nil, nil
}
