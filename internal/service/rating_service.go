package service

import (
	"context"
	"errors"

	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/repository"
	"github.com/studentbay/backend/pkg/apperror"
	"github.com/studentbay/backend/pkg/validation"
	"gorm.io/gorm"
)

type RatingService interface {
	Create(ctx context.Context, raterID string, in dto.CreateRatingRequest) (*dto.RatingResponse, []string, error)
	ListForUser(ctx context.Context, ratedUserID string) ([]dto.RatingResponse, *float64, error)
}

type ratingService struct {
	ratings repository.RatingRepository
	users   repository.UserRepository
	items   repository.ItemRepository
}

func NewRatingService(ratings repository.RatingRepository, users repository.UserRepository, items repository.ItemRepository) RatingService {
	return &ratingService{ratings: ratings, users: users, items: items}
}

// Create records a rating. A rater may rate a given user once per item;
// self-rating is rejected.
func (s *ratingService) Create(ctx context.Context, raterID string, in dto.CreateRatingRequest) (*dto.RatingResponse, []string, error) {
	if errs := validation.ValidateRating(in.RatedUserID, in.Rating, in.Comment); len(errs) > 0 {
		return nil, errs, nil
	}

	if in.RatedUserID == raterID {
		return nil, nil, apperror.BadRequest("you cannot rate yourself")
	}

	if _, err := s.users.FindByID(ctx, in.RatedUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFound("rated user not found")
		}
		return nil, nil, err
	}

	if in.ItemID != nil && *in.ItemID != "" {
		if _, err := s.items.FindByID(ctx, *in.ItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, apperror.NotFound("item not found")
			}
			return nil, nil, err
		}

		exists, err := s.ratings.ExistsForRaterAndItem(ctx, raterID, *in.ItemID)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			return nil, nil, apperror.Conflict("you have already rated this item")
		}
	}

	rating := &model.Rating{
		RatedUserID: in.RatedUserID,
		RaterUserID: raterID,
		ItemID:      in.ItemID,
		Rating:      in.Rating,
		Comment:     in.Comment,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, nil, err
	}

	resp := toRatingResponse(rating, nil)
	return &resp, nil, nil
}

func (s *ratingService) ListForUser(ctx context.Context, ratedUserID string) ([]dto.RatingResponse, *float64, error) {
	if _, err := s.users.FindByID(ctx, ratedUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.NotFound("user not found")
		}
		return nil, nil, err
	}

	ratings, err := s.ratings.ListByRatedUser(ctx, ratedUserID)
	if err != nil {
		return nil, nil, err
	}

	avg, err := s.ratings.AverageForUser(ctx, ratedUserID)
	if err != nil {
		return nil, nil, err
	}

	out := make([]dto.RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, toRatingResponse(r, r.RaterUser))
	}
	return out, roundRating(avg), nil
}

func toRatingResponse(r *model.Rating, rater *model.User) dto.RatingResponse {
	resp := dto.RatingResponse{
		ID:          r.ID,
		RatedUserID: r.RatedUserID,
		RaterUserID: r.RaterUserID,
		ItemID:      r.ItemID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
	}
	if rater != nil {
		resp.RaterName = rater.Name
	}
	return resp
}
