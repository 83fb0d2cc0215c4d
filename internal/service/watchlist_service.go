package service

import (
	"context"
	"errors"

	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/repository"
	"github.com/studentbay/backend/pkg/apperror"
	"gorm.io/gorm"
)

type WatchlistService interface {
	Toggle(ctx context.Context, userID, itemID string) (*dto.WatchToggleResponse, error)
	Remove(ctx context.Context, userID, itemID string) error
	List(ctx context.Context, userID string) ([]dto.WatchlistEntryResponse, error)
}

type watchlistService struct {
	watchlist repository.WatchlistRepository
	items     repository.ItemRepository
}

func NewWatchlistService(watchlist repository.WatchlistRepository, items repository.ItemRepository) WatchlistService {
	return &watchlistService{watchlist: watchlist, items: items}
}

// Toggle bookmarks the item, or removes the bookmark if one exists.
func (s *watchlistService) Toggle(ctx context.Context, userID, itemID string) (*dto.WatchToggleResponse, error) {
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("item not found")
		}
		return nil, err
	}

	_, err := s.watchlist.Find(ctx, userID, itemID)
	switch {
	case err == nil:
		if err := s.watchlist.Delete(ctx, userID, itemID); err != nil {
			return nil, err
		}
		return &dto.WatchToggleResponse{ItemID: itemID, Watching: false}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry := &model.WatchlistEntry{UserID: userID, ItemID: itemID}
		if err := s.watchlist.Create(ctx, entry); err != nil {
			return nil, err
		}
		return &dto.WatchToggleResponse{ItemID: itemID, Watching: true}, nil
	default:
		return nil, err
	}
}

func (s *watchlistService) Remove(ctx context.Context, userID, itemID string) error {
	if _, err := s.watchlist.Find(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("item is not on your watchlist")
		}
		return err
	}
	return s.watchlist.Delete(ctx, userID, itemID)
}

func (s *watchlistService) List(ctx context.Context, userID string) ([]dto.WatchlistEntryResponse, error) {
	entries, err := s.watchlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.WatchlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp := dto.WatchlistEntryResponse{
			ID:        entry.ID,
			ItemID:    entry.ItemID,
			CreatedAt: entry.CreatedAt,
		}
		if entry.Item != nil {
			resp.Item = toItemResponse(entry.Item)
		}
		out = append(out, resp)
	}
	return out, nil
}
