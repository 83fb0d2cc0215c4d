package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newWatchlistFixture(t *testing.T) (WatchlistService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	items := repository.NewItemRepository(db)
	watchlist := repository.NewWatchlistRepository(db)
	return NewWatchlistService(watchlist, items), db
}

func TestWatchlistService_ToggleOnOff(t *testing.T) {
	svc, db := newWatchlistFixture(t)
	ctx := context.Background()

	watcher := seedRatingUser(t, db, "watcher@state.edu")
	seller := seedRatingUser(t, db, "seller@state.edu")
	item := &model.Item{
		SellerID: seller.ID, Title: "Desk", Category: model.CategoryFurniture,
		Price: 60, Condition: "GOOD", Status: model.StatusAvailable, Images: "[]",
	}
	require.NoError(t, db.Create(item).Error)

	result, err := svc.Toggle(ctx, watcher.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, result.Watching)

	entries, err := svc.List(ctx, watcher.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Desk", entries[0].Item.Title)

	// Toggling again removes the bookmark.
	result, err = svc.Toggle(ctx, watcher.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, result.Watching)

	entries, err = svc.List(ctx, watcher.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWatchlistService_ToggleUnknownItem(t *testing.T) {
	svc, db := newWatchlistFixture(t)
	watcher := seedRatingUser(t, db, "watcher@state.edu")

	_, err := svc.Toggle(context.Background(), watcher.ID, "missing")
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestWatchlistService_RemoveAbsentEntry(t *testing.T) {
	svc, db := newWatchlistFixture(t)
	watcher := seedRatingUser(t, db, "watcher@state.edu")

	err := svc.Remove(context.Background(), watcher.ID, "missing")
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}
