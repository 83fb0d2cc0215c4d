package repository

import (
	"context"
	"testing"
	"time"

	"github.com/studentbay/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepository_SearchExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seller := seedUser(t, db, "seller@state.edu")

	seedItem(t, db, seller.ID, "Calculus Textbook", model.CategoryTextbook, 40, model.StatusAvailable)
	seedItem(t, db, seller.ID, "Old Calculus Textbook", model.CategoryTextbook, 25, model.StatusDeleted)

	items, total, err := repo.Search(context.Background(), SearchQuery{Keyword: "Calculus", Limit: 10})
	require.NoError(t, err)

	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Calculus Textbook", items[0].Title)
}

func TestItemRepository_SearchFiltersAndSort(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seller := seedUser(t, db, "seller@state.edu")

	seedItem(t, db, seller.ID, "Physics Vol 1", model.CategoryTextbook, 30, model.StatusAvailable)
	seedItem(t, db, seller.ID, "Physics Vol 2", model.CategoryTextbook, 50, model.StatusAvailable)
	seedItem(t, db, seller.ID, "Physics Lamp", model.CategoryFurniture, 10, model.StatusAvailable)

	minPrice := 20.0
	items, total, err := repo.Search(context.Background(), SearchQuery{
		Keyword:    "Physics",
		Categories: []string{model.CategoryTextbook},
		MinPrice:   &minPrice,
		SortBy:     "price_asc",
		Limit:      10,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Physics Vol 1", items[0].Title)
	assert.Equal(t, "Physics Vol 2", items[1].Title)
}

func TestItemRepository_SearchPaginationTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seller := seedUser(t, db, "seller@state.edu")

	for _, title := range []string{"Algebra I", "Algebra II", "Algebra III", "Algebra IV", "Algebra V"} {
		seedItem(t, db, seller.ID, title, model.CategoryTextbook, 20, model.StatusAvailable)
	}

	items, total, err := repo.Search(context.Background(), SearchQuery{
		Keyword: "Algebra",
		SortBy:  "price_asc",
		Offset:  4,
		Limit:   2,
	})
	require.NoError(t, err)

	// Total reflects the full match set, not the returned page.
	assert.EqualValues(t, 5, total)
	assert.Len(t, items, 1)
}

func TestItemRepository_ListStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seller := seedUser(t, db, "seller@state.edu")

	seedItem(t, db, seller.ID, "Desk", model.CategoryFurniture, 60, model.StatusAvailable)
	seedItem(t, db, seller.ID, "Chair", model.CategoryFurniture, 20, model.StatusSold)
	seedItem(t, db, seller.ID, "Shelf", model.CategoryFurniture, 30, model.StatusDeleted)

	// Default view hides soft-deleted rows.
	items, err := repo.List(context.Background(), ListQuery{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Asking for DELETED explicitly surfaces them.
	items, err = repo.List(context.Background(), ListQuery{Status: model.StatusDeleted, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Shelf", items[0].Title)
}

func TestItemRepository_FeaturedOrdersByViews(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seller := seedUser(t, db, "seller@state.edu")

	popular := seedItem(t, db, seller.ID, "Popular", model.CategoryTextbook, 10, model.StatusAvailable)
	require.NoError(t, db.Model(popular).UpdateColumn("view_count", 50).Error)
	seedItem(t, db, seller.ID, "Quiet", model.CategoryTextbook, 10, model.StatusAvailable)
	seedItem(t, db, seller.ID, "Sold Out", model.CategoryTextbook, 10, model.StatusSold)

	items, err := repo.Featured(context.Background(), 8)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Popular", items[0].Title)
}

func TestItemRepository_IncrementViewCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seller := seedUser(t, db, "seller@state.edu")
	item := seedItem(t, db, seller.ID, "Desk", model.CategoryFurniture, 60, model.StatusAvailable)

	ctx := context.Background()
	require.NoError(t, repo.IncrementViewCount(ctx, item.ID))
	require.NoError(t, repo.IncrementViewCount(ctx, item.ID))

	got, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewCount)

	// UpdatedAt is untouched: views are not content edits.
	assert.WithinDuration(t, item.UpdatedAt, got.UpdatedAt, time.Second)
}

func TestItemRepository_UpdatePartial(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	seller := seedUser(t, db, "seller@state.edu")
	item := seedItem(t, db, seller.ID, "Desk", model.CategoryFurniture, 60, model.StatusAvailable)

	ctx := context.Background()
	require.NoError(t, repo.Update(ctx, item.ID, map[string]any{"price": 45.0, "status": model.StatusReserved}))

	got, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 45.0, got.Price)
	assert.Equal(t, model.StatusReserved, got.Status)
	assert.Equal(t, "Desk", got.Title)
}
