package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRatingFixture(t *testing.T) (RatingService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	items := repository.NewItemRepository(db)
	ratings := repository.NewRatingRepository(db)
	return NewRatingService(ratings, users, items), db
}

func seedRatingUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{Email: email, PasswordHash: "$2a$10$hash", MemberType: model.MemberTypeStudent}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRatingService_Create(t *testing.T) {
	svc, db := newRatingFixture(t)
	ctx := context.Background()

	seller := seedRatingUser(t, db, "seller@state.edu")
	buyer := seedRatingUser(t, db, "buyer@state.edu")

	comment := "smooth handoff"
	rating, verrs, err := svc.Create(ctx, buyer.ID, dto.CreateRatingRequest{
		RatedUserID: seller.ID,
		Rating:      5,
		Comment:     &comment,
	})
	require.NoError(t, err)
	require.Empty(t, verrs)
	assert.Equal(t, seller.ID, rating.RatedUserID)
	assert.Equal(t, buyer.ID, rating.RaterUserID)
}

func TestRatingService_NoSelfRating(t *testing.T) {
	svc, db := newRatingFixture(t)
	user := seedRatingUser(t, db, "jamie@state.edu")

	_, verrs, err := svc.Create(context.Background(), user.ID, dto.CreateRatingRequest{
		RatedUserID: user.ID,
		Rating:      5,
	})
	require.Empty(t, verrs)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
}

func TestRatingService_UnknownRatedUser(t *testing.T) {
	svc, db := newRatingFixture(t)
	buyer := seedRatingUser(t, db, "buyer@state.edu")

	_, _, err := svc.Create(context.Background(), buyer.ID, dto.CreateRatingRequest{
		RatedUserID: "missing",
		Rating:      3,
	})
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestRatingService_DuplicatePerItemConflicts(t *testing.T) {
	svc, db := newRatingFixture(t)
	ctx := context.Background()

	seller := seedRatingUser(t, db, "seller@state.edu")
	buyer := seedRatingUser(t, db, "buyer@state.edu")

	item := &model.Item{
		SellerID: seller.ID, Title: "Desk", Category: model.CategoryFurniture,
		Price: 60, Condition: "GOOD", Status: model.StatusSold, Images: "[]",
	}
	require.NoError(t, db.Create(item).Error)

	_, verrs, err := svc.Create(ctx, buyer.ID, dto.CreateRatingRequest{
		RatedUserID: seller.ID, ItemID: &item.ID, Rating: 5,
	})
	require.NoError(t, err)
	require.Empty(t, verrs)

	_, _, err = svc.Create(ctx, buyer.ID, dto.CreateRatingRequest{
		RatedUserID: seller.ID, ItemID: &item.ID, Rating: 1,
	})
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
}

func TestRatingService_ListForUser(t *testing.T) {
	svc, db := newRatingFixture(t)
	ctx := context.Background()

	seller := seedRatingUser(t, db, "seller@state.edu")
	buyer1 := seedRatingUser(t, db, "buyer1@state.edu")
	buyer2 := seedRatingUser(t, db, "buyer2@state.edu")

	_, _, err := svc.Create(ctx, buyer1.ID, dto.CreateRatingRequest{RatedUserID: seller.ID, Rating: 4})
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, buyer2.ID, dto.CreateRatingRequest{RatedUserID: seller.ID, Rating: 5})
	require.NoError(t, err)

	ratings, avg, err := svc.ListForUser(ctx, seller.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 2)
	require.NotNil(t, avg)
	assert.InDelta(t, 4.5, *avg, 0.001)
}
