package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/repository"
	"github.com/studentbay/backend/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserFixture(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	return NewUserService(repository.NewUserRepository(db)), db
}

func TestUserService_MeIncludesStats(t *testing.T) {
	svc, db := newUserFixture(t)
	ctx := context.Background()

	seller := seedRatingUser(t, db, "seller@state.edu")
	rater := seedRatingUser(t, db, "rater@state.edu")

	require.NoError(t, db.Create(&model.Item{
		SellerID: seller.ID, Title: "Sold Desk", Category: model.CategoryFurniture,
		Price: 60, Condition: "GOOD", Status: model.StatusSold, Images: "[]",
	}).Error)
	require.NoError(t, db.Create(&model.Rating{RatedUserID: seller.ID, RaterUserID: rater.ID, Rating: 4}).Error)

	me, err := svc.Me(ctx, seller.ID)
	require.NoError(t, err)

	require.NotNil(t, me.RatingCount)
	assert.Equal(t, 1, *me.RatingCount)
	require.NotNil(t, me.AverageRating)
	assert.Equal(t, 4.0, *me.AverageRating)
	require.NotNil(t, me.SuccessfulTransactions)
	assert.Equal(t, 1, *me.SuccessfulTransactions)
	assert.Nil(t, me.ProfileCompleteness)
}

func TestUserService_ProfileCompleteness(t *testing.T) {
	svc, db := newUserFixture(t)
	ctx := context.Background()

	user := seedRatingUser(t, db, "jamie@state.edu")

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.ProfileCompleteness)
	assert.Equal(t, 0, *profile.ProfileCompleteness)

	name := "Jamie"
	bio := "Selling my old textbooks"
	year := 2023
	verrs, err := svc.UpdateProfile(ctx, user.ID, validation.ProfileUpdateInput{
		Name: &name, Bio: &bio, EnrollmentYear: &year,
	})
	require.NoError(t, err)
	require.Empty(t, verrs)

	profile, err = svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, *profile.ProfileCompleteness)
}

func TestUserService_UpdateProfileEmptyNameIgnored(t *testing.T) {
	svc, db := newUserFixture(t)
	ctx := context.Background()

	user := seedRatingUser(t, db, "jamie@state.edu")
	name := "Jamie"
	_, err := svc.UpdateProfile(ctx, user.ID, validation.ProfileUpdateInput{Name: &name})
	require.NoError(t, err)

	empty := ""
	_, err = svc.UpdateProfile(ctx, user.ID, validation.ProfileUpdateInput{Name: &empty})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Name)
	assert.Equal(t, "Jamie", *profile.Name)
}

func TestUserService_UpdateProfileValidation(t *testing.T) {
	svc, db := newUserFixture(t)
	user := seedRatingUser(t, db, "jamie@state.edu")

	year := 1800
	verrs, err := svc.UpdateProfile(context.Background(), user.ID, validation.ProfileUpdateInput{EnrollmentYear: &year})
	require.NoError(t, err)
	assert.NotEmpty(t, verrs)
}

func TestUserService_UnknownUser(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Me(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}
