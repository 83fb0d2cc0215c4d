package repository

import (
	"testing"
	"time"

	"github.com/studentbay/backend/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.Rating{},
		&model.WatchlistEntry{},
		&model.ItemStatusHistory{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:        email,
		PasswordHash: "$2a$10$hash",
		MemberType:   model.MemberTypeStudent,
		Verified:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedItem(t *testing.T, db *gorm.DB, sellerID, title, category string, price float64, status string) *model.Item {
	t.Helper()

	item := &model.Item{
		SellerID:  sellerID,
		Title:     title,
		Category:  category,
		Price:     price,
		Condition: "GOOD",
		Status:    status,
		Images:    "[]",
		PostDate:  time.Now(),
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
