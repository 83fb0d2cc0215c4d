package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studentbay/backend/internal/middleware"
	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/repository"
	"github.com/studentbay/backend/internal/service"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type fixture struct {
	router *gin.Engine
	db     *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)

	itemSvc := service.NewItemService(itemRepo, userRepo, ratingRepo, historyRepo)
	ratingSvc := service.NewRatingService(ratingRepo, userRepo, itemRepo)
	watchlistSvc := service.NewWatchlistService(watchlistRepo, itemRepo)

	itemHandler := NewItemHandler(itemSvc)
	ratingHandler := NewRatingHandler(ratingSvc)
	watchlistHandler := NewWatchlistHandler(watchlistSvc)

	auth := middleware.NewAuthMiddleware(userRepo, testSecret)

	router := gin.New()
	api := router.Group("/api")

	items := api.Group("/items")
	items.GET("", itemHandler.List)
	items.GET("/search", itemHandler.Search)
	items.GET("/featured", itemHandler.Featured)
	items.GET("/:id", itemHandler.Detail)
	items.POST("/:id/view", itemHandler.RecordView)
	items.POST("", auth.RequireAuth(), itemHandler.Create)
	items.PUT("/:id", auth.RequireAuth(), itemHandler.Update)
	items.DELETE("/:id", auth.RequireAuth(), itemHandler.Delete)
	items.GET("/:id/history", auth.RequireAuth(), itemHandler.History)

	ratings := api.Group("/ratings")
	ratings.GET("", ratingHandler.ListForUser)
	ratings.POST("", auth.RequireAuth(), ratingHandler.Create)

	watchlist := api.Group("/watchlist")
	watchlist.Use(auth.RequireAuth())
	watchlist.GET("", watchlistHandler.List)
	watchlist.POST("/:itemId", watchlistHandler.Toggle)
	watchlist.DELETE("/:itemId", watchlistHandler.Remove)

	return &fixture{router: router, db: db}
}

func (f *fixture) seedUser(t *testing.T, email string) *model.User {
	t.Helper()

	user := &model.User{Email: email, PasswordHash: "$2a$10$hash", MemberType: model.MemberTypeStudent, Verified: true}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *fixture) token(t *testing.T, user *model.User) string {
	t.Helper()

	token, err := middleware.GenerateToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (f *fixture) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (f *fixture) createItem(t *testing.T, token string, payload map[string]any) string {
	t.Helper()

	w := f.request(t, http.MethodPost, "/api/items", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["itemId"].(string)
}
