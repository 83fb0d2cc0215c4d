package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studentbay/backend/internal/middleware"
	"github.com/studentbay/backend/internal/repository"
	"github.com/studentbay/backend/internal/service"
	"github.com/studentbay/backend/pkg/pending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	base := newFixture(t)

	userRepo := repository.NewUserRepository(base.db)
	authSvc := service.NewAuthService(userRepo, pending.NewMemoryStore(), testSecret, 7*24*time.Hour)
	userSvc := service.NewUserService(userRepo)
	userHandler := NewUserHandler(authSvc, userSvc)

	auth := middleware.NewAuthMiddleware(userRepo, testSecret)

	api := base.router.Group("/api")
	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/logout", auth.RequireAuth(), userHandler.Logout)
	users.POST("/verification/verify", userHandler.Verify)
	users.POST("/verification/skip", userHandler.SkipVerification)
	users.GET("/verification/status", auth.RequireAuth(), userHandler.VerificationStatus)
	users.GET("/me", auth.RequireAuth(), userHandler.Me)
	users.GET("/profile", auth.OptionalAuth(), userHandler.Profile)
	users.PUT("/profile", auth.RequireAuth(), userHandler.UpdateProfile)

	return base
}

func TestAuthFlow_RegisterVerifyLogin(t *testing.T) {
	f := newAuthRouter(t)

	w := f.request(t, http.MethodPost, "/api/users/register", "", map[string]any{
		"email":      "jamie@state.edu",
		"password":   "secret123",
		"memberType": "STUDENT",
		"name":       "Jamie",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	tempID := body["tempId"].(string)
	assert.Equal(t, true, body["requiresVerification"])

	// No login before verification creates the account.
	w = f.request(t, http.MethodPost, "/api/users/login", "", map[string]any{
		"email": "jamie@state.edu", "password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.request(t, http.MethodPost, "/api/users/verification/verify", "", map[string]any{
		"tempId": tempID,
		"token":  "direct_verification",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.request(t, http.MethodPost, "/api/users/login", "", map[string]any{
		"email": "jamie@state.edu", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]any)
	token := data["token"].(string)
	assert.NotEmpty(t, token)

	w = f.request(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "jamie@state.edu", me["email"])
	assert.Equal(t, true, me["verified"])
}

func TestRegister_ValidationErrors(t *testing.T) {
	f := newAuthRouter(t)

	w := f.request(t, http.MethodPost, "/api/users/register", "", map[string]any{
		"email":      "jamie@gmail.com",
		"password":   "x",
		"memberType": "STUDENT",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "validation failed", body["message"])
	assert.NotEmpty(t, body["errors"])
}

func TestSkipVerification_LeavesUserUnverified(t *testing.T) {
	f := newAuthRouter(t)

	w := f.request(t, http.MethodPost, "/api/users/register", "", map[string]any{
		"email":      "jamie@state.edu",
		"password":   "secret123",
		"memberType": "ASSOCIATE",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	tempID := decodeBody(t, w)["tempId"].(string)

	w = f.request(t, http.MethodPost, "/api/users/verification/skip", "", map[string]any{"tempId": tempID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.request(t, http.MethodPost, "/api/users/login", "", map[string]any{
		"email": "jamie@state.edu", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeBody(t, w)["data"].(map[string]any)["token"].(string)

	w = f.request(t, http.MethodGet, "/api/users/verification/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, false, status["verified"])
}

func TestPublicProfile_HasStatsAndCompleteness(t *testing.T) {
	f := newAuthRouter(t)
	user := f.seedUser(t, "seller@state.edu")

	w := f.request(t, http.MethodGet, "/api/users/profile?userId="+user.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	profile := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "seller@state.edu", profile["email"])
	assert.Contains(t, profile, "profileCompleteness")
	assert.Contains(t, profile, "ratingCount")
}

func TestUpdateProfile_RoundTrip(t *testing.T) {
	f := newAuthRouter(t)
	user := f.seedUser(t, "jamie@state.edu")
	token := f.token(t, user)

	w := f.request(t, http.MethodPut, "/api/users/profile", token, map[string]any{
		"name":       "Jamie L",
		"bio":        "Textbooks and furniture",
		"university": "State University",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.request(t, http.MethodGet, "/api/users/me", token, nil)
	me := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "Jamie L", me["name"])
	assert.Equal(t, "State University", me["university"])
}
