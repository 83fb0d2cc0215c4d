package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/studentbay/backend/internal/config"
	"github.com/studentbay/backend/internal/handler"
	"github.com/studentbay/backend/internal/middleware"
	"github.com/studentbay/backend/internal/repository"
	"github.com/studentbay/backend/internal/service"
	"github.com/studentbay/backend/pkg/pending"
	"github.com/studentbay/backend/pkg/storage"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func NewServer(cfg *config.Config, db *gorm.DB, pendingStore pending.Store, imageStorage storage.ImageStorage) *Server {
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)

	authSvc := service.NewAuthService(userRepo, pendingStore, cfg.JWTSecret, cfg.JWTExpiresIn)
	userSvc := service.NewUserService(userRepo)
	itemSvc := service.NewItemService(itemRepo, userRepo, ratingRepo, historyRepo)
	ratingSvc := service.NewRatingService(ratingRepo, userRepo, itemRepo)
	watchlistSvc := service.NewWatchlistService(watchlistRepo, itemRepo)

	healthHandler := handler.NewHealthHandler()
	userHandler := handler.NewUserHandler(authSvc, userSvc)
	itemHandler := handler.NewItemHandler(itemSvc)
	uploadHandler := handler.NewUploadHandler(imageStorage)
	ratingHandler := handler.NewRatingHandler(ratingSvc)
	watchlistHandler := handler.NewWatchlistHandler(watchlistSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
	}))
	router.Use(gin.Logger())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "route not found"})
	})

	// Locally stored images are served straight off disk.
	if cfg.StorageDriver == "local" {
		router.Static("/uploads", cfg.UploadDir)
	}

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	api.GET("/health", healthHandler.Check)

	users := api.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)

		verification := users.Group("/verification")
		{
			verification.POST("/verify", userHandler.Verify)
			verification.POST("/skip", userHandler.SkipVerification)
			verification.POST("/send", authMiddleware.RequireAuth(), userHandler.SendVerification)
			verification.GET("/status", authMiddleware.RequireAuth(), userHandler.VerificationStatus)
		}

		users.GET("/me", authMiddleware.RequireAuth(), userHandler.Me)
		users.GET("/profile", authMiddleware.OptionalAuth(), userHandler.Profile)
		users.PUT("/profile", authMiddleware.RequireAuth(), userHandler.UpdateProfile)
	}

	items := api.Group("/items")
	{
		items.GET("", itemHandler.List)
		items.GET("/search", itemHandler.Search)
		items.GET("/featured", itemHandler.Featured)
		items.GET("/:id", itemHandler.Detail)
		items.POST("/:id/view", itemHandler.RecordView)

		items.POST("", authMiddleware.RequireAuth(), itemHandler.Create)
		items.PUT("/:id", authMiddleware.RequireAuth(), itemHandler.Update)
		items.DELETE("/:id", authMiddleware.RequireAuth(), itemHandler.Delete)
		items.GET("/:id/history", authMiddleware.RequireAuth(), itemHandler.History)
	}

	ratings := api.Group("/ratings")
	{
		ratings.GET("", ratingHandler.ListForUser)
		ratings.POST("", authMiddleware.RequireAuth(), ratingHandler.Create)
	}

	watchlist := api.Group("/watchlist")
	watchlist.Use(authMiddleware.RequireAuth())
	{
		watchlist.GET("", watchlistHandler.List)
		watchlist.POST("/:itemId", watchlistHandler.Toggle)
		watchlist.DELETE("/:itemId", watchlistHandler.Remove)
	}

	upload := api.Group("/upload")
	upload.Use(authMiddleware.RequireAuth())
	{
		upload.POST("/image", uploadHandler.UploadSingle)
		upload.POST("/images", uploadHandler.UploadMultiple)
	}

	return &Server{engine: router, db: db}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
