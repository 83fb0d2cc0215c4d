package main

import (
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/studentbay/backend/internal/config"
	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/server"
	"github.com/studentbay/backend/pkg/database"
	"github.com/studentbay/backend/pkg/pending"
	"github.com/studentbay/backend/pkg/storage"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	pendingStore, err := newPendingStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize pending registration store: %v", err)
	}

	imageStorage, err := newImageStorage(cfg)
	if err != nil {
		log.Fatalf("failed to initialize image storage: %v", err)
	}

	srv := server.NewServer(cfg, db, pendingStore, imageStorage)

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.Rating{},
		&model.WatchlistEntry{},
		&model.ItemStatusHistory{},
	)
}

// newPendingStore keeps transient registrations in redis when one is
// configured, falling back to in-process memory.
func newPendingStore(cfg *config.Config) (pending.Store, error) {
	if cfg.RedisURL == "" {
		return pending.NewMemoryStore(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return pending.NewRedisStore(redis.NewClient(opts)), nil
}

func newImageStorage(cfg *config.Config) (storage.ImageStorage, error) {
	if cfg.StorageDriver == "cloudinary" {
		return storage.NewCloudinaryStorage()
	}
	return storage.NewLocalStorage(cfg.UploadDir, "/uploads")
}
