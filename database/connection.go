package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Ananth-NQI/billpe-backend/internal/config"
	"github.com/Ananth-NQI/billpe-backend/internal/storage"
)

// Connect opens the SQL database selected by cfg.Driver
func Connect(cfg config.StorageConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(postgresDSN(cfg))
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		log.Printf("Opening SQLite database at %s", cfg.SQLitePath)
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver %q is not a SQL database", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully!")
	return db, nil
}

func postgresDSN(cfg config.StorageConfig) string {
	if cfg.InstanceConnectionName != "" {
		// Production: Cloud SQL via Unix socket
		log.Printf("Connecting to Cloud SQL via socket: %s", cfg.InstanceConnectionName)
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceConnectionName, cfg.DBUser, cfg.DBPass, cfg.DBName)
	}

	log.Println("Connecting to PostgreSQL over TCP")
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBPort)
}

// OpenStore builds the key-value store for the configured driver
func OpenStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Println("⚠️  Using in-memory storage (not for production!)")
		return storage.NewMemoryStore(), nil

	case config.DriverBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.BoltPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		log.Printf("📦 Using bbolt storage at %s", cfg.BoltPath)
		store, err := storage.NewBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := Connect(cfg)
		if err != nil {
			return nil, err
		}
		log.Println("🔄 Running database migrations...")
		store, err := storage.NewDatabaseStore(db)
		if err != nil {
			return nil, err
		}
		log.Println("✅ Database migrations completed!")
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
