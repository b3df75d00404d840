package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Yaara40/academic-department-website-sub000/internal/config"
	"github.com/Yaara40/academic-department-website-sub000/internal/model"
)

// BuildDSN builds a PostgreSQL DSN.
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// Connect opens the configured database and applies pool settings.
// The sqlite driver serves small deployments and tests; postgres is the
// production store.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	default:
		dialector = postgres.Open(BuildDSN(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 100
	}
	maxLifetime := cfg.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 3600
	}
	maxIdleTime := cfg.ConnMaxIdleTime
	if maxIdleTime == 0 {
		maxIdleTime = 600
	}

	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(maxIdleTime) * time.Second)

	return db, nil
}

// ConnectWithRetry retries Connect with exponential backoff.
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}

		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Event{},
		&model.UserActivity{},
		&model.PageContent{},
		&model.AdminUser{},
	); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createIndexes adds the composite indexes the per-column tags cannot express.
func createIndexes(db *gorm.DB) error {
	// Duplicate-event scan and upcoming-events queries.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_name_date ON events(name, date_time)").Error; err != nil {
		return fmt.Errorf("failed to create idx_events_name_date: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_status_date ON events(status, date_time)").Error; err != nil {
		return fmt.Errorf("failed to create idx_events_status_date: %w", err)
	}

	// Activity de-dup lookup hits (user, type, page, created_at).
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_dedup ON user_activities(user_id, activity_type, page, created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_activities_dedup: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_user_created ON user_activities(user_id, created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_activities_user_created: %w", err)
	}

	return nil
}

// CheckHealth reports whether the database connection responds to a ping.
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
