package container

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Yaara40/academic-department-website-sub000/internal/api"
	"github.com/Yaara40/academic-department-website-sub000/internal/auth"
	"github.com/Yaara40/academic-department-website-sub000/internal/config"
	"github.com/Yaara40/academic-department-website-sub000/internal/database"
	"github.com/Yaara40/academic-department-website-sub000/internal/repository"
	"github.com/Yaara40/academic-department-website-sub000/internal/seed"
	"github.com/Yaara40/academic-department-website-sub000/internal/service"
	"github.com/Yaara40/academic-department-website-sub000/internal/websocket"
)

// Container wires all application dependencies: store, repositories,
// services, auth, and the live feed hub.
type Container struct {
	cfg    *config.Config
	db     *gorm.DB
	logger *logrus.Logger
	tokens *auth.TokenService
	hub    *websocket.Hub

	eventSvc    service.EventService
	activitySvc service.ActivityService
	contentSvc  service.ContentService
	authSvc     service.AuthService
	seedLoader  *seed.Loader
}

// New builds the container from configuration. The database connect
// retries three times with exponential backoff before giving up.
func New(cfg *config.Config) (*Container, error) {
	logger, err := api.NewLoggerFromConfig(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	api.SetLogger(logger)

	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hub := websocket.NewHub()

	eventRepo := repository.NewEventRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	contentRepo, err := newContentRepository(cfg, db)
	if err != nil {
		return nil, err
	}

	return &Container{
		cfg:         cfg,
		db:          db,
		logger:      logger,
		tokens:      tokens,
		hub:         hub,
		eventSvc:    service.NewEventService(eventRepo, hub, logger),
		activitySvc: service.NewActivityService(activityRepo, cfg.Activity, logger),
		contentSvc:  service.NewContentService(contentRepo, logger),
		authSvc:     service.NewAuthService(adminRepo, tokens, logger),
		seedLoader:  seed.NewLoader(eventRepo, contentRepo, adminRepo, logger),
	}, nil
}

// newContentRepository picks the configured page-content backend.
func newContentRepository(cfg *config.Config, db *gorm.DB) (repository.ContentRepository, error) {
	switch cfg.Content.Backend {
	case "file":
		repo, err := repository.NewFileContentRepository(cfg.Content.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file content backend: %w", err)
		}
		return repo, nil
	case "", "db":
		return repository.NewDBContentRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown content backend %q", cfg.Content.Backend)
	}
}

// DB returns the database handle.
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Logger returns the shared logger.
func (c *Container) Logger() *logrus.Logger {
	return c.logger
}

// Tokens returns the admin token service.
func (c *Container) Tokens() *auth.TokenService {
	return c.tokens
}

// Hub returns the live feed hub.
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// EventService returns the event service.
func (c *Container) EventService() service.EventService {
	return c.eventSvc
}

// ActivityService returns the activity service.
func (c *Container) ActivityService() service.ActivityService {
	return c.activitySvc
}

// ContentService returns the content service.
func (c *Container) ContentService() service.ContentService {
	return c.contentSvc
}

// AuthService returns the auth service.
func (c *Container) AuthService() service.AuthService {
	return c.authSvc
}

// SeedLoader returns the fixture loader.
func (c *Container) SeedLoader() *seed.Loader {
	return c.seedLoader
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return nil
}
