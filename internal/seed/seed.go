// Package seed loads demo and first-run fixture data from an explicit
// YAML file. Nothing here runs implicitly at startup; seeding happens only
// when the operator (or a test) asks for it.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Yaara40/academic-department-website-sub000/internal/auth"
	"github.com/Yaara40/academic-department-website-sub000/internal/model"
	"github.com/Yaara40/academic-department-website-sub000/internal/repository"
)

// Fixture is the on-disk seed file layout.
type Fixture struct {
	Admins   []AdminFixture   `yaml:"admins"`
	Events   []EventFixture   `yaml:"events"`
	Contents []ContentFixture `yaml:"contents"`
}

// AdminFixture seeds one admin panel account.
type AdminFixture struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// EventFixture seeds one event. Dates are RFC 3339.
type EventFixture struct {
	Name             string `yaml:"name"`
	Type             string `yaml:"type"`
	Description      string `yaml:"description"`
	DateTime         string `yaml:"date_time"`
	Location         string `yaml:"location"`
	TargetAudience   string `yaml:"target_audience"`
	MaxParticipants  int    `yaml:"max_participants"`
	Status           string `yaml:"status"`
	RegistrationLink string `yaml:"registration_link"`
}

// ContentFixture seeds one page content blob. Data is free-form YAML that
// is stored as JSON.
type ContentFixture struct {
	Key  string      `yaml:"key"`
	Data interface{} `yaml:"data"`
}

// Loader applies fixture files to the repositories.
type Loader struct {
	events   repository.EventRepository
	contents repository.ContentRepository
	admins   repository.AdminUserRepository
	logger   *logrus.Logger
}

// NewLoader creates a fixture loader.
func NewLoader(
	events repository.EventRepository,
	contents repository.ContentRepository,
	admins repository.AdminUserRepository,
	logger *logrus.Logger,
) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{events: events, contents: contents, admins: admins, logger: logger}
}

// LoadFile reads and applies a fixture file.
func (l *Loader) LoadFile(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	return l.Load(ctx, &fixture)
}

// Load applies a fixture. Existing records are not deduplicated; seeding
// is meant for fresh databases and tests.
func (l *Loader) Load(ctx context.Context, fixture *Fixture) error {
	now := time.Now()

	for _, a := range fixture.Admins {
		hash, err := auth.HashPassword(a.Password)
		if err != nil {
			return fmt.Errorf("failed to hash seed admin password: %w", err)
		}
		user := &model.AdminUser{
			ID:           uuid.New().String(),
			Email:        strings.ToLower(strings.TrimSpace(a.Email)),
			PasswordHash: hash,
			CreatedAt:    now,
		}
		if err := l.admins.Save(ctx, user); err != nil {
			return fmt.Errorf("failed to seed admin %q: %w", a.Email, err)
		}
		l.logger.WithField("email", user.Email).Info("seeded admin account")
	}

	for _, e := range fixture.Events {
		dateTime, err := time.Parse(time.RFC3339, e.DateTime)
		if err != nil {
			return fmt.Errorf("failed to parse seed event date %q: %w", e.DateTime, err)
		}

		status := model.EventStatus(e.Status)
		if status == "" {
			status = model.StatusOpen
		}

		event := &model.Event{
			ID:               uuid.New().String(),
			Name:             e.Name,
			Type:             model.EventType(e.Type),
			Description:      e.Description,
			DateTime:         dateTime,
			Location:         e.Location,
			TargetAudience:   model.Audience(e.TargetAudience),
			MaxParticipants:  e.MaxParticipants,
			Status:           status,
			RegistrationLink: e.RegistrationLink,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := l.events.Create(ctx, event); err != nil {
			return fmt.Errorf("failed to seed event %q: %w", e.Name, err)
		}
		l.logger.WithField("name", event.Name).Info("seeded event")
	}

	for _, c := range fixture.Contents {
		data, err := json.Marshal(c.Data)
		if err != nil {
			return fmt.Errorf("failed to encode seed content %q: %w", c.Key, err)
		}
		if err := l.contents.Save(ctx, c.Key, data); err != nil {
			return fmt.Errorf("failed to seed content %q: %w", c.Key, err)
		}
		l.logger.WithField("key", c.Key).Info("seeded page content")
	}

	return nil
}
