package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
	"github.com/Yaara40/academic-department-website-sub000/internal/repository"
)

// ContentResult is the discriminated outcome of a content mutation.
type ContentResult struct {
	Success bool     `json:"success"`
	Key     string   `json:"key,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// ContentService wraps whichever content backend is configured with the
// same result contract the other services use.
type ContentService interface {
	Get(ctx context.Context, key string) *model.PageContent
	Save(ctx context.Context, key string, data json.RawMessage) *ContentResult
	Delete(ctx context.Context, key string) *ContentResult
	Keys(ctx context.Context) []string
}

type contentService struct {
	contents repository.ContentRepository
	logger   *logrus.Logger
}

// NewContentService creates a content service over the given backend.
func NewContentService(contents repository.ContentRepository, logger *logrus.Logger) ContentService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &contentService{contents: contents, logger: logger}
}

// Get returns the blob or nil when the key does not exist; failures are
// logged and reported as missing.
func (s *contentService) Get(ctx context.Context, key string) *model.PageContent {
	content, err := s.contents.Get(ctx, key)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("failed to load page content")
		return nil
	}
	return content
}

// Save validates that the payload is JSON and writes it. Last writer wins.
func (s *contentService) Save(ctx context.Context, key string, data json.RawMessage) *ContentResult {
	if !json.Valid(data) {
		return &ContentResult{Success: false, Errors: []string{"content must be valid JSON"}}
	}

	if err := s.contents.Save(ctx, key, data); err != nil {
		if errors.Is(err, repository.ErrInvalidContentKey) {
			return &ContentResult{Success: false, Errors: []string{err.Error()}}
		}
		s.logger.WithError(err).WithField("key", key).Error("failed to save page content")
		return &ContentResult{Success: false, Errors: []string{MsgStorageFailure}}
	}

	return &ContentResult{Success: true, Key: key}
}

// Delete removes the blob.
func (s *contentService) Delete(ctx context.Context, key string) *ContentResult {
	if err := s.contents.Delete(ctx, key); err != nil {
		if errors.Is(err, repository.ErrInvalidContentKey) {
			return &ContentResult{Success: false, Errors: []string{err.Error()}}
		}
		s.logger.WithError(err).WithField("key", key).Error("failed to delete page content")
		return &ContentResult{Success: false, Errors: []string{MsgStorageFailure}}
	}
	return &ContentResult{Success: true, Key: key}
}

// Keys lists stored content keys; empty on failure.
func (s *contentService) Keys(ctx context.Context) []string {
	keys, err := s.contents.Keys(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list page content keys")
		return []string{}
	}
	return keys
}
