package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
)

// ContentRepository is the capability interface for admin-editable page
// copy. The original site kept some of this content in browser storage and
// some in the cloud store; here both live behind the same interface and the
// backend is chosen by configuration.
type ContentRepository interface {
	Get(ctx context.Context, key string) (*model.PageContent, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

var contentKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ErrInvalidContentKey rejects keys that could escape the content namespace.
var ErrInvalidContentKey = errors.New("content key may contain only letters, digits, hyphens and underscores")

// ValidContentKey reports whether key is usable with either backend.
func ValidContentKey(key string) bool {
	return contentKeyPattern.MatchString(key)
}

type dbContentRepository struct {
	db *gorm.DB
}

// NewDBContentRepository creates the database-backed content repository.
func NewDBContentRepository(db *gorm.DB) ContentRepository {
	return &dbContentRepository{db: db}
}

// Get returns the content blob or nil when the key does not exist.
func (r *dbContentRepository) Get(ctx context.Context, key string) (*model.PageContent, error) {
	var content model.PageContent
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// Save upserts the blob. No conflict resolution, last writer wins.
func (r *dbContentRepository) Save(ctx context.Context, key string, data []byte) error {
	if !ValidContentKey(key) {
		return ErrInvalidContentKey
	}
	content := model.PageContent{
		Key:       key,
		Data:      data,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Save(&content).Error
}

// Delete removes the blob.
func (r *dbContentRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&model.PageContent{}, "key = ?", key).Error
}

// Keys lists all stored keys, sorted.
func (r *dbContentRepository) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&model.PageContent{}).Order("key ASC").Pluck("key", &keys).Error
	return keys, err
}

type fileContentRepository struct {
	dir string
}

// NewFileContentRepository creates a content repository storing one JSON
// file per key under dir.
func NewFileContentRepository(dir string) (ContentRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content dir: %w", err)
	}
	return &fileContentRepository{dir: dir}, nil
}

func (r *fileContentRepository) path(key string) string {
	return filepath.Join(r.dir, key+".json")
}

// Get returns the content blob or nil when the key does not exist.
func (r *fileContentRepository) Get(_ context.Context, key string) (*model.PageContent, error) {
	if !ValidContentKey(key) {
		return nil, ErrInvalidContentKey
	}

	data, err := os.ReadFile(r.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read content %q: %w", key, err)
	}

	info, err := os.Stat(r.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to stat content %q: %w", key, err)
	}

	return &model.PageContent{Key: key, Data: data, UpdatedAt: info.ModTime()}, nil
}

// Save writes the blob to disk. No locking, last writer wins.
func (r *fileContentRepository) Save(_ context.Context, key string, data []byte) error {
	if !ValidContentKey(key) {
		return ErrInvalidContentKey
	}
	if err := os.WriteFile(r.path(key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write content %q: %w", key, err)
	}
	return nil
}

// Delete removes the blob file; a missing file is not an error.
func (r *fileContentRepository) Delete(_ context.Context, key string) error {
	if !ValidContentKey(key) {
		return ErrInvalidContentKey
	}
	err := os.Remove(r.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete content %q: %w", key, err)
	}
	return nil
}

// Keys lists all stored keys, sorted.
func (r *fileContentRepository) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list content dir: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}
