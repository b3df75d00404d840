package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yaara40/academic-department-website-sub000/internal/repository"
)

// Both backends must behave identically through the interface.
func contentBackends(t *testing.T) map[string]repository.ContentRepository {
	t.Helper()

	fileRepo, err := repository.NewFileContentRepository(t.TempDir())
	require.NoError(t, err)

	return map[string]repository.ContentRepository{
		"db":   repository.NewDBContentRepository(setupTestDB(t)),
		"file": fileRepo,
	}
}

func TestContentRepository_RoundTrip(t *testing.T) {
	for name, repo := range contentBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := repo.Get(ctx, "home-hero")
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, repo.Save(ctx, "home-hero", []byte(`{"title":"שלום"}`)))

			got, err = repo.Get(ctx, "home-hero")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "home-hero", got.Key)
			assert.JSONEq(t, `{"title":"שלום"}`, string(got.Data))
			assert.False(t, got.UpdatedAt.IsZero())
		})
	}
}

func TestContentRepository_LastWriterWins(t *testing.T) {
	for name, repo := range contentBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, repo.Save(ctx, "contact-page", []byte(`{"phone":"111"}`)))
			require.NoError(t, repo.Save(ctx, "contact-page", []byte(`{"phone":"222"}`)))

			got, err := repo.Get(ctx, "contact-page")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.JSONEq(t, `{"phone":"222"}`, string(got.Data))
		})
	}
}

func TestContentRepository_DeleteAndKeys(t *testing.T) {
	for name, repo := range contentBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, repo.Save(ctx, "b-key", []byte(`{}`)))
			require.NoError(t, repo.Save(ctx, "a-key", []byte(`{}`)))

			keys, err := repo.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"a-key", "b-key"}, keys)

			require.NoError(t, repo.Delete(ctx, "a-key"))
			// Deleting a missing key is not an error.
			require.NoError(t, repo.Delete(ctx, "a-key"))

			keys, err = repo.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"b-key"}, keys)
		})
	}
}

func TestContentRepository_RejectsBadKeys(t *testing.T) {
	for name, repo := range contentBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			err := repo.Save(ctx, "../escape", []byte(`{}`))
			assert.ErrorIs(t, err, repository.ErrInvalidContentKey)

			err = repo.Save(ctx, "has space", []byte(`{}`))
			assert.ErrorIs(t, err, repository.ErrInvalidContentKey)
		})
	}
}

func TestValidContentKey(t *testing.T) {
	assert.True(t, repository.ValidContentKey("home-hero"))
	assert.True(t, repository.ValidContentKey("page_2"))
	assert.False(t, repository.ValidContentKey(""))
	assert.False(t, repository.ValidContentKey("a/b"))
	assert.False(t, repository.ValidContentKey("a.b"))
}
