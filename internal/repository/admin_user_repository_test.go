package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
	"github.com/Yaara40/academic-department-website-sub000/internal/repository"
)

func TestAdminUserRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewAdminUserRepository(db)
	ctx := context.Background()

	user := &model.AdminUser{
		ID:           uuid.New().String(),
		Email:        "admin@cs.example.ac.il",
		PasswordHash: "$2a$10$notarealhash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByEmail(ctx, "admin@cs.example.ac.il")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	found, err = repo.FindByEmail(ctx, "other@cs.example.ac.il")
	require.NoError(t, err)
	assert.Nil(t, found)
}
