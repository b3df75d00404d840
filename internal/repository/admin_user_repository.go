package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
)

// AdminUserRepository stores admin panel accounts.
type AdminUserRepository interface {
	Save(ctx context.Context, user *model.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*model.AdminUser, error)
}

type adminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository creates an admin user repository.
func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

// Save upserts an admin account.
func (r *adminUserRepository) Save(ctx context.Context, user *model.AdminUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByEmail returns the account or nil when it does not exist.
func (r *adminUserRepository) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
