package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
)

// ActivityRepository is the append-only store for user activity records.
type ActivityRepository interface {
	Save(ctx context.Context, activity *model.UserActivity) error
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]*model.UserActivity, error)
	FindByUserAndType(ctx context.Context, userID string, activityType model.ActivityType) ([]*model.UserActivity, error)
	CountRecent(ctx context.Context, userID string, activityType model.ActivityType, page string, since time.Time) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates an activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// Save appends an activity record.
func (r *activityRepository) Save(ctx context.Context, activity *model.UserActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// FindRecentByUser returns the user's newest records, newest first.
func (r *activityRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]*model.UserActivity, error) {
	var activities []*model.UserActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// FindByUserAndType returns all of the user's records of one type, newest
// first.
func (r *activityRepository) FindByUserAndType(ctx context.Context, userID string, activityType model.ActivityType) ([]*model.UserActivity, error) {
	var activities []*model.UserActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND activity_type = ?", userID, activityType).
		Order("created_at DESC").
		Find(&activities).Error
	return activities, err
}

// CountRecent counts records matching the de-dup triple created at or
// after the given instant.
func (r *activityRepository) CountRecent(ctx context.Context, userID string, activityType model.ActivityType, page string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserActivity{}).
		Where("user_id = ? AND activity_type = ? AND page = ? AND created_at >= ?",
			userID, activityType, page, since).
		Count(&count).Error
	return count, err
}
