package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yaara40/academic-department-website-sub000/internal/config"
	"github.com/Yaara40/academic-department-website-sub000/internal/model"
	"github.com/Yaara40/academic-department-website-sub000/internal/repository"
	"github.com/Yaara40/academic-department-website-sub000/internal/service"
)

func newActivityService(t *testing.T) (service.ActivityService, repository.ActivityRepository) {
	t.Helper()
	repo := repository.NewActivityRepository(setupTestDB(t))
	svc := service.NewActivityService(repo, config.ActivityConfig{
		DedupWindowMS: 1000,
		StatsSample:   1000,
		DefaultLimit:  50,
	}, nil)
	return svc, repo
}

func logRequest() *service.LogActivityRequest {
	return &service.LogActivityRequest{
		UserID:   "student@example.ac.il",
		UserRole: model.RoleStudent,
		Type:     model.ActivityPageView,
		Page:     "/courses",
	}
}

func TestActivityService_Log(t *testing.T) {
	svc, repo := newActivityService(t)
	ctx := context.Background()

	res := svc.Log(ctx, logRequest())
	require.True(t, res.Success)
	require.NotEmpty(t, res.ActivityID)

	activities, err := repo.FindRecentByUser(ctx, "student@example.ac.il", 10)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.False(t, activities[0].CreatedAt.IsZero())
}

func TestActivityService_Log_Invalid(t *testing.T) {
	svc, _ := newActivityService(t)
	ctx := context.Background()

	req := logRequest()
	req.UserID = ""
	req.Page = ""

	res := svc.Log(ctx, req)
	assert.False(t, res.Success)
	assert.Len(t, res.Errors, 2)
}

func TestActivityService_Log_DedupWindow(t *testing.T) {
	svc, repo := newActivityService(t)
	ctx := context.Background()

	res := svc.Log(ctx, logRequest())
	require.True(t, res.Success)

	// Same (user, type, page) inside the window is dropped.
	res = svc.Log(ctx, logRequest())
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, service.MsgDuplicateActivity)

	// A different page is a different action.
	req := logRequest()
	req.Page = "/about"
	res = svc.Log(ctx, req)
	assert.True(t, res.Success)

	// So is a different type on the same page.
	req = logRequest()
	req.Type = model.ActivityCourseView
	res = svc.Log(ctx, req)
	assert.True(t, res.Success)

	activities, err := repo.FindRecentByUser(ctx, "student@example.ac.il", 10)
	require.NoError(t, err)
	assert.Len(t, activities, 3)
}

func TestActivityService_Log_DedupWindowExpires(t *testing.T) {
	repo := repository.NewActivityRepository(setupTestDB(t))
	svc := service.NewActivityService(repo, config.ActivityConfig{DedupWindowMS: 30}, nil)
	ctx := context.Background()

	res := svc.Log(ctx, logRequest())
	require.True(t, res.Success)

	time.Sleep(50 * time.Millisecond)

	res = svc.Log(ctx, logRequest())
	assert.True(t, res.Success)
}

func TestActivityService_Stats(t *testing.T) {
	svc, repo := newActivityService(t)
	ctx := context.Background()
	now := time.Now()

	fixture := []model.ActivityType{
		model.ActivityPageView, model.ActivityPageView, model.ActivityPageView,
		model.ActivityCourseView, model.ActivityCourseView,
		model.ActivitySearch,
	}
	for i, activityType := range fixture {
		require.NoError(t, repo.Save(ctx, &model.UserActivity{
			ID:        uuid.New().String(),
			UserID:    "user-1",
			UserRole:  model.RoleCandidate,
			Type:      activityType,
			Page:      "/home",
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}))
	}

	stats := svc.Stats(ctx, "user-1")
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.PageViews)
	assert.Equal(t, 2, stats.CourseViews)
	assert.Equal(t, 1, stats.Searches)
	assert.Equal(t, 0, stats.CalculatorUses)
	assert.Equal(t, 0, stats.ContactForms)
	assert.Equal(t, 0, stats.EventRegistrations)
	assert.Equal(t, 6, stats.TotalActivities)

	// An unknown user gets zeroed counters, not an error.
	stats = svc.Stats(ctx, "nobody")
	require.NotNil(t, stats)
	assert.Equal(t, 0, stats.TotalActivities)
}

func TestActivityService_RecentAndByType(t *testing.T) {
	svc, repo := newActivityService(t)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, &model.UserActivity{
			ID:        uuid.New().String(),
			UserID:    "user-1",
			UserRole:  model.RoleStudent,
			Type:      model.ActivitySearch,
			Page:      "/search",
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}))
	}

	assert.Len(t, svc.Recent(ctx, "user-1", 2), 2)
	// Non-positive limit falls back to the configured default.
	assert.Len(t, svc.Recent(ctx, "user-1", 0), 3)
	assert.Len(t, svc.ByType(ctx, "user-1", model.ActivitySearch), 3)
	assert.Empty(t, svc.ByType(ctx, "user-1", model.ActivityPageView))
}

func TestActivityService_QuickLog(t *testing.T) {
	svc, _ := newActivityService(t)
	ctx := context.Background()

	ok := svc.QuickLog(ctx, "visitor-1", model.RoleCandidate, model.ActivityPageView, "/home", "")
	assert.True(t, ok)

	// Second identical call inside the window reports false.
	ok = svc.QuickLog(ctx, "visitor-1", model.RoleCandidate, model.ActivityPageView, "/home", "")
	assert.False(t, ok)

	ok = svc.QuickLog(ctx, "", model.RoleCandidate, model.ActivityPageView, "/home", "")
	assert.False(t, ok)
}
