package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Yaara40/academic-department-website-sub000/internal/config"
	"github.com/Yaara40/academic-department-website-sub000/internal/metrics"
	"github.com/Yaara40/academic-department-website-sub000/internal/model"
	"github.com/Yaara40/academic-department-website-sub000/internal/repository"
	"github.com/Yaara40/academic-department-website-sub000/internal/validation"
)

// MsgDuplicateActivity rejects a repeat of the same action within the
// de-dup window.
const MsgDuplicateActivity = "duplicate activity ignored"

// ActivityResult is the discriminated outcome of logging one activity.
type ActivityResult struct {
	Success    bool     `json:"success"`
	ActivityID string   `json:"activityId,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// ActivityStats aggregates a user's recent activity into per-type counters.
// A stats read that fails returns the zero value instead of an error, so
// dashboard pages degrade to zeros rather than breaking.
type ActivityStats struct {
	PageViews          int `json:"pageViews"`
	CourseViews        int `json:"courseViews"`
	Searches           int `json:"searches"`
	CalculatorUses     int `json:"calculatorUses"`
	ContactForms       int `json:"contactForms"`
	EventRegistrations int `json:"eventRegistrations"`
	TotalActivities    int `json:"totalActivities"`
}

// LogActivityRequest carries one user action to record.
type LogActivityRequest struct {
	UserID      string             `json:"userId"`
	UserRole    model.UserRole     `json:"userRole"`
	Type        model.ActivityType `json:"activityType"`
	Description string             `json:"description"`
	Page        string             `json:"page"`
	EventID     string             `json:"eventId"`
}

// ActivityService records user actions and derives aggregate statistics.
type ActivityService interface {
	Log(ctx context.Context, req *LogActivityRequest) *ActivityResult
	Recent(ctx context.Context, userID string, limit int) []*model.UserActivity
	ByType(ctx context.Context, userID string, activityType model.ActivityType) []*model.UserActivity
	Stats(ctx context.Context, userID string) *ActivityStats
	QuickLog(ctx context.Context, userID string, role model.UserRole, activityType model.ActivityType, page, description string) bool
}

type activityService struct {
	activities repository.ActivityRepository
	cfg        config.ActivityConfig
	logger     *logrus.Logger
}

// NewActivityService creates an activity service.
func NewActivityService(activities repository.ActivityRepository, cfg config.ActivityConfig, logger *logrus.Logger) ActivityService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.DedupWindowMS <= 0 {
		cfg.DedupWindowMS = 1000
	}
	if cfg.StatsSample <= 0 {
		cfg.StatsSample = 1000
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 50
	}
	return &activityService{activities: activities, cfg: cfg, logger: logger}
}

// Log validates the record, drops near-duplicates of the same
// (user, type, page) triple inside the de-dup window, and persists it with
// a repository-assigned ID and timestamp.
func (s *activityService) Log(ctx context.Context, req *LogActivityRequest) *ActivityResult {
	if req == nil {
		return &ActivityResult{Success: false, Errors: []string{"request body is required"}}
	}

	activity := &model.UserActivity{
		UserID:      req.UserID,
		UserRole:    req.UserRole,
		Type:        req.Type,
		Description: req.Description,
		Page:        req.Page,
		EventID:     req.EventID,
	}

	if res := validation.ValidateActivity(activity); !res.Valid {
		return &ActivityResult{Success: false, Errors: res.Errors}
	}

	now := time.Now()
	since := now.Add(-s.cfg.DedupWindow())
	count, err := s.activities.CountRecent(ctx, activity.UserID, activity.Type, activity.Page, since)
	if err != nil {
		s.logger.WithError(err).Error("failed to check for duplicate activity")
		return &ActivityResult{Success: false, Errors: []string{MsgStorageFailure}}
	}
	if count > 0 {
		return &ActivityResult{Success: false, Errors: []string{MsgDuplicateActivity}}
	}

	activity.ID = uuid.New().String()
	activity.CreatedAt = now

	if err := s.activities.Save(ctx, activity); err != nil {
		s.logger.WithError(err).WithField("user_id", activity.UserID).Error("failed to log activity")
		return &ActivityResult{Success: false, Errors: []string{MsgStorageFailure}}
	}

	metrics.RecordActivity(string(activity.Type))
	return &ActivityResult{Success: true, ActivityID: activity.ID}
}

// Recent returns the user's newest records; empty on failure. A
// non-positive limit falls back to the configured default.
func (s *activityService) Recent(ctx context.Context, userID string, limit int) []*model.UserActivity {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	activities, err := s.activities.FindRecentByUser(ctx, userID, limit)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to load activities")
		return []*model.UserActivity{}
	}
	return activities
}

// ByType returns all of the user's records of one type; empty on failure.
func (s *activityService) ByType(ctx context.Context, userID string, activityType model.ActivityType) []*model.UserActivity {
	activities, err := s.activities.FindByUserAndType(ctx, userID, activityType)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to load activities by type")
		return []*model.UserActivity{}
	}
	return activities
}

// Stats reduces the user's recent activity sample into per-type counters.
// Any failure degrades to all-zero counters.
func (s *activityService) Stats(ctx context.Context, userID string) *ActivityStats {
	stats := &ActivityStats{}

	activities, err := s.activities.FindRecentByUser(ctx, userID, s.cfg.StatsSample)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to load activities for stats")
		return stats
	}

	for _, a := range activities {
		switch a.Type {
		case model.ActivityPageView:
			stats.PageViews++
		case model.ActivityCourseView:
			stats.CourseViews++
		case model.ActivitySearch:
			stats.Searches++
		case model.ActivityCalculatorUse:
			stats.CalculatorUses++
		case model.ActivityContactForm:
			stats.ContactForms++
		case model.ActivityEventRegistration:
			stats.EventRegistrations++
		}
		stats.TotalActivities++
	}

	return stats
}

// QuickLog is the fire-and-forget convenience wrapper around Log.
func (s *activityService) QuickLog(ctx context.Context, userID string, role model.UserRole, activityType model.ActivityType, page, description string) bool {
	res := s.Log(ctx, &LogActivityRequest{
		UserID:      userID,
		UserRole:    role,
		Type:        activityType,
		Description: description,
		Page:        page,
	})
	return res.Success
}
