package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
)

// EventRepository persists events and performs the counter and status
// updates as single conditional statements, so concurrent registrations
// can never push a counter past capacity.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	FindAll(ctx context.Context) ([]*model.Event, error)
	FindUpcoming(ctx context.Context, now time.Time, audience model.Audience) ([]*model.Event, error)
	FindOpenUpcoming(ctx context.Context, now time.Time, audience model.Audience) ([]*model.Event, error)
	IncrementParticipants(ctx context.Context, id string, now time.Time) (int64, error)
	MarkFullIfAtCapacity(ctx context.Context, id string, now time.Time) (int64, error)
	DecrementParticipants(ctx context.Context, id string, now time.Time) (int64, error)
	ReopenIfBelowCapacity(ctx context.Context, id string, now time.Time) (int64, error)
	MarkEnded(ctx context.Context, now time.Time) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates an event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create inserts a new event record.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// Update merges only the given fields into an existing record and bumps
// updated_at. Returns the number of matched rows.
func (r *eventRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

// Delete removes an event. Related activity records are kept.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, "id = ?", id).Error
}

// FindByID returns the event or nil when it does not exist.
func (r *eventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindAll returns all events ordered by ascending date.
func (r *eventRepository) FindAll(ctx context.Context) ([]*model.Event, error) {
	var events []*model.Event
	err := r.db.WithContext(ctx).Order("date_time ASC").Find(&events).Error
	return events, err
}

// FindUpcoming returns future events ordered by ascending date. An
// audience filter keeps events aimed at that audience or at everyone.
func (r *eventRepository) FindUpcoming(ctx context.Context, now time.Time, audience model.Audience) ([]*model.Event, error) {
	q := r.db.WithContext(ctx).Where("date_time >= ?", now)
	if audience != "" {
		q = q.Where("target_audience = ? OR target_audience = ?", audience, model.AudienceAll)
	}

	var events []*model.Event
	err := q.Order("date_time ASC").Find(&events).Error
	return events, err
}

// FindOpenUpcoming is FindUpcoming restricted to open events.
func (r *eventRepository) FindOpenUpcoming(ctx context.Context, now time.Time, audience model.Audience) ([]*model.Event, error) {
	q := r.db.WithContext(ctx).Where("date_time >= ? AND status = ?", now, model.StatusOpen)
	if audience != "" {
		q = q.Where("target_audience = ? OR target_audience = ?", audience, model.AudienceAll)
	}

	var events []*model.Event
	err := q.Order("date_time ASC").Find(&events).Error
	return events, err
}

// IncrementParticipants adds one participant, but only while the event is
// open and below capacity. The guard runs inside the UPDATE itself, so an
// interleaved registration from another client cannot overshoot
// max_participants. Returns the number of rows changed (0 or 1).
func (r *eventRepository) IncrementParticipants(ctx context.Context, id string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ? AND status = ?", id, model.StatusOpen).
		Where("max_participants = 0 OR current_participants < max_participants").
		Updates(map[string]interface{}{
			"current_participants": gorm.Expr("current_participants + 1"),
			"updated_at":           now,
		})
	return res.RowsAffected, res.Error
}

// MarkFullIfAtCapacity flips an open event to full once the counter has
// reached its capacity.
func (r *eventRepository) MarkFullIfAtCapacity(ctx context.Context, id string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ? AND status = ?", id, model.StatusOpen).
		Where("max_participants > 0 AND current_participants >= max_participants").
		Updates(map[string]interface{}{
			"status":     model.StatusFull,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

// DecrementParticipants removes one participant while the counter is
// positive. Ended events are left untouched.
func (r *eventRepository) DecrementParticipants(ctx context.Context, id string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ? AND current_participants > 0 AND status <> ?", id, model.StatusEnded).
		Updates(map[string]interface{}{
			"current_participants": gorm.Expr("current_participants - 1"),
			"updated_at":           now,
		})
	return res.RowsAffected, res.Error
}

// ReopenIfBelowCapacity moves a full event back to open, but only when the
// counter is actually below capacity again. A full event whose counter
// still sits at or above the limit stays full.
func (r *eventRepository) ReopenIfBelowCapacity(ctx context.Context, id string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ? AND status = ?", id, model.StatusFull).
		Where("max_participants = 0 OR current_participants < max_participants").
		Updates(map[string]interface{}{
			"status":     model.StatusOpen,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

// MarkEnded transitions every past-dated, not-yet-ended event to ended in
// one statement and returns how many rows changed.
func (r *eventRepository) MarkEnded(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("date_time < ? AND status <> ?", now, model.StatusEnded).
		Updates(map[string]interface{}{
			"status":     model.StatusEnded,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}
