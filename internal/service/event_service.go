package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Yaara40/academic-department-website-sub000/internal/metrics"
	"github.com/Yaara40/academic-department-website-sub000/internal/model"
	"github.com/Yaara40/academic-department-website-sub000/internal/repository"
	"github.com/Yaara40/academic-department-website-sub000/internal/validation"
)

// Failure messages shared by the event operations.
const (
	MsgEventNotFound      = "event not found"
	MsgEventFull          = "event full"
	MsgRegistrationClosed = "registration is closed for this event"
	MsgDuplicateEvent     = "an event with the same name and date already exists"
	MsgStorageFailure     = "something went wrong, please try again later"
)

// EventResult is the discriminated outcome of an event mutation. Expected
// failures land in Errors as human-readable messages; nothing is thrown
// past the service boundary.
type EventResult struct {
	Success bool     `json:"success"`
	EventID string   `json:"eventId,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func failure(msgs ...string) *EventResult {
	return &EventResult{Success: false, Errors: msgs}
}

// Notifier receives one JSON message per noteworthy change, for live admin
// dashboards. Implementations must not block.
type Notifier interface {
	Notify(message []byte)
}

// CreateEventRequest carries the fields an admin submits for a new event.
// Field rules are enforced by the validation package, which accumulates
// every violation instead of stopping at the first.
type CreateEventRequest struct {
	Name             string            `json:"name"`
	Type             model.EventType   `json:"type"`
	Description      string            `json:"description"`
	DateTime         time.Time         `json:"dateTime"`
	Location         string            `json:"location"`
	TargetAudience   model.Audience    `json:"targetAudience"`
	MaxParticipants  int               `json:"maxParticipants"`
	Status           model.EventStatus `json:"status"`
	RegistrationLink string            `json:"registrationLink"`
}

// UpdateEventRequest carries a partial edit; only non-nil fields are
// written. The update path deliberately skips full re-validation so admins
// can touch single fields of historical events.
type UpdateEventRequest struct {
	Name             *string            `json:"name"`
	Type             *model.EventType   `json:"type"`
	Description      *string            `json:"description"`
	DateTime         *time.Time         `json:"dateTime"`
	Location         *string            `json:"location"`
	TargetAudience   *model.Audience    `json:"targetAudience"`
	MaxParticipants  *int               `json:"maxParticipants"`
	Status           *model.EventStatus `json:"status"`
	RegistrationLink *string            `json:"registrationLink"`
}

// EventService implements the event lifecycle: CRUD, registration with
// capacity bookkeeping, and the expiry sweep.
type EventService interface {
	Create(ctx context.Context, req *CreateEventRequest) *EventResult
	Update(ctx context.Context, id string, req *UpdateEventRequest) *EventResult
	Delete(ctx context.Context, id string) *EventResult
	Get(ctx context.Context, id string) *model.Event
	List(ctx context.Context) []*model.Event
	Upcoming(ctx context.Context, audience model.Audience) []*model.Event
	Open(ctx context.Context, audience model.Audience) []*model.Event
	Register(ctx context.Context, id string) *EventResult
	Unregister(ctx context.Context, id string) *EventResult
	SweepExpired(ctx context.Context) int64
}

type eventService struct {
	events   repository.EventRepository
	notifier Notifier
	logger   *logrus.Logger
}

// NewEventService creates an event service. notifier may be nil.
func NewEventService(events repository.EventRepository, notifier Notifier, logger *logrus.Logger) EventService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &eventService{events: events, notifier: notifier, logger: logger}
}

// Create validates the input, rejects duplicates, and persists a new event
// with a zero participant counter and repository-assigned timestamps.
func (s *eventService) Create(ctx context.Context, req *CreateEventRequest) *EventResult {
	if req == nil {
		return failure("request body is required")
	}

	event := &model.Event{
		Name:             req.Name,
		Type:             req.Type,
		Description:      req.Description,
		DateTime:         req.DateTime,
		Location:         req.Location,
		TargetAudience:   req.TargetAudience,
		MaxParticipants:  req.MaxParticipants,
		Status:           req.Status,
		RegistrationLink: req.RegistrationLink,
	}
	if event.Status == "" {
		event.Status = model.StatusOpen
	}

	if res := validation.ValidateEvent(event, true); !res.Valid {
		return failure(res.Errors...)
	}

	existing, err := s.events.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load events for duplicate check")
		return failure(MsgStorageFailure)
	}
	if validation.IsDuplicateEvent(event, existing) {
		return failure(MsgDuplicateEvent)
	}

	now := time.Now()
	event.ID = uuid.New().String()
	event.CurrentParticipants = 0
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.events.Create(ctx, event); err != nil {
		s.logger.WithError(err).WithField("name", event.Name).Error("failed to create event")
		return failure(MsgStorageFailure)
	}

	metrics.RecordEventCreated(string(event.Type))
	s.notify("event-created", event.ID, event.Status, event.CurrentParticipants)

	return &EventResult{Success: true, EventID: event.ID}
}

// Update merges only the provided fields and bumps updated_at. Missing
// events fail with a not-found message.
func (s *eventService) Update(ctx context.Context, id string, req *UpdateEventRequest) *EventResult {
	if req == nil {
		return failure("request body is required")
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.DateTime != nil {
		fields["date_time"] = *req.DateTime
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.TargetAudience != nil {
		fields["target_audience"] = *req.TargetAudience
	}
	if req.MaxParticipants != nil {
		fields["max_participants"] = *req.MaxParticipants
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.RegistrationLink != nil {
		fields["registration_link"] = *req.RegistrationLink
	}

	rows, err := s.events.Update(ctx, id, fields)
	if err != nil {
		s.logger.WithError(err).WithField("event_id", id).Error("failed to update event")
		return failure(MsgStorageFailure)
	}
	if rows == 0 {
		return failure(MsgEventNotFound)
	}

	return &EventResult{Success: true, EventID: id}
}

// Delete removes the event unconditionally. Activity records that
// reference it are kept for analytics.
func (s *eventService) Delete(ctx context.Context, id string) *EventResult {
	if err := s.events.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("event_id", id).Error("failed to delete event")
		return failure(MsgStorageFailure)
	}
	return &EventResult{Success: true, EventID: id}
}

// Get returns the event or nil when it does not exist. Storage failures
// are logged and reported as missing rather than leaking to the caller.
func (s *eventService) Get(ctx context.Context, id string) *model.Event {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("event_id", id).Error("failed to load event")
		return nil
	}
	return event
}

// List returns all events ordered by ascending date; empty on failure.
func (s *eventService) List(ctx context.Context) []*model.Event {
	events, err := s.events.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list events")
		return []*model.Event{}
	}
	return events
}

// Upcoming returns future events, optionally filtered to an audience plus
// events aimed at everyone.
func (s *eventService) Upcoming(ctx context.Context, audience model.Audience) []*model.Event {
	events, err := s.events.FindUpcoming(ctx, time.Now(), audience)
	if err != nil {
		s.logger.WithError(err).Error("failed to list upcoming events")
		return []*model.Event{}
	}
	return events
}

// Open is Upcoming restricted to events still accepting registrations.
func (s *eventService) Open(ctx context.Context, audience model.Audience) []*model.Event {
	events, err := s.events.FindOpenUpcoming(ctx, time.Now(), audience)
	if err != nil {
		s.logger.WithError(err).Error("failed to list open events")
		return []*model.Event{}
	}
	return events
}

// Register adds one participant. The increment is a conditional update at
// the storage layer, so two clients racing for the last spot cannot push
// the counter past capacity. Reaching capacity flips the event to full in
// the same operation.
func (s *eventService) Register(ctx context.Context, id string) *EventResult {
	now := time.Now()

	rows, err := s.events.IncrementParticipants(ctx, id, now)
	if err != nil {
		s.logger.WithError(err).WithField("event_id", id).Error("failed to register participant")
		metrics.RecordRegistration("error")
		return failure(MsgStorageFailure)
	}

	if rows == 0 {
		// The guard rejected the write: missing, ended, or at capacity.
		event, err := s.events.FindByID(ctx, id)
		if err != nil {
			s.logger.WithError(err).WithField("event_id", id).Error("failed to load event after rejected registration")
			metrics.RecordRegistration("error")
			return failure(MsgStorageFailure)
		}
		if event == nil {
			metrics.RecordRegistration("not-found")
			return failure(MsgEventNotFound)
		}
		if event.Status == model.StatusEnded {
			metrics.RecordRegistration("closed")
			return failure(MsgRegistrationClosed)
		}
		// At capacity; make sure the status says so.
		if _, err := s.events.MarkFullIfAtCapacity(ctx, id, now); err != nil {
			s.logger.WithError(err).WithField("event_id", id).Warn("failed to mark event full")
		} else {
			s.notify("event-full", id, model.StatusFull, event.CurrentParticipants)
		}
		metrics.RecordRegistration("full")
		return failure(MsgEventFull)
	}

	// If that registration took the last spot, close the event now.
	flipped, err := s.events.MarkFullIfAtCapacity(ctx, id, now)
	if err != nil {
		s.logger.WithError(err).WithField("event_id", id).Warn("failed to mark event full")
	}

	metrics.RecordRegistration("success")
	status := model.StatusOpen
	if flipped > 0 {
		status = model.StatusFull
	}
	s.notify("event-registered", id, status, -1)

	return &EventResult{Success: true, EventID: id}
}

// Unregister removes one participant. At a zero counter it is a no-op
// success. A full event reopens only when the counter actually drops below
// capacity again; ended events stay ended.
func (s *eventService) Unregister(ctx context.Context, id string) *EventResult {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("event_id", id).Error("failed to load event for unregistration")
		return failure(MsgStorageFailure)
	}
	if event == nil {
		return failure(MsgEventNotFound)
	}
	if event.CurrentParticipants == 0 || event.Status == model.StatusEnded {
		return &EventResult{Success: true, EventID: id}
	}

	now := time.Now()
	if _, err := s.events.DecrementParticipants(ctx, id, now); err != nil {
		s.logger.WithError(err).WithField("event_id", id).Error("failed to unregister participant")
		return failure(MsgStorageFailure)
	}

	reopened, err := s.events.ReopenIfBelowCapacity(ctx, id, now)
	if err != nil {
		s.logger.WithError(err).WithField("event_id", id).Warn("failed to reopen event")
	}

	status := event.Status
	if reopened > 0 {
		status = model.StatusOpen
	}
	s.notify("event-unregistered", id, status, -1)

	return &EventResult{Success: true, EventID: id}
}

// SweepExpired marks every past-dated, not-yet-ended event as ended and
// returns how many were touched. Failures are logged, never propagated.
func (s *eventService) SweepExpired(ctx context.Context) int64 {
	count, err := s.events.MarkEnded(ctx, time.Now())
	if err != nil {
		s.logger.WithError(err).Error("expiry sweep failed")
		return 0
	}
	if count > 0 {
		s.logger.WithField("ended", count).Info("expiry sweep marked events as ended")
		s.notify("events-ended", "", model.StatusEnded, int(count))
	}
	return count
}

// notify pushes a change message to the live feed, if one is attached.
// participants < 0 means "unchanged/unknown".
func (s *eventService) notify(kind, eventID string, status model.EventStatus, participants int) {
	if s.notifier == nil {
		return
	}
	payload := map[string]interface{}{
		"type":   kind,
		"status": status,
	}
	if eventID != "" {
		payload["eventId"] = eventID
	}
	if participants >= 0 {
		payload["participants"] = participants
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	s.notifier.Notify(msg)
}
