package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
	"github.com/Yaara40/academic-department-website-sub000/internal/repository"
	"github.com/Yaara40/academic-department-website-sub000/internal/service"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.Event{}, &model.UserActivity{}, &model.PageContent{}, &model.AdminUser{})
	require.NoError(t, err)

	return db
}

// recordingNotifier collects live feed messages for assertions.
type recordingNotifier struct {
	messages [][]byte
}

func (n *recordingNotifier) Notify(message []byte) {
	n.messages = append(n.messages, message)
}

func newEventService(t *testing.T) (service.EventService, repository.EventRepository, *recordingNotifier) {
	t.Helper()
	repo := repository.NewEventRepository(setupTestDB(t))
	notifier := &recordingNotifier{}
	return service.NewEventService(repo, notifier, nil), repo, notifier
}

func createRequest() *service.CreateEventRequest {
	return &service.CreateEventRequest{
		Name:            "Open Day",
		Type:            model.EventTypeInfoDay,
		Description:     "A description long enough to pass.",
		DateTime:        time.Now().Add(24 * time.Hour),
		Location:        "Main Hall",
		TargetAudience:  model.AudienceAll,
		MaxParticipants: 2,
	}
}

func TestEventService_Create(t *testing.T) {
	svc, repo, notifier := newEventService(t)
	ctx := context.Background()

	res := svc.Create(ctx, createRequest())
	require.True(t, res.Success)
	require.NotEmpty(t, res.EventID)

	event, err := repo.FindByID(ctx, res.EventID)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, model.StatusOpen, event.Status)
	assert.Equal(t, 0, event.CurrentParticipants)
	assert.False(t, event.CreatedAt.IsZero())
	assert.Len(t, notifier.messages, 1)
}

func TestEventService_Create_InvalidInput(t *testing.T) {
	svc, _, _ := newEventService(t)
	ctx := context.Background()

	req := createRequest()
	req.Name = "x"
	req.Description = "short"

	res := svc.Create(ctx, req)
	assert.False(t, res.Success)
	assert.Empty(t, res.EventID)
	// Both violations are reported together.
	assert.Len(t, res.Errors, 2)
}

func TestEventService_Create_Duplicate(t *testing.T) {
	svc, _, _ := newEventService(t)
	ctx := context.Background()

	req := createRequest()
	res := svc.Create(ctx, req)
	require.True(t, res.Success)

	res = svc.Create(ctx, req)
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, service.MsgDuplicateEvent)

	// Same name on another date is fine.
	req.DateTime = req.DateTime.Add(24 * time.Hour)
	res = svc.Create(ctx, req)
	assert.True(t, res.Success)
}

func TestEventService_Update(t *testing.T) {
	svc, repo, _ := newEventService(t)
	ctx := context.Background()

	created := svc.Create(ctx, createRequest())
	require.True(t, created.Success)

	newLocation := "Building B"
	res := svc.Update(ctx, created.EventID, &service.UpdateEventRequest{Location: &newLocation})
	require.True(t, res.Success)

	event, err := repo.FindByID(ctx, created.EventID)
	require.NoError(t, err)
	assert.Equal(t, "Building B", event.Location)
	// Untouched fields survive a partial edit.
	assert.Equal(t, "Open Day", event.Name)

	res = svc.Update(ctx, "no-such-id", &service.UpdateEventRequest{Location: &newLocation})
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, service.MsgEventNotFound)
}

func TestEventService_GetAndList(t *testing.T) {
	svc, _, _ := newEventService(t)
	ctx := context.Background()

	created := svc.Create(ctx, createRequest())
	require.True(t, created.Success)

	assert.NotNil(t, svc.Get(ctx, created.EventID))
	assert.Nil(t, svc.Get(ctx, "no-such-id"))
	assert.Len(t, svc.List(ctx), 1)

	res := svc.Delete(ctx, created.EventID)
	require.True(t, res.Success)
	assert.Empty(t, svc.List(ctx))
}

// A capacity-2 event: two registrations fill it, the third is rejected,
// and one cancellation reopens it.
func TestEventService_RegistrationLifecycle(t *testing.T) {
	svc, repo, _ := newEventService(t)
	ctx := context.Background()

	created := svc.Create(ctx, createRequest())
	require.True(t, created.Success)
	id := created.EventID

	res := svc.Register(ctx, id)
	require.True(t, res.Success)

	event, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, event.CurrentParticipants)
	assert.Equal(t, model.StatusOpen, event.Status)

	res = svc.Register(ctx, id)
	require.True(t, res.Success)

	event, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, event.CurrentParticipants)
	assert.Equal(t, model.StatusFull, event.Status)

	res = svc.Register(ctx, id)
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, service.MsgEventFull)

	event, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, event.CurrentParticipants)

	res = svc.Unregister(ctx, id)
	require.True(t, res.Success)

	event, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, event.CurrentParticipants)
	assert.Equal(t, model.StatusOpen, event.Status)
}

func TestEventService_Register_NotFoundAndEnded(t *testing.T) {
	svc, repo, _ := newEventService(t)
	ctx := context.Background()

	res := svc.Register(ctx, "no-such-id")
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, service.MsgEventNotFound)

	ended := &model.Event{
		ID:             uuid.New().String(),
		Name:           "Ended Event",
		Type:           model.EventTypeWorkshop,
		Description:    "A description long enough to pass.",
		DateTime:       time.Now().Add(-24 * time.Hour),
		Location:       "Main Hall",
		TargetAudience: model.AudienceAll,
		Status:         model.StatusEnded,
	}
	require.NoError(t, repo.Create(ctx, ended))

	res = svc.Register(ctx, ended.ID)
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, service.MsgRegistrationClosed)
}

func TestEventService_Unregister_ZeroIsNoOp(t *testing.T) {
	svc, repo, _ := newEventService(t)
	ctx := context.Background()

	created := svc.Create(ctx, createRequest())
	require.True(t, created.Success)

	res := svc.Unregister(ctx, created.EventID)
	assert.True(t, res.Success)

	event, err := repo.FindByID(ctx, created.EventID)
	require.NoError(t, err)
	assert.Equal(t, 0, event.CurrentParticipants)

	res = svc.Unregister(ctx, "no-such-id")
	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, service.MsgEventNotFound)
}

func TestEventService_Unregister_EndedKeepsCount(t *testing.T) {
	svc, repo, _ := newEventService(t)
	ctx := context.Background()

	ended := &model.Event{
		ID:             uuid.New().String(),
		Name:           "Ended Event",
		Type:           model.EventTypeWorkshop,
		Description:    "A description long enough to pass.",
		DateTime:       time.Now().Add(-24 * time.Hour),
		Location:       "Main Hall",
		TargetAudience: model.AudienceAll,
		Status:         model.StatusEnded,
	}
	ended.CurrentParticipants = 3
	require.NoError(t, repo.Create(ctx, ended))

	// Cancelling against an ended event succeeds but changes nothing.
	res := svc.Unregister(ctx, ended.ID)
	assert.True(t, res.Success)

	event, err := repo.FindByID(ctx, ended.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, event.CurrentParticipants)
	assert.Equal(t, model.StatusEnded, event.Status)
}

func TestEventService_SweepExpired(t *testing.T) {
	svc, repo, _ := newEventService(t)
	ctx := context.Background()

	past := &model.Event{
		ID:             uuid.New().String(),
		Name:           "Past Event",
		Type:           model.EventTypeInfoDay,
		Description:    "A description long enough to pass.",
		DateTime:       time.Now().Add(-24 * time.Hour),
		Location:       "Main Hall",
		TargetAudience: model.AudienceAll,
		Status:         model.StatusOpen,
	}
	require.NoError(t, repo.Create(ctx, past))

	created := svc.Create(ctx, createRequest())
	require.True(t, created.Success)

	assert.Equal(t, int64(1), svc.SweepExpired(ctx))
	assert.Equal(t, int64(0), svc.SweepExpired(ctx))

	event, err := repo.FindByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnded, event.Status)

	event, err = repo.FindByID(ctx, created.EventID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOpen, event.Status)
}

func TestEventService_UpcomingAndOpen(t *testing.T) {
	svc, repo, _ := newEventService(t)
	ctx := context.Background()

	full := &model.Event{
		ID:                  uuid.New().String(),
		Name:                "Full Workshop",
		Type:                model.EventTypeWorkshop,
		Description:         "A description long enough to pass.",
		DateTime:            time.Now().Add(24 * time.Hour),
		Location:            "Lab 3",
		TargetAudience:      model.AudienceStudent,
		MaxParticipants:     2,
		CurrentParticipants: 2,
		Status:              model.StatusFull,
	}
	require.NoError(t, repo.Create(ctx, full))

	created := svc.Create(ctx, createRequest())
	require.True(t, created.Success)

	assert.Len(t, svc.Upcoming(ctx, ""), 2)
	assert.Len(t, svc.Open(ctx, ""), 1)
	// The student filter keeps student events and all-audience events.
	assert.Len(t, svc.Upcoming(ctx, model.AudienceStudent), 2)
	assert.Len(t, svc.Upcoming(ctx, model.AudienceCandidate), 1)
}

func TestEventService_NotifyPayload(t *testing.T) {
	svc, _, notifier := newEventService(t)
	ctx := context.Background()

	created := svc.Create(ctx, createRequest())
	require.True(t, created.Success)
	require.NotEmpty(t, notifier.messages)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(notifier.messages[0], &payload))
	assert.Equal(t, "event-created", payload["type"])
	assert.Equal(t, created.EventID, payload["eventId"])
	assert.Equal(t, string(model.StatusOpen), payload["status"])
}
