package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
	"github.com/Yaara40/academic-department-website-sub000/internal/validation"
)

// validEvent returns an event that passes every rule for a new record.
func validEvent() *model.Event {
	return &model.Event{
		Name:            "Open Day",
		Type:            model.EventTypeInfoDay,
		Description:     "A ten-plus-character description.",
		DateTime:        time.Now().Add(24 * time.Hour),
		Location:        "Main Hall",
		TargetAudience:  model.AudienceAll,
		MaxParticipants: 2,
		Status:          model.StatusOpen,
	}
}

func TestValidateEvent_Valid(t *testing.T) {
	res := validation.ValidateEvent(validEvent(), true)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateEvent_FieldRules(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(e *model.Event)
		keyword string
	}{
		{"name too short", func(e *model.Event) { e.Name = "x" }, "name"},
		{"name too long", func(e *model.Event) { e.Name = strings.Repeat("א", 81) }, "name"},
		{"name with markup", func(e *model.Event) { e.Name = "Open <b>Day</b>" }, "forbidden"},
		{"name with script", func(e *model.Event) { e.Name = "Open ScRiPt Day" }, "forbidden"},
		{"invalid type", func(e *model.Event) { e.Type = "party" }, "type"},
		{"missing description", func(e *model.Event) { e.Description = "" }, "description"},
		{"description too short", func(e *model.Event) { e.Description = "too short" }, "description"},
		{"description too long", func(e *model.Event) { e.Description = strings.Repeat("ב", 301) }, "description"},
		{"past date", func(e *model.Event) { e.DateTime = time.Now().Add(-time.Hour) }, "past"},
		{"missing date", func(e *model.Event) { e.DateTime = time.Time{} }, "date"},
		{"missing location", func(e *model.Event) { e.Location = "  " }, "location"},
		{"invalid audience", func(e *model.Event) { e.TargetAudience = "everyone" }, "audience"},
		{"negative capacity", func(e *model.Event) { e.MaxParticipants = -1 }, "participants"},
		{"invalid status", func(e *model.Event) { e.Status = "archived" }, "status"},
		{"bad registration link", func(e *model.Event) { e.RegistrationLink = "not-a-url" }, "link"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event := validEvent()
			tc.mutate(event)

			res := validation.ValidateEvent(event, true)
			assert.False(t, res.Valid)
			assert.NotEmpty(t, res.Errors)

			found := false
			for _, msg := range res.Errors {
				if strings.Contains(strings.ToLower(msg), tc.keyword) {
					found = true
				}
			}
			assert.True(t, found, "expected an error mentioning %q, got %v", tc.keyword, res.Errors)
		})
	}
}

// Every violation is collected, not just the first.
func TestValidateEvent_AccumulatesErrors(t *testing.T) {
	event := validEvent()
	event.Name = "x"
	event.Description = "short"
	event.Location = ""

	res := validation.ValidateEvent(event, true)
	assert.False(t, res.Valid)
	assert.Len(t, res.Errors, 3)
}

// Editing a stored historical event keeps its stale date.
func TestValidateEvent_PastDateAllowedOnEdit(t *testing.T) {
	event := validEvent()
	event.DateTime = time.Now().Add(-48 * time.Hour)

	res := validation.ValidateEvent(event, false)
	assert.True(t, res.Valid)
}

func TestIsDuplicateEvent(t *testing.T) {
	when := time.Date(2027, 3, 15, 10, 0, 0, 0, time.UTC)

	candidate := validEvent()
	candidate.Name = "Open Day"
	candidate.DateTime = when

	existing := []*model.Event{
		{ID: "ev-1", Name: "Open Day", DateTime: when},
	}
	assert.True(t, validation.IsDuplicateEvent(candidate, existing))

	// Same instant expressed in another zone still matches.
	existing[0].DateTime = when.In(time.FixedZone("IST", 2*3600))
	assert.True(t, validation.IsDuplicateEvent(candidate, existing))

	// One millisecond apart is not a duplicate.
	existing[0].DateTime = when.Add(time.Millisecond)
	assert.False(t, validation.IsDuplicateEvent(candidate, existing))

	// Different name, same instant.
	existing[0].DateTime = when
	existing[0].Name = "Open Evening"
	assert.False(t, validation.IsDuplicateEvent(candidate, existing))

	// An event never collides with itself on update.
	existing[0].Name = "Open Day"
	existing[0].ID = candidate.ID
	assert.False(t, validation.IsDuplicateEvent(candidate, existing))
}

func validActivity() *model.UserActivity {
	return &model.UserActivity{
		UserID:   "student@example.ac.il",
		UserRole: model.RoleStudent,
		Type:     model.ActivityPageView,
		Page:     "/courses",
	}
}

func TestValidateActivity_Valid(t *testing.T) {
	res := validation.ValidateActivity(validActivity())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateActivity_Rules(t *testing.T) {
	a := validActivity()
	a.UserID = ""
	res := validation.ValidateActivity(a)
	assert.False(t, res.Valid)

	// An @ makes the user ID an email, which must then parse.
	a = validActivity()
	a.UserID = "not-an-email@"
	res = validation.ValidateActivity(a)
	assert.False(t, res.Valid)

	// Opaque IDs without @ are fine.
	a = validActivity()
	a.UserID = "visitor-1234"
	res = validation.ValidateActivity(a)
	assert.True(t, res.Valid)

	a = validActivity()
	a.UserRole = "lecturer"
	res = validation.ValidateActivity(a)
	assert.False(t, res.Valid)

	a = validActivity()
	a.Type = "login"
	res = validation.ValidateActivity(a)
	assert.False(t, res.Valid)

	a = validActivity()
	a.Page = ""
	res = validation.ValidateActivity(a)
	assert.False(t, res.Valid)
}
