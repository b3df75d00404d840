package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
)

// Field limits and policy constants.
const (
	NameMinLen        = 2
	NameMaxLen        = 80
	DescriptionMinLen = 10
	DescriptionMaxLen = 300
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlPattern   = regexp.MustCompile(`^https?://\S+$`)

	// Markup-like sequences are rejected outright instead of escaped, so
	// stored names are safe to render anywhere.
	forbiddenNameParts = []string{"<", ">", "/", "script"}
)

// Result accumulates every rule violation for one input. Callers check
// Valid instead of handling an error value; Errors holds human-readable
// messages suitable for inline form display.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (r *Result) add(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

func newResult() Result {
	return Result{Valid: true, Errors: []string{}}
}

// ValidateEvent checks every field rule and collects all violations; it
// never stops at the first failure. The past-date rule applies only to new
// events so that editing a historical record keeps its stale date.
func ValidateEvent(e *model.Event, isNew bool) Result {
	res := newResult()
	if e == nil {
		res.add("event is required")
		return res
	}

	name := strings.TrimSpace(e.Name)
	if utf8.RuneCountInString(name) < NameMinLen || utf8.RuneCountInString(name) > NameMaxLen {
		res.add("name must be between 2 and 80 characters")
	}
	lower := strings.ToLower(name)
	for _, part := range forbiddenNameParts {
		if strings.Contains(lower, part) {
			res.add("name contains forbidden characters")
			break
		}
	}

	if !e.Type.Valid() {
		res.add("type must be one of the known event types")
	}

	desc := strings.TrimSpace(e.Description)
	if utf8.RuneCountInString(desc) < DescriptionMinLen || utf8.RuneCountInString(desc) > DescriptionMaxLen {
		res.add("description must be between 10 and 300 characters")
	}

	if e.DateTime.IsZero() {
		res.add("date and time are required")
	} else if isNew && e.DateTime.Before(time.Now()) {
		res.add("date must not be in the past")
	}

	if strings.TrimSpace(e.Location) == "" {
		res.add("location is required")
	}

	if !e.TargetAudience.Valid() {
		res.add("target audience must be candidate, student or all")
	}

	if e.MaxParticipants < 0 {
		res.add("max participants must be a positive number")
	}

	if !e.Status.Valid() {
		res.add("status must be open, full or ended")
	}

	if link := strings.TrimSpace(e.RegistrationLink); link != "" && !urlPattern.MatchString(link) {
		res.add("registration link must be a valid http(s) URL")
	}

	return res
}

// IsDuplicateEvent reports whether an existing event matches the candidate
// on both name and the exact date-time instant. Timestamps are compared as
// instants, so stored values in a different zone still match.
func IsDuplicateEvent(candidate *model.Event, existing []*model.Event) bool {
	if candidate == nil {
		return false
	}
	name := strings.TrimSpace(candidate.Name)
	for _, ev := range existing {
		if ev == nil || ev.ID == candidate.ID {
			continue
		}
		if strings.TrimSpace(ev.Name) == name && ev.DateTime.Equal(candidate.DateTime) {
			return true
		}
	}
	return false
}

// ValidateActivity checks an activity record before it is logged. A user ID
// that contains "@" is treated as an email address and must parse as one.
func ValidateActivity(a *model.UserActivity) Result {
	res := newResult()
	if a == nil {
		res.add("activity is required")
		return res
	}

	userID := strings.TrimSpace(a.UserID)
	if userID == "" {
		res.add("user ID is required")
	} else if strings.Contains(userID, "@") && !emailPattern.MatchString(userID) {
		res.add("user ID must be a valid email address")
	}

	if !a.UserRole.Valid() {
		res.add("user role must be candidate, student, graduate or admin")
	}

	if !a.Type.Valid() {
		res.add("activity type must be one of the known types")
	}

	if strings.TrimSpace(a.Page) == "" {
		res.add("page is required")
	}

	return res
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsURL reports whether s is an http(s) URL.
func IsURL(s string) bool {
	return urlPattern.MatchString(s)
}
