package model

import (
	"strings"
	"time"
)

// EventType classifies a department event.
type EventType string

const (
	EventTypeInfoDay     EventType = "info-day"
	EventTypeCollegeTour EventType = "college-tour"
	EventTypeYearOpening EventType = "year-opening"
	EventTypeWorkshop    EventType = "workshop"
	EventTypeWebinar     EventType = "webinar"
	EventTypeOther       EventType = "other"
)

// EventTypes lists every valid event type.
var EventTypes = []EventType{
	EventTypeInfoDay,
	EventTypeCollegeTour,
	EventTypeYearOpening,
	EventTypeWorkshop,
	EventTypeWebinar,
	EventTypeOther,
}

// Valid reports whether the event type is a member of the enumeration.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeInfoDay, EventTypeCollegeTour, EventTypeYearOpening,
		EventTypeWorkshop, EventTypeWebinar, EventTypeOther:
		return true
	}
	return false
}

// Audience is the population an event targets.
type Audience string

const (
	AudienceCandidate Audience = "candidate"
	AudienceStudent   Audience = "student"
	AudienceAll       Audience = "all"
)

// Valid reports whether the audience is a member of the enumeration.
func (a Audience) Valid() bool {
	switch a {
	case AudienceCandidate, AudienceStudent, AudienceAll:
		return true
	}
	return false
}

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	StatusOpen  EventStatus = "open"
	StatusFull  EventStatus = "full"
	StatusEnded EventStatus = "ended"
)

// Valid reports whether the status is a member of the enumeration.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusFull, StatusEnded:
		return true
	}
	return false
}

// Label returns the display label for a status.
func (s EventStatus) Label() string {
	switch s {
	case StatusOpen:
		return "Registration open"
	case StatusFull:
		return "Full"
	case StatusEnded:
		return "Ended"
	}
	return "Unknown"
}

// Color returns the UI color key for a status.
func (s EventStatus) Color() string {
	switch s {
	case StatusOpen:
		return "green"
	case StatusFull:
		return "orange"
	case StatusEnded:
		return "gray"
	}
	return "gray"
}

// Event is a scheduled department activity candidates and students may
// register for. Participant counters are mutated only through the
// registration operations, never by direct field writes.
type Event struct {
	ID                  string      `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name                string      `gorm:"type:varchar(128);not null;index" json:"name"`
	Type                EventType   `gorm:"type:varchar(32);not null" json:"type"`
	Description         string      `gorm:"type:text;not null" json:"description"`
	DateTime            time.Time   `gorm:"not null;index" json:"dateTime"`
	Location            string      `gorm:"type:varchar(255);not null" json:"location"`
	TargetAudience      Audience    `gorm:"type:varchar(16);not null;default:'all'" json:"targetAudience"`
	MaxParticipants     int         `gorm:"not null;default:0" json:"maxParticipants"` // 0 = unlimited
	CurrentParticipants int         `gorm:"not null;default:0" json:"currentParticipants"`
	Status              EventStatus `gorm:"type:varchar(16);not null;default:'open';index" json:"status"`
	RegistrationLink    string      `gorm:"type:varchar(512)" json:"registrationLink,omitempty"`
	CreatedAt           time.Time   `gorm:"not null" json:"createdAt"`
	UpdatedAt           time.Time   `gorm:"not null" json:"updatedAt"`
}

// TableName sets the table name.
func (Event) TableName() string {
	return "events"
}

// HasCapacity reports whether a participant limit is set.
func (e *Event) HasCapacity() bool {
	return e.MaxParticipants > 0
}

// AtCapacity reports whether the participant limit has been reached.
func (e *Event) AtCapacity() bool {
	return e.HasCapacity() && e.CurrentParticipants >= e.MaxParticipants
}

// LocationIsURL reports whether the location is an online meeting link
// rather than a physical address.
func (e *Event) LocationIsURL() bool {
	return strings.HasPrefix(e.Location, "http://") || strings.HasPrefix(e.Location, "https://")
}
