package model

import "time"

// UserRole identifies the kind of visitor performing an action.
type UserRole string

const (
	RoleCandidate UserRole = "candidate"
	RoleStudent   UserRole = "student"
	RoleGraduate  UserRole = "graduate"
	RoleAdmin     UserRole = "admin"
)

// Valid reports whether the role is a member of the enumeration.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCandidate, RoleStudent, RoleGraduate, RoleAdmin:
		return true
	}
	return false
}

// ActivityType classifies a logged user action.
type ActivityType string

const (
	ActivityPageView          ActivityType = "page-view"
	ActivityCourseView        ActivityType = "course-view"
	ActivitySearch            ActivityType = "search"
	ActivityCalculatorUse     ActivityType = "calculator-use"
	ActivityContactForm       ActivityType = "contact-form"
	ActivityEventRegistration ActivityType = "event-registration"
)

// Valid reports whether the activity type is a member of the enumeration.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityPageView, ActivityCourseView, ActivitySearch,
		ActivityCalculatorUse, ActivityContactForm, ActivityEventRegistration:
		return true
	}
	return false
}

// UserActivity is one logged user action, kept append-only for analytics
// and per-user history. EventID is set only for event-registration entries.
type UserActivity struct {
	ID          string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID      string       `gorm:"type:varchar(128);not null;index" json:"userId"`
	UserRole    UserRole     `gorm:"type:varchar(16);not null" json:"userRole"`
	Type        ActivityType `gorm:"column:activity_type;type:varchar(32);not null;index" json:"activityType"`
	Description string       `gorm:"type:text" json:"description"`
	Page        string       `gorm:"type:varchar(255);not null" json:"page"`
	EventID     string       `gorm:"type:varchar(64)" json:"eventId,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;index" json:"timestamp"`
}

// TableName sets the table name.
func (UserActivity) TableName() string {
	return "user_activities"
}
