package model

import "time"

// AdminUser is a panel account allowed to edit site content and events.
type AdminUser struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email        string    `gorm:"type:varchar(128);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

// TableName sets the table name.
func (AdminUser) TableName() string {
	return "admin_users"
}
