package model

import "time"

// PageContent is one admin-editable blob of page copy, keyed by page
// section (for example "home-hero" or "testimonials"). Data is opaque
// JSON; the API hands it to the frontend untouched. Last writer wins.
type PageContent struct {
	Key       string    `gorm:"primaryKey;type:varchar(128)" json:"key"`
	Data      []byte    `gorm:"type:text;not null" json:"data"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName sets the table name.
func (PageContent) TableName() string {
	return "page_contents"
}
