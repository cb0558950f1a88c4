package models

import "time"

// Report is a maintenance or incident report filed for a user.
// User holds the owner's ID; there is no cascade when the owner is deleted.
type Report struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	User      string    `json:"user" gorm:"index;type:varchar(36);not null"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Completed bool      `json:"completed" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReportWithUsername is a report enriched with its owner's name.
// Username is nil when the owner no longer exists.
type ReportWithUsername struct {
	Report
	Username *string `json:"username"`
}
