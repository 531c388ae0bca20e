// Package model defines the data structures shared across the application.
package model

import "time"

// DateLayout formats submission dates. The daily digest filters records
// by string-exact date match, so both sides must use this layout.
const DateLayout = "2006-01-02"

// Profile is one user directory entry. A profile exists exactly when the
// user has completed the name-capture step; it is never mutated afterward.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AttendanceRecord is one day-selection fact. Records are append-only and
// never deduplicated: a user who submits twice appears twice.
type AttendanceRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Day       string    `json:"day"`
	Date      string    `json:"date"`
}
