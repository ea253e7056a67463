package domain

import "time"

// CallRecord is a logged call belonging to a client account. Records are
// created by the call-processing pipeline; the portal only mutates and
// deletes them.
type CallRecord struct {
	ID              string
	ClientID        int64
	LeadID          *int64
	Status          string
	Direction       string
	FromNumber      string
	ToNumber        string
	DurationSeconds int
	Summary         string
	Notes           string
	Recording       string
	StartedAt       *time.Time
	EndedAt         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
