package models

import (
	"time"

	"github.com/lib/pq"
)

// MeetingStatus tracks the lifecycle of a meeting request.
type MeetingStatus string

const (
	MeetingStatusPending   MeetingStatus = "pending"
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// Meeting is a persisted meeting request with its search window.
type Meeting struct {
	ID                string         `db:"id" json:"id"`
	Title             string         `db:"title" json:"title"`
	Organizer         string         `db:"organizer" json:"organizer"`
	ParticipantEmails pq.StringArray `db:"participant_emails" json:"participant_emails"`
	WindowStart       time.Time      `db:"window_start" json:"window_start"`
	WindowEnd         time.Time      `db:"window_end" json:"window_end"`
	DurationMinutes   int            `db:"duration_minutes" json:"duration_minutes"`
	Status            MeetingStatus  `db:"status" json:"status"`
	SuggestedStart    *time.Time     `db:"suggested_start" json:"suggested_start,omitempty"`
	ScheduledStart    *time.Time     `db:"scheduled_start" json:"scheduled_start,omitempty"`
	ScheduledEnd      *time.Time     `db:"scheduled_end" json:"scheduled_end,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// MeetingFilter describes query params for listing meetings.
type MeetingFilter struct {
	Status    string
	Organizer string
	Page      int
	PageSize  int
}
