package dto

import (
	"time"

	"github.com/meetwise/meetwise-api/internal/models"
)

// CreateMeetingRequest registers a meeting request and computes proposals.
type CreateMeetingRequest struct {
	Title             string    `json:"title" validate:"required"`
	Organizer         string    `json:"organizer" validate:"required,email"`
	ParticipantEmails []string  `json:"participant_emails" validate:"required,min=1,dive,email"`
	WindowStart       time.Time `json:"window_start" validate:"required"`
	WindowEnd         time.Time `json:"window_end" validate:"required"`
	DurationMinutes   int       `json:"duration_minutes" validate:"required,gt=0"`
}

// ConfirmMeetingRequest pins a meeting to one of its proposed starts.
type ConfirmMeetingRequest struct {
	Start time.Time `json:"start" validate:"required"`
}

// MeetingWithProposals pairs a stored meeting with its ranked slot proposals.
type MeetingWithProposals struct {
	Meeting   models.Meeting      `json:"meeting"`
	Proposals []models.RankedSlot `json:"proposals"`
}
