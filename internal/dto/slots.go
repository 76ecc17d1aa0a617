package dto

import "time"

// FindSlotsRequest describes a slot search. Working hours and preferred time
// are HH:MM overrides; zero values fall back to configured defaults.
type FindSlotsRequest struct {
	ParticipantIDs    []string  `json:"participant_ids" validate:"required,min=1,dive,required"`
	WindowStart       time.Time `json:"window_start" validate:"required"`
	WindowEnd         time.Time `json:"window_end" validate:"required"`
	DurationMinutes   int       `json:"duration_minutes" validate:"required,gt=0"`
	MaxResults        int       `json:"max_results" validate:"omitempty,gt=0"`
	WorkingHoursStart string    `json:"working_hours_start,omitempty"`
	WorkingHoursEnd   string    `json:"working_hours_end,omitempty"`
	PreferredTime     string    `json:"preferred_time,omitempty"`
}
