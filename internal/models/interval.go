package models

import (
	"fmt"
	"time"
)

// ParticipantID identifies a meeting participant, typically by email address.
type ParticipantID string

// TimeInterval is a half-open time window [Start, End). Invariant: Start < End.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the interval satisfies Start < End.
func (i TimeInterval) Valid() bool {
	return i.Start.Before(i.End)
}

// Duration returns the interval length.
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Contains reports whether the interval fully covers other.
func (i TimeInterval) Contains(other TimeInterval) bool {
	return !i.Start.After(other.Start) && !i.End.Before(other.End)
}

// Overlaps reports whether the two half-open intervals share any instant.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// ParticipantAvailability maps each participant to the ordered free intervals
// within a queried window. Built once by the availability accessor and treated
// as read-only afterwards.
type ParticipantAvailability map[ParticipantID][]TimeInterval

// CachedAvailability is the cache payload for one participant's free intervals.
type CachedAvailability struct {
	Intervals   []TimeInterval `json:"intervals"`
	FetchedAt   time.Time      `json:"fetched_at"`
	WindowStart time.Time      `json:"window_start"`
	WindowEnd   time.Time      `json:"window_end"`
}

// Covers reports whether the cached window spans the requested one.
func (c CachedAvailability) Covers(window TimeInterval) bool {
	return !c.WindowStart.After(window.Start) && !c.WindowEnd.Before(window.End)
}

// TimeOfDay is a wall-clock time expressed as minutes from midnight.
type TimeOfDay int

// At projects the time of day onto the given instant's date and location.
func (t TimeOfDay) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), int(t)/60, int(t)%60, 0, 0, day.Location())
}

// Hours returns the time of day as fractional hours.
func (t TimeOfDay) Hours() float64 {
	return float64(t) / 60
}

// String renders HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ParseTimeOfDay parses an HH:MM clock value.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", raw, err)
	}
	return TimeOfDay(parsed.Hour()*60 + parsed.Minute()), nil
}

// TimeOfDayAt extracts the time of day of an instant in its own location.
func TimeOfDayAt(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// SchedulingRequirements is the immutable configuration a slot search runs under.
type SchedulingRequirements struct {
	DurationMinutes    int
	PreferredTimeOfDay TimeOfDay
	WorkingHoursStart  TimeOfDay
	WorkingHoursEnd    TimeOfDay
	MaxResults         int
}

// Duration returns the requested meeting length.
func (r SchedulingRequirements) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

// ParticipantConflict explains why a participant cannot attend a candidate slot.
// ConflictStart/End are set only when a concrete overlapping busy block is known.
type ParticipantConflict struct {
	ParticipantID ParticipantID `json:"participant_id"`
	Reason        string        `json:"reason"`
	ConflictStart *time.Time    `json:"conflict_start,omitempty"`
	ConflictEnd   *time.Time    `json:"conflict_end,omitempty"`
}

// RankedSlot is a scored candidate meeting window. Derived output, never
// mutated after creation.
type RankedSlot struct {
	Start                   time.Time             `json:"start"`
	End                     time.Time             `json:"end"`
	Score                   float64               `json:"score"`
	AvailableCount          int                   `json:"available_count"`
	TotalCount              int                   `json:"total_count"`
	AvailableParticipantIDs []ParticipantID       `json:"available_participant_ids"`
	UnavailableParticipants []ParticipantConflict `json:"unavailable_participants"`
}
