package service

import (
	"sort"
	"time"

	"github.com/meetwise/meetwise-api/internal/models"
)

// Candidate starts are aligned to quarter-hour boundaries so proposals look
// calendar-idiomatic and the search stays bounded by free minutes / 15.
const candidateStepMinutes = 15

// generateCandidates produces the deduplicated, ascending set of start times
// worth evaluating: every quarter-hour-aligned start inside any participant's
// free interval that leaves room for the full duration, falls inside working
// hours and is not on a weekend. Deterministic for identical availability.
func generateCandidates(avail models.ParticipantAvailability, req models.SchedulingRequirements) []time.Time {
	duration := req.Duration()
	step := candidateStepMinutes * time.Minute
	seen := make(map[int64]time.Time)

	for _, intervals := range avail {
		for _, interval := range intervals {
			if !interval.Valid() {
				continue
			}
			for current := floorToQuarter(interval.Start); !current.Add(duration).After(interval.End); current = current.Add(step) {
				if isWeekend(current) {
					continue
				}
				tod := models.TimeOfDayAt(current)
				if tod < req.WorkingHoursStart || tod > req.WorkingHoursEnd {
					continue
				}
				seen[current.Unix()] = current
			}
		}
	}

	candidates := make([]time.Time, 0, len(seen))
	for _, c := range seen {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Before(candidates[j])
	})

	return candidates
}

// floorToQuarter aligns t to the quarter-hour boundary at or before it.
func floorToQuarter(t time.Time) time.Time {
	aligned := t.Minute() / candidateStepMinutes * candidateStepMinutes
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), aligned, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
