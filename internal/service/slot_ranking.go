package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meetwise/meetwise-api/internal/models"
)

const reasonNotAvailable = "not available"

// Time-of-day thresholds for the scoring heuristic, minutes from midnight.
const (
	morningStart       = models.TimeOfDay(9 * 60)
	morningEnd         = models.TimeOfDay(12 * 60)
	lateAfternoonStart = models.TimeOfDay(16 * 60)
)

// rankCandidates scores every candidate start, drops those below quorum and
// returns the surviving slots sorted by score descending, ties broken by start
// ascending. Pure over its inputs and safe for concurrent use.
func rankCandidates(
	candidates []time.Time,
	avail models.ParticipantAvailability,
	window models.TimeInterval,
	req models.SchedulingRequirements,
	weights models.ScoreWeights,
) []models.RankedSlot {
	ids := sortedParticipantIDs(avail)
	total := len(ids)
	quorum := total / 2
	if quorum < 1 {
		quorum = 1
	}

	slots := make([]models.RankedSlot, 0, len(candidates))
	for _, start := range candidates {
		slot := models.TimeInterval{Start: start, End: start.Add(req.Duration())}

		available := make([]models.ParticipantID, 0, total)
		conflicts := make([]models.ParticipantConflict, 0)
		for _, id := range ids {
			if containsSlot(avail[id], slot) {
				available = append(available, id)
				continue
			}
			conflicts = append(conflicts, conflictFor(id, avail[id], slot, window))
		}

		if len(available) < quorum {
			continue
		}

		slots = append(slots, models.RankedSlot{
			Start:                   slot.Start,
			End:                     slot.End,
			Score:                   scoreSlot(slot.Start, len(available), total, req, weights),
			AvailableCount:          len(available),
			TotalCount:              total,
			AvailableParticipantIDs: available,
			UnavailableParticipants: conflicts,
		})
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Score != slots[j].Score {
			return slots[i].Score > slots[j].Score
		}
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots
}

// scoreSlot accumulates the weighted heuristic terms for a candidate start.
// The result is clamped at zero; there is no upper bound.
func scoreSlot(start time.Time, available, total int, req models.SchedulingRequirements, w models.ScoreWeights) float64 {
	score := float64(available) / float64(total) * w.AttendanceBase

	if available == total {
		score += w.FullAttendanceBonus
	}

	tod := models.TimeOfDayAt(start)
	if tod >= req.WorkingHoursStart && tod <= req.WorkingHoursEnd {
		score += w.WorkingHoursBonus
	}

	if w.PreferredTimeRangeHours > 0 {
		dist := math.Abs(tod.Hours() - req.PreferredTimeOfDay.Hours())
		if dist <= w.PreferredTimeRangeHours {
			score += w.PreferredTimeBonus * (1 - dist/w.PreferredTimeRangeHours)
		}
	}

	if tod >= morningStart && tod < morningEnd {
		score += w.MorningBonus
	}

	if start.Minute()%candidateStepMinutes == 0 {
		score += w.QuarterAlignBonus
	}

	if tod >= lateAfternoonStart {
		score -= w.LateAfternoonPenalty
	}

	switch start.Weekday() {
	case time.Saturday, time.Sunday:
		score -= w.WeekendPenalty
	case time.Tuesday, time.Wednesday, time.Thursday:
		score += w.MidweekBonus
	}

	if score < 0 {
		score = 0
	}
	return score
}

// containsSlot reports whether any free interval fully covers the slot.
func containsSlot(free []models.TimeInterval, slot models.TimeInterval) bool {
	for _, iv := range free {
		if iv.Contains(slot) {
			return true
		}
	}
	return false
}

// conflictFor builds the conflict detail for an unavailable participant. When
// a busy block derived from the free intervals overlaps the slot, the reason
// names the block's end; a participant with no availability data at all gets
// the generic reason since no concrete busy block is known.
func conflictFor(id models.ParticipantID, free []models.TimeInterval, slot, window models.TimeInterval) models.ParticipantConflict {
	if len(free) == 0 {
		return models.ParticipantConflict{ParticipantID: id, Reason: reasonNotAvailable}
	}
	for _, busy := range busyView(free, window) {
		if busy.Overlaps(slot) {
			start := busy.Start
			end := busy.End
			return models.ParticipantConflict{
				ParticipantID: id,
				Reason:        fmt.Sprintf("Meeting until %s", end.Format("15:04")),
				ConflictStart: &start,
				ConflictEnd:   &end,
			}
		}
	}
	return models.ParticipantConflict{ParticipantID: id, Reason: reasonNotAvailable}
}

// busyView inverts a participant's free intervals into busy blocks within the
// queried window.
func busyView(free []models.TimeInterval, window models.TimeInterval) []models.TimeInterval {
	busy := make([]models.TimeInterval, 0)
	cursor := window.Start
	for _, iv := range models.MergeIntervals(free) {
		if !iv.Overlaps(window) {
			continue
		}
		start := iv.Start
		if start.Before(window.Start) {
			start = window.Start
		}
		if start.After(cursor) {
			busy = append(busy, models.TimeInterval{Start: cursor, End: start})
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}
	if cursor.Before(window.End) {
		busy = append(busy, models.TimeInterval{Start: cursor, End: window.End})
	}
	return busy
}

func sortedParticipantIDs(avail models.ParticipantAvailability) []models.ParticipantID {
	ids := make([]models.ParticipantID, 0, len(avail))
	for id := range avail {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
