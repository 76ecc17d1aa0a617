package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetwise/meetwise-api/internal/models"
)

// 2025-03-04 is a Tuesday, 2025-03-08 a Saturday.
var (
	testTuesday  = time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	testSaturday = time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func testRequirements(durationMinutes int) models.SchedulingRequirements {
	return models.SchedulingRequirements{
		DurationMinutes:    durationMinutes,
		PreferredTimeOfDay: models.TimeOfDay(10 * 60),
		WorkingHoursStart:  models.TimeOfDay(9 * 60),
		WorkingHoursEnd:    models.TimeOfDay(17 * 60),
		MaxResults:         5,
	}
}

func TestGenerateCandidatesFullWorkingDay(t *testing.T) {
	avail := models.ParticipantAvailability{
		"alice@example.com": {{Start: at(testTuesday, 9, 0), End: at(testTuesday, 17, 0)}},
	}

	candidates := generateCandidates(avail, testRequirements(60))

	// 09:00 through 16:00 inclusive in 15-minute steps.
	require.Len(t, candidates, 29)
	assert.Equal(t, at(testTuesday, 9, 0), candidates[0])
	assert.Equal(t, at(testTuesday, 16, 0), candidates[len(candidates)-1])
	for _, c := range candidates {
		assert.Zero(t, c.Minute()%15, "candidate %s not quarter-aligned", c)
	}
}

func TestGenerateCandidatesFloorsToQuarterBoundary(t *testing.T) {
	avail := models.ParticipantAvailability{
		"alice@example.com": {{Start: at(testTuesday, 9, 7), End: at(testTuesday, 10, 30)}},
	}

	candidates := generateCandidates(avail, testRequirements(30))

	require.NotEmpty(t, candidates)
	assert.Equal(t, at(testTuesday, 9, 0), candidates[0])
	assert.Equal(t, at(testTuesday, 10, 0), candidates[len(candidates)-1])
	for _, c := range candidates {
		assert.Zero(t, c.Minute()%15)
	}
}

func TestGenerateCandidatesSkipsWeekends(t *testing.T) {
	avail := models.ParticipantAvailability{
		"alice@example.com": {{Start: at(testSaturday, 9, 0), End: at(testSaturday, 17, 0)}},
	}

	candidates := generateCandidates(avail, testRequirements(60))
	assert.Empty(t, candidates)
}

func TestGenerateCandidatesHonoursWorkingHours(t *testing.T) {
	avail := models.ParticipantAvailability{
		"alice@example.com": {{Start: at(testTuesday, 7, 0), End: at(testTuesday, 19, 0)}},
	}

	candidates := generateCandidates(avail, testRequirements(60))

	require.NotEmpty(t, candidates)
	assert.Equal(t, at(testTuesday, 9, 0), candidates[0])
	for _, c := range candidates {
		tod := models.TimeOfDayAt(c)
		assert.GreaterOrEqual(t, int(tod), 9*60)
		assert.LessOrEqual(t, int(tod), 17*60)
	}
}

func TestGenerateCandidatesDeduplicatesAcrossParticipants(t *testing.T) {
	interval := models.TimeInterval{Start: at(testTuesday, 10, 0), End: at(testTuesday, 12, 0)}
	one := models.ParticipantAvailability{"alice@example.com": {interval}}
	two := models.ParticipantAvailability{
		"alice@example.com": {interval},
		"bob@example.com":   {interval},
	}

	req := testRequirements(60)
	assert.Equal(t, generateCandidates(one, req), generateCandidates(two, req))
}

func TestGenerateCandidatesIntervalShorterThanDuration(t *testing.T) {
	avail := models.ParticipantAvailability{
		"alice@example.com": {{Start: at(testTuesday, 10, 0), End: at(testTuesday, 10, 30)}},
	}

	candidates := generateCandidates(avail, testRequirements(60))
	assert.Empty(t, candidates)
}

func TestGenerateCandidatesSortedAscending(t *testing.T) {
	avail := models.ParticipantAvailability{
		"alice@example.com": {
			{Start: at(testTuesday, 14, 0), End: at(testTuesday, 15, 0)},
			{Start: at(testTuesday, 9, 0), End: at(testTuesday, 10, 0)},
		},
	}

	candidates := generateCandidates(avail, testRequirements(30))
	require.NotEmpty(t, candidates)
	for i := 1; i < len(candidates); i++ {
		assert.True(t, candidates[i-1].Before(candidates[i]))
	}
}

func TestGenerateCandidatesEmptyAvailability(t *testing.T) {
	avail := models.ParticipantAvailability{
		"alice@example.com": {},
		"bob@example.com":   nil,
	}

	candidates := generateCandidates(avail, testRequirements(30))
	assert.Empty(t, candidates)
}
