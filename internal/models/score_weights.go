package models

// ScoreWeights names every term of the slot scoring heuristic so weights stay
// tunable and testable independently of the ranking logic.
type ScoreWeights struct {
	// AttendanceBase is multiplied by the available/total ratio.
	AttendanceBase float64
	// FullAttendanceBonus applies when every participant can attend.
	FullAttendanceBonus float64
	// WorkingHoursBonus applies when the start time falls inside working hours.
	WorkingHoursBonus float64
	// PreferredTimeBonus scales linearly down to zero across PreferredTimeRangeHours.
	PreferredTimeBonus      float64
	PreferredTimeRangeHours float64
	// MorningBonus applies to starts in [09:00, 12:00).
	MorningBonus float64
	// QuarterAlignBonus applies to :00/:15/:30/:45 starts.
	QuarterAlignBonus float64
	// LateAfternoonPenalty is subtracted for starts at or after 16:00.
	LateAfternoonPenalty float64
	// WeekendPenalty is subtracted on Saturday and Sunday.
	WeekendPenalty float64
	// MidweekBonus applies on Tuesday, Wednesday and Thursday.
	MidweekBonus float64
}

// DefaultScoreWeights returns the production weight table.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		AttendanceBase:          100,
		FullAttendanceBonus:     25,
		WorkingHoursBonus:       20,
		PreferredTimeBonus:      15,
		PreferredTimeRangeHours: 2,
		MorningBonus:            10,
		QuarterAlignBonus:       5,
		LateAfternoonPenalty:    5,
		WeekendPenalty:          15,
		MidweekBonus:            5,
	}
}
