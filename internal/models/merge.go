package models

import "sort"

// MergeIntervals returns a sorted copy of intervals with overlapping or
// adjacent entries coalesced. Invalid intervals are dropped.
func MergeIntervals(intervals []TimeInterval) []TimeInterval {
	valid := make([]TimeInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Valid() {
			valid = append(valid, iv)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	merged := []TimeInterval{valid[0]}
	for _, current := range valid[1:] {
		last := &merged[len(merged)-1]
		if !current.Start.After(last.End) {
			if current.End.After(last.End) {
				last.End = current.End
			}
			continue
		}
		merged = append(merged, current)
	}

	return merged
}
