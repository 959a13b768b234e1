package schedule

import (
	"sort"

	"tutorhive/models"
)

// Pure interval algebra over half-open minute ranges. Everything here is
// deterministic and side-effect free; the resolver and orchestrator build on
// these rather than mutating intervals in place.

// Overlaps reports whether two half-open intervals share any time. Touching
// endpoints do not overlap.
func Overlaps(a, b models.TimeInterval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Subtract removes cut from base and returns the remainder: zero pieces when
// cut covers base, one when it clips an edge, two when it is strictly
// interior, and base unchanged when they do not overlap.
func Subtract(base, cut models.TimeInterval) []models.TimeInterval {
	if !Overlaps(base, cut) {
		return []models.TimeInterval{base}
	}
	var rest []models.TimeInterval
	if cut.Start > base.Start {
		rest = append(rest, models.TimeInterval{Start: base.Start, End: cut.Start})
	}
	if cut.End < base.End {
		rest = append(rest, models.TimeInterval{Start: cut.End, End: base.End})
	}
	return rest
}

// SubtractAll folds Subtract over every cut in turn.
func SubtractAll(base models.TimeInterval, cuts []models.TimeInterval) []models.TimeInterval {
	rest := []models.TimeInterval{base}
	for _, cut := range cuts {
		var next []models.TimeInterval
		for _, iv := range rest {
			next = append(next, Subtract(iv, cut)...)
		}
		rest = next
	}
	return rest
}

// PruneShort drops intervals shorter than minMinutes.
func PruneShort(intervals []models.TimeInterval, minMinutes int) []models.TimeInterval {
	var kept []models.TimeInterval
	for _, iv := range intervals {
		if iv.Duration() >= minMinutes {
			kept = append(kept, iv)
		}
	}
	return kept
}

// Merge sorts intervals by start and coalesces overlapping or touching ones
// into maximal contiguous blocks. Idempotent.
func Merge(intervals []models.TimeInterval) []models.TimeInterval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]models.TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []models.TimeInterval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
