package schedule

import (
	"time"

	"tutorhive/models"

	"github.com/google/uuid"
)

// The conflict resolver classifies one proposed interval against one day of a
// tutor's existing slots and computes the staged slot delta. It never applies
// anything; the orchestrator owns application.

// ResolveCommit stages the delta for a class-commit request on a single day.
// A hard conflict with any committed slot rejects with a ConflictError; free
// time overlapping the proposal is split, short remainders pruned, and the
// proposal inserted as a committed slot. A proposal touching no existing slot
// at all is accepted as a plain new committed slot.
func ResolveCommit(tutorID, classRef string, day int, proposed models.TimeInterval, existing []models.ScheduleSlot) (models.SlotDelta, error) {
	var delta models.SlotDelta

	for _, slot := range existing {
		if slot.DayOfWeek != day || slot.Kind != models.SlotCommitted {
			continue
		}
		if Overlaps(slot.Interval, proposed) {
			return models.SlotDelta{}, &ConflictError{DayOfWeek: day, Interval: slot.Interval}
		}
	}

	for _, slot := range existing {
		if slot.DayOfWeek != day || slot.Kind != models.SlotFree {
			continue
		}
		if !Overlaps(slot.Interval, proposed) {
			continue
		}
		delta.Removals = append(delta.Removals, slot.ID)
		rest := PruneShort(Subtract(slot.Interval, proposed), models.MinBookableMinutes)
		for _, iv := range rest {
			delta.Insertions = append(delta.Insertions, newSlot(tutorID, day, iv, models.SlotFree, ""))
		}
	}

	delta.Insertions = append(delta.Insertions, newSlot(tutorID, day, proposed, models.SlotCommitted, classRef))
	return delta, nil
}

// ResolveDeclare stages a wholesale replacement of one day's free time.
// Committed slots on the day are never touched by this path. The new
// intervals are merged into maximal blocks and short ones dropped.
func ResolveDeclare(tutorID string, day int, intervals []models.TimeInterval, existing []models.ScheduleSlot) models.SlotDelta {
	var delta models.SlotDelta

	for _, slot := range existing {
		if slot.DayOfWeek == day && slot.Kind == models.SlotFree {
			delta.Removals = append(delta.Removals, slot.ID)
		}
	}

	for _, iv := range PruneShort(Merge(intervals), models.MinBookableMinutes) {
		delta.Insertions = append(delta.Insertions, newSlot(tutorID, day, iv, models.SlotFree, ""))
	}
	return delta
}

// ResolveRelease stages removal of every slot committed to classRef and the
// return of the freed intervals as merged free time on each touched day.
func ResolveRelease(tutorID string, committed, existing []models.ScheduleSlot) models.SlotDelta {
	var delta models.SlotDelta
	freedByDay := make(map[int][]models.TimeInterval)

	for _, slot := range committed {
		delta.Removals = append(delta.Removals, slot.ID)
		freedByDay[slot.DayOfWeek] = append(freedByDay[slot.DayOfWeek], slot.Interval)
	}

	for day, freed := range freedByDay {
		merged := freed
		for _, slot := range existing {
			if slot.DayOfWeek != day || slot.Kind != models.SlotFree {
				continue
			}
			delta.Removals = append(delta.Removals, slot.ID)
			merged = append(merged, slot.Interval)
		}
		for _, iv := range PruneShort(Merge(merged), models.MinBookableMinutes) {
			delta.Insertions = append(delta.Insertions, newSlot(tutorID, day, iv, models.SlotFree, ""))
		}
	}
	return delta
}

// applyToWorkingSet replays a staged delta onto the in-memory slot list so
// that later pairs in the same batch see earlier accepted ones.
func applyToWorkingSet(slots []models.ScheduleSlot, delta models.SlotDelta) []models.ScheduleSlot {
	removed := make(map[string]bool, len(delta.Removals))
	for _, id := range delta.Removals {
		removed[id] = true
	}
	next := slots[:0:0]
	for _, slot := range slots {
		if !removed[slot.ID] {
			next = append(next, slot)
		}
	}
	return append(next, delta.Insertions...)
}

func newSlot(tutorID string, day int, iv models.TimeInterval, kind models.SlotKind, classRef string) models.ScheduleSlot {
	return models.ScheduleSlot{
		ID:        uuid.New().String(),
		TutorID:   tutorID,
		DayOfWeek: day,
		Interval:  iv,
		Kind:      kind,
		ClassRef:  classRef,
		CreatedAt: time.Now().UTC(),
	}
}
