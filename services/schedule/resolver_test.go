package schedule

import (
	"testing"

	"tutorhive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeSlot(id string, day, start, end int) models.ScheduleSlot {
	return models.ScheduleSlot{
		ID: id, TutorID: "tutor-1", DayOfWeek: day,
		Interval: iv(start, end), Kind: models.SlotFree,
	}
}

func committedSlot(id, classRef string, day, start, end int) models.ScheduleSlot {
	return models.ScheduleSlot{
		ID: id, TutorID: "tutor-1", DayOfWeek: day,
		Interval: iv(start, end), Kind: models.SlotCommitted, ClassRef: classRef,
	}
}

func TestResolveCommitSplitsFreeTime(t *testing.T) {
	// Free 9:00-17:00; commit 10:00-11:00 leaves 9:00-10:00 and 11:00-17:00.
	existing := []models.ScheduleSlot{freeSlot("f1", 2, 540, 1020)}

	delta, err := ResolveCommit("tutor-1", "class-1", 2, iv(600, 660), existing)
	require.NoError(t, err)

	assert.Equal(t, []string{"f1"}, delta.Removals)
	require.Len(t, delta.Insertions, 3)
	assert.Equal(t, iv(540, 600), delta.Insertions[0].Interval)
	assert.Equal(t, models.SlotFree, delta.Insertions[0].Kind)
	assert.Equal(t, iv(660, 1020), delta.Insertions[1].Interval)
	assert.Equal(t, models.SlotFree, delta.Insertions[1].Kind)

	committed := delta.Insertions[2]
	assert.Equal(t, iv(600, 660), committed.Interval)
	assert.Equal(t, models.SlotCommitted, committed.Kind)
	assert.Equal(t, "class-1", committed.ClassRef)
	assert.NotEmpty(t, committed.ID)
}

func TestResolveCommitConsumesExactMatch(t *testing.T) {
	existing := []models.ScheduleSlot{freeSlot("f1", 3, 600, 660)}

	delta, err := ResolveCommit("tutor-1", "class-1", 3, iv(600, 660), existing)
	require.NoError(t, err)

	// No residual free pieces: the proposal consumed the slot exactly.
	assert.Equal(t, []string{"f1"}, delta.Removals)
	require.Len(t, delta.Insertions, 1)
	assert.Equal(t, models.SlotCommitted, delta.Insertions[0].Kind)
}

func TestResolveCommitPrunesShortRemainders(t *testing.T) {
	// Free 9:00-10:15; commit 9:00-9:50 leaves 25 minutes, below the minimum.
	existing := []models.ScheduleSlot{freeSlot("f1", 4, 540, 615)}

	delta, err := ResolveCommit("tutor-1", "class-1", 4, iv(540, 590), existing)
	require.NoError(t, err)

	assert.Equal(t, []string{"f1"}, delta.Removals)
	require.Len(t, delta.Insertions, 1)
	assert.Equal(t, models.SlotCommitted, delta.Insertions[0].Kind)
}

func TestResolveCommitRejectsCommittedOverlap(t *testing.T) {
	existing := []models.ScheduleSlot{committedSlot("c1", "class-1", 2, 600, 660)}

	_, err := ResolveCommit("tutor-1", "class-2", 2, iv(630, 690), existing)
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, conflict.DayOfWeek)
	assert.Equal(t, iv(600, 660), conflict.Interval)
	assert.Contains(t, err.Error(), "10:00:00")
	assert.Contains(t, err.Error(), "11:00:00")
}

func TestResolveCommitIgnoresOtherDays(t *testing.T) {
	existing := []models.ScheduleSlot{
		committedSlot("c1", "class-1", 2, 600, 660),
		freeSlot("f1", 5, 600, 660),
	}

	// Same clock time, different day: no conflict, no split.
	delta, err := ResolveCommit("tutor-1", "class-2", 3, iv(600, 660), existing)
	require.NoError(t, err)
	assert.Empty(t, delta.Removals)
	require.Len(t, delta.Insertions, 1)
	assert.Equal(t, models.SlotCommitted, delta.Insertions[0].Kind)
}

func TestResolveCommitTouchingCommittedIsAccepted(t *testing.T) {
	existing := []models.ScheduleSlot{committedSlot("c1", "class-1", 2, 540, 600)}

	delta, err := ResolveCommit("tutor-1", "class-2", 2, iv(600, 660), existing)
	require.NoError(t, err)
	require.Len(t, delta.Insertions, 1)
}

func TestResolveDeclareReplacesFreeTimeOnly(t *testing.T) {
	existing := []models.ScheduleSlot{
		freeSlot("f1", 2, 540, 600),
		freeSlot("f2", 2, 900, 1020),
		committedSlot("c1", "class-1", 2, 660, 720),
		freeSlot("f3", 3, 540, 600), // other day, untouched
	}

	delta := ResolveDeclare("tutor-1", 2, []models.TimeInterval{iv(480, 540), iv(540, 620)}, existing)

	assert.ElementsMatch(t, []string{"f1", "f2"}, delta.Removals)
	require.Len(t, delta.Insertions, 1)
	assert.Equal(t, iv(480, 620), delta.Insertions[0].Interval, "adjacent declares merge")
	assert.Equal(t, models.SlotFree, delta.Insertions[0].Kind)
}

func TestResolveReleaseMergesFreedTime(t *testing.T) {
	committed := []models.ScheduleSlot{committedSlot("c1", "class-1", 2, 600, 660)}
	existing := []models.ScheduleSlot{
		committedSlot("c1", "class-1", 2, 600, 660),
		freeSlot("f1", 2, 540, 600),
		freeSlot("f2", 2, 660, 720),
		committedSlot("c2", "class-2", 2, 780, 840), // stays put
	}

	delta := ResolveRelease("tutor-1", committed, existing)

	assert.ElementsMatch(t, []string{"c1", "f1", "f2"}, delta.Removals)
	require.Len(t, delta.Insertions, 1)
	assert.Equal(t, iv(540, 720), delta.Insertions[0].Interval)
	assert.Equal(t, models.SlotFree, delta.Insertions[0].Kind)
	assert.Empty(t, delta.Insertions[0].ClassRef)
}

func TestResolveReleaseMultipleDays(t *testing.T) {
	committed := []models.ScheduleSlot{
		committedSlot("c1", "class-1", 2, 600, 660),
		committedSlot("c2", "class-1", 4, 900, 960),
	}

	delta := ResolveRelease("tutor-1", committed, committed)

	assert.ElementsMatch(t, []string{"c1", "c2"}, delta.Removals)
	require.Len(t, delta.Insertions, 2)
	days := []int{delta.Insertions[0].DayOfWeek, delta.Insertions[1].DayOfWeek}
	assert.ElementsMatch(t, []int{2, 4}, days)
}

func TestApplyToWorkingSet(t *testing.T) {
	working := []models.ScheduleSlot{
		freeSlot("f1", 2, 540, 1020),
		committedSlot("c1", "class-1", 3, 600, 660),
	}

	delta, err := ResolveCommit("tutor-1", "class-2", 2, iv(600, 660), working)
	require.NoError(t, err)
	working = applyToWorkingSet(working, delta)

	// The original free slot is gone; a second commit into the consumed hour
	// now collides with the freshly committed slot.
	_, err = ResolveCommit("tutor-1", "class-3", 2, iv(630, 690), working)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}
