package models

import (
	"fmt"
	"time"
)

// MinBookableMinutes is the shortest free-time block worth keeping on a
// tutor's calendar. Remainders below this are pruned after every split.
const MinBookableMinutes = 30

// SlotKind distinguishes declared free time from time promised to a class.
type SlotKind string

const (
	// SlotFree is availability a tutor has declared but not yet assigned.
	SlotFree SlotKind = "free"
	// SlotCommitted is time promised to a tutor-learner engagement; it is
	// never silently altered.
	SlotCommitted SlotKind = "committed"
)

// TimeInterval is a half-open [Start, End) range within a single day,
// expressed in minutes from midnight (e.g., 540 for 9:00 AM).
type TimeInterval struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Duration returns the interval length in minutes.
func (iv TimeInterval) Duration() int {
	return iv.End - iv.Start
}

// Valid reports whether the interval satisfies start < end within one day.
func (iv TimeInterval) Valid() bool {
	return iv.Start >= 0 && iv.End <= 24*60 && iv.Start < iv.End
}

// Clock renders the interval bounds as "HH:MM:SS–HH:MM:SS" for user-facing
// conflict messages.
func (iv TimeInterval) Clock() string {
	return fmt.Sprintf("%s–%s", FormatClock(iv.Start), FormatClock(iv.End))
}

// FormatClock renders minutes-from-midnight as HH:MM:SS.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// ScheduleSlot is one entry on a tutor's weekly calendar. DayOfWeek is a
// recurring weekday bucket (1=Sunday .. 7=Saturday), not a calendar date.
type ScheduleSlot struct {
	ID        string       `bson:"id" json:"id"`
	TutorID   string       `bson:"tutorId" json:"tutorId"`
	DayOfWeek int          `bson:"dayOfWeek" json:"dayOfWeek"`
	Interval  TimeInterval `bson:"interval" json:"interval"`
	Kind      SlotKind     `bson:"kind" json:"kind"`
	// ClassRef identifies the tutor-learner engagement holding this slot.
	// Empty unless Kind is SlotCommitted.
	ClassRef  string    `bson:"classRef,omitempty" json:"classRef,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DayPattern is one day's worth of proposed intervals.
type DayPattern struct {
	DayOfWeek int            `json:"dayOfWeek" binding:"required"`
	Intervals []TimeInterval `json:"intervals" binding:"required"`
}

// ProposedPattern is the transient input to a reconciliation call: either a
// tutor's desired weekly availability or a requested/closing class schedule.
type ProposedPattern []DayPattern

// Days returns the distinct day buckets the pattern touches, in input order.
func (p ProposedPattern) Days() []int {
	seen := make(map[int]bool, len(p))
	var days []int
	for _, dp := range p {
		if !seen[dp.DayOfWeek] {
			seen[dp.DayOfWeek] = true
			days = append(days, dp.DayOfWeek)
		}
	}
	return days
}

// SlotDelta is a staged set of calendar mutations, applied as one unit by the
// persistence gateway.
type SlotDelta struct {
	Removals   []string       `json:"removals"`
	Insertions []ScheduleSlot `json:"insertions"`
}

// Append merges another delta into this one.
func (d *SlotDelta) Append(other SlotDelta) {
	d.Removals = append(d.Removals, other.Removals...)
	d.Insertions = append(d.Insertions, other.Insertions...)
}

// Normalize cancels entries that supersede each other within one delta: a
// staged insertion whose ID is also staged for removal was never persisted,
// so deleting it against the store would be a no-op and inserting it would
// resurrect a slot a later step already replaced. Both sides drop.
func (d *SlotDelta) Normalize() {
	removed := make(map[string]bool, len(d.Removals))
	for _, id := range d.Removals {
		removed[id] = true
	}

	cancelled := make(map[string]bool)
	var insertions []ScheduleSlot
	for _, slot := range d.Insertions {
		if removed[slot.ID] {
			cancelled[slot.ID] = true
			continue
		}
		insertions = append(insertions, slot)
	}

	var removals []string
	for _, id := range d.Removals {
		if !cancelled[id] {
			removals = append(removals, id)
		}
	}
	d.Removals, d.Insertions = removals, insertions
}

// Empty reports whether the delta stages no mutation at all.
func (d SlotDelta) Empty() bool {
	return len(d.Removals) == 0 && len(d.Insertions) == 0
}

// DaySchedule groups a day's slots for the calendar view.
type DaySchedule struct {
	DayOfWeek int            `json:"dayOfWeek"`
	Slots     []ScheduleSlot `json:"slots"`
}

// WeeklyCalendar is the full recurring-week view of one tutor's slots.
type WeeklyCalendar struct {
	TutorID string        `json:"tutorId"`
	Days    []DaySchedule `json:"days"`
}
