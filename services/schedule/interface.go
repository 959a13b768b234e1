package schedule

import (
	"context"

	"tutorhive/models"
)

// ScheduleService exposes the reconciliation operations over a tutor's weekly
// recurring calendar. Mutating calls for the same tutor are serialized
// through a per-tutor lease; a whole batch either applies or aborts.
type ScheduleService interface {
	// DeclareAvailability replaces the tutor's free time on every day the
	// pattern touches; a day listed with no intervals has its free time
	// cleared. Committed slots are never affected. Empty pattern is a no-op.
	DeclareAvailability(ctx context.Context, tutorID string, pattern models.ProposedPattern) error
	// CommitClassSchedule validates each (day, interval) pair against the
	// tutor's current slots and, if the whole batch is clear of committed
	// time, carves the pattern out of free time and records it for classRef.
	CommitClassSchedule(ctx context.Context, tutorID, classRef string, pattern models.ProposedPattern) error
	// ReleaseClassSchedule removes every slot committed to classRef and
	// returns the freed intervals to merged free time. Releasing an unknown
	// class is a harmless no-op.
	ReleaseClassSchedule(ctx context.Context, tutorID, classRef string) error
	// PreviewResidualFreeTime shows what free time would remain after the
	// proposed pattern, without touching persisted state.
	PreviewResidualFreeTime(tutorID string, freeTime, proposed models.ProposedPattern) models.WeeklyCalendar
	// GetWeeklyCalendar returns the tutor's slots grouped by weekday.
	GetWeeklyCalendar(ctx context.Context, tutorID string) (models.WeeklyCalendar, error)
}
