package schedule

import (
	"fmt"

	"tutorhive/models"
)

// ValidationError rejects malformed input before any persisted state is read.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Message)
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError means a proposed interval overlaps an existing committed
// slot. It always aborts the whole batch that produced it.
type ConflictError struct {
	DayOfWeek int
	Interval  models.TimeInterval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("requested time on day %d conflicts with a committed class from %s to %s",
		e.DayOfWeek, models.FormatClock(e.Interval.Start), models.FormatClock(e.Interval.End))
}

// NotFoundError means the referenced tutor or class has no slots to operate
// on where data was expected to exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// LockBusyError means another reconciliation call holds the tutor's calendar
// lease; the caller may retry.
type LockBusyError struct {
	TutorID string
}

func (e *LockBusyError) Error() string {
	return fmt.Sprintf("calendar for tutor %s is busy, retry shortly", e.TutorID)
}
