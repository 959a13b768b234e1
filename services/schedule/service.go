package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	scheduleRepo "tutorhive/database/repository/schedule"
	"tutorhive/models"
	"tutorhive/services/notification"
	"tutorhive/utils"

	"go.uber.org/zap"
)

// DefaultScheduleService is the production reconciliation orchestrator.
type DefaultScheduleService struct {
	Repo     scheduleRepo.ScheduleRepository
	Locker   utils.Locker
	Notifier notification.NotificationService
}

const (
	lockAttempts = 3
	lockBackoff  = 150 * time.Millisecond
)

func (s *DefaultScheduleService) DeclareAvailability(ctx context.Context, tutorID string, pattern models.ProposedPattern) error {
	logger := utils.GetLogger()

	if tutorID == "" {
		return NewValidationError("tutorId is required")
	}
	if len(pattern) == 0 {
		return nil
	}
	if err := validatePattern(pattern, true); err != nil {
		return err
	}

	return s.withTutorLock(ctx, tutorID, func() error {
		existing, err := s.Repo.LoadSlots(ctx, tutorID, pattern.Days())
		if err != nil {
			return err
		}

		var delta models.SlotDelta
		for day, intervals := range groupByDay(pattern) {
			delta.Append(ResolveDeclare(tutorID, day, intervals, existing))
		}

		if err := s.Repo.ApplyDelta(ctx, tutorID, delta); err != nil {
			return err
		}

		logger.Info("availability declared",
			zap.String("tutorId", tutorID),
			zap.Int("days", len(pattern.Days())))

		s.notify(ctx, models.NotificationPayload{
			RecipientID: tutorID,
			Type:        models.NotificationAvailability,
			Title:       "Weekly availability updated",
			Description: fmt.Sprintf("Your free time was updated on %d day(s) of the week.", len(pattern.Days())),
			Link:        "/tutor/schedule",
		})
		return nil
	})
}

func (s *DefaultScheduleService) CommitClassSchedule(ctx context.Context, tutorID, classRef string, pattern models.ProposedPattern) error {
	logger := utils.GetLogger()

	if tutorID == "" {
		return NewValidationError("tutorId is required")
	}
	if classRef == "" {
		return NewValidationError("classRef is required")
	}
	if len(pattern) == 0 {
		return NewValidationError("a class schedule needs at least one (day, interval) pair")
	}
	if err := validatePattern(pattern, false); err != nil {
		return err
	}

	return s.withTutorLock(ctx, tutorID, func() error {
		known, err := s.Repo.TutorHasSlots(ctx, tutorID)
		if err != nil {
			return err
		}
		if !known {
			return &NotFoundError{Resource: "tutor", ID: tutorID}
		}

		working, err := s.Repo.LoadSlots(ctx, tutorID, pattern.Days())
		if err != nil {
			return err
		}

		// Each pair is resolved against the working set so earlier pairs in
		// the batch are visible to later ones. Any rejection aborts the lot.
		var batch models.SlotDelta
		for _, dp := range pattern {
			for _, iv := range dp.Intervals {
				delta, err := ResolveCommit(tutorID, classRef, dp.DayOfWeek, iv, working)
				if err != nil {
					logger.Warn("class schedule rejected",
						zap.String("tutorId", tutorID),
						zap.String("classRef", classRef),
						zap.Error(err))
					s.notify(ctx, models.NotificationPayload{
						RecipientID: tutorID,
						Type:        models.NotificationClassRejected,
						Title:       "Class schedule rejected",
						Description: err.Error(),
						Link:        "/tutor/schedule",
					})
					return err
				}
				batch.Append(delta)
				working = applyToWorkingSet(working, delta)
			}
		}

		// Later pairs may consume remainder slots staged by earlier ones;
		// those never reach the store and must not be inserted.
		batch.Normalize()

		if err := s.Repo.ApplyDelta(ctx, tutorID, batch); err != nil {
			return err
		}

		logger.Info("class schedule committed",
			zap.String("tutorId", tutorID),
			zap.String("classRef", classRef),
			zap.Int("slots", len(pattern)))

		s.notify(ctx, models.NotificationPayload{
			RecipientID: tutorID,
			Type:        models.NotificationClassCommitted,
			Title:       "New class on your calendar",
			Description: fmt.Sprintf("Class %s was scheduled on %d day(s) of your week.", classRef, len(pattern.Days())),
			Link:        "/tutor/classes/" + classRef,
		})
		return nil
	})
}

func (s *DefaultScheduleService) ReleaseClassSchedule(ctx context.Context, tutorID, classRef string) error {
	logger := utils.GetLogger()

	if tutorID == "" {
		return NewValidationError("tutorId is required")
	}
	if classRef == "" {
		return NewValidationError("classRef is required")
	}

	return s.withTutorLock(ctx, tutorID, func() error {
		committed, err := s.Repo.FindSlotsByClassRef(ctx, tutorID, classRef)
		if err != nil {
			return err
		}
		if len(committed) == 0 {
			// Releasing a class that holds no slots is a harmless no-op.
			logger.Info("release of unknown class ignored",
				zap.String("tutorId", tutorID),
				zap.String("classRef", classRef))
			return nil
		}

		days := make([]int, 0, len(committed))
		for _, slot := range committed {
			days = append(days, slot.DayOfWeek)
		}
		existing, err := s.Repo.LoadSlots(ctx, tutorID, days)
		if err != nil {
			return err
		}

		delta := ResolveRelease(tutorID, committed, existing)
		if err := s.Repo.ApplyDelta(ctx, tutorID, delta); err != nil {
			return err
		}

		logger.Info("class schedule released",
			zap.String("tutorId", tutorID),
			zap.String("classRef", classRef),
			zap.Int("freedSlots", len(committed)))

		s.notify(ctx, models.NotificationPayload{
			RecipientID: tutorID,
			Type:        models.NotificationClassReleased,
			Title:       "Class closed",
			Description: fmt.Sprintf("Class %s was closed and its time returned to your free schedule.", classRef),
			Link:        "/tutor/schedule",
		})
		return nil
	})
}

// PreviewResidualFreeTime is read-only and takes no lock: for every free
// interval it subtracts the same day's proposed intervals and prunes short
// remainders.
func (s *DefaultScheduleService) PreviewResidualFreeTime(tutorID string, freeTime, proposed models.ProposedPattern) models.WeeklyCalendar {
	cutsByDay := groupByDay(proposed)

	cal := models.WeeklyCalendar{TutorID: tutorID}
	for day, free := range groupByDay(freeTime) {
		var residual []models.TimeInterval
		for _, iv := range free {
			rest := SubtractAll(iv, cutsByDay[day])
			residual = append(residual, PruneShort(rest, models.MinBookableMinutes)...)
		}
		slots := make([]models.ScheduleSlot, 0, len(residual))
		for _, iv := range Merge(residual) {
			slots = append(slots, models.ScheduleSlot{
				TutorID:   tutorID,
				DayOfWeek: day,
				Interval:  iv,
				Kind:      models.SlotFree,
			})
		}
		cal.Days = append(cal.Days, models.DaySchedule{DayOfWeek: day, Slots: slots})
	}

	sort.Slice(cal.Days, func(i, j int) bool { return cal.Days[i].DayOfWeek < cal.Days[j].DayOfWeek })
	return cal
}

func (s *DefaultScheduleService) GetWeeklyCalendar(ctx context.Context, tutorID string) (models.WeeklyCalendar, error) {
	if tutorID == "" {
		return models.WeeklyCalendar{}, NewValidationError("tutorId is required")
	}

	slots, err := s.Repo.LoadSlots(ctx, tutorID, nil)
	if err != nil {
		return models.WeeklyCalendar{}, err
	}

	byDay := make(map[int][]models.ScheduleSlot)
	for _, slot := range slots {
		byDay[slot.DayOfWeek] = append(byDay[slot.DayOfWeek], slot)
	}

	cal := models.WeeklyCalendar{TutorID: tutorID}
	for day, daySlots := range byDay {
		sort.Slice(daySlots, func(i, j int) bool { return daySlots[i].Interval.Start < daySlots[j].Interval.Start })
		cal.Days = append(cal.Days, models.DaySchedule{DayOfWeek: day, Slots: daySlots})
	}
	sort.Slice(cal.Days, func(i, j int) bool { return cal.Days[i].DayOfWeek < cal.Days[j].DayOfWeek })
	return cal, nil
}

// withTutorLock serializes mutating calls per tutor through a short redis
// lease, so two concurrent commits cannot both read the same clear state.
func (s *DefaultScheduleService) withTutorLock(ctx context.Context, tutorID string, fn func() error) error {
	key := utils.CalendarLockKey(tutorID)

	var token string
	acquired := false
	for attempt := 0; attempt < lockAttempts; attempt++ {
		ok, tok, err := s.Locker.TryLock(ctx, key, utils.CalendarLockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire calendar lock for tutor %s: %w", tutorID, err)
		}
		if ok {
			acquired, token = true, tok
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockBackoff):
		}
	}
	if !acquired {
		return &LockBusyError{TutorID: tutorID}
	}
	defer func() {
		if err := s.Locker.Unlock(ctx, key, token); err != nil {
			utils.GetLogger().Warn("failed to release calendar lock",
				zap.String("tutorId", tutorID), zap.Error(err))
		}
	}()

	return fn()
}

// notify is fire-and-forget: a queue failure is logged and never surfaced to
// the scheduling caller.
func (s *DefaultScheduleService) notify(ctx context.Context, payload models.NotificationPayload) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Enqueue(ctx, payload); err != nil {
		utils.GetLogger().Warn("failed to enqueue schedule notification",
			zap.String("recipientId", payload.RecipientID),
			zap.String("type", payload.Type),
			zap.Error(err))
	}
}

func validatePattern(pattern models.ProposedPattern, declare bool) error {
	for _, dp := range pattern {
		if dp.DayOfWeek < 1 || dp.DayOfWeek > 7 {
			return NewValidationError("dayOfWeek %d is out of range 1..7", dp.DayOfWeek)
		}
		if len(dp.Intervals) == 0 {
			if declare {
				// A declared day with no intervals clears that day's free time.
				continue
			}
			return NewValidationError("day %d carries no intervals", dp.DayOfWeek)
		}
		for _, iv := range dp.Intervals {
			if !iv.Valid() {
				return NewValidationError("interval %s on day %d is malformed", iv.Clock(), dp.DayOfWeek)
			}
			if declare && iv.Duration() < models.MinBookableMinutes {
				return NewValidationError("interval %s on day %d is shorter than the %d-minute minimum",
					iv.Clock(), dp.DayOfWeek, models.MinBookableMinutes)
			}
		}
	}
	return nil
}

func groupByDay(pattern models.ProposedPattern) map[int][]models.TimeInterval {
	byDay := make(map[int][]models.TimeInterval, len(pattern))
	for _, dp := range pattern {
		byDay[dp.DayOfWeek] = append(byDay[dp.DayOfWeek], dp.Intervals...)
	}
	return byDay
}
