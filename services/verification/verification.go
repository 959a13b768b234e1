package verification

import (
	"context"
	"fmt"

	"tutorhive/models"
	"tutorhive/services/notification"
	"tutorhive/services/schedule"
	"tutorhive/utils"

	"go.uber.org/zap"
)

// EntityKind tags the moderation-eligible entity variants. Every variant
// carries a status, a verified flag, and a rejection reason; only the
// tutor-learner engagement has a scheduling side effect on approval.
type EntityKind string

const (
	KindTutor               EntityKind = "tutor"
	KindTutorSubject        EntityKind = "tutor_subject"
	KindTutorRequest        EntityKind = "tutor_request"
	KindTutorLearnerSubject EntityKind = "tutor_learner_subject"
	KindCertificate         EntityKind = "certificate"
	KindContract            EntityKind = "contract"
)

const (
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Record is the moderation view of one entity. The class-engagement fields
// are populated only for KindTutorLearnerSubject.
type Record struct {
	Kind     EntityKind             `bson:"kind" json:"kind"`
	ID       string                 `bson:"id" json:"id"`
	Status   string                 `bson:"status" json:"status"`
	Verified bool                   `bson:"verified" json:"verified"`
	Reason   string                 `bson:"reason,omitempty" json:"reason,omitempty"`
	TutorID  string                 `bson:"tutorId,omitempty" json:"tutorId,omitempty"`
	ClassRef string                 `bson:"classRef,omitempty" json:"classRef,omitempty"`
	Pattern  models.ProposedPattern `bson:"pattern,omitempty" json:"pattern,omitempty"`
}

// Decision is an admin's verdict on a record.
type Decision struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}

// VerifiableStore persists moderation records; the entities themselves live
// elsewhere in the platform.
type VerifiableStore interface {
	GetRecord(ctx context.Context, kind EntityKind, id string) (*Record, error)
	UpdateRecord(ctx context.Context, rec *Record) error
}

// VerificationService applies admin verdicts to moderation-eligible entities.
type VerificationService interface {
	SetVerificationStatus(ctx context.Context, kind EntityKind, id string, decision Decision) error
}

// DefaultVerificationService dispatches per entity kind through a handler
// table rather than one wide conditional.
type DefaultVerificationService struct {
	Store     VerifiableStore
	Schedules schedule.ScheduleService
	Notifier  notification.NotificationService
}

type verdictHandler func(ctx context.Context, s *DefaultVerificationService, rec *Record, d Decision) error

var verdictHandlers = map[EntityKind]verdictHandler{
	KindTutor:               applyTutorVerdict,
	KindTutorSubject:        applyPlainVerdict,
	KindTutorRequest:        applyPlainVerdict,
	KindTutorLearnerSubject: applyEngagementVerdict,
	KindCertificate:         applyPlainVerdict,
	KindContract:            applyPlainVerdict,
}

func (s *DefaultVerificationService) SetVerificationStatus(ctx context.Context, kind EntityKind, id string, decision Decision) error {
	handle, ok := verdictHandlers[kind]
	if !ok {
		return fmt.Errorf("unknown verifiable entity kind %q", kind)
	}

	rec, err := s.Store.GetRecord(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("failed to load %s %s: %w", kind, id, err)
	}

	return handle(ctx, s, rec, decision)
}

// applyPlainVerdict flips status, verified flag, and reason; no side effects.
func applyPlainVerdict(ctx context.Context, s *DefaultVerificationService, rec *Record, d Decision) error {
	markVerdict(rec, d)
	return s.Store.UpdateRecord(ctx, rec)
}

// applyTutorVerdict is a plain verdict plus a push to the tutor.
func applyTutorVerdict(ctx context.Context, s *DefaultVerificationService, rec *Record, d Decision) error {
	if err := applyPlainVerdict(ctx, s, rec, d); err != nil {
		return err
	}

	payload := models.NotificationPayload{
		RecipientID: rec.ID,
		Type:        "tutor_verification",
		Title:       "Your tutor profile was approved",
		Description: "You are now visible on the tutor listings.",
		Link:        "/tutors",
	}
	if !d.Verified {
		payload.Title = "Your tutor profile was rejected"
		payload.Description = d.Reason
		payload.Link = "/tutor/profile"
	}
	s.enqueue(ctx, payload)
	return nil
}

// applyEngagementVerdict is the one variant with a scheduling side effect:
// approving a tutor-learner engagement commits its registered pattern onto
// the tutor's calendar. A schedule conflict vetoes the approval.
func applyEngagementVerdict(ctx context.Context, s *DefaultVerificationService, rec *Record, d Decision) error {
	if d.Verified {
		if err := s.Schedules.CommitClassSchedule(ctx, rec.TutorID, rec.ClassRef, rec.Pattern); err != nil {
			return fmt.Errorf("engagement %s not verified: %w", rec.ID, err)
		}
	}

	markVerdict(rec, d)
	if err := s.Store.UpdateRecord(ctx, rec); err != nil {
		return err
	}

	payload := models.NotificationPayload{
		RecipientID: rec.TutorID,
		Type:        "engagement_verification",
		Title:       "Class registration approved",
		Description: fmt.Sprintf("Class %s is confirmed and on your weekly calendar.", rec.ClassRef),
		Link:        "/tutor/classes/" + rec.ClassRef,
	}
	if !d.Verified {
		payload.Title = "Class registration rejected"
		payload.Description = d.Reason
		payload.Link = "/tutor/requests"
	}
	s.enqueue(ctx, payload)
	return nil
}

func markVerdict(rec *Record, d Decision) {
	rec.Verified = d.Verified
	if d.Verified {
		rec.Status = StatusVerified
		rec.Reason = ""
	} else {
		rec.Status = StatusRejected
		rec.Reason = d.Reason
	}
}

func (s *DefaultVerificationService) enqueue(ctx context.Context, payload models.NotificationPayload) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Enqueue(ctx, payload); err != nil {
		utils.GetLogger().Warn("failed to enqueue verification notification",
			zap.String("recipientId", payload.RecipientID), zap.Error(err))
	}
}
