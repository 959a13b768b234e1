package notification

import (
	"context"

	"tutorhive/models"
)

// NotificationService is the fire-and-forget collaborator the scheduling
// engine emits events to. Enqueue failures must never affect a scheduling
// outcome that is already persisted; callers log and move on.
type NotificationService interface {
	// Enqueue hands a payload to the background delivery worker.
	Enqueue(ctx context.Context, payload models.NotificationPayload) error
	// Deliver pushes one payload to its recipient. Called by the worker.
	Deliver(ctx context.Context, payload models.NotificationPayload) error
}

// TokenResolver looks up the push token registered for a recipient. Device
// and token registration live outside this service.
type TokenResolver interface {
	PushToken(ctx context.Context, recipientID string) (string, error)
}
