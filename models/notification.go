package models

import "time"

// Notification event types emitted by the scheduling engine.
const (
	NotificationClassCommitted = "class_committed"
	NotificationClassReleased  = "class_released"
	NotificationClassRejected  = "class_rejected"
	NotificationAvailability   = "availability_updated"
)

// NotificationPayload is the fire-and-forget event handed to the delivery
// worker after a scheduling outcome is persisted.
type NotificationPayload struct {
	RecipientID string    `json:"recipientId"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
