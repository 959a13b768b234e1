package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tutorhive/models"
	"tutorhive/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeScheduleEvent is the asynq task type for scheduling outcome events.
const TypeScheduleEvent = "schedule:event"

// DefaultNotificationService enqueues scheduling events to asynq and, on the
// worker side, delivers them as FCM pushes.
type DefaultNotificationService struct {
	Client *asynq.Client
	Tokens TokenResolver
}

func NewDefaultNotificationService(client *asynq.Client, tokens TokenResolver) *DefaultNotificationService {
	return &DefaultNotificationService{Client: client, Tokens: tokens}
}

func (s *DefaultNotificationService) Enqueue(ctx context.Context, payload models.NotificationPayload) error {
	if payload.CreatedAt.IsZero() {
		payload.CreatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	task := asynq.NewTask(TypeScheduleEvent, raw)
	if _, err := s.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) Deliver(ctx context.Context, payload models.NotificationPayload) error {
	logger := utils.GetLogger()

	token, err := s.Tokens.PushToken(ctx, payload.RecipientID)
	if err != nil {
		return fmt.Errorf("could not resolve push token for %s: %w", payload.RecipientID, err)
	}
	if token == "" {
		// No registered device; nothing to deliver.
		logger.Debug("notification: recipient has no push token",
			zap.String("recipientId", payload.RecipientID))
		return nil
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Description,
		},
		Data: map[string]string{
			"type": payload.Type,
			"link": payload.Link,
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message to %s: %w", payload.RecipientID, err)
	}

	logger.Info("notification delivered",
		zap.String("recipientId", payload.RecipientID),
		zap.String("type", payload.Type))
	return nil
}

// RedisTokenResolver reads push tokens registered by the device-management
// side of the platform.
type RedisTokenResolver struct {
	Client *redis.Client
}

func (r *RedisTokenResolver) PushToken(ctx context.Context, recipientID string) (string, error) {
	val, err := r.Client.Get(ctx, utils.PushTokenKey(recipientID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
