// File: database/repository/schedule/schedule_mongo.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"tutorhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoScheduleRepo) LoadSlots(ctx context.Context, tutorID string, days []int) ([]models.ScheduleSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"tutorId": tutorID}
	if len(days) > 0 {
		filter["dayOfWeek"] = bson.M{"$in": days}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots for tutor %s: %w", tutorID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.ScheduleSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots for tutor %s: %w", tutorID, err)
	}
	return slots, nil
}

func (r *mongoScheduleRepo) FindSlotsByClassRef(ctx context.Context, tutorID, classRef string) ([]models.ScheduleSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Scoped to the tutor so a mismatched tutorId/classRef pair cannot free
	// or reassign another tutor's slots.
	cursor, err := r.coll.Find(ctx, bson.M{"tutorId": tutorID, "classRef": classRef, "kind": models.SlotCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to find slots for class %s: %w", classRef, err)
	}
	defer cursor.Close(ctx)

	var slots []models.ScheduleSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots for class %s: %w", classRef, err)
	}
	return slots, nil
}

func (r *mongoScheduleRepo) TutorHasSlots(ctx context.Context, tutorID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"tutorId": tutorID}, nil)
	if err != nil {
		return false, fmt.Errorf("failed to count slots for tutor %s: %w", tutorID, err)
	}
	return count > 0, nil
}
