// File: database/repository/schedule/indexes.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the schedule_slots collection.
func (r *mongoScheduleRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: one tutor's slots for a set of weekday buckets.
		{
			Keys:    bson.D{{Key: "tutorId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
			Options: options.Index().SetName("tutor_day_idx"),
		},
		// Release path looks slots up by the class engagement they belong to.
		{
			Keys:    bson.D{{Key: "classRef", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("class_ref_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}
