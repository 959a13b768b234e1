// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"

	"tutorhive/database"
	"tutorhive/models"
	"tutorhive/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ScheduleRepository is the persistence gateway for weekly calendar slots.
// ApplyDelta executes removals and insertions as one atomic unit; a failure
// leaves no partial state behind.
type ScheduleRepository interface {
	LoadSlots(ctx context.Context, tutorID string, days []int) ([]models.ScheduleSlot, error)
	FindSlotsByClassRef(ctx context.Context, tutorID, classRef string) ([]models.ScheduleSlot, error)
	ApplyDelta(ctx context.Context, tutorID string, delta models.SlotDelta) error
	TutorHasSlots(ctx context.Context, tutorID string) (bool, error)
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs the MongoDB-backed ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database("tutorhive")
	repo := &mongoScheduleRepo{
		coll: db.Collection("schedule_slots"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("schedule repo: failed to ensure indexes", zap.Error(err))
	}
	return repo
}
