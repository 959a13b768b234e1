// File: database/repository/schedule/transaction.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"tutorhive/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplyDelta executes the staged removals and insertions inside a single
// mongo transaction so the calendar is never left with only part of a batch.
func (r *mongoScheduleRepo) ApplyDelta(ctx context.Context, tutorID string, delta models.SlotDelta) error {
	if delta.Empty() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if len(delta.Removals) > 0 {
			filter := bson.M{"tutorId": tutorID, "id": bson.M{"$in": delta.Removals}}
			if _, err := r.coll.DeleteMany(sc, filter); err != nil {
				return fmt.Errorf("delete staged slots failed: %w", err)
			}
		}
		if len(delta.Insertions) > 0 {
			docs := make([]interface{}, len(delta.Insertions))
			for i, slot := range delta.Insertions {
				if slot.ID == "" {
					slot.ID = uuid.New().String()
				}
				slot.TutorID = tutorID
				docs[i] = slot
			}
			if _, err := r.coll.InsertMany(sc, docs); err != nil {
				return fmt.Errorf("insert staged slots failed: %w", err)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("schedule delta transaction failed: %w", err)
	}

	return nil
}
