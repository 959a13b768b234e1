// File: database/repository/verification/verification_mongo.go
package verificationRepo

import (
	"context"
	"fmt"
	"time"

	"tutorhive/database"
	"tutorhive/services/verification"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoVerifiableStore struct {
	coll *mongo.Collection
}

// NewMongoVerifiableStore constructs the MongoDB-backed moderation store.
func NewMongoVerifiableStore() verification.VerifiableStore {
	db := database.MongoClient.Database("tutorhive")
	return &mongoVerifiableStore{
		coll: db.Collection("verification_records"),
	}
}

func (s *mongoVerifiableStore) GetRecord(ctx context.Context, kind verification.EntityKind, id string) (*verification.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec verification.Record
	err := s.coll.FindOne(ctx, bson.M{"kind": kind, "id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%s %s has no moderation record", kind, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load moderation record %s/%s: %w", kind, id, err)
	}
	return &rec, nil
}

func (s *mongoVerifiableStore) UpdateRecord(ctx context.Context, rec *verification.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"kind": rec.Kind, "id": rec.ID}
	update := bson.M{"$set": bson.M{
		"status":   rec.Status,
		"verified": rec.Verified,
		"reason":   rec.Reason,
	}}
	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update moderation record %s/%s: %w", rec.Kind, rec.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("moderation record %s/%s disappeared during update", rec.Kind, rec.ID)
	}
	return nil
}
