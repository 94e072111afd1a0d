package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates every index the repositories rely on. Called
// once at startup; CreateMany is idempotent for identical definitions.
//
// The unique (student_id, job_id) index on applications is load-bearing:
// it is what closes the check-then-act race between concurrent applies.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		"admins": {
			{Keys: bson.D{{Key: "google_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"companies": {
			{Keys: bson.D{{Key: "google_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "email", Value: "text"}}},
		},
		"students": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "google_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "is_registered", Value: 1}}},
		},
		"jobs": {
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}},
		},
		"applications": {
			{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "job_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
			{Keys: bson.D{{Key: "job_id", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}
