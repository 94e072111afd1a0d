package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"placement-cell-backend/internal/domain"
)

type applicationRepo struct {
	c *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) domain.ApplicationRepository {
	return &applicationRepo{c: db.Collection("applications")}
}

var applicationSort = bson.D{{Key: "applied_at", Value: -1}, {Key: "_id", Value: 1}}

// Create inserts the application. The unique (student_id, job_id) index
// is the authoritative duplicate guard; the usecase's existence check is
// only there for a friendlier error on the common path.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	app.ID = primitive.NewObjectID()
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now()
	}
	if _, err := r.c.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Application, error) {
	var app domain.Application
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) fetch(ctx context.Context, filter bson.M) ([]domain.Application, error) {
	cur, err := r.c.Find(ctx, filter, options.Find().SetSort(applicationSort))
	if err != nil {
		return nil, err
	}
	var apps []domain.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepo) FetchByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Application, error) {
	return r.fetch(ctx, bson.M{"student_id": studentID})
}

func (r *applicationRepo) FetchByCompanyID(ctx context.Context, companyID primitive.ObjectID) ([]domain.Application, error) {
	return r.fetch(ctx, bson.M{"company_id": companyID})
}

func (r *applicationRepo) FetchByJobID(ctx context.Context, jobID primitive.ObjectID) ([]domain.Application, error) {
	return r.fetch(ctx, bson.M{"job_id": jobID})
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, studentID primitive.ObjectID) (bool, error) {
	count, err := r.c.CountDocuments(ctx, bson.M{"job_id": jobID, "student_id": studentID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := r.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *applicationRepo) DeleteByJobID(ctx context.Context, jobID primitive.ObjectID) (int64, error) {
	return r.deleteMany(ctx, bson.M{"job_id": jobID})
}

func (r *applicationRepo) DeleteByCompanyID(ctx context.Context, companyID primitive.ObjectID) (int64, error) {
	return r.deleteMany(ctx, bson.M{"company_id": companyID})
}

func (r *applicationRepo) DeleteByStudentID(ctx context.Context, studentID primitive.ObjectID) (int64, error) {
	return r.deleteMany(ctx, bson.M{"student_id": studentID})
}
