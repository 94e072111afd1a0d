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

type jobRepo struct {
	c *mongo.Collection
}

func NewJobRepository(db *mongo.Database) domain.JobRepository {
	return &jobRepo{c: db.Collection("jobs")}
}

// Newest first; ascending _id breaks created_at ties so pagination stays
// stable.
var jobSort = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	job.ID = primitive.NewObjectID()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	if job.VisibleTo == nil {
		job.VisibleTo = []primitive.ObjectID{}
	}
	_, err := r.c.InsertOne(ctx, job)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Job, error) {
	var job domain.Job
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) fetch(ctx context.Context, filter bson.M) ([]domain.Job, error) {
	cur, err := r.c.Find(ctx, filter, options.Find().SetSort(jobSort))
	if err != nil {
		return nil, err
	}
	var jobs []domain.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) FetchAll(ctx context.Context) ([]domain.Job, error) {
	return r.fetch(ctx, bson.M{})
}

func (r *jobRepo) FetchByCompanyID(ctx context.Context, companyID primitive.ObjectID) ([]domain.Job, error) {
	return r.fetch(ctx, bson.M{"company_id": companyID})
}

func (r *jobRepo) FetchByApproval(ctx context.Context, approved bool) ([]domain.Job, error) {
	return r.fetch(ctx, bson.M{"is_approved": approved})
}

func (r *jobRepo) FetchVisibleToStudent(ctx context.Context, studentID primitive.ObjectID) ([]domain.Job, error) {
	return r.fetch(ctx, bson.M{
		"is_approved": true,
		"$or": []bson.M{
			{"is_visible_to_all": true},
			{"visible_to": studentID},
		},
	})
}

func (r *jobRepo) SetVisibility(ctx context.Context, id primitive.ObjectID, approved, visibleToAll bool, visibleTo []primitive.ObjectID) (*domain.Job, error) {
	if visibleTo == nil {
		visibleTo = []primitive.ObjectID{}
	}
	update := bson.M{"$set": bson.M{
		"is_approved":       approved,
		"is_visible_to_all": visibleToAll,
		"visible_to":        visibleTo,
	}}

	var job domain.Job
	err := r.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) DeleteByCompanyID(ctx context.Context, companyID primitive.ObjectID) (int64, error) {
	res, err := r.c.DeleteMany(ctx, bson.M{"company_id": companyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
