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

type studentRepo struct {
	c *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) domain.StudentRepository {
	return &studentRepo{c: db.Collection("students")}
}

func (r *studentRepo) Create(ctx context.Context, student *domain.Student) error {
	student.ID = primitive.NewObjectID()
	student.Role = domain.RoleStudent
	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now
	if student.SGPA == nil {
		student.SGPA = []float64{}
	}
	if student.Domains == nil {
		student.Domains = []string{}
	}
	if _, err := r.c.InsertOne(ctx, student); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *studentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *studentRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.Student, error) {
	return r.findOne(ctx, bson.M{"google_id": googleID})
}

func (r *studentRepo) findOne(ctx context.Context, filter bson.M) (*domain.Student, error) {
	var s domain.Student
	if err := r.c.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) Update(ctx context.Context, student *domain.Student) error {
	student.UpdatedAt = time.Now()
	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": student.ID}, student)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *studentRepo) FetchRegistered(ctx context.Context) ([]domain.Student, error) {
	return r.find(ctx, bson.M{"is_registered": true})
}

func (r *studentRepo) Search(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error) {
	query := bson.M{}
	if filter.Query != "" {
		re := primitive.Regex{Pattern: filter.Query, Options: "i"}
		query["$or"] = []bson.M{
			{"name": re},
			{"email": re},
			{"roll_number": re},
		}
	}
	if filter.Branch != "" {
		query["branch"] = filter.Branch
	}
	if filter.RegisteredOnly {
		query["is_registered"] = true
	}
	return r.find(ctx, query)
}

func (r *studentRepo) find(ctx context.Context, filter bson.M) ([]domain.Student, error) {
	cur, err := r.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var students []domain.Student
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
