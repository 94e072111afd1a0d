package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"placement-cell-backend/internal/domain"
)

type adminRepo struct {
	c *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) domain.AdminRepository {
	return &adminRepo{c: db.Collection("admins")}
}

func (r *adminRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *adminRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"google_id": googleID})
}

func (r *adminRepo) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	var a domain.Admin
	if err := r.c.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *adminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	admin.ID = primitive.NewObjectID()
	admin.Role = domain.RoleAdmin
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	if _, err := r.c.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}
