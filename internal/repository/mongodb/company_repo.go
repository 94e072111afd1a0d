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

type companyRepo struct {
	c *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) domain.CompanyRepository {
	return &companyRepo{c: db.Collection("companies")}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	company.ID = primitive.NewObjectID()
	company.Role = domain.RoleCompany
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now
	if _, err := r.c.InsertOne(ctx, company); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Company, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *companyRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.Company, error) {
	return r.findOne(ctx, bson.M{"google_id": googleID})
}

func (r *companyRepo) findOne(ctx context.Context, filter bson.M) (*domain.Company, error) {
	var c domain.Company
	if err := r.c.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) Update(ctx context.Context, id primitive.ObjectID, upd domain.CompanyUpdate) (*domain.Company, error) {
	set := bson.M{
		"name":           upd.Name,
		"phone_number":   upd.PhoneNumber,
		"location":       upd.Location,
		"contact_person": upd.ContactPerson,
		"linkedin_url":   upd.LinkedInURL,
		"dpiit_number":   upd.DPIITNumber,
		"updated_at":     time.Now(),
	}

	var c domain.Company
	err := r.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_verified": verified,
		"updated_at":  time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search uses the text index on name and email.
func (r *companyRepo) Search(ctx context.Context, query string) ([]domain.Company, error) {
	filter := bson.M{}
	if query != "" {
		filter["$text"] = bson.M{"$search": query}
	}
	cur, err := r.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var companies []domain.Company
	if err := cur.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}
