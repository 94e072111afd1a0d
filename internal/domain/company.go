package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is an employer account. A company cannot post jobs until an
// admin has verified it, and un-verifying a company tears down every job
// and application it owns.
type Company struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoogleID      string             `bson:"google_id" json:"-"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	PhoneNumber   string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	ContactPerson string             `bson:"contact_person,omitempty" json:"contact_person,omitempty"`
	LinkedInURL   string             `bson:"linkedin_url,omitempty" json:"linkedin_url,omitempty"`
	DPIITNumber   string             `bson:"dpiit_number,omitempty" json:"dpiit_number,omitempty"`
	IsVerified    bool               `bson:"is_verified" json:"is_verified"`
	Role          Role               `bson:"role" json:"role"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// CompanyUpdate holds the profile fields a company may change itself.
// Verification is deliberately absent; only admins touch that.
type CompanyUpdate struct {
	Name          string `json:"name" validate:"required"`
	PhoneNumber   string `json:"phone_number" validate:"omitempty,min=7,max=15"`
	Location      string `json:"location"`
	ContactPerson string `json:"contact_person"`
	LinkedInURL   string `json:"linkedin_url" validate:"omitempty,url"`
	DPIITNumber   string `json:"dpiit_number"`
}

type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Company, error)
	GetByGoogleID(ctx context.Context, googleID string) (*Company, error)
	Update(ctx context.Context, id primitive.ObjectID, upd CompanyUpdate) (*Company, error)
	SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Search(ctx context.Context, query string) ([]Company, error)
}

type CompanyUsecase interface {
	GetProfile(ctx context.Context, id primitive.ObjectID) (*Company, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd CompanyUpdate) (*Company, error)
}
