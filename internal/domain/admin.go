package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a placement-cell administrator.
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoogleID  string             `bson:"google_id" json:"-"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type AdminRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*Admin, error)
	GetByGoogleID(ctx context.Context, googleID string) (*Admin, error)
	Create(ctx context.Context, admin *Admin) error
}

// AdminUsecase covers the admin-only curation surface: verifying and
// removing companies (with their dependent jobs and applications),
// searching principals, and exporting the registered-student roster.
type AdminUsecase interface {
	SetCompanyVerification(ctx context.Context, companyID primitive.ObjectID, verified bool) (*Company, error)
	DeleteCompany(ctx context.Context, companyID primitive.ObjectID) error
	SearchCompanies(ctx context.Context, query string) ([]Company, error)
	SearchStudents(ctx context.Context, filter StudentFilter) ([]Student, error)
	ExportRegisteredStudents(ctx context.Context) ([]byte, string, error)
}
