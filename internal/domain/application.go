package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application status constants
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application links a student to a job they applied for. CompanyID is
// copied from the job at creation time so company-scoped queries and
// cascades never need a join. At most one application may exist per
// (student, job) pair; the repository enforces this with a unique index.
type Application struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobID     primitive.ObjectID `bson:"job_id" json:"job_id"`
	CompanyID primitive.ObjectID `bson:"company_id" json:"company_id"`
	StudentID primitive.ObjectID `bson:"student_id" json:"student_id"`
	Status    string             `bson:"status" json:"status"`
	AppliedAt time.Time          `bson:"applied_at" json:"applied_at"`
}

type ApplicationRepository interface {
	// Create returns ErrDuplicate when the student already applied to the job.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Application, error)
	FetchByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]Application, error)
	FetchByCompanyID(ctx context.Context, companyID primitive.ObjectID) ([]Application, error)
	FetchByJobID(ctx context.Context, jobID primitive.ObjectID) ([]Application, error)
	Exists(ctx context.Context, jobID, studentID primitive.ObjectID) (bool, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteByJobID(ctx context.Context, jobID primitive.ObjectID) (int64, error)
	DeleteByCompanyID(ctx context.Context, companyID primitive.ObjectID) (int64, error)
	DeleteByStudentID(ctx context.Context, studentID primitive.ObjectID) (int64, error)
}

type ApplicationUsecase interface {
	// Student operations
	Apply(ctx context.Context, studentID, jobID primitive.ObjectID) (*Application, error)
	ListMyApplications(ctx context.Context, studentID primitive.ObjectID) ([]Application, error)

	// Company operations
	ListCompanyApplications(ctx context.Context, companyID primitive.ObjectID) ([]Application, error)
	ListJobApplications(ctx context.Context, companyID, jobID primitive.ObjectID) ([]Application, error)
	UpdateStatus(ctx context.Context, companyID, applicationID primitive.ObjectID, status string) error
}
