package domain

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
)

// FileRef points at an object held by the external media store.
type FileRef struct {
	URL    string `bson:"url" json:"url"`
	BlobID string `bson:"blob_id" json:"-"`
}

// FileUpload carries raw file content received from a multipart request.
type FileUpload struct {
	Data        []byte
	ContentType string
}

// Job is a posting owned by exactly one company. It starts as a draft
// (unapproved, invisible) and becomes visible to students only after an
// admin publishes it, either to everyone or to an explicit allow-list.
type Job struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CompanyID      primitive.ObjectID   `bson:"company_id" json:"company_id"`
	Title          string               `bson:"title" json:"title"`
	Description    string               `bson:"description" json:"description"`
	Requirements   string               `bson:"requirements" json:"requirements"`
	Salary         string               `bson:"salary,omitempty" json:"salary,omitempty"`
	Location       string               `bson:"location,omitempty" json:"location,omitempty"`
	Branches       []string             `bson:"branches,omitempty" json:"branches,omitempty"`
	Deadline       *time.Time           `bson:"deadline,omitempty" json:"deadline,omitempty"`
	JDDoc          *FileRef             `bson:"jd_doc,omitempty" json:"jd_doc,omitempty"`
	IsApproved     bool                 `bson:"is_approved" json:"is_approved"`
	IsVisibleToAll bool                 `bson:"is_visible_to_all" json:"is_visible_to_all"`
	VisibleTo      []primitive.ObjectID `bson:"visible_to" json:"visible_to"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
}

// VisibleToStudent reports whether a student may see this job.
// Invariant: an unapproved job is visible to no student, regardless of
// what the visibility fields say.
func (j *Job) VisibleToStudent(studentID primitive.ObjectID) bool {
	if !j.IsApproved {
		return false
	}
	if j.IsVisibleToAll {
		return true
	}
	for _, id := range j.VisibleTo {
		if id == studentID {
			return true
		}
	}
	return false
}

// PublishRequest is an admin's instruction to make a draft job visible.
// Broadcast (SendToAll) and targeting are mutually exclusive; targeting
// replaces any previous allow-list rather than extending it.
type PublishRequest struct {
	JobID      primitive.ObjectID
	SendToAll  bool
	StudentIDs []primitive.ObjectID
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Job, error)
	FetchAll(ctx context.Context) ([]Job, error)
	FetchByCompanyID(ctx context.Context, companyID primitive.ObjectID) ([]Job, error)
	FetchByApproval(ctx context.Context, approved bool) ([]Job, error)
	FetchVisibleToStudent(ctx context.Context, studentID primitive.ObjectID) ([]Job, error)
	SetVisibility(ctx context.Context, id primitive.ObjectID, approved, visibleToAll bool, visibleTo []primitive.ObjectID) (*Job, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByCompanyID(ctx context.Context, companyID primitive.ObjectID) (int64, error)
}

type JobUsecase interface {
	// Company operations
	CreateJob(ctx context.Context, companyID primitive.ObjectID, job *Job, jd *FileUpload) error
	ListCompanyJobs(ctx context.Context, companyID primitive.ObjectID) ([]Job, error)
	DeleteJob(ctx context.Context, companyID, jobID primitive.ObjectID) error

	// Admin operations
	ListPendingJobs(ctx context.Context) ([]Job, error)
	ListApprovedJobs(ctx context.Context) ([]Job, error)
	Publish(ctx context.Context, req PublishRequest) (*Job, error)
	Revoke(ctx context.Context, jobID primitive.ObjectID) (*Job, error)

	// Role-aware listing: admins see everything, companies their own jobs,
	// registered students only what has been published to them.
	ListVisibleJobs(ctx context.Context, p Principal) ([]Job, error)
}
