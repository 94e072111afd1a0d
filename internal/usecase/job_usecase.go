package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
	"placement-cell-backend/pkg/logger"
)

type jobUsecase struct {
	jobRepo         domain.JobRepository
	companyRepo     domain.CompanyRepository
	studentRepo     domain.StudentRepository
	applicationRepo domain.ApplicationRepository
	blobs           domain.BlobStore
	tx              domain.TxRunner
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	companyRepo domain.CompanyRepository,
	studentRepo domain.StudentRepository,
	applicationRepo domain.ApplicationRepository,
	blobs domain.BlobStore,
	tx domain.TxRunner,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		studentRepo:     studentRepo,
		applicationRepo: applicationRepo,
		blobs:           blobs,
		tx:              tx,
	}
}

// CreateJob creates a draft posting for a verified company. When a JD
// document is attached its upload must succeed for the job to exist at
// all; a draft never references a blob that was not stored.
func (u *jobUsecase) CreateJob(ctx context.Context, companyID primitive.ObjectID, job *domain.Job, jd *domain.FileUpload) error {
	company, err := u.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return apperror.NotFound("Company not found")
	}
	if !company.IsVerified {
		return apperror.Forbidden("Company must be verified by admin to create jobs")
	}

	if job.Title == "" || job.Description == "" {
		return apperror.BadRequest("Title and description are required")
	}

	job.CompanyID = companyID
	job.IsApproved = false
	job.IsVisibleToAll = false
	job.VisibleTo = nil
	job.CreatedAt = time.Now()

	if jd != nil {
		ref, err := u.blobs.Upload(ctx, jd.Data, "jd_uploads/"+companyID.Hex(), domain.BlobKindDocument)
		if err != nil {
			return apperror.UploadFailed(err)
		}
		job.JDDoc = ref
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) ListCompanyJobs(ctx context.Context, companyID primitive.ObjectID) ([]domain.Job, error) {
	return u.jobRepo.FetchByCompanyID(ctx, companyID)
}

// DeleteJob removes a job the acting company owns, together with every
// application it received. The JD blob is cleaned up afterwards on a
// best-effort basis; the record deletion never waits on the media store.
func (u *jobUsecase) DeleteJob(ctx context.Context, companyID, jobID primitive.ObjectID) error {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return apperror.NotFound("Job not found")
	}
	if job.CompanyID != companyID {
		return apperror.Forbidden("You do not have permission to delete this job")
	}

	err = u.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := u.applicationRepo.DeleteByJobID(txCtx, jobID); err != nil {
			return err
		}
		return u.jobRepo.Delete(txCtx, jobID)
	})
	if err != nil {
		return apperror.StorageInconsistency("Job deletion did not complete; retry the delete", err)
	}

	if job.JDDoc != nil {
		if err := u.blobs.Delete(ctx, job.JDDoc.BlobID, domain.BlobKindDocument); err != nil {
			logger.Log.Warn("failed to remove JD from media store", "job_id", jobID.Hex(), "error", err)
		}
	}
	return nil
}

func (u *jobUsecase) ListPendingJobs(ctx context.Context) ([]domain.Job, error) {
	return u.jobRepo.FetchByApproval(ctx, false)
}

func (u *jobUsecase) ListApprovedJobs(ctx context.Context) ([]domain.Job, error) {
	return u.jobRepo.FetchByApproval(ctx, true)
}

// Publish makes a draft visible: either broadcast to every registered
// student or targeted at an explicit allow-list. Targeting replaces any
// previous list outright, so republishing is an idempotent overwrite.
func (u *jobUsecase) Publish(ctx context.Context, req domain.PublishRequest) (*domain.Job, error) {
	if !req.SendToAll && len(req.StudentIDs) == 0 {
		return nil, apperror.BadRequest("Select at least one student or send to all")
	}

	visibleTo := req.StudentIDs
	if req.SendToAll {
		visibleTo = nil
	}

	job, err := u.jobRepo.SetVisibility(ctx, req.JobID, true, req.SendToAll, visibleTo)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// Revoke returns a job to its draft state. Existing applications are
// kept; revocation only blocks future visibility.
func (u *jobUsecase) Revoke(ctx context.Context, jobID primitive.ObjectID) (*domain.Job, error) {
	job, err := u.jobRepo.SetVisibility(ctx, jobID, false, false, nil)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// ListVisibleJobs applies the visibility rules per role. A student who
// has not completed registration is refused outright rather than shown
// an empty list.
func (u *jobUsecase) ListVisibleJobs(ctx context.Context, p domain.Principal) ([]domain.Job, error) {
	switch p.Role {
	case domain.RoleAdmin:
		return u.jobRepo.FetchAll(ctx)
	case domain.RoleCompany:
		return u.jobRepo.FetchByCompanyID(ctx, p.ID)
	case domain.RoleStudent:
		student, err := u.studentRepo.GetByID(ctx, p.ID)
		if err != nil {
			return nil, apperror.NotFound("Student not found")
		}
		if !student.IsRegistered {
			return nil, apperror.Forbidden("Student must be registered to view jobs")
		}
		return u.jobRepo.FetchVisibleToStudent(ctx, p.ID)
	default:
		return nil, apperror.Forbidden("Unknown role")
	}
}
