package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	studentRepo     domain.StudentRepository
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	studentRepo domain.StudentRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		studentRepo:     studentRepo,
	}
}

// Apply submits an application after the full eligibility check:
// registered student, existing job, job visible to this student, no
// prior application. The company id is frozen from the job here so the
// application stays queryable even if the job later disappears.
func (uc *applicationUsecase) Apply(ctx context.Context, studentID, jobID primitive.ObjectID) (*domain.Application, error) {
	student, err := uc.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, apperror.NotFound("Student not found")
	}
	if !student.IsRegistered {
		return nil, apperror.Forbidden("Complete your registration before applying")
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if !job.VisibleToStudent(studentID) {
		return nil, apperror.Forbidden("You do not have access to this job")
	}

	exists, err := uc.applicationRepo.Exists(ctx, jobID, studentID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("Already applied for this job")
	}

	app := &domain.Application{
		JobID:     jobID,
		CompanyID: job.CompanyID,
		StudentID: studentID,
		Status:    domain.ApplicationStatusPending,
		AppliedAt: time.Now(),
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		// The unique index catches the race two concurrent applies lose to
		// the existence check above.
		if err == domain.ErrDuplicate {
			return nil, apperror.Conflict("Already applied for this job")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// ListMyApplications returns all applications for the current student
func (uc *applicationUsecase) ListMyApplications(ctx context.Context, studentID primitive.ObjectID) ([]domain.Application, error) {
	return uc.applicationRepo.FetchByStudentID(ctx, studentID)
}

// ListCompanyApplications returns every application across the company's jobs
func (uc *applicationUsecase) ListCompanyApplications(ctx context.Context, companyID primitive.ObjectID) ([]domain.Application, error) {
	return uc.applicationRepo.FetchByCompanyID(ctx, companyID)
}

// ListJobApplications returns applications for one job, owner only
func (uc *applicationUsecase) ListJobApplications(ctx context.Context, companyID, jobID primitive.ObjectID) ([]domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.CompanyID != companyID {
		return nil, apperror.Forbidden("You do not have access to this job's applications")
	}
	return uc.applicationRepo.FetchByJobID(ctx, jobID)
}

// UpdateStatus lets the owning company decide an application,
// moving it from pending to accepted or rejected.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, companyID, applicationID primitive.ObjectID, status string) error {
	if status != domain.ApplicationStatusAccepted && status != domain.ApplicationStatusRejected {
		return apperror.BadRequest("Invalid status. Must be: accepted or rejected")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return apperror.NotFound("Application not found")
	}
	if app.CompanyID != companyID {
		return apperror.Forbidden("You do not have access to this application")
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
