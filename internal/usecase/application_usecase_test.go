package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
	"placement-cell-backend/internal/usecase"
	"placement-cell-backend/pkg/apperror"
)

func TestApply(t *testing.T) {
	ctx := context.Background()
	studentID := primitive.NewObjectID()
	companyID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()

	registered := &domain.Student{ID: studentID, IsRegistered: true}
	broadcastJob := &domain.Job{ID: jobID, CompanyID: companyID, IsApproved: true, IsVisibleToAll: true}

	t.Run("Unregistered student cannot apply", func(t *testing.T) {
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(&domain.Student{ID: studentID}, nil)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), studentRepo)
		_, err := uc.Apply(ctx, studentID, jobID)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusForbidden, appErr.Code)
		assert.Contains(t, err.Error(), "registration")
	})

	t.Run("Cannot apply to an invisible job", func(t *testing.T) {
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(registered, nil)

		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", ctx, jobID).Return(&domain.Job{
			ID: jobID, CompanyID: companyID, IsApproved: true,
			VisibleTo: []primitive.ObjectID{primitive.NewObjectID()},
		}, nil)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), jobRepo, studentRepo)
		_, err := uc.Apply(ctx, studentID, jobID)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusForbidden, appErr.Code)
		assert.Contains(t, err.Error(), "access")
	})

	t.Run("Cannot apply to a revoked job even when still listed client-side", func(t *testing.T) {
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(registered, nil)

		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", ctx, jobID).Return(&domain.Job{
			ID: jobID, CompanyID: companyID,
			IsApproved: false, IsVisibleToAll: true,
		}, nil)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), jobRepo, studentRepo)
		_, err := uc.Apply(ctx, studentID, jobID)
		assert.Error(t, err)
	})

	t.Run("Duplicate application conflicts", func(t *testing.T) {
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(registered, nil)

		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", ctx, jobID).Return(broadcastJob, nil)

		appRepo := new(MockApplicationRepo)
		appRepo.On("Exists", ctx, jobID, studentID).Return(true, nil)

		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, studentRepo)
		_, err := uc.Apply(ctx, studentID, jobID)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
	})

	t.Run("Lost insert race maps to the same conflict", func(t *testing.T) {
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(registered, nil)

		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", ctx, jobID).Return(broadcastJob, nil)

		appRepo := new(MockApplicationRepo)
		appRepo.On("Exists", ctx, jobID, studentID).Return(false, nil)
		appRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, studentRepo)
		_, err := uc.Apply(ctx, studentID, jobID)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
	})

	t.Run("Successful apply freezes the company id", func(t *testing.T) {
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(registered, nil)

		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", ctx, jobID).Return(broadcastJob, nil)

		appRepo := new(MockApplicationRepo)
		appRepo.On("Exists", ctx, jobID, studentID).Return(false, nil)
		appRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.CompanyID == companyID && a.Status == domain.ApplicationStatusPending && a.StudentID == studentID
		})).Return(nil)

		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, studentRepo)
		app, err := uc.Apply(ctx, studentID, jobID)

		assert.NoError(t, err)
		assert.Equal(t, companyID, app.CompanyID)
		appRepo.AssertExpectations(t)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()
	companyID := primitive.NewObjectID()
	appID := primitive.NewObjectID()

	t.Run("Only accepted or rejected are allowed", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), new(MockStudentRepo))
		err := uc.UpdateStatus(ctx, companyID, appID, "pending")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "accepted or rejected")
	})

	t.Run("Another company's application is off limits", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", ctx, appID).Return(&domain.Application{ID: appID, CompanyID: primitive.NewObjectID()}, nil)

		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), new(MockStudentRepo))
		err := uc.UpdateStatus(ctx, companyID, appID, domain.ApplicationStatusAccepted)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusForbidden, appErr.Code)
	})

	t.Run("Owner can accept", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", ctx, appID).Return(&domain.Application{ID: appID, CompanyID: companyID}, nil)
		appRepo.On("UpdateStatus", ctx, appID, domain.ApplicationStatusAccepted).Return(nil)

		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), new(MockStudentRepo))
		assert.NoError(t, uc.UpdateStatus(ctx, companyID, appID, domain.ApplicationStatusAccepted))
		appRepo.AssertExpectations(t)
	})
}

func TestListJobApplications(t *testing.T) {
	ctx := context.Background()
	companyID := primitive.NewObjectID()
	jobID := primitive.NewObjectID()

	t.Run("Owner only", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", ctx, jobID).Return(&domain.Job{ID: jobID, CompanyID: primitive.NewObjectID()}, nil)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), jobRepo, new(MockStudentRepo))
		_, err := uc.ListJobApplications(ctx, companyID, jobID)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusForbidden, appErr.Code)
	})
}
