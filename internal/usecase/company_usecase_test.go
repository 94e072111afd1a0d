package usecase_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
	"placement-cell-backend/internal/usecase"
)

func TestCompanyUpdateProfile(t *testing.T) {
	ctx := context.Background()
	companyID := primitive.NewObjectID()

	t.Run("Rejects a malformed LinkedIn URL", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		uc := usecase.NewCompanyUsecase(companyRepo, validator.New())

		_, err := uc.UpdateProfile(ctx, companyID, domain.CompanyUpdate{
			Name:        "Acme",
			LinkedInURL: "not a url",
		})

		assert.Error(t, err)
		companyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Valid update reaches storage", func(t *testing.T) {
		upd := domain.CompanyUpdate{Name: "Acme", Location: "Nagpur"}
		companyRepo := new(MockCompanyRepo)
		companyRepo.On("Update", ctx, companyID, upd).Return(&domain.Company{ID: companyID, Name: "Acme", Location: "Nagpur"}, nil)

		uc := usecase.NewCompanyUsecase(companyRepo, validator.New())
		company, err := uc.UpdateProfile(ctx, companyID, upd)

		assert.NoError(t, err)
		assert.Equal(t, "Nagpur", company.Location)
		companyRepo.AssertExpectations(t)
	})
}
