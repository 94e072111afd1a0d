package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
)

type companyUsecase struct {
	companyRepo domain.CompanyRepository
	validate    *validator.Validate
}

func NewCompanyUsecase(companyRepo domain.CompanyRepository, validate *validator.Validate) domain.CompanyUsecase {
	return &companyUsecase{companyRepo: companyRepo, validate: validate}
}

func (u *companyUsecase) GetProfile(ctx context.Context, id primitive.ObjectID) (*domain.Company, error) {
	company, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Company not found")
	}
	return company, nil
}

func (u *companyUsecase) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd domain.CompanyUpdate) (*domain.Company, error) {
	if err := u.validate.Struct(upd); err != nil {
		return nil, apperror.BadRequest("Invalid company profile: " + err.Error())
	}

	company, err := u.companyRepo.Update(ctx, id, upd)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Company not found")
		}
		return nil, apperror.Internal(err)
	}
	return company, nil
}
