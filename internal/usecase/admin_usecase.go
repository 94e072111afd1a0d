package usecase

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
	"placement-cell-backend/pkg/logger"
)

type adminUsecase struct {
	companyRepo     domain.CompanyRepository
	jobRepo         domain.JobRepository
	applicationRepo domain.ApplicationRepository
	studentRepo     domain.StudentRepository
	tx              domain.TxRunner
}

func NewAdminUsecase(
	companyRepo domain.CompanyRepository,
	jobRepo domain.JobRepository,
	applicationRepo domain.ApplicationRepository,
	studentRepo domain.StudentRepository,
	tx domain.TxRunner,
) domain.AdminUsecase {
	return &adminUsecase{
		companyRepo:     companyRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		studentRepo:     studentRepo,
		tx:              tx,
	}
}

// SetCompanyVerification flips the verified flag. Un-verifying tears
// down everything the company owns (applications first, then jobs,
// then the flag) in one transaction where the store supports it, so a
// failed teardown never leaves the flag cleared with jobs still live.
func (u *adminUsecase) SetCompanyVerification(ctx context.Context, companyID primitive.ObjectID, verified bool) (*domain.Company, error) {
	company, err := u.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, apperror.NotFound("Company not found")
	}

	if verified {
		if err := u.companyRepo.SetVerified(ctx, companyID, true); err != nil {
			return nil, apperror.Internal(err)
		}
		company.IsVerified = true
		return company, nil
	}

	err = u.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := u.applicationRepo.DeleteByCompanyID(txCtx, companyID); err != nil {
			return err
		}
		if _, err := u.jobRepo.DeleteByCompanyID(txCtx, companyID); err != nil {
			return err
		}
		return u.companyRepo.SetVerified(txCtx, companyID, false)
	})
	if err != nil {
		return nil, apperror.StorageInconsistency("Company un-verification did not complete; retry the request", err)
	}

	logger.Log.Info("company unverified, dependents removed", "company_id", companyID.Hex(), "name", company.Name)
	company.IsVerified = false
	return company, nil
}

// DeleteCompany removes the company and everything it owns, in
// dependency order: applications, jobs, then the company record.
func (u *adminUsecase) DeleteCompany(ctx context.Context, companyID primitive.ObjectID) error {
	if _, err := u.companyRepo.GetByID(ctx, companyID); err != nil {
		return apperror.NotFound("Company not found")
	}

	err := u.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := u.applicationRepo.DeleteByCompanyID(txCtx, companyID); err != nil {
			return err
		}
		if _, err := u.jobRepo.DeleteByCompanyID(txCtx, companyID); err != nil {
			return err
		}
		return u.companyRepo.Delete(txCtx, companyID)
	})
	if err != nil {
		return apperror.StorageInconsistency("Company deletion did not complete; retry the request", err)
	}
	return nil
}

func (u *adminUsecase) SearchCompanies(ctx context.Context, query string) ([]domain.Company, error) {
	return u.companyRepo.Search(ctx, query)
}

func (u *adminUsecase) SearchStudents(ctx context.Context, filter domain.StudentFilter) ([]domain.Student, error) {
	return u.studentRepo.Search(ctx, filter)
}

var studentExportColumns = []string{"Name", "Email", "Roll Number", "Branch", "CGPA", "Mobile Number"}

// ExportRegisteredStudents renders the registered-student roster as an
// xlsx workbook and returns the bytes plus a download filename.
func (u *adminUsecase) ExportRegisteredStudents(ctx context.Context) ([]byte, string, error) {
	students, err := u.studentRepo.FetchRegistered(ctx)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, col := range studentExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, "", apperror.Internal(err)
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(studentExportColumns), 1)
	_ = f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for rowIdx, s := range students {
		values := []interface{}{s.Name, s.Email, s.RollNumber, s.Branch, s.CGPA, s.MobileNumber}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", apperror.Internal(err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return buf.Bytes(), fmt.Sprintf("registered_students_%d.xlsx", len(students)), nil
}
