package usecase

import (
	"bytes"
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
	"placement-cell-backend/pkg/logger"
)

var pdfMagic = []byte("%PDF-")

type studentUsecase struct {
	studentRepo     domain.StudentRepository
	applicationRepo domain.ApplicationRepository
	blobs           domain.BlobStore
	tx              domain.TxRunner
	validate        *validator.Validate
}

func NewStudentUsecase(
	studentRepo domain.StudentRepository,
	applicationRepo domain.ApplicationRepository,
	blobs domain.BlobStore,
	tx domain.TxRunner,
	validate *validator.Validate,
) domain.StudentUsecase {
	return &studentUsecase{
		studentRepo:     studentRepo,
		applicationRepo: applicationRepo,
		blobs:           blobs,
		tx:              tx,
		validate:        validate,
	}
}

func (u *studentUsecase) GetProfile(ctx context.Context, id primitive.ObjectID) (*domain.Student, error) {
	student, err := u.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Student not found")
	}
	return student, nil
}

// Register completes a student account. CGPA is always recomputed here
// as the mean of the submitted SGPA values; clients never set it.
func (u *studentUsecase) Register(ctx context.Context, id primitive.ObjectID, reg domain.StudentRegistration) (*domain.Student, error) {
	if err := u.validate.Struct(reg); err != nil {
		return nil, apperror.BadRequest("Branch and exactly six SGPA values between 0 and 10 are required")
	}

	student, err := u.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Student not found")
	}

	var sum float64
	for _, s := range reg.SGPA {
		sum += s
	}

	student.Branch = reg.Branch
	student.SGPA = reg.SGPA
	student.CGPA = sum / float64(domain.SGPACount)
	student.MobileNumber = reg.MobileNumber
	student.Domains = reg.Domains
	student.Address = reg.Address
	student.City = reg.City
	student.State = reg.State
	student.Pin = reg.Pin
	student.IsRegistered = true
	student.UpdatedAt = time.Now()

	if err := u.studentRepo.Update(ctx, student); err != nil {
		return nil, apperror.Internal(err)
	}
	return student, nil
}

// UploadPhoto stores a downscaled JPEG of the submitted image and swaps
// the profile reference. The previous photo is removed best-effort.
func (u *studentUsecase) UploadPhoto(ctx context.Context, id primitive.ObjectID, upload domain.FileUpload) (*domain.FileRef, error) {
	student, err := u.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Student not found")
	}

	compressed, err := compressImage(upload.Data, photoMaxDimension, photoJPEGQuality)
	if err != nil {
		return nil, apperror.BadRequest("File must be a valid image")
	}

	ref, err := u.blobs.Upload(ctx, compressed, "profile_photos", domain.BlobKindImage)
	if err != nil {
		return nil, apperror.UploadFailed(err)
	}

	old := student.ProfilePhoto
	student.ProfilePhoto = ref
	student.UpdatedAt = time.Now()
	if err := u.studentRepo.Update(ctx, student); err != nil {
		return nil, apperror.Internal(err)
	}

	if old != nil {
		if err := u.blobs.Delete(ctx, old.BlobID, domain.BlobKindImage); err != nil {
			logger.Log.Warn("failed to remove old profile photo", "student_id", id.Hex(), "error", err)
		}
	}
	return ref, nil
}

// UploadResume stores a PDF resume and swaps the profile reference.
func (u *studentUsecase) UploadResume(ctx context.Context, id primitive.ObjectID, upload domain.FileUpload) (*domain.FileRef, error) {
	student, err := u.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Student not found")
	}

	if !bytes.HasPrefix(upload.Data, pdfMagic) {
		return nil, apperror.BadRequest("Resume must be a PDF file")
	}

	ref, err := u.blobs.Upload(ctx, upload.Data, "resumes", domain.BlobKindDocument)
	if err != nil {
		return nil, apperror.UploadFailed(err)
	}

	old := student.ResumePDF
	student.ResumePDF = ref
	student.UpdatedAt = time.Now()
	if err := u.studentRepo.Update(ctx, student); err != nil {
		return nil, apperror.Internal(err)
	}

	if old != nil {
		if err := u.blobs.Delete(ctx, old.BlobID, domain.BlobKindDocument); err != nil {
			logger.Log.Warn("failed to remove old resume", "student_id", id.Hex(), "error", err)
		}
	}
	return ref, nil
}

// DeleteAccount removes the student and every application they filed,
// then cleans up stored media best-effort.
func (u *studentUsecase) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	student, err := u.studentRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Student not found")
	}

	err = u.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := u.applicationRepo.DeleteByStudentID(txCtx, id); err != nil {
			return err
		}
		return u.studentRepo.Delete(txCtx, id)
	})
	if err != nil {
		return apperror.StorageInconsistency("Account deletion did not complete; retry the request", err)
	}

	if student.ProfilePhoto != nil {
		if err := u.blobs.Delete(ctx, student.ProfilePhoto.BlobID, domain.BlobKindImage); err != nil {
			logger.Log.Warn("failed to remove profile photo", "student_id", id.Hex(), "error", err)
		}
	}
	if student.ResumePDF != nil {
		if err := u.blobs.Delete(ctx, student.ResumePDF.BlobID, domain.BlobKindDocument); err != nil {
			logger.Log.Warn("failed to remove resume", "student_id", id.Hex(), "error", err)
		}
	}
	return nil
}

func (u *studentUsecase) ListRegistered(ctx context.Context) ([]domain.Student, error) {
	return u.studentRepo.FetchRegistered(ctx)
}
