package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/domain"
	"placement-cell-backend/internal/usecase"
	"placement-cell-backend/pkg/apperror"
)

func newStudentUsecase(studentRepo *MockStudentRepo, appRepo *MockApplicationRepo, blobs *MockBlobStore) domain.StudentUsecase {
	return usecase.NewStudentUsecase(studentRepo, appRepo, blobs, passthroughTx{}, validator.New())
}

func TestStudentRegister(t *testing.T) {
	ctx := context.Background()
	studentID := primitive.NewObjectID()

	t.Run("Rejects the wrong number of SGPA values", func(t *testing.T) {
		uc := newStudentUsecase(new(MockStudentRepo), new(MockApplicationRepo), new(MockBlobStore))
		_, err := uc.Register(ctx, studentID, domain.StudentRegistration{
			Branch: "CSE",
			SGPA:   []float64{8, 9, 7},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "six SGPA")
	})

	t.Run("Rejects out-of-range SGPA", func(t *testing.T) {
		uc := newStudentUsecase(new(MockStudentRepo), new(MockApplicationRepo), new(MockBlobStore))
		_, err := uc.Register(ctx, studentID, domain.StudentRegistration{
			Branch: "CSE",
			SGPA:   []float64{8, 9, 7, 8, 11, 6},
		})
		assert.Error(t, err)
	})

	t.Run("Computes CGPA as the mean and flips registration", func(t *testing.T) {
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(&domain.Student{ID: studentID}, nil)
		studentRepo.On("Update", ctx, mock.MatchedBy(func(s *domain.Student) bool {
			return s.IsRegistered && s.CGPA == 8.0 && s.Branch == "CSE"
		})).Return(nil)

		uc := newStudentUsecase(studentRepo, new(MockApplicationRepo), new(MockBlobStore))
		student, err := uc.Register(ctx, studentID, domain.StudentRegistration{
			Branch: "CSE",
			SGPA:   []float64{7, 8, 9, 8, 8, 8},
		})

		assert.NoError(t, err)
		assert.True(t, student.IsRegistered)
		assert.InDelta(t, 8.0, student.CGPA, 1e-9)
		studentRepo.AssertExpectations(t)
	})
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestStudentUploads(t *testing.T) {
	ctx := context.Background()
	studentID := primitive.NewObjectID()

	t.Run("Photo is re-encoded and the old blob removed", func(t *testing.T) {
		oldRef := &domain.FileRef{URL: "https://media/old.jpg", BlobID: "profile_photos/old"}
		newRef := &domain.FileRef{URL: "https://media/new.jpg", BlobID: "profile_photos/new"}

		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(&domain.Student{ID: studentID, ProfilePhoto: oldRef}, nil)
		studentRepo.On("Update", ctx, mock.MatchedBy(func(s *domain.Student) bool {
			return s.ProfilePhoto == newRef
		})).Return(nil)

		blobs := new(MockBlobStore)
		blobs.On("Upload", ctx, mock.Anything, "profile_photos", domain.BlobKindImage).Return(newRef, nil)
		blobs.On("Delete", ctx, oldRef.BlobID, domain.BlobKindImage).Return(nil)

		uc := newStudentUsecase(studentRepo, new(MockApplicationRepo), blobs)
		ref, err := uc.UploadPhoto(ctx, studentID, domain.FileUpload{Data: pngBytes(t, 10, 10)})

		assert.NoError(t, err)
		assert.Equal(t, newRef, ref)
		blobs.AssertExpectations(t)
	})

	t.Run("Garbage photo bytes are rejected before upload", func(t *testing.T) {
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(&domain.Student{ID: studentID}, nil)

		blobs := new(MockBlobStore)
		uc := newStudentUsecase(studentRepo, new(MockApplicationRepo), blobs)
		_, err := uc.UploadPhoto(ctx, studentID, domain.FileUpload{Data: []byte("not an image")})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		blobs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Resume must be a PDF", func(t *testing.T) {
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(&domain.Student{ID: studentID}, nil)

		uc := newStudentUsecase(studentRepo, new(MockApplicationRepo), new(MockBlobStore))
		_, err := uc.UploadResume(ctx, studentID, domain.FileUpload{Data: []byte("plain text")})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "PDF")
	})

	t.Run("Valid PDF resume is stored", func(t *testing.T) {
		ref := &domain.FileRef{URL: "https://media/cv.pdf", BlobID: "resumes/cv"}

		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(&domain.Student{ID: studentID}, nil)
		studentRepo.On("Update", ctx, mock.Anything).Return(nil)

		blobs := new(MockBlobStore)
		blobs.On("Upload", ctx, mock.Anything, "resumes", domain.BlobKindDocument).Return(ref, nil)

		uc := newStudentUsecase(studentRepo, new(MockApplicationRepo), blobs)
		got, err := uc.UploadResume(ctx, studentID, domain.FileUpload{Data: []byte("%PDF-1.7 rest")})

		assert.NoError(t, err)
		assert.Equal(t, ref, got)
	})
}

func TestStudentDeleteAccount(t *testing.T) {
	ctx := context.Background()
	studentID := primitive.NewObjectID()

	t.Run("Applications are removed with the account", func(t *testing.T) {
		photo := &domain.FileRef{BlobID: "profile_photos/p"}
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(&domain.Student{ID: studentID, ProfilePhoto: photo}, nil)
		studentRepo.On("Delete", ctx, studentID).Return(nil)

		appRepo := new(MockApplicationRepo)
		appRepo.On("DeleteByStudentID", ctx, studentID).Return(int64(2), nil)

		blobs := new(MockBlobStore)
		blobs.On("Delete", ctx, photo.BlobID, domain.BlobKindImage).Return(nil)

		uc := newStudentUsecase(studentRepo, appRepo, blobs)
		assert.NoError(t, uc.DeleteAccount(ctx, studentID))
		appRepo.AssertExpectations(t)
		studentRepo.AssertExpectations(t)
	})

	t.Run("Partial cascade surfaces a retryable error", func(t *testing.T) {
		studentRepo := new(MockStudentRepo)
		studentRepo.On("GetByID", ctx, studentID).Return(&domain.Student{ID: studentID}, nil)

		appRepo := new(MockApplicationRepo)
		appRepo.On("DeleteByStudentID", ctx, studentID).Return(int64(0), errors.New("write conflict"))

		uc := newStudentUsecase(studentRepo, appRepo, new(MockBlobStore))
		err := uc.DeleteAccount(ctx, studentID)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		studentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
