package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-cell-backend/internal/delivery/http/response"
	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
)

const (
	maxPhotoBytes  = 5 << 20
	maxResumeBytes = 10 << 20
)

type StudentHandler struct {
	studentUC domain.StudentUsecase
}

func NewStudentHandler(student *gin.RouterGroup, studentUC domain.StudentUsecase) {
	handler := &StudentHandler{studentUC: studentUC}

	student.GET("/profile", handler.Profile)
	student.POST("/register", handler.Register)
	student.POST("/photo", handler.UploadPhoto)
	student.POST("/resume", handler.UploadResume)
	student.DELETE("/account", handler.DeleteAccount)
}

func (h *StudentHandler) Profile(c *gin.Context) {
	student, err := h.studentUC.GetProfile(c.Request.Context(), principalFrom(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", student)
}

func (h *StudentHandler) Register(c *gin.Context) {
	var reg domain.StudentRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	student, err := h.studentUC.Register(c.Request.Context(), principalFrom(c).ID, reg)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Registration complete", student)
}

func (h *StudentHandler) UploadPhoto(c *gin.Context) {
	upload, err := readUpload(c, "photo", maxPhotoBytes)
	if err != nil {
		c.Error(err)
		return
	}
	ref, err := h.studentUC.UploadPhoto(c.Request.Context(), principalFrom(c).ID, *upload)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Photo uploaded", ref)
}

func (h *StudentHandler) UploadResume(c *gin.Context) {
	upload, err := readUpload(c, "resume", maxResumeBytes)
	if err != nil {
		c.Error(err)
		return
	}
	ref, err := h.studentUC.UploadResume(c.Request.Context(), principalFrom(c).ID, *upload)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume uploaded", ref)
}

func (h *StudentHandler) DeleteAccount(c *gin.Context) {
	if err := h.studentUC.DeleteAccount(c.Request.Context(), principalFrom(c).ID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account deleted", nil)
}

func readUpload(c *gin.Context, field string, maxBytes int64) (*domain.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, apperror.BadRequest("Missing file field: " + field)
	}
	if fh.Size > maxBytes {
		return nil, apperror.BadRequest("File too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apperror.BadRequest("Could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperror.BadRequest("Could not read uploaded file")
	}
	return &domain.FileUpload{Data: data, ContentType: fh.Header.Get("Content-Type")}, nil
}
