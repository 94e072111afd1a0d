package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-cell-backend/internal/delivery/http/response"
	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	adminUC   domain.AdminUsecase
	studentUC domain.StudentUsecase
}

func NewAdminHandler(admin *gin.RouterGroup, adminUC domain.AdminUsecase, studentUC domain.StudentUsecase) {
	handler := &AdminHandler{adminUC: adminUC, studentUC: studentUC}

	admin.PATCH("/companies/:id/verification", handler.SetVerification)
	admin.DELETE("/companies/:id", handler.DeleteCompany)
	admin.GET("/companies", handler.SearchCompanies)
	admin.GET("/students", handler.SearchStudents)
	admin.GET("/students/registered", handler.ListRegistered)
	admin.GET("/students/export", handler.ExportStudents)
}

type verificationRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

func (h *AdminHandler) SetVerification(c *gin.Context) {
	companyID, ok := objectIDParam(c, "id")
	if !ok {
		c.Error(apperror.BadRequest("Invalid company ID"))
		return
	}

	var req verificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Field 'verified' is required"))
		return
	}

	company, err := h.adminUC.SetCompanyVerification(c.Request.Context(), companyID, *req.Verified)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Verification updated", company)
}

func (h *AdminHandler) DeleteCompany(c *gin.Context) {
	companyID, ok := objectIDParam(c, "id")
	if !ok {
		c.Error(apperror.BadRequest("Invalid company ID"))
		return
	}
	if err := h.adminUC.DeleteCompany(c.Request.Context(), companyID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company deleted", nil)
}

func (h *AdminHandler) SearchCompanies(c *gin.Context) {
	companies, err := h.adminUC.SearchCompanies(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Companies retrieved", companies)
}

func (h *AdminHandler) SearchStudents(c *gin.Context) {
	filter := domain.StudentFilter{
		Query:          c.Query("q"),
		Branch:         c.Query("branch"),
		RegisteredOnly: c.Query("registered") == "true",
	}
	students, err := h.adminUC.SearchStudents(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Students retrieved", students)
}

// ListRegistered backs the publish-targeting picker.
func (h *AdminHandler) ListRegistered(c *gin.Context) {
	students, err := h.studentUC.ListRegistered(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Registered students retrieved", students)
}

func (h *AdminHandler) ExportStudents(c *gin.Context) {
	data, filename, err := h.adminUC.ExportRegisteredStudents(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
