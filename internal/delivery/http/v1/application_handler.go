package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-cell-backend/internal/delivery/http/response"
	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(student, company *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	student.POST("/jobs/:id/apply", handler.Apply)
	student.GET("/applications", handler.ListMine)

	company.GET("/applications", handler.ListForCompany)
	company.GET("/jobs/:id/applications", handler.ListForJob)
	company.PATCH("/applications/:id", handler.UpdateStatus)
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := objectIDParam(c, "id")
	if !ok {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}
	app, err := h.applicationUC.Apply(c.Request.Context(), principalFrom(c).ID, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applicationUC.ListMyApplications(c.Request.Context(), principalFrom(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

func (h *ApplicationHandler) ListForCompany(c *gin.Context) {
	apps, err := h.applicationUC.ListCompanyApplications(c.Request.Context(), principalFrom(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	jobID, ok := objectIDParam(c, "id")
	if !ok {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}
	apps, err := h.applicationUC.ListJobApplications(c.Request.Context(), principalFrom(c).ID, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	appID, ok := objectIDParam(c, "id")
	if !ok {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.applicationUC.UpdateStatus(c.Request.Context(), principalFrom(c).ID, appID, req.Status); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", nil)
}
