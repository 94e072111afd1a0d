package v1

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/delivery/http/response"
	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
)

const maxJDBytes = 10 << 20

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected, company, admin *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Role-aware listing: every authenticated principal sees its slice.
	protected.GET("/jobs", handler.List)

	company.POST("/jobs", handler.Create)
	company.GET("/jobs", handler.ListOwn)
	company.DELETE("/jobs/:id", handler.Delete)

	admin.GET("/jobs/pending", handler.ListPending)
	admin.GET("/jobs/approved", handler.ListApproved)
	admin.POST("/jobs/:id/publish", handler.Publish)
	admin.POST("/jobs/:id/revoke", handler.Revoke)
}

// Create accepts a multipart form so the JD document can ride along
// with the job fields.
func (h *JobHandler) Create(c *gin.Context) {
	job := &domain.Job{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Requirements: c.PostForm("requirements"),
		Salary:       c.PostForm("salary"),
		Location:     c.PostForm("location"),
		Branches:     c.PostFormArray("branches"),
	}

	if raw := c.PostForm("deadline"); raw != "" {
		deadline, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.Error(apperror.BadRequest("Deadline must be RFC3339"))
			return
		}
		job.Deadline = &deadline
	}

	var jd *domain.FileUpload
	if fh, err := c.FormFile("jd"); err == nil {
		if fh.Size > maxJDBytes {
			c.Error(apperror.BadRequest("JD document exceeds the 10MB limit"))
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.Error(apperror.BadRequest("Could not read JD document"))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.Error(apperror.BadRequest("Could not read JD document"))
			return
		}
		jd = &domain.FileUpload{Data: data, ContentType: fh.Header.Get("Content-Type")}
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), principalFrom(c).ID, job, jd); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListVisibleJobs(c.Request.Context(), principalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

func (h *JobHandler) ListOwn(c *gin.Context) {
	jobs, err := h.jobUC.ListCompanyJobs(c.Request.Context(), principalFrom(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

func (h *JobHandler) Delete(c *gin.Context) {
	jobID, ok := objectIDParam(c, "id")
	if !ok {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}
	if err := h.jobUC.DeleteJob(c.Request.Context(), principalFrom(c).ID, jobID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

func (h *JobHandler) ListPending(c *gin.Context) {
	jobs, err := h.jobUC.ListPendingJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Pending jobs retrieved", jobs)
}

func (h *JobHandler) ListApproved(c *gin.Context) {
	jobs, err := h.jobUC.ListApprovedJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Approved jobs retrieved", jobs)
}

type publishRequest struct {
	SendToAll  bool     `json:"send_to_all"`
	StudentIDs []string `json:"student_ids"`
}

// Publish makes a draft visible to everyone or to the selected
// students. The selection replaces any previous one.
func (h *JobHandler) Publish(c *gin.Context) {
	jobID, ok := objectIDParam(c, "id")
	if !ok {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	studentIDs := make([]primitive.ObjectID, 0, len(req.StudentIDs))
	for _, raw := range req.StudentIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid student ID: " + raw))
			return
		}
		studentIDs = append(studentIDs, id)
	}

	job, err := h.jobUC.Publish(c.Request.Context(), domain.PublishRequest{
		JobID:      jobID,
		SendToAll:  req.SendToAll,
		StudentIDs: studentIDs,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job published", job)
}

func (h *JobHandler) Revoke(c *gin.Context) {
	jobID, ok := objectIDParam(c, "id")
	if !ok {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}
	job, err := h.jobUC.Revoke(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job revoked", job)
}
