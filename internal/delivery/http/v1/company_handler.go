package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-cell-backend/internal/delivery/http/response"
	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/apperror"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(company *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	company.GET("/profile", handler.Profile)
	company.PUT("/profile", handler.UpdateProfile)
}

func (h *CompanyHandler) Profile(c *gin.Context) {
	company, err := h.companyUC.GetProfile(c.Request.Context(), principalFrom(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", company)
}

func (h *CompanyHandler) UpdateProfile(c *gin.Context) {
	var upd domain.CompanyUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	company, err := h.companyUC.UpdateProfile(c.Request.Context(), principalFrom(c).ID, upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", company)
}
