package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"placement-cell-backend/config"
	"placement-cell-backend/internal/delivery/http/middleware"
	"placement-cell-backend/internal/delivery/http/response"
	"placement-cell-backend/internal/domain"
	"placement-cell-backend/pkg/googleauth"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	StudentUC     domain.StudentUsecase
	CompanyUC     domain.CompanyUsecase
	AdminUC       domain.AdminUsecase
	Google        *googleauth.Client
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// CORS must run before anything that can abort the request
	r.Use(middleware.CORSMiddleware(deps.Config.ClientURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Login endpoints are public but strictly rate limited. Paths match
	// the redirect URLs registered with Google.
	public := r.Group("")
	public.Use(middleware.RateLimit(middleware.AuthRateLimitConfig(deps.Config.RateLimitAuthThreshold, window)))

	v1 := r.Group("/v1")
	v1.Use(middleware.AuthMiddleware(deps.Config.JWTSecret, deps.AuthUC))

	student := v1.Group("/student", middleware.RequireRole(domain.RoleStudent))
	company := v1.Group("/company", middleware.RequireRole(domain.RoleCompany))
	admin := v1.Group("/admin", middleware.RequireRole(domain.RoleAdmin))

	NewAuthHandler(public, v1, deps.AuthUC, deps.Google, deps.Config)
	NewJobHandler(v1, company, admin, deps.JobUC)
	NewApplicationHandler(student, company, deps.ApplicationUC)
	NewStudentHandler(student, deps.StudentUC)
	NewCompanyHandler(company, deps.CompanyUC)
	NewAdminHandler(admin, deps.AdminUC, deps.StudentUC)

	return r
}
