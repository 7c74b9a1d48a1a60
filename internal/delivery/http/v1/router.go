package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rezaariel/insight-report-hub/config"
	"github.com/rezaariel/insight-report-hub/internal/delivery/http/middleware"
	"github.com/rezaariel/insight-report-hub/internal/delivery/http/response"
	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/auth"
)

type RouterDeps struct {
	AuthUC     domain.AuthUsecase
	ReportUC   domain.ReportUsecase
	AdminUC    domain.AdminUsecase
	ActivityUC domain.ActivityUsecase
	Tokens     *auth.TokenManager
	Revoker    *auth.Revoker
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold, time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	loginLimiter := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(
		deps.Config.RateLimitLoginThreshold, time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.Revoker, deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC, loginLimiter)
		NewProfileHandler(protected, deps.AuthUC)
		NewReportHandler(protected, deps.ReportUC)
		NewActivityHandler(protected, deps.ActivityUC)
		NewAdminHandler(protected, deps.AdminUC)
	}

	return r
}
