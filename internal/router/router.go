package router

import (
	"github.com/gin-gonic/gin"

	"budgetflow/internal/domain"
	"budgetflow/internal/handler"
	"budgetflow/internal/middleware"
	"budgetflow/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	fileH *handler.BudgetFileHandler,
	workflowH *handler.WorkflowHandler,
	itemH *handler.ItemHandler,
	reportH *handler.ReportHandler,
	userH *handler.UserHandler,
	specialistH *handler.SpecialistHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Budget file routes
	budgets := protected.Group("/budgets")
	budgets.POST("/upload", fileH.Upload)
	budgets.GET("", fileH.List)
	budgets.GET("/mine", fileH.ListMine)
	budgets.GET("/:id", fileH.GetByID)
	budgets.GET("/:id/download", fileH.DownloadURL)

	// Workflow transitions
	budgets.POST("/:id/approve", middleware.RequireRole(domain.RoleManager, domain.RoleAdmin), workflowH.Approve)
	budgets.POST("/:id/reject", middleware.RequireRole(domain.RoleManager, domain.RoleAdmin), workflowH.Reject)
	budgets.POST("/:id/generate-pdf", workflowH.GeneratePDF)
	budgets.POST("/:id/signed", workflowH.UploadSigned)
	budgets.DELETE("/:id", workflowH.DeleteRejected)

	// Line item routes
	budgets.GET("/:id/items", itemH.ListByFile)
	budgets.PUT("/:id/items", itemH.SaveEdits)
	protected.GET("/items/finalized", itemH.ListFinalized)
	protected.GET("/channels/:channel/metric-labels", itemH.MetricLabels)

	// Analytics dashboard
	reports := protected.Group("/reports")
	reports.GET("/dashboard", reportH.Dashboard)
	reports.GET("/efficiency", reportH.Efficiency)
	reports.GET("/export", reportH.Export)

	// Specialist roster
	specialists := protected.Group("/specialists")
	specialists.GET("", specialistH.List)
	specialists.POST("", middleware.RequireRole(domain.RoleManager, domain.RoleAdmin), specialistH.Add)
	specialists.PUT("/:id", middleware.RequireRole(domain.RoleManager, domain.RoleAdmin), specialistH.SetActive)
	specialists.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), specialistH.Remove)

	// User management
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Update)
	users.POST("/me/password", userH.ChangePassword)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	return r
}
