package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/cmd/docs"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/policy"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/middleware"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes. authLimit throttles the
// credential endpoints.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	authLimit gin.HandlerFunc,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	auth := newAuthHandler(services, cfg)
	registerAuthRoutes(r, auth, newGoogleOAuthHandler(services.GoogleOAuth, auth), authLimit)

	setupAPIV1Routes(r, cfg, services, auth)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group. Clinic data
// lives under the workspace-scoped subgroup, where the effective workspace
// is resolved once per request and each resource is gated by the policy table.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	auth *authHandler,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.Token, services.Auth, cfg.SessionCookieName))

	registerProfileRoutes(v1, auth)
	workspaces := newWorkspaceHandler(services.Workspace, services.Token, cfg)
	registerMasterRoutes(v1, workspaces)

	scoped := v1.Group("", middleware.WorkspaceMiddleware(services.Token, services.Workspace, cfg.ImpersonationCookieName))

	registerWorkspaceSettingsRoutes(scoped, workspaces)
	registerTeamRoutes(scoped.Group("/team", middleware.RequirePermission(policy.Users)), services.Team)
	registerPatientRoutes(scoped.Group("/patients", middleware.RequirePermission(policy.Patients)), services.Patient)
	registerProcedureRoutes(scoped.Group("/procedures", middleware.RequirePermission(policy.Procedures)), services.Procedure)
	registerCollaboratorRoutes(scoped.Group("/collaborators", middleware.RequirePermission(policy.Collaborators)), services.Collaborator)
	registerSaleRoutes(scoped.Group("/sales", middleware.RequirePermission(policy.Sales)), services.Sale)
	registerSessionRoutes(scoped.Group("/sessions", middleware.RequirePermission(policy.Sessions)), services.Session)
	registerCostRoutes(scoped.Group("/costs", middleware.RequirePermission(policy.Costs)), services.Cost)

	reports := newReportingHandler(services.Report)
	scoped.GET("/reports/commissions", middleware.RequirePermission(policy.Commissions), reports.commissionReport)
	scoped.GET("/reports/dashboard", middleware.RequirePermission(policy.Dashboard), reports.dashboardSummary)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
