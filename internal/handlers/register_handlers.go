package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/syscompta/ledger/internal/core/ports/services"
	"github.com/syscompta/ledger/internal/middleware"
	"github.com/syscompta/ledger/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	RegisterCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. Every route is company-scoped.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	company := v1.Group("/companies/:company_id")
	{
		RegisterAccountRoutes(company, services.Account)
		RegisterEntryRoutes(company, services.Entry)
		RegisterTrialBalanceRoutes(company, services.TrialBalance)
		RegisterStatementRoutes(company, services.Statement)
	}
}
