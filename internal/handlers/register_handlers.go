package handlers

import (
	"log/slog"

	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/fitiavana-dev/treasury_app/internal/middleware"
	"github.com/fitiavana-dev/treasury_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	swaggerFiles "github.com/swaggo/files"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware and the general rate limit to the entire v1 group
	apiLimiter := limiter.New(memory.NewStore(), parseRate(cfg.RateLimit))

	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimit(apiLimiter),
	)

	// Delegate route registration to specific handlers, passing required services
	registerUserRoutes(v1, services.User)
	registerVaultRoutes(v1, services.Vault)
	registerTransactionRoutes(v1, services.Approval)
	registerTransferRoutes(v1, services.Transfer)
	registerSessionRoutes(v1, services.Session)
	registerPaymentRequestRoutes(v1, services.PaymentRequest)
}

// defaultAPIRateLimit applies when the configured rate is malformed.
const defaultAPIRateLimit = "100-M"

// parseRate parses an operator-supplied rate string; a malformed value falls
// back to the default instead of silently yielding a zero rate.
func parseRate(formatted string) limiter.Rate {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		slog.Warn("Invalid rate limit format, using default",
			slog.String("value", formatted),
			slog.String("default", defaultAPIRateLimit),
			slog.String("error", err.Error()))
		rate, _ = limiter.NewRateFromFormatted(defaultAPIRateLimit)
	}
	return rate
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
