package injector

import (
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/deliveries"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/middlewares"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/services"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/infrastructures"
	"github.com/chaimkastel/happy-hour-app-sub002/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
)

// Application represents the main application container for happyhour-core
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	AccountHandler      *deliveries.AccountHandler
	VenueHandler        *deliveries.VenueHandler
	DealHandler         *deliveries.DealHandler
	RedemptionHandler   *deliveries.RedemptionHandler
	AuditHandler        *deliveries.AuditHandler
	RedemptionService   *services.RedemptionService
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	// Global IP rate limit for the public API
	router.Use(app.RateLimitMiddleware.LimitByIP(ratelimit.PublicAPILimit))

	app.HealthHandler.RegisterRoutes(router)
	app.AccountHandler.RegisterRoutes(router)
	app.VenueHandler.RegisterRoutes(router)
	app.DealHandler.RegisterRoutes(router)
	app.RedemptionHandler.RegisterRoutes(router)
	app.AuditHandler.RegisterRoutes(router)
}

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	wire.Value("happyhour"),
	wire.Bind(new(ratelimit.RateLimiter), new(*ratelimit.RedisRateLimiter)),
	ratelimit.NewRedisRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewAccountService,
	services.NewVenueService,
	services.NewAuditService,
	services.NewDealService,
	services.NewRedemptionService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewAccountHandler,
	deliveries.NewVenueHandler,
	deliveries.NewDealHandler,
	deliveries.NewRedemptionHandler,
	deliveries.NewAuditHandler,
	wire.Struct(new(Application), "*"), // This tells Wire to build the Application struct
)
