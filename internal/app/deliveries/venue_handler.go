package deliveries

import (
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/errors"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/middlewares"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/models"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/pkg"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/services"
	"github.com/chaimkastel/happy-hour-app-sub002/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VenueHandler struct {
	venueService        *services.VenueService
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewVenueHandler(venueService *services.VenueService, authMiddleware *middlewares.AuthMiddleware, rateLimitMiddleware *middlewares.RateLimitMiddleware) *VenueHandler {
	return &VenueHandler{
		venueService:        venueService,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *VenueHandler) RegisterRoutes(router fiber.Router) {
	venueGroup := router.Group("/venues")

	merchantLimit := h.rateLimitMiddleware.LimitByUser(ratelimit.MerchantAPILimit)

	// Public endpoints
	venueGroup.Get("/", h.GetVenues)
	venueGroup.Get("/:id", h.GetVenue)

	// Merchant endpoints
	venueGroup.Post("/", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireMerchant, h.CreateVenue)
	venueGroup.Patch("/:id", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireMerchant, h.UpdateVenue)
	venueGroup.Delete("/:id", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireMerchant, h.DeleteVenue)
}

func (h *VenueHandler) CreateVenue(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	var req models.VenueCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	venue, err := h.venueService.CreateVenue(account.ID, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, venue)
}

func (h *VenueHandler) GetVenue(c *fiber.Ctx) error {
	venue, err := h.venueService.GetVenue(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, venue)
}

func (h *VenueHandler) GetVenues(c *fiber.Ctx) error {
	pagination := parsePagination(c)

	var merchantID *uuid.UUID
	if merchantStr := c.Query("merchant_id"); merchantStr != "" {
		parsed, err := uuid.Parse(merchantStr)
		if err != nil {
			return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid merchant ID format"))
		}
		merchantID = &parsed
	}

	venues, err := h.venueService.GetVenues(pagination, merchantID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, venues)
}

func (h *VenueHandler) UpdateVenue(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	var req models.VenueUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	venue, err := h.venueService.UpdateVenue(c.Params("id"), account, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, venue)
}

func (h *VenueHandler) DeleteVenue(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	if err := h.venueService.DeleteVenue(c.Params("id"), account); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}
