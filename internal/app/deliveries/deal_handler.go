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

type DealHandler struct {
	dealService         *services.DealService
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewDealHandler(dealService *services.DealService, authMiddleware *middlewares.AuthMiddleware, rateLimitMiddleware *middlewares.RateLimitMiddleware) *DealHandler {
	return &DealHandler{
		dealService:         dealService,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *DealHandler) RegisterRoutes(router fiber.Router) {
	dealGroup := router.Group("/deals")

	merchantLimit := h.rateLimitMiddleware.LimitByUser(ratelimit.MerchantAPILimit)

	// Public endpoints
	dealGroup.Get("/", h.GetDeals)
	dealGroup.Get("/:id", h.GetDeal)

	// Merchant endpoints
	dealGroup.Post("/", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireMerchant, h.CreateDeal)
	dealGroup.Patch("/:id", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireMerchant, h.UpdateDeal)
	dealGroup.Delete("/:id", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireMerchant, h.DeleteDeal)

	// Admin moderation endpoints
	dealGroup.Post("/:id/approve", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireAdmin, h.ApproveDeal)
	dealGroup.Post("/:id/reject", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireAdmin, h.RejectDeal)
}

func (h *DealHandler) CreateDeal(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	var req models.DealCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	deal, err := h.dealService.CreateDeal(account, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, deal)
}

func (h *DealHandler) GetDeal(c *fiber.Ctx) error {
	deal, err := h.dealService.GetDeal(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, deal)
}

func (h *DealHandler) GetDeals(c *fiber.Ctx) error {
	pagination := parsePagination(c)

	filter := &services.DealListFilter{
		ActiveNow: c.Query("active_now") == "true",
	}

	if venueStr := c.Query("venue_id"); venueStr != "" {
		parsed, err := uuid.Parse(venueStr)
		if err != nil {
			return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid venue ID format"))
		}
		filter.VenueID = &parsed
	}

	if kindStr := c.Query("kind"); kindStr != "" {
		kind := models.DealKind(kindStr)
		filter.Kind = &kind
	}

	deals, err := h.dealService.GetDeals(pagination, filter)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, deals)
}

func (h *DealHandler) UpdateDeal(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	var req models.DealUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	deal, err := h.dealService.UpdateDeal(c.Params("id"), account, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, deal)
}

func (h *DealHandler) DeleteDeal(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	if err := h.dealService.DeleteDeal(c.Params("id"), account); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}

func (h *DealHandler) ApproveDeal(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	deal, err := h.dealService.ApproveDeal(c.Params("id"), account)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, deal)
}

func (h *DealHandler) RejectDeal(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	deal, err := h.dealService.RejectDeal(c.Params("id"), account)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, deal)
}
