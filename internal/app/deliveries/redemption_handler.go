package deliveries

import (
	"strconv"

	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/middlewares"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/models"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/pkg"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/services"
	"github.com/chaimkastel/happy-hour-app-sub002/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
)

type RedemptionHandler struct {
	redemptionService   *services.RedemptionService
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewRedemptionHandler(redemptionService *services.RedemptionService, authMiddleware *middlewares.AuthMiddleware, rateLimitMiddleware *middlewares.RateLimitMiddleware) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService:   redemptionService,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *RedemptionHandler) RegisterRoutes(router fiber.Router) {
	// Consumer claim endpoint, with its own per-user limit on top of the
	// global IP limit
	router.Post("/deals/:id/claim",
		h.authMiddleware.AuthAccount,
		h.rateLimitMiddleware.LimitByUser(ratelimit.ClaimLimit),
		h.ClaimDeal)

	redemptionGroup := router.Group("/redemptions")

	authLimit := h.rateLimitMiddleware.LimitByUser(ratelimit.AuthenticatedAPILimit)
	merchantLimit := h.rateLimitMiddleware.LimitByUser(ratelimit.MerchantAPILimit)

	redemptionGroup.Get("/me", h.authMiddleware.AuthAccount, authLimit, h.GetMyRedemptions)
	redemptionGroup.Get("/:id", h.authMiddleware.AuthAccount, authLimit, h.GetRedemption)

	// Merchant endpoints
	redemptionGroup.Post("/redeem", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireMerchant, h.RedeemVoucher)
	redemptionGroup.Post("/:id/cancel", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireMerchant, h.CancelRedemption)

	router.Get("/deals/:id/redemptions", h.authMiddleware.AuthAccount, merchantLimit, h.authMiddleware.RequireMerchant, h.GetRedemptionsByDeal)
}

func (h *RedemptionHandler) ClaimDeal(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	redemption, err := h.redemptionService.ClaimDeal(c.Params("id"), account)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemption)
}

func (h *RedemptionHandler) GetRedemption(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	redemption, err := h.redemptionService.GetRedemption(c.Params("id"), account)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemption)
}

func (h *RedemptionHandler) GetMyRedemptions(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	limit, offset := parseLimitOffset(c)

	redemptions, err := h.redemptionService.GetRedemptionsByAccount(account.ID, limit, offset)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemptions)
}

func (h *RedemptionHandler) GetRedemptionsByDeal(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	limit, offset := parseLimitOffset(c)

	redemptions, err := h.redemptionService.GetRedemptionsByDeal(c.Params("id"), account, limit, offset)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemptions)
}

func (h *RedemptionHandler) RedeemVoucher(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	var req models.RedeemVoucherRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	redemption, err := h.redemptionService.RedeemVoucher(req.Code, account)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemption)
}

func (h *RedemptionHandler) CancelRedemption(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)

	redemption, err := h.redemptionService.CancelRedemption(c.Params("id"), account)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemption)
}

func parseLimitOffset(c *fiber.Ctx) (int, int) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		limit = 10
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		offset = 0
	}
	return limit, offset
}
