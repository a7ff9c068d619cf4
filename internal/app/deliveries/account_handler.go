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

type AccountHandler struct {
	accountService      *services.AccountService
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewAccountHandler(accountService *services.AccountService, authMiddleware *middlewares.AuthMiddleware, rateLimitMiddleware *middlewares.RateLimitMiddleware) *AccountHandler {
	return &AccountHandler{
		accountService:      accountService,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	accountGroup := router.Group("/accounts")

	accountGroup.Get("/me", h.authMiddleware.AuthAccount, h.rateLimitMiddleware.LimitByUser(ratelimit.AuthenticatedAPILimit), h.GetMe)

	// Admin endpoints
	accountGroup.Post("/", h.authMiddleware.AuthAccount, h.authMiddleware.RequireAdmin, h.CreateAccount)
	accountGroup.Get("/", h.authMiddleware.AuthAccount, h.authMiddleware.RequireAdmin, h.GetAccounts)
	accountGroup.Get("/:id", h.authMiddleware.AuthAccount, h.authMiddleware.RequireAdmin, h.GetAccount)
	accountGroup.Patch("/:id", h.authMiddleware.AuthAccount, h.authMiddleware.RequireAdmin, h.UpdateAccount)
	accountGroup.Delete("/:id", h.authMiddleware.AuthAccount, h.authMiddleware.RequireAdmin, h.DeleteAccount)
}

func (h *AccountHandler) GetMe(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)
	return pkg.SuccessResponse(c, account)
}

func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var req models.AccountCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	provisioned, err := h.accountService.CreateAccount(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, provisioned)
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	account, err := h.accountService.GetAccount(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, account)
}

func (h *AccountHandler) GetAccounts(c *fiber.Ctx) error {
	pagination := parsePagination(c)

	accounts, err := h.accountService.GetAccounts(pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, accounts)
}

func (h *AccountHandler) UpdateAccount(c *fiber.Ctx) error {
	var req models.AccountUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	account, err := h.accountService.UpdateAccount(c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, account)
}

func (h *AccountHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.accountService.DeleteAccount(c.Params("id")); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}

// parsePagination reads page/limit query parameters with defaults.
func parsePagination(c *fiber.Ctx) *models.PaginationRequest {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		limit = 10
	}
	return &models.PaginationRequest{Page: page, Limit: limit}
}
