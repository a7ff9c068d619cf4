package middlewares

import (
	"strings"

	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/errors"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/models"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/pkg"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/services"
	"github.com/gofiber/fiber/v2"
)

type AuthMiddleware struct {
	accountService *services.AccountService
}

func NewAuthMiddleware(accountService *services.AccountService) *AuthMiddleware {
	return &AuthMiddleware{accountService: accountService}
}

// AuthAccount resolves the caller's API key (X-API-Key header or Bearer
// token) to an account and stores it in locals. Session issuance itself is
// outside this service; the key is the already-authenticated identity.
func (m *AuthMiddleware) AuthAccount(c *fiber.Ctx) error {
	key := c.Get("X-API-Key")
	if key == "" {
		key = strings.Replace(c.Get("Authorization"), "Bearer ", "", 1)
	}
	if key == "" {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError())
	}

	account, err := m.accountService.GetAccountByAPIKey(key)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Locals("account", account)
	c.Locals("user_id", account.ID.String())

	return c.Next()
}

// RequireMerchant guards merchant endpoints. Admins pass too.
func (m *AuthMiddleware) RequireMerchant(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)
	if !account.IsMerchant() {
		return pkg.ErrorResponse(c, errors.NewForbiddenError("Merchant role required"))
	}
	return c.Next()
}

// RequireAdmin guards admin endpoints.
func (m *AuthMiddleware) RequireAdmin(c *fiber.Ctx) error {
	account := c.Locals("account").(*models.Account)
	if !account.IsAdmin() {
		return pkg.ErrorResponse(c, errors.NewForbiddenError("Admin role required"))
	}
	return c.Next()
}
