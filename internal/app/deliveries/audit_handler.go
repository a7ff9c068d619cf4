package deliveries

import (
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/middlewares"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/pkg"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/services"
	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	auditService   *services.AuditService
	authMiddleware *middlewares.AuthMiddleware
}

func NewAuditHandler(auditService *services.AuditService, authMiddleware *middlewares.AuthMiddleware) *AuditHandler {
	return &AuditHandler{
		auditService:   auditService,
		authMiddleware: authMiddleware,
	}
}

func (h *AuditHandler) RegisterRoutes(router fiber.Router) {
	auditGroup := router.Group("/audit-logs")

	auditGroup.Get("/", h.authMiddleware.AuthAccount, h.authMiddleware.RequireAdmin, h.GetAuditLogs)
}

func (h *AuditHandler) GetAuditLogs(c *fiber.Ctx) error {
	pagination := parsePagination(c)

	logs, err := h.auditService.GetAuditLogs(pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, logs)
}
