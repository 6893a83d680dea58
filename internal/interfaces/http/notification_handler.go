package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// NotificationHandler bandeja de notificaciones del usuario autenticado.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Notificaciones recientes del usuario, con conteo de no leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, unread, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		data = append(data, notificationResponse(n))
	}
	return c.JSON(dto.NotificationListResponse{Notifications: data, UnreadCount: unread})
}

// MarkRead godoc
// @Summary      Marcar una notificación como leída (idempotente)
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Notificación marcada como leída."})
}

// MarkAllRead godoc
// @Summary      Marcar todas las notificaciones como leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(c.Context(), GetUserID(c)); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Todas las notificaciones marcadas como leídas."})
}

// Clear godoc
// @Summary      Vaciar la bandeja de notificaciones
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/notifications [delete]
func (h *NotificationHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context(), GetUserID(c)); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Notificaciones eliminadas."})
}
