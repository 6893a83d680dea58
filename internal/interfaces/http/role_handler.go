package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// RoleHandler gestión de roles y capacidades.
type RoleHandler struct {
	uc *usecase.RoleUseCase
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// List godoc
// @Summary      Listar roles con su número de usuarios
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RoleResponse
// @Router       /api/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	roles, userCounts, err := h.uc.List(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		data = append(data, roleResponse(role, userCounts[role.ID]))
	}
	return c.JSON(data)
}

// Permissions godoc
// @Summary      Catálogo de capacidades asignables
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PermissionResponse
// @Router       /api/roles/permissions [get]
func (h *RoleHandler) Permissions(c *fiber.Ctx) error {
	return c.JSON(h.uc.Permissions())
}

// Get godoc
// @Summary      Obtener un rol
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.RoleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) Get(c *fiber.Ctx) error {
	role, userCount, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(roleResponse(role, userCount))
}

// Create godoc
// @Summary      Crear rol con sus capacidades
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RoleRequest  true  "Nombre, descripción y capacidades"
// @Success      201   {object}  dto.RoleResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.RoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	role, err := h.uc.Create(c.Context(), GetUserID(c), in, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(roleResponse(role, 0))
}

// Update godoc
// @Summary      Actualizar rol (is_super no es editable)
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "ID del rol"
// @Param        body  body  dto.RoleRequest true  "Campos a actualizar"
// @Success      200   {object}  dto.RoleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	var in dto.RoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	role, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(roleResponse(role, 0))
}

// Delete godoc
// @Summary      Eliminar rol (bloqueado si es super o tiene usuarios)
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.MessageResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Rol eliminado correctamente."})
}
