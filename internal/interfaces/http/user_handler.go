package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/authz"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UserHandler gestión administrativa de usuarios.
type UserHandler struct {
	uc       *usecase.UserUseCase
	authz    *authz.Service
	resolver *Resolver
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, authzSvc *authz.Service, resolver *Resolver) *UserHandler {
	return &UserHandler{uc: uc, authz: authzSvc, resolver: resolver}
}

// List godoc
// @Summary      Listar usuarios (paginado)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Busca por nombre, email o código"
// @Param        role      query  string  false  "Filtrar por nombre de rol"
// @Param        page      query  int     false  "Página"
// @Param        per_page  query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.PaginatedResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	filter := repository.UserFilter{RoleName: c.Query("role")}
	users, total, err := h.uc.List(c.Context(), filter, params)
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		role, _ := h.authz.Role(c.Context(), user.ID)
		data = append(data, h.resolver.userResponse(c.Context(), user, role))
	}
	return c.JSON(dto.NewPaginated(data, params.Page, params.PerPage, total))
}

// Get godoc
// @Summary      Detalle de un usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	role, _ := h.authz.Role(c.Context(), user.ID)
	return c.JSON(h.resolver.userResponse(c.Context(), user, role))
}

// Create godoc
// @Summary      Crear usuario (código secuencial autogenerado)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Create(c.Context(), GetUserID(c), in, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	role, _ := h.authz.Role(c.Context(), user.ID)
	return c.Status(fiber.StatusCreated).JSON(h.resolver.userResponse(c.Context(), user, role))
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	role, _ := h.authz.Role(c.Context(), user.ID)
	return c.JSON(h.resolver.userResponse(c.Context(), user, role))
}

// Delete godoc
// @Summary      Eliminar usuario (no permite auto-eliminarse)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Usuario eliminado correctamente."})
}
