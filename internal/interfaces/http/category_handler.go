package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// CategoryHandler CRUD de categorías.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías (paginado)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PaginatedResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	categories, total, err := h.uc.List(c.Context(), params)
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		data = append(data, dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	return c.JSON(dto.NewPaginated(data, params.Page, params.PerPage, total))
}

// Get godoc
// @Summary      Obtener una categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	cat, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
}

// Create godoc
// @Summary      Crear categoría (nombre único)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cat, err := h.uc.Create(c.Context(), GetUserID(c), in.Name, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
}

// Update godoc
// @Summary      Renombrar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cat, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in.Name, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Categoría eliminada correctamente."})
}
