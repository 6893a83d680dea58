package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// DepartmentHandler CRUD de departamentos/sectores.
type DepartmentHandler struct {
	uc *usecase.DepartmentUseCase
}

// NewDepartmentHandler construye el handler.
func NewDepartmentHandler(uc *usecase.DepartmentUseCase) *DepartmentHandler {
	return &DepartmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar departamentos (paginado)
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PaginatedResponse
// @Router       /api/departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	departments, total, err := h.uc.List(c.Context(), params)
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		data = append(data, dto.DepartmentResponse{ID: dept.ID, Code: dept.Code, Name: dept.Name})
	}
	return c.JSON(dto.NewPaginated(data, params.Page, params.PerPage, total))
}

// Get godoc
// @Summary      Obtener un departamento
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del departamento"
// @Success      200  {object}  dto.DepartmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [get]
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	dept, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.DepartmentResponse{ID: dept.ID, Code: dept.Code, Name: dept.Name})
}

// Create godoc
// @Summary      Crear departamento (código secuencial autogenerado)
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DepartmentRequest  true  "Nombre"
// @Success      201   {object}  dto.DepartmentResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/departments [post]
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var in dto.DepartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	dept, err := h.uc.Create(c.Context(), GetUserID(c), in.Name, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DepartmentResponse{ID: dept.ID, Code: dept.Code, Name: dept.Name})
}

// Update godoc
// @Summary      Renombrar departamento
// @Tags         departments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del departamento"
// @Param        body  body  dto.DepartmentRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.DepartmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [put]
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	var in dto.DepartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	dept, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in.Name, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.DepartmentResponse{ID: dept.ID, Code: dept.Code, Name: dept.Name})
}

// Delete godoc
// @Summary      Eliminar departamento
// @Tags         departments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del departamento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Departamento eliminado correctamente."})
}
