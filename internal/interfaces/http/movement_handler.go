package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// MovementHandler consulta el libro de movimientos (solo lectura).
type MovementHandler struct {
	uc       *usecase.MovementUseCase
	resolver *Resolver
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase, resolver *Resolver) *MovementHandler {
	return &MovementHandler{uc: uc, resolver: resolver}
}

// List godoc
// @Summary      Listar movimientos (paginado, más recientes primero)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "entry|withdrawal"
// @Param        item_id       query  string  false  "Filtrar por ítem"
// @Param        department_id query  string  false  "Filtrar por departamento destino"
// @Param        search        query  string  false  "Busca por nombre o código del ítem"
// @Param        page          query  int     false  "Página"
// @Param        per_page      query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.PaginatedResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	filter := repository.MovementFilter{
		Type:         entity.MovementType(c.Query("type")),
		ItemID:       c.Query("item_id"),
		DepartmentID: c.Query("department_id"),
	}
	movements, total, err := h.uc.List(c.Context(), filter, params)
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		data = append(data, h.resolver.movementResponse(c.Context(), m))
	}
	return c.JSON(dto.NewPaginated(data, params.Page, params.PerPage, total))
}

// Get godoc
// @Summary      Detalle de un movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) Get(c *fiber.Ctx) error {
	movement, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.resolver.movementResponse(c.Context(), movement))
}
