package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ItemHandler maneja el CRUD de ítems, el catálogo y los asientos de
// entrada/retirada.
type ItemHandler struct {
	uc       *usecase.ItemUseCase
	invUC    *inventory.UseCase
	resolver *Resolver
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, invUC *inventory.UseCase, resolver *Resolver) *ItemHandler {
	return &ItemHandler{uc: uc, invUC: invUC, resolver: resolver}
}

// List godoc
// @Summary      Listar ítems (paginado)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Busca por nombre, código o marca"
// @Param        category_id query  string  false  "Filtrar por categoría"
// @Param        status      query  string  false  "Filtrar por estado"
// @Param        sort_by     query  string  false  "code|name|quantity|value|status|date"
// @Param        sort_dir    query  string  false  "asc|desc"
// @Param        page        query  int     false  "Página"
// @Param        per_page    query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.PaginatedResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	filter := repository.ItemFilter{
		CategoryID: c.Query("category_id"),
		Status:     entity.ItemStatus(c.Query("status")),
	}
	items, total, err := h.uc.List(c.Context(), filter, params)
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, h.resolver.itemResponse(c.Context(), item, nil))
	}
	return c.JSON(dto.NewPaginated(data, params.Page, params.PerPage, total))
}

// Catalog godoc
// @Summary      Catálogo de ítems solicitables (stock > 0, disponibles)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PaginatedResponse
// @Router       /api/items/catalog [get]
func (h *ItemHandler) Catalog(c *fiber.Ctx) error {
	params := listParams(c)
	items, total, err := h.uc.Catalog(c.Context(), params)
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.CatalogItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, h.resolver.catalogItemResponse(c.Context(), item))
	}
	return c.JSON(dto.NewPaginated(data, params.Page, params.PerPage, total))
}

// Get godoc
// @Summary      Detalle de un ítem con su historial de movimientos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	item, movements, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.resolver.itemResponse(c.Context(), item, movements))
}

// Create godoc
// @Summary      Crear ítem (código secuencial autogenerado)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.Create(c.Context(), GetUserID(c), in, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.resolver.itemResponse(c.Context(), item, nil))
}

// Update godoc
// @Summary      Actualizar ítem (la cantidad no se edita por aquí)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.resolver.itemResponse(c.Context(), item, nil))
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Producto eliminado correctamente."})
}

// RegisterEntry godoc
// @Summary      Registrar una entrada de stock
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del ítem"
// @Param        body  body  dto.EntryRequest  true  "Cantidad y notas"
// @Success      201   {object}  dto.MovementCreatedResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/entry [post]
func (h *ItemHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	movementDate, err := parseMovementDate(in.MovementDate)
	if err != nil {
		return handleError(c, err)
	}
	movement, err := h.invUC.RegisterEntry(c.Context(), GetUserID(c), inventory.EntryInput{
		ItemID:       c.Params("id"),
		Quantity:     in.Quantity,
		Notes:        in.Notes,
		MovementDate: movementDate,
	}, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementCreatedResponse{
		Message:  "Entrada registrada correctamente.",
		Movement: h.resolver.movementResponse(c.Context(), movement),
	})
}

// RegisterWithdrawal godoc
// @Summary      Registrar una retirada de stock hacia un departamento
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del ítem"
// @Param        body  body  dto.WithdrawRequest  true  "Receptor, destino y cantidad"
// @Success      201   {object}  dto.MovementCreatedResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/withdraw [post]
func (h *ItemHandler) RegisterWithdrawal(c *fiber.Ctx) error {
	var in dto.WithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	movementDate, err := parseMovementDate(in.MovementDate)
	if err != nil {
		return handleError(c, err)
	}
	movement, err := h.invUC.RegisterWithdrawal(c.Context(), GetUserID(c), inventory.WithdrawInput{
		ItemID:       c.Params("id"),
		UserID:       in.UserID,
		DepartmentID: in.DepartmentID,
		Quantity:     in.Quantity,
		Notes:        in.Notes,
		MovementDate: movementDate,
	}, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementCreatedResponse{
		Message:  "Retirada registrada correctamente.",
		Movement: h.resolver.movementResponse(c.Context(), movement),
	})
}

// parseMovementDate fecha opcional YYYY-MM-DD; vacía = cero (el use case
// asume now).
func parseMovementDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError("movement_date", "la fecha debe tener formato YYYY-MM-DD")
	}
	return t, nil
}
