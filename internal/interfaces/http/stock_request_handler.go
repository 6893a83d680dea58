package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stockrequest"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
)

// StockRequestHandler maneja el workflow de solicitudes de stock.
type StockRequestHandler struct {
	uc       *stockrequest.UseCase
	pdfGen   *pdf.MarotoReportGenerator
	resolver *Resolver
}

// NewStockRequestHandler construye el handler.
func NewStockRequestHandler(uc *stockrequest.UseCase, pdfGen *pdf.MarotoReportGenerator, resolver *Resolver) *StockRequestHandler {
	return &StockRequestHandler{uc: uc, pdfGen: pdfGen, resolver: resolver}
}

// Create godoc
// @Summary      Crear solicitud de stock (carrito de ítems)
// @Tags         stock-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequestRequest  true  "Líneas y notas"
// @Success      201   {object}  dto.StockRequestResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock-requests [post]
func (h *StockRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := stockrequest.CreateInput{Notes: in.Notes}
	for _, line := range in.Items {
		input.Items = append(input.Items, stockrequest.CreateItemInput{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}
	req, err := h.uc.Create(c.Context(), GetUserID(c), input, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.resolver.stockRequestResponse(c.Context(), req))
}

// List godoc
// @Summary      Listar solicitudes (los no privilegiados solo ven las propias)
// @Tags         stock-requests
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "pending|separation|fulfilled|cancelled"
// @Param        page      query  int     false  "Página"
// @Param        per_page  query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.PaginatedResponse
// @Router       /api/stock-requests [get]
func (h *StockRequestHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	filter := repository.StockRequestFilter{
		Status: entity.RequestStatus(c.Query("status")),
	}
	requests, total, err := h.uc.List(c.Context(), GetUserID(c), filter, params)
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.StockRequestResponse, 0, len(requests))
	for _, req := range requests {
		data = append(data, h.resolver.stockRequestResponse(c.Context(), req))
	}
	return c.JSON(dto.NewPaginated(data, params.Page, params.PerPage, total))
}

// Get godoc
// @Summary      Detalle de una solicitud (propia o con acceso al workflow)
// @Tags         stock-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.StockRequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-requests/{id} [get]
func (h *StockRequestHandler) Get(c *fiber.Ctx) error {
	req, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.resolver.stockRequestResponse(c.Context(), req))
}

// UpdateStatus godoc
// @Summary      Cambiar el estado de una solicitud (tabla de transiciones)
// @Tags         stock-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la solicitud"
// @Param        body  body  dto.UpdateStockRequestRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.StockRequestResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock-requests/{id} [put]
func (h *StockRequestHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStockRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	req, err := h.uc.UpdateStatus(c.Context(), GetUserID(c), c.Params("id"), entity.RequestStatus(in.Status), time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.resolver.stockRequestResponse(c.Context(), req))
}

// StartSeparation godoc
// @Summary      Pasar una solicitud pendiente a separación
// @Tags         stock-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.StockRequestResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stock-requests/{id}/start-separation [post]
func (h *StockRequestHandler) StartSeparation(c *fiber.Ctx) error {
	req, err := h.uc.StartSeparation(c.Context(), GetUserID(c), c.Params("id"), time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.resolver.stockRequestResponse(c.Context(), req))
}

// Fulfill godoc
// @Summary      Atender la solicitud: retiradas atómicas de todas las líneas
// @Tags         stock-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.FulfillResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stock-requests/{id}/fulfill [post]
func (h *StockRequestHandler) Fulfill(c *fiber.Ctx) error {
	req, err := h.uc.Fulfill(c.Context(), GetUserID(c), c.Params("id"), time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.FulfillResponse{
		Message: "Solicitud atendida correctamente.",
		Request: h.resolver.stockRequestResponse(c.Context(), req),
	})
}

// Cancel godoc
// @Summary      Cancelar una solicitud no atendida
// @Tags         stock-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.StockRequestResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stock-requests/{id}/cancel [post]
func (h *StockRequestHandler) Cancel(c *fiber.Ctx) error {
	req, err := h.uc.Cancel(c.Context(), GetUserID(c), c.Params("id"), time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.resolver.stockRequestResponse(c.Context(), req))
}

// PickingList godoc
// @Summary      Lista de separación en PDF
// @Tags         stock-requests
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-requests/{id}/picking-list [get]
func (h *StockRequestHandler) PickingList(c *fiber.Ctx) error {
	req, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	resp := h.resolver.stockRequestResponse(c.Context(), req)
	data := pdf.PickingListData{
		RequestID:     req.ID,
		RequesterName: resp.RequesterName,
		Department:    resp.UserDepartment,
		Status:        req.Status.Label(),
		CreatedAt:     req.CreatedAt,
		Notes:         req.Notes,
	}
	for _, line := range req.Items {
		pl := pdf.PickingLine{Quantity: line.Quantity}
		if item := h.resolver.item(c.Context(), line.ItemID); item != nil {
			pl.ItemCode = item.Code
			pl.ItemName = item.Name
			pl.Brand = item.Brand
			pl.Location = h.resolver.departmentName(c.Context(), item.DepartmentID)
		}
		data.Lines = append(data.Lines, pl)
	}
	document, err := h.pdfGen.GeneratePickingList(c.Context(), data)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="solicitud-%s.pdf"`, shortRequestID(req.ID)))
	return c.Send(document)
}

// shortRequestID primeros 8 caracteres del UUID, para nombres de archivo.
func shortRequestID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
