package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/analytics"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
)

// DashboardHandler sirve los agregados del dashboard y los reportes derivados.
type DashboardHandler struct {
	uc     *analytics.DashboardUseCase
	pdfGen *pdf.MarotoReportGenerator
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, pdfGen *pdf.MarotoReportGenerator) *DashboardHandler {
	return &DashboardHandler{uc: uc, pdfGen: pdfGen}
}

// Stats godoc
// @Summary      Agregados del dashboard: stock, consumo, tendencia, recientes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context(), time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stats)
}

// SectorConsumption godoc
// @Summary      Retiradas del mes hacia un departamento
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        department_id  query  string  true  "ID del departamento"
// @Success      200  {object}  dto.SectorConsumptionResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/dashboard/sector-consumption [get]
func (h *DashboardHandler) SectorConsumption(c *fiber.Ctx) error {
	departmentID := c.Query("department_id")
	if departmentID == "" {
		return handleError(c, domain.NewValidationError("department_id", "department_id es requerido"))
	}
	resp, err := h.uc.SectorConsumption(c.Context(), departmentID, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(resp)
}

// LowStock godoc
// @Summary      Ítems con stock en o por debajo del mínimo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/dashboard/low-stock-report [get]
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	if items == nil {
		items = []dto.LowStockItemDTO{}
	}
	return c.JSON(items)
}

// LowStockReport godoc
// @Summary      Reporte PDF de stock bajo
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/dashboard/low-stock-report/pdf [get]
func (h *DashboardHandler) LowStockReport(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	now := time.Now()
	document, err := h.pdfGen.GenerateLowStockReport(c.Context(), items, now)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-bajo-`+now.Format("2006-01-02")+`.pdf"`)
	return c.Send(document)
}
