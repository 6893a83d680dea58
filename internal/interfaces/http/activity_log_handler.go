package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ActivityLogHandler consulta del log de actividad (solo lectura).
type ActivityLogHandler struct {
	uc       *usecase.ActivityLogUseCase
	resolver *Resolver
}

// NewActivityLogHandler construye el handler.
func NewActivityLogHandler(uc *usecase.ActivityLogUseCase, resolver *Resolver) *ActivityLogHandler {
	return &ActivityLogHandler{uc: uc, resolver: resolver}
}

// List godoc
// @Summary      Listar el log de actividad (paginado, más recientes primero)
// @Tags         activity-log
// @Security     Bearer
// @Produce      json
// @Param        action    query  string  false  "created|updated|deleted"
// @Param        resource  query  string  false  "Filtrar por tipo de recurso"
// @Param        search    query  string  false  "Busca por nombre del recurso"
// @Param        page      query  int     false  "Página"
// @Param        per_page  query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.PaginatedResponse
// @Router       /api/logs [get]
func (h *ActivityLogHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	filter := repository.ActivityLogFilter{
		Action:   c.Query("action"),
		Resource: c.Query("resource"),
	}
	logs, total, err := h.uc.List(c.Context(), filter, params)
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		data = append(data, h.resolver.activityLogResponse(c.Context(), l))
	}
	return c.JSON(dto.NewPaginated(data, params.Page, params.PerPage, total))
}
