package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/excel"
)

// FixedAssetHandler gestión del registro de patrimonio.
type FixedAssetHandler struct {
	uc       *usecase.FixedAssetUseCase
	reader   *excel.FixedAssetReader
	resolver *Resolver
}

// NewFixedAssetHandler construye el handler.
func NewFixedAssetHandler(uc *usecase.FixedAssetUseCase, reader *excel.FixedAssetReader, resolver *Resolver) *FixedAssetHandler {
	return &FixedAssetHandler{uc: uc, reader: reader, resolver: resolver}
}

// List godoc
// @Summary      Listar bienes patrimoniales (paginado)
// @Tags         fixed-assets
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Busca por código, serie o nombre"
// @Param        category_id    query  string  false  "Filtrar por categoría"
// @Param        department_id  query  string  false  "Filtrar por departamento"
// @Param        status         query  string  false  "Filtrar por estado"
// @Param        page           query  int     false  "Página"
// @Param        per_page       query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.PaginatedResponse
// @Router       /api/fixed-assets [get]
func (h *FixedAssetHandler) List(c *fiber.Ctx) error {
	params := listParams(c)
	filter := repository.FixedAssetFilter{
		CategoryID:   c.Query("category_id"),
		DepartmentID: c.Query("department_id"),
		Status:       entity.AssetStatus(c.Query("status")),
	}
	assets, total, err := h.uc.List(c.Context(), filter, params)
	if err != nil {
		return handleError(c, err)
	}
	data := make([]dto.FixedAssetResponse, 0, len(assets))
	for _, asset := range assets {
		data = append(data, h.resolver.fixedAssetResponse(c.Context(), asset))
	}
	return c.JSON(dto.NewPaginated(data, params.Page, params.PerPage, total))
}

// Get godoc
// @Summary      Detalle de un bien patrimonial
// @Tags         fixed-assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bien"
// @Success      200  {object}  dto.FixedAssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fixed-assets/{id} [get]
func (h *FixedAssetHandler) Get(c *fiber.Ctx) error {
	asset, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.resolver.fixedAssetResponse(c.Context(), asset))
}

// Create godoc
// @Summary      Registrar bien patrimonial (código normalizado a 5 dígitos)
// @Tags         fixed-assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FixedAssetRequest  true  "Datos del bien"
// @Success      201   {object}  dto.FixedAssetResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/fixed-assets [post]
func (h *FixedAssetHandler) Create(c *fiber.Ctx) error {
	var in dto.FixedAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	asset, err := h.uc.Create(c.Context(), GetUserID(c), in, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.resolver.fixedAssetResponse(c.Context(), asset))
}

// Update godoc
// @Summary      Actualizar bien patrimonial
// @Tags         fixed-assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del bien"
// @Param        body  body  dto.FixedAssetRequest  true  "Datos del bien"
// @Success      200   {object}  dto.FixedAssetResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fixed-assets/{id} [put]
func (h *FixedAssetHandler) Update(c *fiber.Ctx) error {
	var in dto.FixedAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	asset, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(h.resolver.fixedAssetResponse(c.Context(), asset))
}

// Delete godoc
// @Summary      Eliminar bien patrimonial
// @Tags         fixed-assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bien"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fixed-assets/{id} [delete]
func (h *FixedAssetHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Bien patrimonial eliminado correctamente."})
}

// Import godoc
// @Summary      Importar planilla Excel de patrimonio
// @Tags         fixed-assets
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla .xlsx"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/fixed-assets/import [post]
func (h *FixedAssetHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return handleError(c, domain.NewValidationError("file", "el archivo es requerido"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return handleError(c, domain.NewValidationError("file", "no se pudo leer el archivo"))
	}
	defer file.Close()

	rows, err := h.reader.Read(file)
	if err != nil {
		return handleError(c, domain.NewValidationError("file", "la planilla no tiene un formato válido"))
	}
	result, err := h.uc.Import(c.Context(), GetUserID(c), rows, time.Now())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.ImportResultResponse{
		Message:  fmt.Sprintf("Importación finalizada: %d incorporados, %d omitidos.", result.Imported, result.Skipped),
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Errors:   result.Errors,
	})
}
