package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// defaultPerPage tamaño de página por defecto de los listados.
const defaultPerPage = 15

// listParams extrae el contrato de listado de la query string: search,
// sort_by, sort_dir, page y per_page (con tope).
func listParams(c *fiber.Ctx) repository.ListParams {
	p := repository.ListParams{
		Search:  c.Query("search"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.Query("sort_dir"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", defaultPerPage),
	}
	p.Normalize(defaultPerPage)
	return p
}
