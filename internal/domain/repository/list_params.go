package repository

// MaxPerPage tope de tamaño de página para todos los listados.
const MaxPerPage = 100

// ListParams parámetros comunes del contrato de listado: búsqueda por
// substring, columna de orden (validada contra una whitelist por cada
// repositorio, con fallback silencioso al orden por defecto) y paginación
// por offset.
type ListParams struct {
	Search  string
	SortBy  string
	SortDir string // "asc" | "desc"
	Page    int
	PerPage int
}

// Normalize aplica valores por defecto y el tope de página.
func (p *ListParams) Normalize(defaultPerPage int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.SortDir != "desc" {
		p.SortDir = "asc"
	}
}

// Offset devuelve el offset SQL correspondiente a la página.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}
