package dto

// PaginatedResponse sobre de respuesta para todos los listados paginados.
type PaginatedResponse struct {
	Data        any `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// NewPaginated arma el sobre a partir de la página pedida y el total de filas.
func NewPaginated(data any, page, perPage, total int) PaginatedResponse {
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = (total + perPage - 1) / perPage
	}
	return PaginatedResponse{
		Data:        data,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
}

// ErrorResponse sobre de error HTTP: mensaje legible y, opcionalmente,
// errores por campo para fallos de validación.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
