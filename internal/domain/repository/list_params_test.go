package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

func TestListParams_Normalize_Defaults(t *testing.T) {
	p := repository.ListParams{}
	p.Normalize(15)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)
	assert.Equal(t, "asc", p.SortDir, "dirección desconocida cae a asc")
}

func TestListParams_Normalize_TopeDePagina(t *testing.T) {
	p := repository.ListParams{PerPage: 5000}
	p.Normalize(15)
	assert.Equal(t, repository.MaxPerPage, p.PerPage,
		"per_page siempre se recorta al tope global")
}

func TestListParams_Normalize_PaginaInvalida(t *testing.T) {
	p := repository.ListParams{Page: -3, PerPage: -1}
	p.Normalize(15)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)
}

func TestListParams_Normalize_DescSeRespeta(t *testing.T) {
	p := repository.ListParams{SortDir: "desc"}
	p.Normalize(15)
	assert.Equal(t, "desc", p.SortDir)
}

func TestListParams_Offset(t *testing.T) {
	p := repository.ListParams{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())

	p = repository.ListParams{Page: 1, PerPage: 15}
	assert.Equal(t, 0, p.Offset())
}
