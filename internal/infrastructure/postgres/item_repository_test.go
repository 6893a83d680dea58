package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// captureQuerier registra cada SQL emitido. QueryRow devuelve una fila cuyo
// Scan no hace nada y Query corta con error para no necesitar una conexión.
type captureQuerier struct {
	sqls []string
	args [][]any
}

type noopRow struct{}

func (noopRow) Scan(_ ...any) error { return nil }

func (q *captureQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sqls = append(q.sqls, sql)
	q.args = append(q.args, args)
	return pgconn.CommandTag{}, nil
}

func (q *captureQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sqls = append(q.sqls, sql)
	q.args = append(q.args, args)
	return nil, errors.New("sin conexión")
}

func (q *captureQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sqls = append(q.sqls, sql)
	q.args = append(q.args, args)
	return noopRow{}
}

func TestItemList_BusquedaAlcanzaNombreDeDepartamento(t *testing.T) {
	q := &captureQuerier{}
	repo := NewItemRepository(q)

	_, _, err := repo.List(context.Background(),
		repository.ItemFilter{},
		repository.ListParams{Search: "taladro", Page: 1, PerPage: 10},
	)
	require.Error(t, err) // el Query final corta adrede; lo que importa es el SQL emitido
	require.Len(t, q.sqls, 2)

	countSQL := q.sqls[0]
	assert.Contains(t, countSQL, "i.name ILIKE $1")
	assert.Contains(t, countSQL, "i.code ILIKE $1")
	assert.Contains(t, countSQL, "i.brand ILIKE $1")
	assert.Contains(t, countSQL, "EXISTS (SELECT 1 FROM departments d WHERE d.id = i.department_id AND d.name ILIKE $1)")

	assert.Equal(t, []any{"%taladro%"}, q.args[0])
	assert.Equal(t, []any{"%taladro%", 10, 0}, q.args[1])
}
