package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstrae pool y transacción: los repositorios funcionan sobre ambos.
// Lo satisfacen *pgxpool.Pool y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// sortColumn valida la columna de orden contra la whitelist del repositorio;
// columnas desconocidas caen en silencio al orden por defecto.
func sortColumn(whitelist map[string]string, requested, fallback string) string {
	if col, ok := whitelist[requested]; ok {
		return col
	}
	return fallback
}

// sortDirection normaliza la dirección; solo "desc" invierte.
func sortDirection(dir string) string {
	if dir == "desc" {
		return "DESC"
	}
	return "ASC"
}

// likePattern patrón para búsquedas ILIKE por substring.
func likePattern(search string) string {
	return "%" + search + "%"
}
