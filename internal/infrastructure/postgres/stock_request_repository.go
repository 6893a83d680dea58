package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRequestRepository = (*StockRequestRepo)(nil)

// requestSortColumns whitelist de columnas ordenables del listado.
var requestSortColumns = map[string]string{
	"date":   "r.created_at",
	"status": "r.status",
}

// StockRequestRepo implementación del puerto StockRequestRepository sobre PostgreSQL.
type StockRequestRepo struct {
	q Querier
}

// NewStockRequestRepository construye el adaptador de persistencia para solicitudes. Pasar pool o tx (Querier).
func NewStockRequestRepository(q Querier) *StockRequestRepo {
	return &StockRequestRepo{q: q}
}

// Create persiste la solicitud y sus líneas en el mismo Querier; llamar
// dentro de una transacción cuando la atomicidad importe.
func (r *StockRequestRepo) Create(ctx context.Context, request *entity.StockRequest) error {
	query := `
		INSERT INTO stock_requests (id, requester_id, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		request.ID, request.RequesterID, request.Status, request.Notes,
		request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock request: %w", err)
	}
	for _, item := range request.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO stock_request_items (id, request_id, item_id, quantity) VALUES ($1, $2, $3, $4)`,
			item.ID, item.RequestID, item.ItemID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert stock request item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la solicitud con sus líneas cargadas.
func (r *StockRequestRepo) GetByID(ctx context.Context, id string) (*entity.StockRequest, error) {
	query := `SELECT r.id, r.requester_id, r.status, r.notes, r.created_at, r.updated_at FROM stock_requests r WHERE r.id = $1`
	var req entity.StockRequest
	err := r.q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.RequesterID, &req.Status, &req.Notes, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock request: %w", err)
	}
	items, err := r.loadItems(ctx, []string{req.ID})
	if err != nil {
		return nil, err
	}
	req.Items = items[req.ID]
	return &req, nil
}

// UpdateStatus cambia el estado; la validación de transiciones es del caso de uso.
func (r *StockRequestRepo) UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_requests SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update stock request status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update stock request status: solicitud %s no encontrada", id)
	}
	return nil
}

// UpdateStatusFrom cambia el estado de forma condicional: solo si el estado
// actual de la fila está en `from`. Bajo concurrencia, la transacción que
// pierde la carrera ve 0 filas afectadas y debe abortar.
func (r *StockRequestRepo) UpdateStatusFrom(ctx context.Context, id string, to entity.RequestStatus, from ...entity.RequestStatus) (bool, error) {
	states := make([]string, 0, len(from))
	for _, s := range from {
		states = append(states, string(s))
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_requests SET status = $2, updated_at = now() WHERE id = $1 AND status = ANY($3)`,
		id, to, states,
	)
	if err != nil {
		return false, fmt.Errorf("update stock request status from: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List devuelve solicitudes paginadas con sus líneas, más recientes primero.
func (r *StockRequestRepo) List(ctx context.Context, filter repository.StockRequestFilter, params repository.ListParams) ([]*entity.StockRequest, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if filter.RequesterID != "" {
		n++
		where += fmt.Sprintf(` AND r.requester_id = $%d`, n)
		args = append(args, filter.RequesterID)
	}
	if filter.Status != "" {
		n++
		where += fmt.Sprintf(` AND r.status = $%d`, n)
		args = append(args, filter.Status)
	}
	if params.Search != "" {
		n++
		where += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM users u WHERE u.id = r.requester_id AND u.name ILIKE $%d)`, n)
		args = append(args, likePattern(params.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_requests r`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock requests: %w", err)
	}

	orderBy := sortColumn(requestSortColumns, params.SortBy, "r.created_at")
	dir := sortDirection(params.SortDir)
	if params.SortBy == "" {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT r.id, r.requester_id, r.status, r.notes, r.created_at, r.updated_at
		FROM stock_requests r%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where, orderBy, dir, n+1, n+2)
	args = append(args, params.PerPage, params.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockRequest
	var ids []string
	for rows.Next() {
		var req entity.StockRequest
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.Status, &req.Notes, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan stock request: %w", err)
		}
		list = append(list, &req)
		ids = append(ids, req.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, req := range list {
		req.Items = items[req.ID]
	}
	return list, total, nil
}

// loadItems carga las líneas de un conjunto de solicitudes en una sola consulta.
func (r *StockRequestRepo) loadItems(ctx context.Context, requestIDs []string) (map[string][]entity.StockRequestItem, error) {
	out := make(map[string][]entity.StockRequestItem, len(requestIDs))
	if len(requestIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, request_id, item_id, quantity FROM stock_request_items WHERE request_id = ANY($1) ORDER BY id`,
		requestIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("load stock request items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.StockRequestItem
		if err := rows.Scan(&item.ID, &item.RequestID, &item.ItemID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock request item: %w", err)
		}
		out[item.RequestID] = append(out[item.RequestID], item)
	}
	return out, rows.Err()
}
