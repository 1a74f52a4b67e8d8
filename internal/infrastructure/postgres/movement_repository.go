package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
)

var (
	_ repository.EquipmentStockHistoryRepository = (*EquipmentStockHistoryRepo)(nil)
	_ repository.ClientProjectStockRepository    = (*ClientProjectStockRepo)(nil)
)

const movementColumns = `id, equipment_stock_id, operation, quantity, available_quantity, resulting_quantity,
	reported_quantity, note, date, branch_code, transaction_id, idempotency_key, created_by`

// movementArgs valores de las columnas comunes en el orden de movementColumns.
func movementArgs(m *entity.StockMovement) []any {
	return []any{
		m.ID, m.EquipmentStockID, string(m.Operation), m.Quantity, m.AvailableQuantity, m.ResultingQuantity,
		m.ReportedQuantity, m.Note, m.Date, m.BranchCode, m.TransactionID,
		nullIfEmpty(m.IdempotencyKey), nullIfEmpty(m.CreatedBy),
	}
}

// movementDest destinos de Scan para las columnas comunes; fin completa los campos opcionales.
func movementDest(m *entity.StockMovement) (dest []any, fin func()) {
	var op string
	var key, createdBy *string
	dest = []any{
		&m.ID, &m.EquipmentStockID, &op, &m.Quantity, &m.AvailableQuantity, &m.ResultingQuantity,
		&m.ReportedQuantity, &m.Note, &m.Date, &m.BranchCode, &m.TransactionID, &key, &createdBy,
	}
	return dest, func() {
		m.Operation = entity.Operation(op)
		if key != nil {
			m.IdempotencyKey = *key
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
	}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// EquipmentStockHistoryRepo libro de movimientos del stock de equipos sobre PostgreSQL.
type EquipmentStockHistoryRepo struct {
	q Querier
}

// NewEquipmentStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentStockHistoryRepository(q Querier) *EquipmentStockHistoryRepo {
	return &EquipmentStockHistoryRepo{q: q}
}

// Create inserta un movimiento.
func (r *EquipmentStockHistoryRepo) Create(ctx context.Context, h *entity.EquipmentStockHistory) error {
	query := `INSERT INTO equipment_stock_history (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := r.q.Exec(ctx, query, movementArgs(&h.StockMovement)...); err != nil {
		return mapError("create equipment stock history", err)
	}
	return nil
}

// GetByIdempotencyKey obtiene el movimiento registrado con la clave en la sucursal.
func (r *EquipmentStockHistoryRepo) GetByIdempotencyKey(ctx context.Context, branchCode, key string) (*entity.EquipmentStockHistory, error) {
	query := `SELECT ` + movementColumns + ` FROM equipment_stock_history WHERE branch_code = $1 AND idempotency_key = $2`
	var h entity.EquipmentStockHistory
	dest, fin := movementDest(&h.StockMovement)
	if err := r.q.QueryRow(ctx, query, branchCode, key).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment stock history by key: %w", err)
	}
	fin()
	return &h, nil
}

// ListByStock lista los movimientos de un registro de stock en orden cronológico.
func (r *EquipmentStockHistoryRepo) ListByStock(ctx context.Context, branchCode string, equipmentStockID int64) ([]*entity.EquipmentStockHistory, error) {
	query := `SELECT ` + movementColumns + ` FROM equipment_stock_history
		WHERE branch_code = $1 AND equipment_stock_id = $2 ORDER BY date, id`
	rows, err := r.q.Query(ctx, query, branchCode, equipmentStockID)
	if err != nil {
		return nil, fmt.Errorf("list equipment stock history: %w", err)
	}
	defer rows.Close()
	var list []*entity.EquipmentStockHistory
	for rows.Next() {
		var h entity.EquipmentStockHistory
		dest, fin := movementDest(&h.StockMovement)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan equipment stock history: %w", err)
		}
		fin()
		list = append(list, &h)
	}
	return list, rows.Err()
}

// ClientProjectStockRepo libro de movimientos de equipos de proyectos sobre PostgreSQL.
type ClientProjectStockRepo struct {
	q Querier
}

// NewClientProjectStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientProjectStockRepository(q Querier) *ClientProjectStockRepo {
	return &ClientProjectStockRepo{q: q}
}

const projectColumns = movementColumns + `, client_project_id, equipment_id, project_number`

// Create inserta un movimiento de proyecto.
func (r *ClientProjectStockRepo) Create(ctx context.Context, m *entity.ClientProjectEquipmentStock) error {
	query := `INSERT INTO client_project_equipment_stock (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	args := append(movementArgs(&m.StockMovement), m.ClientProjectID, m.EquipmentID, m.ProjectNumber)
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return mapError("create client project equipment stock", err)
	}
	return nil
}

// GetByIdempotencyKey obtiene el movimiento registrado con la clave en la sucursal.
func (r *ClientProjectStockRepo) GetByIdempotencyKey(ctx context.Context, branchCode, key string) (*entity.ClientProjectEquipmentStock, error) {
	query := `SELECT ` + projectColumns + ` FROM client_project_equipment_stock WHERE branch_code = $1 AND idempotency_key = $2`
	m, err := scanProjectMovement(r.q.QueryRow(ctx, query, branchCode, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client project equipment stock by key: %w", err)
	}
	return m, nil
}

// ListByClientProject lista los movimientos de un proyecto en orden cronológico.
func (r *ClientProjectStockRepo) ListByClientProject(ctx context.Context, branchCode string, clientProjectID int64) ([]*entity.ClientProjectEquipmentStock, error) {
	query := `SELECT ` + projectColumns + ` FROM client_project_equipment_stock
		WHERE branch_code = $1 AND client_project_id = $2 ORDER BY date, id`
	rows, err := r.q.Query(ctx, query, branchCode, clientProjectID)
	if err != nil {
		return nil, fmt.Errorf("list client project equipment stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.ClientProjectEquipmentStock
	for rows.Next() {
		m, err := scanProjectMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client project equipment stock: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanProjectMovement(row pgx.Row) (*entity.ClientProjectEquipmentStock, error) {
	var m entity.ClientProjectEquipmentStock
	dest, fin := movementDest(&m.StockMovement)
	dest = append(dest, &m.ClientProjectID, &m.EquipmentID, &m.ProjectNumber)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	fin()
	return &m, nil
}
