package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
)

var _ repository.EquipmentStockRepository = (*EquipmentStockRepo)(nil)

// EquipmentStockRepo implementación de EquipmentStockRepository sobre PostgreSQL (usable con pool o tx).
type EquipmentStockRepo struct {
	q Querier
}

// NewEquipmentStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentStockRepository(q Querier) *EquipmentStockRepo {
	return &EquipmentStockRepo{q: q}
}

const stockColumns = `id, stock_number, purchase_price, available_quantity, equipment_type_id, equipment_id,
	equipment_supplier_id, branch_code, status, version, created_at, updated_at`

// Create inserta un registro de stock.
func (r *EquipmentStockRepo) Create(ctx context.Context, s *entity.EquipmentStock) error {
	query := `
		INSERT INTO equipment_stock (id, stock_number, stock_number_key, purchase_price, available_quantity,
			equipment_type_id, equipment_id, equipment_supplier_id, branch_code, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.StockNumber, entity.StockNumberKey(s.StockNumber), s.PurchasePrice, s.AvailableQuantity,
		s.EquipmentTypeID, s.EquipmentID, s.EquipmentSupplierID, s.BranchCode, s.Status, s.Version,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return mapError("create equipment stock", err)
	}
	return nil
}

// Update modifica los metadatos del registro. La cantidad disponible no se toca aquí.
func (r *EquipmentStockRepo) Update(ctx context.Context, s *entity.EquipmentStock) error {
	query := `
		UPDATE equipment_stock SET stock_number = $2, stock_number_key = $3, purchase_price = $4,
			equipment_type_id = $5, equipment_id = $6, equipment_supplier_id = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.StockNumber, entity.StockNumberKey(s.StockNumber), s.PurchasePrice,
		s.EquipmentTypeID, s.EquipmentID, s.EquipmentSupplierID, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return mapError("update equipment stock", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *EquipmentStockRepo) GetByID(ctx context.Context, id int64) (*entity.EquipmentStock, error) {
	return r.getOne(ctx, "get equipment stock",
		`SELECT `+stockColumns+` FROM equipment_stock WHERE id = $1`, id)
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *EquipmentStockRepo) GetForUpdate(ctx context.Context, id int64) (*entity.EquipmentStock, error) {
	return r.getOne(ctx, "get equipment stock for update",
		`SELECT `+stockColumns+` FROM equipment_stock WHERE id = $1 FOR UPDATE`, id)
}

// GetByEquipmentID obtiene el registro de un equipo en la sucursal.
func (r *EquipmentStockRepo) GetByEquipmentID(ctx context.Context, branchCode string, equipmentID int64) (*entity.EquipmentStock, error) {
	return r.getOne(ctx, "get equipment stock by equipment",
		`SELECT `+stockColumns+` FROM equipment_stock WHERE branch_code = $1 AND equipment_id = $2
		ORDER BY id LIMIT 1`, branchCode, equipmentID)
}

// GetByStockNumber busca por número de stock sin distinguir mayúsculas.
func (r *EquipmentStockRepo) GetByStockNumber(ctx context.Context, branchCode, stockNumber string) (*entity.EquipmentStock, error) {
	return r.getOne(ctx, "get equipment stock by number",
		`SELECT `+stockColumns+` FROM equipment_stock WHERE branch_code = $1 AND stock_number_key = $2`,
		branchCode, entity.StockNumberKey(stockNumber))
}

// ListByBranch lista los registros de la sucursal.
func (r *EquipmentStockRepo) ListByBranch(ctx context.Context, branchCode string, onlyActive bool) ([]*entity.EquipmentStock, error) {
	query := `SELECT ` + stockColumns + ` FROM equipment_stock WHERE branch_code = $1`
	args := []any{branchCode}
	if onlyActive {
		query += ` AND status = $2`
		args = append(args, entity.StatusActive)
	}
	query += ` ORDER BY id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.EquipmentStock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CompareAndSetQuantity fija la cantidad a next solo si la actual es expected; incrementa version.
// El CHECK (available_quantity >= 0) de la tabla rechaza valores negativos.
func (r *EquipmentStockRepo) CompareAndSetQuantity(ctx context.Context, id int64, expected, next int) (bool, error) {
	query := `
		UPDATE equipment_stock
		SET available_quantity = $3, version = version + 1, updated_at = now()
		WHERE id = $1 AND available_quantity = $2`
	tag, err := r.q.Exec(ctx, query, id, expected, next)
	if err != nil {
		return false, mapError("compare and set quantity", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete elimina un registro. Falla (conflicto) si hay movimientos que lo referencian.
func (r *EquipmentStockRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM equipment_stock WHERE id = $1`, id)
	if err != nil {
		return mapError("delete equipment stock", err)
	}
	return nil
}

func (r *EquipmentStockRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.EquipmentStock, error) {
	s, err := scanStock(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func scanStock(row pgx.Row) (*entity.EquipmentStock, error) {
	var s entity.EquipmentStock
	err := row.Scan(
		&s.ID, &s.StockNumber, &s.PurchasePrice, &s.AvailableQuantity, &s.EquipmentTypeID, &s.EquipmentID,
		&s.EquipmentSupplierID, &s.BranchCode, &s.Status, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
