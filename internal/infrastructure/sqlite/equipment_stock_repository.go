package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
)

var _ repository.EquipmentStockRepository = (*EquipmentStockRepo)(nil)

// EquipmentStockRepo implementación de EquipmentStockRepository sobre SQLite (Bun).
// Fuera de una transacción lee del pool de lectura y escribe con el escritor único.
type EquipmentStockRepo struct {
	r bun.IDB
	w bun.IDB
}

// NewEquipmentStockRepository construye el adaptador sobre las conexiones de db.
func NewEquipmentStockRepository(db *DB) *EquipmentStockRepo {
	return &EquipmentStockRepo{r: db.R, w: db.W}
}

func newEquipmentStockRepoTx(tx bun.Tx) *EquipmentStockRepo {
	return &EquipmentStockRepo{r: tx, w: tx}
}

// Create inserta un registro de stock.
func (r *EquipmentStockRepo) Create(ctx context.Context, s *entity.EquipmentStock) error {
	if _, err := r.w.NewInsert().Model(newStockModel(s)).Exec(ctx); err != nil {
		return mapError("create equipment stock", err)
	}
	return nil
}

// Update modifica los metadatos del registro. La cantidad disponible no se toca aquí.
func (r *EquipmentStockRepo) Update(ctx context.Context, s *entity.EquipmentStock) error {
	_, err := r.w.NewUpdate().
		Model(newStockModel(s)).
		Column("stock_number", "stock_number_key", "purchase_price", "equipment_type_id",
			"equipment_id", "equipment_supplier_id", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return mapError("update equipment stock", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *EquipmentStockRepo) GetByID(ctx context.Context, id int64) (*entity.EquipmentStock, error) {
	return r.getOne(ctx, r.r, "get equipment stock", "id = ?", id)
}

// GetForUpdate dentro de la transacción IMMEDIATE el escritor ya tiene el bloqueo de la base.
func (r *EquipmentStockRepo) GetForUpdate(ctx context.Context, id int64) (*entity.EquipmentStock, error) {
	return r.getOne(ctx, r.w, "get equipment stock for update", "id = ?", id)
}

// GetByEquipmentID obtiene el registro de un equipo en la sucursal.
func (r *EquipmentStockRepo) GetByEquipmentID(ctx context.Context, branchCode string, equipmentID int64) (*entity.EquipmentStock, error) {
	return r.getOne(ctx, r.r, "get equipment stock by equipment",
		"branch_code = ? AND equipment_id = ?", branchCode, equipmentID)
}

// GetByStockNumber busca por número de stock sin distinguir mayúsculas.
func (r *EquipmentStockRepo) GetByStockNumber(ctx context.Context, branchCode, stockNumber string) (*entity.EquipmentStock, error) {
	return r.getOne(ctx, r.r, "get equipment stock by number",
		"branch_code = ? AND stock_number_key = ?", branchCode, entity.StockNumberKey(stockNumber))
}

// ListByBranch lista los registros de la sucursal.
func (r *EquipmentStockRepo) ListByBranch(ctx context.Context, branchCode string, onlyActive bool) ([]*entity.EquipmentStock, error) {
	var rows []equipmentStockModel
	q := r.r.NewSelect().Model(&rows).Where("branch_code = ?", branchCode)
	if onlyActive {
		q = q.Where("status = ?", entity.StatusActive)
	}
	if err := q.OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list equipment stock: %w", err)
	}
	list := make([]*entity.EquipmentStock, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].entity())
	}
	return list, nil
}

// CompareAndSetQuantity fija la cantidad a next solo si la actual es expected; incrementa version.
func (r *EquipmentStockRepo) CompareAndSetQuantity(ctx context.Context, id int64, expected, next int) (bool, error) {
	res, err := r.w.NewUpdate().
		Model((*equipmentStockModel)(nil)).
		Set("available_quantity = ?", next).
		Set("version = version + 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Where("available_quantity = ?", expected).
		Exec(ctx)
	if err != nil {
		return false, mapError("compare and set quantity", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("compare and set quantity: %w", err)
	}
	return n == 1, nil
}

// Delete elimina un registro. Falla (conflicto) si hay movimientos que lo referencian.
func (r *EquipmentStockRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.w.NewDelete().Model((*equipmentStockModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return mapError("delete equipment stock", err)
	}
	return nil
}

func (r *EquipmentStockRepo) getOne(ctx context.Context, db bun.IDB, op, where string, args ...any) (*entity.EquipmentStock, error) {
	var m equipmentStockModel
	if err := db.NewSelect().Model(&m).Where(where, args...).OrderExpr("id ASC").Limit(1).Scan(ctx); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m.entity(), nil
}
