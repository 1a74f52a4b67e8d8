package sqlite

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
)

var (
	_ repository.EquipmentStockHistoryRepository = (*EquipmentStockHistoryRepo)(nil)
	_ repository.ClientProjectStockRepository    = (*ClientProjectStockRepo)(nil)
)

// EquipmentStockHistoryRepo libro de movimientos del stock de equipos sobre SQLite.
type EquipmentStockHistoryRepo struct {
	r bun.IDB
	w bun.IDB
}

// NewEquipmentStockHistoryRepository construye el adaptador sobre las conexiones de db.
func NewEquipmentStockHistoryRepository(db *DB) *EquipmentStockHistoryRepo {
	return &EquipmentStockHistoryRepo{r: db.R, w: db.W}
}

func newEquipmentStockHistoryRepoTx(tx bun.Tx) *EquipmentStockHistoryRepo {
	return &EquipmentStockHistoryRepo{r: tx, w: tx}
}

// Create inserta un movimiento.
func (r *EquipmentStockHistoryRepo) Create(ctx context.Context, h *entity.EquipmentStockHistory) error {
	m := &equipmentStockHistoryModel{MovementColumns: newMovementColumns(h.StockMovement)}
	if _, err := r.w.NewInsert().Model(m).Exec(ctx); err != nil {
		return mapError("create equipment stock history", err)
	}
	return nil
}

// GetByIdempotencyKey obtiene el movimiento registrado con la clave en la sucursal.
func (r *EquipmentStockHistoryRepo) GetByIdempotencyKey(ctx context.Context, branchCode, key string) (*entity.EquipmentStockHistory, error) {
	var m equipmentStockHistoryModel
	err := r.r.NewSelect().Model(&m).
		Where("branch_code = ?", branchCode).
		Where("idempotency_key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment stock history by key: %w", err)
	}
	return &entity.EquipmentStockHistory{StockMovement: m.movement()}, nil
}

// ListByStock lista los movimientos de un registro de stock en orden cronológico.
func (r *EquipmentStockHistoryRepo) ListByStock(ctx context.Context, branchCode string, equipmentStockID int64) ([]*entity.EquipmentStockHistory, error) {
	var rows []equipmentStockHistoryModel
	err := r.r.NewSelect().Model(&rows).
		Where("branch_code = ?", branchCode).
		Where("equipment_stock_id = ?", equipmentStockID).
		OrderExpr("date ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list equipment stock history: %w", err)
	}
	list := make([]*entity.EquipmentStockHistory, 0, len(rows))
	for i := range rows {
		list = append(list, &entity.EquipmentStockHistory{StockMovement: rows[i].movement()})
	}
	return list, nil
}

// ClientProjectStockRepo libro de movimientos de equipos de proyectos sobre SQLite.
type ClientProjectStockRepo struct {
	r bun.IDB
	w bun.IDB
}

// NewClientProjectStockRepository construye el adaptador sobre las conexiones de db.
func NewClientProjectStockRepository(db *DB) *ClientProjectStockRepo {
	return &ClientProjectStockRepo{r: db.R, w: db.W}
}

// Create inserta un movimiento de proyecto.
func (r *ClientProjectStockRepo) Create(ctx context.Context, m *entity.ClientProjectEquipmentStock) error {
	row := &clientProjectEquipmentStockModel{
		MovementColumns: newMovementColumns(m.StockMovement),
		ClientProjectID: m.ClientProjectID,
		EquipmentID:     m.EquipmentID,
		ProjectNumber:   m.ProjectNumber,
	}
	if _, err := r.w.NewInsert().Model(row).Exec(ctx); err != nil {
		return mapError("create client project equipment stock", err)
	}
	return nil
}

// GetByIdempotencyKey obtiene el movimiento registrado con la clave en la sucursal.
func (r *ClientProjectStockRepo) GetByIdempotencyKey(ctx context.Context, branchCode, key string) (*entity.ClientProjectEquipmentStock, error) {
	var row clientProjectEquipmentStockModel
	err := r.r.NewSelect().Model(&row).
		Where("branch_code = ?", branchCode).
		Where("idempotency_key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client project equipment stock by key: %w", err)
	}
	return row.entity(), nil
}

// ListByClientProject lista los movimientos de un proyecto en orden cronológico.
func (r *ClientProjectStockRepo) ListByClientProject(ctx context.Context, branchCode string, clientProjectID int64) ([]*entity.ClientProjectEquipmentStock, error) {
	var rows []clientProjectEquipmentStockModel
	err := r.r.NewSelect().Model(&rows).
		Where("branch_code = ?", branchCode).
		Where("client_project_id = ?", clientProjectID).
		OrderExpr("date ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list client project equipment stock: %w", err)
	}
	list := make([]*entity.ClientProjectEquipmentStock, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].entity())
	}
	return list, nil
}

func (m *clientProjectEquipmentStockModel) entity() *entity.ClientProjectEquipmentStock {
	return &entity.ClientProjectEquipmentStock{
		StockMovement:   m.movement(),
		ClientProjectID: m.ClientProjectID,
		EquipmentID:     m.EquipmentID,
		ProjectNumber:   m.ProjectNumber,
	}
}
