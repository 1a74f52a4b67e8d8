package repository

import (
	"context"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

// EquipmentStockHistoryRepository libro de movimientos del stock de equipos (solo inserción).
type EquipmentStockHistoryRepository interface {
	Create(ctx context.Context, h *entity.EquipmentStockHistory) error
	// GetByIdempotencyKey devuelve (nil, nil) si la clave no se ha usado en la sucursal.
	GetByIdempotencyKey(ctx context.Context, branchCode, key string) (*entity.EquipmentStockHistory, error)
	ListByStock(ctx context.Context, branchCode string, equipmentStockID int64) ([]*entity.EquipmentStockHistory, error)
}

// ClientProjectStockRepository libro de movimientos de equipos de proyectos (solo inserción).
type ClientProjectStockRepository interface {
	Create(ctx context.Context, m *entity.ClientProjectEquipmentStock) error
	GetByIdempotencyKey(ctx context.Context, branchCode, key string) (*entity.ClientProjectEquipmentStock, error)
	ListByClientProject(ctx context.Context, branchCode string, clientProjectID int64) ([]*entity.ClientProjectEquipmentStock, error)
}
