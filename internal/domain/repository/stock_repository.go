package repository

import (
	"context"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

// EquipmentStockRepository define el puerto de persistencia del stock de equipos (contador autoritativo).
// Los métodos Get* devuelven (nil, nil) cuando la fila no existe.
type EquipmentStockRepository interface {
	Create(ctx context.Context, s *entity.EquipmentStock) error
	// Update modifica los metadatos del registro; nunca la cantidad disponible.
	Update(ctx context.Context, s *entity.EquipmentStock) error
	GetByID(ctx context.Context, id int64) (*entity.EquipmentStock, error)
	// GetForUpdate obtiene el registro y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.EquipmentStock, error)
	GetByEquipmentID(ctx context.Context, branchCode string, equipmentID int64) (*entity.EquipmentStock, error)
	// GetByStockNumber busca por número de stock normalizado (entity.StockNumberKey).
	GetByStockNumber(ctx context.Context, branchCode, stockNumber string) (*entity.EquipmentStock, error)
	ListByBranch(ctx context.Context, branchCode string, onlyActive bool) ([]*entity.EquipmentStock, error)
	// CompareAndSetQuantity fija la cantidad a next solo si la actual es expected.
	// Devuelve false (sin error) si otro movimiento la cambió antes.
	CompareAndSetQuantity(ctx context.Context, id int64, expected, next int) (bool, error)
	Delete(ctx context.Context, id int64) error
}
