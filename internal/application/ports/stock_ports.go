package ports

import (
	"context"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

// QuantityPropagator escribe la nueva cantidad disponible en el registro de stock autoritativo.
// Es un compare-and-set: falla con domain.ErrConflict si la cantidad actual ya no es expected.
type QuantityPropagator interface {
	Propagate(ctx context.Context, equipmentStockID int64, expected, next int) error
}

// EquipmentStockReader lee un registro de stock del servicio de equipos.
// Devuelve domain.ErrNotFound si no existe.
type EquipmentStockReader interface {
	GetStock(ctx context.Context, equipmentStockID int64) (*entity.EquipmentStock, error)
}

// IDGenerator entrega identificadores enteros únicos (snowflake).
type IDGenerator interface {
	NextID() int64
}
