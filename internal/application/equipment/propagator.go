package equipment

import (
	"context"
	"fmt"

	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/stock"
)

var _ ports.QuantityPropagator = (*StoreQuantityPropagator)(nil)

// StoreQuantityPropagator propaga la cantidad en proceso: compare-and-set sobre la fila de stock
// usando el repositorio recibido (normalmente atado a la transacción del llamador).
type StoreQuantityPropagator struct {
	repo repository.EquipmentStockRepository
}

// NewStoreQuantityPropagator construye el propagador sobre el repositorio de stock.
func NewStoreQuantityPropagator(repo repository.EquipmentStockRepository) *StoreQuantityPropagator {
	return &StoreQuantityPropagator{repo: repo}
}

// Propagate fija la cantidad a next si la actual sigue siendo expected.
func (p *StoreQuantityPropagator) Propagate(ctx context.Context, equipmentStockID int64, expected, next int) error {
	if next < 0 {
		return domain.NewValidationError(stock.MsgInvalidQuantity)
	}
	ok, err := p.repo.CompareAndSetQuantity(ctx, equipmentStockID, expected, next)
	if err != nil {
		return fmt.Errorf("propagar cantidad del stock %d: %w", equipmentStockID, err)
	}
	if !ok {
		return domain.NewError(domain.ErrConflict,
			fmt.Sprintf("Available quantity has changed (expected %d).", expected))
	}
	return nil
}
