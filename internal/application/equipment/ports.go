package equipment

import (
	"context"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la cantidad del stock y el movimiento del libro se escriban juntos o no se escriban.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.EquipmentStockRepository,
		historyRepo repository.EquipmentStockHistoryRepository,
	) error) error
}
