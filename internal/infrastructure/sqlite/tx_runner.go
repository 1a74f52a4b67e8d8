package sqlite

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/tharaka19/CCIMS-sub000/internal/application/equipment"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
)

var _ equipment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción IMMEDIATE del escritor único.
// Los movimientos concurrentes quedan serializados por el bloqueo de escritura de SQLite.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con repos atados a la transacción; Commit si fn no falla, Rollback si falla.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.EquipmentStockRepository,
	historyRepo repository.EquipmentStockHistoryRepository,
) error) error {
	err := r.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return fn(newEquipmentStockRepoTx(tx), newEquipmentStockHistoryRepoTx(tx))
	})
	if err != nil && !domain.Classified(err) {
		return mapError("write transaction", err)
	}
	return err
}
