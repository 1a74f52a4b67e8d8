package equipment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/stock"
)

// Mensajes del libro de stock de equipos.
const (
	MsgEmptyEquipmentStock = "Please select a equipment stock."
	MsgIdempotencyMismatch = "Idempotency key already used for a different movement."
)

// EquipmentStockHistoryUseCase registra movimientos del libro de stock de equipos.
// Lectura con bloqueo, validación, cálculo, compare-and-set del stock e inserción del movimiento
// ocurren en una sola transacción: o se aplica todo o nada.
type EquipmentStockHistoryUseCase struct {
	txRunner TxRunner
	history  repository.EquipmentStockHistoryRepository
	ids      ports.IDGenerator
	rules    stock.Rules
	log      zerolog.Logger
}

// NewEquipmentStockHistoryUseCase construye el caso de uso con las reglas del dominio de equipos.
func NewEquipmentStockHistoryUseCase(
	txRunner TxRunner,
	history repository.EquipmentStockHistoryRepository,
	ids ports.IDGenerator,
	log zerolog.Logger,
) *EquipmentStockHistoryUseCase {
	return &EquipmentStockHistoryUseCase{
		txRunner: txRunner,
		history:  history,
		ids:      ids,
		rules:    stock.EquipmentRules(),
		log:      log,
	}
}

// Record registra un movimiento para el usuario autenticado.
// Con idempotencyKey repetida devuelve el movimiento ya registrado (created=false) sin reaplicarlo.
func (uc *EquipmentStockHistoryUseCase) Record(
	ctx context.Context,
	user *entity.UserAccount,
	in dto.EquipmentStockHistoryRequest,
	idempotencyKey string,
) (*dto.EquipmentStockHistoryResponse, bool, error) {
	op := entity.ParseOperation(strings.ToUpper(strings.TrimSpace(in.Operation)))
	msgs := stock.ValidateFields(op, in.EquipmentQuantity)
	if len(msgs) == 0 && (in.EquipmentStockID == nil || *in.EquipmentStockID <= 0) {
		msgs = []string{MsgEmptyEquipmentStock}
	}
	if len(msgs) > 0 {
		uc.log.Warn().Strs("messages", msgs).Str("branch", user.BranchCode).Msg("movimiento rechazado")
		return nil, false, domain.NewValidationError(msgs...)
	}
	stockID, delta := *in.EquipmentStockID, *in.EquipmentQuantity

	if replay, err := uc.replay(ctx, user.BranchCode, idempotencyKey, stockID, op, delta); replay != nil || err != nil {
		return replay, false, err
	}

	var h *entity.EquipmentStockHistory
	err := uc.txRunner.Run(ctx, func(stockRepo repository.EquipmentStockRepository, historyRepo repository.EquipmentStockHistoryRepository) error {
		s, err := stockRepo.GetForUpdate(ctx, stockID)
		if err != nil {
			return err
		}
		if s == nil || s.BranchCode != user.BranchCode {
			return domain.NewError(domain.ErrNotFound, MsgStockNotFound)
		}
		next, err := uc.rules.Evaluate(op, delta, s.AvailableQuantity, in.AvailableQuantity)
		if err != nil {
			return err
		}
		if err := NewStoreQuantityPropagator(stockRepo).Propagate(ctx, s.ID, s.AvailableQuantity, next); err != nil {
			return err
		}
		h = &entity.EquipmentStockHistory{StockMovement: entity.StockMovement{
			ID:                uc.ids.NextID(),
			EquipmentStockID:  s.ID,
			Operation:         op,
			Quantity:          delta,
			AvailableQuantity: s.AvailableQuantity,
			ResultingQuantity: next,
			ReportedQuantity:  in.AvailableQuantity,
			Note:              strings.TrimSpace(in.StockNote),
			Date:              time.Now(),
			BranchCode:        user.BranchCode,
			TransactionID:     uuid.New().String(),
			IdempotencyKey:    idempotencyKey,
			CreatedBy:         user.ID,
		}}
		return historyRepo.Create(ctx, h)
	})
	if err != nil {
		// Dos peticiones con la misma clave en paralelo: la segunda choca con el índice único.
		if idempotencyKey != "" && errors.Is(err, domain.ErrDuplicate) {
			if replay, rerr := uc.replay(ctx, user.BranchCode, idempotencyKey, stockID, op, delta); replay != nil || rerr != nil {
				return replay, false, rerr
			}
		}
		uc.logFailure(err, user.BranchCode, stockID, op, delta)
		return nil, false, domain.AsPersistence(err)
	}

	uc.log.Info().
		Str("rules", uc.rules.Name()).
		Int64("equipment_stock_id", stockID).
		Str("operation", string(op)).
		Int("quantity", delta).
		Int("from", h.AvailableQuantity).
		Int("to", h.ResultingQuantity).
		Str("transaction_id", h.TransactionID).
		Msg("movimiento de stock registrado")
	return toHistoryResponse(h), true, nil
}

// ListByStock lista los movimientos de un registro de stock de la sucursal.
func (uc *EquipmentStockHistoryUseCase) ListByStock(ctx context.Context, branchCode string, equipmentStockID int64) ([]dto.EquipmentStockHistoryResponse, error) {
	list, err := uc.history.ListByStock(ctx, branchCode, equipmentStockID)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	items := make([]dto.EquipmentStockHistoryResponse, 0, len(list))
	for _, h := range list {
		items = append(items, *toHistoryResponse(h))
	}
	return items, nil
}

func (uc *EquipmentStockHistoryUseCase) replay(
	ctx context.Context,
	branchCode, key string,
	stockID int64,
	op entity.Operation,
	delta int,
) (*dto.EquipmentStockHistoryResponse, error) {
	if key == "" {
		return nil, nil
	}
	prev, err := uc.history.GetByIdempotencyKey(ctx, branchCode, key)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	if prev == nil {
		return nil, nil
	}
	if prev.EquipmentStockID != stockID || prev.Operation != op || prev.Quantity != delta {
		return nil, domain.NewError(domain.ErrConflict, MsgIdempotencyMismatch)
	}
	uc.log.Info().Str("idempotency_key", key).Int64("movement_id", prev.ID).Msg("movimiento repetido, se devuelve el existente")
	return toHistoryResponse(prev), nil
}

func (uc *EquipmentStockHistoryUseCase) logFailure(err error, branchCode string, stockID int64, op entity.Operation, delta int) {
	lvl := zerolog.ErrorLevel
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
		lvl = zerolog.WarnLevel
	}
	evt := uc.log.WithLevel(lvl).Err(err)
	if msgs := domain.ValidationMessages(err); msgs != nil {
		evt = evt.Strs("messages", msgs)
	}
	evt.Str("rules", uc.rules.Name()).
		Str("branch", branchCode).
		Int64("equipment_stock_id", stockID).
		Str("operation", string(op)).
		Int("quantity", delta).
		Msg("movimiento de stock no aplicado")
}

func toHistoryResponse(h *entity.EquipmentStockHistory) *dto.EquipmentStockHistoryResponse {
	if h == nil {
		return nil
	}
	return &dto.EquipmentStockHistoryResponse{StockMovementResponse: dto.NewStockMovementResponse(h.StockMovement)}
}
