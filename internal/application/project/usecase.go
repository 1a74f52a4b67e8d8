package project

import (
	"context"
	"errors"
	"fmt"
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

// Mensajes de validación del stock de equipos de proyecto.
const (
	MsgEmptyEquipmentStock = "Please select a equipment stock."
	MsgEmptyEquipment      = "Please select a equipment."
	MsgEmptyClientProject  = "Please select a client project."
	MsgEquipmentMismatch   = "Equipment does not match the equipment stock."
	MsgStockNotFound       = "Equipment stock not found."
	MsgIdempotencyMismatch = "Idempotency key already used for a different movement."
)

// ClientProjectStockUseCase registra movimientos de equipos asignados a proyectos de cliente.
// El stock autoritativo vive en el servicio de equipos: se lee allí, se valida, se propaga con
// compare-and-set y solo después se guarda el movimiento local. Si el guardado local falla se
// revierte la propagación (compensación).
type ClientProjectStockUseCase struct {
	repo       repository.ClientProjectStockRepository
	reader     ports.EquipmentStockReader
	propagator ports.QuantityPropagator
	ids        ports.IDGenerator
	rules      stock.Rules
	log        zerolog.Logger
}

// NewClientProjectStockUseCase construye el caso de uso con las reglas del dominio de proyectos.
func NewClientProjectStockUseCase(
	repo repository.ClientProjectStockRepository,
	reader ports.EquipmentStockReader,
	propagator ports.QuantityPropagator,
	ids ports.IDGenerator,
	log zerolog.Logger,
) *ClientProjectStockUseCase {
	return &ClientProjectStockUseCase{
		repo:       repo,
		reader:     reader,
		propagator: propagator,
		ids:        ids,
		rules:      stock.ClientProjectRules(),
		log:        log,
	}
}

// Record registra un movimiento de equipos del proyecto para el usuario autenticado.
// Con idempotencyKey repetida devuelve el movimiento ya registrado (created=false).
func (uc *ClientProjectStockUseCase) Record(
	ctx context.Context,
	user *entity.UserAccount,
	in dto.ClientProjectEquipmentStockRequest,
	idempotencyKey string,
) (*dto.ClientProjectEquipmentStockResponse, bool, error) {
	op := entity.ParseOperation(strings.ToUpper(strings.TrimSpace(in.Operation)))
	if msgs := validateRequest(op, in); len(msgs) > 0 {
		uc.log.Warn().Strs("messages", msgs).Str("branch", user.BranchCode).Msg("movimiento de proyecto rechazado")
		return nil, false, domain.NewValidationError(msgs...)
	}
	stockID, delta := *in.EquipmentStockID, *in.EquipmentQuantity

	if replay, err := uc.replay(ctx, user.BranchCode, idempotencyKey, in, op); replay != nil || err != nil {
		return replay, false, err
	}

	txID := uuid.New().String()
	ctx = ports.ContextWithTransactionID(ctx, txID)
	logger := uc.log.With().
		Str("rules", uc.rules.Name()).
		Str("transaction_id", txID).
		Int64("equipment_stock_id", stockID).
		Str("operation", string(op)).
		Int("quantity", delta).
		Logger()

	s, err := uc.reader.GetStock(ctx, stockID)
	if err != nil {
		logger.Warn().Err(err).Msg("no se pudo leer el stock de equipos")
		return nil, false, err
	}
	if s.BranchCode != user.BranchCode {
		return nil, false, domain.NewError(domain.ErrNotFound, MsgStockNotFound)
	}
	if s.EquipmentID != *in.EquipmentID {
		return nil, false, domain.NewValidationError(MsgEquipmentMismatch)
	}

	next, err := uc.rules.Evaluate(op, delta, s.AvailableQuantity, in.AvailableQuantity)
	if err != nil {
		logger.Warn().Err(err).Strs("messages", domain.ValidationMessages(err)).Msg("movimiento de proyecto rechazado")
		return nil, false, err
	}

	if err := uc.propagator.Propagate(ctx, stockID, s.AvailableQuantity, next); err != nil {
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			return nil, false, uc.settleUnknown(ctx, logger, stockID, s.AvailableQuantity, next, err)
		}
		logger.Warn().Err(err).Msg("propagación de cantidad rechazada")
		return nil, false, err
	}

	m := &entity.ClientProjectEquipmentStock{
		StockMovement: entity.StockMovement{
			ID:                uc.ids.NextID(),
			EquipmentStockID:  stockID,
			Operation:         op,
			Quantity:          delta,
			AvailableQuantity: s.AvailableQuantity,
			ResultingQuantity: next,
			ReportedQuantity:  in.AvailableQuantity,
			Note:              strings.TrimSpace(in.StockNote),
			Date:              time.Now(),
			BranchCode:        user.BranchCode,
			TransactionID:     txID,
			IdempotencyKey:    idempotencyKey,
			CreatedBy:         user.ID,
		},
		ClientProjectID: *in.ClientProjectID,
		EquipmentID:     *in.EquipmentID,
		ProjectNumber:   strings.TrimSpace(in.ProjectNumber),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return uc.compensate(ctx, logger, user.BranchCode, idempotencyKey, in, op, stockID, s.AvailableQuantity, next, err)
	}

	logger.Info().
		Int("from", s.AvailableQuantity).
		Int("to", next).
		Int64("client_project_id", m.ClientProjectID).
		Msg("movimiento de proyecto registrado")
	return toResponse(m), true, nil
}

// settleUnknown resuelve una propagación sin respuesta: el servicio de equipos pudo haber aplicado
// el compare-and-set antes de perderse la respuesta. Se intenta revertir next → previous:
// Conflict indica que la primera llamada no se aplicó; éxito indica que se aplicó y quedó revertida.
// En ambos casos no queda efecto y se devuelve cause. Si la reversión tampoco obtiene respuesta
// el estado es desconocido y se informa como parcialmente aplicado.
func (uc *ClientProjectStockUseCase) settleUnknown(
	ctx context.Context,
	logger zerolog.Logger,
	stockID int64,
	previous, next int,
	cause error,
) error {
	err := uc.propagator.Propagate(context.WithoutCancel(ctx), stockID, next, previous)
	switch {
	case err == nil:
		logger.Warn().Err(cause).Msg("propagación sin respuesta ya aplicada, cantidad revertida")
		return cause
	case errors.Is(err, domain.ErrConflict):
		logger.Warn().Err(cause).Msg("propagación sin respuesta no aplicada")
		return cause
	default:
		logger.Error().Err(err).AnErr("cause", cause).
			Int("previous", previous).Int("next", next).
			Msg("estado de la cantidad desconocido tras propagación sin respuesta")
		return fmt.Errorf("%w: stock %d en estado desconocido (%d o %d): %v", domain.ErrPartiallyApplied, stockID, previous, next, cause)
	}
}

// compensate revierte la cantidad propagada cuando el movimiento no se pudo guardar.
// Si la reversión también falla el estado queda parcialmente aplicado y se informa así.
func (uc *ClientProjectStockUseCase) compensate(
	ctx context.Context,
	logger zerolog.Logger,
	branchCode, idempotencyKey string,
	in dto.ClientProjectEquipmentStockRequest,
	op entity.Operation,
	stockID int64,
	previous, applied int,
	cause error,
) (*dto.ClientProjectEquipmentStockResponse, bool, error) {
	// La reversión debe ejecutarse aunque el cliente haya cancelado la petición.
	cctx := context.WithoutCancel(ctx)
	if err := uc.propagator.Propagate(cctx, stockID, applied, previous); err != nil {
		logger.Error().Err(err).AnErr("cause", cause).
			Int("applied", applied).Int("previous", previous).
			Msg("compensación fallida: cantidad propagada sin movimiento registrado")
		return nil, false, fmt.Errorf("%w: stock %d quedó en %d sin movimiento: %v", domain.ErrPartiallyApplied, stockID, applied, cause)
	}
	logger.Warn().Err(cause).Msg("movimiento no guardado, cantidad revertida")

	// Otra petición con la misma clave ganó la carrera: devolver su movimiento.
	if idempotencyKey != "" && errors.Is(cause, domain.ErrDuplicate) {
		if replay, err := uc.replay(cctx, branchCode, idempotencyKey, in, op); replay != nil || err != nil {
			return replay, false, err
		}
	}
	return nil, false, domain.AsPersistence(cause)
}

// ListByClientProject lista los movimientos de un proyecto de la sucursal.
func (uc *ClientProjectStockUseCase) ListByClientProject(ctx context.Context, branchCode string, clientProjectID int64) ([]dto.ClientProjectEquipmentStockResponse, error) {
	list, err := uc.repo.ListByClientProject(ctx, branchCode, clientProjectID)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	items := make([]dto.ClientProjectEquipmentStockResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toResponse(m))
	}
	return items, nil
}

func (uc *ClientProjectStockUseCase) replay(
	ctx context.Context,
	branchCode, key string,
	in dto.ClientProjectEquipmentStockRequest,
	op entity.Operation,
) (*dto.ClientProjectEquipmentStockResponse, error) {
	if key == "" {
		return nil, nil
	}
	prev, err := uc.repo.GetByIdempotencyKey(ctx, branchCode, key)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	if prev == nil {
		return nil, nil
	}
	if prev.EquipmentStockID != *in.EquipmentStockID || prev.ClientProjectID != *in.ClientProjectID ||
		prev.Operation != op || prev.Quantity != *in.EquipmentQuantity {
		return nil, domain.NewError(domain.ErrConflict, MsgIdempotencyMismatch)
	}
	uc.log.Info().Str("idempotency_key", key).Int64("movement_id", prev.ID).Msg("movimiento repetido, se devuelve el existente")
	return toResponse(prev), nil
}

func validateRequest(op entity.Operation, in dto.ClientProjectEquipmentStockRequest) []string {
	if msgs := stock.ValidateFields(op, in.EquipmentQuantity); len(msgs) > 0 {
		return msgs
	}
	switch {
	case in.EquipmentStockID == nil || *in.EquipmentStockID <= 0:
		return []string{MsgEmptyEquipmentStock}
	case in.EquipmentID == nil || *in.EquipmentID <= 0:
		return []string{MsgEmptyEquipment}
	case in.ClientProjectID == nil || *in.ClientProjectID <= 0:
		return []string{MsgEmptyClientProject}
	}
	return nil
}

func toResponse(m *entity.ClientProjectEquipmentStock) *dto.ClientProjectEquipmentStockResponse {
	if m == nil {
		return nil
	}
	return &dto.ClientProjectEquipmentStockResponse{
		StockMovementResponse: dto.NewStockMovementResponse(m.StockMovement),
		EquipmentID:           m.EquipmentID,
		ClientProjectID:       m.ClientProjectID,
		ProjectNumber:         m.ProjectNumber,
	}
}
