package equipment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/stock"
)

// Mensajes de validación del registro de stock.
const (
	MsgEmptyEquipmentType     = "Please select a equipment type."
	MsgEmptyEquipment         = "Please select a equipment."
	MsgEmptyEquipmentSupplier = "Please select a equipment supplier."
	MsgEmptyStockNumber       = "Please enter stock number."
	MsgEmptyPurchasePrice     = "Please enter purchase price."
	MsgInvalidPurchasePrice   = "Invalid purchase price."
	MsgInvalidStatus          = "Invalid status."
	MsgStockNumberExists      = "Stock number already exists."
	MsgStockNotFound          = "Equipment stock not found."
)

// EquipmentStockUseCase casos de uso del registro de stock de equipos.
// La cantidad disponible no se edita por CRUD: solo cambia por movimientos o por UpdateQuantity.
type EquipmentStockUseCase struct {
	repo     repository.EquipmentStockRepository
	txRunner TxRunner
	ids      ports.IDGenerator
}

// NewEquipmentStockUseCase construye el caso de uso.
func NewEquipmentStockUseCase(repo repository.EquipmentStockRepository, txRunner TxRunner, ids ports.IDGenerator) *EquipmentStockUseCase {
	return &EquipmentStockUseCase{repo: repo, txRunner: txRunner, ids: ids}
}

// Save crea (sin ID) o actualiza (con ID) un registro de stock de la sucursal.
// Devuelve created=true cuando se creó.
func (uc *EquipmentStockUseCase) Save(ctx context.Context, branchCode string, in dto.SaveEquipmentStockRequest) (*dto.EquipmentStockResponse, bool, error) {
	if msgs := validateStock(in); len(msgs) > 0 {
		return nil, false, domain.NewValidationError(msgs...)
	}
	number := strings.TrimSpace(in.StockNumber)
	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}

	dup, err := uc.repo.GetByStockNumber(ctx, branchCode, number)
	if err != nil {
		return nil, false, domain.AsPersistence(err)
	}
	if dup != nil && (in.ID == nil || dup.ID != *in.ID) {
		return nil, false, domain.NewError(domain.ErrDuplicate, MsgStockNumberExists)
	}

	now := time.Now()
	if in.ID == nil {
		s := &entity.EquipmentStock{
			ID:                  uc.ids.NextID(),
			StockNumber:         number,
			PurchasePrice:       *in.PurchasePrice,
			AvailableQuantity:   0,
			EquipmentTypeID:     *in.EquipmentTypeID,
			EquipmentID:         *in.EquipmentID,
			EquipmentSupplierID: *in.EquipmentSupplierID,
			BranchCode:          branchCode,
			Status:              status,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := uc.repo.Create(ctx, s); err != nil {
			return nil, false, duplicateOr(err)
		}
		return toStockResponse(s), true, nil
	}

	s, err := uc.find(ctx, branchCode, *in.ID)
	if err != nil {
		return nil, false, err
	}
	s.StockNumber = number
	s.PurchasePrice = *in.PurchasePrice
	s.EquipmentTypeID = *in.EquipmentTypeID
	s.EquipmentID = *in.EquipmentID
	s.EquipmentSupplierID = *in.EquipmentSupplierID
	s.Status = status
	s.UpdatedAt = now
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, false, duplicateOr(err)
	}
	return toStockResponse(s), false, nil
}

// GetByID obtiene un registro de stock de la sucursal.
func (uc *EquipmentStockUseCase) GetByID(ctx context.Context, branchCode string, id int64) (*dto.EquipmentStockResponse, error) {
	s, err := uc.find(ctx, branchCode, id)
	if err != nil {
		return nil, err
	}
	return toStockResponse(s), nil
}

// GetByEquipmentID obtiene el registro de stock de un equipo en la sucursal.
func (uc *EquipmentStockUseCase) GetByEquipmentID(ctx context.Context, branchCode string, equipmentID int64) (*dto.EquipmentStockResponse, error) {
	s, err := uc.repo.GetByEquipmentID(ctx, branchCode, equipmentID)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	if s == nil {
		return nil, domain.NewError(domain.ErrNotFound, MsgStockNotFound)
	}
	return toStockResponse(s), nil
}

// List lista los registros de la sucursal; onlyActive filtra por estado ACTIVE.
func (uc *EquipmentStockUseCase) List(ctx context.Context, branchCode string, onlyActive bool) ([]dto.EquipmentStockResponse, error) {
	list, err := uc.repo.ListByBranch(ctx, branchCode, onlyActive)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	items := make([]dto.EquipmentStockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return items, nil
}

// Delete elimina un registro. Falla con conflicto si tiene movimientos en el libro.
func (uc *EquipmentStockUseCase) Delete(ctx context.Context, branchCode string, id int64) error {
	if _, err := uc.find(ctx, branchCode, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.AsPersistence(err)
	}
	return nil
}

// UpdateQuantity compare-and-set de la cantidad disponible, usado por el servicio de proyectos.
func (uc *EquipmentStockUseCase) UpdateQuantity(ctx context.Context, branchCode string, id int64, in dto.UpdateQuantityRequest) (*dto.EquipmentStockResponse, error) {
	switch {
	case in.ExpectedQuantity == nil || in.AvailableQuantity == nil:
		return nil, domain.NewValidationError(stock.MsgEmptyQuantity)
	case *in.ExpectedQuantity < 0 || *in.AvailableQuantity < 0 || *in.AvailableQuantity > stock.MaxQuantity:
		return nil, domain.NewValidationError(stock.MsgInvalidQuantity)
	}

	var updated *entity.EquipmentStock
	err := uc.txRunner.Run(ctx, func(stockRepo repository.EquipmentStockRepository, _ repository.EquipmentStockHistoryRepository) error {
		s, err := stockRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil || s.BranchCode != branchCode {
			return domain.NewError(domain.ErrNotFound, MsgStockNotFound)
		}
		if err := NewStoreQuantityPropagator(stockRepo).Propagate(ctx, id, *in.ExpectedQuantity, *in.AvailableQuantity); err != nil {
			return err
		}
		s.AvailableQuantity = *in.AvailableQuantity
		s.Version++
		updated = s
		return nil
	})
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	return toStockResponse(updated), nil
}

func (uc *EquipmentStockUseCase) find(ctx context.Context, branchCode string, id int64) (*entity.EquipmentStock, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.AsPersistence(err)
	}
	if s == nil || s.BranchCode != branchCode {
		return nil, domain.NewError(domain.ErrNotFound, MsgStockNotFound)
	}
	return s, nil
}

func validateStock(in dto.SaveEquipmentStockRequest) []string {
	var msgs []string
	if in.EquipmentTypeID == nil || *in.EquipmentTypeID <= 0 {
		msgs = append(msgs, MsgEmptyEquipmentType)
	}
	if in.EquipmentID == nil || *in.EquipmentID <= 0 {
		msgs = append(msgs, MsgEmptyEquipment)
	}
	if in.EquipmentSupplierID == nil || *in.EquipmentSupplierID <= 0 {
		msgs = append(msgs, MsgEmptyEquipmentSupplier)
	}
	if strings.TrimSpace(in.StockNumber) == "" {
		msgs = append(msgs, MsgEmptyStockNumber)
	}
	if in.PurchasePrice == nil {
		msgs = append(msgs, MsgEmptyPurchasePrice)
	} else if !in.PurchasePrice.GreaterThan(decimal.Zero) {
		msgs = append(msgs, MsgInvalidPurchasePrice)
	}
	if in.Status != "" && !entity.ValidStatus(in.Status) {
		msgs = append(msgs, MsgInvalidStatus)
	}
	return msgs
}

// duplicateOr traduce la violación del índice único (carrera entre dos altas) al mensaje público.
func duplicateOr(err error) error {
	if errors.Is(err, domain.ErrDuplicate) && domain.PublicMessage(err) == "" {
		return domain.NewError(domain.ErrDuplicate, MsgStockNumberExists)
	}
	return domain.AsPersistence(err)
}

func toStockResponse(s *entity.EquipmentStock) *dto.EquipmentStockResponse {
	if s == nil {
		return nil
	}
	return &dto.EquipmentStockResponse{
		ID:                  s.ID,
		StockNumber:         s.StockNumber,
		PurchasePrice:       s.PurchasePrice,
		AvailableQuantity:   s.AvailableQuantity,
		EquipmentTypeID:     s.EquipmentTypeID,
		EquipmentID:         s.EquipmentID,
		EquipmentSupplierID: s.EquipmentSupplierID,
		BranchCode:          s.BranchCode,
		Status:              s.Status,
		Version:             s.Version,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
