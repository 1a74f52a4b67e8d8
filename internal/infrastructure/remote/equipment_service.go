package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

var (
	_ ports.EquipmentStockReader = (*EquipmentService)(nil)
	_ ports.QuantityPropagator   = (*EquipmentService)(nil)
)

// EquipmentService adaptador del servicio de equipos usado por el servicio de proyectos.
// Lee el registro de stock autoritativo y propaga la nueva cantidad con compare-and-set.
// Ambas llamadas reenvían el bearer token del llamador, de modo que el servicio de equipos
// filtra por la misma sucursal.
type EquipmentService struct {
	client
}

// NewEquipmentService construye el adaptador. timeout <= 0 usa 10 s.
func NewEquipmentService(baseURL string, timeout time.Duration) *EquipmentService {
	return &EquipmentService{client: newClient("equipment service", baseURL, timeout)}
}

// GetStock GET /equipment/equipmentStock/getById/:id.
func (s *EquipmentService) GetStock(ctx context.Context, equipmentStockID int64) (*entity.EquipmentStock, error) {
	var out dto.EquipmentStockResponse
	path := fmt.Sprintf("/equipment/equipmentStock/getById/%d", equipmentStockID)
	if err := s.call(ctx, http.MethodGet, path, ports.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, err
	}
	return &entity.EquipmentStock{
		ID:                  out.ID,
		StockNumber:         out.StockNumber,
		PurchasePrice:       out.PurchasePrice,
		AvailableQuantity:   out.AvailableQuantity,
		EquipmentTypeID:     out.EquipmentTypeID,
		EquipmentID:         out.EquipmentID,
		EquipmentSupplierID: out.EquipmentSupplierID,
		BranchCode:          out.BranchCode,
		Status:              out.Status,
		Version:             out.Version,
		CreatedAt:           out.CreatedAt,
		UpdatedAt:           out.UpdatedAt,
	}, nil
}

// Propagate PUT /equipment/equipmentStock/updateEquipmentQuantity/:id con {expected_quantity, available_quantity}.
// 409 → ErrConflict (la cantidad cambió), 422 → ErrValidation, 5xx o red → ErrUpstreamUnavailable.
func (s *EquipmentService) Propagate(ctx context.Context, equipmentStockID int64, expected, next int) error {
	path := fmt.Sprintf("/equipment/equipmentStock/updateEquipmentQuantity/%d", equipmentStockID)
	in := dto.UpdateQuantityRequest{ExpectedQuantity: &expected, AvailableQuantity: &next}
	return s.call(ctx, http.MethodPut, path, ports.TokenFromContext(ctx), in, nil)
}
