package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveEquipmentStockRequest body para POST /equipment/equipmentStock/saveUpdate.
// Sin ID crea el registro (cantidad inicial 0); con ID actualiza sus datos, nunca la cantidad.
type SaveEquipmentStockRequest struct {
	ID                  *int64           `json:"id,omitempty"`
	StockNumber         string           `json:"stock_number"`
	PurchasePrice       *decimal.Decimal `json:"purchase_price"`
	EquipmentTypeID     *int64           `json:"equipment_type_id"`
	EquipmentID         *int64           `json:"equipment_id"`
	EquipmentSupplierID *int64           `json:"equipment_supplier_id"`
	Status              string           `json:"status,omitempty"`
}

// UpdateQuantityRequest body para PUT /equipment/equipmentStock/updateEquipmentQuantity/:id.
// Compare-and-set: solo aplica si la cantidad actual sigue siendo ExpectedQuantity.
type UpdateQuantityRequest struct {
	ExpectedQuantity  *int `json:"expected_quantity"`
	AvailableQuantity *int `json:"available_quantity"`
}

// EquipmentStockResponse representación de un registro de stock de equipos.
type EquipmentStockResponse struct {
	ID                  int64           `json:"id"`
	StockNumber         string          `json:"stock_number"`
	PurchasePrice       decimal.Decimal `json:"purchase_price"`
	AvailableQuantity   int             `json:"available_quantity"`
	EquipmentTypeID     int64           `json:"equipment_type_id"`
	EquipmentID         int64           `json:"equipment_id"`
	EquipmentSupplierID int64           `json:"equipment_supplier_id"`
	BranchCode          string          `json:"branch_code"`
	Status              string          `json:"status"`
	Version             int64           `json:"version"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
