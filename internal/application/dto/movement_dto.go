package dto

import (
	"time"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

// EquipmentStockHistoryRequest body para POST /equipment/equipmentStockHistory/saveUpdate.
// AvailableQuantity es la cantidad que el cliente ve; si viene y ya no coincide, el movimiento se rechaza.
type EquipmentStockHistoryRequest struct {
	Operation         string `json:"operation"`
	EquipmentQuantity *int   `json:"equipment_quantity"`
	AvailableQuantity *int   `json:"available_quantity,omitempty"`
	StockNote         string `json:"stock_note,omitempty"`
	EquipmentStockID  *int64 `json:"equipment_stock_id"`
}

// ClientProjectEquipmentStockRequest body para POST /project/clientProjectEquipmentStock/saveUpdate.
type ClientProjectEquipmentStockRequest struct {
	Operation         string `json:"operation"`
	EquipmentQuantity *int   `json:"equipment_quantity"`
	AvailableQuantity *int   `json:"available_quantity,omitempty"`
	StockNote         string `json:"stock_note,omitempty"`
	EquipmentStockID  *int64 `json:"equipment_stock_id"`
	EquipmentID       *int64 `json:"equipment_id"`
	ClientProjectID   *int64 `json:"client_project_id"`
	ProjectNumber     string `json:"project_number,omitempty"`
}

// StockMovementResponse campos comunes de un movimiento registrado.
type StockMovementResponse struct {
	ID                int64     `json:"id"`
	Operation         string    `json:"operation"`
	EquipmentQuantity int       `json:"equipment_quantity"`
	AvailableQuantity int       `json:"available_quantity"`  // antes del movimiento
	ResultingQuantity int       `json:"resulting_quantity"`  // después del movimiento
	ReportedQuantity  *int      `json:"reported_quantity,omitempty"`
	StockNote         string    `json:"stock_note,omitempty"`
	Date              time.Time `json:"date"`
	BranchCode        string    `json:"branch_code"`
	EquipmentStockID  int64     `json:"equipment_stock_id"`
	TransactionID     string    `json:"transaction_id"`
	CreatedBy         string    `json:"created_by,omitempty"`
}

// EquipmentStockHistoryResponse movimiento del libro de stock de equipos.
type EquipmentStockHistoryResponse struct {
	StockMovementResponse
}

// ClientProjectEquipmentStockResponse movimiento de equipos de un proyecto.
type ClientProjectEquipmentStockResponse struct {
	StockMovementResponse
	EquipmentID     int64  `json:"equipment_id"`
	ClientProjectID int64  `json:"client_project_id"`
	ProjectNumber   string `json:"project_number,omitempty"`
}

// NewStockMovementResponse mapea los campos comunes de un movimiento.
func NewStockMovementResponse(m entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:                m.ID,
		Operation:         string(m.Operation),
		EquipmentQuantity: m.Quantity,
		AvailableQuantity: m.AvailableQuantity,
		ResultingQuantity: m.ResultingQuantity,
		ReportedQuantity:  m.ReportedQuantity,
		StockNote:         m.Note,
		Date:              m.Date,
		BranchCode:        m.BranchCode,
		EquipmentStockID:  m.EquipmentStockID,
		TransactionID:     m.TransactionID,
		CreatedBy:         m.CreatedBy,
	}
}
