package sqlite

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

type equipmentStockModel struct {
	bun.BaseModel `bun:"table:equipment_stock"`

	ID                  int64           `bun:"id,pk"`
	StockNumber         string          `bun:"stock_number"`
	StockNumberKey      string          `bun:"stock_number_key"`
	PurchasePrice       decimal.Decimal `bun:"purchase_price"`
	AvailableQuantity   int             `bun:"available_quantity"`
	EquipmentTypeID     int64           `bun:"equipment_type_id"`
	EquipmentID         int64           `bun:"equipment_id"`
	EquipmentSupplierID int64           `bun:"equipment_supplier_id"`
	BranchCode          string          `bun:"branch_code"`
	Status              string          `bun:"status"`
	Version             int64           `bun:"version"`
	CreatedAt           time.Time       `bun:"created_at"`
	UpdatedAt           time.Time       `bun:"updated_at"`
}

func newStockModel(s *entity.EquipmentStock) *equipmentStockModel {
	return &equipmentStockModel{
		ID:                  s.ID,
		StockNumber:         s.StockNumber,
		StockNumberKey:      entity.StockNumberKey(s.StockNumber),
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

func (m *equipmentStockModel) entity() *entity.EquipmentStock {
	return &entity.EquipmentStock{
		ID:                  m.ID,
		StockNumber:         m.StockNumber,
		PurchasePrice:       m.PurchasePrice,
		AvailableQuantity:   m.AvailableQuantity,
		EquipmentTypeID:     m.EquipmentTypeID,
		EquipmentID:         m.EquipmentID,
		EquipmentSupplierID: m.EquipmentSupplierID,
		BranchCode:          m.BranchCode,
		Status:              m.Status,
		Version:             m.Version,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// MovementColumns columnas comunes de los dos libros de movimientos.
type MovementColumns struct {
	ID                int64     `bun:"id,pk"`
	EquipmentStockID  int64     `bun:"equipment_stock_id"`
	Operation         string    `bun:"operation"`
	Quantity          int       `bun:"quantity"`
	AvailableQuantity int       `bun:"available_quantity"`
	ResultingQuantity int       `bun:"resulting_quantity"`
	ReportedQuantity  *int      `bun:"reported_quantity"`
	Note              string    `bun:"note"`
	Date              time.Time `bun:"date"`
	BranchCode        string    `bun:"branch_code"`
	TransactionID     string    `bun:"transaction_id"`
	IdempotencyKey    string    `bun:"idempotency_key,nullzero"`
	CreatedBy         string    `bun:"created_by,nullzero"`
}

func newMovementColumns(m entity.StockMovement) MovementColumns {
	return MovementColumns{
		ID:                m.ID,
		EquipmentStockID:  m.EquipmentStockID,
		Operation:         string(m.Operation),
		Quantity:          m.Quantity,
		AvailableQuantity: m.AvailableQuantity,
		ResultingQuantity: m.ResultingQuantity,
		ReportedQuantity:  m.ReportedQuantity,
		Note:              m.Note,
		Date:              m.Date,
		BranchCode:        m.BranchCode,
		TransactionID:     m.TransactionID,
		IdempotencyKey:    m.IdempotencyKey,
		CreatedBy:         m.CreatedBy,
	}
}

func (c MovementColumns) movement() entity.StockMovement {
	return entity.StockMovement{
		ID:                c.ID,
		EquipmentStockID:  c.EquipmentStockID,
		Operation:         entity.Operation(c.Operation),
		Quantity:          c.Quantity,
		AvailableQuantity: c.AvailableQuantity,
		ResultingQuantity: c.ResultingQuantity,
		ReportedQuantity:  c.ReportedQuantity,
		Note:              c.Note,
		Date:              c.Date,
		BranchCode:        c.BranchCode,
		TransactionID:     c.TransactionID,
		IdempotencyKey:    c.IdempotencyKey,
		CreatedBy:         c.CreatedBy,
	}
}

type equipmentStockHistoryModel struct {
	bun.BaseModel `bun:"table:equipment_stock_history"`
	MovementColumns
}

type clientProjectEquipmentStockModel struct {
	bun.BaseModel `bun:"table:client_project_equipment_stock"`
	MovementColumns

	ClientProjectID int64  `bun:"client_project_id"`
	EquipmentID     int64  `bun:"equipment_id"`
	ProjectNumber   string `bun:"project_number"`
}
