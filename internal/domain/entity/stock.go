package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Estados de un registro de stock.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// EquipmentStock es el contador autoritativo de cantidad disponible de un equipo en una sucursal.
// AvailableQuantity nunca es negativo; solo cambia por movimientos validados.
type EquipmentStock struct {
	ID                  int64
	StockNumber         string
	PurchasePrice       decimal.Decimal
	AvailableQuantity   int
	EquipmentTypeID     int64
	EquipmentID         int64
	EquipmentSupplierID int64
	BranchCode          string
	Status              string
	Version             int64 // se incrementa en cada cambio de cantidad
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsActive indica si el stock está habilitado para operar.
func (s *EquipmentStock) IsActive() bool {
	return s.Status == StatusActive
}

// StockNumberKey normaliza el número de stock para la restricción de unicidad por sucursal
// (sin distinción de mayúsculas, espacios externos ignorados).
func StockNumberKey(stockNumber string) string {
	return cases.Fold().String(strings.TrimSpace(stockNumber))
}

// ValidStatus indica si el estado es uno de los admitidos.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
