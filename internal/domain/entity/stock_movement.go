package entity

import "time"

// Operation es el tipo de movimiento sobre la cantidad disponible.
type Operation string

// Operaciones de movimiento de stock. OperationNone representa "sin operación".
const (
	OperationNone   Operation = "NONE"
	OperationAdd    Operation = "ADD"
	OperationDefect Operation = "DEFECT"
	OperationRemove Operation = "REMOVE"
)

// ParseOperation convierte el texto recibido; cualquier valor desconocido es OperationNone.
func ParseOperation(s string) Operation {
	switch op := Operation(s); op {
	case OperationAdd, OperationDefect, OperationRemove:
		return op
	default:
		return OperationNone
	}
}

// StockMovement es el registro inmutable de un cambio de cantidad (libro de solo inserción).
type StockMovement struct {
	ID                int64
	EquipmentStockID  int64
	Operation         Operation
	Quantity          int  // delta siempre positivo
	AvailableQuantity int  // cantidad autoritativa antes del movimiento
	ResultingQuantity int  // cantidad después del movimiento
	ReportedQuantity  *int // cantidad que el cliente declaró ver (puede faltar)
	Note              string
	Date              time.Time
	BranchCode        string
	TransactionID     string
	IdempotencyKey    string
	CreatedBy         string
}

// EquipmentStockHistory movimiento del libro de stock de equipos (módulo equipment).
type EquipmentStockHistory struct {
	StockMovement
}

// ClientProjectEquipmentStock movimiento de equipos asignados a un proyecto de cliente (módulo project).
// EquipmentStockID referencia un registro que vive en el servicio de equipos.
type ClientProjectEquipmentStock struct {
	StockMovement
	ClientProjectID int64
	EquipmentID     int64
	ProjectNumber   string
}
