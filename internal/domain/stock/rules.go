// Package stock contiene el motor de conciliación de cantidades: reglas por dominio que
// validan una operación (ADD, REMOVE, DEFECT) contra la cantidad disponible y calculan la nueva.
// Funciones puras, sin E/S.
package stock

import (
	"math"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

// MaxQuantity límite de delta y de cantidad disponible (columnas INTEGER).
const MaxQuantity = math.MaxInt32

// Mensajes de validación devueltos al cliente.
const (
	MsgEmptyOperation        = "Please select a operation."
	MsgEmptyQuantity         = "Please enter equipment quantity."
	MsgInvalidQuantity       = "Invalid equipment quantity."
	MsgInvalidAddQuantity    = "Invalid add equipment quantity."
	MsgInvalidRemoveQuantity = "Invalid remove equipment quantity."
	MsgInvalidDefectQuantity = "Invalid defect equipment quantity."
)

// Effect describe cómo una operación mueve la cantidad disponible dentro de un dominio.
type Effect struct {
	Sign      int    // +1 suma el delta, -1 lo resta
	Guarded   bool   // exige disponible >= delta
	Violation string // mensaje cuando la guarda falla
}

// Rules es la tabla operación → efecto de un dominio de stock.
// Una operación ausente de la tabla se rechaza como "sin operación".
type Rules struct {
	name    string
	effects map[entity.Operation]Effect
}

// EquipmentRules reglas del historial de stock de equipos:
// ADD suma sin guarda; REMOVE y DEFECT restan y no pueden dejar el disponible en negativo.
func EquipmentRules() Rules {
	return Rules{
		name: "equipment-stock-history",
		effects: map[entity.Operation]Effect{
			entity.OperationAdd:    {Sign: +1},
			entity.OperationRemove: {Sign: -1, Guarded: true, Violation: MsgInvalidRemoveQuantity},
			entity.OperationDefect: {Sign: -1, Guarded: true, Violation: MsgInvalidDefectQuantity},
		},
	}
}

// ClientProjectRules reglas de stock de equipos de proyecto. El signo está invertido respecto a
// EquipmentRules: ADD asigna equipos al proyecto (baja el disponible del almacén) y REMOVE los
// devuelve. DEFECT no aplica en este dominio.
func ClientProjectRules() Rules {
	return Rules{
		name: "client-project-equipment-stock",
		effects: map[entity.Operation]Effect{
			entity.OperationAdd:    {Sign: -1, Guarded: true, Violation: MsgInvalidAddQuantity},
			entity.OperationRemove: {Sign: +1, Guarded: true, Violation: MsgInvalidRemoveQuantity},
		},
	}
}

// Name identifica el dominio (para logs).
func (r Rules) Name() string { return r.name }

// Effect devuelve el efecto registrado para op.
func (r Rules) Effect(op entity.Operation) (Effect, bool) {
	e, ok := r.effects[op]
	return e, ok
}

// Validate decide si op es legal con la cantidad disponible dada.
// Devuelve nil o exactamente un mensaje.
func (r Rules) Validate(op entity.Operation, delta, available int) []string {
	e, ok := r.Effect(op)
	if !ok {
		return []string{MsgEmptyOperation}
	}
	if e.Guarded && available < delta {
		return []string{e.Violation}
	}
	if e.Sign > 0 && available > MaxQuantity-delta {
		return []string{MsgInvalidQuantity}
	}
	return nil
}

// Apply calcula la nueva cantidad disponible. Solo debe llamarse después de Validate.
func (r Rules) Apply(op entity.Operation, delta, available int) int {
	e, ok := r.Effect(op)
	if !ok {
		return available
	}
	return available + e.Sign*delta
}

// ValidateFields revisa presencia de la operación y del delta (1..MaxQuantity) antes de las reglas del dominio.
func ValidateFields(op entity.Operation, delta *int) []string {
	switch {
	case op == entity.OperationNone || op == "":
		return []string{MsgEmptyOperation}
	case delta == nil:
		return []string{MsgEmptyQuantity}
	case *delta <= 0 || *delta > MaxQuantity:
		return []string{MsgInvalidQuantity}
	}
	return nil
}
