package stock

import (
	"fmt"

	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

// Evaluate combina las reglas del dominio sobre la cantidad autoritativa:
// snapshot del cliente → validación de la operación → cálculo.
// reported es la cantidad que el cliente dice ver; si viene y no coincide, el movimiento se
// calculó sobre un estado viejo y se rechaza con domain.ErrConflict.
func (r Rules) Evaluate(op entity.Operation, delta, available int, reported *int) (int, error) {
	if reported != nil && *reported != available {
		return 0, domain.NewError(domain.ErrConflict,
			fmt.Sprintf("Available quantity has changed (reported %d, current %d).", *reported, available))
	}
	if msgs := r.Validate(op, delta, available); len(msgs) > 0 {
		return 0, domain.NewValidationError(msgs...)
	}
	return r.Apply(op, delta, available), nil
}
