package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tharaka19/CCIMS-sub000/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeAppendOnlyLedger    = "55000" // lanzado por el trigger del libro de movimientos
)

// mapError traduce violaciones de constraints a errores de dominio; el resto se envuelve con op.
func mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, domain.ErrDuplicate, pgErr.ConstraintName)
		case codeForeignKeyViolation, codeCheckViolation, codeAppendOnlyLedger:
			return fmt.Errorf("%s: %w (%s)", op, domain.ErrConflict, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
