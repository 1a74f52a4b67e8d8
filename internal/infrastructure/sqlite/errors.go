package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/tharaka19/CCIMS-sub000/internal/domain"
)

// mapError traduce violaciones de constraints (incluido RAISE(ABORT) de triggers) a errores de dominio.
func mapError(op string, err error) error {
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
		switch sqlErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s: %w (%v)", op, domain.ErrDuplicate, sqlErr)
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintTrigger:
			return fmt.Errorf("%s: %w (%v)", op, domain.ErrConflict, sqlErr)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
