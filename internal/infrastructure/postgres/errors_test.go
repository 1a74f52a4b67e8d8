package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/tharaka19/CCIMS-sub000/internal/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{codeUniqueViolation, domain.ErrDuplicate},
		{codeForeignKeyViolation, domain.ErrConflict},
		{codeCheckViolation, domain.ErrConflict},
		{codeAppendOnlyLedger, domain.ErrConflict},
	}
	for _, tc := range cases {
		err := mapError("op", &pgconn.PgError{Code: tc.code})
		assert.True(t, errors.Is(err, tc.want), "código %s", tc.code)
	}

	other := mapError("op", errors.New("timeout"))
	assert.False(t, domain.Classified(other))
	assert.Contains(t, other.Error(), "op: timeout")
}
