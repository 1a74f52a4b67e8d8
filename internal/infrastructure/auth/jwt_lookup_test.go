package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/infrastructure/auth"
	"github.com/tharaka19/CCIMS-sub000/pkg/jwt"
)

const secret = "test-secret"

func TestJWTUserLookup_TokenValido(t *testing.T) {
	token, err := jwt.Generate(secret, "7", "BR01", "ADMIN", "cims", 5)
	require.NoError(t, err)

	user, err := auth.NewJWTUserLookup(secret).ByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "7", user.ID)
	assert.Equal(t, "BR01", user.BranchCode)
	assert.Equal(t, "ADMIN", user.RoleID)
	assert.True(t, user.IsActive())
}

func TestJWTUserLookup_Rechazos(t *testing.T) {
	otro, err := jwt.Generate("otro-secreto", "7", "BR01", "ADMIN", "cims", 5)
	require.NoError(t, err)
	vencido, err := jwt.Generate(secret, "7", "BR01", "ADMIN", "cims", -1)
	require.NoError(t, err)
	sinSucursal, err := jwt.Generate(secret, "7", "", "ADMIN", "cims", 5)
	require.NoError(t, err)

	lookup := auth.NewJWTUserLookup(secret)
	for name, token := range map[string]string{
		"firma incorrecta": otro,
		"vencido":          vencido,
		"sin sucursal":     sinSucursal,
		"basura":           "no-es-un-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := lookup.ByToken(context.Background(), token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
