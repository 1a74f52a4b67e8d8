package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
	"github.com/tharaka19/CCIMS-sub000/pkg/jwt"
)

var _ ports.UserLookup = (*JWTUserLookup)(nil)

// JWTUserLookup resuelve el usuario desde los claims de un JWT HS256 firmado con el secreto compartido.
// Se usa en desarrollo y en despliegues sin servicio de usuarios.
type JWTUserLookup struct {
	secret string
}

// NewJWTUserLookup construye el lookup con el secreto de firma.
func NewJWTUserLookup(secret string) *JWTUserLookup {
	return &JWTUserLookup{secret: secret}
}

// ByToken valida el token; firma incorrecta, expirado o sin sucursal → ErrUnauthorized.
func (l *JWTUserLookup) ByToken(_ context.Context, token string) (*entity.UserAccount, error) {
	claims, err := jwt.Parse(l.secret, strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.BranchCode == "" {
		return nil, fmt.Errorf("%w: token sin sucursal", domain.ErrUnauthorized)
	}
	return &entity.UserAccount{
		ID:         claims.UserID,
		BranchCode: claims.BranchCode,
		RoleID:     claims.Role,
		Status:     entity.StatusActive,
	}, nil
}
