package ports

import (
	"context"

	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

// UserLookup resuelve el usuario (y su sucursal) a partir del bearer token de la petición.
// Token inválido o desconocido → domain.ErrUnauthorized; servicio caído → domain.ErrUpstreamUnavailable.
type UserLookup interface {
	ByToken(ctx context.Context, token string) (*entity.UserAccount, error)
}
