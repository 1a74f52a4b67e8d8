package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

var _ ports.UserLookup = (*UserService)(nil)

// UserService adaptador de UserLookup contra el servicio de usuarios:
// GET {baseURL}/user/userAccount/getByToken/{token}.
type UserService struct {
	client
}

// NewUserService construye el adaptador. timeout <= 0 usa 10 s.
func NewUserService(baseURL string, timeout time.Duration) *UserService {
	return &UserService{client: newClient("user service", baseURL, timeout)}
}

// ByToken resuelve la cuenta del token. Token desconocido o cuenta inactiva → ErrUnauthorized.
func (s *UserService) ByToken(ctx context.Context, token string) (*entity.UserAccount, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	var out dto.UserAccountDTO
	err := s.call(ctx, http.MethodGet, "/user/userAccount/getByToken/"+url.PathEscape(token), token, nil, &out)
	if err != nil {
		// Para el llamador un token que el servicio no reconoce es un token inválido.
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
		}
		return nil, err
	}

	user := &entity.UserAccount{
		ID:         out.ID.String(),
		UserName:   out.UserName,
		BranchCode: strings.TrimSpace(out.BranchCode),
		RoleID:     out.UserRoleID.String(),
		Status:     out.Status,
	}
	if user.BranchCode == "" || !user.IsActive() {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
