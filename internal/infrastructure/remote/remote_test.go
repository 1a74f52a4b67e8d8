package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/infrastructure/remote"
)

func writeJSON(w http.ResponseWriter, status int, body dto.ResponseDTO) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Servicio de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUserService_ByToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/userAccount/getByToken/tok-1", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, dto.ResponseDTO{Code: dto.CodeSuccess, Content: map[string]any{
			"id": 7, "userName": "ana", "branchCode": "BR01", "userRoleId": 2, "status": "ACTIVE",
		}})
	}))
	defer srv.Close()

	user, err := remote.NewUserService(srv.URL, time.Second).ByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "7", user.ID)
	assert.Equal(t, "BR01", user.BranchCode)
	assert.Equal(t, "2", user.RoleID)
}

func TestUserService_TokenDesconocido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dto.ResponseDTO{Code: dto.CodeNoData, Message: "No data found"})
	}))
	defer srv.Close()

	_, err := remote.NewUserService(srv.URL, time.Second).ByToken(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserService_CuentaInactiva(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dto.ResponseDTO{Code: dto.CodeSuccess, Content: map[string]any{
			"id": 7, "branchCode": "BR01", "status": "INACTIVE",
		}})
	}))
	defer srv.Close()

	_, err := remote.NewUserService(srv.URL, time.Second).ByToken(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserService_TokenVacio(t *testing.T) {
	_, err := remote.NewUserService("http://127.0.0.1:1", time.Second).ByToken(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserService_Caido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := remote.NewUserService(srv.URL, time.Second).ByToken(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	srv.Close()
	_, err = remote.NewUserService(srv.URL, time.Second).ByToken(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Servicio de equipos
// ──────────────────────────────────────────────────────────────────────────────

func TestEquipmentService_GetStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/equipment/equipmentStock/getById/11", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "tx-9", r.Header.Get(remote.HeaderTransactionID))
		writeJSON(w, http.StatusOK, dto.ResponseDTO{Code: dto.CodeSuccess, Content: dto.EquipmentStockResponse{
			ID: 11, EquipmentID: 5, AvailableQuantity: 8, BranchCode: "BR01", Status: "ACTIVE",
		}})
	}))
	defer srv.Close()

	ctx := ports.ContextWithTransactionID(ports.ContextWithToken(context.Background(), "tok"), "tx-9")
	s, err := remote.NewEquipmentService(srv.URL, time.Second).GetStock(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 8, s.AvailableQuantity)
	assert.Equal(t, int64(5), s.EquipmentID)
	assert.Equal(t, "BR01", s.BranchCode)
}

func TestEquipmentService_GetStockNoExiste(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, dto.ResponseDTO{Code: dto.CodeNoData, Message: "No data found"})
	}))
	defer srv.Close()

	_, err := remote.NewEquipmentService(srv.URL, time.Second).GetStock(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "No data found", domain.PublicMessage(err))
}

func TestEquipmentService_Propagate(t *testing.T) {
	var got dto.UpdateQuantityRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/equipment/equipmentStock/updateEquipmentQuantity/11", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, dto.ResponseDTO{Code: dto.CodeSuccess, Content: map[string]any{"id": 11}})
	}))
	defer srv.Close()

	err := remote.NewEquipmentService(srv.URL, time.Second).Propagate(context.Background(), 11, 8, 5)
	require.NoError(t, err)
	require.NotNil(t, got.ExpectedQuantity)
	require.NotNil(t, got.AvailableQuantity)
	assert.Equal(t, 8, *got.ExpectedQuantity)
	assert.Equal(t, 5, *got.AvailableQuantity)
}

func TestEquipmentService_PropagateClasificaErrores(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   dto.ResponseDTO
		want   error
	}{
		{"cantidad cambió", http.StatusConflict, dto.ResponseDTO{Code: dto.CodeConflict, Message: "Available quantity has changed."}, domain.ErrConflict},
		{"rechazo", http.StatusUnprocessableEntity, dto.ResponseDTO{Code: dto.CodeRejected, Message: []string{"Invalid equipment quantity."}}, domain.ErrValidation},
		{"no autorizado", http.StatusUnauthorized, dto.ResponseDTO{Code: dto.CodeUnauthorized}, domain.ErrUnauthorized},
		{"error interno", http.StatusInternalServerError, dto.ResponseDTO{Code: dto.CodePersistence}, domain.ErrUpstreamUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tc.status, tc.body)
			}))
			defer srv.Close()

			err := remote.NewEquipmentService(srv.URL, time.Second).Propagate(context.Background(), 1, 1, 0)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEquipmentService_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	err := remote.NewEquipmentService(srv.URL, 50*time.Millisecond).Propagate(context.Background(), 1, 1, 0)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
