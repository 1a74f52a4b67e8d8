package project_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/application/project"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/stock"
	"github.com/tharaka19/CCIMS-sub000/internal/infrastructure/remote"
)

const (
	branch      = "BR01"
	stockID     = int64(77)
	equipmentID = int64(2)
	projectID   = int64(900)
)

var testUser = &entity.UserAccount{ID: "5", BranchCode: branch, Status: entity.StatusActive}

func intPtr(v int) *int    { return &v }
func idPtr(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeEquipment emula el servicio de equipos: lectura y compare-and-set de la cantidad.
type fakeEquipment struct {
	mu        sync.Mutex
	stock     entity.EquipmentStock
	readErr   error
	failAfter  int // falla las propagaciones a partir de esta llamada (0 = nunca)
	rejectCall int // esa llamada falla sin aplicar el cambio
	loseCall   int // esa llamada aplica el cambio y pierde la respuesta
	calls      int
	transIDs  []string
}

func (f *fakeEquipment) GetStock(ctx context.Context, id int64) (*entity.EquipmentStock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	if id != f.stock.ID {
		return nil, domain.NewError(domain.ErrNotFound, "Equipment stock not found.")
	}
	s := f.stock
	return &s, nil
}

func (f *fakeEquipment) Propagate(ctx context.Context, id int64, expected, next int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.transIDs = append(f.transIDs, ports.TransactionIDFromContext(ctx))
	if (f.failAfter > 0 && f.calls >= f.failAfter) || f.calls == f.rejectCall {
		return domain.ErrUpstreamUnavailable
	}
	if f.stock.AvailableQuantity != expected {
		return domain.NewError(domain.ErrConflict, "Available quantity has changed.")
	}
	f.stock.AvailableQuantity = next
	if f.calls == f.loseCall {
		return domain.ErrUpstreamUnavailable
	}
	return nil
}

func (f *fakeEquipment) quantity() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock.AvailableQuantity
}

type fakeRepo struct {
	mu        sync.Mutex
	items     []entity.ClientProjectEquipmentStock
	createErr error
}

func (r *fakeRepo) Create(_ context.Context, m *entity.ClientProjectEquipmentStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, o := range r.items {
		if m.IdempotencyKey != "" && o.BranchCode == m.BranchCode && o.IdempotencyKey == m.IdempotencyKey {
			return domain.ErrDuplicate
		}
	}
	r.items = append(r.items, *m)
	return nil
}

func (r *fakeRepo) GetByIdempotencyKey(_ context.Context, branchCode, key string) (*entity.ClientProjectEquipmentStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.items {
		if m.BranchCode == branchCode && m.IdempotencyKey == key {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListByClientProject(_ context.Context, branchCode string, clientProjectID int64) ([]*entity.ClientProjectEquipmentStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ClientProjectEquipmentStock
	for _, m := range r.items {
		if m.BranchCode == branchCode && m.ClientProjectID == clientProjectID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *fakeRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type seqIDs struct{ n atomic.Int64 }

func (s *seqIDs) NextID() int64 { return 5000 + s.n.Add(1) }

func setup(qty int) (*project.ClientProjectStockUseCase, *fakeEquipment, *fakeRepo) {
	eq := &fakeEquipment{stock: entity.EquipmentStock{ID: stockID, EquipmentID: equipmentID, BranchCode: branch, AvailableQuantity: qty, Status: entity.StatusActive}}
	repo := &fakeRepo{}
	uc := project.NewClientProjectStockUseCase(repo, eq, eq, &seqIDs{}, zerolog.Nop())
	return uc, eq, repo
}

func movement(op string, qty int) dto.ClientProjectEquipmentStockRequest {
	return dto.ClientProjectEquipmentStockRequest{
		Operation:         op,
		EquipmentQuantity: intPtr(qty),
		EquipmentStockID:  idPtr(stockID),
		EquipmentID:       idPtr(equipmentID),
		ClientProjectID:   idPtr(projectID),
		ProjectNumber:     "PRJ-2024-01",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios concretos (signo invertido)
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_AddInsuficienteRechaza(t *testing.T) {
	uc, eq, repo := setup(2)

	_, _, err := uc.Record(context.Background(), testUser, movement("ADD", 5), "")
	require.Error(t, err)
	assert.Equal(t, []string{stock.MsgInvalidAddQuantity}, domain.ValidationMessages(err))
	assert.Equal(t, 2, eq.quantity())
	assert.Zero(t, eq.calls, "no debe propagarse")
	assert.Zero(t, repo.len())
}

func TestRecord_RemoveAumentaDisponible(t *testing.T) {
	uc, eq, repo := setup(5)

	out, created, err := uc.Record(context.Background(), testUser, movement("REMOVE", 3), "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 5, out.AvailableQuantity)
	assert.Equal(t, 8, out.ResultingQuantity)
	assert.Equal(t, projectID, out.ClientProjectID)
	assert.Equal(t, "PRJ-2024-01", out.ProjectNumber)
	assert.Equal(t, 8, eq.quantity())
	assert.Equal(t, 1, repo.len())
	assert.Equal(t, []string{out.TransactionID}, eq.transIDs, "la propagación lleva el id de transacción")
}

func TestRecord_AddConsumeDisponible(t *testing.T) {
	uc, eq, _ := setup(10)

	out, _, err := uc.Record(context.Background(), testUser, movement("add", 3), "")
	require.NoError(t, err)
	assert.Equal(t, 7, out.ResultingQuantity)
	assert.Equal(t, 7, eq.quantity())
}

func TestRecord_DefectNoAplica(t *testing.T) {
	uc, eq, _ := setup(10)

	_, _, err := uc.Record(context.Background(), testUser, movement("DEFECT", 1), "")
	assert.Equal(t, []string{stock.MsgEmptyOperation}, domain.ValidationMessages(err))
	assert.Equal(t, 10, eq.quantity())
}

func TestRecord_CamposObligatorios(t *testing.T) {
	uc, eq, _ := setup(10)

	in := movement("ADD", 1)
	in.ClientProjectID = nil
	_, _, err := uc.Record(context.Background(), testUser, in, "")
	assert.Equal(t, []string{project.MsgEmptyClientProject}, domain.ValidationMessages(err))

	in = movement("ADD", 1)
	in.EquipmentID = nil
	_, _, err = uc.Record(context.Background(), testUser, in, "")
	assert.Equal(t, []string{project.MsgEmptyEquipment}, domain.ValidationMessages(err))

	_, _, err = uc.Record(context.Background(), testUser, movement("", 1), "")
	assert.Equal(t, []string{stock.MsgEmptyOperation}, domain.ValidationMessages(err))

	assert.Zero(t, eq.calls)
}

func TestRecord_EquipoNoCoincide(t *testing.T) {
	uc, eq, _ := setup(10)
	in := movement("ADD", 1)
	in.EquipmentID = idPtr(999)

	_, _, err := uc.Record(context.Background(), testUser, in, "")
	assert.Equal(t, []string{project.MsgEquipmentMismatch}, domain.ValidationMessages(err))
	assert.Zero(t, eq.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos de colaboradores y compensación
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_ServicioDeEquiposCaido(t *testing.T) {
	uc, eq, repo := setup(10)
	eq.readErr = domain.ErrUpstreamUnavailable

	_, _, err := uc.Record(context.Background(), testUser, movement("ADD", 1), "")
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
	assert.Zero(t, repo.len())
}

func TestRecord_PropagacionSinAplicarNoDejaEfecto(t *testing.T) {
	uc, eq, repo := setup(10)
	eq.rejectCall = 1

	_, _, err := uc.Record(context.Background(), testUser, movement("ADD", 4), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
	assert.False(t, errors.Is(err, domain.ErrPartiallyApplied))
	assert.Equal(t, 10, eq.quantity())
	assert.Equal(t, 2, eq.calls, "la reversión confirma que el cambio no se aplicó")
	assert.Zero(t, repo.len())
}

func TestRecord_PropagacionAplicadaSinRespuestaSeRevierte(t *testing.T) {
	uc, eq, repo := setup(10)
	eq.loseCall = 1

	_, _, err := uc.Record(context.Background(), testUser, movement("ADD", 4), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
	assert.False(t, errors.Is(err, domain.ErrPartiallyApplied))
	assert.Equal(t, 10, eq.quantity(), "la cantidad aplicada sin respuesta debe revertirse")
	assert.Equal(t, 2, eq.calls)
	assert.Zero(t, repo.len())
}

func TestRecord_PropagacionSinRespuestaNiReversionEsParcial(t *testing.T) {
	uc, eq, repo := setup(10)
	eq.loseCall = 1
	eq.failAfter = 2

	_, _, err := uc.Record(context.Background(), testUser, movement("ADD", 4), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPartiallyApplied))
	assert.Equal(t, 6, eq.quantity())
	assert.Zero(t, repo.len())
}

// Servicio de equipos real por HTTP: aplica el compare-and-set y responde después del timeout del cliente.
func TestRecord_TimeoutDelServicioDeEquiposRevierte(t *testing.T) {
	var (
		mu   sync.Mutex
		qty  = 10
		puts int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		mu.Lock()
		if r.Method == http.MethodGet {
			body := dto.ResponseDTO{Code: dto.CodeSuccess, Content: dto.EquipmentStockResponse{
				ID: stockID, EquipmentID: equipmentID, BranchCode: branch, AvailableQuantity: qty, Status: entity.StatusActive,
			}}
			mu.Unlock()
			_ = json.NewEncoder(w).Encode(body)
			return
		}
		var in dto.UpdateQuantityRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		puts++
		first := puts == 1
		if in.ExpectedQuantity == nil || in.AvailableQuantity == nil || *in.ExpectedQuantity != qty {
			mu.Unlock()
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(dto.ResponseDTO{Code: dto.CodeConflict, Message: "Available quantity has changed."})
			return
		}
		qty = *in.AvailableQuantity
		mu.Unlock()
		if first {
			time.Sleep(300 * time.Millisecond)
		}
		_ = json.NewEncoder(w).Encode(dto.ResponseDTO{Code: dto.CodeSuccess, Message: "Updated successfully."})
	}))
	defer srv.Close()

	eq := remote.NewEquipmentService(srv.URL, 100*time.Millisecond)
	repo := &fakeRepo{}
	uc := project.NewClientProjectStockUseCase(repo, eq, eq, &seqIDs{}, zerolog.Nop())

	_, _, err := uc.Record(context.Background(), testUser, movement("ADD", 4), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, qty, "el stock remoto vuelve a su valor original")
	assert.Equal(t, 2, puts)
	assert.Zero(t, repo.len())
}

func TestRecord_StockDeOtraSucursal(t *testing.T) {
	uc, eq, _ := setup(10)
	eq.stock.BranchCode = "BR99"

	_, _, err := uc.Record(context.Background(), testUser, movement("ADD", 1), "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecord_SnapshotViejoEsConflicto(t *testing.T) {
	uc, eq, repo := setup(10)
	in := movement("ADD", 1)
	in.AvailableQuantity = intPtr(9)

	_, _, err := uc.Record(context.Background(), testUser, in, "")
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Zero(t, eq.calls)
	assert.Zero(t, repo.len())
}

func TestRecord_FalloLocalCompensa(t *testing.T) {
	uc, eq, repo := setup(10)
	repo.createErr = errors.New("connection refused")

	_, _, err := uc.Record(context.Background(), testUser, movement("ADD", 4), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.False(t, errors.Is(err, domain.ErrPartiallyApplied))
	assert.Equal(t, 10, eq.quantity(), "la compensación debe devolver la cantidad original")
	assert.Equal(t, 2, eq.calls)
}

func TestRecord_CompensacionFallidaEsParcial(t *testing.T) {
	uc, eq, repo := setup(10)
	repo.createErr = errors.New("connection refused")
	eq.failAfter = 2

	_, _, err := uc.Record(context.Background(), testUser, movement("ADD", 4), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPartiallyApplied))
	assert.Equal(t, 6, eq.quantity())
}

func TestRecord_ClaveIdempotente(t *testing.T) {
	uc, eq, repo := setup(10)

	first, created, err := uc.Record(context.Background(), testUser, movement("ADD", 4), "k-1")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := uc.Record(context.Background(), testUser, movement("ADD", 4), "k-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 6, eq.quantity())
	assert.Equal(t, 1, repo.len())
	assert.Equal(t, 1, eq.calls)
}

func TestListByClientProject(t *testing.T) {
	uc, _, _ := setup(10)

	_, _, err := uc.Record(context.Background(), testUser, movement("ADD", 4), "")
	require.NoError(t, err)
	_, _, err = uc.Record(context.Background(), testUser, movement("REMOVE", 1), "")
	require.NoError(t, err)

	list, err := uc.ListByClientProject(context.Background(), branch, projectID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 7, list[1].ResultingQuantity)

	none, err := uc.ListByClientProject(context.Background(), "BR99", projectID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
