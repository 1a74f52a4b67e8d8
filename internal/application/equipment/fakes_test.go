package equipment_test

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/repository"
)

// memStore base de datos en memoria; Run serializa las transacciones y revierte si fn falla.
type memStore struct {
	mu          sync.Mutex
	stocks      map[int64]entity.EquipmentStock
	history     []entity.EquipmentStockHistory
	historyErr  error // si no es nil, la inserción en el libro falla
	deleteErr   error
	transaction int
}

func newMemStore(stocks ...entity.EquipmentStock) *memStore {
	m := &memStore{stocks: map[int64]entity.EquipmentStock{}}
	for _, s := range stocks {
		m.stocks[s.ID] = s
	}
	return m
}

func (m *memStore) stock(id int64) entity.EquipmentStock {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stocks[id]
}

func (m *memStore) historyLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

func (m *memStore) Run(ctx context.Context, fn func(repository.EquipmentStockRepository, repository.EquipmentStockHistoryRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transaction++

	saved := make(map[int64]entity.EquipmentStock, len(m.stocks))
	for k, v := range m.stocks {
		saved[k] = v
	}
	savedHistory := len(m.history)

	if err := fn(&memStockRepo{m: m, inTx: true}, &memHistoryRepo{m: m, inTx: true}); err != nil {
		m.stocks = saved
		m.history = m.history[:savedHistory]
		return err
	}
	return nil
}

type memStockRepo struct {
	m    *memStore
	inTx bool
}

func (r *memStockRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.m.mu.Lock()
	return r.m.mu.Unlock
}

func (r *memStockRepo) Create(_ context.Context, s *entity.EquipmentStock) error {
	defer r.lock()()
	for _, o := range r.m.stocks {
		if o.BranchCode == s.BranchCode && entity.StockNumberKey(o.StockNumber) == entity.StockNumberKey(s.StockNumber) {
			return domain.ErrDuplicate
		}
	}
	r.m.stocks[s.ID] = *s
	return nil
}

func (r *memStockRepo) Update(_ context.Context, s *entity.EquipmentStock) error {
	defer r.lock()()
	cur, ok := r.m.stocks[s.ID]
	if !ok {
		return nil
	}
	next := *s
	next.AvailableQuantity = cur.AvailableQuantity
	next.Version = cur.Version
	r.m.stocks[s.ID] = next
	return nil
}

func (r *memStockRepo) GetByID(_ context.Context, id int64) (*entity.EquipmentStock, error) {
	defer r.lock()()
	s, ok := r.m.stocks[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, id int64) (*entity.EquipmentStock, error) {
	return r.GetByID(ctx, id)
}

func (r *memStockRepo) GetByEquipmentID(_ context.Context, branchCode string, equipmentID int64) (*entity.EquipmentStock, error) {
	defer r.lock()()
	for _, s := range r.m.stocks {
		if s.BranchCode == branchCode && s.EquipmentID == equipmentID {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *memStockRepo) GetByStockNumber(_ context.Context, branchCode, stockNumber string) (*entity.EquipmentStock, error) {
	defer r.lock()()
	for _, s := range r.m.stocks {
		if s.BranchCode == branchCode && entity.StockNumberKey(s.StockNumber) == entity.StockNumberKey(stockNumber) {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *memStockRepo) ListByBranch(_ context.Context, branchCode string, onlyActive bool) ([]*entity.EquipmentStock, error) {
	defer r.lock()()
	var out []*entity.EquipmentStock
	for _, s := range r.m.stocks {
		if s.BranchCode != branchCode || (onlyActive && !s.IsActive()) {
			continue
		}
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memStockRepo) CompareAndSetQuantity(_ context.Context, id int64, expected, next int) (bool, error) {
	defer r.lock()()
	s, ok := r.m.stocks[id]
	if !ok || s.AvailableQuantity != expected {
		return false, nil
	}
	s.AvailableQuantity = next
	s.Version++
	r.m.stocks[id] = s
	return true, nil
}

func (r *memStockRepo) Delete(_ context.Context, id int64) error {
	defer r.lock()()
	if r.m.deleteErr != nil {
		return r.m.deleteErr
	}
	delete(r.m.stocks, id)
	return nil
}

type memHistoryRepo struct {
	m    *memStore
	inTx bool
}

func (r *memHistoryRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.m.mu.Lock()
	return r.m.mu.Unlock
}

func (r *memHistoryRepo) Create(_ context.Context, h *entity.EquipmentStockHistory) error {
	defer r.lock()()
	if r.m.historyErr != nil {
		return r.m.historyErr
	}
	for _, o := range r.m.history {
		if h.IdempotencyKey != "" && o.BranchCode == h.BranchCode && o.IdempotencyKey == h.IdempotencyKey {
			return domain.ErrDuplicate
		}
	}
	r.m.history = append(r.m.history, *h)
	return nil
}

func (r *memHistoryRepo) GetByIdempotencyKey(_ context.Context, branchCode, key string) (*entity.EquipmentStockHistory, error) {
	defer r.lock()()
	for _, h := range r.m.history {
		if h.BranchCode == branchCode && h.IdempotencyKey == key {
			return &h, nil
		}
	}
	return nil, nil
}

func (r *memHistoryRepo) ListByStock(_ context.Context, branchCode string, stockID int64) ([]*entity.EquipmentStockHistory, error) {
	defer r.lock()()
	var out []*entity.EquipmentStockHistory
	for _, h := range r.m.history {
		if h.BranchCode == branchCode && h.EquipmentStockID == stockID {
			h := h
			out = append(out, &h)
		}
	}
	return out, nil
}

type seqIDs struct{ n atomic.Int64 }

func (s *seqIDs) NextID() int64 { return 1000 + s.n.Add(1) }
