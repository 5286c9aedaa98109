package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/splittab/internal/domain"
)

// MockTransactionRepository is a mock implementation of
// TransactionRepository backed by an in-memory map. Set the *Func
// fields to override individual methods.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	order        []string

	CreateFunc     func(ctx context.Context, tx *domain.Transaction) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Transaction, error)
	UpdateFunc     func(ctx context.Context, tx *domain.Transaction) error
	DeleteFunc     func(ctx context.Context, id string) error
	ListAllFunc    func(ctx context.Context) ([]*domain.Transaction, error)
	ListByPairFunc func(ctx context.Context, a, b domain.Member) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[tx.ID] = tx
	m.order = append(m.order, tx.ID)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tx, ok := m.transactions[id]; ok {
		return tx, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[tx.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.transactions[tx.ID] = tx
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockTransactionRepository) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	txs := make([]*domain.Transaction, 0, len(m.order))
	for _, id := range m.order {
		txs = append(txs, m.transactions[id])
	}
	return txs, nil
}

func (m *MockTransactionRepository) ListByPair(ctx context.Context, a, b domain.Member) ([]*domain.Transaction, error) {
	if m.ListByPairFunc != nil {
		return m.ListByPairFunc(ctx, a, b)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txs []*domain.Transaction
	for _, id := range m.order {
		if tx := m.transactions[id]; tx.Involves(a, b) {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

// MockIDGenerator is a mock implementation of IDGenerator. Without an
// override it returns a deterministic incrementing sequence.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%03d", m.counter)
}

// MockRetrier is a pass-through Retrier.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
