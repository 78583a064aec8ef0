package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sproutfi/stash/internal/domain"
)

// MockSavingsRepository is a mock implementation of SavingsRepository. The
// default behavior is a map-backed store whose Update performs the same
// compare-and-swap the real repository does, so concurrency tests exercise
// the version guard for real.
type MockSavingsRepository struct {
	mu    sync.Mutex
	plans map[string]*domain.SavingsPlan

	CreateFunc     func(ctx context.Context, plan *domain.SavingsPlan) error
	FindByIDFunc   func(ctx context.Context, id string) (*domain.SavingsPlan, error)
	ListByUserFunc func(ctx context.Context, userID string, limit, offset int) ([]*domain.SavingsPlan, error)
	UpdateFunc     func(ctx context.Context, plan *domain.SavingsPlan) error
}

func NewMockSavingsRepository() *MockSavingsRepository {
	return &MockSavingsRepository{plans: make(map[string]*domain.SavingsPlan)}
}

func (m *MockSavingsRepository) Create(ctx context.Context, plan *domain.SavingsPlan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, plan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *plan
	m.plans[plan.ID] = &copied
	return nil
}

func (m *MockSavingsRepository) FindByID(ctx context.Context, id string) (*domain.SavingsPlan, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	plan, ok := m.plans[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	copied := *plan
	return &copied, nil
}

func (m *MockSavingsRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.SavingsPlan, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var plans []*domain.SavingsPlan
	for _, plan := range m.plans {
		if plan.UserID == userID {
			copied := *plan
			plans = append(plans, &copied)
		}
	}
	return plans, nil
}

func (m *MockSavingsRepository) Update(ctx context.Context, plan *domain.SavingsPlan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, plan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.plans[plan.ID]
	if !ok {
		return domain.ErrPlanNotFound
	}
	if stored.Version != plan.Version-1 {
		return &domain.ConcurrentWithdrawalError{
			PlanID:          plan.ID,
			ExpectedVersion: plan.Version - 1,
			ActualVersion:   stored.Version,
		}
	}
	copied := *plan
	m.plans[plan.ID] = &copied
	return nil
}

// Seed stores a plan directly, bypassing Create hooks.
func (m *MockSavingsRepository) Seed(plan *domain.SavingsPlan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *plan
	m.plans[plan.ID] = &copied
}

// MockWalletRepository is a mock implementation of WalletRepository with
// atomic map-backed balances.
type MockWalletRepository struct {
	mu      sync.Mutex
	wallets map[string]*domain.Wallet

	FindByUserFunc func(ctx context.Context, userID string) (*domain.Wallet, error)
	CreditFunc     func(ctx context.Context, userID string, amount domain.Money) (domain.Money, error)
	DebitFunc      func(ctx context.Context, userID string, amount domain.Money) (domain.Money, error)
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{wallets: make(map[string]*domain.Wallet)}
}

// Seed stores a wallet directly.
func (m *MockWalletRepository) Seed(wallet *domain.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *wallet
	m.wallets[wallet.UserID] = &copied
}

func (m *MockWalletRepository) FindByUser(ctx context.Context, userID string) (*domain.Wallet, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	wallet, ok := m.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	copied := *wallet
	return &copied, nil
}

func (m *MockWalletRepository) Credit(ctx context.Context, userID string, amount domain.Money) (domain.Money, error) {
	if m.CreditFunc != nil {
		return m.CreditFunc(ctx, userID, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	wallet, ok := m.wallets[userID]
	if !ok {
		return domain.Money{}, domain.ErrWalletNotFound
	}
	balance, err := wallet.Balance.Add(amount)
	if err != nil {
		return domain.Money{}, err
	}
	wallet.Balance = balance
	return balance, nil
}

func (m *MockWalletRepository) Debit(ctx context.Context, userID string, amount domain.Money) (domain.Money, error) {
	if m.DebitFunc != nil {
		return m.DebitFunc(ctx, userID, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	wallet, ok := m.wallets[userID]
	if !ok {
		return domain.Money{}, domain.ErrWalletNotFound
	}
	balance, err := wallet.Balance.Sub(amount)
	if err != nil {
		return domain.Money{}, err
	}
	if balance.IsNegative() {
		return domain.Money{}, domain.ErrInsufficientFunds
	}
	wallet.Balance = balance
	return balance, nil
}

// Balance returns the current balance for assertions.
func (m *MockWalletRepository) Balance(userID string) domain.Money {
	m.mu.Lock()
	defer m.mu.Unlock()
	if wallet, ok := m.wallets[userID]; ok {
		return wallet.Balance
	}
	return domain.Money{}
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.Mutex
	transactions map[string]*domain.Transaction

	SaveFunc   func(ctx context.Context, tx *domain.Transaction) error
	UpdateFunc func(ctx context.Context, tx *domain.Transaction) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{transactions: make(map[string]*domain.Transaction)}
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *domain.Transaction) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *tx
	m.transactions[tx.ID] = &copied
	return nil
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
	copied := *tx
	m.transactions[tx.ID] = &copied
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range m.transactions {
		if tx.Reference == reference {
			copied := *tx
			return &copied, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var txs []*domain.Transaction
	for _, tx := range m.transactions {
		if tx.UserID == userID {
			copied := *tx
			txs = append(txs, &copied)
		}
	}
	return txs, nil
}

// MockWithdrawalRepository is a mock implementation of WithdrawalRepository.
// Period aggregates are configured through the Count/Amount fields or the
// corresponding Funcs; completed records created during a test are counted
// on top of the seeds.
type MockWithdrawalRepository struct {
	mu      sync.Mutex
	records map[string]*domain.WithdrawalRecord

	SeedCount  int
	SeedAmount domain.Money

	CreateFunc                   func(ctx context.Context, w *domain.WithdrawalRecord) error
	UpdateFunc                   func(ctx context.Context, w *domain.WithdrawalRecord) error
	HasPendingWithdrawalsFunc    func(ctx context.Context, planID string) (bool, error)
	GetWithdrawalCountSinceFunc  func(ctx context.Context, userID string, since time.Time) (int, error)
	GetWithdrawalAmountSinceFunc func(ctx context.Context, userID string, since time.Time, currency domain.Currency) (domain.Money, error)
}

func NewMockWithdrawalRepository() *MockWithdrawalRepository {
	return &MockWithdrawalRepository{records: make(map[string]*domain.WithdrawalRecord)}
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, w *domain.WithdrawalRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, w)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *w
	m.records[w.ID] = &copied
	return nil
}

func (m *MockWithdrawalRepository) Update(ctx context.Context, w *domain.WithdrawalRecord) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, w)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[w.ID]; !ok {
		return domain.ErrWithdrawalNotFound
	}
	copied := *w
	m.records[w.ID] = &copied
	return nil
}

func (m *MockWithdrawalRepository) HasPendingWithdrawals(ctx context.Context, planID string) (bool, error) {
	if m.HasPendingWithdrawalsFunc != nil {
		return m.HasPendingWithdrawalsFunc(ctx, planID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.records {
		if record.PlanID == planID && record.Status == domain.WithdrawalStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockWithdrawalRepository) GetWithdrawalCountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	if m.GetWithdrawalCountSinceFunc != nil {
		return m.GetWithdrawalCountSinceFunc(ctx, userID, since)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count := m.SeedCount
	for _, record := range m.records {
		if record.UserID == userID && record.Status == domain.WithdrawalStatusCompleted && !record.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *MockWithdrawalRepository) GetWithdrawalAmountSince(ctx context.Context, userID string, since time.Time, currency domain.Currency) (domain.Money, error) {
	if m.GetWithdrawalAmountSinceFunc != nil {
		return m.GetWithdrawalAmountSinceFunc(ctx, userID, since, currency)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	total := domain.Zero(currency)
	if m.SeedAmount.Currency == currency {
		total = m.SeedAmount
	}
	for _, record := range m.records {
		if record.UserID == userID && record.Status == domain.WithdrawalStatusCompleted &&
			record.Amount.Currency == currency && !record.CreatedAt.Before(since) {
			total, _ = total.Add(record.Amount)
		}
	}
	return total, nil
}

// Record returns a stored withdrawal record for assertions.
func (m *MockWithdrawalRepository) Record(id string) *domain.WithdrawalRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.records[id]; ok {
		copied := *record
		return &copied
	}
	return nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.Mutex
	Events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []*domain.OutboxEvent
	for _, event := range m.Events {
		if !event.Published {
			events = append(events, event)
		}
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, event := range m.Events {
		if event.ID == id {
			event.Published = true
			event.PublishedAt = &publishedAt
			return nil
		}
	}
	return fmt.Errorf("event %s not found", id)
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, event := range m.Events {
		if !event.Published || event.CreatedAt.After(before) {
			kept = append(kept, event)
		}
	}
	m.Events = kept
	return nil
}

// EventTypes lists recorded event types for assertions.
func (m *MockOutboxRepository) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.Events))
	for _, event := range m.Events {
		types = append(types, event.EventType)
	}
	return types
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	Logs []*domain.AuditLog
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AuditLog(nil), m.Logs...), nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var logs []*domain.AuditLog
	for _, log := range m.Logs {
		if log.ResourceType == resourceType && log.ResourceID == resourceID {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User

	GetByIDFunc func(ctx context.Context, id string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// Seed stores a user directly.
func (m *MockUserRepository) Seed(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return user, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
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
	return fmt.Sprintf("id-%04d", m.counter)
}
