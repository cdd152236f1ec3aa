package memory

import (
	"context"
	"sync"

	"github.com/abkawan/banking-records/internal/models"
	"github.com/abkawan/banking-records/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store is an in-memory implementation of store.Store. It mirrors the
// transactional behavior of the PostgreSQL store and backs the tests.
type Store struct {
	mu           sync.RWMutex
	customers    map[string]models.Customer
	accounts     map[string]models.Account
	transactions map[string]models.Transaction
}

func New() *Store {
	return &Store{
		customers:    make(map[string]models.Customer),
		accounts:     make(map[string]models.Account),
		transactions: make(map[string]models.Transaction),
	}
}

func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customer.CustomerID]; ok {
		return store.ErrDuplicateKey
	}
	s.customers[customer.CustomerID] = *customer
	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &customer, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]*models.Customer, 0, len(s.customers))
	for id := range s.customers {
		customer := s.customers[id]
		customers = append(customers, &customer)
	}
	return customers, nil
}

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.AccountNumber]; ok {
		return store.ErrDuplicateKey
	}
	if _, ok := s.customers[account.CustomerID]; !ok {
		return store.ErrNotFound
	}
	s.accounts[account.AccountNumber] = *account
	return nil
}

func (s *Store) GetAccount(ctx context.Context, number string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[number]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &account, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*models.Account, 0, len(s.accounts))
	for number := range s.accounts {
		account := s.accounts[number]
		accounts = append(accounts, &account)
	}
	return accounts, nil
}

func (s *Store) SaveTransaction(ctx context.Context, tx *models.Transaction, newBalance float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// All checks happen before any write so a failure leaves nothing behind.
	if _, ok := s.transactions[tx.TransactionID]; ok {
		return store.ErrDuplicateKey
	}
	account, ok := s.accounts[tx.AccountNumber]
	if !ok {
		return store.ErrNotFound
	}

	account.Balance = newBalance
	s.accounts[tx.AccountNumber] = account
	s.transactions[tx.TransactionID] = *tx
	return nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := make([]*models.Transaction, 0, len(s.transactions))
	for id := range s.transactions {
		transaction := s.transactions[id]
		transactions = append(transactions, &transaction)
	}
	return transactions, nil
}
