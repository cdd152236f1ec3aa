package store

import (
	"context"
	"errors"

	"github.com/abkawan/banking-records/internal/models"
)

var (
	// ErrDuplicateKey is returned when a supplied primary key already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
)

type CustomerStore interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
}

type AccountStore interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, number string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
}

type TransactionStore interface {
	// SaveTransaction persists the transaction row and the new balance of its
	// account as one atomic unit: either both writes are visible or neither is.
	// Returns ErrDuplicateKey if the transaction id is already recorded.
	SaveTransaction(ctx context.Context, tx *models.Transaction, newBalance float64) error
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
}

// Store is the full persistence surface backing the service layer.
type Store interface {
	CustomerStore
	AccountStore
	TransactionStore
}
