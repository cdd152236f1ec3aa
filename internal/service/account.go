package service

import (
	"context"
	"fmt"

	"github.com/abkawan/banking-records/internal/models"
	"github.com/abkawan/banking-records/internal/store"
)

// handles account operations
type AccountService struct {
	store store.Store
}

// creates a new AccountService
func NewAccountService(s store.Store) *AccountService {
	return &AccountService{
		store: s,
	}
}

// creates a new account. The referenced customer must already exist.
func (s *AccountService) CreateAccount(ctx context.Context, req *models.CreateAccountRequest) (*models.Account, error) {
	if _, err := s.store.GetCustomer(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	account := &models.Account{
		AccountNumber: req.AccountNumber,
		CustomerID:    req.CustomerID,
		AccountType:   req.AccountType,
		Balance:       req.Balance,
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// retrieves all accounts
func (s *AccountService) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}
