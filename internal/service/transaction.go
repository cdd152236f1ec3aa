package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abkawan/banking-records/internal/models"
	"github.com/abkawan/banking-records/internal/store"
)

var (
	// ErrInvalidTransactionType is returned for a transaction type other than
	// Deposit or Withdraw.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidAmount is returned for a deposit of a non-positive amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is returned for a withdrawal of a non-positive
	// amount or one exceeding the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds or invalid amount")
)

// handles transaction operations
type TransactionService struct {
	store store.Store
}

// creates a new TransactionService
func NewTransactionService(s store.Store) *TransactionService {
	return &TransactionService{
		store: s,
	}
}

// Perform applies a deposit or withdrawal to an account and records the
// transaction. The balance update and the transaction row are persisted as
// one atomic unit. Checks run in a fixed order: account existence, transaction
// type, balance guard, then duplicate transaction id — so a duplicate id on a
// request that fails the guard surfaces the guard error.
func (s *TransactionService) Perform(ctx context.Context, req *models.TransactionRequest) (*models.TransactionResult, error) {
	account, err := s.store.GetAccount(ctx, req.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	var newBalance float64
	switch req.TransactionType {
	case models.Deposit:
		if req.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		newBalance = account.Balance + req.Amount
	case models.Withdraw:
		if req.Amount <= 0 || req.Amount > account.Balance {
			return nil, ErrInsufficientFunds
		}
		newBalance = account.Balance - req.Amount
	default:
		return nil, ErrInvalidTransactionType
	}

	transaction := &models.Transaction{
		TransactionID:   req.TransactionID,
		AccountNumber:   req.AccountNumber,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		Date:            time.Now().UTC(),
	}

	if err := s.store.SaveTransaction(ctx, transaction, newBalance); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	return &models.TransactionResult{
		NewBalance:  newBalance,
		Transaction: transaction,
	}, nil
}

// retrieves all transactions
func (s *TransactionService) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, nil
}
