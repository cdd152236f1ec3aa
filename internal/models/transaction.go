package models

import (
	"time"
)

type TransactionType string

const (
	// Deposit increases the account balance
	Deposit TransactionType = "Deposit"

	// Withdraw decreases the account balance
	Withdraw TransactionType = "Withdraw"
)

// Transaction represents a single deposit or withdrawal recorded against an
// account. Date is assigned by the server at creation time.
type Transaction struct {
	TransactionID   string          `json:"transaction_id" db:"transaction_id"`
	AccountNumber   string          `json:"account_number" db:"account_number"`
	TransactionType TransactionType `json:"transaction_type" db:"transaction_type"`
	Amount          float64         `json:"amount" db:"amount"`
	Date            time.Time       `json:"date" db:"date"`
}

// represents the request to perform a transaction
type TransactionRequest struct {
	TransactionID   string          `json:"transaction_id" validate:"required"`
	AccountNumber   string          `json:"account_number" validate:"required"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          float64         `json:"amount"`
}

// TransactionResult carries the outcome of a successful transaction: the
// recorded row plus the account balance after the mutation.
type TransactionResult struct {
	NewBalance  float64      `json:"new_balance"`
	Transaction *Transaction `json:"transaction"`
}
