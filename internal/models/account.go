package models

// Account represents a customer's bank account.
// AccountType is "Savings" or "Current" by convention; the value is stored
// as supplied and not enforced server-side.
type Account struct {
	AccountNumber string  `json:"account_number" db:"account_number"`
	CustomerID    string  `json:"customer_id" db:"customer_id"`
	AccountType   string  `json:"account_type" db:"account_type"`
	Balance       float64 `json:"balance" db:"balance"`
}

// represents the request to create a new account.
// Balance defaults to 0 when omitted.
type CreateAccountRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	CustomerID    string  `json:"customer_id" validate:"required"`
	AccountType   string  `json:"account_type" validate:"required"`
	Balance       float64 `json:"balance"`
}
