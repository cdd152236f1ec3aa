package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abkawan/banking-records/internal/models"
	"github.com/abkawan/banking-records/internal/store"
	"github.com/lib/pq"
)

var _ store.Store = (*Store)(nil)

// Store handles PostgreSQL database operations
type Store struct {
	db *sql.DB
}

// creates a new Store connected to the given PostgreSQL instance
func New(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// initialize the database schema
func (s *Store) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS customers (
		customer_id VARCHAR(50) PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL,
		phone_number VARCHAR(20) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS accounts (
		account_number VARCHAR(50) PRIMARY KEY,
		customer_id VARCHAR(50) NOT NULL REFERENCES customers(customer_id),
		account_type VARCHAR(20) NOT NULL,
		balance DECIMAL(20, 2) NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS transactions (
		transaction_id VARCHAR(50) PRIMARY KEY,
		account_number VARCHAR(50) NOT NULL REFERENCES accounts(account_number),
		transaction_type VARCHAR(20) NOT NULL,
		amount DECIMAL(20, 2) NOT NULL,
		date TIMESTAMP NOT NULL
	);`

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// maps PostgreSQL constraint violations to store errors
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return store.ErrDuplicateKey
		case "23503": // foreign_key_violation
			return store.ErrNotFound
		}
	}
	return err
}

// creates a new customer record
func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	query := `
	INSERT INTO customers (customer_id, name, email, phone_number)
	VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query,
		customer.CustomerID, customer.Name, customer.Email, customer.PhoneNumber)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", mapError(err))
	}

	return nil
}

// retrieves a customer by ID
func (s *Store) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	query := `
	SELECT customer_id, name, email, phone_number
	FROM customers
	WHERE customer_id = $1`

	var customer models.Customer
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&customer.CustomerID, &customer.Name, &customer.Email, &customer.PhoneNumber,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &customer, nil
}

// retrieves all customers
func (s *Store) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	query := `
	SELECT customer_id, name, email, phone_number
	FROM customers`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]*models.Customer, 0)
	for rows.Next() {
		var customer models.Customer
		if err := rows.Scan(&customer.CustomerID, &customer.Name, &customer.Email, &customer.PhoneNumber); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, &customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	return customers, nil
}

// creates a new account record
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
	INSERT INTO accounts (account_number, customer_id, account_type, balance)
	VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query,
		account.AccountNumber, account.CustomerID, account.AccountType, account.Balance)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", mapError(err))
	}

	return nil
}

// retrieves an account by account number
func (s *Store) GetAccount(ctx context.Context, number string) (*models.Account, error) {
	query := `
	SELECT account_number, customer_id, account_type, balance
	FROM accounts
	WHERE account_number = $1`

	var account models.Account
	err := s.db.QueryRowContext(ctx, query, number).Scan(
		&account.AccountNumber, &account.CustomerID, &account.AccountType, &account.Balance,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// retrieves all accounts
func (s *Store) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	query := `
	SELECT account_number, customer_id, account_type, balance
	FROM accounts`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*models.Account, 0)
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.AccountNumber, &account.CustomerID, &account.AccountType, &account.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	return accounts, nil
}

// SaveTransaction writes the transaction row and the account's new balance in
// a single database transaction.
func (s *Store) SaveTransaction(ctx context.Context, transaction *models.Transaction, newBalance float64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists bool
	err = tx.QueryRowContext(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM transactions WHERE transaction_id = $1)",
		transaction.TransactionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check transaction id: %w", err)
	}
	if exists {
		err = store.ErrDuplicateKey
		return err
	}

	_, err = tx.ExecContext(
		ctx,
		"UPDATE accounts SET balance = $1 WHERE account_number = $2",
		newBalance, transaction.AccountNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO transactions (transaction_id, account_number, transaction_type, amount, date)
		VALUES ($1, $2, $3, $4, $5)`,
		transaction.TransactionID, transaction.AccountNumber,
		transaction.TransactionType, transaction.Amount, transaction.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", mapError(err))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// retrieves all transactions
func (s *Store) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	query := `
	SELECT transaction_id, account_number, transaction_type, amount, date
	FROM transactions`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*models.Transaction, 0)
	for rows.Next() {
		var transaction models.Transaction
		if err := rows.Scan(
			&transaction.TransactionID, &transaction.AccountNumber,
			&transaction.TransactionType, &transaction.Amount, &transaction.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, nil
}
