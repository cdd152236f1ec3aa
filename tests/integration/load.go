package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	baseURL         = "http://localhost:8080"
	numCustomers    = 20         // Number of customers to create
	numAccounts     = 100        // Number of accounts to create
	numTransactions = 10000      // Total number of transactions
	maxConcurrency  = 200        // Maximum number of concurrent requests
	initialBalance  = 10000.0    // Initial balance for each account
	maxAmount       = 1000.0     // Maximum transaction amount
	successColor    = "\033[32m" // Green
	errorColor      = "\033[31m" // Red
	infoColor       = "\033[34m" // Blue
	resetColor      = "\033[0m"  // Reset color
)

type Customer struct {
	CustomerID  string `json:"customer_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type Account struct {
	AccountNumber string  `json:"account_number"`
	CustomerID    string  `json:"customer_id"`
	AccountType   string  `json:"account_type"`
	Balance       float64 `json:"balance"`
}

type Transaction struct {
	TransactionID   string    `json:"transaction_id"`
	AccountNumber   string    `json:"account_number"`
	TransactionType string    `json:"transaction_type"`
	Amount          float64   `json:"amount"`
	Date            time.Time `json:"date"`
}

func main() {
	fmt.Printf("%sstarting a heavy load test with %d accounts and %d transactions%s\n",
		infoColor, numAccounts, numTransactions, resetColor)

	// Create customers and accounts
	customers := createCustomers(numCustomers)
	fmt.Printf("%sCreated %d customers%s\n", successColor, len(customers), resetColor)

	accounts := createAccounts(customers, numAccounts)
	fmt.Printf("%sCreated %d accounts%s\n", successColor, len(accounts), resetColor)

	// Create semaphore for limiting concurrency
	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup

	// Track performance
	startTime := time.Now()
	successCount := 0
	errorCount := 0
	var successMutex sync.Mutex

	// Launch transactions
	fmt.Printf("%slaunching %d transactions with max concurrency of %d%s\n",
		infoColor, numTransactions, maxConcurrency, resetColor)

	for i := 0; i < numTransactions; i++ {
		wg.Add(1)
		sem <- struct{}{} // Acquire semaphore

		go func(txNum int) {
			defer wg.Done()
			defer func() { <-sem }() // Release semaphore

			// Randomly select an account
			account := accounts[rand.Intn(len(accounts))]

			// Randomly decide between deposit and withdrawal
			txType := "Deposit"
			if rand.Intn(2) == 1 {
				txType = "Withdraw"
			}

			// Random amount between 1 and maxAmount
			amount := 1.0 + rand.Float64()*(maxAmount-1.0)
			amount = float64(int(amount*100)) / 100 // Round to 2 decimal places

			// Perform transaction
			txID, err := performTransaction(account.AccountNumber, txType, amount)

			successMutex.Lock()
			if err != nil {
				errorCount++
				if txNum%100 == 0 { // Only log some failures to avoid overwhelming output
					fmt.Printf("%sTransaction failed: %v%s\n", errorColor, err, resetColor)
				}
			} else {
				successCount++
				if txNum%500 == 0 { // Log every 500th successful transaction
					fmt.Printf("%sTransaction %d: Created %s of %.2f on account %s (txID: %s)%s\n",
						successColor, txNum, txType, amount, account.AccountNumber, txID, resetColor)
				}
			}
			successMutex.Unlock()
		}(i)
	}

	// Wait for all transactions to complete
	wg.Wait()
	duration := time.Since(startTime)

	fmt.Printf("\n%s=== heavy load Test Results ===%s\n", infoColor, resetColor)
	fmt.Printf("Total number of transactions: %d\n", numTransactions)
	fmt.Printf("Successful: %s%d (%.1f%%)%s\n",
		successColor, successCount, float64(successCount)/float64(numTransactions)*100, resetColor)
	fmt.Printf("Failed: %s%d (%.1f%%)%s\n",
		errorColor, errorCount, float64(errorCount)/float64(numTransactions)*100, resetColor)
	fmt.Printf("Duration: %.2f seconds\n", duration.Seconds())
	fmt.Printf("Throughput: %.2f transactions/second\n", float64(numTransactions)/duration.Seconds())

	// Check final balances
	fmt.Printf("\n%sChecking final account balances...%s\n", infoColor, resetColor)
	checkAccounts(accounts)
}

// createCustomers creates the specified number of customers
func createCustomers(count int) []Customer {
	customers := make([]Customer, 0, count)

	for i := 0; i < count; i++ {
		customer := Customer{
			CustomerID:  uuid.New().String(),
			Name:        fmt.Sprintf("Load Customer %d", i),
			Email:       fmt.Sprintf("load%d@example.com", i),
			PhoneNumber: fmt.Sprintf("+1000000%04d", i),
		}

		var created struct {
			Customer Customer `json:"customer"`
		}
		if err := postJSON("/customers", customer, &created); err != nil {
			fmt.Printf("%sFailed to create customer: %v%s\n", errorColor, err, resetColor)
			continue
		}

		customers = append(customers, created.Customer)
	}

	return customers
}

// createAccounts creates the specified number of accounts spread over the customers
func createAccounts(customers []Customer, count int) []Account {
	accounts := make([]Account, 0, count)

	for i := 0; i < count; i++ {
		accountType := "Savings"
		if i%2 == 1 {
			accountType = "Current"
		}

		account := Account{
			AccountNumber: uuid.New().String(),
			CustomerID:    customers[rand.Intn(len(customers))].CustomerID,
			AccountType:   accountType,
			Balance:       initialBalance,
		}

		var created struct {
			Account Account `json:"account"`
		}
		if err := postJSON("/accounts", account, &created); err != nil {
			fmt.Printf("%sFailed to create account: %v%s\n", errorColor, err, resetColor)
			continue
		}

		accounts = append(accounts, created.Account)
		if i%10 == 0 || i == count-1 {
			fmt.Printf("%screated account %d/%d: %s with balance %.2f%s\n",
				successColor, i+1, count, created.Account.AccountNumber, created.Account.Balance, resetColor)
		}
	}

	return accounts
}

// performTransaction submits a transaction for the specified account
func performTransaction(accountNumber, txType string, amount float64) (string, error) {
	reqBody := map[string]interface{}{
		"transaction_id":   uuid.New().String(),
		"account_number":   accountNumber,
		"transaction_type": txType,
		"amount":           amount,
	}

	var created struct {
		NewBalance  float64     `json:"new_balance"`
		Transaction Transaction `json:"transaction"`
	}
	if err := postJSON("/transactions", reqBody, &created); err != nil {
		return "", err
	}

	return created.Transaction.TransactionID, nil
}

// postJSON sends a POST request and decodes the 201 response into out
func postJSON(path string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}

	resp, err := http.Post(baseURL+path, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}

	return nil
}

// checkAccounts prints the final state of a sample of accounts
func checkAccounts(accounts []Account) {
	resp, err := http.Get(baseURL + "/accounts")
	if err != nil {
		fmt.Printf("%sError listing accounts: %v%s\n", errorColor, err, resetColor)
		return
	}
	defer resp.Body.Close()

	var current []Account
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		fmt.Printf("%sError decoding accounts: %v%s\n", errorColor, err, resetColor)
		return
	}

	byNumber := make(map[string]Account, len(current))
	for _, a := range current {
		byNumber[a.AccountNumber] = a
	}

	sampleSize := min(10, len(accounts))
	for i := 0; i < sampleSize; i++ {
		original := accounts[rand.Intn(len(accounts))]
		account, ok := byNumber[original.AccountNumber]
		if !ok {
			fmt.Printf("%sAccount %s missing from listing%s\n", errorColor, original.AccountNumber, resetColor)
			continue
		}

		fmt.Printf("%sAccount %d: %s%s\n", infoColor, i+1, account.AccountNumber, resetColor)
		fmt.Printf("  Original balance: %.2f, Current balance: %.2f\n",
			original.Balance, account.Balance)
	}
}

// min returns the minimum of two integers
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
