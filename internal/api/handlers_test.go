package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abkawan/banking-records/internal/models"
	"github.com/abkawan/banking-records/internal/service"
	"github.com/abkawan/banking-records/internal/store/memory"
	"github.com/abkawan/banking-records/pkg/metrics"
	"github.com/gorilla/mux"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := memory.New()
	router := mux.NewRouter()
	SetupRoutes(router,
		service.NewCustomerService(s),
		service.NewAccountService(s),
		service.NewTransactionService(s),
		metrics.NewCollector(),
	)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

// doJSON sends a JSON request, checks the status code and decodes the
// response into out when out is non-nil.
func doJSON(t *testing.T, c *http.Client, method, url string, body any, wantCode int, out any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantCode {
		t.Fatalf("%s %s code=%d want=%d", method, url, resp.StatusCode, wantCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func TestCustomerEndpoints(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	input := map[string]any{
		"customer_id":  "C1",
		"name":         "Alice",
		"email":        "alice@example.com",
		"phone_number": "+15550001",
	}

	var created struct {
		Message  string          `json:"message"`
		Customer models.Customer `json:"customer"`
	}
	doJSON(t, cli, "POST", ts.URL+"/customers", input, 201, &created)
	if created.Customer.CustomerID != "C1" || created.Customer.Email != "alice@example.com" {
		t.Fatalf("created customer=%+v", created.Customer)
	}

	// duplicate id → 400, existing record untouched
	doJSON(t, cli, "POST", ts.URL+"/customers", input, 400, nil)

	var customers []models.Customer
	doJSON(t, cli, "GET", ts.URL+"/customers", nil, 200, &customers)
	if len(customers) != 1 || customers[0].Name != "Alice" {
		t.Fatalf("customers=%+v", customers)
	}
}

func TestAccountEndpoints(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	// account for a nonexistent customer → 400, nothing persisted
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{
		"account_number": "A1", "customer_id": "C404", "account_type": "Savings",
	}, 400, nil)

	var accounts []models.Account
	doJSON(t, cli, "GET", ts.URL+"/accounts", nil, 200, &accounts)
	if len(accounts) != 0 {
		t.Fatalf("accounts=%+v, want empty", accounts)
	}

	doJSON(t, cli, "POST", ts.URL+"/customers", map[string]any{
		"customer_id": "C1", "name": "Alice", "email": "a@example.com", "phone_number": "+1",
	}, 201, nil)

	// balance omitted defaults to 0
	var created struct {
		Account models.Account `json:"account"`
	}
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{
		"account_number": "A1", "customer_id": "C1", "account_type": "Savings",
	}, 201, &created)
	if created.Account.Balance != 0 {
		t.Fatalf("balance=%f want 0", created.Account.Balance)
	}

	// duplicate account number → 400
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{
		"account_number": "A1", "customer_id": "C1", "account_type": "Current",
	}, 400, nil)

	doJSON(t, cli, "GET", ts.URL+"/accounts", nil, 200, &accounts)
	if len(accounts) != 1 || accounts[0].AccountType != "Savings" {
		t.Fatalf("accounts=%+v", accounts)
	}
}

func TestTransactionFlow(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	doJSON(t, cli, "POST", ts.URL+"/customers", map[string]any{
		"customer_id": "C1", "name": "Alice", "email": "a@example.com", "phone_number": "+1",
	}, 201, nil)
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{
		"account_number": "A1", "customer_id": "C1", "account_type": "Savings", "balance": 100,
	}, 201, nil)

	// deposit 50 → balance 150
	var result struct {
		NewBalance  float64            `json:"new_balance"`
		Transaction models.Transaction `json:"transaction"`
	}
	doJSON(t, cli, "POST", ts.URL+"/transactions", map[string]any{
		"transaction_id": "T1", "account_number": "A1", "transaction_type": "Deposit", "amount": 50,
	}, 201, &result)
	if result.NewBalance != 150 || result.Transaction.Amount != 50 {
		t.Fatalf("result=%+v", result)
	}

	// withdraw 200 → fails, balance stays 150
	doJSON(t, cli, "POST", ts.URL+"/transactions", map[string]any{
		"transaction_id": "T2", "account_number": "A1", "transaction_type": "Withdraw", "amount": 200,
	}, 400, nil)

	// withdraw 150 → balance 0
	doJSON(t, cli, "POST", ts.URL+"/transactions", map[string]any{
		"transaction_id": "T3", "account_number": "A1", "transaction_type": "Withdraw", "amount": 150,
	}, 201, &result)
	if result.NewBalance != 0 {
		t.Fatalf("new_balance=%f want 0", result.NewBalance)
	}

	var transactions []models.Transaction
	doJSON(t, cli, "GET", ts.URL+"/transactions", nil, 200, &transactions)
	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(transactions))
	}

	var accounts []models.Account
	doJSON(t, cli, "GET", ts.URL+"/accounts", nil, 200, &accounts)
	if accounts[0].Balance != 0 {
		t.Fatalf("stored balance=%f want 0", accounts[0].Balance)
	}
}

func TestTransactionErrors(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	doJSON(t, cli, "POST", ts.URL+"/customers", map[string]any{
		"customer_id": "C1", "name": "Alice", "email": "a@example.com", "phone_number": "+1",
	}, 201, nil)
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{
		"account_number": "A1", "customer_id": "C1", "account_type": "Savings", "balance": 100,
	}, 201, nil)

	var errResp struct {
		Error string `json:"error"`
	}

	// unknown account
	doJSON(t, cli, "POST", ts.URL+"/transactions", map[string]any{
		"transaction_id": "T1", "account_number": "A404", "transaction_type": "Deposit", "amount": 10,
	}, 400, &errResp)
	if errResp.Error != "Account not found!" {
		t.Fatalf("error=%q", errResp.Error)
	}

	// unknown transaction type
	doJSON(t, cli, "POST", ts.URL+"/transactions", map[string]any{
		"transaction_id": "T1", "account_number": "A1", "transaction_type": "Transfer", "amount": 10,
	}, 400, &errResp)
	if errResp.Error != "Invalid transaction type" {
		t.Fatalf("error=%q", errResp.Error)
	}

	// non-positive deposit
	doJSON(t, cli, "POST", ts.URL+"/transactions", map[string]any{
		"transaction_id": "T1", "account_number": "A1", "transaction_type": "Deposit", "amount": -5,
	}, 400, &errResp)
	if errResp.Error != "Transaction failed (Invalid amount)" {
		t.Fatalf("error=%q", errResp.Error)
	}

	// duplicate transaction id: second submission fails, first effect remains
	doJSON(t, cli, "POST", ts.URL+"/transactions", map[string]any{
		"transaction_id": "T1", "account_number": "A1", "transaction_type": "Deposit", "amount": 50,
	}, 201, nil)
	doJSON(t, cli, "POST", ts.URL+"/transactions", map[string]any{
		"transaction_id": "T1", "account_number": "A1", "transaction_type": "Deposit", "amount": 50,
	}, 400, &errResp)
	if errResp.Error != "Transaction ID already exists" {
		t.Fatalf("error=%q", errResp.Error)
	}

	var accounts []models.Account
	doJSON(t, cli, "GET", ts.URL+"/accounts", nil, 200, &accounts)
	if accounts[0].Balance != 150 {
		t.Fatalf("balance=%f want 150", accounts[0].Balance)
	}
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	// malformed JSON
	req, _ := http.NewRequest("POST", ts.URL+"/customers", bytes.NewBufferString("{bad json}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := cli.Do(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 400 {
		t.Fatalf("bad json code=%d want 400", resp.StatusCode)
	}

	// missing required field
	doJSON(t, cli, "POST", ts.URL+"/customers", map[string]any{"name": "Alice"}, 400, nil)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	var health map[string]string
	doJSON(t, cli, "GET", ts.URL+"/health", nil, 200, &health)
	if health["status"] != "ok" {
		t.Fatalf("health=%+v", health)
	}

	resp, err := cli.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("metrics code=%d want 200", resp.StatusCode)
	}
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	resp, err := cli.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected generated X-Request-ID header")
	}

	req, _ := http.NewRequest("GET", ts.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err = cli.Do(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("X-Request-ID=%q want req-123", got)
	}
}
