package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abkawan/banking-records/internal/models"
	"github.com/abkawan/banking-records/internal/service"
	"github.com/abkawan/banking-records/internal/store"
	"github.com/abkawan/banking-records/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New()

// Handler is for handling api requests
type Handler struct {
	customerService    *service.CustomerService
	accountService     *service.AccountService
	transactionService *service.TransactionService
	metrics            *metrics.Collector
}

func NewHandler(
	customerService *service.CustomerService,
	accountService *service.AccountService,
	transactionService *service.TransactionService,
	collector *metrics.Collector,
) *Handler {
	return &Handler{
		customerService:    customerService,
		accountService:     accountService,
		transactionService: transactionService,
		metrics:            collector,
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// for error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodes the request body and checks required fields
func decodeRequest(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			respondError(w, http.StatusBadRequest, "missing required field: "+validationErrs[0].Field())
			return false
		}
		respondError(w, http.StatusBadRequest, "invalid request data")
		return false
	}
	return true
}

// handles customer creation
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(r.Context(), &req)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			respondError(w, http.StatusBadRequest, "Customer ID already exists!")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create customer")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Customer created successfully!",
		"customer": customer,
	})
}

// handles customer list retrieval
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.ListCustomers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}

	respondJSON(w, http.StatusOK, customers)
}

// handles account creation
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(w, http.StatusBadRequest, "Customer ID not found!")
		case errors.Is(err, store.ErrDuplicateKey):
			respondError(w, http.StatusBadRequest, "Account Number already exists!")
		default:
			respondError(w, http.StatusInternalServerError, "failed to create account")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created successfully!",
		"account": account,
	})
}

// handles account list retrieval
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.ListAccounts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	respondJSON(w, http.StatusOK, accounts)
}

// handles transaction creation (deposit/withdraw)
func (h *Handler) PerformTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.TransactionRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	result, err := h.transactionService.Perform(r.Context(), &req)
	if err != nil {
		h.metrics.RecordTransaction(false)
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(w, http.StatusBadRequest, "Account not found!")
		case errors.Is(err, service.ErrInvalidTransactionType):
			respondError(w, http.StatusBadRequest, "Invalid transaction type")
		case errors.Is(err, service.ErrInvalidAmount):
			respondError(w, http.StatusBadRequest, "Transaction failed (Invalid amount)")
		case errors.Is(err, service.ErrInsufficientFunds):
			respondError(w, http.StatusBadRequest, "Transaction failed (Insufficient funds or invalid amount)")
		case errors.Is(err, store.ErrDuplicateKey):
			respondError(w, http.StatusBadRequest, "Transaction ID already exists")
		default:
			respondError(w, http.StatusInternalServerError, "failed to perform transaction")
		}
		return
	}

	h.metrics.RecordTransaction(true)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Transaction successful",
		"new_balance": result.NewBalance,
		"transaction": result.Transaction,
	})
}

// handles transaction list retrieval
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.ListTransactions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}

// handles health check
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sets up the API routes
func SetupRoutes(
	r *mux.Router,
	customerService *service.CustomerService,
	accountService *service.AccountService,
	transactionService *service.TransactionService,
	collector *metrics.Collector,
) {
	h := NewHandler(customerService, accountService, transactionService, collector)

	r.Use(RequestID, Logging, Metrics(collector))

	// Health check (check if API is working)
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")

	// Prometheus exposition
	r.Handle("/metrics", collector.Handler()).Methods("GET")

	// Customer routes
	r.HandleFunc("/customers", h.CreateCustomer).Methods("POST")
	r.HandleFunc("/customers", h.ListCustomers).Methods("GET")

	// Account routes
	r.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	r.HandleFunc("/accounts", h.ListAccounts).Methods("GET")

	// Transaction routes
	r.HandleFunc("/transactions", h.PerformTransaction).Methods("POST")
	r.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
}
