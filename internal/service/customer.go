package service

import (
	"context"
	"fmt"

	"github.com/abkawan/banking-records/internal/models"
	"github.com/abkawan/banking-records/internal/store"
)

// handles customer operations
type CustomerService struct {
	store store.Store
}

// creates a new CustomerService
func NewCustomerService(s store.Store) *CustomerService {
	return &CustomerService{
		store: s,
	}
}

// creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		CustomerID:  req.CustomerID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// retrieves all customers
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, nil
}
