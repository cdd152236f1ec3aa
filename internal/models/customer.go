package models

// Customer represents a bank customer
type Customer struct {
	CustomerID  string `json:"customer_id" db:"customer_id"`
	Name        string `json:"name" db:"name"`
	Email       string `json:"email" db:"email"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`
}

// represents the request to create a new customer
type CreateCustomerRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}
