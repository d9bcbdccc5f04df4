package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// CreateCustomerRequest payload.
type CreateCustomerRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

// UpdateCustomerRequest payload.
type UpdateCustomerRequest struct {
	Name   string `json:"name" validate:"omitempty,max=256"`
	Active *bool  `json:"active"`
}

// CustomerResponse represents a customer account.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderRequest payload for order create/update.
type OrderRequest struct {
	Reference   string `json:"reference" validate:"omitempty,max=128"`
	Description string `json:"description" validate:"omitempty,max=2048"`
}

// OrderResponse represents an order.
type OrderResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Reference   string    `json:"reference"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCustomerResponse maps a domain customer.
func NewCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Active:    customer.Active,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		Reference:   order.Reference,
		Description: order.Description,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
