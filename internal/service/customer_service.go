package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// CustomerService manages customer accounts and their orders.
type CustomerService struct {
	customers  repository.CustomerRepository
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// CustomerDependencies bundles collaborators for the customer service.
type CustomerDependencies struct {
	CustomerRepo repository.CustomerRepository
	OrderRepo    repository.OrderRepository
	Dispatcher   events.Dispatcher
}

// OrderInput describes order create/update payload.
type OrderInput struct {
	CustomerID  string
	Reference   string
	Description string
}

// NewCustomerService constructs the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{
		customers:  deps.CustomerRepo,
		orders:     deps.OrderRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create registers a customer account.
func (s *CustomerService) Create(ctx context.Context, actor, name string) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	customer := &domain.Customer{Name: name, Active: true}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityCreated, "Customer", customer.ID, actor, map[string]any{
		"name": customer.Name,
	})
	return customer, nil
}

// Update edits a customer account.
func (s *CustomerService) Update(ctx context.Context, actor, id, name string, active *bool) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		customer.Name = name
	}
	if active != nil {
		customer.Active = *active
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Customer", customer.ID, actor, map[string]any{
		"name":   customer.Name,
		"active": customer.Active,
	})
	return customer, nil
}

// Get fetches a customer by id.
func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// List returns a page of customers.
func (s *CustomerService) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	return s.customers.List(ctx, limit, offset)
}

// CreateOrder records a purchase for a customer.
func (s *CustomerService) CreateOrder(ctx context.Context, actor string, input OrderInput) (*domain.Order, error) {
	if strings.TrimSpace(input.Reference) == "" {
		return nil, apperrors.NewValidationError("reference required", nil)
	}
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewValidationError("unknown customer", map[string]any{"customer_id": input.CustomerID})
		}
		return nil, err
	}
	order := &domain.Order{
		CustomerID:  input.CustomerID,
		Reference:   strings.TrimSpace(input.Reference),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityCreated, "Order", order.ID, actor, map[string]any{
		"reference": order.Reference,
		"customer":  order.CustomerID,
	})
	return order, nil
}

// UpdateOrder edits an order.
func (s *CustomerService) UpdateOrder(ctx context.Context, actor, id string, input OrderInput) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ref := strings.TrimSpace(input.Reference); ref != "" {
		order.Reference = ref
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		order.Description = desc
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	publishMutation(ctx, s.dispatcher, events.EventEntityUpdated, "Order", order.ID, actor, map[string]any{
		"reference": order.Reference,
	})
	return order, nil
}

// GetOrder fetches an order by id.
func (s *CustomerService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrders returns a customer's orders.
func (s *CustomerService) ListOrders(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID, limit, offset)
}
