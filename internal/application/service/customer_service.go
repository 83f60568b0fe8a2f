package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/pkg/apperror"
)

// CustomerService manages loyalty-program members. Point balances are
// mutated only by the payment flow; this service is membership CRUD
// and history reads.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	historyRepo  repository.PointHistoryRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, historyRepo repository.PointHistoryRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		historyRepo:  historyRepo,
	}
}

// Create enrolls a customer by phone number
func (s *CustomerService) Create(ctx context.Context, name, phone string, email *string) (*entity.Customer, error) {
	if name == "" || phone == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name and phone are required"},
		})
	}

	existing, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A customer with this phone already exists", existing)
	}

	customer := &entity.Customer{Name: name, Phone: phone, Email: email}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Get returns one customer
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// List returns customers matching the search term
func (s *CustomerService) List(ctx context.Context, search string) ([]entity.Customer, error) {
	return s.customerRepo.List(ctx, search)
}

// Update changes a customer's contact details
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, name string, email *string) (*entity.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		customer.Name = name
	}
	if email != nil {
		customer.Email = email
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// History returns the customer's point mutations
func (s *CustomerService) History(ctx context.Context, customerID uuid.UUID) ([]entity.PointHistory, error) {
	if _, err := s.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByCustomer(ctx, customerID)
}
