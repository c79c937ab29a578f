package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/domain/repository"
	"github.com/restroworks/restropos-api/pkg/apperror"
	"github.com/restroworks/restropos-api/pkg/pagination"
)

// CustomerService handles customer lookups and maintenance
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents the create/update customer input
type CustomerInput struct {
	OutletID uint
	Name     string
	Mobile   string
	Email    *string
	Address  *string
	GSTIN    *string
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	existing, err := s.customerRepo.GetByMobile(ctx, input.OutletID, input.Mobile)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A customer with this mobile number already exists")
	}

	customer := &entity.Customer{
		OutletID: input.OutletID,
		Name:     input.Name,
		Mobile:   input.Mobile,
		Email:    input.Email,
		Address:  input.Address,
		GSTIN:    input.GSTIN,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetByMobile looks up a customer by mobile number. Returns nil (no error)
// when there is no match so the billing screen can offer a blank form.
func (s *CustomerService) GetByMobile(ctx context.Context, outletID uint, mobile string) (*entity.Customer, error) {
	return s.customerRepo.GetByMobile(ctx, outletID, mobile)
}

// Update updates an existing customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.Mobile = input.Mobile
	customer.Email = input.Email
	customer.Address = input.Address
	customer.GSTIN = input.GSTIN

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// List returns customers with pagination and optional search
func (s *CustomerService) List(ctx context.Context, outletID uint, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return s.customerRepo.List(ctx, outletID, params, search)
}
