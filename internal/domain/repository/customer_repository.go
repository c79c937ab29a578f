package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetByMobile returns the customer matching the mobile number, nil if none
	GetByMobile(ctx context.Context, outletID uint, mobile string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, outletID uint, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
