package repository

import (
	"context"

	"github.com/restroworks/restropos-api/internal/domain/entity"
)

// TaxRateRepository defines the interface for tax master data operations
type TaxRateRepository interface {
	// GetByOutletDepartment returns the rate row for the pair, nil if none
	GetByOutletDepartment(ctx context.Context, outletID, departmentID uint) (*entity.TaxRate, error)
	List(ctx context.Context, outletID uint) ([]entity.TaxRate, error)
	Upsert(ctx context.Context, rate *entity.TaxRate) error
}
