package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/restroworks/restropos-api/internal/domain/entity"
	domainRepo "github.com/restroworks/restropos-api/internal/domain/repository"
)

type taxRateRepository struct {
	db *gorm.DB
}

// NewTaxRateRepository creates a new tax rate repository
func NewTaxRateRepository(db *gorm.DB) domainRepo.TaxRateRepository {
	return &taxRateRepository{db: db}
}

func (r *taxRateRepository) GetByOutletDepartment(ctx context.Context, outletID, departmentID uint) (*entity.TaxRate, error) {
	var rate entity.TaxRate
	err := r.db.WithContext(ctx).
		Where("outlet_id = ? AND department_id = ?", outletID, departmentID).
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rate, err
}

func (r *taxRateRepository) List(ctx context.Context, outletID uint) ([]entity.TaxRate, error) {
	var rates []entity.TaxRate
	err := r.db.WithContext(ctx).
		Where("outlet_id = ?", outletID).
		Order("department_id ASC").
		Find(&rates).Error
	return rates, err
}

func (r *taxRateRepository) Upsert(ctx context.Context, rate *entity.TaxRate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "outlet_id"}, {Name: "department_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cgst_pct", "sgst_pct", "igst_pct", "cess_pct", "updated_at",
		}),
	}).Create(rate).Error
}
