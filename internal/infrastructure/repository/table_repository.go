package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/domain/enum"
	domainRepo "github.com/restroworks/restropos-api/internal/domain/repository"
)

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, table *entity.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *tableRepository) GetByID(ctx context.Context, id uint) (*entity.Table, error) {
	var table entity.Table
	err := r.db.WithContext(ctx).Preload("Department").First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) Update(ctx context.Context, table *entity.Table) error {
	return r.db.WithContext(ctx).Save(table).Error
}

func (r *tableRepository) UpdateStatus(ctx context.Context, id uint, status enum.TableStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Table{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *tableRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Table{}, "id = ?", id).Error
}

func (r *tableRepository) List(ctx context.Context, outletID uint, departmentID *uint) ([]entity.Table, error) {
	var tables []entity.Table
	query := r.db.WithContext(ctx).
		Preload("Department").
		Where("outlet_id = ?", outletID)
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	err := query.Order("name ASC").Find(&tables).Error
	return tables, err
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) domainRepo.DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *entity.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id uint) (*entity.Department, error) {
	var dept entity.Department
	err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &dept, err
}

func (r *departmentRepository) List(ctx context.Context, outletID uint) ([]entity.Department, error) {
	var depts []entity.Department
	err := r.db.WithContext(ctx).
		Where("outlet_id = ?", outletID).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *departmentRepository) Update(ctx context.Context, dept *entity.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *departmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Department{}, "id = ?", id).Error
}
