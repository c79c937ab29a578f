package repository

import (
	"context"

	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/domain/enum"
)

// TableRepository defines the interface for dining table data operations
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	GetByID(ctx context.Context, id uint) (*entity.Table, error)
	Update(ctx context.Context, table *entity.Table) error
	// UpdateStatus writes only the raw status code column
	UpdateStatus(ctx context.Context, id uint, status enum.TableStatus) error
	Delete(ctx context.Context, id uint) error
	// List returns all tables for the outlet, optionally scoped to a department
	List(ctx context.Context, outletID uint, departmentID *uint) ([]entity.Table, error)
}

// DepartmentRepository defines the interface for table department data operations
type DepartmentRepository interface {
	Create(ctx context.Context, dept *entity.Department) error
	GetByID(ctx context.Context, id uint) (*entity.Department, error)
	List(ctx context.Context, outletID uint) ([]entity.Department, error)
	Update(ctx context.Context, dept *entity.Department) error
	Delete(ctx context.Context, id uint) error
}
