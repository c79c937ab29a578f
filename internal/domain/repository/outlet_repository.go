package repository

import (
	"context"

	"github.com/restroworks/restropos-api/internal/domain/entity"
)

// OutletRepository defines the interface for outlet data operations
type OutletRepository interface {
	Create(ctx context.Context, outlet *entity.Outlet) error
	GetByID(ctx context.Context, id uint) (*entity.Outlet, error)
	List(ctx context.Context) ([]entity.Outlet, error)
	Update(ctx context.Context, outlet *entity.Outlet) error
}

// SettingsRepository defines the interface for outlet settings data access
type SettingsRepository interface {
	GetByOutletID(ctx context.Context, outletID uint) (*entity.OutletSettings, error)
	Create(ctx context.Context, settings *entity.OutletSettings) error
	Update(ctx context.Context, settings *entity.OutletSettings) error
}
