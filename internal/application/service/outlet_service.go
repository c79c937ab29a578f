package service

import (
	"context"
	"time"

	"github.com/restroworks/restropos-api/internal/config"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/domain/repository"
	"github.com/restroworks/restropos-api/pkg/apperror"
)

// OutletService handles outlet master data and per-outlet settings
type OutletService struct {
	outletRepo   repository.OutletRepository
	settingsRepo repository.SettingsRepository
	deptRepo     repository.DepartmentRepository
	billingCfg   config.BillingConfig
}

// NewOutletService creates a new outlet service
func NewOutletService(
	outletRepo repository.OutletRepository,
	settingsRepo repository.SettingsRepository,
	deptRepo repository.DepartmentRepository,
	billingCfg config.BillingConfig,
) *OutletService {
	return &OutletService{
		outletRepo:   outletRepo,
		settingsRepo: settingsRepo,
		deptRepo:     deptRepo,
		billingCfg:   billingCfg,
	}
}

// GetByID retrieves an outlet with its settings and departments
func (s *OutletService) GetByID(ctx context.Context, id uint) (*entity.Outlet, error) {
	outlet, err := s.outletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if outlet == nil {
		return nil, apperror.NewNotFoundError("Outlet")
	}
	return outlet, nil
}

// List returns all outlets
func (s *OutletService) List(ctx context.Context) ([]entity.Outlet, error) {
	return s.outletRepo.List(ctx)
}

// ListDepartments returns the outlet's departments
func (s *OutletService) ListDepartments(ctx context.Context, outletID uint) ([]entity.Department, error) {
	return s.deptRepo.List(ctx, outletID)
}

// GetSettings retrieves the outlet's settings, creating defaults when absent
func (s *OutletService) GetSettings(ctx context.Context, outletID uint) (*entity.OutletSettings, error) {
	settings, err := s.settingsRepo.GetByOutletID(ctx, outletID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.OutletSettings{
			OutletID:         outletID,
			ShowKOTNoOnBill:  true,
			ShowTaxBreakup:   true,
			PrintKOTOnSave:   true,
			ShowItemNotes:    true,
			ShowCustomerInfo: true,
			DefaultPax:       2,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// UpdateSettings replaces the outlet's settings
func (s *OutletService) UpdateSettings(ctx context.Context, settings *entity.OutletSettings) (*entity.OutletSettings, error) {
	current, err := s.GetSettings(ctx, settings.OutletID)
	if err != nil {
		return nil, err
	}
	settings.ID = current.ID
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// PrintedTimeout resolves the printed-bill attention threshold for the
// outlet: its settings override, otherwise the configured default.
func (s *OutletService) PrintedTimeout(ctx context.Context, outletID uint) time.Duration {
	settings, err := s.settingsRepo.GetByOutletID(ctx, outletID)
	if err == nil && settings != nil && settings.PrintedTimeoutMinutes > 0 {
		return time.Duration(settings.PrintedTimeoutMinutes) * time.Minute
	}
	return s.billingCfg.PrintedTimeout
}

// StaffDiscountLimit resolves the percentage above which a discount needs
// an admin: the outlet's settings override, otherwise the configured default.
func (s *OutletService) StaffDiscountLimit(ctx context.Context, outletID uint) float64 {
	settings, err := s.settingsRepo.GetByOutletID(ctx, outletID)
	if err == nil && settings != nil && settings.StaffDiscountPct > 0 {
		return settings.StaffDiscountPct
	}
	return s.billingCfg.StaffDiscountPct
}
