package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/restroworks/restropos-api/internal/domain/entity"
	domainRepo "github.com/restroworks/restropos-api/internal/domain/repository"
)

type outletRepository struct {
	db *gorm.DB
}

// NewOutletRepository creates a new outlet repository
func NewOutletRepository(db *gorm.DB) domainRepo.OutletRepository {
	return &outletRepository{db: db}
}

func (r *outletRepository) Create(ctx context.Context, outlet *entity.Outlet) error {
	return r.db.WithContext(ctx).Create(outlet).Error
}

func (r *outletRepository) GetByID(ctx context.Context, id uint) (*entity.Outlet, error) {
	var outlet entity.Outlet
	err := r.db.WithContext(ctx).
		Preload("Settings").
		Preload("Departments").
		First(&outlet, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &outlet, err
}

func (r *outletRepository) List(ctx context.Context) ([]entity.Outlet, error) {
	var outlets []entity.Outlet
	err := r.db.WithContext(ctx).Order("name ASC").Find(&outlets).Error
	return outlets, err
}

func (r *outletRepository) Update(ctx context.Context, outlet *entity.Outlet) error {
	return r.db.WithContext(ctx).Save(outlet).Error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new outlet settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByOutletID(ctx context.Context, outletID uint) (*entity.OutletSettings, error) {
	var settings entity.OutletSettings
	err := r.db.WithContext(ctx).First(&settings, "outlet_id = ?", outletID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *settingsRepository) Create(ctx context.Context, settings *entity.OutletSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.OutletSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
