package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/restroworks/restropos-api/internal/domain/entity"
	domainRepo "github.com/restroworks/restropos-api/internal/domain/repository"
)

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) domainRepo.MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) GetByID(ctx context.Context, id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *menuRepository) GetByCode(ctx context.Context, outletID uint, code string) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.db.WithContext(ctx).
		Where("outlet_id = ? AND item_code = ?", outletID, code).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *menuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.MenuItem{}, "id = ?", id).Error
}

func (r *menuRepository) List(ctx context.Context, outletID uint, search string) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	query := r.db.WithContext(ctx).
		Where("outlet_id = ? AND is_active = ?", outletID, true)
	if search != "" {
		query = query.Where("item_code LIKE ? OR short_name LIKE ? OR name LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	err := query.Order("name ASC").Find(&items).Error
	return items, err
}
