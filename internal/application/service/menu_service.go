package service

import (
	"context"

	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/domain/repository"
	"github.com/restroworks/restropos-api/pkg/apperror"
)

// MenuService handles menu item lookups for the billing screen
type MenuService struct {
	menuRepo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// List returns active menu items, optionally filtered by a search term
func (s *MenuService) List(ctx context.Context, outletID uint, search string) ([]entity.MenuItem, error) {
	return s.menuRepo.List(ctx, outletID, search)
}

// GetByCode retrieves a menu item by its short code
func (s *MenuService) GetByCode(ctx context.Context, outletID uint, code string) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByCode(ctx, outletID, code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// MenuItemInput represents the create/update menu item input
type MenuItemInput struct {
	OutletID  uint
	ItemCode  string
	Name      string
	ShortName *string
	Rate      float64
	Kitchen   *string
	IsActive  bool
}

// Create creates a new menu item
func (s *MenuService) Create(ctx context.Context, input *MenuItemInput) (*entity.MenuItem, error) {
	existing, err := s.menuRepo.GetByCode(ctx, input.OutletID, input.ItemCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A menu item with this code already exists")
	}

	item := &entity.MenuItem{
		OutletID:  input.OutletID,
		ItemCode:  input.ItemCode,
		Name:      input.Name,
		ShortName: input.ShortName,
		Rate:      input.Rate,
		Kitchen:   input.Kitchen,
		IsActive:  input.IsActive,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update updates an existing menu item
func (s *MenuService) Update(ctx context.Context, id uint, input *MenuItemInput) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	item.ItemCode = input.ItemCode
	item.Name = input.Name
	item.ShortName = input.ShortName
	item.Rate = input.Rate
	item.Kitchen = input.Kitchen
	item.IsActive = input.IsActive

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a menu item
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	return s.menuRepo.Delete(ctx, id)
}
