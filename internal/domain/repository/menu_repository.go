package repository

import (
	"context"

	"github.com/restroworks/restropos-api/internal/domain/entity"
)

// MenuRepository defines the interface for menu item data operations
type MenuRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id uint) (*entity.MenuItem, error)
	GetByCode(ctx context.Context, outletID uint, code string) (*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id uint) error
	// List returns active menu items, optionally filtered by a search term
	// matched against the item code, short name and name
	List(ctx context.Context, outletID uint, search string) ([]entity.MenuItem, error)
}
