package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/pkg/pagination"
)

// BillRepository defines the interface for bill transaction data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByTxnNo(ctx context.Context, txnNo string) (*entity.Bill, error)
	// GetWithItems loads the bill together with its non-deleted order lines
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	// GetOpenByTable returns the latest unsettled bill on the table, nil if none
	GetOpenByTable(ctx context.Context, tableID uint) (*entity.Bill, error)
	Update(ctx context.Context, bill *entity.Bill) error
	// SaveWithItems persists the bill header and replaces its item rows in a
	// single transaction. On any error nothing is written.
	SaveWithItems(ctx context.Context, bill *entity.Bill, items []entity.BillItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	// ListSavedKOTs returns open bills that have at least one KOT line,
	// narrowed by the optional filter
	ListSavedKOTs(ctx context.Context, outletID uint, filter *SavedKOTFilter) ([]entity.Bill, error)
	// NextOrderNo returns the next sequential order number for the outlet
	NextOrderNo(ctx context.Context, outletID uint) (int, error)
}

// SavedKOTFilter narrows the saved-KOT list
type SavedKOTFilter struct {
	IsBilled *int
	TableID  *uint
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination   *pagination.PaginationParams
	OutletID     uint
	TableID      *uint
	DepartmentID *uint
	IsBilled     *int
	IsSettled    *int
	StartDate    *time.Time
	EndDate      *time.Time
	Search       string
}
