package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/restroworks/restropos-api/internal/domain/entity"
	domainRepo "github.com/restroworks/restropos-api/internal/domain/repository"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByTxnNo(ctx context.Context, txnNo string) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).First(&bill, "txn_no = ?", txnNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Table").
		Preload("Customer").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetOpenByTable(ctx context.Context, tableID uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Where("table_id = ? AND is_settled <> 1", tableID).
		Order("created_at DESC").
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

// SaveWithItems writes the bill header and replaces its lines atomically.
// A failure at any step rolls the whole save back, so the stored bill is
// never a mix of old and new lines.
func (r *billRepository) SaveWithItems(ctx context.Context, bill *entity.Bill, items []entity.BillItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(bill).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("bill_id = ?", bill.ID).Delete(&entity.BillItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BillID = bill.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Bill{}, "id = ?", id).Error
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("outlet_id = ?", params.OutletID)

	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}
	if params.DepartmentID != nil {
		query = query.Where("department_id = ?", *params.DepartmentID)
	}
	if params.IsBilled != nil {
		query = query.Where("is_billed = ?", *params.IsBilled)
	}
	if params.IsSettled != nil {
		query = query.Where("is_settled = ?", *params.IsSettled)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}
	if params.Search != "" {
		query = query.Where("txn_no LIKE ? OR customer_name LIKE ? OR mobile_no LIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) ListSavedKOTs(ctx context.Context, outletID uint, filter *domainRepo.SavedKOTFilter) ([]entity.Bill, error) {
	var bills []entity.Bill
	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Table").
		Where("outlet_id = ? AND is_settled <> 1", outletID).
		Where("id IN (?)", r.db.Model(&entity.BillItem{}).Select("bill_id"))
	if filter != nil {
		if filter.IsBilled != nil {
			query = query.Where("is_billed = ?", *filter.IsBilled)
		}
		if filter.TableID != nil {
			query = query.Where("table_id = ?", *filter.TableID)
		}
	}
	err := query.Order("created_at ASC").Find(&bills).Error
	return bills, err
}

func (r *billRepository) NextOrderNo(ctx context.Context, outletID uint) (int, error) {
	var last int
	err := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("outlet_id = ?", outletID).
		Select("COALESCE(MAX(order_no), 0)").
		Scan(&last).Error
	return last + 1, err
}
