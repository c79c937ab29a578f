package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/restroworks/restropos-api/internal/domain/billing"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/domain/enum"
	"github.com/restroworks/restropos-api/internal/domain/repository"
	"github.com/restroworks/restropos-api/internal/domain/tablestate"
	"github.com/restroworks/restropos-api/pkg/apperror"
)

// TableService produces the table view: every table with its display status
// derived from the stored status code and the table's latest open bill
type TableService struct {
	tableRepo     repository.TableRepository
	billRepo      repository.BillRepository
	outletService *OutletService
	logger        zerolog.Logger
}

// NewTableService creates a new table service
func NewTableService(
	tableRepo repository.TableRepository,
	billRepo repository.BillRepository,
	outletService *OutletService,
	logger zerolog.Logger,
) *TableService {
	return &TableService{
		tableRepo:     tableRepo,
		billRepo:      billRepo,
		outletService: outletService,
		logger:        logger.With().Str("component", "tables").Logger(),
	}
}

// TableView is one tile on the table screen
type TableView struct {
	TableID        uint             `json:"tableid"`
	Name           string           `json:"table_name"`
	DepartmentID   uint             `json:"departmentid"`
	DepartmentName string           `json:"department_name,omitempty"`
	Capacity       int              `json:"capacity"`
	Status         enum.TableStatus `json:"status"`
	BillID         *uuid.UUID       `json:"bill_id,omitempty"`
	OrderNo        int              `json:"order_no,omitempty"`
	Amount         float64          `json:"amount"`
	BillPrintedAt  *time.Time       `json:"bill_printed_at,omitempty"`
}

// ListWithStatus returns the tables with their derived display status.
// A bill lookup failure degrades that table to its raw status code rather
// than failing the whole view.
func (s *TableService) ListWithStatus(ctx context.Context, outletID uint, departmentID *uint, now time.Time) ([]TableView, error) {
	tables, err := s.tableRepo.List(ctx, outletID, departmentID)
	if err != nil {
		return nil, err
	}

	timeout := s.outletService.PrintedTimeout(ctx, outletID)

	views := make([]TableView, 0, len(tables))
	for _, t := range tables {
		view := TableView{
			TableID:      t.ID,
			Name:         t.Name,
			DepartmentID: t.DepartmentID,
			Capacity:     t.Capacity,
		}
		if t.Department != nil {
			view.DepartmentName = t.Department.Name
		}

		bill, err := s.billRepo.GetOpenByTable(ctx, t.ID)
		if err != nil {
			s.logger.Warn().Err(err).Uint("table_id", t.ID).Msg("open bill lookup failed, deriving from status code only")
			view.Status = tablestate.DeriveWithoutBill(int(t.Status))
			views = append(views, view)
			continue
		}

		snap := tablestate.Snapshot{StatusCode: int(t.Status)}
		if bill != nil {
			snap.IsBilled = bill.IsBilled
			snap.IsSettled = bill.IsSettled
			snap.BillPrintedAt = bill.BillPrintedAt

			view.BillID = &bill.ID
			view.OrderNo = bill.OrderNo
			view.Amount = billing.Round2(bill.Amount)
			view.BillPrintedAt = bill.BillPrintedAt
		}
		view.Status = tablestate.Derive(snap, now, timeout)
		views = append(views, view)
	}
	return views, nil
}

// GetByID retrieves a single table
func (s *TableService) GetByID(ctx context.Context, id uint) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return table, nil
}

// UpdateStatus writes the raw status code for a table
func (s *TableService) UpdateStatus(ctx context.Context, id uint, status enum.TableStatus) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.tableRepo.UpdateStatus(ctx, id, status)
}

// TableInput represents the create/update table input
type TableInput struct {
	OutletID     uint
	DepartmentID uint
	Name         string
	Capacity     int
}

// Create creates a new table
func (s *TableService) Create(ctx context.Context, input *TableInput) (*entity.Table, error) {
	table := &entity.Table{
		OutletID:     input.OutletID,
		DepartmentID: input.DepartmentID,
		Name:         input.Name,
		Capacity:     input.Capacity,
		Status:       enum.TableStatusAvailable,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// Update updates an existing table
func (s *TableService) Update(ctx context.Context, id uint, input *TableInput) (*entity.Table, error) {
	table, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	table.DepartmentID = input.DepartmentID
	table.Name = input.Name
	table.Capacity = input.Capacity
	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// Delete removes a table
func (s *TableService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.tableRepo.Delete(ctx, id)
}
