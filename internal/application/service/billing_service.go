package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/restroworks/restropos-api/internal/domain/billing"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/domain/enum"
	"github.com/restroworks/restropos-api/internal/domain/repository"
	"github.com/restroworks/restropos-api/internal/domain/tablestate"
	"github.com/restroworks/restropos-api/internal/presentation/ws"
	"github.com/restroworks/restropos-api/pkg/apperror"
)

// BillingService owns the KOT/bill lifecycle: saving orders, printing,
// settlement and reversal. All tax figures are recomputed server side on
// every save; client-sent tax columns are ignored.
type BillingService struct {
	billRepo       repository.BillRepository
	tableRepo      repository.TableRepository
	customerRepo   repository.CustomerRepository
	taxRateService *TaxRateService
	outletService  *OutletService
	printerService *PrinterService
	hub            *ws.Hub
	logger         zerolog.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo repository.BillRepository,
	tableRepo repository.TableRepository,
	customerRepo repository.CustomerRepository,
	taxRateService *TaxRateService,
	outletService *OutletService,
	printerService *PrinterService,
	hub *ws.Hub,
	logger zerolog.Logger,
) *BillingService {
	return &BillingService{
		billRepo:       billRepo,
		tableRepo:      tableRepo,
		customerRepo:   customerRepo,
		taxRateService: taxRateService,
		outletService:  outletService,
		printerService: printerService,
		hub:            hub,
		logger:         logger.With().Str("component", "billing").Logger(),
	}
}

// SaveKOTInput represents a save request from the billing screen
type SaveKOTInput struct {
	BillID       *uuid.UUID
	OutletID     uint
	DepartmentID uint
	TableID      *uint
	OrderType    enum.OrderType
	CustomerID   *uuid.UUID
	CustomerName string
	MobileNo     string
	Pax          int
	WaiterName   string
	Items        []billing.LineItem
	Discount     billing.Discount
	UserID       uuid.UUID
	UserRole     string
}

// SaveKOT persists the working order as a KOT. Lines are normalized
// (zero-quantity lines removed, line totals recomputed), per-line taxes are
// derived from each line's own subtotal, and the header totals are computed
// from the shared subtotal. The write is atomic: a failure leaves both the
// stored bill and the caller's working items untouched.
func (s *BillingService) SaveKOT(ctx context.Context, input *SaveKOTInput) (*entity.Bill, error) {
	items := billing.NormalizeItems(input.Items)
	if len(items) == 0 {
		return nil, apperror.ErrEmptyBill
	}

	if input.OrderType.RequiresTable() && input.TableID == nil {
		return nil, apperror.NewBadRequestError("A table is required for dine-in orders")
	}
	if input.TableID != nil {
		table, err := s.tableRepo.GetByID(ctx, *input.TableID)
		if err != nil {
			return nil, err
		}
		if table == nil {
			return nil, apperror.NewNotFoundError("Table")
		}
		if table.OutletID != input.OutletID || table.DepartmentID != input.DepartmentID {
			return nil, apperror.NewBadRequestError("Table does not belong to the selected department")
		}
	}

	bill, err := s.loadOrCreateBill(ctx, input)
	if err != nil {
		return nil, err
	}

	rates := s.taxRateService.GetRates(ctx, input.OutletID, input.DepartmentID)

	// Each line's tax columns come from that line's own subtotal
	for i := range items {
		items[i] = billing.PerLineTax(items[i], rates)
	}
	breakdown := billing.ComputeBreakdown(items, rates)

	total := breakdown.GrandTotal
	if input.Discount.Value > 0 {
		limit := s.outletService.StaffDiscountLimit(ctx, input.OutletID)
		total, err = billing.ApplyDiscount(breakdown, input.Discount, input.UserRole, limit)
		if err != nil {
			return nil, err
		}
	}

	kotNo := s.nextKOTNo(bill, items)
	billItems := make([]entity.BillItem, 0, len(items))
	var newBatch []entity.BillItem
	for _, line := range items {
		item := entity.BillItem{
			ItemCode: line.ItemCode,
			ItemName: line.ItemName,
			Qty:      line.Quantity,
			Rate:     line.Rate,
			Total:    line.LineTotal,
			CGST:     line.CGST,
			SGST:     line.SGST,
			IGST:     line.IGST,
			CESS:     line.CESS,
			KOTNo:    line.KOTRef,
			Note:     line.Note,
		}
		if item.KOTNo == "" {
			item.KOTNo = kotNo
			newBatch = append(newBatch, item)
		}
		billItems = append(billItems, item)
	}

	bill.DepartmentID = input.DepartmentID
	bill.TableID = input.TableID
	bill.OrderType = input.OrderType
	bill.CustomerID = input.CustomerID
	bill.CustomerName = input.CustomerName
	bill.MobileNo = input.MobileNo
	bill.Pax = input.Pax
	bill.WaiterName = input.WaiterName
	bill.GrossAmt = breakdown.Subtotal
	bill.CGST = breakdown.CGSTAmt
	bill.SGST = breakdown.SGSTAmt
	bill.IGST = breakdown.IGSTAmt
	bill.CESS = breakdown.CESSAmt
	bill.DiscountType = input.Discount.Type
	if input.Discount.Type == enum.DiscountTypePercentage {
		bill.DiscPer = input.Discount.Value
	} else {
		bill.DiscPer = 0
	}
	bill.Discount = breakdown.GrandTotal - total
	bill.DiscGivenBy = input.Discount.GivenBy
	bill.DiscReason = input.Discount.Reason
	bill.Amount = total
	bill.UserID = input.UserID

	if err := s.billRepo.SaveWithItems(ctx, bill, billItems); err != nil {
		s.logger.Error().Err(err).Str("txn_no", bill.TxnNo).Msg("KOT save failed")
		return nil, err
	}

	if input.TableID != nil {
		if err := s.tableRepo.UpdateStatus(ctx, *input.TableID, enum.TableStatusRunning); err != nil {
			s.logger.Warn().Err(err).Uint("table_id", *input.TableID).Msg("table status update failed after save")
		}
	}

	settings, _ := s.outletService.GetSettings(ctx, input.OutletID)
	if len(newBatch) > 0 && (settings == nil || settings.PrintKOTOnSave) {
		saved, err := s.billRepo.GetWithItems(ctx, bill.ID)
		if err == nil && saved != nil {
			// A failed print never fails the save
			if err := s.printerService.PrintKOT(saved, newBatch, kotNo, settings); err != nil {
				s.logger.Warn().Err(err).Str("kot_no", kotNo).Msg("kitchen print failed")
			}
		}
	}

	s.hub.Broadcast(ws.TypeKOTSaved, map[string]interface{}{
		"bill_id":  bill.ID,
		"order_no": bill.OrderNo,
		"tableid":  bill.TableID,
	})

	s.logger.Info().
		Str("txn_no", bill.TxnNo).
		Int("order_no", bill.OrderNo).
		Int("lines", len(billItems)).
		Int("new_lines", len(newBatch)).
		Float64("amount", billing.Round2(bill.Amount)).
		Msg("KOT saved")

	return s.billRepo.GetWithItems(ctx, bill.ID)
}

func (s *BillingService) loadOrCreateBill(ctx context.Context, input *SaveKOTInput) (*entity.Bill, error) {
	if input.BillID != nil {
		bill, err := s.billRepo.GetByID(ctx, *input.BillID)
		if err != nil {
			return nil, err
		}
		if bill == nil {
			return nil, apperror.NewNotFoundError("Bill")
		}
		if !bill.IsOpen() {
			return nil, apperror.ErrBillAlreadySettled
		}
		return bill, nil
	}

	// Resuming a running table continues its open bill
	if input.TableID != nil {
		bill, err := s.billRepo.GetOpenByTable(ctx, *input.TableID)
		if err != nil {
			return nil, err
		}
		if bill != nil {
			return bill, nil
		}
	}

	orderNo, err := s.billRepo.NextOrderNo(ctx, input.OutletID)
	if err != nil {
		return nil, err
	}
	return &entity.Bill{
		TxnNo:    fmt.Sprintf("TXN-%s-%04d", time.Now().Format("20060102"), orderNo),
		OrderNo:  orderNo,
		OutletID: input.OutletID,
	}, nil
}

// nextKOTNo numbers the new KOT batch after the highest batch already on
// the bill. Lines keep the KOT number of the batch that introduced them.
func (s *BillingService) nextKOTNo(bill *entity.Bill, items []billing.LineItem) string {
	seq := 0
	for _, line := range items {
		idx := strings.LastIndex(line.KOTRef, "-")
		if idx < 0 {
			continue
		}
		if n, err := strconv.Atoi(line.KOTRef[idx+1:]); err == nil && n > seq {
			seq = n
		}
	}
	return fmt.Sprintf("KOT-%d-%d", bill.OrderNo, seq+1)
}

// GetBill retrieves a bill with its items
func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListSavedKOTs returns open bills that have at least one KOT line,
// narrowed by the optional billed/table filter
func (s *BillingService) ListSavedKOTs(ctx context.Context, outletID uint, filter *repository.SavedKOTFilter) ([]entity.Bill, error) {
	return s.billRepo.ListSavedKOTs(ctx, outletID, filter)
}

// ListBills returns the bill history matching the filter
func (s *BillingService) ListBills(ctx context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	return s.billRepo.List(ctx, params)
}

// TableBillStatus is the billing state of one table
type TableBillStatus struct {
	TableID uint             `json:"tableid"`
	Status  enum.TableStatus `json:"status"`
	Bill    *entity.Bill     `json:"bill,omitempty"`
}

// GetTableBillStatus derives the table's display status from its stored
// status code and latest open bill
func (s *BillingService) GetTableBillStatus(ctx context.Context, tableID uint) (*TableBillStatus, error) {
	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	result := &TableBillStatus{TableID: tableID}

	bill, err := s.billRepo.GetOpenByTable(ctx, tableID)
	if err != nil {
		// Degrade to the raw status code rather than failing the lookup
		s.logger.Warn().Err(err).Uint("table_id", tableID).Msg("open bill lookup failed")
		result.Status = tablestate.DeriveWithoutBill(int(table.Status))
		return result, nil
	}

	snap := tablestate.Snapshot{StatusCode: int(table.Status)}
	if bill != nil {
		snap.IsBilled = bill.IsBilled
		snap.IsSettled = bill.IsSettled
		snap.BillPrintedAt = bill.BillPrintedAt

		full, err := s.billRepo.GetWithItems(ctx, bill.ID)
		if err == nil && full != nil {
			result.Bill = full
		}
	}
	timeout := s.outletService.PrintedTimeout(ctx, table.OutletID)
	result.Status = tablestate.Derive(snap, time.Now(), timeout)
	return result, nil
}

// PrintBill marks the bill as printed, moves its table to printed state and
// sends the bill to the counter printer
func (s *BillingService) PrintBill(ctx context.Context, billID uuid.UUID) (*entity.Bill, error) {
	bill, err := s.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	if !bill.IsOpen() {
		return nil, apperror.ErrBillAlreadySettled
	}

	now := time.Now()
	bill.IsBilled = 1
	bill.BillPrintedAt = &now
	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	if bill.TableID != nil {
		if err := s.tableRepo.UpdateStatus(ctx, *bill.TableID, enum.TableStatusPrinted); err != nil {
			s.logger.Warn().Err(err).Uint("table_id", *bill.TableID).Msg("table status update failed after bill print")
		}
	}

	outlet, err := s.outletService.GetByID(ctx, bill.OutletID)
	if err == nil {
		settings, _ := s.outletService.GetSettings(ctx, bill.OutletID)
		if err := s.printerService.PrintBill(bill, outlet, settings); err != nil {
			s.logger.Warn().Err(err).Str("txn_no", bill.TxnNo).Msg("bill print failed")
		}
	}

	s.hub.Broadcast(ws.TypeTableUpdate, map[string]interface{}{
		"bill_id": bill.ID,
		"tableid": bill.TableID,
		"status":  enum.TableStatusPrinted,
	})
	return bill, nil
}

// SettleBill closes the bill and frees its table
func (s *BillingService) SettleBill(ctx context.Context, billID uuid.UUID, paymentMode string) (*entity.Bill, error) {
	bill, err := s.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	if !bill.IsOpen() {
		return nil, apperror.ErrBillAlreadySettled
	}

	now := time.Now()
	bill.IsSettled = 1
	bill.SettledAt = &now
	bill.PaymentMode = paymentMode
	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	if bill.TableID != nil {
		if err := s.tableRepo.UpdateStatus(ctx, *bill.TableID, enum.TableStatusAvailable); err != nil {
			s.logger.Warn().Err(err).Uint("table_id", *bill.TableID).Msg("table status update failed after settlement")
		}
	}

	s.hub.Broadcast(ws.TypeBillSettled, map[string]interface{}{
		"bill_id": bill.ID,
		"tableid": bill.TableID,
	})

	s.logger.Info().
		Str("txn_no", bill.TxnNo).
		Str("payment_mode", paymentMode).
		Float64("amount", billing.Round2(bill.Amount)).
		Msg("bill settled")
	return bill, nil
}

// ReverseKOTInput represents a reversal of quantity from a saved line
type ReverseKOTInput struct {
	BillID   uuid.UUID
	ItemID   uuid.UUID
	Qty      float64
	Reason   string
	UserID   uuid.UUID
	UserRole string
}

// ReverseKOT cancels quantity from a saved KOT line and recomputes the bill
// totals from the remaining lines. Reversed lines stay on the bill for the
// audit trail but carry no amounts.
func (s *BillingService) ReverseKOT(ctx context.Context, input *ReverseKOTInput) (*entity.Bill, error) {
	if input.Reason == "" {
		return nil, apperror.NewBadRequestError("A reason is required to reverse a KOT")
	}

	bill, err := s.GetBill(ctx, input.BillID)
	if err != nil {
		return nil, err
	}
	if !bill.IsOpen() {
		return nil, apperror.ErrBillAlreadySettled
	}

	var target *entity.BillItem
	for i := range bill.Items {
		if bill.Items[i].ID == input.ItemID {
			target = &bill.Items[i]
			break
		}
	}
	if target == nil {
		return nil, apperror.NewNotFoundError("Bill item")
	}
	if target.IsReversed == 1 {
		return nil, apperror.NewConflictError("Line is already reversed")
	}
	if input.Qty <= 0 || input.Qty > target.Qty {
		return nil, apperror.NewBadRequestError("Reversal quantity exceeds the line quantity")
	}

	rates := s.taxRateService.GetRates(ctx, bill.OutletID, bill.DepartmentID)

	if input.Qty == target.Qty {
		target.IsReversed = 1
		target.RevQty = target.Qty
		target.Qty = 0
		target.Total = 0
		target.CGST, target.SGST, target.IGST, target.CESS = 0, 0, 0, 0
	} else {
		target.RevQty += input.Qty
		target.Qty -= input.Qty
	}
	target.RevReason = input.Reason

	// Recompute every active line and the header from what remains
	active := make([]billing.LineItem, 0, len(bill.Items))
	for i := range bill.Items {
		item := &bill.Items[i]
		if item.IsReversed == 1 {
			continue
		}
		line := billing.PerLineTax(billing.LineItem{
			ItemCode:  item.ItemCode,
			ItemName:  item.ItemName,
			Quantity:  item.Qty,
			Rate:      item.Rate,
			LineTotal: item.Qty * item.Rate,
			KOTRef:    item.KOTNo,
			Note:      item.Note,
		}, rates)
		item.Total = line.LineTotal
		item.CGST, item.SGST, item.IGST, item.CESS = line.CGST, line.SGST, line.IGST, line.CESS
		active = append(active, line)
	}
	breakdown := billing.ComputeBreakdown(active, rates)

	bill.GrossAmt = breakdown.Subtotal
	bill.CGST = breakdown.CGSTAmt
	bill.SGST = breakdown.SGSTAmt
	bill.IGST = breakdown.IGSTAmt
	bill.CESS = breakdown.CESSAmt

	// The discount is re-derived from the new grand total: a percentage
	// keeps its rate, an amount is capped so the bill never goes negative.
	if bill.DiscountType == enum.DiscountTypePercentage && bill.DiscPer > 0 {
		bill.Discount = breakdown.GrandTotal * bill.DiscPer / 100
	} else if bill.Discount > breakdown.GrandTotal {
		bill.Discount = breakdown.GrandTotal
	}
	bill.Amount = breakdown.GrandTotal - bill.Discount

	if err := s.billRepo.SaveWithItems(ctx, bill, bill.Items); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("txn_no", bill.TxnNo).
		Str("item", target.ItemName).
		Float64("qty", input.Qty).
		Str("reason", input.Reason).
		Msg("KOT line reversed")

	return s.billRepo.GetWithItems(ctx, bill.ID)
}

// GenerateUPIQR renders the bill's UPI payment string as a PNG QR code
func (s *BillingService) GenerateUPIQR(ctx context.Context, billID uuid.UUID) ([]byte, error) {
	if !s.printerService.HasUPI() {
		return nil, apperror.NewBadRequestError("UPI payments are not configured")
	}

	bill, err := s.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	outlet, err := s.outletService.GetByID(ctx, bill.OutletID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(s.printerService.UPIString(bill, outlet.Name), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode UPI QR: %w", err)
	}
	return png, nil
}
