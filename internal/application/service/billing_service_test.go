package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/restroworks/restropos-api/internal/config"
	"github.com/restroworks/restropos-api/internal/domain/billing"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/domain/enum"
	"github.com/restroworks/restropos-api/internal/domain/repository"
	infraRepo "github.com/restroworks/restropos-api/internal/infrastructure/repository"
	"github.com/restroworks/restropos-api/internal/presentation/ws"
	"github.com/restroworks/restropos-api/pkg/apperror"
	"github.com/restroworks/restropos-api/pkg/printer"
)

type billingTestEnv struct {
	db       *gorm.DB
	billing  *BillingService
	tables   *TableService
	taxRates *TaxRateService
	outlets  *OutletService
}

func newBillingTestEnv(t *testing.T) *billingTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&entity.Outlet{},
		&entity.OutletSettings{},
		&entity.Department{},
		&entity.Table{},
		&entity.Customer{},
		&entity.TaxRate{},
		&entity.Bill{},
		&entity.BillItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	seed := []interface{}{
		&entity.Outlet{ID: 1, Name: "Test Outlet", Code: "MAIN"},
		&entity.Department{ID: 1, Name: "Restaurant", OutletID: 1},
		&entity.Table{ID: 1, Name: "T1", OutletID: 1, DepartmentID: 1, Capacity: 4},
		&entity.Table{ID: 2, Name: "T2", OutletID: 1, DepartmentID: 1, Capacity: 2},
		&entity.TaxRate{OutletID: 1, DepartmentID: 1, CGSTPct: 2.5, SGSTPct: 2.5},
	}
	for _, row := range seed {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}

	logger := zerolog.Nop()
	billRepo := infraRepo.NewBillRepository(db)
	tableRepo := infraRepo.NewTableRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	taxRates := NewTaxRateService(infraRepo.NewTaxRateRepository(db), logger)
	outlets := NewOutletService(
		infraRepo.NewOutletRepository(db),
		infraRepo.NewSettingsRepository(db),
		infraRepo.NewDepartmentRepository(db),
		config.BillingConfig{StaffDiscountPct: 20},
	)
	printers := NewPrinterService(printer.NewNullPrinter(), printer.NewNullPrinter(), "none", "none", 48, "", logger)
	hub := ws.NewHub(logger)

	return &billingTestEnv{
		db:       db,
		billing:  NewBillingService(billRepo, tableRepo, customerRepo, taxRates, outlets, printers, hub, logger),
		tables:   NewTableService(tableRepo, billRepo, outlets, logger),
		taxRates: taxRates,
		outlets:  outlets,
	}
}

func uintPtr(v uint) *uint { return &v }

func dineInInput(tableID uint, items []billing.LineItem) *SaveKOTInput {
	return &SaveKOTInput{
		OutletID:     1,
		DepartmentID: 1,
		TableID:      uintPtr(tableID),
		OrderType:    enum.OrderTypeDineIn,
		Items:        items,
		UserID:       uuid.New(),
		UserRole:     entity.RoleCashier,
	}
}

func TestSaveKOTComputesTotalsServerSide(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	// Client-sent tax columns must be ignored and recomputed
	bill, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", ItemName: "Plain Dosa", Quantity: 2, Rate: 80, CGST: 999},
		{ItemCode: "CFE", ItemName: "Filter Coffee", Quantity: 3, Rate: 30, SGST: 999},
	}))
	if err != nil {
		t.Fatalf("SaveKOT: %v", err)
	}

	if bill.GrossAmt != 250 {
		t.Errorf("gross = %v, want 250", bill.GrossAmt)
	}
	if bill.CGST != 6.25 || bill.SGST != 6.25 {
		t.Errorf("cgst/sgst = %v/%v, want 6.25/6.25", bill.CGST, bill.SGST)
	}
	if bill.Amount != 262.5 {
		t.Errorf("amount = %v, want 262.5", bill.Amount)
	}
	if bill.OrderNo != 1 {
		t.Errorf("order no = %d, want 1", bill.OrderNo)
	}

	if len(bill.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(bill.Items))
	}
	for _, item := range bill.Items {
		// Each line's taxes come from its own subtotal
		if math.Abs(item.CGST-item.Total*2.5/100) > 1e-9 {
			t.Errorf("%s: cgst = %v, want %v", item.ItemCode, item.CGST, item.Total*2.5/100)
		}
		if item.KOTNo != "KOT-1-1" {
			t.Errorf("%s: kot no = %q, want KOT-1-1", item.ItemCode, item.KOTNo)
		}
	}
}

func TestSaveKOTRejectsEmptyOrder(t *testing.T) {
	env := newBillingTestEnv(t)

	_, err := env.billing.SaveKOT(context.Background(), dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", Quantity: 0, Rate: 80},
	}))
	if !errors.Is(err, apperror.ErrEmptyBill) {
		t.Errorf("err = %v, want ErrEmptyBill", err)
	}
}

func TestSaveKOTDineInNeedsTable(t *testing.T) {
	env := newBillingTestEnv(t)

	input := dineInInput(1, []billing.LineItem{{ItemCode: "DOSA", Quantity: 1, Rate: 80}})
	input.TableID = nil
	if _, err := env.billing.SaveKOT(context.Background(), input); err == nil {
		t.Error("dine-in without table accepted")
	}

	// Pickup orders have no table
	input.OrderType = enum.OrderTypePickup
	if _, err := env.billing.SaveKOT(context.Background(), input); err != nil {
		t.Errorf("pickup without table rejected: %v", err)
	}
}

func TestSaveKOTRejectsForeignTable(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	seed := []interface{}{
		&entity.Department{ID: 2, Name: "Garden", OutletID: 1},
		&entity.Table{ID: 9, Name: "G1", OutletID: 1, DepartmentID: 2},
		&entity.Outlet{ID: 2, Name: "Branch", Code: "BR1"},
		&entity.Table{ID: 10, Name: "B1", OutletID: 2, DepartmentID: 1},
	}
	for _, row := range seed {
		if err := env.db.Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}

	// Table from another department of the same outlet
	if _, err := env.billing.SaveKOT(ctx, dineInInput(9, []billing.LineItem{
		{ItemCode: "DOSA", Quantity: 1, Rate: 80},
	})); err == nil {
		t.Error("table from another department accepted")
	}

	// Table from another outlet
	if _, err := env.billing.SaveKOT(ctx, dineInInput(10, []billing.LineItem{
		{ItemCode: "DOSA", Quantity: 1, Rate: 80},
	})); err == nil {
		t.Error("table from another outlet accepted")
	}

	// Nothing was written
	var count int64
	if err := env.db.Model(&entity.Bill{}).Count(&count).Error; err != nil {
		t.Fatalf("count bills: %v", err)
	}
	if count != 0 {
		t.Errorf("found %d bills after rejected saves, want 0", count)
	}
}

func TestSaveKOTResumesOpenTableBill(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	first, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", ItemName: "Plain Dosa", Quantity: 2, Rate: 80},
	}))
	if err != nil {
		t.Fatalf("first save: %v", err)
	}

	// A second save on the same table without a bill ID continues the
	// open bill; lines already on a KOT keep their batch number.
	second, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", ItemName: "Plain Dosa", Quantity: 2, Rate: 80, KOTRef: "KOT-1-1"},
		{ItemCode: "CFE", ItemName: "Filter Coffee", Quantity: 1, Rate: 30},
	}))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("second save created a new bill")
	}
	if second.OrderNo != first.OrderNo {
		t.Errorf("order no changed: %d -> %d", first.OrderNo, second.OrderNo)
	}

	kots := map[string]string{}
	for _, item := range second.Items {
		kots[item.ItemCode] = item.KOTNo
	}
	if kots["DOSA"] != "KOT-1-1" {
		t.Errorf("existing line kot = %q, want KOT-1-1", kots["DOSA"])
	}
	if kots["CFE"] != "KOT-1-2" {
		t.Errorf("new line kot = %q, want KOT-1-2", kots["CFE"])
	}
}

func TestSaveKOTFailureLeavesBillUnchanged(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	saved, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", ItemName: "Plain Dosa", Quantity: 2, Rate: 80},
	}))
	if err != nil {
		t.Fatalf("initial save: %v", err)
	}

	// Make the next line insert blow up mid-transaction
	err = env.db.Exec(`CREATE TRIGGER block_boom BEFORE INSERT ON rest_transaction_details
		WHEN NEW.item_code = 'BOOM'
		BEGIN SELECT RAISE(ABORT, 'blocked by test'); END`).Error
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	input := dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", ItemName: "Plain Dosa", Quantity: 5, Rate: 80, KOTRef: "KOT-1-1"},
		{ItemCode: "BOOM", ItemName: "Poisoned Line", Quantity: 1, Rate: 10},
	})
	input.BillID = &saved.ID
	if _, err := env.billing.SaveKOT(ctx, input); err == nil {
		t.Fatal("save with poisoned line succeeded")
	}

	// The failed save must roll back wholesale: old lines, old totals
	after, err := env.billing.GetBill(ctx, saved.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(after.Items) != 1 {
		t.Fatalf("got %d items after failed save, want 1", len(after.Items))
	}
	if after.Items[0].Qty != 2 {
		t.Errorf("qty = %v after failed save, want 2", after.Items[0].Qty)
	}
	if after.Amount != saved.Amount {
		t.Errorf("amount = %v after failed save, want %v", after.Amount, saved.Amount)
	}
}

func TestSaveKOTDiscountApproval(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	input := dineInInput(1, []billing.LineItem{{ItemCode: "DOSA", Quantity: 2, Rate: 500}})
	input.Discount = billing.Discount{Type: enum.DiscountTypePercentage, Value: 25, GivenBy: "shift lead"}

	_, err := env.billing.SaveKOT(ctx, input)
	if !errors.Is(err, apperror.ErrDiscountRequiresApproval) {
		t.Fatalf("cashier 25%% discount: err = %v, want ErrDiscountRequiresApproval", err)
	}

	input.UserRole = entity.RoleAdmin
	bill, err := env.billing.SaveKOT(ctx, input)
	if err != nil {
		t.Fatalf("admin 25%% discount: %v", err)
	}
	if bill.Amount != 1050*0.75 {
		t.Errorf("amount = %v, want %v", bill.Amount, 1050*0.75)
	}
	if bill.Discount != 1050*0.25 {
		t.Errorf("discount = %v, want %v", bill.Discount, 1050*0.25)
	}
	if bill.DiscPer != 25 {
		t.Errorf("disc pct = %v, want 25", bill.DiscPer)
	}
}

func TestListSavedKOTsFilters(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	billA, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", Quantity: 2, Rate: 80},
	}))
	if err != nil {
		t.Fatalf("save A: %v", err)
	}
	billB, err := env.billing.SaveKOT(ctx, dineInInput(2, []billing.LineItem{
		{ItemCode: "CFE", Quantity: 1, Rate: 30},
	}))
	if err != nil {
		t.Fatalf("save B: %v", err)
	}
	if _, err := env.billing.PrintBill(ctx, billB.ID); err != nil {
		t.Fatalf("print B: %v", err)
	}

	all, err := env.billing.ListSavedKOTs(ctx, 1, nil)
	if err != nil {
		t.Fatalf("unfiltered list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered = %d bills, want 2", len(all))
	}

	// The saved-KOT screen asks for unbilled orders only
	unbilled := 0
	bills, err := env.billing.ListSavedKOTs(ctx, 1, &repository.SavedKOTFilter{IsBilled: &unbilled})
	if err != nil {
		t.Fatalf("is_billed filter: %v", err)
	}
	if len(bills) != 1 || bills[0].ID != billA.ID {
		t.Errorf("is_billed=0 returned %d bills, want only the unprinted one", len(bills))
	}

	tableID := uint(2)
	bills, err = env.billing.ListSavedKOTs(ctx, 1, &repository.SavedKOTFilter{TableID: &tableID})
	if err != nil {
		t.Fatalf("table filter: %v", err)
	}
	if len(bills) != 1 || bills[0].ID != billB.ID {
		t.Errorf("table_id=2 returned %d bills, want only its own", len(bills))
	}
}

func TestSettleBillFreesTable(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	bill, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", Quantity: 2, Rate: 80},
	}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	var table entity.Table
	if err := env.db.First(&table, 1).Error; err != nil {
		t.Fatalf("load table: %v", err)
	}
	if table.Status != enum.TableStatusRunning {
		t.Errorf("table after save = %v, want running", table.Status)
	}

	settled, err := env.billing.SettleBill(ctx, bill.ID, "cash")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if settled.IsSettled != 1 || settled.SettledAt == nil {
		t.Errorf("settled flags = %d/%v", settled.IsSettled, settled.SettledAt)
	}
	if settled.PaymentMode != "cash" {
		t.Errorf("payment mode = %q, want cash", settled.PaymentMode)
	}

	if err := env.db.First(&table, 1).Error; err != nil {
		t.Fatalf("reload table: %v", err)
	}
	if table.Status != enum.TableStatusAvailable {
		t.Errorf("table after settle = %v, want available", table.Status)
	}

	if _, err := env.billing.SettleBill(ctx, bill.ID, "cash"); !errors.Is(err, apperror.ErrBillAlreadySettled) {
		t.Errorf("double settle: err = %v, want ErrBillAlreadySettled", err)
	}

	// A settled bill cannot take more KOTs
	input := dineInInput(1, []billing.LineItem{{ItemCode: "CFE", Quantity: 1, Rate: 30}})
	input.BillID = &bill.ID
	if _, err := env.billing.SaveKOT(ctx, input); !errors.Is(err, apperror.ErrBillAlreadySettled) {
		t.Errorf("save on settled bill: err = %v, want ErrBillAlreadySettled", err)
	}
}

func TestPrintBillMarksPrinted(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	bill, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", Quantity: 2, Rate: 80},
	}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	printed, err := env.billing.PrintBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if printed.IsBilled != 1 || printed.BillPrintedAt == nil {
		t.Errorf("printed flags = %d/%v", printed.IsBilled, printed.BillPrintedAt)
	}

	var table entity.Table
	if err := env.db.First(&table, 1).Error; err != nil {
		t.Fatalf("load table: %v", err)
	}
	if table.Status != enum.TableStatusPrinted {
		t.Errorf("table after print = %v, want printed", table.Status)
	}
}

func TestGetTableBillStatusLifecycle(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	status, err := env.billing.GetTableBillStatus(ctx, 1)
	if err != nil {
		t.Fatalf("status of idle table: %v", err)
	}
	if status.Status != enum.TableStatusAvailable || status.Bill != nil {
		t.Errorf("idle table = %v/%v, want available/no bill", status.Status, status.Bill)
	}

	bill, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", Quantity: 2, Rate: 80},
	}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	status, err = env.billing.GetTableBillStatus(ctx, 1)
	if err != nil {
		t.Fatalf("status of running table: %v", err)
	}
	if status.Status != enum.TableStatusRunning {
		t.Errorf("running table = %v, want running", status.Status)
	}
	if status.Bill == nil || status.Bill.ID != bill.ID {
		t.Error("running table did not carry its open bill")
	}

	if _, err := env.billing.PrintBill(ctx, bill.ID); err != nil {
		t.Fatalf("print: %v", err)
	}
	status, err = env.billing.GetTableBillStatus(ctx, 1)
	if err != nil {
		t.Fatalf("status of printed table: %v", err)
	}
	if status.Status != enum.TableStatusPrinted {
		t.Errorf("printed table = %v, want printed", status.Status)
	}

	if _, err := env.billing.SettleBill(ctx, bill.ID, "upi"); err != nil {
		t.Fatalf("settle: %v", err)
	}
	status, err = env.billing.GetTableBillStatus(ctx, 1)
	if err != nil {
		t.Fatalf("status of settled table: %v", err)
	}
	if status.Status != enum.TableStatusAvailable {
		t.Errorf("settled table = %v, want available", status.Status)
	}
}

func TestReverseKOTRecomputesTotals(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	bill, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", ItemName: "Plain Dosa", Quantity: 2, Rate: 80},
		{ItemCode: "CFE", ItemName: "Filter Coffee", Quantity: 3, Rate: 30},
	}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	var coffee *entity.BillItem
	for i := range bill.Items {
		if bill.Items[i].ItemCode == "CFE" {
			coffee = &bill.Items[i]
		}
	}
	if coffee == nil {
		t.Fatal("coffee line missing")
	}

	// No reason, no reversal
	_, err = env.billing.ReverseKOT(ctx, &ReverseKOTInput{
		BillID: bill.ID, ItemID: coffee.ID, Qty: 3,
	})
	if err == nil {
		t.Fatal("reversal without reason accepted")
	}

	reversed, err := env.billing.ReverseKOT(ctx, &ReverseKOTInput{
		BillID: bill.ID, ItemID: coffee.ID, Qty: 3, Reason: "spilled",
	})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}

	for _, item := range reversed.Items {
		if item.ItemCode != "CFE" {
			continue
		}
		if item.IsReversed != 1 || item.Qty != 0 || item.Total != 0 || item.CGST != 0 {
			t.Errorf("reversed line not zeroed: %+v", item)
		}
		if item.RevQty != 3 || item.RevReason != "spilled" {
			t.Errorf("reversal audit = %v/%q", item.RevQty, item.RevReason)
		}
	}

	// Totals now reflect only the dosa line
	if reversed.GrossAmt != 160 {
		t.Errorf("gross = %v, want 160", reversed.GrossAmt)
	}
	if reversed.Amount != 168 {
		t.Errorf("amount = %v, want 168", reversed.Amount)
	}
}

func TestReverseKOTReappliesPercentageDiscount(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	// A full write-off: gross 250, grand 262.5, discount 262.5, amount 0
	input := dineInInput(1, []billing.LineItem{
		{ItemCode: "THALI", ItemName: "Special Thali", Quantity: 1, Rate: 200},
		{ItemCode: "CFE", ItemName: "Filter Coffee", Quantity: 1, Rate: 50},
	})
	input.Discount = billing.Discount{Type: enum.DiscountTypePercentage, Value: 100, GivenBy: "owner"}
	input.UserRole = entity.RoleAdmin

	bill, err := env.billing.SaveKOT(ctx, input)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if bill.Amount != 0 {
		t.Fatalf("amount = %v, want 0", bill.Amount)
	}

	var thali *entity.BillItem
	for i := range bill.Items {
		if bill.Items[i].ItemCode == "THALI" {
			thali = &bill.Items[i]
		}
	}
	if thali == nil {
		t.Fatal("thali line missing")
	}

	reversed, err := env.billing.ReverseKOT(ctx, &ReverseKOTInput{
		BillID: bill.ID, ItemID: thali.ID, Qty: 1, Reason: "sent back",
	})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}

	// The percentage keeps its rate against the new base
	if reversed.GrossAmt != 50 {
		t.Errorf("gross = %v, want 50", reversed.GrossAmt)
	}
	if reversed.Discount != 52.5 {
		t.Errorf("discount = %v, want 52.5", reversed.Discount)
	}
	if reversed.Amount != 0 {
		t.Errorf("amount = %v, want 0", reversed.Amount)
	}
	if reversed.Amount < 0 {
		t.Errorf("bill went negative: %v", reversed.Amount)
	}
}

func TestReverseKOTCapsAmountDiscount(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	input := dineInInput(1, []billing.LineItem{
		{ItemCode: "THALI", ItemName: "Special Thali", Quantity: 1, Rate: 200},
		{ItemCode: "CFE", ItemName: "Filter Coffee", Quantity: 1, Rate: 50},
	})
	input.Discount = billing.Discount{Type: enum.DiscountTypeAmount, Value: 100, GivenBy: "owner"}

	bill, err := env.billing.SaveKOT(ctx, input)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if bill.Amount != 162.5 {
		t.Fatalf("amount = %v, want 162.5", bill.Amount)
	}

	var thali *entity.BillItem
	for i := range bill.Items {
		if bill.Items[i].ItemCode == "THALI" {
			thali = &bill.Items[i]
		}
	}
	if thali == nil {
		t.Fatal("thali line missing")
	}

	// The remaining grand total (52.5) is below the 100 amount discount,
	// so the discount caps at the total instead of going negative.
	reversed, err := env.billing.ReverseKOT(ctx, &ReverseKOTInput{
		BillID: bill.ID, ItemID: thali.ID, Qty: 1, Reason: "sent back",
	})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if reversed.Discount != 52.5 {
		t.Errorf("discount = %v, want 52.5", reversed.Discount)
	}
	if reversed.Amount != 0 {
		t.Errorf("amount = %v, want 0", reversed.Amount)
	}
}

func TestReverseKOTPartialQuantity(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	bill, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", ItemName: "Plain Dosa", Quantity: 3, Rate: 80},
	}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := env.billing.ReverseKOT(ctx, &ReverseKOTInput{
		BillID: bill.ID, ItemID: bill.Items[0].ID, Qty: 5, Reason: "over-reverse",
	}); err == nil {
		t.Fatal("reversal above line quantity accepted")
	}

	reversed, err := env.billing.ReverseKOT(ctx, &ReverseKOTInput{
		BillID: bill.ID, ItemID: bill.Items[0].ID, Qty: 1, Reason: "one returned",
	})
	if err != nil {
		t.Fatalf("partial reverse: %v", err)
	}

	line := reversed.Items[0]
	if line.Qty != 2 || line.RevQty != 1 || line.IsReversed != 0 {
		t.Errorf("partial reversal line = qty %v rev %v flag %d", line.Qty, line.RevQty, line.IsReversed)
	}
	if line.Total != 160 {
		t.Errorf("line total = %v, want 160", line.Total)
	}
	if reversed.GrossAmt != 160 || reversed.Amount != 168 {
		t.Errorf("totals = %v/%v, want 160/168", reversed.GrossAmt, reversed.Amount)
	}
}
