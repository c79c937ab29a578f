package service

import (
	"context"
	"testing"
	"time"

	"github.com/restroworks/restropos-api/internal/domain/billing"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/domain/enum"
)

func TestListWithStatusDerivesPerTable(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	bill, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", Quantity: 2, Rate: 80},
	}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	views, err := env.tables.ListWithStatus(ctx, 1, nil, time.Now())
	if err != nil {
		t.Fatalf("ListWithStatus: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d tables, want 2", len(views))
	}

	byID := map[uint]TableView{}
	for _, v := range views {
		byID[v.TableID] = v
	}

	if byID[1].Status != enum.TableStatusRunning {
		t.Errorf("occupied table = %v, want running", byID[1].Status)
	}
	if byID[1].BillID == nil || *byID[1].BillID != bill.ID {
		t.Error("occupied table missing its bill reference")
	}
	if byID[1].Amount != bill.Amount {
		t.Errorf("occupied table amount = %v, want %v", byID[1].Amount, bill.Amount)
	}
	if byID[2].Status != enum.TableStatusAvailable {
		t.Errorf("idle table = %v, want available", byID[2].Status)
	}
}

func TestListWithStatusPrintedTimeout(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	bill, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", Quantity: 2, Rate: 80},
	}))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := env.billing.PrintBill(ctx, bill.ID); err != nil {
		t.Fatalf("print: %v", err)
	}

	views, err := env.tables.ListWithStatus(ctx, 1, nil, time.Now())
	if err != nil {
		t.Fatalf("ListWithStatus: %v", err)
	}
	for _, v := range views {
		if v.TableID == 1 && v.Status != enum.TableStatusPrinted {
			t.Errorf("just-printed table = %v, want printed", v.Status)
		}
	}

	// Evaluated past the attention window the same table flips
	views, err = env.tables.ListWithStatus(ctx, 1, nil, time.Now().Add(11*time.Minute))
	if err != nil {
		t.Fatalf("ListWithStatus: %v", err)
	}
	for _, v := range views {
		if v.TableID == 1 && v.Status != enum.TableStatusRunningKOT {
			t.Errorf("overdue printed table = %v, want running-kot", v.Status)
		}
	}
}

func TestListWithStatusSurvivesBillLookupFailure(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	if _, err := env.billing.SaveKOT(ctx, dineInInput(1, []billing.LineItem{
		{ItemCode: "DOSA", Quantity: 2, Rate: 80},
	})); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Break the bill store; the view must degrade to raw status codes
	// instead of failing.
	if err := env.db.Migrator().DropTable(&entity.Bill{}); err != nil {
		t.Fatalf("drop bills: %v", err)
	}

	views, err := env.tables.ListWithStatus(ctx, 1, nil, time.Now())
	if err != nil {
		t.Fatalf("ListWithStatus with broken bill store: %v", err)
	}
	for _, v := range views {
		if v.TableID == 1 && v.Status != enum.TableStatusRunning {
			t.Errorf("degraded table = %v, want running from raw code", v.Status)
		}
	}
}

func TestListWithStatusFiltersByDepartment(t *testing.T) {
	env := newBillingTestEnv(t)
	ctx := context.Background()

	if err := env.db.Create(&entity.Department{ID: 2, Name: "Garden", OutletID: 1}).Error; err != nil {
		t.Fatalf("seed department: %v", err)
	}
	if err := env.db.Create(&entity.Table{ID: 3, Name: "G1", OutletID: 1, DepartmentID: 2}).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}

	dept := uint(2)
	views, err := env.tables.ListWithStatus(ctx, 1, &dept, time.Now())
	if err != nil {
		t.Fatalf("ListWithStatus: %v", err)
	}
	if len(views) != 1 || views[0].TableID != 3 {
		t.Errorf("filtered view = %+v, want only table 3", views)
	}
}
