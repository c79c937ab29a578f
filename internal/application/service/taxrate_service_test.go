package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/restroworks/restropos-api/internal/domain/billing"
	"github.com/restroworks/restropos-api/internal/domain/entity"
)

// stubTaxRateRepo lets a test pause an in-flight lookup to interleave it
// with a rate update.
type stubTaxRateRepo struct {
	mu      sync.Mutex
	rates   map[string]*entity.TaxRate
	err     error
	gate    chan struct{}
	fetches int
}

func newStubTaxRateRepo() *stubTaxRateRepo {
	return &stubTaxRateRepo{rates: make(map[string]*entity.TaxRate)}
}

func (r *stubTaxRateRepo) GetByOutletDepartment(ctx context.Context, outletID, departmentID uint) (*entity.TaxRate, error) {
	r.mu.Lock()
	gate := r.gate
	r.fetches++
	row := r.rates[rateKey(outletID, departmentID)]
	err := r.err
	r.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *stubTaxRateRepo) List(ctx context.Context, outletID uint) ([]entity.TaxRate, error) {
	return nil, nil
}

func (r *stubTaxRateRepo) Upsert(ctx context.Context, rate *entity.TaxRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *rate
	r.rates[rateKey(rate.OutletID, rate.DepartmentID)] = &copied
	return nil
}

func (r *stubTaxRateRepo) set(rate *entity.TaxRate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *rate
	r.rates[rateKey(rate.OutletID, rate.DepartmentID)] = &copied
}

func TestGetRatesUsesStoredRow(t *testing.T) {
	repo := newStubTaxRateRepo()
	repo.set(&entity.TaxRate{OutletID: 1, DepartmentID: 2, CGSTPct: 9, SGSTPct: 9, CESSPct: 1})
	svc := NewTaxRateService(repo, zerolog.Nop())

	got := svc.GetRates(context.Background(), 1, 2)
	want := billing.TaxRates{CGSTPct: 9, SGSTPct: 9, CESSPct: 1}
	if got != want {
		t.Errorf("rates = %+v, want %+v", got, want)
	}
}

func TestGetRatesDefaultsWhenNoRow(t *testing.T) {
	svc := NewTaxRateService(newStubTaxRateRepo(), zerolog.Nop())

	if got := svc.GetRates(context.Background(), 1, 99); got != DefaultTaxRates {
		t.Errorf("rates = %+v, want defaults %+v", got, DefaultTaxRates)
	}
}

func TestGetRatesDefaultsOnLookupFailure(t *testing.T) {
	repo := newStubTaxRateRepo()
	repo.err = errors.New("database down")
	svc := NewTaxRateService(repo, zerolog.Nop())

	// Billing keeps working on the default split
	if got := svc.GetRates(context.Background(), 1, 1); got != DefaultTaxRates {
		t.Errorf("rates = %+v, want defaults %+v", got, DefaultTaxRates)
	}

	// The failure is not cached
	repo.mu.Lock()
	repo.err = nil
	repo.mu.Unlock()
	repo.set(&entity.TaxRate{OutletID: 1, DepartmentID: 1, CGSTPct: 6, SGSTPct: 6})

	want := billing.TaxRates{CGSTPct: 6, SGSTPct: 6}
	if got := svc.GetRates(context.Background(), 1, 1); got != want {
		t.Errorf("rates after recovery = %+v, want %+v", got, want)
	}
}

func TestGetRatesCachesRow(t *testing.T) {
	repo := newStubTaxRateRepo()
	repo.set(&entity.TaxRate{OutletID: 1, DepartmentID: 1, CGSTPct: 2.5, SGSTPct: 2.5})
	svc := NewTaxRateService(repo, zerolog.Nop())
	ctx := context.Background()

	svc.GetRates(ctx, 1, 1)
	svc.GetRates(ctx, 1, 1)
	svc.GetRates(ctx, 1, 1)

	repo.mu.Lock()
	fetches := repo.fetches
	repo.mu.Unlock()
	if fetches != 1 {
		t.Errorf("repo fetched %d times, want 1", fetches)
	}
}

func TestSetRatesInvalidatesCache(t *testing.T) {
	repo := newStubTaxRateRepo()
	repo.set(&entity.TaxRate{OutletID: 1, DepartmentID: 1, CGSTPct: 2.5, SGSTPct: 2.5})
	svc := NewTaxRateService(repo, zerolog.Nop())
	ctx := context.Background()

	svc.GetRates(ctx, 1, 1)

	if err := svc.SetRates(ctx, &entity.TaxRate{OutletID: 1, DepartmentID: 1, CGSTPct: 9, SGSTPct: 9}); err != nil {
		t.Fatalf("SetRates: %v", err)
	}

	want := billing.TaxRates{CGSTPct: 9, SGSTPct: 9}
	if got := svc.GetRates(ctx, 1, 1); got != want {
		t.Errorf("rates after update = %+v, want %+v", got, want)
	}
}

func TestStaleFetchCannotPoisonCache(t *testing.T) {
	repo := newStubTaxRateRepo()
	repo.set(&entity.TaxRate{OutletID: 1, DepartmentID: 1, CGSTPct: 2.5, SGSTPct: 2.5})
	svc := NewTaxRateService(repo, zerolog.Nop())
	ctx := context.Background()

	// Hold a lookup in flight while the rates change underneath it
	gate := make(chan struct{})
	repo.mu.Lock()
	repo.gate = gate
	repo.mu.Unlock()

	staleDone := make(chan billing.TaxRates)
	go func() {
		staleDone <- svc.GetRates(ctx, 1, 1)
	}()

	// Wait until the stale fetch has passed the cache check
	for {
		repo.mu.Lock()
		started := repo.fetches > 0
		repo.mu.Unlock()
		if started {
			break
		}
	}

	repo.mu.Lock()
	repo.gate = nil
	repo.mu.Unlock()
	if err := svc.SetRates(ctx, &entity.TaxRate{OutletID: 1, DepartmentID: 1, CGSTPct: 9, SGSTPct: 9}); err != nil {
		t.Fatalf("SetRates: %v", err)
	}

	// Release the stale fetch; it read the pre-update row
	close(gate)
	stale := <-staleDone
	if stale != (billing.TaxRates{CGSTPct: 2.5, SGSTPct: 2.5}) {
		t.Fatalf("stale fetch returned %+v", stale)
	}

	// The stale result must not have been installed: the next read sees
	// the updated rates.
	want := billing.TaxRates{CGSTPct: 9, SGSTPct: 9}
	if got := svc.GetRates(ctx, 1, 1); got != want {
		t.Errorf("rates after stale fetch = %+v, want %+v", got, want)
	}
}
