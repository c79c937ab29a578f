package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/restroworks/restropos-api/internal/domain/billing"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	"github.com/restroworks/restropos-api/internal/domain/repository"
)

// DefaultTaxRates is the standard restaurant GST split used when no rate
// row exists for an outlet+department pair.
var DefaultTaxRates = billing.TaxRates{CGSTPct: 2.5, SGSTPct: 2.5}

// TaxRateService serves tax percentages to the billing flow with a small
// in-process cache. Each outlet+department key carries a generation counter:
// a fetch that was in flight when the rates were updated is not allowed to
// install its (now stale) result into the cache.
type TaxRateService struct {
	taxRateRepo repository.TaxRateRepository
	logger      zerolog.Logger

	mu    sync.Mutex
	cache map[string]billing.TaxRates
	gens  map[string]uint64
}

// NewTaxRateService creates a new tax rate service
func NewTaxRateService(taxRateRepo repository.TaxRateRepository, logger zerolog.Logger) *TaxRateService {
	return &TaxRateService{
		taxRateRepo: taxRateRepo,
		logger:      logger.With().Str("component", "taxrate").Logger(),
		cache:       make(map[string]billing.TaxRates),
		gens:        make(map[string]uint64),
	}
}

func rateKey(outletID, departmentID uint) string {
	return fmt.Sprintf("%d:%d", outletID, departmentID)
}

// GetRates returns the tax percentages for the outlet+department pair.
// A lookup failure falls back to the default split so billing keeps working
// while the database is unreachable.
func (s *TaxRateService) GetRates(ctx context.Context, outletID, departmentID uint) billing.TaxRates {
	key := rateKey(outletID, departmentID)

	s.mu.Lock()
	if rates, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return rates
	}
	gen := s.gens[key]
	s.mu.Unlock()

	row, err := s.taxRateRepo.GetByOutletDepartment(ctx, outletID, departmentID)
	if err != nil {
		s.logger.Warn().Err(err).
			Uint("outlet_id", outletID).
			Uint("department_id", departmentID).
			Msg("tax rate lookup failed, using defaults")
		return DefaultTaxRates
	}

	rates := DefaultTaxRates
	if row != nil {
		rates = billing.TaxRates{
			CGSTPct: row.CGSTPct,
			SGSTPct: row.SGSTPct,
			IGSTPct: row.IGSTPct,
			CESSPct: row.CESSPct,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[key] != gen {
		// Rates changed while the fetch was in flight. Serve what we read
		// but leave the cache alone so the next caller re-fetches.
		return rates
	}
	s.cache[key] = rates
	return rates
}

// SetRates upserts the rate row and invalidates the cached entry. The
// generation bump ensures an overlapping GetRates fetch cannot resurrect
// the old values.
func (s *TaxRateService) SetRates(ctx context.Context, rate *entity.TaxRate) error {
	if err := s.taxRateRepo.Upsert(ctx, rate); err != nil {
		return err
	}

	key := rateKey(rate.OutletID, rate.DepartmentID)
	s.mu.Lock()
	s.gens[key]++
	delete(s.cache, key)
	s.mu.Unlock()

	s.logger.Info().
		Uint("outlet_id", rate.OutletID).
		Uint("department_id", rate.DepartmentID).
		Float64("cgst", rate.CGSTPct).
		Float64("sgst", rate.SGSTPct).
		Float64("igst", rate.IGSTPct).
		Float64("cess", rate.CESSPct).
		Msg("tax rates updated")
	return nil
}

// List returns all rate rows for the outlet
func (s *TaxRateService) List(ctx context.Context, outletID uint) ([]entity.TaxRate, error) {
	return s.taxRateRepo.List(ctx, outletID)
}
