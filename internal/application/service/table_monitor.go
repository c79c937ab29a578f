package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/restroworks/restropos-api/internal/domain/repository"
	"github.com/restroworks/restropos-api/internal/presentation/ws"
)

// TableMonitor periodically re-derives every table's display status and
// pushes the snapshot to connected terminals. The push keeps wall-mounted
// table views current without each of them polling the API.
type TableMonitor struct {
	tableService *TableService
	outletRepo   repository.OutletRepository
	hub          *ws.Hub
	interval     time.Duration
	logger       zerolog.Logger
}

// NewTableMonitor creates a new table monitor
func NewTableMonitor(
	tableService *TableService,
	outletRepo repository.OutletRepository,
	hub *ws.Hub,
	interval time.Duration,
	logger zerolog.Logger,
) *TableMonitor {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &TableMonitor{
		tableService: tableService,
		outletRepo:   outletRepo,
		hub:          hub,
		interval:     interval,
		logger:       logger.With().Str("component", "table_monitor").Logger(),
	}
}

// Run re-derives and broadcasts until ctx is done. A failed cycle is logged
// and retried on the next tick.
func (m *TableMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info().Dur("interval", m.interval).Msg("table monitor started")
	for {
		select {
		case <-ticker.C:
			m.tick(ctx)
		case <-ctx.Done():
			m.logger.Info().Msg("table monitor stopped")
			return
		}
	}
}

func (m *TableMonitor) tick(ctx context.Context) {
	if m.hub.ClientCount() == 0 {
		return
	}

	outlets, err := m.outletRepo.List(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("outlet list failed, skipping cycle")
		return
	}

	now := time.Now()
	for _, outlet := range outlets {
		views, err := m.tableService.ListWithStatus(ctx, outlet.ID, nil, now)
		if err != nil {
			m.logger.Warn().Err(err).Uint("outlet_id", outlet.ID).Msg("table snapshot failed")
			continue
		}
		m.hub.Broadcast(ws.TypeTableFull, map[string]interface{}{
			"outletid": outlet.ID,
			"tables":   views,
		})
	}
}
