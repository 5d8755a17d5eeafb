package service

import (
	"context"
	"time"

	"parking_monitor/internal/logger"
)

const defaultStatusInterval = 5 * time.Minute

// summarizer is the read side the reporter needs.
type summarizer interface {
	Summary(ctx context.Context) (SystemSummary, error)
}

// StatusReporterService logs a summary line on every tick. It only reads.
type StatusReporterService struct {
	source summarizer
	log    *logger.Logger
}

func NewStatusReporterService(source summarizer, log *logger.Logger) *StatusReporterService {
	if log == nil {
		log = logger.Nop()
	}
	return &StatusReporterService{source: source, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (s *StatusReporterService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultStatusInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = s.reportOnce(ctx)
		}
	}
}

func (s *StatusReporterService) reportOnce(ctx context.Context) error {
	sum, err := s.source.Summary(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Errorw("status_report_failed", "err", err)
		}
		return err
	}
	s.log.Infow("parking_status",
		"devices", sum.TotalDevices,
		"slots", sum.TotalSlots,
		"occupied", sum.TotalOccupied,
		"available", sum.TotalAvailable,
		"occupancy_rate", sum.OccupancyRate,
		"history_events", sum.TotalChanges,
		"changes_24h", sum.ChangesLast24h,
	)
	return nil
}
