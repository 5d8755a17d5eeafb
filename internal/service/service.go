package service

import (
	"context"
	"time"

	"parking_monitor/internal/logger"
	"parking_monitor/internal/models"
	"parking_monitor/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, p RegisterParams) (models.AdminUser, error)
	Authenticate(ctx context.Context, identifier, password, clientIP string) (Token, error)
	Verify(accessToken string) (*Claims, error)
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// Parking ingests device reports and serves the latest snapshots.
type Parking interface {
	Report(ctx context.Context, p ReportParams) (ReportResult, error)
	GetDevice(ctx context.Context, deviceID string) (models.DeviceSnapshot, error)
	ListDevices(ctx context.Context) ([]models.DeviceSnapshot, error)
	Stats(ctx context.Context) (StoreStats, error)
}

// Analytics derives read-only aggregates from snapshots and history.
type Analytics interface {
	Summary(ctx context.Context) (SystemSummary, error)
	Dashboard(ctx context.Context) (Dashboard, error)
	HourlyAnalytics(ctx context.Context, days int) (HourlyAnalytics, error)
	RecentChanges(ctx context.Context, limit int) ([]RecentChange, error)
	SlotStats(ctx context.Context) ([]SlotStat, error)
}

// StatusReporter periodically logs a read-only status line.
// Stop via context cancellation in main() for graceful shutdown.
type StatusReporter interface {
	Run(ctx context.Context, interval time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Parking
	Analytics
	Authorization
	StatusReporter
}

// Options carries the tunables of the service layer.
type Options struct {
	RecentLimit       int
	PeakHours         int
	CivilOffset       time.Duration
	ExtendedAnalytics bool
	Auth              AuthOptions
	Now               func() time.Time
}

func (o Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	analytics := NewAnalyticsService(repos.State, opts)
	return &Service{
		Parking:        NewParkingService(repos.State, opts.clock(), log),
		Analytics:      analytics,
		Authorization:  NewAuthService(repos.Auth, opts.Auth, log),
		StatusReporter: NewStatusReporterService(analytics, log),
	}
}
