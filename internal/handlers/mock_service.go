package handlers

import (
	"context"
	"net/http"

	"parking_monitor/internal/models"
	"parking_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.AdminUser
	registerErr  error
	token        service.Token
	authErr      error
	claims       *service.Claims
	verifyErr    error

	lastRegister   service.RegisterParams
	lastIdentifier string
	lastPassword   string
	lastClientIP   string
	lastVerify     string
}

func (m *mockAuth) Register(ctx context.Context, p service.RegisterParams) (models.AdminUser, error) {
	m.lastRegister = p
	return m.registerUser, m.registerErr
}
func (m *mockAuth) Authenticate(ctx context.Context, identifier, password, clientIP string) (service.Token, error) {
	m.lastIdentifier = identifier
	m.lastPassword = password
	m.lastClientIP = clientIP
	return m.token, m.authErr
}
func (m *mockAuth) Verify(token string) (*service.Claims, error) {
	m.lastVerify = token
	return m.claims, m.verifyErr
}
func (m *mockAuth) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	return false, nil
}

type mockParking struct {
	result  service.ReportResult
	err     error
	device  models.DeviceSnapshot
	getErr  error
	devices []models.DeviceSnapshot
	stats   service.StoreStats

	lastReport service.ReportParams
	lastGet    string
	reports    int
}

func (m *mockParking) Report(ctx context.Context, p service.ReportParams) (service.ReportResult, error) {
	m.reports++
	m.lastReport = p
	return m.result, m.err
}
func (m *mockParking) GetDevice(ctx context.Context, deviceID string) (models.DeviceSnapshot, error) {
	m.lastGet = deviceID
	return m.device, m.getErr
}
func (m *mockParking) ListDevices(ctx context.Context) ([]models.DeviceSnapshot, error) {
	return m.devices, m.err
}
func (m *mockParking) Stats(ctx context.Context) (service.StoreStats, error) {
	return m.stats, m.err
}

type mockAnalytics struct {
	summary   service.SystemSummary
	dashboard service.Dashboard
	hourly    service.HourlyAnalytics
	changes   []service.RecentChange
	slots     []service.SlotStat
	err       error

	lastDays  int
	lastLimit int
}

func (m *mockAnalytics) Summary(ctx context.Context) (service.SystemSummary, error) {
	return m.summary, m.err
}
func (m *mockAnalytics) Dashboard(ctx context.Context) (service.Dashboard, error) {
	return m.dashboard, m.err
}
func (m *mockAnalytics) HourlyAnalytics(ctx context.Context, days int) (service.HourlyAnalytics, error) {
	m.lastDays = days
	return m.hourly, m.err
}
func (m *mockAnalytics) RecentChanges(ctx context.Context, limit int) ([]service.RecentChange, error) {
	m.lastLimit = limit
	return m.changes, m.err
}
func (m *mockAnalytics) SlotStats(ctx context.Context) ([]service.SlotStat, error) {
	return m.slots, m.err
}

// ---- Shared Test Helpers ----

// adminClaims is what a valid admin token verifies to.
func adminClaims() *service.Claims {
	return &service.Claims{UserID: 1, Username: "admin", Role: models.RoleAdmin}
}

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWith(s, Options{AuthRequired: true})
}

func newTestRouterWith(s *service.Service, opts Options) *gin.Engine {
	h := NewHandler(s, nil, opts)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
