package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"parking_monitor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Options{})

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/admin/ws", 5 * time.Second},
		{"interval_string_valid", "/admin/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/admin/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/admin/ws?interval=2m", 5 * time.Second},
		{"interval_ms_too_large", "/admin/ws?interval_ms=90000", 5 * time.Second},
		{"interval_invalid_string", "/admin/ws?interval=bogus", 5 * time.Second},
		{"interval_ms_invalid", "/admin/ws?interval_ms=NaN", 5 * time.Second},
		{"both_present_interval_wins", "/admin/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/admin/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestParseInterval_ConfiguredDefault(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Options{StreamInterval: 30 * time.Second})
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/ws", nil)
	if got := h.parseInterval(c); got != 30*time.Second {
		t.Fatalf("got %v, want 30s", got)
	}
}

// --- websocket integration tests ---

type wsTestEnvelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialStream(t *testing.T, s *service.Service, opts Options, query url.Values, hdr http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	srv := httptest.NewServer(newTestRouterWith(s, opts))
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/admin/ws"
	u.RawQuery = query.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	return dialer.Dial(u.String(), hdr)
}

func TestWebSocket_SummaryStream_InitialAndPeriodic(t *testing.T) {
	an := &mockAnalytics{summary: service.SystemSummary{TotalDevices: 3, TotalSlots: 12, TotalOccupied: 5, OccupancyRate: 41.7}}
	s := &service.Service{Analytics: an, Authorization: &mockAuth{claims: adminClaims()}}

	q := url.Values{}
	q.Set("interval_ms", "20") // fast ticks for the test
	q.Set("token", "tok")
	conn, _, err := dialStream(t, s, Options{AuthRequired: true}, q, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	// Read initial summary
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env wsTestEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "summary" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var sum service.SystemSummary
	if err := json.Unmarshal(env.Data, &sum); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if sum.TotalDevices != 3 || sum.TotalOccupied != 5 || sum.OccupancyRate != 41.7 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	// Read a subsequent tick
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = wsTestEnvelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "summary" {
		t.Fatalf("expected type=summary, got %+v", env)
	}
}

func TestWebSocket_RejectsWithoutToken(t *testing.T) {
	s := &service.Service{Analytics: &mockAnalytics{}, Authorization: &mockAuth{claims: adminClaims()}}

	_, resp, err := dialStream(t, s, Options{AuthRequired: true}, url.Values{}, nil)
	if err == nil {
		t.Fatalf("expected handshake failure without token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}
}

func TestWebSocket_SummaryErrorSendsErrorFrame(t *testing.T) {
	an := &mockAnalytics{err: errors.New("boom")}
	s := &service.Service{Analytics: an, Authorization: &mockAuth{claims: adminClaims()}}

	hdr := authHeader("tok")
	conn, _, err := dialStream(t, s, Options{AuthRequired: true}, url.Values{}, hdr)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env wsTestEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Type != "error" || env.Error != errInternal || len(env.Data) != 0 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
