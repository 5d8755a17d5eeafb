package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"parking_monitor/internal/models"
	"parking_monitor/internal/service"
)

func TestReportStatus_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	park := &mockParking{result: service.ReportResult{
		Snapshot:    models.DeviceSnapshot{DeviceID: "D1", AvailableSlots: 1, TotalSlots: 2, LastUpdate: now},
		Transitions: []models.TransitionEvent{{SlotID: 1}},
	}}
	r := newTestRouter(&service.Service{Parking: park})

	body := `{"deviceId":"D1","timestamp":12345,"wifiStatus":"ok","slots":[{"id":1,"occupied":false},{"id":2,"occupied":true}]}`
	w, env := doRequest(t, r, http.MethodPost, "/parking-status", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var ack struct {
		DeviceID       string    `json:"deviceId"`
		AvailableSlots int       `json:"availableSlots"`
		TotalSlots     int       `json:"totalSlots"`
		Timestamp      time.Time `json:"timestamp"`
		Changes        int       `json:"changes"`
	}
	if err := json.Unmarshal(env.Data, &ack); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success || ack.DeviceID != "D1" || ack.AvailableSlots != 1 || ack.TotalSlots != 2 || ack.Changes != 1 || !ack.Timestamp.Equal(now) {
		t.Fatalf("unexpected ack: %s", w.Body.String())
	}

	p := park.lastReport
	if p.DeviceID != "D1" || p.WifiStatus != "ok" || p.Timestamp != float64(12345) {
		t.Fatalf("unexpected params: %+v", p)
	}
	if string(p.Slots) != `[{"id":1,"occupied":false},{"id":2,"occupied":true}]` {
		t.Fatalf("slots not passed through raw: %s", p.Slots)
	}
	if p.SourceIP == "" {
		t.Fatalf("expected source ip")
	}
}

func TestReportStatus_Rejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		code int
		msg  string
	}{
		{"missing deviceId", `{"slots":[1,0]}`, service.ErrDeviceIDRequired, http.StatusBadRequest, "deviceId is required"},
		{"invalid json", `{"deviceId":`, nil, http.StatusBadRequest, errInvalidBody},
		{"empty body", ``, nil, http.StatusBadRequest, errInvalidBody},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			park := &mockParking{err: tc.err}
			r := newTestRouter(&service.Service{Parking: park})

			w, env := doRequest(t, r, http.MethodPost, "/parking-status", tc.body, nil)
			if w.Code != tc.code || env.Error != tc.msg || env.Success {
				t.Fatalf("got %d %s, want %d %q", w.Code, w.Body.String(), tc.code, tc.msg)
			}
		})
	}
}

func TestReportStatus_RateLimited(t *testing.T) {
	park := &mockParking{}
	r := newTestRouterWith(&service.Service{Parking: park}, Options{RateLimitPerSec: 0.0001, RateBurst: 1})

	w, _ := doRequest(t, r, http.MethodPost, "/parking-status", `{"deviceId":"D1","slots":[]}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("first report: %d", w.Code)
	}
	w, env := doRequest(t, r, http.MethodPost, "/parking-status", `{"deviceId":"D1","slots":[]}`, nil)
	if w.Code != http.StatusTooManyRequests || env.Success {
		t.Fatalf("expected 429, got %d %s", w.Code, w.Body.String())
	}
	if park.reports != 1 {
		t.Fatalf("limited report reached the service")
	}
}

func TestGetStatus_Device(t *testing.T) {
	park := &mockParking{device: models.DeviceSnapshot{DeviceID: "D2", TotalSlots: 3, AvailableSlots: 2, Slots: []models.Slot{{ID: 1}, {ID: 2, Occupied: true}, {ID: 3}}}}
	r := newTestRouter(&service.Service{Parking: park})

	w, env := doRequest(t, r, http.MethodGet, "/parking-status?deviceId=D2", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var snap models.DeviceSnapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.DeviceID != "D2" || len(snap.Slots) != 3 || !snap.Slots[1].Occupied {
		t.Fatalf("unexpected snapshot: %s", w.Body.String())
	}
	if park.lastGet != "D2" {
		t.Fatalf("GetDevice got %q", park.lastGet)
	}
}

func TestGetStatus_UnknownDevice(t *testing.T) {
	park := &mockParking{getErr: service.ErrDeviceNotFound}
	r := newTestRouter(&service.Service{Parking: park})

	w, env := doRequest(t, r, http.MethodGet, "/parking-status?deviceId=unknown", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env.Success || env.Error != "Device not found" || env.DeviceID != "unknown" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGetStatus_List(t *testing.T) {
	park := &mockParking{devices: []models.DeviceSnapshot{{DeviceID: "A"}, {DeviceID: "B"}}}
	r := newTestRouter(&service.Service{Parking: park})

	w, env := doRequest(t, r, http.MethodGet, "/parking-status", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var list []models.DeviceSnapshot
	_ = json.Unmarshal(env.Data, &list)
	if env.Count == nil || *env.Count != 2 || len(list) != 2 || list[0].DeviceID != "A" {
		t.Fatalf("unexpected list: %s", w.Body.String())
	}
}

func TestGetStatus_ListEmptyIsArray(t *testing.T) {
	park := &mockParking{devices: []models.DeviceSnapshot{}}
	r := newTestRouter(&service.Service{Parking: park})

	w, env := doRequest(t, r, http.MethodGet, "/parking-status", "", nil)
	if w.Code != http.StatusOK || string(env.Data) != "[]" || *env.Count != 0 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	park := &mockParking{stats: service.StoreStats{Devices: 3, HistoryEvents: 17, HistoryCap: 5000}}
	r := newTestRouter(&service.Service{Parking: park})

	w, env := doRequest(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var hb struct {
		Status        string `json:"status"`
		Devices       int    `json:"devices"`
		HistoryEvents int    `json:"historyEvents"`
		HistoryCap    int    `json:"historyCap"`
		Uptime        string `json:"uptime"`
	}
	_ = json.Unmarshal(env.Data, &hb)
	if hb.Status != "ok" || hb.Devices != 3 || hb.HistoryEvents != 17 || hb.HistoryCap != 5000 || hb.Uptime == "" {
		t.Fatalf("unexpected health: %s", w.Body.String())
	}
}

func TestHealth_InternalErrorRedacted(t *testing.T) {
	park := &mockParking{err: errors.New("lock poisoned")}
	r := newTestRouter(&service.Service{Parking: park})

	w, env := doRequest(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusInternalServerError || env.Error != errInternal || env.Detail != "" {
		t.Fatalf("unexpected body: %d %s", w.Code, w.Body.String())
	}
}
