package parking_monitor

import "time"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
	Detail  string `json:"detail,omitempty"` // development mode only
}

// DeviceNotFound is the 404 body for an unknown device id.
type DeviceNotFound struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	DeviceID string `json:"deviceId"`
}

// ReportAck is returned after a device report has been applied.
type ReportAck struct {
	DeviceID       string    `json:"deviceId"`
	AvailableSlots int       `json:"availableSlots"`
	TotalSlots     int       `json:"totalSlots"`
	Timestamp      time.Time `json:"timestamp"`
	Changes        int       `json:"changes"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserInfo  `json:"user"`
}

// UserInfo is the public view of an admin account.
type UserInfo struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// Health is the body of GET /health.
type Health struct {
	Status        string    `json:"status"`
	Devices       int       `json:"devices"`
	HistoryEvents int       `json:"historyEvents"`
	HistoryCap    int       `json:"historyCap"`
	Uptime        string    `json:"uptime"`
	Time          time.Time `json:"time"`
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKList wraps a collection and its size.
func OKList(data any, n int) Response {
	return Response{Success: true, Data: data, Count: &n}
}

// Fail builds an error envelope.
func Fail(msg string) Response {
	return Response{Success: false, Error: msg}
}
