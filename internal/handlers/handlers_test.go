package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carepro-gateway/internal/careplatform"
	"carepro-gateway/internal/middleware"
	"carepro-gateway/internal/models"
	"carepro-gateway/internal/websocket"

	"github.com/go-chi/chi/v5"
)

// newRouter wires a handler the way cmd/server does, with claims preloaded
// as if the Auth middleware had run.
func newRouter(method, pattern string, h http.HandlerFunc) *chi.Mux {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.UserContextKey, middleware.UserClaims{
				UserID: "u-1",
				Email:  "carepro@o2ocare.vn",
				Role:   "carepro",
			})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Method(method, pattern, h)
	return r
}

func stubPlatform(t *testing.T, handler http.HandlerFunc) *careplatform.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return careplatform.NewClient(server.URL, "test-token")
}

func TestGetJobWithDistance(t *testing.T) {
	platform := stubPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "j1",
			"service_type": "elderly",
			"status": "OPEN",
			"address": "45 Lê Lợi, Quận 1",
			"location_point": {"coordinates": [106.700806, 10.776889]}
		}`))
	})

	router := newRouter(http.MethodGet, "/api/jobs/{id}", GetJob(platform))
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/j1?lat=10.762622&lng=106.660172", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var job models.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if job.ID != "j1" || job.Status != models.JobStatusOpen {
		t.Errorf("job = %+v", job)
	}
	if job.Distance == nil {
		t.Fatal("distance should be derived when the app sends its position")
	}
	if *job.Distance < 4.5 || *job.Distance > 4.9 {
		t.Errorf("distance = %v, want ~4.7", *job.Distance)
	}
}

func TestGetJobWithoutCallerPosition(t *testing.T) {
	platform := stubPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "j1", "status": "OPEN"}`))
	})

	router := newRouter(http.MethodGet, "/api/jobs/{id}", GetJob(platform))
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/j1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var job models.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if job.Distance != nil {
		t.Errorf("distance = %v, want absent without caller position", *job.Distance)
	}
}

func TestGetBookingsNormalizes(t *testing.T) {
	platform := stubPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "SCHEDULED" {
			t.Errorf("status query = %q, want SCHEDULED", got)
		}
		w.Write([]byte(`[
			{
				"id": "bk-1",
				"job_id": "j1",
				"agreed_rate": 95000,
				"status": "SCHEDULED",
				"job": {"client_id": "c1", "address": "45 Lê Lợi", "client": {"phone": "0903123456"}}
			},
			{"id": "bk-2"}
		]`))
	})

	router := newRouter(http.MethodGet, "/api/bookings", GetBookings(platform))
	req := httptest.NewRequest(http.MethodGet, "/api/bookings?status=SCHEDULED", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var bookings []models.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &bookings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("got %d bookings", len(bookings))
	}
	if bookings[0].ClientName != "0903123456" {
		t.Errorf("clientName = %q, want phone fallback", bookings[0].ClientName)
	}
	if bookings[0].Timesheet != nil {
		t.Error("timesheet should be nil when absent upstream")
	}
	// the second, nearly-empty record still normalizes instead of failing the list
	if bookings[1].Status != models.BookingStatusScheduled {
		t.Errorf("defaulted status = %q", bookings[1].Status)
	}
}

func TestStartBookingReconcilesToPlatformStatus(t *testing.T) {
	platform := stubPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		// platform refuses the transition and answers with the current state
		w.Write([]byte(`{"id": "bk-1", "status": "CANCELLED"}`))
	})
	hub := websocket.NewHub()

	router := newRouter(http.MethodPost, "/api/bookings/{id}/start", StartBooking(platform, hub))
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/bk-1/start", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var booking models.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &booking); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if booking.Status != models.BookingStatusCancelled {
		t.Errorf("status = %q, want the platform's authoritative CANCELLED", booking.Status)
	}
}

func TestPlatformErrorIsRetryableBadGateway(t *testing.T) {
	platform := stubPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message": "Hệ thống đang bảo trì"}`))
	})

	router := newRouter(http.MethodGet, "/api/bookings/{id}", GetBooking(platform))
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/bk-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 so the app offers a retry", rec.Code)
	}
	var payload struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Success || payload.Error != "Hệ thống đang bảo trì" {
		t.Errorf("payload = %+v, want the platform's message surfaced", payload)
	}
}

func TestPlatformUnauthorizedClearsSession(t *testing.T) {
	platform := stubPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	router := newRouter(http.MethodGet, "/api/bookings/{id}", GetBooking(platform))
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/bk-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 session-clear signal, not a retryable error", rec.Code)
	}
}

func TestCheckInServesNormalizedTimesheet(t *testing.T) {
	platform := stubPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"checkin_at": "2026-08-31T08:00:00Z", "hours": 2.5, "client_confirmed": true}`))
	})

	router := newRouter(http.MethodPost, "/api/bookings/{id}/timesheet/checkin", CheckIn(platform))
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/bk-1/timesheet/checkin",
		strings.NewReader(`{"lat": 10.77, "lng": 106.7}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// same camelCase shape as the timesheet embedded in GET /bookings/{id}
	body := rec.Body.String()
	if strings.Contains(body, "checkin_at") || !strings.Contains(body, `"checkinAt"`) {
		t.Errorf("body = %s, want camelCase fields", body)
	}

	var ts models.Timesheet
	if err := json.Unmarshal(rec.Body.Bytes(), &ts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ts.CheckinAt == nil || ts.Hours != 2.5 || !ts.ClientConfirmed {
		t.Errorf("timesheet = %+v", ts)
	}
	if ts.CheckoutAt != nil {
		t.Error("checkoutAt should be absent before checkout")
	}
}

func TestGetTimesheetServesNormalizedForm(t *testing.T) {
	platform := stubPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"checkin_at": "2026-08-31T08:00:00Z", "checkout_at": "2026-08-31T11:30:00Z", "hours": 3.5, "client_confirmed": false}`))
	})

	router := newRouter(http.MethodGet, "/api/bookings/{id}/timesheet", GetTimesheet(platform))
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/bk-1/timesheet", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var ts models.Timesheet
	if err := json.Unmarshal(rec.Body.Bytes(), &ts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ts.CheckinAt == nil || ts.CheckoutAt == nil || ts.Hours != 3.5 {
		t.Errorf("timesheet = %+v", ts)
	}
}

func TestGetConnectionStatus(t *testing.T) {
	hub := websocket.NewHub()

	router := newRouter(http.MethodGet, "/api/admin/ws/status", GetConnectionStatus(hub))
	req := httptest.NewRequest(http.MethodGet, "/api/admin/ws/status?user_id=u-9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var status struct {
		TotalClients int    `json:"total_clients"`
		UserID       string `json:"user_id"`
		Connected    bool   `json:"connected"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.TotalClients != 0 || status.UserID != "u-9" || status.Connected {
		t.Errorf("status = %+v", status)
	}
}

func TestCreateProposalValidation(t *testing.T) {
	platform := stubPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("platform should not be called for an invalid proposal")
	})

	router := newRouter(http.MethodPost, "/api/proposals", CreateProposal(platform))

	for _, body := range []string{
		`{"proposed_rate": 90000}`,
		`{"job_id": "j1", "proposed_rate": 0}`,
		`{"job_id": "j1", "proposed_rate": -5}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/proposals", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}
