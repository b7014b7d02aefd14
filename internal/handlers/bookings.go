package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"carepro-gateway/internal/careplatform"
	"carepro-gateway/internal/middleware"
	"carepro-gateway/internal/models"
	"carepro-gateway/internal/websocket"
	"carepro-gateway/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// GetBookings lists this carepro's bookings, optionally filtered by status
func GetBookings(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawBookings, err := platform.ListBookings(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		bookings := make([]models.Booking, 0, len(rawBookings))
		for _, raw := range rawBookings {
			bookings = append(bookings, models.BookingFromAPI(raw))
		}

		utils.Success(w, bookings)
	}
}

// GetBooking fetches one booking with its embedded timesheet if any
func GetBooking(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		raw, err := platform.GetBooking(r.Context(), id)
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		utils.Success(w, models.BookingFromAPI(raw))
	}
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

// StartBooking relays the check-in/start transition request. The platform is
// the authority on the lifecycle: the gateway sends whatever it answers back
// to the app and over the websocket, even when the transition was refused.
func StartBooking(platform *careplatform.Client, hub *websocket.Hub) http.HandlerFunc {
	return transitionHandler(hub, func(r *http.Request, id string) (models.RawBooking, error) {
		return platform.StartBooking(r.Context(), id)
	})
}

// CompleteBooking relays the check-out/complete transition request
func CompleteBooking(platform *careplatform.Client, hub *websocket.Hub) http.HandlerFunc {
	return transitionHandler(hub, func(r *http.Request, id string) (models.RawBooking, error) {
		return platform.CompleteBooking(r.Context(), id)
	})
}

// CancelBooking relays a cancellation request with an optional reason
func CancelBooking(platform *careplatform.Client, hub *websocket.Hub) http.HandlerFunc {
	return transitionHandler(hub, func(r *http.Request, id string) (models.RawBooking, error) {
		var req cancelBookingRequest
		// body is optional; an unreadable body just means no reason given
		_ = json.NewDecoder(r.Body).Decode(&req)
		return platform.CancelBooking(r.Context(), id, req.Reason)
	})
}

func transitionHandler(hub *websocket.Hub, transition func(*http.Request, string) (models.RawBooking, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		raw, err := transition(r, id)
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		booking := models.BookingFromAPI(raw)

		hub.BroadcastToUser(claims.UserID, map[string]interface{}{
			"type":       "booking_status",
			"booking_id": booking.ID,
			"status":     booking.Status,
			"timestamp":  time.Now().Format(time.RFC3339),
		})

		utils.Success(w, booking)
	}
}

type checkInRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type checkOutRequest struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Note string  `json:"note"`
}

// CheckIn records arrival at the booking site
func CheckIn(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req checkInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		raw, err := platform.CheckIn(r.Context(), id, req.Lat, req.Lng)
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		utils.Success(w, models.TimesheetFromAPI(raw))
	}
}

// CheckOut records leaving the booking site
func CheckOut(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req checkOutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		raw, err := platform.CheckOut(r.Context(), id, req.Lat, req.Lng, req.Note)
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		utils.Success(w, models.TimesheetFromAPI(raw))
	}
}

// GetTimesheet fetches the timesheet attached to a booking
func GetTimesheet(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		raw, err := platform.GetTimesheet(r.Context(), id)
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		utils.Success(w, models.TimesheetFromAPI(raw))
	}
}
