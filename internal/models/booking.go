package models

import (
	"encoding/json"
	"time"

	"carepro-gateway/internal/geo"
)

// BookingStatus represents the lifecycle status of a booking. Transitions are
// platform-authoritative: the gateway only requests them and reconciles to
// whatever status the platform returns.
type BookingStatus string

const (
	BookingStatusScheduled  BookingStatus = "SCHEDULED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusDisputed   BookingStatus = "DISPUTED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// fallbackClientName is shown when the platform has neither a full name nor
// a phone number for the booking's client.
const fallbackClientName = "Khách hàng"

// Timesheet is the check-in/check-out record attached to a booking
type Timesheet struct {
	CheckinAt       *time.Time `json:"checkinAt,omitempty"`
	CheckoutAt      *time.Time `json:"checkoutAt,omitempty"`
	Hours           float64    `json:"hours"`
	ClientConfirmed bool       `json:"clientConfirmed"`
}

// Booking is a job instance with a confirmed carepro attached
type Booking struct {
	ID         string        `json:"id"`
	JobID      string        `json:"jobId"`
	ClientID   string        `json:"clientId"`
	ClientName string        `json:"clientName"`
	AgreedRate float64       `json:"agreedRate"`
	StartTime  time.Time     `json:"startTime"`
	EndTime    time.Time     `json:"endTime"`
	Location   Location      `json:"location"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	Distance   *float64      `json:"distance,omitempty"`
	Timesheet  *Timesheet    `json:"timesheet,omitempty"`
}

// RawBooking is the booking DTO as the platform returns it, with the nested
// job and client sub-objects the booking service embeds.
type RawBooking struct {
	ID         string         `json:"id"`
	JobID      string         `json:"job_id"`
	AgreedRate *float64       `json:"agreed_rate"`
	StartTime  string         `json:"start_time"`
	EndTime    string         `json:"end_time"`
	Status     string         `json:"status"`
	CreatedAt  string         `json:"created_at"`
	Job        *RawBookingJob `json:"job"`
	Timesheet  *RawTimesheet  `json:"timesheet"`
}

type RawBookingJob struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	Address       string          `json:"address"`
	LocationPoint json.RawMessage `json:"location_point"`
	Client        *RawClient      `json:"client"`
}

type RawClient struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type RawTimesheet struct {
	CheckinAt       string   `json:"checkin_at"`
	CheckoutAt      string   `json:"checkout_at"`
	Hours           *float64 `json:"hours"`
	ClientConfirmed bool     `json:"client_confirmed"`
}

// BookingFromAPI maps a raw platform booking into the normalized Booking.
// Like JobFromAPI it substitutes defaults for every missing field. The client
// display name prefers full name over phone over a fallback literal. An
// absent timesheet maps to nil, not a zero-value struct, so the app can tell
// "not started" apart from "started with missing fields".
func BookingFromAPI(raw RawBooking) Booking {
	job := raw.Job
	if job == nil {
		job = &RawBookingJob{}
	}
	client := job.Client
	if client == nil {
		client = &RawClient{}
	}
	point := geo.ParsePoint(job.LocationPoint)

	booking := Booking{
		ID:         raw.ID,
		JobID:      raw.JobID,
		ClientID:   job.ClientID,
		ClientName: clientDisplayName(client),
		AgreedRate: floatOrZero(raw.AgreedRate),
		StartTime:  parseInstant(raw.StartTime),
		EndTime:    parseInstant(raw.EndTime),
		Location: Location{
			Address: firstNonEmpty(job.Address, client.Address),
		},
		Status:    BookingStatusScheduled,
		CreatedAt: parseInstant(raw.CreatedAt),
	}

	if raw.JobID == "" {
		booking.JobID = job.ID
	}
	if raw.Status != "" {
		booking.Status = BookingStatus(raw.Status)
	}
	if point != nil {
		booking.Location.Latitude = point.Latitude
		booking.Location.Longitude = point.Longitude
	}
	if raw.Timesheet != nil {
		ts := TimesheetFromAPI(*raw.Timesheet)
		booking.Timesheet = &ts
	}

	return booking
}

// TimesheetFromAPI maps a raw platform timesheet into the normalized form.
// Unparseable timestamps map to nil so the app reads them as "not yet".
func TimesheetFromAPI(raw RawTimesheet) Timesheet {
	ts := Timesheet{
		Hours:           floatOrZero(raw.Hours),
		ClientConfirmed: raw.ClientConfirmed,
	}
	if raw.CheckinAt != "" {
		if t, err := time.Parse(time.RFC3339, raw.CheckinAt); err == nil {
			ts.CheckinAt = &t
		}
	}
	if raw.CheckoutAt != "" {
		if t, err := time.Parse(time.RFC3339, raw.CheckoutAt); err == nil {
			ts.CheckoutAt = &t
		}
	}
	return ts
}

func clientDisplayName(client *RawClient) string {
	if client.FullName != "" {
		return client.FullName
	}
	if client.Phone != "" {
		return client.Phone
	}
	return fallbackClientName
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
