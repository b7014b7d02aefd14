package models

import (
	"encoding/json"
	"testing"
	"time"
)

func fullRawBooking() RawBooking {
	rate := 95000.0
	hours := 8.5
	return RawBooking{
		ID:         "bk-1",
		JobID:      "job-1",
		AgreedRate: &rate,
		StartTime:  "2026-09-02T08:00:00Z",
		EndTime:    "2026-09-02T17:00:00Z",
		Status:     "IN_PROGRESS",
		CreatedAt:  "2026-08-25T09:00:00Z",
		Job: &RawBookingJob{
			ID:            "job-1",
			ClientID:      "cl-9",
			Address:       "45 Lê Lợi, Quận 1",
			LocationPoint: json.RawMessage(`{"coordinates": [106.698, 10.773]}`),
			Client: &RawClient{
				FullName: "Trần Thị B",
				Phone:    "0903123456",
			},
		},
		Timesheet: &RawTimesheet{
			CheckinAt:       "2026-09-02T08:05:00Z",
			Hours:           &hours,
			ClientConfirmed: true,
		},
	}
}

func TestBookingFromAPIAllFields(t *testing.T) {
	booking := BookingFromAPI(fullRawBooking())

	if booking.ID != "bk-1" || booking.JobID != "job-1" || booking.ClientID != "cl-9" {
		t.Errorf("identity fields not preserved: %+v", booking)
	}
	if booking.ClientName != "Trần Thị B" {
		t.Errorf("clientName = %q, want full name preferred over phone", booking.ClientName)
	}
	if booking.AgreedRate != 95000 {
		t.Errorf("agreedRate = %v, want 95000", booking.AgreedRate)
	}
	if booking.Status != BookingStatusInProgress {
		t.Errorf("status = %q, want IN_PROGRESS", booking.Status)
	}
	if booking.Location.Address != "45 Lê Lợi, Quận 1" {
		t.Errorf("address = %q", booking.Location.Address)
	}
	if booking.Location.Latitude != 10.773 || booking.Location.Longitude != 106.698 {
		t.Errorf("coordinates = (%v, %v)", booking.Location.Latitude, booking.Location.Longitude)
	}
	if booking.Timesheet == nil {
		t.Fatal("timesheet should be mapped when present")
	}
	if booking.Timesheet.CheckinAt == nil {
		t.Fatal("checkinAt should be parsed")
	}
	wantCheckin, _ := time.Parse(time.RFC3339, "2026-09-02T08:05:00Z")
	if !booking.Timesheet.CheckinAt.Equal(wantCheckin) {
		t.Errorf("checkinAt = %v, want %v", booking.Timesheet.CheckinAt, wantCheckin)
	}
	if booking.Timesheet.CheckoutAt != nil {
		t.Error("checkoutAt should stay nil while the shift is running")
	}
	if booking.Timesheet.Hours != 8.5 || !booking.Timesheet.ClientConfirmed {
		t.Errorf("timesheet fields = %+v", booking.Timesheet)
	}
}

func TestBookingFromAPINoTimesheet(t *testing.T) {
	raw := fullRawBooking()
	raw.Timesheet = nil

	booking := BookingFromAPI(raw)
	if booking.Timesheet != nil {
		t.Errorf("absent timesheet must map to nil, got %+v", booking.Timesheet)
	}
}

func TestBookingFromAPIClientNameFallbacks(t *testing.T) {
	raw := fullRawBooking()

	raw.Job.Client.FullName = ""
	if got := BookingFromAPI(raw).ClientName; got != "0903123456" {
		t.Errorf("clientName = %q, want phone fallback", got)
	}

	raw.Job.Client.Phone = ""
	if got := BookingFromAPI(raw).ClientName; got != "Khách hàng" {
		t.Errorf("clientName = %q, want fallback literal", got)
	}

	raw.Job.Client = nil
	if got := BookingFromAPI(raw).ClientName; got != "Khách hàng" {
		t.Errorf("clientName with no client sub-object = %q, want fallback literal", got)
	}
}

func TestBookingFromAPIDefaults(t *testing.T) {
	booking := BookingFromAPI(RawBooking{})

	if booking.Status != BookingStatusScheduled {
		t.Errorf("missing status = %q, want SCHEDULED", booking.Status)
	}
	if booking.AgreedRate != 0 {
		t.Errorf("missing agreedRate = %v, want 0", booking.AgreedRate)
	}
	if booking.ClientName != "Khách hàng" {
		t.Errorf("clientName = %q, want fallback literal", booking.ClientName)
	}
	if !booking.Location.Point().IsUnset() {
		t.Errorf("missing location should collapse to sentinel, got %+v", booking.Location)
	}
	if booking.Timesheet != nil {
		t.Error("missing timesheet must map to nil")
	}
}

func TestBookingFromAPIJobIDFallsBackToNestedJob(t *testing.T) {
	raw := RawBooking{
		ID:  "bk-2",
		Job: &RawBookingJob{ID: "job-77"},
	}
	if got := BookingFromAPI(raw).JobID; got != "job-77" {
		t.Errorf("jobId = %q, want nested job id fallback", got)
	}
}

func TestBookingFromAPIClientAddressFallback(t *testing.T) {
	raw := RawBooking{
		Job: &RawBookingJob{
			Client: &RawClient{Address: "8 Pasteur, Quận 3"},
		},
	}
	if got := BookingFromAPI(raw).Location.Address; got != "8 Pasteur, Quận 3" {
		t.Errorf("address = %q, want client address fallback", got)
	}
}
