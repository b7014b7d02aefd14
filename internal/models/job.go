package models

import (
	"encoding/json"
	"time"

	"carepro-gateway/internal/geo"
)

// JobStatus represents the lifecycle status of a job posting
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"
	JobStatusOpen      JobStatus = "OPEN"      // Visible to carepros
	JobStatusBooked    JobStatus = "BOOKED"    // A proposal was accepted
	JobStatusDone      JobStatus = "DONE"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// Location is a job or booking site: display address plus coordinates.
// (0,0) means the platform has no pin for this record (see geo.Point.IsUnset).
type Location struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point returns the coordinate pair for distance computation.
func (l Location) Point() geo.Point {
	return geo.Point{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Job is the normalized work opportunity served to the app. The platform owns
// the record; the gateway only reads it and derives Distance per request.
type Job struct {
	ID          string    `json:"id"`
	ServiceType string    `json:"serviceType"`
	Description string    `json:"description"`
	Location    Location  `json:"location"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	BudgetMin   float64   `json:"budgetMin"`
	BudgetMax   float64   `json:"budgetMax"` // both 0 = negotiable
	Status      JobStatus `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	Distance    *float64  `json:"distance,omitempty"` // km, derived per request
	FitScore    *float64  `json:"fitScore,omitempty"` // 0-100, platform-computed
}

// RawJob is the job DTO as the platform returns it
type RawJob struct {
	ID            string          `json:"id"`
	ServiceType   string          `json:"service_type"`
	Description   string          `json:"description"`
	Address       string          `json:"address"`
	LocationPoint json.RawMessage `json:"location_point"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	BudgetMin     *float64        `json:"budget_min"`
	BudgetMax     *float64        `json:"budget_max"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
	FitScore      *float64        `json:"fit_score"`
}

// JobFromAPI maps a raw platform job into the normalized Job. Every field
// falls back to a documented default so one half-populated record can never
// abort a whole list. Missing coordinates collapse to the (0,0) sentinel.
func JobFromAPI(raw RawJob) Job {
	point := geo.ParsePoint(raw.LocationPoint)

	job := Job{
		ID:          raw.ID,
		ServiceType: raw.ServiceType,
		Description: raw.Description,
		Location: Location{
			Address: raw.Address,
		},
		StartTime: parseInstant(raw.StartTime),
		EndTime:   parseInstant(raw.EndTime),
		BudgetMin: floatOrZero(raw.BudgetMin),
		BudgetMax: floatOrZero(raw.BudgetMax),
		Status:    JobStatusDraft,
		CreatedAt: parseInstant(raw.CreatedAt),
		FitScore:  raw.FitScore,
	}

	if raw.Status != "" {
		job.Status = JobStatus(raw.Status)
	}
	if point != nil {
		job.Location.Latitude = point.Latitude
		job.Location.Longitude = point.Longitude
	}

	return job
}

// parseInstant decodes an ISO timestamp, falling back to now when the field
// is missing or unreadable.
func parseInstant(s string) time.Time {
	if s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Now()
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
