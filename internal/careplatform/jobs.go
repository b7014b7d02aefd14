package careplatform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"carepro-gateway/internal/models"
)

// RawMatch is one entry of the platform's fit-score ranking: a raw job plus
// the platform-computed 0-100 suitability score for this carepro.
type RawMatch struct {
	Job      models.RawJob `json:"job"`
	FitScore float64       `json:"fitScore"`
}

// FindNearbyJobs fetches open jobs around a position. The list endpoint has
// drifted across platform releases and answers with a bare array, {data: []}
// or {jobs: []} depending on the serving version; unwrapJobList collapses all
// three into one canonical slice.
func (c *Client) FindNearbyJobs(ctx context.Context, lat, lng, radius float64) ([]models.RawJob, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	if radius > 0 {
		query.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))
	}

	body, err := c.get(ctx, "/jobs/nearby", query)
	if err != nil {
		return nil, err
	}

	return unwrapJobList(body), nil
}

// GetJob fetches a single job, tolerating the {data: ...} envelope some
// platform versions wrap single records in.
func (c *Client) GetJob(ctx context.Context, id string) (models.RawJob, error) {
	body, err := c.get(ctx, "/jobs/"+id, nil)
	if err != nil {
		return models.RawJob{}, err
	}

	var envelope struct {
		Data *models.RawJob `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return *envelope.Data, nil
	}

	var job models.RawJob
	if err := json.Unmarshal(body, &job); err != nil {
		return models.RawJob{}, fmt.Errorf("failed to decode job: %w", err)
	}
	return job, nil
}

// GetMatchedJobs fetches the platform's fit-score ranking for this carepro
func (c *Client) GetMatchedJobs(ctx context.Context, limit int) ([]RawMatch, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/matching/carepros/me/jobs", query)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}

	// decoded per item so one broken entry only drops itself
	matches := make([]RawMatch, 0, len(items))
	for _, item := range items {
		var match RawMatch
		if err := json.Unmarshal(item, &match); err != nil {
			continue
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// unwrapJobList collapses the three historical list envelopes into a plain
// slice. Anything unrecognizable degrades to an empty slice, never an error -
// the app renders that as an empty state. Items are decoded one by one so a
// single broken record cannot take its well-formed siblings down with it.
func unwrapJobList(body []byte) []models.RawJob {
	items := unwrapListItems(body)

	jobs := make([]models.RawJob, 0, len(items))
	for _, item := range items {
		if job, ok := decodeJobItem(item); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// unwrapListItems strips the envelope but leaves the elements undecoded
func unwrapListItems(body []byte) []json.RawMessage {
	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare
	}

	var wrapped struct {
		Data []json.RawMessage `json:"data"`
		Jobs []json.RawMessage `json:"jobs"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if wrapped.Data != nil {
			return wrapped.Data
		}
		if wrapped.Jobs != nil {
			return wrapped.Jobs
		}
	}

	return nil
}

// decodeJobItem decodes one list element. A record with a single wrong-typed
// field fails the strict decode, so it retries field by field and keeps
// whatever decodes cleanly; JobFromAPI's defaults cover the rest. Only a
// non-object element is given up on.
func decodeJobItem(item json.RawMessage) (models.RawJob, bool) {
	var job models.RawJob
	if err := json.Unmarshal(item, &job); err == nil {
		return job, true
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return models.RawJob{}, false
	}

	job = models.RawJob{LocationPoint: fields["location_point"]}
	decodeField(fields, "id", &job.ID)
	decodeField(fields, "service_type", &job.ServiceType)
	decodeField(fields, "description", &job.Description)
	decodeField(fields, "address", &job.Address)
	decodeField(fields, "start_time", &job.StartTime)
	decodeField(fields, "end_time", &job.EndTime)
	decodeField(fields, "budget_min", &job.BudgetMin)
	decodeField(fields, "budget_max", &job.BudgetMax)
	decodeField(fields, "status", &job.Status)
	decodeField(fields, "created_at", &job.CreatedAt)
	decodeField(fields, "fit_score", &job.FitScore)
	return job, true
}

func decodeField(fields map[string]json.RawMessage, key string, dst interface{}) {
	if raw, ok := fields[key]; ok {
		// a mistyped value just leaves the default in place
		_ = json.Unmarshal(raw, dst)
	}
}
