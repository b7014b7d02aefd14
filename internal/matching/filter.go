// Package matching holds the visible-jobs pipeline: availability and
// service-type filtering plus per-request distance enrichment. Everything
// here is pure - ranking and scoring live platform-side.
package matching

import (
	"sort"

	"carepro-gateway/internal/geo"
	"carepro-gateway/internal/models"
)

// FilterJobs returns the subset of jobs visible to a carepro. When the
// carepro has toggled availability off, the result is empty no matter what
// the list contains - they have opted out of receiving offers. Otherwise a
// job stays visible when it is OPEN and matches the selected service type
// ("" selects all). Input order is preserved; distance ordering is a
// presentation step applied afterwards.
func FilterJobs(jobs []models.Job, isAvailable bool, serviceType string) []models.Job {
	filtered := make([]models.Job, 0, len(jobs))
	if !isAvailable {
		return filtered
	}

	for _, job := range jobs {
		if job.Status != models.JobStatusOpen {
			continue
		}
		if serviceType != "" && job.ServiceType != serviceType {
			continue
		}
		filtered = append(filtered, job)
	}

	return filtered
}

// AttachDistances derives each job's distance from the carepro's current
// position. Jobs at the unset sentinel keep a nil distance ("unknown, do
// not display").
func AttachDistances(jobs []models.Job, fromLat, fromLng float64) {
	for i := range jobs {
		point := jobs[i].Location.Point()
		jobs[i].Distance = geo.DistanceKm(fromLat, fromLng, &point)
	}
}

// SortByDistance orders jobs nearest-first. Jobs with unknown distance sink
// to the end, keeping their relative order. The sort is stable so that two
// jobs at the same rounded distance keep the platform's ordering.
func SortByDistance(jobs []models.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		di, dj := jobs[i].Distance, jobs[j].Distance
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
}
