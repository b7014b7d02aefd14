package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"carepro-gateway/internal/careplatform"
	"carepro-gateway/internal/database"
	"carepro-gateway/internal/geo"
	"carepro-gateway/internal/matching"
	"carepro-gateway/internal/middleware"
	"carepro-gateway/internal/models"
	"carepro-gateway/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

const defaultRadiusKm = 10.0

// GetNearbyJobs runs the whole offer pipeline for one request: fetch raw jobs
// around the carepro's position, normalize each record, derive per-job
// distance, then filter by the stored availability toggle and service-type
// selector. A failed platform fetch is a retryable 502; an empty result after
// a successful fetch is a normal 200 with an empty list - the app renders
// those two cases differently.
func GetNearbyJobs(db *sqlx.DB, platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if errLat != nil || errLng != nil {
			utils.RespondError(w, http.StatusBadRequest, "lat and lng query parameters are required")
			return
		}

		radius := defaultRadiusKm
		if v, err := strconv.ParseFloat(r.URL.Query().Get("radius"), 64); err == nil && v > 0 {
			radius = v
		}

		prefs, err := database.GetCareproPrefs(db, claims.UserID)
		if err != nil {
			log.Printf("❌ Failed to load prefs for %s: %v", claims.UserID, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to load preferences")
			return
		}

		rawJobs, err := platform.FindNearbyJobs(r.Context(), lat, lng, radius)
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		jobs := make([]models.Job, 0, len(rawJobs))
		for _, raw := range rawJobs {
			jobs = append(jobs, models.JobFromAPI(raw))
		}

		matching.AttachDistances(jobs, lat, lng)
		jobs = matching.FilterJobs(jobs, prefs.IsAvailable, prefs.ServiceType)

		// nearest-first ordering is opt-in; default keeps the platform's order
		if r.URL.Query().Get("sort") == "distance" {
			matching.SortByDistance(jobs)
		}

		utils.Success(w, jobs)
	}
}

// GetJob fetches one job. When the app passes its current position, the
// response includes the derived distance.
func GetJob(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		raw, err := platform.GetJob(r.Context(), id)
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		job := models.JobFromAPI(raw)

		lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if errLat == nil && errLng == nil {
			point := job.Location.Point()
			job.Distance = geo.DistanceKm(lat, lng, &point)
		}

		utils.Success(w, job)
	}
}

// GetMatchedJobs serves the platform's fit-score ranking, normalized
func GetMatchedJobs(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}

		matches, err := platform.GetMatchedJobs(r.Context(), limit)
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		jobs := make([]models.Job, 0, len(matches))
		for _, match := range matches {
			job := models.JobFromAPI(match.Job)
			score := match.FitScore
			job.FitScore = &score
			jobs = append(jobs, job)
		}

		utils.Success(w, jobs)
	}
}

// respondPlatformError maps an upstream failure onto the app-facing contract:
// 401 means the service token is no longer valid (session-clear signal, not
// retryable), everything else is a retryable bad-gateway with the platform's
// user-facing message.
func respondPlatformError(w http.ResponseWriter, err error) {
	if errors.Is(err, careplatform.ErrUnauthorized) {
		log.Println("❌ Platform rejected the service token")
		utils.RespondError(w, http.StatusUnauthorized, "Session expired")
		return
	}

	var apiErr *careplatform.APIError
	if errors.As(err, &apiErr) {
		log.Printf("❌ Platform error %d: %s", apiErr.StatusCode, apiErr.Message)
		utils.RespondError(w, http.StatusBadGateway, apiErr.Message)
		return
	}

	log.Printf("❌ Platform request failed: %v", err)
	utils.RespondError(w, http.StatusBadGateway, "Failed to reach the care platform")
}
