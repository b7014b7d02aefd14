package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"carepro-gateway/internal/careplatform"
	"carepro-gateway/internal/database"
	"carepro-gateway/internal/middleware"
	"carepro-gateway/internal/models"
	"carepro-gateway/internal/websocket"
	"carepro-gateway/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// GetAvailability returns the carepro's stored offer preferences
func GetAvailability(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		prefs, err := database.GetCareproPrefs(db, claims.UserID)
		if err != nil {
			log.Printf("❌ Failed to load prefs for %s: %v", claims.UserID, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to load preferences")
			return
		}

		utils.Success(w, prefs)
	}
}

// UpdateAvailability stores the availability toggle and service-type selector.
// Toggling availability off immediately empties the nearby-jobs feed on the
// next fetch; the change is also pushed to the app's open websocket.
func UpdateAvailability(db *sqlx.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.UpdatePrefsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		prefs, err := database.SaveCareproPrefs(db, claims.UserID, req.IsAvailable, req.ServiceType)
		if err != nil {
			log.Printf("❌ Failed to save prefs for %s: %v", claims.UserID, err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to save preferences")
			return
		}

		log.Printf("✅ Prefs updated: %s available=%v service_type=%q",
			claims.UserID, prefs.IsAvailable, prefs.ServiceType)

		hub.BroadcastToUser(claims.UserID, map[string]interface{}{
			"type":         "availability_changed",
			"is_available": prefs.IsAvailable,
			"service_type": prefs.ServiceType,
			"timestamp":    time.Now().Format(time.RFC3339),
		})

		utils.Success(w, prefs)
	}
}

// GetProfile fetches the carepro's platform profile
func GetProfile(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := platform.GetProfile(r.Context())
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		utils.Success(w, profile)
	}
}

// UpdateProfile updates the carepro's platform profile
func UpdateProfile(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		profile, err := platform.UpdateProfile(r.Context(), req)
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		utils.Success(w, profile)
	}
}
