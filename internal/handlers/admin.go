package handlers

import (
	"net/http"

	"carepro-gateway/internal/websocket"
	"carepro-gateway/pkg/utils"
)

// GetConnectionStatus reports websocket connectivity for the admin console:
// how many carepros hold an open connection, and optionally whether one
// specific carepro does.
func GetConnectionStatus(hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]interface{}{
			"total_clients": hub.GetClientCount(),
		}

		if userID := r.URL.Query().Get("user_id"); userID != "" {
			status["user_id"] = userID
			status["connected"] = hub.IsUserConnected(userID)
		}

		utils.Success(w, status)
	}
}
