package handlers

import (
	"encoding/json"
	"net/http"

	"carepro-gateway/internal/careplatform"
	"carepro-gateway/internal/models"
	"carepro-gateway/pkg/utils"
)

// CreateProposal submits a rate offer on an open job. Proposing never touches
// the job record itself - acceptance happens platform-side and shows up later
// as a booking.
func CreateProposal(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateProposalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.JobID == "" {
			utils.RespondError(w, http.StatusBadRequest, "job_id is required")
			return
		}
		if req.ProposedRate <= 0 {
			utils.RespondError(w, http.StatusBadRequest, "proposed_rate must be positive")
			return
		}

		proposal, err := platform.CreateProposal(r.Context(), req)
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		utils.JSON(w, http.StatusCreated, proposal)
	}
}

// GetProposals lists this carepro's proposals, optionally scoped to one job
func GetProposals(platform *careplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proposals, err := platform.ListProposals(r.Context(), r.URL.Query().Get("job_id"))
		if err != nil {
			respondPlatformError(w, err)
			return
		}

		utils.Success(w, proposals)
	}
}
