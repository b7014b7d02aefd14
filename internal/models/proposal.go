package models

// Proposal is a carepro's rate offer on an open job. Proposing never mutates
// the job itself; acceptance happens platform-side and shows up as a booking.
// The platform returns proposals in their wire shape already, so the gateway
// relays them without a normalization pass.
type Proposal struct {
	ID           string  `json:"id"`
	JobID        string  `json:"job_id"`
	CareproID    string  `json:"carepro_id"`
	ProposedRate float64 `json:"proposed_rate"`
	Message      string  `json:"message,omitempty"`
	Status       string  `json:"status"` // PENDING, ACCEPTED or REJECTED
	CreatedAt    string  `json:"created_at"`
}

// CreateProposalRequest is the body for POST /api/proposals
type CreateProposalRequest struct {
	JobID        string  `json:"job_id"`
	ProposedRate float64 `json:"proposed_rate"`
	Message      string  `json:"message,omitempty"`
}

// CareproProfile is the platform-side profile of the signed-in carepro
type CareproProfile struct {
	UserID         string   `json:"user_id"`
	Bio            string   `json:"bio,omitempty"`
	YearsExp       int      `json:"years_exp"`
	Skills         []string `json:"skills"`
	ServiceTypes   []string `json:"service_types"`
	HourlyRateHint *float64 `json:"hourly_rate_hint,omitempty"`
	VerifiedLevel  int      `json:"verified_level"`
	RatingAvg      float64  `json:"rating_avg"`
	RatingCount    int      `json:"rating_count"`
}

// UpdateProfileRequest is the body for PUT /api/profile
type UpdateProfileRequest struct {
	Bio            string   `json:"bio,omitempty"`
	YearsExp       *int     `json:"years_exp,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	ServiceTypes   []string `json:"service_types,omitempty"`
	HourlyRateHint *float64 `json:"hourly_rate_hint,omitempty"`
}
