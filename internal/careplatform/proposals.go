package careplatform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"carepro-gateway/internal/models"
)

// CreateProposal submits a rate offer on an open job
func (c *Client) CreateProposal(ctx context.Context, req models.CreateProposalRequest) (models.Proposal, error) {
	body, err := c.post(ctx, "/proposals", req)
	if err != nil {
		return models.Proposal{}, err
	}

	var proposal models.Proposal
	if err := json.Unmarshal(body, &proposal); err != nil {
		return models.Proposal{}, fmt.Errorf("failed to decode proposal: %w", err)
	}
	return proposal, nil
}

// ListProposals fetches proposals, optionally scoped to one job
func (c *Client) ListProposals(ctx context.Context, jobID string) ([]models.Proposal, error) {
	var query url.Values
	if jobID != "" {
		query = url.Values{}
		query.Set("job_id", jobID)
	}

	body, err := c.get(ctx, "/proposals", query)
	if err != nil {
		return nil, err
	}

	var proposals []models.Proposal
	if err := json.Unmarshal(body, &proposals); err != nil {
		return nil, fmt.Errorf("failed to decode proposals: %w", err)
	}
	return proposals, nil
}

// GetProfile fetches the signed-in carepro's platform profile
func (c *Client) GetProfile(ctx context.Context) (models.CareproProfile, error) {
	body, err := c.get(ctx, "/carepros/me", nil)
	if err != nil {
		return models.CareproProfile{}, err
	}
	return decodeProfile(body)
}

// UpdateProfile updates the signed-in carepro's platform profile
func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.CareproProfile, error) {
	body, err := c.put(ctx, "/carepros/me", req)
	if err != nil {
		return models.CareproProfile{}, err
	}
	return decodeProfile(body)
}

func decodeProfile(body []byte) (models.CareproProfile, error) {
	var profile models.CareproProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return models.CareproProfile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}
