// Package careplatform is the HTTP client for the upstream care platform.
// The platform owns all job, booking, proposal and profile records; the
// gateway reads them per request and never caches.
package careplatform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// fallbackErrMessage is shown when the platform error body carries no message
const fallbackErrMessage = "Có lỗi xảy ra. Vui lòng thử lại."

// ErrUnauthorized is returned on a 401 from the platform. Callers treat it as
// a session-clear signal rather than a retryable failure.
var ErrUnauthorized = errors.New("care platform: unauthorized")

// APIError is a non-401 platform error with the user-facing message the
// platform put in the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("care platform: %d: %s", e.StatusCode, e.Message)
}

// Client calls the care platform REST API with a service bearer token
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a platform client for the given base URL and bearer token
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientFromEnv creates a platform client from CARE_PLATFORM_URL and
// CARE_PLATFORM_TOKEN
func NewClientFromEnv() (*Client, error) {
	baseURL := os.Getenv("CARE_PLATFORM_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("CARE_PLATFORM_URL environment variable is required")
	}

	token := os.Getenv("CARE_PLATFORM_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("CARE_PLATFORM_TOKEN environment variable is required")
	}

	return NewClient(baseURL, token), nil
}

// do executes one platform request and returns the raw response body.
// Every request carries the bearer token. Error responses are normalized:
// 401 maps to ErrUnauthorized, everything else to an APIError with the
// platform's message (or the fallback literal when the body has none).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	return respBody, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// errorMessage pulls the user-facing message out of a platform error body
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fallbackErrMessage
}
