// Package verify implements ports.Verifier against the external
// verification oracle.
package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ddfriends/places/internal/core/domain"
	"github.com/ddfriends/places/internal/pkg/metrics"
)

// Client confirms (user_id, session_key) pairs against the oracle over a
// blocking request/response round-trip with a bounded timeout.
type Client struct {
	url  string
	http *http.Client
}

// New creates a verification client. The timeout bounds the whole oracle
// round-trip so a hung oracle never hangs the caller.
func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

type verifyRequest struct {
	UserID     string `json:"user_id"`
	SessionKey string `json:"session_key"`
}

type verifyResponse struct {
	Success bool `json:"success"`
}

// Verify checks the pair against the oracle. Empty fields fail fast without
// any network round-trip. A deny maps to domain.ErrCredentialsRejected; an
// unreachable or timed-out oracle maps to domain.ErrVerifierUnavailable,
// which is retryable and not the caller's fault.
func (c *Client) Verify(ctx context.Context, userID, sessionKey string) error {
	if userID == "" {
		return domain.ErrMissingUserID
	}
	if sessionKey == "" {
		return domain.ErrMissingSessionKey
	}

	body, err := json.Marshal(verifyRequest{UserID: userID, SessionKey: sessionKey})
	if err != nil {
		return fmt.Errorf("encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.VerificationOutcomes.WithLabelValues("unavailable").Inc()
		return fmt.Errorf("oracle unreachable: %w", domain.ErrVerifierUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		metrics.VerificationOutcomes.WithLabelValues("unavailable").Inc()
		return fmt.Errorf("oracle returned %d: %w", resp.StatusCode, domain.ErrVerifierUnavailable)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.VerificationOutcomes.WithLabelValues("unavailable").Inc()
		return fmt.Errorf("decode oracle response: %w", domain.ErrVerifierUnavailable)
	}

	if !result.Success {
		metrics.VerificationOutcomes.WithLabelValues("rejected").Inc()
		return fmt.Errorf("oracle denied user %s: %w", userID, domain.ErrCredentialsRejected)
	}

	metrics.VerificationOutcomes.WithLabelValues("authorized").Inc()
	return nil
}
