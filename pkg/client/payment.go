package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	"time"

	"github.com/sony/gobreaker"
)

// providerError carries the provider's HTTP status so the circuit breaker can
// tell a rejected request from a dead provider.
type providerError struct {
	StatusCode int
	Body       string
}

func (e *providerError) Error() string {
	return fmt.Sprintf("payment provider returned status %d: %s", e.StatusCode, e.Body)
}

// PaymentProvider is the HTTP client for the external payment-session
// provider. Calls are bounded by the configured timeout and guarded by a
// circuit breaker; they are never retried here, since session creation is a
// billable, non-idempotent action.
type PaymentProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *logger.Logger
}

func NewPaymentProvider(log *logger.Logger, baseURL, apiKey string, timeout time.Duration) *PaymentProvider {
	return &PaymentProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: newPaymentBreaker(log),
		log:     log,
	}
}

func newPaymentBreaker(log *logger.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        "payment-provider",
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Warn("Circuit breaker state changed",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				// A 4xx means the provider is healthy and rejected our
				// request; only transport failures and 5xx should trip.
				provErr, ok := err.(*providerError)
				return ok && provErr.StatusCode >= 400 && provErr.StatusCode < 500
			},
		},
	)
}

// CreateSession submits a payment-session request and returns the provider's
// validated response.
func (c *PaymentProvider) CreateSession(ctx context.Context, req *model.PaymentSessionRequest) (*model.PaymentSessionResponse, error) {
	var out model.PaymentSessionResponse
	if err := c.post(ctx, "/v1/checkout/sessions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SessionStatus fetches the current state of a checkout session.
func (c *PaymentProvider) SessionStatus(ctx context.Context, sessionID string) (*model.SessionStatusResponse, error) {
	var out model.SessionStatusResponse
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BillingPortalURL asks the provider for a billing-portal redirect URL for
// the given provider customer id. Pure pass-through, no core logic.
func (c *PaymentProvider) BillingPortalURL(ctx context.Context, customerID string) (string, error) {
	var out model.PortalResponse
	body := map[string]string{"customer": customerID}
	if err := c.post(ctx, "/v1/billing_portal/sessions", body, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("billing portal response missing url")
	}
	return out.URL, nil
}

func (c *PaymentProvider) post(ctx context.Context, path string, body any, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, payload, target)
}

func (c *PaymentProvider) get(ctx context.Context, path string, target any) error {
	return c.do(ctx, http.MethodGet, path, nil, target)
}

func (c *PaymentProvider) do(ctx context.Context, method, path string, payload []byte, target any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewBuffer(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &providerError{StatusCode: resp.StatusCode, Body: string(respBody)}
		}

		if err := json.Unmarshal(respBody, target); err != nil {
			return nil, fmt.Errorf("failed to decode provider response: %w", err)
		}
		return nil, nil
	})
	return err
}
