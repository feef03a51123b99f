package spam

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"screenguard/internal/config"
	"screenguard/internal/domain"
)

// Client forwards message text to an external spam-classification endpoint.
//
// Every local failure (missing configuration, timeout, connection failure,
// non-2xx status, non-JSON body) is converted into an {"error": ...} outcome;
// Check never returns an error and never aborts the pipeline.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a spam classifier client. An empty endpoint is allowed;
// Check then degrades to a not-configured outcome per request.
func NewClient(cfg *config.SpamConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type checkRequest struct {
	Text string `json:"text"`
}

// Check sends text to the classifier and passes through whatever JSON payload
// it answers with.
func (c *Client) Check(ctx context.Context, text string) domain.DispatchOutcome {
	if c.endpoint == "" {
		return domain.ErrorOutcome("spam classifier endpoint not configured")
	}

	bodyBytes, err := json.Marshal(checkRequest{Text: text})
	if err != nil {
		return domain.ErrorOutcome(fmt.Sprintf("marshaling classifier request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return domain.ErrorOutcome(fmt.Sprintf("creating classifier request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			log.Printf("spam: request to %s timed out", c.endpoint)
			return domain.ErrorOutcome("spam classifier request timed out")
		}
		log.Printf("spam: request to %s failed: %v", c.endpoint, err)
		return domain.ErrorOutcome(fmt.Sprintf("calling spam classifier: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ErrorOutcome(fmt.Sprintf("reading classifier response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("spam: classifier returned status %d", resp.StatusCode)
		return domain.ErrorOutcome(fmt.Sprintf("spam classifier returned status %d", resp.StatusCode))
	}

	var result domain.DispatchOutcome
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Printf("spam: classifier returned non-JSON body: %s", domain.Snippet(string(respBody), 200))
		return domain.ErrorOutcome("spam classifier returned a non-JSON response")
	}
	return result
}
