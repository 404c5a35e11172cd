// Package factory is the HTTP client for the external pizza factory,
// the one dependency whose failure is surfaced to the diner instead of
// being retried or masked.
package factory

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/slicehub/pizza-service/internal/config"
	"github.com/slicehub/pizza-service/internal/models"
)

// FulfillmentError reports a failed factory round trip. ReportURL is the
// factory's escalation URL, passed through verbatim so the diner can
// report the failure.
type FulfillmentError struct {
	ReportURL string
}

func (e *FulfillmentError) Error() string {
	return "failed to fulfill order at factory"
}

type Diner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type fulfillRequest struct {
	Diner Diner         `json:"diner"`
	Order *models.Order `json:"order"`
}

type fulfillResponse struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		url:    cfg.FactoryURL,
		apiKey: cfg.FactoryAPIKey,
		// A non-responding factory must fail the order, not hang the
		// request; the transport timeout is treated as a factory failure.
		http: &http.Client{Timeout: cfg.FactoryTimeout},
	}
}

// Fulfill performs the single synchronous factory round trip for an
// order. On success it returns the factory's proof-of-fulfillment JWT.
// Any failure, including transport errors, comes back as a
// *FulfillmentError; there is no retry.
func (c *Client) Fulfill(diner Diner, order *models.Order) (string, error) {
	body, err := json.Marshal(fulfillRequest{Diner: diner, Order: order})
	if err != nil {
		return "", &FulfillmentError{}
	}

	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &FulfillmentError{}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &FulfillmentError{}
	}
	defer resp.Body.Close()

	var payload fulfillResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &FulfillmentError{}
	}

	// Success is the factory's explicit HTTP-level ok, not the mere
	// presence of a payload.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &FulfillmentError{ReportURL: payload.ReportURL}
	}

	return payload.JWT, nil
}
