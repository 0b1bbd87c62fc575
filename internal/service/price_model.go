package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"propfinder/internal/config"
	"propfinder/internal/model"
)

// PriceScorer is the opaque price-prediction collaborator. Implementations
// must never fail: any problem yields the caller-supplied fallback price.
type PriceScorer interface {
	Predict(ctx context.Context, features model.PropertyFeatures, fallbackPrice float64) float64
}

// ScorerClient calls an external scoring service over HTTP. A missing URL
// disables the client; Predict then always returns the fallback price.
type ScorerClient struct {
	url        string
	httpClient *http.Client
}

var _ PriceScorer = (*ScorerClient)(nil)

// NewScorerClient creates a price scorer client from config.
func NewScorerClient(cfg *config.ScorerConfig) *ScorerClient {
	return &ScorerClient{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether a scoring service is configured.
func (c *ScorerClient) IsEnabled() bool {
	return c.url != ""
}

// Predict asks the scoring service for a price. The service may answer with a
// bare number, a one-element array, or an object with a "price" field. Any
// failure or an unconfigured service yields the fallback price.
func (c *ScorerClient) Predict(ctx context.Context, features model.PropertyFeatures, fallbackPrice float64) float64 {
	if !c.IsEnabled() {
		return fallbackPrice
	}

	price, err := c.predict(ctx, features)
	if err != nil {
		log.Printf("Price scoring failed: %v, using fallback price", err)
		return fallbackPrice
	}
	return price
}

func (c *ScorerClient) predict(ctx context.Context, features model.PropertyFeatures) (float64, error) {
	reqBody, err := json.Marshal(features)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal features: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(reqBody))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scorer request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return parsePrediction(body)
}

// parsePrediction accepts the response shapes a scoring service may emit.
func parsePrediction(body []byte) (float64, error) {
	var scalar float64
	if err := json.Unmarshal(body, &scalar); err == nil {
		return scalar, nil
	}

	var list []float64
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return list[0], nil
	}

	var obj struct {
		Price *float64 `json:"price"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && obj.Price != nil {
		return *obj.Price, nil
	}

	return 0, fmt.Errorf("unrecognized scorer response: %s", string(body))
}
