package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"premalloc/internal/model"
)

// CensusClient calls the Census Bureau onelineaddress endpoint.
type CensusClient struct {
	httpClient *http.Client
	baseURL    string
	benchmark  string
	userAgent  string
	maxBytes   int64
}

// NewCensusClient creates a client from geocoder configuration.
func NewCensusClient(cfg model.GeocoderConfig) *CensusClient {
	return &CensusClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		benchmark:  cfg.Benchmark,
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
	}
}

// censusResponse mirrors the slice of the Census payload this system
// reads. Coordinates come back as x=longitude, y=latitude.
type censusResponse struct {
	Result struct {
		AddressMatches []struct {
			MatchedAddress string `json:"matchedAddress"`
			Coordinates    struct {
				X float64 `json:"x"`
				Y float64 `json:"y"`
			} `json:"coordinates"`
			TigerLine struct {
				TigerLineID string `json:"tigerLineId"`
				Side        string `json:"side"`
			} `json:"tigerLine"`
		} `json:"addressMatches"`
	} `json:"result"`
}

// Geocode submits one address. Zero candidates is a successful outcome;
// only transport or decode problems return an error.
func (c *CensusClient) Geocode(ctx context.Context, address string) (model.GeocodeOutcome, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("benchmark", c.benchmark)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return model.GeocodeOutcome{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.GeocodeOutcome{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.GeocodeOutcome{}, fmt.Errorf("geocode %q: unexpected status %d", address, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return model.GeocodeOutcome{}, fmt.Errorf("read body: %w", err)
	}

	var parsed censusResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.GeocodeOutcome{}, fmt.Errorf("decode response: %w", err)
	}

	matches := parsed.Result.AddressMatches
	outcome := model.GeocodeOutcome{Candidates: len(matches)}
	if len(matches) > 0 {
		first := matches[0]
		outcome.MatchedAddress = first.MatchedAddress
		outcome.Coordinates = &model.Coordinates{
			Latitude:  first.Coordinates.Y,
			Longitude: first.Coordinates.X,
		}
		outcome.TigerLineID = first.TigerLine.TigerLineID
		outcome.Side = first.TigerLine.Side
	}
	return outcome, nil
}
