// Package weather fetches current conditions from OpenWeatherMap through a
// caller-owned cache.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/indiverse/heritagebot/internal/domain"
	"go.uber.org/zap"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Report is the subset of the current-weather payload the app shows
type Report struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Client looks up current weather by city name
type Client struct {
	baseURL    string
	apiKey     string
	cache      Cache
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a weather client. cache may not be nil.
func NewClient(baseURL, apiKey string, cache Cache, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		cache:      cache,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Current returns the current weather for city. A cached report is served
// before any argument checks, so a key rotation does not flush warm entries.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	if body, ok, err := c.cache.Get(ctx, city); err != nil {
		c.logger.Warn("weather cache read failed", zap.String("city", city), zap.Error(err))
	} else if ok {
		return decode(body)
	}

	if city == "" || c.apiKey == "" {
		return nil, fmt.Errorf("%w: city and api key are required", domain.ErrInvalidRequest)
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: weather API returned %d", domain.ErrUpstream, resp.StatusCode)
	}

	report, err := decode(body)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, city, body); err != nil {
		c.logger.Warn("weather cache write failed", zap.String("city", city), zap.Error(err))
	}
	return report, nil
}

func decode(body []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: invalid weather payload: %v", domain.ErrUpstream, err)
	}
	return &r, nil
}
