package service

import (
	"context"

	"github.com/indiverse/heritagebot/internal/config"
	"github.com/indiverse/heritagebot/internal/domain"
	"github.com/indiverse/heritagebot/internal/weather"
)

// WidgetConfigResponse is the response for widget config
type WidgetConfigResponse struct {
	Config  domain.WidgetConfig `json:"config"`
	BaseURL string              `json:"base_url"`
}

// WeatherLookup fetches current weather for a city
type WeatherLookup interface {
	Current(ctx context.Context, city string) (*weather.Report, error)
}

// WidgetService handles widget presentation and the weather helper
type WidgetService struct {
	cfg     *config.Config
	weather WeatherLookup
}

// NewWidgetService creates a new widget service
func NewWidgetService(cfg *config.Config, weather WeatherLookup) *WidgetService {
	return &WidgetService{cfg: cfg, weather: weather}
}

// GetWidgetConfig returns the widget configuration
func (s *WidgetService) GetWidgetConfig(ctx context.Context) *WidgetConfigResponse {
	wc := domain.DefaultWidgetConfig()
	wc.ReplyDelayMS = s.cfg.Chat.ReplyDelay.Milliseconds()

	return &WidgetConfigResponse{
		Config:  wc,
		BaseURL: s.cfg.Server.BaseURL,
	}
}

// Weather returns current weather for city
func (s *WidgetService) Weather(ctx context.Context, city string) (*weather.Report, error) {
	return s.weather.Current(ctx, city)
}
