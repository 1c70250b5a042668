package repositories

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

type WeatherRepository interface {
	Name() string
	FetchCurrent(ctx context.Context, q models.Query) (models.CurrentConditions, error)
	FetchForecast(ctx context.Context, q models.Query) (models.Forecast, error)
}

// InitWeatherRepository builds the first supported provider from the config,
// wrapping its HTTP client in a rate limiter and circuit breaker.
func InitWeatherRepository(cfg *config.Config, l *logger.Logger) (*OpenWeatherMapRepository, error) {
	for _, api := range cfg.GetWeatherAPIs() {
		switch api.Name {
		case config.OpenWeatherMapName:
			client := NewGuardedClient(api.Name, &http.Client{
				Timeout: time.Duration(api.Timeout) * time.Second,
			}, GuardSettings{
				RateLimit:        api.RateLimit,
				Burst:            api.Burst,
				BreakerThreshold: cfg.Breaker.Threshold,
				BreakerTimeout:   cfg.Breaker.Timeout,
			}, l)

			return NewOpenWeatherMapRepository(api.BaseURL, api.APIKey, l, client)
		default:
			l.Warning("skipping unsupported weather provider", map[string]any{"name": api.Name})
		}
	}

	return nil, fmt.Errorf("no supported weather provider configured")
}
