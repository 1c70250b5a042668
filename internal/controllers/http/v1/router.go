package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weather-dashboard/docs"
	"weather-dashboard/internal/presentation"
	"weather-dashboard/internal/scheduler"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/logger"
)

// ProbeStatus is satisfied by *scheduler.Probe.
type ProbeStatus interface {
	Status() scheduler.Status
}

type routes struct {
	service   *weather.DashboardService
	presenter presentation.Presenter
	probe     ProbeStatus
	defaults  Defaults
	l         *logger.Logger
}

func NewRouter(
	app *fiber.App,
	dashboardService *weather.DashboardService,
	presenter presentation.Presenter,
	probe ProbeStatus,
	defaults Defaults,
	l *logger.Logger,
) {
	r := &routes{
		service:   dashboardService,
		presenter: presenter,
		probe:     probe,
		defaults:  defaults,
		l:         l,
	}

	// Swagger documentation, doc.json comes from the registered swag docs
	app.Get("/swagger/*", swagger.New(swagger.Config{
		DeepLinking: true,
	}))

	app.Get("/manage/provider", r.handleProvider)

	api := app.Group("/api/v1")
	api.Get("/dashboard", r.handleDashboard)

	weatherGroup := api.Group("/weather")
	weatherGroup.Get("/current", r.handleCurrent)
	weatherGroup.Get("/forecast", r.handleForecast)
}
