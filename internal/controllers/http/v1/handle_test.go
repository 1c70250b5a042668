package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/presentation"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/scheduler"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/logger"
)

var warsaw = time.FixedZone("CEST", 2*3600)

type mockRepository struct {
	current     models.CurrentConditions
	forecast    models.Forecast
	currentErr  error
	forecastErr error
	lastQuery   models.Query
}

func (m *mockRepository) Name() string {
	return "mock"
}

func (m *mockRepository) FetchCurrent(ctx context.Context, q models.Query) (models.CurrentConditions, error) {
	return m.current, m.currentErr
}

func (m *mockRepository) FetchForecast(ctx context.Context, q models.Query) (models.Forecast, error) {
	m.lastQuery = q
	return m.forecast, m.forecastErr
}

type staticProbe struct{}

func (staticProbe) Status() scheduler.Status {
	return scheduler.Status{Enabled: true, Schedule: "@every 5m", City: "Warszawa", Runs: 2}
}

func at(day, hour int) time.Time {
	return time.Date(2025, time.July, day, hour, 0, 0, 0, warsaw)
}

func exampleRepository() *mockRepository {
	return &mockRepository{
		current: models.CurrentConditions{
			LocationName:         "Warszawa",
			Temperature:          18.5,
			FeelsLike:            17.5,
			TemperatureMin:       17,
			TemperatureMax:       19.5,
			ConditionDescription: "zachmurzenie umiarkowane",
			ConditionIcon:        "03d",
			Humidity:             62,
			Pressure:             1013,
			WindSpeed:            4.1,
		},
		forecast: models.Forecast{
			RepositoryName: "mock",
			City:           models.CityInfo{Name: "Warszawa", Country: "PL"},
			Samples: []models.ForecastSample{
				{Timestamp: at(25, 8), Temperature: 10, TemperatureMin: 9, TemperatureMax: 11, ConditionDescription: "bezchmurnie", ConditionIcon: "01d"},
				{Timestamp: at(25, 11), Temperature: 15, TemperatureMin: 14, TemperatureMax: 16, ConditionDescription: "bezchmurnie", ConditionIcon: "01d"},
				{Timestamp: at(25, 14), Temperature: 18, TemperatureMin: 17, TemperatureMax: 19, ConditionDescription: "pochmurnie", ConditionIcon: "04d"},
				{Timestamp: at(26, 9), Temperature: 12, TemperatureMin: 12, TemperatureMax: 12, ConditionDescription: "deszcz", ConditionIcon: "10d"},
				{Timestamp: at(26, 12), Temperature: 9, TemperatureMin: 9, TemperatureMax: 9, ConditionDescription: "deszcz", ConditionIcon: "10d"},
			},
		},
	}
}

func newTestApp(t *testing.T, repo *mockRepository) *fiber.App {
	t.Helper()
	l := logger.NewZapLogger("test-app", io.Discard)

	service := weather.NewDashboardService(repo, l, weather.WithClock(func() time.Time { return at(25, 7) }))
	presenter, err := presentation.NewLocalizedPresenter(presentation.LocalePolish, "")
	require.NoError(t, err)

	app := fiber.New()
	NewRouter(app, service, presenter, staticProbe{}, Defaults{
		Units:    models.UnitsMetric,
		Lang:     "pl",
		Location: warsaw,
	}, l)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func TestHandleForecast_Success(t *testing.T) {
	repo := exampleRepository()
	app := newTestApp(t, repo)

	var view presentation.ForecastView
	code := doGet(t, app, "/api/v1/weather/forecast?city=Warszawa", &view)

	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "2025-07-25", view.Today)
	require.Len(t, view.Hourly, 3)
	assert.Equal(t, "08", view.Hourly[0].Label)
	require.Len(t, view.Daily, 2)
	assert.Equal(t, "dziś", view.Daily[0].Label)
	assert.Equal(t, "Od 9°C do 19°C", view.Daily[0].RangeText)
	assert.Equal(t, "sobota", view.Daily[1].Label)

	assert.Equal(t, "Warszawa", repo.lastQuery.Location.City)
	assert.Equal(t, models.UnitsMetric, repo.lastQuery.Units)
	assert.Equal(t, "pl", repo.lastQuery.Lang)
}

func TestHandleForecast_QueryOverrides(t *testing.T) {
	repo := exampleRepository()
	app := newTestApp(t, repo)

	var view presentation.ForecastView
	code := doGet(t, app, "/api/v1/weather/forecast?lat=52.23&lon=21.01&units=imperial&lang=en&tz=UTC", &view)

	require.Equal(t, fiber.StatusOK, code)
	assert.True(t, repo.lastQuery.Location.HasCoordinates)
	assert.Equal(t, 52.23, repo.lastQuery.Location.Lat)
	assert.Equal(t, models.UnitsImperial, repo.lastQuery.Units)
	assert.Equal(t, "en", repo.lastQuery.Lang)
	assert.Equal(t, "UTC", view.Timezone)
	assert.Equal(t, "today", view.Daily[0].Label)
	assert.Equal(t, "9°F to 19°F", view.Daily[0].RangeText)
}

func TestHandleRequests_Validation(t *testing.T) {
	app := newTestApp(t, exampleRepository())

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"no location", "", "Missing required parameter: city or lat and lon"},
		{"missing lon", "?lat=52.2", "Missing required parameter: lon"},
		{"missing lat", "?lon=21", "Missing required parameter: lat"},
		{"both", "?city=Warszawa&lat=52.2&lon=21", "Provide either city or lat and lon, not both"},
		{"bad lat", "?lat=north&lon=21", "Invalid latitude format"},
		{"bad lon", "?lat=52&lon=east", "Invalid longitude format"},
		{"lat range", "?lat=91&lon=21", "Latitude must be between -90 and 90"},
		{"lon range", "?lat=52&lon=-181", "Longitude must be between -180 and 180"},
		{"units", "?city=Warszawa&units=kelvin", "Units must be one of: metric, imperial, standard"},
		{"lang", "?city=Warszawa&lang=polish!", "Invalid language code"},
		{"tz", "?city=Warszawa&tz=Mars/Olympus", "Invalid timezone: Mars/Olympus"},
	}

	for _, path := range []string{"/api/v1/weather/current", "/api/v1/weather/forecast", "/api/v1/dashboard"} {
		for _, tt := range tests {
			t.Run(path+" "+tt.name, func(t *testing.T) {
				var resp ErrorResponse
				code := doGet(t, app, path+tt.query, &resp)

				assert.Equal(t, fiber.StatusBadRequest, code)
				assert.Equal(t, tt.want, resp.Error)
			})
		}
	}
}

func TestHandleRequests_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{
			name: "not found",
			err:  &repositories.TransportError{Op: "mock", StatusCode: http.StatusNotFound, Message: "city not found"},
			code: fiber.StatusNotFound,
			msg:  "Location not found",
		},
		{
			name: "upstream 500",
			err:  &repositories.TransportError{Op: "mock", StatusCode: http.StatusInternalServerError},
			code: fiber.StatusBadGateway,
			msg:  "Failed to fetch weather data",
		},
		{
			name: "bad api key",
			err:  &repositories.TransportError{Op: "mock", StatusCode: http.StatusUnauthorized, Message: "Invalid API key"},
			code: fiber.StatusBadGateway,
			msg:  "Failed to fetch weather data",
		},
		{
			name: "parse",
			err:  &repositories.ParseError{Op: "mock", Field: "list[0].main.temp"},
			code: fiber.StatusBadGateway,
			msg:  "Invalid upstream response",
		},
		{
			name: "breaker open",
			err:  &repositories.TransportError{Op: "mock", Err: repositories.ErrCircuitOpen},
			code: fiber.StatusServiceUnavailable,
			msg:  "Weather provider temporarily unavailable",
		},
		{
			name: "rate limited",
			err:  &repositories.TransportError{Op: "mock", Err: repositories.ErrRateLimited},
			code: fiber.StatusServiceUnavailable,
			msg:  "Weather provider temporarily unavailable",
		},
		{
			name: "deadline",
			err:  &repositories.TransportError{Op: "mock", Err: context.DeadlineExceeded},
			code: fiber.StatusGatewayTimeout,
			msg:  "Weather provider timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := exampleRepository()
			repo.currentErr = tt.err
			repo.forecastErr = tt.err
			app := newTestApp(t, repo)

			for _, path := range []string{"/api/v1/weather/current", "/api/v1/weather/forecast", "/api/v1/dashboard"} {
				var resp ErrorResponse
				code := doGet(t, app, path+"?city=Atlantyda", &resp)

				assert.Equal(t, tt.code, code, path)
				assert.Equal(t, tt.msg, resp.Error, path)
			}
		})
	}
}

func TestHandleCurrent_Success(t *testing.T) {
	app := newTestApp(t, exampleRepository())

	var view presentation.CurrentView
	code := doGet(t, app, "/api/v1/weather/current?city=Warszawa", &view)

	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "📍Warszawa", view.Title)
	assert.Equal(t, "Temperatura odczuwalna: 17.5°C", view.FeelsLikeText)
	assert.Equal(t, "wiatr 4.1 m/s", view.WindText)
}

func TestHandleDashboard_PartialFailure(t *testing.T) {
	repo := exampleRepository()
	repo.currentErr = &repositories.ParseError{Op: "mock", Field: "weather"}
	app := newTestApp(t, repo)

	var resp DashboardResponse
	code := doGet(t, app, "/api/v1/dashboard?city=Warszawa", &resp)

	require.Equal(t, fiber.StatusOK, code)
	assert.Nil(t, resp.Current)
	require.NotNil(t, resp.Forecast)
	assert.Len(t, resp.Forecast.Daily, 2)
	assert.Equal(t, map[string]string{"current": "Invalid upstream response"}, resp.Errors)
}

func TestHandleDashboard_Success(t *testing.T) {
	app := newTestApp(t, exampleRepository())

	var resp DashboardResponse
	code := doGet(t, app, "/api/v1/dashboard?city=Warszawa", &resp)

	require.Equal(t, fiber.StatusOK, code)
	require.NotNil(t, resp.Current)
	require.NotNil(t, resp.Forecast)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, "Warszawa", resp.Current.Location)
}

func TestHandleProvider(t *testing.T) {
	app := newTestApp(t, exampleRepository())

	var resp ProviderResponse
	code := doGet(t, app, "/manage/provider", &resp)

	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "mock", resp.Name)
	assert.Equal(t, "disabled", resp.Breaker)
	require.NotNil(t, resp.Probe)
	assert.Equal(t, 2, resp.Probe.Runs)
}

func TestSwaggerDoc(t *testing.T) {
	app := newTestApp(t, exampleRepository())

	var doc map[string]any
	code := doGet(t, app, "/swagger/doc.json", &doc)

	require.Equal(t, fiber.StatusOK, code)
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)

	registered := map[string]bool{}
	for _, route := range app.GetRoutes(true) {
		if route.Method != fiber.MethodGet || strings.HasPrefix(route.Path, "/swagger") {
			continue
		}
		registered[route.Path] = true
		assert.Contains(t, paths, route.Path, "route missing from swagger doc")
	}
	for path := range paths {
		assert.True(t, registered[path], "swagger doc lists unknown route %s", path)
	}
	assert.Len(t, registered, 4)
}
