package http

import (
	"github.com/gofiber/fiber/v2"

	"weather-dashboard/internal/presentation"
)

// DashboardResponse carries both sections. A section that could not be
// fetched is null and its reason is listed under errors.
type DashboardResponse struct {
	Current  *presentation.CurrentView  `json:"current"`
	Forecast *presentation.ForecastView `json:"forecast"`
	Errors   map[string]string          `json:"errors,omitempty" example:"current:Location not found"`
}

// GetCurrentWeather godoc
// @Summary Get current weather
// @Description Retrieves current conditions for a city or a coordinate pair
// @Tags Weather
// @Accept json
// @Produce json
// @Param city query string false "City name, e.g. Warszawa. Mutually exclusive with lat/lon" example(Warszawa)
// @Param lat query number false "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(52.2297)
// @Param lon query number false "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(21.0122)
// @Param units query string false "Units: metric, imperial or standard" Enums(metric, imperial, standard)
// @Param lang query string false "Language of descriptions and labels" example(pl)
// @Param tz query string false "IANA timezone used for local times" example(Europe/Warsaw)
// @Success 200 {object} presentation.CurrentView "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "Location not found"
// @Failure 502 {object} ErrorResponse "Upstream failure"
// @Failure 503 {object} ErrorResponse "Upstream temporarily unavailable"
// @Router /api/v1/weather/current [get]
func (r *routes) handleCurrent(c *fiber.Ctx) error {
	req, err := r.parseRequest(c)
	if err != nil {
		return r.respondError(c, err, nil)
	}

	current, err := r.service.FetchCurrent(c.Context(), req.query)
	if err != nil {
		return r.respondError(c, err, map[string]any{"query": req.query.RequestParams()})
	}

	return c.JSON(r.presenter.Current(current, req.settings))
}

// GetForecast godoc
// @Summary Get forecast
// @Description Retrieves the 5 day / 3 hour forecast aggregated into today's hourly entries (at most 8) and one summary per calendar day
// @Tags Weather
// @Accept json
// @Produce json
// @Param city query string false "City name, e.g. Warszawa. Mutually exclusive with lat/lon" example(Warszawa)
// @Param lat query number false "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(52.2297)
// @Param lon query number false "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(21.0122)
// @Param units query string false "Units: metric, imperial or standard" Enums(metric, imperial, standard)
// @Param lang query string false "Language of descriptions and labels" example(pl)
// @Param tz query string false "IANA timezone that decides calendar days" example(Europe/Warsaw)
// @Success 200 {object} presentation.ForecastView "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "Location not found"
// @Failure 502 {object} ErrorResponse "Upstream failure"
// @Failure 503 {object} ErrorResponse "Upstream temporarily unavailable"
// @Router /api/v1/weather/forecast [get]
func (r *routes) handleForecast(c *fiber.Ctx) error {
	req, err := r.parseRequest(c)
	if err != nil {
		return r.respondError(c, err, nil)
	}

	result, err := r.service.FetchForecast(c.Context(), req.query, req.location)
	if err != nil {
		return r.respondError(c, err, map[string]any{"query": req.query.RequestParams()})
	}

	return c.JSON(r.presenter.Forecast(result, req.settings))
}

// GetDashboard godoc
// @Summary Get dashboard
// @Description Retrieves current conditions and the aggregated forecast concurrently. One failed section does not fail the request.
// @Tags Weather
// @Accept json
// @Produce json
// @Param city query string false "City name, e.g. Warszawa. Mutually exclusive with lat/lon" example(Warszawa)
// @Param lat query number false "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(52.2297)
// @Param lon query number false "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(21.0122)
// @Param units query string false "Units: metric, imperial or standard" Enums(metric, imperial, standard)
// @Param lang query string false "Language of descriptions and labels" example(pl)
// @Param tz query string false "IANA timezone that decides calendar days" example(Europe/Warsaw)
// @Success 200 {object} DashboardResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "Location not found"
// @Failure 502 {object} ErrorResponse "Upstream failure"
// @Failure 503 {object} ErrorResponse "Upstream temporarily unavailable"
// @Router /api/v1/dashboard [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/api/v1/dashboard?city=Warszawa&tz=Europe/Warsaw"
func (r *routes) handleDashboard(c *fiber.Ctx) error {
	req, err := r.parseRequest(c)
	if err != nil {
		return r.respondError(c, err, nil)
	}

	d, err := r.service.FetchDashboard(c.Context(), req.query, req.location)
	if err != nil {
		return r.respondError(c, err, map[string]any{"query": req.query.RequestParams()})
	}

	response := DashboardResponse{}
	if d.Current != nil {
		view := r.presenter.Current(*d.Current, req.settings)
		response.Current = &view
	}
	if d.Forecast != nil {
		view := r.presenter.Forecast(*d.Forecast, req.settings)
		response.Forecast = &view
	}

	for section, sectionErr := range map[string]error{"current": d.CurrentErr, "forecast": d.ForecastErr} {
		if sectionErr == nil {
			continue
		}
		if response.Errors == nil {
			response.Errors = make(map[string]string)
		}
		_, msg := classify(sectionErr)
		response.Errors[section] = msg
	}

	return c.JSON(response)
}
