package http

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/presentation"
	"weather-dashboard/internal/repositories"
)

var langPattern = regexp.MustCompile(`^[a-zA-Z]{2}(_[a-zA-Z]{2})?$`)

// Defaults fill in optional query parameters.
type Defaults struct {
	Units    models.Units
	Lang     string
	Location *time.Location
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: lat"`
}

type request struct {
	query    models.Query
	location *time.Location
	settings presentation.Settings
}

type badRequest string

func (e badRequest) Error() string {
	return string(e)
}

func (r *routes) parseRequest(c *fiber.Ctx) (request, error) {
	location, err := parseLocation(c.Query("city"), c.Query("lat"), c.Query("lon"))
	if err != nil {
		return request{}, err
	}

	units := r.defaults.Units
	if raw := c.Query("units"); raw != "" {
		if units, err = models.ParseUnits(raw); err != nil {
			return request{}, badRequest("Units must be one of: metric, imperial, standard")
		}
	}

	lang := r.defaults.Lang
	if raw := c.Query("lang"); raw != "" {
		if !langPattern.MatchString(raw) {
			return request{}, badRequest("Invalid language code")
		}
		lang = strings.ToLower(raw)
	}

	tz := r.defaults.Location
	if raw := c.Query("tz"); raw != "" {
		if tz, err = time.LoadLocation(raw); err != nil {
			return request{}, badRequest("Invalid timezone: " + raw)
		}
	}

	return request{
		query:    models.Query{Location: location, Units: units, Lang: lang},
		location: tz,
		settings: presentation.Settings{Units: units, Locale: lang, Location: tz},
	}, nil
}

func parseLocation(city, lat, lon string) (models.Location, error) {
	city = strings.TrimSpace(city)

	if city != "" {
		if lat != "" || lon != "" {
			return models.Location{}, badRequest("Provide either city or lat and lon, not both")
		}
		return models.CityLocation(city), nil
	}

	switch {
	case lat == "" && lon == "":
		return models.Location{}, badRequest("Missing required parameter: city or lat and lon")
	case lat == "":
		return models.Location{}, badRequest("Missing required parameter: lat")
	case lon == "":
		return models.Location{}, badRequest("Missing required parameter: lon")
	}

	latFloat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return models.Location{}, badRequest("Invalid latitude format")
	}
	lonFloat, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return models.Location{}, badRequest("Invalid longitude format")
	}

	location := models.CoordinatesLocation(latFloat, lonFloat)
	if err := location.Validate(); err != nil {
		return models.Location{}, badRequest(upperFirst(err.Error()))
	}
	return location, nil
}

// classify maps a fetch error to the status and message clients see.
func classify(err error) (int, string) {
	var transportErr *repositories.TransportError
	var parseErr *repositories.ParseError

	switch {
	case errors.As(err, &transportErr) && transportErr.NotFound():
		return fiber.StatusNotFound, "Location not found"
	case errors.As(err, &transportErr) && transportErr.Unavailable():
		return fiber.StatusServiceUnavailable, "Weather provider temporarily unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "Weather provider timed out"
	case errors.As(err, &transportErr):
		return fiber.StatusBadGateway, "Failed to fetch weather data"
	case errors.As(err, &parseErr):
		return fiber.StatusBadGateway, "Invalid upstream response"
	default:
		return fiber.StatusInternalServerError, "Failed to fetch weather data"
	}
}

func (r *routes) respondError(c *fiber.Ctx, err error, fields map[string]any) error {
	var bad badRequest
	if errors.As(err, &bad) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: bad.Error()})
	}

	code, msg := classify(err)
	if fields == nil {
		fields = map[string]any{}
	}
	fields["status"] = code
	fields["requestid"] = c.Locals("requestid")
	if code >= fiber.StatusInternalServerError {
		r.l.Error(err, fields)
	} else {
		r.l.Warning(err.Error(), fields)
	}

	return c.Status(code).JSON(ErrorResponse{Error: msg})
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
