// Package docs holds the swagger spec served at /swagger/doc.json.
// It follows the swaggo/swag layout and is edited by hand alongside the
// handler annotations; `swag init -g cmd/weather-dashboard/main.go`
// regenerates it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Weather Dashboard Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/dashboard": {
            "get": {
                "description": "Retrieves current conditions and the aggregated forecast concurrently. One failed section does not fail the request.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Weather"],
                "summary": "Get dashboard",
                "parameters": [
                    {"type": "string", "example": "Warszawa", "description": "City name, e.g. Warszawa. Mutually exclusive with lat/lon", "name": "city", "in": "query"},
                    {"maximum": 90, "minimum": -90, "type": "number", "example": 52.2297, "description": "Latitude coordinate (-90 to 90)", "name": "lat", "in": "query"},
                    {"maximum": 180, "minimum": -180, "type": "number", "example": 21.0122, "description": "Longitude coordinate (-180 to 180)", "name": "lon", "in": "query"},
                    {"enum": ["metric", "imperial", "standard"], "type": "string", "description": "Units: metric, imperial or standard", "name": "units", "in": "query"},
                    {"type": "string", "example": "pl", "description": "Language of descriptions and labels", "name": "lang", "in": "query"},
                    {"type": "string", "example": "Europe/Warsaw", "description": "IANA timezone that decides calendar days", "name": "tz", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"$ref": "#/definitions/http.DashboardResponse"}},
                    "400": {"description": "Bad request - invalid parameters", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Location not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "503": {"description": "Upstream temporarily unavailable", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/weather/current": {
            "get": {
                "description": "Retrieves current conditions for a city or a coordinate pair",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Weather"],
                "summary": "Get current weather",
                "parameters": [
                    {"type": "string", "example": "Warszawa", "description": "City name, e.g. Warszawa. Mutually exclusive with lat/lon", "name": "city", "in": "query"},
                    {"maximum": 90, "minimum": -90, "type": "number", "example": 52.2297, "description": "Latitude coordinate (-90 to 90)", "name": "lat", "in": "query"},
                    {"maximum": 180, "minimum": -180, "type": "number", "example": 21.0122, "description": "Longitude coordinate (-180 to 180)", "name": "lon", "in": "query"},
                    {"enum": ["metric", "imperial", "standard"], "type": "string", "description": "Units: metric, imperial or standard", "name": "units", "in": "query"},
                    {"type": "string", "example": "pl", "description": "Language of descriptions and labels", "name": "lang", "in": "query"},
                    {"type": "string", "example": "Europe/Warsaw", "description": "IANA timezone used for local times", "name": "tz", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"$ref": "#/definitions/presentation.CurrentView"}},
                    "400": {"description": "Bad request - invalid parameters", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Location not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "503": {"description": "Upstream temporarily unavailable", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/v1/weather/forecast": {
            "get": {
                "description": "Retrieves the 5 day / 3 hour forecast aggregated into today's hourly entries (at most 8) and one summary per calendar day",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Weather"],
                "summary": "Get forecast",
                "parameters": [
                    {"type": "string", "example": "Warszawa", "description": "City name, e.g. Warszawa. Mutually exclusive with lat/lon", "name": "city", "in": "query"},
                    {"maximum": 90, "minimum": -90, "type": "number", "example": 52.2297, "description": "Latitude coordinate (-90 to 90)", "name": "lat", "in": "query"},
                    {"maximum": 180, "minimum": -180, "type": "number", "example": 21.0122, "description": "Longitude coordinate (-180 to 180)", "name": "lon", "in": "query"},
                    {"enum": ["metric", "imperial", "standard"], "type": "string", "description": "Units: metric, imperial or standard", "name": "units", "in": "query"},
                    {"type": "string", "example": "pl", "description": "Language of descriptions and labels", "name": "lang", "in": "query"},
                    {"type": "string", "example": "Europe/Warsaw", "description": "IANA timezone that decides calendar days", "name": "tz", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Successful response", "schema": {"$ref": "#/definitions/presentation.ForecastView"}},
                    "400": {"description": "Bad request - invalid parameters", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Location not found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "503": {"description": "Upstream temporarily unavailable", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/manage/provider": {
            "get": {
                "description": "Reports the upstream circuit breaker state and the result of the last scheduled probe",
                "produces": ["application/json"],
                "tags": ["Manage"],
                "summary": "Get provider status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ProviderResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.DashboardResponse": {
            "type": "object",
            "properties": {
                "current": {"$ref": "#/definitions/presentation.CurrentView"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "forecast": {"$ref": "#/definitions/presentation.ForecastView"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Missing required parameter: lat"}
            }
        },
        "http.ProviderResponse": {
            "type": "object",
            "properties": {
                "breaker": {"type": "string", "example": "closed"},
                "name": {"type": "string", "example": "openweathermap"},
                "probe": {"$ref": "#/definitions/scheduler.Status"}
            }
        },
        "presentation.CurrentView": {
            "type": "object",
            "properties": {
                "condition": {"type": "string", "example": "Clouds"},
                "description": {"type": "string", "example": "zachmurzenie umiarkowane"},
                "feels_like": {"type": "number", "example": 17.5},
                "feels_like_text": {"type": "string", "example": "Temperatura odczuwalna: 17.5°C"},
                "humidity": {"type": "integer", "example": 62},
                "humidity_text": {"type": "string", "example": "wilgotność 62%, ciśnienie 1013 hPa"},
                "icon": {"type": "string", "example": "03d"},
                "icon_url": {"type": "string", "example": "https://openweathermap.org/img/wn/03d@2x.png"},
                "location": {"type": "string", "example": "Warszawa"},
                "observed_at": {"type": "string"},
                "pressure": {"type": "integer", "example": 1013},
                "range_text": {"type": "string", "example": "Od 17°C do 19.5°C"},
                "temperature": {"type": "number", "example": 18.5},
                "temperature_max": {"type": "number", "example": 19.5},
                "temperature_min": {"type": "number", "example": 17},
                "temperature_text": {"type": "string", "example": "18.5°C"},
                "title": {"type": "string", "example": "📍Warszawa"},
                "units": {"type": "string", "example": "metric"},
                "wind_gust": {"type": "number", "example": 7.2},
                "wind_speed": {"type": "number", "example": 4.1},
                "wind_text": {"type": "string", "example": "wiatr 4.1 m/s, w porywach do 7.2 m/s"}
            }
        },
        "presentation.DailyView": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-07-25"},
                "description": {"type": "string", "example": "bezchmurnie"},
                "icon": {"type": "string", "example": "01d"},
                "icon_url": {"type": "string", "example": "https://openweathermap.org/img/wn/01d@2x.png"},
                "label": {"type": "string", "example": "dziś"},
                "range_text": {"type": "string", "example": "Od 9°C do 19°C"},
                "samples": {"type": "integer", "example": 3},
                "temperature_max": {"type": "number", "example": 19},
                "temperature_min": {"type": "number", "example": 9}
            }
        },
        "presentation.ForecastView": {
            "type": "object",
            "properties": {
                "city": {"type": "string", "example": "Warszawa"},
                "country": {"type": "string", "example": "PL"},
                "daily": {"type": "array", "items": {"$ref": "#/definitions/presentation.DailyView"}},
                "hourly": {"type": "array", "items": {"$ref": "#/definitions/presentation.HourlyView"}},
                "timezone": {"type": "string", "example": "Europe/Warsaw"},
                "today": {"type": "string", "example": "2025-07-25"},
                "units": {"type": "string", "example": "metric"}
            }
        },
        "presentation.HourlyView": {
            "type": "object",
            "properties": {
                "description": {"type": "string", "example": "bezchmurnie"},
                "icon": {"type": "string", "example": "01d"},
                "icon_url": {"type": "string", "example": "https://openweathermap.org/img/wn/01d@2x.png"},
                "label": {"type": "string", "example": "08"},
                "temperature": {"type": "number", "example": 10},
                "temperature_text": {"type": "string", "example": "10°C"},
                "time": {"type": "string"}
            }
        },
        "scheduler.Status": {
            "type": "object",
            "properties": {
                "city": {"type": "string", "example": "Warszawa"},
                "enabled": {"type": "boolean", "example": true},
                "failures": {"type": "integer", "example": 0},
                "last_duration": {"type": "string", "example": "182ms"},
                "last_error": {"type": "string"},
                "last_run": {"type": "string"},
                "last_success": {"type": "boolean", "example": true},
                "next_run": {"type": "string"},
                "running": {"type": "boolean", "example": true},
                "runs": {"type": "integer", "example": 12},
                "schedule": {"type": "string", "example": "@every 5m"}
            }
        }
    },
    "tags": [
        {"description": "Current conditions and aggregated forecast", "name": "Weather"},
        {"description": "Operational endpoints", "name": "Manage"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Weather Dashboard API",
	Description:      "Current conditions and a 5 day forecast aggregated into hourly and daily views, backed by OpenWeatherMap.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
