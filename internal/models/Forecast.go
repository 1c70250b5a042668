package models

import "time"

// ForecastSample is one 3-hour slot of the upstream forecast.
// Temperatures are already rounded to the nearest half degree.
type ForecastSample struct {
	Timestamp            time.Time `json:"timestamp" example:"2025-07-25T15:00:00Z"`
	Temperature          float64   `json:"temperature" example:"21.5"`
	TemperatureMin       float64   `json:"temperature_min" example:"21.5"`
	TemperatureMax       float64   `json:"temperature_max" example:"22.5"`
	FeelsLike            float64   `json:"feels_like" example:"21.0"`
	ConditionDescription string    `json:"condition_description" example:"bezchmurnie"`
	ConditionIcon        string    `json:"condition_icon" example:"01d"`

	Humidity                 int     `json:"humidity" example:"54"`
	Pressure                 int     `json:"pressure" example:"1015"`
	WindSpeed                float64 `json:"wind_speed" example:"3.4"`
	WindGust                 float64 `json:"wind_gust" example:"5.1"`
	PrecipitationProbability float64 `json:"precipitation_probability" example:"0.2"`
}

// CityInfo describes the place the upstream resolved the query to.
type CityInfo struct {
	Name           string `json:"name" example:"Warszawa"`
	Country        string `json:"country" example:"PL"`
	TimezoneOffset int    `json:"timezone_offset" example:"7200"`
}

type Forecast struct {
	RepositoryName string           `json:"repository_name" example:"openweathermap"`
	City           CityInfo         `json:"city"`
	Samples        []ForecastSample `json:"samples"`
}
