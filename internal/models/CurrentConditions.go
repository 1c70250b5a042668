package models

import "time"

type CurrentConditions struct {
	LocationName         string    `json:"location_name" example:"Warszawa"`
	ObservedAt           time.Time `json:"observed_at"`
	Temperature          float64   `json:"temperature" example:"18.5"`
	FeelsLike            float64   `json:"feels_like" example:"18.0"`
	TemperatureMin       float64   `json:"temperature_min" example:"17.0"`
	TemperatureMax       float64   `json:"temperature_max" example:"19.5"`
	ConditionMain        string    `json:"condition_main" example:"Clouds"`
	ConditionDescription string    `json:"condition_description" example:"zachmurzenie umiarkowane"`
	ConditionIcon        string    `json:"condition_icon" example:"03d"`
	Humidity             int       `json:"humidity" example:"62"`
	Pressure             int       `json:"pressure" example:"1013"`
	WindSpeed            float64   `json:"wind_speed" example:"4.1"`
	WindGust             float64   `json:"wind_gust" example:"7.2"`
}
