package models

import (
	"errors"
	"fmt"
	"strings"
)

// Units selects the unit system the upstream converts readings to.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
	UnitsStandard Units = "standard"
)

func ParseUnits(s string) (Units, error) {
	switch u := Units(strings.ToLower(strings.TrimSpace(s))); u {
	case UnitsMetric, UnitsImperial, UnitsStandard:
		return u, nil
	default:
		return "", fmt.Errorf("unsupported units %q", s)
	}
}

// TemperatureSymbol returns the display suffix for temperatures.
func (u Units) TemperatureSymbol() string {
	switch u {
	case UnitsImperial:
		return "°F"
	case UnitsStandard:
		return "K"
	default:
		return "°C"
	}
}

func (u Units) SpeedSymbol() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// Location is either a city name or a coordinate pair, never both.
type Location struct {
	City           string  `json:"city,omitempty"`
	Lat            float64 `json:"lat,omitempty"`
	Lon            float64 `json:"lon,omitempty"`
	HasCoordinates bool    `json:"-"`
}

func CityLocation(city string) Location {
	return Location{City: strings.TrimSpace(city)}
}

func CoordinatesLocation(lat, lon float64) Location {
	return Location{Lat: lat, Lon: lon, HasCoordinates: true}
}

func (l Location) Validate() error {
	if l.HasCoordinates {
		if l.City != "" {
			return errors.New("location must be either a city or coordinates")
		}
		if l.Lat < -90 || l.Lat > 90 {
			return errors.New("latitude must be between -90 and 90")
		}
		if l.Lon < -180 || l.Lon > 180 {
			return errors.New("longitude must be between -180 and 180")
		}
		return nil
	}
	if l.City == "" {
		return errors.New("city cannot be empty")
	}
	return nil
}

func (l Location) String() string {
	if l.HasCoordinates {
		return fmt.Sprintf("lat: %.4f lon: %.4f", l.Lat, l.Lon)
	}
	return "city: " + l.City
}

// Query is everything a repository needs to address the upstream.
type Query struct {
	Location Location
	Units    Units
	Lang     string
}

func (q Query) RequestParams() string {
	return fmt.Sprintf("%s units: %s lang: %s", q.Location, q.Units, q.Lang)
}
