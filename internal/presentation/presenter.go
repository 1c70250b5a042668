// Package presentation turns fetched and aggregated weather data into
// label-ready view models. It does no I/O.
package presentation

import (
	"fmt"
	"strconv"
	"time"

	"weather-dashboard/internal/forecast"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/services/weather"
)

const DefaultIconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

// Presenter is what the HTTP layer renders with. Implementations may change
// labels and formatting but must keep the order of hourly and daily entries.
type Presenter interface {
	Current(c models.CurrentConditions, s Settings) CurrentView
	Forecast(f weather.ForecastResult, s Settings) ForecastView
}

// Settings are per-request display options. An empty or unknown Locale uses
// the presenter default.
type Settings struct {
	Units    models.Units
	Locale   string
	Location *time.Location
}

type CurrentView struct {
	Title           string    `json:"title" example:"📍Warszawa"`
	Location        string    `json:"location" example:"Warszawa"`
	ObservedAt      time.Time `json:"observed_at"`
	Temperature     float64   `json:"temperature" example:"18.5"`
	TemperatureText string    `json:"temperature_text" example:"18.5°C"`
	FeelsLike       float64   `json:"feels_like" example:"17.5"`
	FeelsLikeText   string    `json:"feels_like_text" example:"Temperatura odczuwalna: 17.5°C"`
	TemperatureMin  float64   `json:"temperature_min" example:"17"`
	TemperatureMax  float64   `json:"temperature_max" example:"19.5"`
	RangeText       string    `json:"range_text" example:"Od 17°C do 19.5°C"`
	Condition       string    `json:"condition" example:"Clouds"`
	Description     string    `json:"description" example:"zachmurzenie umiarkowane"`
	Icon            string    `json:"icon" example:"03d"`
	IconURL         string    `json:"icon_url" example:"https://openweathermap.org/img/wn/03d@2x.png"`
	Humidity        int       `json:"humidity" example:"62"`
	Pressure        int       `json:"pressure" example:"1013"`
	HumidityText    string    `json:"humidity_text" example:"wilgotność 62%, ciśnienie 1013 hPa"`
	WindSpeed       float64   `json:"wind_speed" example:"4.1"`
	WindGust        float64   `json:"wind_gust" example:"7.2"`
	WindText        string    `json:"wind_text" example:"wiatr 4.1 m/s, w porywach do 7.2 m/s"`
	Units           string    `json:"units" example:"metric"`
}

type HourlyView struct {
	Time            time.Time `json:"time"`
	Label           string    `json:"label" example:"08"`
	Temperature     float64   `json:"temperature" example:"10"`
	TemperatureText string    `json:"temperature_text" example:"10°C"`
	Description     string    `json:"description" example:"bezchmurnie"`
	Icon            string    `json:"icon" example:"01d"`
	IconURL         string    `json:"icon_url" example:"https://openweathermap.org/img/wn/01d@2x.png"`
}

type DailyView struct {
	Date           string  `json:"date" example:"2025-07-25"`
	Label          string  `json:"label" example:"dziś"`
	TemperatureMin float64 `json:"temperature_min" example:"9"`
	TemperatureMax float64 `json:"temperature_max" example:"19"`
	RangeText      string  `json:"range_text" example:"Od 9°C do 19°C"`
	Description    string  `json:"description" example:"bezchmurnie"`
	Icon           string  `json:"icon" example:"01d"`
	IconURL        string  `json:"icon_url" example:"https://openweathermap.org/img/wn/01d@2x.png"`
	Samples        int     `json:"samples" example:"3"`
}

type ForecastView struct {
	City     string       `json:"city" example:"Warszawa"`
	Country  string       `json:"country" example:"PL"`
	Today    string       `json:"today" example:"2025-07-25"`
	Timezone string       `json:"timezone" example:"Europe/Warsaw"`
	Units    string       `json:"units" example:"metric"`
	Hourly   []HourlyView `json:"hourly"`
	Daily    []DailyView  `json:"daily"`
}

// LocalizedPresenter renders Polish or English labels.
type LocalizedPresenter struct {
	defaultLocale   string
	iconURLTemplate string
}

func NewLocalizedPresenter(defaultLocale, iconURLTemplate string) (*LocalizedPresenter, error) {
	if !SupportedLocale(defaultLocale) {
		return nil, fmt.Errorf("unsupported locale %q", defaultLocale)
	}
	if iconURLTemplate == "" {
		iconURLTemplate = DefaultIconURLTemplate
	}
	return &LocalizedPresenter{
		defaultLocale:   defaultLocale,
		iconURLTemplate: iconURLTemplate,
	}, nil
}

func (p *LocalizedPresenter) Current(c models.CurrentConditions, s Settings) CurrentView {
	loc := p.locale(s.Locale)
	units := unitsOrDefault(s.Units)

	wind := fmt.Sprintf(loc.wind, speed(c.WindSpeed, units))
	if c.WindGust > 0 {
		wind = fmt.Sprintf(loc.windWithGusts, speed(c.WindSpeed, units), speed(c.WindGust, units))
	}

	observedAt := c.ObservedAt
	if s.Location != nil {
		observedAt = observedAt.In(s.Location)
	}

	return CurrentView{
		Title:           "📍" + c.LocationName,
		Location:        c.LocationName,
		ObservedAt:      observedAt,
		Temperature:     c.Temperature,
		TemperatureText: temperature(c.Temperature, units),
		FeelsLike:       c.FeelsLike,
		FeelsLikeText:   fmt.Sprintf(loc.feelsLike, temperature(c.FeelsLike, units)),
		TemperatureMin:  c.TemperatureMin,
		TemperatureMax:  c.TemperatureMax,
		RangeText:       fmt.Sprintf(loc.rangeText, temperature(c.TemperatureMin, units), temperature(c.TemperatureMax, units)),
		Condition:       c.ConditionMain,
		Description:     c.ConditionDescription,
		Icon:            c.ConditionIcon,
		IconURL:         p.IconURL(c.ConditionIcon),
		Humidity:        c.Humidity,
		Pressure:        c.Pressure,
		HumidityText:    fmt.Sprintf(loc.humidity, c.Humidity, c.Pressure),
		WindSpeed:       c.WindSpeed,
		WindGust:        c.WindGust,
		WindText:        wind,
		Units:           string(units),
	}
}

func (p *LocalizedPresenter) Forecast(f weather.ForecastResult, s Settings) ForecastView {
	loc := p.locale(s.Locale)
	units := unitsOrDefault(s.Units)
	tz := f.Location
	if tz == nil {
		tz = time.Local
	}

	view := ForecastView{
		City:     f.City.Name,
		Country:  f.City.Country,
		Today:    f.Today.String(),
		Timezone: tz.String(),
		Units:    string(units),
		Hourly:   make([]HourlyView, 0, len(f.Hourly)),
		Daily:    make([]DailyView, 0, f.Daily.Len()),
	}

	for _, sample := range f.Hourly {
		view.Hourly = append(view.Hourly, HourlyView{
			Time:            sample.Timestamp.In(tz),
			Label:           HourLabel(sample.Timestamp, tz),
			Temperature:     sample.Temperature,
			TemperatureText: temperature(sample.Temperature, units),
			Description:     sample.ConditionDescription,
			Icon:            sample.ConditionIcon,
			IconURL:         p.IconURL(sample.ConditionIcon),
		})
	}

	for _, agg := range f.Daily.Aggregates() {
		view.Daily = append(view.Daily, DailyView{
			Date:           agg.Day.String(),
			Label:          loc.dayLabel(agg.Day, f.Today),
			TemperatureMin: agg.TemperatureMin,
			TemperatureMax: agg.TemperatureMax,
			RangeText:      fmt.Sprintf(loc.rangeText, temperature(agg.TemperatureMin, units), temperature(agg.TemperatureMax, units)),
			Description:    agg.ConditionDescription,
			Icon:           agg.ConditionIcon,
			IconURL:        p.IconURL(agg.ConditionIcon),
			Samples:        agg.Samples,
		})
	}

	return view
}

func (p *LocalizedPresenter) IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf(p.iconURLTemplate, icon)
}

// DayLabel is "dziś"/"today" for today and the weekday name otherwise.
func (p *LocalizedPresenter) DayLabel(day, today forecast.CalendarDay, localeName string) string {
	return p.locale(localeName).dayLabel(day, today)
}

func (p *LocalizedPresenter) locale(name string) locale {
	if l, ok := locales[name]; ok {
		return l
	}
	return locales[p.defaultLocale]
}

func (l locale) dayLabel(day, today forecast.CalendarDay) string {
	if day == today {
		return l.today
	}
	return l.weekday(day.Weekday())
}

// HourLabel is the zero-padded hour of t in loc, e.g. "08".
func HourLabel(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%02d", t.Hour())
}

func unitsOrDefault(u models.Units) models.Units {
	if u == "" {
		return models.UnitsMetric
	}
	return u
}

func temperature(v float64, u models.Units) string {
	return number(v) + u.TemperatureSymbol()
}

func speed(v float64, u models.Units) string {
	return number(v) + " " + u.SpeedSymbol()
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
