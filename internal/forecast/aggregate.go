// Package forecast turns the flat 3-hour forecast list into the hourly view
// for today and one summary per calendar day.
package forecast

import (
	"time"

	"weather-dashboard/internal/models"
)

// MaxHourlyEntries caps the hourly view for today.
const MaxHourlyEntries = 8

// Aggregate makes a single pass over samples, which must be in
// non-decreasing timestamp order. Every sample is bucketed by its calendar
// day in loc, the same loc today was derived from. The first
// MaxHourlyEntries samples falling on today form the hourly view.
// Temperatures are compared as given: rounding happens before this call.
func Aggregate(samples []models.ForecastSample, today CalendarDay, loc *time.Location) ([]models.ForecastSample, *DailyForecasts) {
	hourly := make([]models.ForecastSample, 0, MaxHourlyEntries)
	daily := NewDailyForecasts()

	for _, s := range samples {
		day := DayOf(s.Timestamp, loc)
		daily.add(day, s)

		if day == today && len(hourly) < MaxHourlyEntries {
			hourly = append(hourly, s)
		}
	}

	return hourly, daily
}
