package forecast

import (
	"time"

	"weather-dashboard/internal/models"
)

// DailyAggregate summarises all samples of one calendar day.
// The condition comes from the first sample of the day and is never replaced.
type DailyAggregate struct {
	Day                     CalendarDay `json:"day"`
	RepresentativeTimestamp time.Time   `json:"representative_timestamp"`
	TemperatureMin          float64     `json:"temperature_min"`
	TemperatureMax          float64     `json:"temperature_max"`
	ConditionDescription    string      `json:"condition_description"`
	ConditionIcon           string      `json:"condition_icon"`
	Samples                 int         `json:"samples"`
}

func newDailyAggregate(day CalendarDay, s models.ForecastSample) DailyAggregate {
	return DailyAggregate{
		Day:                     day,
		RepresentativeTimestamp: s.Timestamp,
		TemperatureMin:          s.TemperatureMin,
		TemperatureMax:          s.TemperatureMax,
		ConditionDescription:    s.ConditionDescription,
		ConditionIcon:           s.ConditionIcon,
		Samples:                 1,
	}
}

func (a *DailyAggregate) fold(s models.ForecastSample) {
	a.TemperatureMin = min(a.TemperatureMin, s.TemperatureMin)
	a.TemperatureMax = max(a.TemperatureMax, s.TemperatureMax)
	a.Samples++
}

// DailyForecasts maps calendar days to aggregates and remembers insertion
// order. Iteration always follows the order in which days were first seen.
type DailyForecasts struct {
	order []CalendarDay
	byDay map[CalendarDay]*DailyAggregate
}

func NewDailyForecasts() *DailyForecasts {
	return &DailyForecasts{byDay: make(map[CalendarDay]*DailyAggregate)}
}

// add inserts a new aggregate for the sample's day or folds the sample into
// the existing one.
func (d *DailyForecasts) add(day CalendarDay, s models.ForecastSample) {
	if agg, ok := d.byDay[day]; ok {
		agg.fold(s)
		return
	}

	agg := newDailyAggregate(day, s)
	d.byDay[day] = &agg
	d.order = append(d.order, day)
}

func (d *DailyForecasts) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

func (d *DailyForecasts) Get(day CalendarDay) (DailyAggregate, bool) {
	if d == nil {
		return DailyAggregate{}, false
	}
	agg, ok := d.byDay[day]
	if !ok {
		return DailyAggregate{}, false
	}
	return *agg, true
}

// Days returns the keys in first-seen order.
func (d *DailyForecasts) Days() []CalendarDay {
	if d == nil {
		return nil
	}
	days := make([]CalendarDay, len(d.order))
	copy(days, d.order)
	return days
}

// Aggregates returns copies of the values in first-seen order.
func (d *DailyForecasts) Aggregates() []DailyAggregate {
	if d == nil {
		return nil
	}
	out := make([]DailyAggregate, 0, len(d.order))
	for _, day := range d.order {
		out = append(out, *d.byDay[day])
	}
	return out
}
