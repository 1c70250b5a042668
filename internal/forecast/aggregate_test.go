package forecast

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
)

var warsaw = time.FixedZone("CEST", 2*3600)

func sample(ts time.Time, temp, tMin, tMax float64, desc string) models.ForecastSample {
	return models.ForecastSample{
		Timestamp:            ts,
		Temperature:          temp,
		TemperatureMin:       tMin,
		TemperatureMax:       tMax,
		ConditionDescription: desc,
		ConditionIcon:        desc + "-icon",
	}
}

func at(day, hour int) time.Time {
	return time.Date(2025, time.July, day, hour, 0, 0, 0, warsaw)
}

func TestAggregate_Example(t *testing.T) {
	samples := []models.ForecastSample{
		sample(at(25, 8), 10, 9, 11, "clear"),
		sample(at(25, 11), 15, 14, 16, "clear"),
		sample(at(25, 14), 18, 17, 19, "cloudy"),
		sample(at(26, 9), 12, 12, 12, "rain"),
		sample(at(26, 12), 9, 9, 9, "rain"),
	}
	today := CalendarDay{Year: 2025, Month: time.July, Day: 25}
	tomorrow := today.AddDays(1)

	hourly, daily := Aggregate(samples, today, warsaw)

	assert.Equal(t, samples[:3], hourly)
	require.Equal(t, 2, daily.Len())
	assert.Equal(t, []CalendarDay{today, tomorrow}, daily.Days())

	todayAgg, ok := daily.Get(today)
	require.True(t, ok)
	assert.Equal(t, 9.0, todayAgg.TemperatureMin)
	assert.Equal(t, 19.0, todayAgg.TemperatureMax)
	assert.Equal(t, "clear", todayAgg.ConditionDescription)
	assert.Equal(t, "clear-icon", todayAgg.ConditionIcon)
	assert.Equal(t, at(25, 8), todayAgg.RepresentativeTimestamp)
	assert.Equal(t, 3, todayAgg.Samples)

	tomorrowAgg, ok := daily.Get(tomorrow)
	require.True(t, ok)
	assert.Equal(t, 9.0, tomorrowAgg.TemperatureMin)
	assert.Equal(t, 12.0, tomorrowAgg.TemperatureMax)
	assert.Equal(t, "rain", tomorrowAgg.ConditionDescription)
}

func TestAggregate_Empty(t *testing.T) {
	today := Today(at(25, 0), warsaw)

	hourly, daily := Aggregate(nil, today, warsaw)

	assert.Empty(t, hourly)
	assert.Equal(t, 0, daily.Len())
	assert.Empty(t, daily.Aggregates())
}

func TestAggregate_HourlyCappedAtEight(t *testing.T) {
	var samples []models.ForecastSample
	for i := 0; i < 9; i++ {
		ts := at(25, 0).Add(time.Duration(i) * 2 * time.Hour)
		samples = append(samples, sample(ts, float64(i), float64(i), float64(i), "clear"))
	}
	today := Today(at(25, 12), warsaw)

	hourly, daily := Aggregate(samples, today, warsaw)

	require.Len(t, hourly, MaxHourlyEntries)
	assert.Equal(t, samples[:8], hourly)
	assert.Equal(t, 1, daily.Len())
}

func TestAggregate_FewerThanEightToday(t *testing.T) {
	samples := []models.ForecastSample{
		sample(at(25, 18), 20, 19, 21, "clear"),
		sample(at(25, 21), 17, 16, 18, "clear"),
		sample(at(26, 0), 15, 15, 15, "clear"),
	}

	hourly, _ := Aggregate(samples, Today(at(25, 17), warsaw), warsaw)

	assert.Len(t, hourly, 2)
}

func TestAggregate_NoSamplesForToday(t *testing.T) {
	samples := []models.ForecastSample{
		sample(at(26, 0), 15, 15, 15, "clear"),
	}

	hourly, daily := Aggregate(samples, Today(at(25, 23), warsaw), warsaw)

	assert.Empty(t, hourly)
	assert.Equal(t, 1, daily.Len())
}

func TestAggregate_SingleSampleDay(t *testing.T) {
	samples := []models.ForecastSample{sample(at(27, 12), 5, 4.5, 6, "snow")}

	_, daily := Aggregate(samples, Today(at(25, 12), warsaw), warsaw)

	agg, ok := daily.Get(DayOf(at(27, 12), warsaw))
	require.True(t, ok)
	assert.Equal(t, 4.5, agg.TemperatureMin)
	assert.Equal(t, 6.0, agg.TemperatureMax)
	assert.Equal(t, 1, agg.Samples)
}

func TestAggregate_FirstConditionWins(t *testing.T) {
	samples := []models.ForecastSample{
		sample(at(26, 3), 12, 12, 12, "drizzle"),
		sample(at(26, 12), 24, 23, 25, "clear"),
		sample(at(26, 15), 25, 24, 26, "clear"),
	}

	_, daily := Aggregate(samples, Today(at(25, 12), warsaw), warsaw)

	agg, ok := daily.Get(DayOf(at(26, 3), warsaw))
	require.True(t, ok)
	assert.Equal(t, "drizzle", agg.ConditionDescription)
	assert.Equal(t, "drizzle-icon", agg.ConditionIcon)
	assert.Equal(t, 26.0, agg.TemperatureMax)
}

func TestAggregate_BucketsInGivenLocation(t *testing.T) {
	// 23:00 UTC on the 25th is already the 26th in Warsaw.
	ts := time.Date(2025, time.July, 25, 23, 0, 0, 0, time.UTC)
	samples := []models.ForecastSample{sample(ts, 15, 15, 15, "clear")}

	hourlyUTC, dailyUTC := Aggregate(samples, Today(ts, time.UTC), time.UTC)
	hourlyWaw, dailyWaw := Aggregate(samples, Today(ts, warsaw), warsaw)

	assert.Len(t, hourlyUTC, 1)
	assert.Len(t, hourlyWaw, 1)
	assert.Equal(t, 25, dailyUTC.Days()[0].Day)
	assert.Equal(t, 26, dailyWaw.Days()[0].Day)
}

func TestAggregate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		samples := randomSamples(rng)
		if run == 0 {
			samples = nil
		}
		today := DayOf(at(25, 0).Add(time.Duration(rng.Intn(72))*time.Hour), warsaw)

		hourly, daily := Aggregate(samples, today, warsaw)

		firstSeen := []CalendarDay{}
		seen := map[CalendarDay]bool{}
		first := map[CalendarDay]models.ForecastSample{}
		bounds := map[CalendarDay][2]float64{}
		todayCount := 0
		for _, s := range samples {
			d := DayOf(s.Timestamp, warsaw)
			if !seen[d] {
				seen[d] = true
				firstSeen = append(firstSeen, d)
				first[d] = s
				bounds[d] = [2]float64{s.TemperatureMin, s.TemperatureMax}
			}
			b := bounds[d]
			bounds[d] = [2]float64{min(b[0], s.TemperatureMin, s.TemperatureMax), max(b[1], s.TemperatureMin, s.TemperatureMax)}
			if d == today {
				todayCount++
			}
		}

		assert.Equal(t, firstSeen, daily.Days())
		assert.Len(t, hourly, min(MaxHourlyEntries, todayCount))

		for _, agg := range daily.Aggregates() {
			assert.LessOrEqual(t, agg.TemperatureMin, agg.TemperatureMax)
			assert.GreaterOrEqual(t, agg.TemperatureMin, bounds[agg.Day][0])
			assert.LessOrEqual(t, agg.TemperatureMax, bounds[agg.Day][1])
			assert.Equal(t, first[agg.Day].ConditionDescription, agg.ConditionDescription)
		}

		hourly2, daily2 := Aggregate(samples, today, warsaw)
		assert.Equal(t, hourly, hourly2)
		assert.Equal(t, daily.Aggregates(), daily2.Aggregates())
	}
}

func randomSamples(rng *rand.Rand) []models.ForecastSample {
	n := rng.Intn(40)
	ts := at(25, 0).Add(time.Duration(rng.Intn(24)) * time.Hour)
	conditions := []string{"clear", "cloudy", "rain", "snow"}

	samples := make([]models.ForecastSample, 0, n)
	for i := 0; i < n; i++ {
		base := RoundToHalfDegree(rng.Float64()*40 - 10)
		spread := RoundToHalfDegree(rng.Float64() * 3)
		samples = append(samples, sample(ts, base, base-spread, base+spread, conditions[rng.Intn(len(conditions))]))
		ts = ts.Add(3 * time.Hour)
	}
	return samples
}

func TestDailyForecasts_GetMissing(t *testing.T) {
	d := NewDailyForecasts()

	_, ok := d.Get(CalendarDay{Year: 2025, Month: time.January, Day: 1})
	assert.False(t, ok)

	var nilDaily *DailyForecasts
	assert.Equal(t, 0, nilDaily.Len())
	assert.Nil(t, nilDaily.Days())
}

func TestRoundToHalfDegree(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10.24, 10.0},
		{10.26, 10.5},
		{-0.26, -0.5},
		{10.25, 10.5},
		{-10.25, -10.5},
		{21.7, 21.5},
		{22.52, 22.5},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundToHalfDegree(tt.in), "input %v", tt.in)
	}
}

func TestCalendarDay(t *testing.T) {
	d := DayOf(time.Date(2025, time.December, 31, 23, 30, 0, 0, time.UTC), warsaw)

	assert.Equal(t, "2026-01-01", d.String())
	assert.Equal(t, time.Thursday, d.Weekday())
	assert.Equal(t, CalendarDay{Year: 2026, Month: time.January, Day: 2}, d.AddDays(1))

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", string(text))
}
