package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-dashboard/internal/forecast"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

const (
	OpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"

	opCurrent  = "openweathermap current"
	opForecast = "openweathermap forecast"
)

type OpenWeatherMapRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenWeatherMapRepository(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient) (*OpenWeatherMapRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if baseURL == "" {
		baseURL = OpenWeatherMapBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &OpenWeatherMapRepository{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (o *OpenWeatherMapRepository) Name() string {
	return "openweathermap"
}

// BreakerState reports the circuit breaker state when the client is guarded.
func (o *OpenWeatherMapRepository) BreakerState() string {
	if g, ok := o.httpClient.(*GuardedClient); ok {
		return g.State()
	}
	return "disabled"
}

type openWeatherMapCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type openWeatherMapMain struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Pressure  int      `json:"pressure"`
	Humidity  int      `json:"humidity"`
}

type openWeatherMapWind struct {
	Speed float64 `json:"speed"`
	Gust  float64 `json:"gust"`
}

type OpenWeatherMapForecastItem struct {
	Dt      *int64                    `json:"dt"`
	Main    *openWeatherMapMain       `json:"main"`
	Weather []openWeatherMapCondition `json:"weather"`
	Wind    openWeatherMapWind        `json:"wind"`
	Pop     float64                   `json:"pop"`
}

type OpenWeatherMapForecastResponse struct {
	List *[]OpenWeatherMapForecastItem `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

type OpenWeatherMapCurrentResponse struct {
	Name    string                    `json:"name"`
	Dt      *int64                    `json:"dt"`
	Main    *openWeatherMapMain       `json:"main"`
	Weather []openWeatherMapCondition `json:"weather"`
	Wind    openWeatherMapWind        `json:"wind"`
}

type openWeatherMapErrorResponse struct {
	Message string `json:"message"`
}

func (o *OpenWeatherMapRepository) FetchCurrent(ctx context.Context, q models.Query) (models.CurrentConditions, error) {
	var current models.CurrentConditions

	body, err := o.get(ctx, opCurrent, "/weather", q)
	if err != nil {
		return current, err
	}

	var response OpenWeatherMapCurrentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return current, &ParseError{Op: opCurrent, Err: err}
	}

	current, err = currentConditions(response)
	if err != nil {
		return current, err
	}

	o.l.Debug("parsed API response", map[string]any{
		"op":       opCurrent,
		"location": current.LocationName,
	})

	return current, nil
}

func (o *OpenWeatherMapRepository) FetchForecast(ctx context.Context, q models.Query) (models.Forecast, error) {
	result := models.Forecast{
		RepositoryName: o.Name(),
	}

	body, err := o.get(ctx, opForecast, "/forecast", q)
	if err != nil {
		return result, err
	}

	var response OpenWeatherMapForecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return result, &ParseError{Op: opForecast, Err: err}
	}

	if response.List == nil {
		return result, &ParseError{Op: opForecast, Field: "list", Err: errMissingField}
	}

	samples, err := forecastSamples(*response.List)
	if err != nil {
		return result, err
	}

	result.City = models.CityInfo{
		Name:           response.City.Name,
		Country:        response.City.Country,
		TimezoneOffset: response.City.Timezone,
	}
	result.Samples = samples

	o.l.Debug("parsed API response", map[string]any{
		"op":    opForecast,
		"items": len(samples),
	})

	return result, nil
}

func (o *OpenWeatherMapRepository) get(ctx context.Context, op, path string, q models.Query) ([]byte, error) {
	params := queryParams(q)

	o.l.Info("making openweathermap API request", map[string]any{
		"op":     op,
		"params": q.RequestParams(),
	})

	params.Set("appid", o.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	o.l.Info("received openweathermap API response", map[string]any{
		"op":         op,
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		transportErr := &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
		var errorResp openWeatherMapErrorResponse
		if jsonErr := json.Unmarshal(body, &errorResp); jsonErr == nil {
			transportErr.Message = errorResp.Message
		}
		return nil, transportErr
	}

	return body, nil
}

func queryParams(q models.Query) url.Values {
	params := url.Values{}
	if q.Location.HasCoordinates {
		params.Set("lat", strconv.FormatFloat(q.Location.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(q.Location.Lon, 'f', -1, 64))
	} else {
		params.Set("q", q.Location.City)
	}
	if q.Units != "" {
		params.Set("units", string(q.Units))
	}
	if q.Lang != "" {
		params.Set("lang", q.Lang)
	}
	return params
}

// forecastSamples validates every list entry and rounds its temperatures.
func forecastSamples(items []OpenWeatherMapForecastItem) ([]models.ForecastSample, error) {
	samples := make([]models.ForecastSample, 0, len(items))

	for i, item := range items {
		field := func(name string) string {
			return fmt.Sprintf("list[%d].%s", i, name)
		}

		if item.Dt == nil {
			return nil, &ParseError{Op: opForecast, Field: field("dt"), Err: errMissingField}
		}
		temps, err := readTemperatures(item.Main)
		if err != nil {
			return nil, &ParseError{Op: opForecast, Field: field(err.Error()), Err: errMissingField}
		}
		if len(item.Weather) == 0 {
			return nil, &ParseError{Op: opForecast, Field: field("weather"), Err: errMissingField}
		}

		samples = append(samples, models.ForecastSample{
			Timestamp:                time.Unix(*item.Dt, 0),
			Temperature:              temps.temp,
			TemperatureMin:           temps.min,
			TemperatureMax:           temps.max,
			FeelsLike:                temps.feelsLike,
			ConditionDescription:     item.Weather[0].Description,
			ConditionIcon:            item.Weather[0].Icon,
			Humidity:                 item.Main.Humidity,
			Pressure:                 item.Main.Pressure,
			WindSpeed:                item.Wind.Speed,
			WindGust:                 item.Wind.Gust,
			PrecipitationProbability: item.Pop,
		})
	}

	return samples, nil
}

func currentConditions(r OpenWeatherMapCurrentResponse) (models.CurrentConditions, error) {
	if r.Dt == nil {
		return models.CurrentConditions{}, &ParseError{Op: opCurrent, Field: "dt", Err: errMissingField}
	}
	temps, err := readTemperatures(r.Main)
	if err != nil {
		return models.CurrentConditions{}, &ParseError{Op: opCurrent, Field: err.Error(), Err: errMissingField}
	}
	if len(r.Weather) == 0 {
		return models.CurrentConditions{}, &ParseError{Op: opCurrent, Field: "weather", Err: errMissingField}
	}

	return models.CurrentConditions{
		LocationName:         r.Name,
		ObservedAt:           time.Unix(*r.Dt, 0),
		Temperature:          temps.temp,
		FeelsLike:            temps.feelsLike,
		TemperatureMin:       temps.min,
		TemperatureMax:       temps.max,
		ConditionMain:        r.Weather[0].Main,
		ConditionDescription: r.Weather[0].Description,
		ConditionIcon:        r.Weather[0].Icon,
		Humidity:             r.Main.Humidity,
		Pressure:             r.Main.Pressure,
		WindSpeed:            r.Wind.Speed,
		WindGust:             r.Wind.Gust,
	}, nil
}

type temperatures struct {
	temp, min, max, feelsLike float64
}

// readTemperatures returns the rounded readings. Its error text is the
// path of the first missing field.
func readTemperatures(m *openWeatherMapMain) (temperatures, error) {
	switch {
	case m == nil:
		return temperatures{}, errors.New("main")
	case m.Temp == nil:
		return temperatures{}, errors.New("main.temp")
	case m.TempMin == nil:
		return temperatures{}, errors.New("main.temp_min")
	case m.TempMax == nil:
		return temperatures{}, errors.New("main.temp_max")
	}

	t := temperatures{
		temp:      forecast.RoundToHalfDegree(*m.Temp),
		min:       forecast.RoundToHalfDegree(*m.TempMin),
		max:       forecast.RoundToHalfDegree(*m.TempMax),
		feelsLike: forecast.RoundToHalfDegree(*m.Temp),
	}
	if m.FeelsLike != nil {
		t.feelsLike = forecast.RoundToHalfDegree(*m.FeelsLike)
	}
	return t, nil
}
