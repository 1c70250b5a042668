package weather

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"weather-dashboard/internal/forecast"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

// ForecastResult is the aggregated forecast for one request.
type ForecastResult struct {
	City     models.CityInfo
	Today    forecast.CalendarDay
	Location *time.Location
	Hourly   []models.ForecastSample
	Daily    *forecast.DailyForecasts
}

// Dashboard holds both sections of the page. A section that failed has a nil
// value and a non-nil error; the other section is unaffected.
type Dashboard struct {
	Current     *models.CurrentConditions
	CurrentErr  error
	Forecast    *ForecastResult
	ForecastErr error
}

// DashboardService fetches current conditions and the forecast and runs the
// forecast through the aggregator.
type DashboardService struct {
	repo repositories.WeatherRepository
	l    *logger.Logger
	now  func() time.Time
}

type Option func(*DashboardService)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *DashboardService) {
		s.now = now
	}
}

func NewDashboardService(repo repositories.WeatherRepository, l *logger.Logger, opts ...Option) *DashboardService {
	s := &DashboardService{
		repo: repo,
		l:    l,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DashboardService) RepositoryName() string {
	return s.repo.Name()
}

// BreakerState reports the upstream circuit breaker state, or "disabled"
// when the repository is not guarded.
func (s *DashboardService) BreakerState() string {
	if b, ok := s.repo.(interface{ BreakerState() string }); ok {
		return b.BreakerState()
	}
	return "disabled"
}

func (s *DashboardService) FetchCurrent(ctx context.Context, q models.Query) (models.CurrentConditions, error) {
	s.l.Debug("fetching current conditions", map[string]any{
		"repo":  s.repo.Name(),
		"query": q.RequestParams(),
	})

	current, err := s.repo.FetchCurrent(ctx, q)
	if err != nil {
		return current, errors.Wrap(err, "failed to fetch current conditions")
	}

	s.l.Info("successfully fetched current conditions", map[string]any{
		"repo":     s.repo.Name(),
		"location": current.LocationName,
	})

	return current, nil
}

// FetchForecast fetches the 3-hour forecast and aggregates it with today
// taken from the service clock in loc.
func (s *DashboardService) FetchForecast(ctx context.Context, q models.Query, loc *time.Location) (ForecastResult, error) {
	if loc == nil {
		loc = time.Local
	}

	s.l.Debug("fetching forecast", map[string]any{
		"repo":     s.repo.Name(),
		"query":    q.RequestParams(),
		"timezone": loc.String(),
	})

	fc, err := s.repo.FetchForecast(ctx, q)
	if err != nil {
		return ForecastResult{}, errors.Wrap(err, "failed to fetch forecast")
	}

	today := forecast.Today(s.now(), loc)
	hourly, daily := forecast.Aggregate(fc.Samples, today, loc)

	s.l.Info("successfully fetched forecast", map[string]any{
		"repo":    s.repo.Name(),
		"samples": len(fc.Samples),
		"hourly":  len(hourly),
		"days":    daily.Len(),
		"today":   today.String(),
	})

	return ForecastResult{
		City:     fc.City,
		Today:    today,
		Location: loc,
		Hourly:   hourly,
		Daily:    daily,
	}, nil
}

// FetchDashboard runs both fetches concurrently. It returns an error only
// when neither section could be built.
func (s *DashboardService) FetchDashboard(ctx context.Context, q models.Query, loc *time.Location) (Dashboard, error) {
	var d Dashboard

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		current, err := s.FetchCurrent(ctx, q)
		if err != nil {
			d.CurrentErr = err
			s.l.Warning("failed to fetch current conditions", map[string]any{"repo": s.repo.Name(), "err": err.Error()})
			return
		}
		d.Current = &current
	}()

	go func() {
		defer wg.Done()
		fc, err := s.FetchForecast(ctx, q, loc)
		if err != nil {
			d.ForecastErr = err
			s.l.Warning("failed to fetch forecast", map[string]any{"repo": s.repo.Name(), "err": err.Error()})
			return
		}
		d.Forecast = &fc
	}()

	wg.Wait()

	if d.CurrentErr != nil && d.ForecastErr != nil {
		err := primaryError(d.ForecastErr, d.CurrentErr)
		s.l.Error(err, map[string]any{"query": q.RequestParams()})
		return d, err
	}

	return d, nil
}

// primaryError picks the error that best explains a total failure: a
// transport error wins over a parse error because it carries a status.
func primaryError(errs ...error) error {
	for _, err := range errs {
		var transportErr *repositories.TransportError
		if errors.As(err, &transportErr) {
			return err
		}
	}
	return errs[0]
}
