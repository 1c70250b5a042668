package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

const defaultProbeTimeout = 30 * time.Second

// CurrentFetcher is the part of the dashboard service the probe needs.
type CurrentFetcher interface {
	FetchCurrent(ctx context.Context, q models.Query) (models.CurrentConditions, error)
}

type Status struct {
	Enabled      bool      `json:"enabled" example:"true"`
	Running      bool      `json:"running" example:"true"`
	Schedule     string    `json:"schedule" example:"@every 5m"`
	City         string    `json:"city,omitempty" example:"Warszawa"`
	LastRun      time.Time `json:"last_run,omitempty"`
	NextRun      time.Time `json:"next_run,omitempty"`
	LastDuration string    `json:"last_duration,omitempty" example:"182ms"`
	LastSuccess  bool      `json:"last_success" example:"true"`
	LastError    string    `json:"last_error,omitempty"`
	Runs         int       `json:"runs" example:"12"`
	Failures     int       `json:"failures" example:"0"`
}

// Probe periodically fetches current conditions for one city and remembers
// how the last attempt went. The response itself is discarded.
type Probe struct {
	fetcher  CurrentFetcher
	query    models.Query
	schedule string
	timeout  time.Duration
	l        *logger.Logger

	cron    *cron.Cron
	entryID cron.EntryID

	mu     sync.Mutex
	status Status
}

// NewProbe validates the schedule up front. An empty city yields a disabled
// probe whose Start is a no-op.
func NewProbe(fetcher CurrentFetcher, city string, units models.Units, lang, schedule string, l *logger.Logger) (*Probe, error) {
	city = strings.TrimSpace(city)

	p := &Probe{
		fetcher:  fetcher,
		query:    models.Query{Location: models.CityLocation(city), Units: units, Lang: lang},
		schedule: schedule,
		timeout:  defaultProbeTimeout,
		l:        l,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		status: Status{
			Enabled:  city != "",
			Schedule: schedule,
			City:     city,
		},
	}

	if city == "" {
		return p, nil
	}

	id, err := p.cron.AddFunc(schedule, p.Run)
	if err != nil {
		return nil, fmt.Errorf("invalid probe schedule %q: %w", schedule, err)
	}
	p.entryID = id

	return p, nil
}

func (p *Probe) Start() {
	if !p.status.Enabled {
		p.l.Info("provider probe disabled", map[string]any{"reason": "no probe city configured"})
		return
	}

	p.mu.Lock()
	if p.status.Running {
		p.mu.Unlock()
		return
	}
	p.status.Running = true
	p.mu.Unlock()

	p.cron.Start()

	p.l.Info("provider probe started", map[string]any{
		"schedule": p.schedule,
		"city":     p.query.Location.City,
	})
}

// Stop waits for a running probe to finish or ctx to expire.
func (p *Probe) Stop(ctx context.Context) {
	p.mu.Lock()
	if !p.status.Running {
		p.mu.Unlock()
		return
	}
	p.status.Running = false
	p.mu.Unlock()

	p.l.Info("stopping provider probe")

	select {
	case <-p.cron.Stop().Done():
	case <-ctx.Done():
		p.l.Warning("provider probe did not stop in time", map[string]any{"err": ctx.Err().Error()})
	}
}

// Run performs one probe. The cron job calls it; it may also be called
// directly.
func (p *Probe) Run() {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	_, err := p.fetcher.FetchCurrent(ctx, p.query)
	duration := time.Since(start)

	p.mu.Lock()
	p.status.LastRun = start
	p.status.LastDuration = duration.Round(time.Millisecond).String()
	p.status.LastSuccess = err == nil
	p.status.Runs++
	if err != nil {
		p.status.LastError = err.Error()
		p.status.Failures++
	} else {
		p.status.LastError = ""
	}
	p.mu.Unlock()

	if err != nil {
		p.l.Warning("provider probe failed", map[string]any{
			"city":     p.query.Location.City,
			"duration": duration.String(),
			"err":      err.Error(),
		})
		return
	}

	p.l.Debug("provider probe succeeded", map[string]any{
		"city":     p.query.Location.City,
		"duration": duration.String(),
	})
}

func (p *Probe) Status() Status {
	p.mu.Lock()
	status := p.status
	p.mu.Unlock()

	if status.Running && p.entryID != 0 {
		status.NextRun = p.cron.Entry(p.entryID).Next
	}
	return status
}
