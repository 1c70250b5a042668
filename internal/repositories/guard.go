package repositories

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"weather-dashboard/pkg/logger"
)

var errServerStatus = errors.New("upstream server error")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type GuardSettings struct {
	RateLimit        float64
	Burst            int
	BreakerThreshold uint32
	BreakerTimeout   time.Duration
}

// GuardedClient rate limits outgoing requests and trips a circuit breaker
// after consecutive network failures or 5xx responses. 4xx responses pass
// through without counting as failures.
type GuardedClient struct {
	next    HTTPClient
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func NewGuardedClient(name string, next HTTPClient, s GuardSettings, l *logger.Logger) *GuardedClient {
	threshold := s.BreakerThreshold
	if threshold == 0 {
		threshold = 3
	}

	limit := rate.Inf
	if s.RateLimit > 0 {
		limit = rate.Limit(s.RateLimit)
	}
	burst := s.Burst
	if burst <= 0 {
		burst = 1
	}

	breakerSettings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     s.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if l == nil {
				return
			}
			l.Warning("circuit breaker state changed", map[string]any{
				"client": name,
				"from":   from.String(),
				"to":     to.String(),
			})
		},
	}

	return &GuardedClient{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker(breakerSettings),
	}
}

func (g *GuardedClient) Do(req *http.Request) (*http.Response, error) {
	if err := g.limiter.Wait(req.Context()); err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", ctxErr)
		}
		// The limiter refuses up front when the wait would outlast the deadline.
		return nil, fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.next.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	})

	switch {
	case errors.Is(err, errServerStatus):
		// The caller still gets the response so it can report the body.
		return result.(*http.Response), nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	case err != nil:
		return nil, err
	}

	return result.(*http.Response), nil
}

// State is the breaker state: "closed", "half-open" or "open".
func (g *GuardedClient) State() string {
	return g.breaker.State().String()
}
