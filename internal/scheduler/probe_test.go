package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

type mockFetcher struct {
	calls int32
	err   error
	query models.Query
}

func (m *mockFetcher) FetchCurrent(ctx context.Context, q models.Query) (models.CurrentConditions, error) {
	atomic.AddInt32(&m.calls, 1)
	m.query = q
	return models.CurrentConditions{LocationName: q.Location.City}, m.err
}

func testLogger() *logger.Logger {
	return logger.NewZapLogger("test-app", io.Discard)
}

func TestNewProbe_InvalidSchedule(t *testing.T) {
	_, err := NewProbe(&mockFetcher{}, "Warszawa", models.UnitsMetric, "pl", "every now and then", testLogger())
	assert.Error(t, err)
}

func TestProbe_Disabled(t *testing.T) {
	fetcher := &mockFetcher{}
	p, err := NewProbe(fetcher, " ", models.UnitsMetric, "pl", "not even parsed", testLogger())
	require.NoError(t, err)

	p.Start()
	status := p.Status()

	assert.False(t, status.Enabled)
	assert.False(t, status.Running)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fetcher.calls))
	p.Stop(context.Background())
}

func TestProbe_RunRecordsSuccess(t *testing.T) {
	fetcher := &mockFetcher{}
	p, err := NewProbe(fetcher, "Warszawa", models.UnitsMetric, "pl", "@every 5m", testLogger())
	require.NoError(t, err)

	p.Run()
	status := p.Status()

	assert.True(t, status.Enabled)
	assert.True(t, status.LastSuccess)
	assert.Empty(t, status.LastError)
	assert.Equal(t, 1, status.Runs)
	assert.Equal(t, 0, status.Failures)
	assert.False(t, status.LastRun.IsZero())
	assert.Equal(t, "Warszawa", fetcher.query.Location.City)
	assert.Equal(t, models.UnitsMetric, fetcher.query.Units)
}

func TestProbe_RunRecordsFailure(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("upstream temporarily unavailable")}
	p, err := NewProbe(fetcher, "Warszawa", models.UnitsMetric, "pl", "@every 5m", testLogger())
	require.NoError(t, err)

	p.Run()
	fetcher.err = nil
	p.Run()
	fetcher.err = errors.New("boom")
	p.Run()

	status := p.Status()
	assert.False(t, status.LastSuccess)
	assert.Equal(t, "boom", status.LastError)
	assert.Equal(t, 3, status.Runs)
	assert.Equal(t, 2, status.Failures)
}

func TestProbe_StartRunsOnSchedule(t *testing.T) {
	fetcher := &mockFetcher{}
	p, err := NewProbe(fetcher, "Warszawa", models.UnitsMetric, "pl", "@every 1s", testLogger())
	require.NoError(t, err)

	p.Start()
	p.Start()

	status := p.Status()
	assert.True(t, status.Running)
	assert.False(t, status.NextRun.IsZero())

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&fetcher.calls) > 0
	}, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	p.Stop(ctx)

	assert.False(t, p.Status().Running)
}
