package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/newsphere/newsphere-api/pkg/config"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

func testConfig() config.MongoConfig {
	return config.MongoConfig{
		URI:        "mongodb://localhost:27017",
		Database:   "newsphere_test",
		MaxRetries: 3,
	}
}

func TestEnsureSingleFlight(t *testing.T) {
	var dials int32
	release := make(chan struct{})
	handle := &mongo.Client{}

	c := NewConnector(testConfig(), nil)
	c.dial = func(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
		atomic.AddInt32(&dials, 1)
		<-release
		return handle, nil
	}

	const callers = 16
	results := make([]*mongo.Client, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Ensure(context.Background())
		}(i)
	}

	// Let every caller reach the connector before the dial resolves.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&dials))
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, handle, results[i])
	}
}

func TestEnsureReturnsCachedHandle(t *testing.T) {
	var dials int32
	handle := &mongo.Client{}

	c := NewConnector(testConfig(), nil)
	c.dial = func(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
		atomic.AddInt32(&dials, 1)
		return handle, nil
	}

	first, err := c.Ensure(context.Background())
	require.NoError(t, err)
	second, err := c.Ensure(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&dials))
}

func TestEnsureBackoffSchedule(t *testing.T) {
	var delays []time.Duration
	dialErr := errors.New("connection refused")

	cfg := testConfig()
	cfg.MaxRetries = 5
	c := NewConnector(cfg, nil)
	c.dial = func(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
		return nil, dialErr
	}
	c.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	_, err := c.Ensure(context.Background())
	require.Error(t, err)

	// min(1000*2^k, 10000) ms before attempt k+1, and no delay after the
	// final attempt.
	assert.Equal(t, []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second,
	}, delays)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnavailable.Code, appErr.Code)
	assert.Contains(t, err.Error(), "5 attempts")
	assert.ErrorIs(t, err, dialErr)
}

func TestEnsureMissingURIShortCircuits(t *testing.T) {
	cfg := testConfig()
	cfg.URI = ""

	var dials, sleeps int32
	c := NewConnector(cfg, nil)
	c.dial = func(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
		atomic.AddInt32(&dials, 1)
		return &mongo.Client{}, nil
	}
	c.sleep = func(ctx context.Context, d time.Duration) error {
		atomic.AddInt32(&sleeps, 1)
		return nil
	}

	start := time.Now()
	_, err := c.Ensure(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConfig.Code, appErrors.FromError(err).Code)
	assert.Contains(t, err.Error(), "MONGO_URI")
	assert.Zero(t, atomic.LoadInt32(&dials))
	assert.Zero(t, atomic.LoadInt32(&sleeps))
	assert.Less(t, elapsed, 100*time.Millisecond)
}

func TestEnsureRetriesThenSucceeds(t *testing.T) {
	var dials int32
	handle := &mongo.Client{}

	c := NewConnector(testConfig(), nil)
	c.dial = func(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
		if atomic.AddInt32(&dials, 1) < 3 {
			return nil, errors.New("transient")
		}
		return handle, nil
	}
	c.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	client, err := c.Ensure(context.Background())
	require.NoError(t, err)
	assert.Same(t, handle, client)
	assert.Equal(t, int32(3), atomic.LoadInt32(&dials))
}

func TestEnsureFailureIsNotCached(t *testing.T) {
	var dials int32
	handle := &mongo.Client{}

	cfg := testConfig()
	cfg.MaxRetries = 1
	c := NewConnector(cfg, nil)
	c.dial = func(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
		if atomic.AddInt32(&dials, 1) == 1 {
			return nil, errors.New("transient")
		}
		return handle, nil
	}
	c.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	_, err := c.Ensure(context.Background())
	require.Error(t, err)

	client, err := c.Ensure(context.Background())
	require.NoError(t, err)
	assert.Same(t, handle, client)
}

func TestBackoffCap(t *testing.T) {
	assert.Equal(t, 2*time.Second, Backoff(1))
	assert.Equal(t, 4*time.Second, Backoff(2))
	assert.Equal(t, 8*time.Second, Backoff(3))
	assert.Equal(t, 10*time.Second, Backoff(4))
	assert.Equal(t, 10*time.Second, Backoff(30))
}
