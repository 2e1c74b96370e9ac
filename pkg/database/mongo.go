package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/pkg/config"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

// DialFunc establishes and verifies a single connection to the store.
type DialFunc func(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error)

// SleepFunc waits for the given duration or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Connector owns the process-wide handle to the document store. It
// establishes the connection lazily, caches it, retries transient failures
// with bounded backoff, and guarantees that concurrent callers never race
// to open independent connections: at most one establishment sequence is in
// flight at a time and every waiting caller resolves to its outcome.
type Connector struct {
	cfg    config.MongoConfig
	logger *zap.Logger
	dial   DialFunc
	sleep  SleepFunc

	mu      sync.Mutex
	client  *mongo.Client
	pending *attempt
}

type attempt struct {
	done   chan struct{}
	client *mongo.Client
	err    error
}

// NewConnector creates a Connector. The connection is not opened until the
// first Ensure call.
func NewConnector(cfg config.MongoConfig, logger *zap.Logger) *Connector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return &Connector{
		cfg:    cfg,
		logger: logger,
		dial:   dialMongo,
		sleep:  sleepContext,
	}
}

// Ensure returns the cached client, joins an in-flight establishment
// attempt, or starts a new one. A missing connection string fails
// immediately: that is a configuration error, not a transient one.
func (c *Connector) Ensure(ctx context.Context) (*mongo.Client, error) {
	c.mu.Lock()
	if c.client != nil {
		client := c.client
		c.mu.Unlock()
		return client, nil
	}

	if c.pending != nil {
		pending := c.pending
		c.mu.Unlock()
		select {
		case <-pending.done:
			return pending.client, pending.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if c.cfg.URI == "" {
		c.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrConfig, "MONGO_URI is not set")
	}

	pending := &attempt{done: make(chan struct{})}
	c.pending = pending
	c.mu.Unlock()

	client, err := c.connect(ctx)

	c.mu.Lock()
	if err == nil {
		c.client = client
	}
	c.pending = nil
	c.mu.Unlock()

	pending.client = client
	pending.err = err
	close(pending.done)

	return client, err
}

// connect runs the bounded retry loop around a single dial sequence.
func (c *Connector) connect(ctx context.Context) (*mongo.Client, error) {
	var lastErr error
	for attemptNo := 1; attemptNo <= c.cfg.MaxRetries; attemptNo++ {
		c.logger.Info("connecting to document store",
			zap.Int("attempt", attemptNo),
			zap.Int("max_retries", c.cfg.MaxRetries),
		)

		client, err := c.dial(ctx, c.cfg)
		if err == nil {
			c.logger.Info("document store connected", zap.Int("attempt", attemptNo))
			return client, nil
		}

		lastErr = err
		c.logger.Warn("document store connection failed",
			zap.Int("attempt", attemptNo),
			zap.Error(err),
		)

		if attemptNo == c.cfg.MaxRetries {
			break
		}
		if err := c.sleep(ctx, Backoff(attemptNo)); err != nil {
			return nil, err
		}
	}

	return nil, appErrors.Wrap(lastErr, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status,
		fmt.Sprintf("document store unreachable after %d attempts", c.cfg.MaxRetries))
}

// Backoff returns the delay before attempt+1: min(1s << attempt, 10s).
func Backoff(attemptNo int) time.Duration {
	d := time.Second << attemptNo
	if d > 10*time.Second || d <= 0 {
		d = 10 * time.Second
	}
	return d
}

// Database resolves the configured database through Ensure.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := c.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.cfg.Database), nil
}

// Collection resolves a named collection through Ensure, so every store
// access goes through the lifecycle guarantees.
func (c *Connector) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := c.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Disconnect tears down the cached handle on process shutdown.
func (c *Connector) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func dialMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ServerSelectionTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
