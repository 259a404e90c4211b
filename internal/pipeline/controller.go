package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mzielinski/freqwatch/internal/config"
	freqerrors "github.com/mzielinski/freqwatch/internal/errors"
	"github.com/mzielinski/freqwatch/internal/logging"
	"github.com/mzielinski/freqwatch/internal/scanner"
	"github.com/mzielinski/freqwatch/internal/wordcount"
)

// State is the pipeline lifecycle state.
type State int32

const (
	// StateIdle means no run is live; Start may be called.
	StateIdle State = iota
	// StateRunning means a producer and its consumers are live.
	StateRunning
	// StateStopping means a stop was requested and the run is winding down.
	StateStopping
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Controller owns the pipeline lifecycle. Every run gets a fresh queue,
// stop flag, producer and consumer pool; the controller only hands out
// start, stop and shutdown.
//
// The re-entrant start guard is the single lifecycle state value below,
// guarded by the mutex: a new run may begin only once the previous run's
// producer and consumers have all terminated.
type Controller struct {
	root      string
	interval  time.Duration
	consumers int
	logger    logging.Logger
	metrics   *Metrics
	handler   ResultHandler
	count     CountFunc

	mu         sync.Mutex
	state      State
	stop       *atomic.Bool
	producer   *Producer
	runCancel  context.CancelFunc
	hardCancel context.CancelFunc
	runDone    chan struct{}
}

// Option customizes a Controller.
type Option func(*Controller)

// WithResultHandler registers a callback invoked for every Result.
func WithResultHandler(handler ResultHandler) Option {
	return func(c *Controller) {
		c.handler = handler
	}
}

// WithCountFunc replaces the word counting function. Used by tests to
// observe processing without touching the filesystem.
func WithCountFunc(count CountFunc) Option {
	return func(c *Controller) {
		c.count = count
	}
}

// NewController creates a controller for the configured root, interval and
// consumer count. Nothing runs until Start is called.
func NewController(cfg *config.Config, logger logging.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}

	c := &Controller{
		root:      cfg.Root,
		interval:  cfg.Interval,
		consumers: cfg.Consumers,
		logger:    logger.WithComponent("controller"),
		metrics:   NewMetrics(),
		count:     wordcount.CountFile,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start begins a new run: a fresh bounded queue sized to the consumer
// count, one producer and the consumer pool. It returns ErrAlreadyRunning,
// with no state change, while a previous run is still live.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		c.logger.Warn(ctx, freqerrors.ErrAlreadyRunning, "start rejected", "state", c.state.String())
		return freqerrors.ErrAlreadyRunning
	}

	stop := &atomic.Bool{}
	queue := NewQueue(c.consumers)

	// hardCtx cancels everything at once on Shutdown; runCtx is its child
	// and additionally cancels on Stop, so the producer wakes promptly
	// while sentinel delivery and the consumers stay live to drain.
	hardCtx, hardCancel := context.WithCancel(ctx)
	runCtx, runCancel := context.WithCancel(hardCtx)

	producer := newProducer(
		queue,
		scanner.NewScanner(c.logger),
		c.root,
		c.interval,
		c.consumers,
		stop,
		c.logger,
		c.metrics,
	)
	pool := newPool(c.consumers, queue, c.count, c.handler, c.logger, c.metrics)

	c.state = StateRunning
	c.stop = stop
	c.producer = producer
	c.runCancel = runCancel
	c.hardCancel = hardCancel
	c.runDone = make(chan struct{})

	c.logger.Info(ctx, "pipeline started",
		"root", c.root,
		"interval", c.interval.String(),
		"consumers", c.consumers,
		"queue_capacity", queue.Cap(),
	)

	go producer.Run(runCtx, hardCtx)
	pool.Start(hardCtx)
	go c.monitor(hardCtx, hardCancel, producer, pool, c.runDone)

	return nil
}

// monitor waits for the whole run to terminate, releases the run's
// contexts, then returns the controller to idle.
func (c *Controller) monitor(ctx context.Context, cancel context.CancelFunc, producer *Producer, pool *Pool, done chan struct{}) {
	<-producer.Done()
	pool.Wait()
	cancel()

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()

	close(done)

	c.logger.Info(ctx, "pipeline stopped", "queued", c.metrics.Snapshot().FilesQueued)
}

// Stop requests a graceful wind-down: the stop flag is set, then the
// producer's run context is cancelled so a blocked sleep or put notices
// promptly. The producer appends one sentinel per consumer behind any
// remaining queued items; consumers drain those items before exiting.
// Stop does not wait; use Wait to observe termination.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}

	// Order matters: the flag must be visible before the cancellation
	// wakes the producer, so the wake-up reads it as a stop request.
	c.stop.Store(true)
	c.runCancel()
	c.state = StateStopping

	c.logger.Info(context.Background(), "stop requested")
}

// Shutdown forcibly cancels the producer and all consumers, then waits for
// them to exit. Items still queued are discarded. Idempotent; safe to call
// without a live run.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	hardCancel := c.hardCancel
	done := c.runDone
	c.mu.Unlock()

	if hardCancel == nil {
		return
	}

	c.logger.Info(context.Background(), "shutdown requested")
	hardCancel()
	<-done
}

// Wait blocks until the current run has fully terminated, or until ctx is
// cancelled. It returns immediately when no run was ever started.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.runDone
	c.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TriggerScan cuts the producer's current sleep short so the next scan
// pass starts immediately. No-op while no run is live.
func (c *Controller) TriggerScan() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning || c.producer == nil {
		return
	}

	c.producer.Kick()
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Metrics returns a snapshot of the pipeline counters.
func (c *Controller) Metrics() MetricsSnapshot {
	return c.metrics.Snapshot()
}
