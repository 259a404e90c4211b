package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	freqerrors "github.com/mzielinski/freqwatch/internal/errors"
	"github.com/mzielinski/freqwatch/internal/logging"
	"github.com/mzielinski/freqwatch/internal/scanner"
)

// Producer drives the scan/sleep cycle: one full scanner pass pushing every
// discovered path into the queue, then a timed pause, repeated until a stop
// is requested or the run is cancelled outright.
type Producer struct {
	queue     *Queue
	scanner   *scanner.Scanner
	root      string
	interval  time.Duration
	sentinels int
	stop      *atomic.Bool
	wake      chan struct{}
	logger    logging.Logger
	metrics   *Metrics
	done      chan struct{}
}

func newProducer(
	queue *Queue,
	scan *scanner.Scanner,
	root string,
	interval time.Duration,
	sentinels int,
	stop *atomic.Bool,
	logger logging.Logger,
	metrics *Metrics,
) *Producer {
	return &Producer{
		queue:     queue,
		scanner:   scan,
		root:      root,
		interval:  interval,
		sentinels: sentinels,
		stop:      stop,
		wake:      make(chan struct{}, 1),
		logger:    logger.WithComponent("producer"),
		metrics:   metrics,
		done:      make(chan struct{}),
	}
}

// Done is closed once the producer has terminated, sentinel delivery
// included. The controller's re-entrant start guard hangs off this handle.
func (p *Producer) Done() <-chan struct{} {
	return p.done
}

// Kick cuts the current sleep short so the next scan pass starts
// immediately. Safe to call from any goroutine; extra kicks while one is
// already pending are dropped.
func (p *Producer) Kick() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Run executes the producer loop until it terminates. ctx governs
// scanning, queue puts and the sleep; drain governs sentinel delivery
// during wind-down, so a graceful stop can still hand sentinels to
// consumers after ctx is cancelled. Cancellation of ctx without a stop
// request is a hard shutdown: the loop exits without sentinels.
func (p *Producer) Run(ctx, drain context.Context) {
	defer close(p.done)

	p.logger.Info(ctx, "producer started", "root", p.root, "interval", p.interval.String())
	defer p.logger.Info(ctx, "producer finished")

	for {
		if p.stop.Load() {
			p.deliverSentinels(drain)
			return
		}
		if ctx.Err() != nil {
			// The stop flag is stored before the run context is
			// cancelled, so a stop landing between the two checks
			// above is visible here. Sentinels are still owed.
			if p.stop.Load() {
				p.deliverSentinels(drain)
			}
			return
		}

		if err := p.scanPass(ctx); err != nil {
			if freqerrors.IsCancellation(err) {
				if p.stop.Load() {
					p.deliverSentinels(drain)
				}
				return
			}
			// Recoverable: the pass is aborted, the loop keeps cycling.
			p.logger.Warn(ctx, err, "scan pass failed", "root", p.root)
		}
		p.metrics.RecordScanPass()

		if !p.sleep(ctx) {
			if p.stop.Load() {
				p.deliverSentinels(drain)
			}
			return
		}
	}
}

// scanPass walks the root once, queueing every matching path. Blocks on a
// full queue; backpressure throttles the walk to consumer throughput.
func (p *Producer) scanPass(ctx context.Context) error {
	return p.scanner.Scan(ctx, p.root, func(path string) error {
		if err := p.queue.Put(ctx, FileItem(path)); err != nil {
			return err
		}
		p.metrics.RecordQueued()
		return nil
	})
}

// sleep pauses until the interval elapses or a kick arrives. It returns
// false when the pause was cancelled.
func (p *Producer) sleep(ctx context.Context) bool {
	p.logger.Info(ctx, "next scan pass scheduled", "in", p.interval.String())

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-p.wake:
		p.logger.Debug(ctx, "scan pass triggered early")
		return true
	case <-timer.C:
		return true
	}
}

// deliverSentinels pushes exactly one end-of-stream item per consumer.
// FIFO ordering guarantees consumers drain all queued real work first.
// When drain is cancelled the remaining pushes are abandoned.
func (p *Producer) deliverSentinels(drain context.Context) {
	for i := 0; i < p.sentinels; i++ {
		if err := p.queue.Put(drain, EndOfStream()); err != nil {
			p.logger.Warn(drain, err, "sentinel delivery abandoned", "delivered", i, "expected", p.sentinels)
			return
		}
	}

	p.logger.Debug(drain, "sentinels delivered", "count", p.sentinels)
}
