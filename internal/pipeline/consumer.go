package pipeline

import (
	"context"
	"sync"
	"time"

	freqerrors "github.com/mzielinski/freqwatch/internal/errors"
	"github.com/mzielinski/freqwatch/internal/logging"
)

// Pool is the fixed-size set of consumer workers. Each worker drains the
// queue, counts word frequencies for every file item, and exits after its
// first end-of-stream sentinel. Workers are never restarted; the
// controller builds a fresh pool for every run.
type Pool struct {
	workers int
	queue   *Queue
	count   CountFunc
	handler ResultHandler
	logger  logging.Logger
	metrics *Metrics
	wg      sync.WaitGroup
}

func newPool(
	workers int,
	queue *Queue,
	count CountFunc,
	handler ResultHandler,
	logger logging.Logger,
	metrics *Metrics,
) *Pool {
	return &Pool{
		workers: workers,
		queue:   queue,
		count:   count,
		handler: handler,
		logger:  logger.WithComponent("consumer"),
		metrics: metrics,
	}
}

// Start spawns the worker goroutines. ctx cancellation is the hard
// shutdown path: a worker blocked on an empty queue unblocks and exits
// without waiting for a sentinel.
func (pl *Pool) Start(ctx context.Context) {
	for i := 0; i < pl.workers; i++ {
		pl.wg.Add(1)
		go pl.worker(ctx, i+1)
	}
}

// Wait blocks until every worker has exited.
func (pl *Pool) Wait() {
	pl.wg.Wait()
}

func (pl *Pool) worker(ctx context.Context, id int) {
	defer pl.wg.Done()

	logger := pl.logger.With("worker", id)
	logger.Info(ctx, "consumer started")
	defer logger.Info(ctx, "consumer finished")

	for {
		item, err := pl.queue.Take(ctx)
		if err != nil {
			logger.Debug(ctx, "take interrupted, shutting down")
			return
		}

		if item.IsEndOfStream() {
			return
		}

		pl.process(ctx, logger, id, item.Path())
	}
}

// process counts one file and reports the outcome. A read failure aborts
// only this file; the worker moves on to its next item.
func (pl *Pool) process(ctx context.Context, logger logging.Logger, id int, path string) {
	start := time.Now()

	table, err := pl.count(path)

	result := Result{
		Path:     path,
		Table:    table,
		Duration: time.Since(start),
		Worker:   id,
	}

	if err != nil {
		result.Err = freqerrors.NewReadError(path, err)
		logger.Warn(ctx, result.Err, "processing file failed", "file", path)
	} else {
		logger.Info(ctx, "most frequent words", "file", path, "words", table.String())
	}

	pl.metrics.RecordResult(result)

	if pl.handler != nil {
		pl.handler(result)
	}
}
