// Package pipeline implements the freqwatch producer/consumer pipeline: a
// single scanning producer feeding a bounded work queue, a fixed pool of
// counting consumers draining it, and a controller owning the lifecycle.
//
// The queue is the only resource shared between the producer and the
// consumers. Consumers are stopped cooperatively through end-of-stream
// sentinels, one per worker, pushed by the producer during wind-down.
package pipeline

import (
	"context"
)

// WorkItem is the message type carried by the work queue: either a file
// path or the end-of-stream sentinel. Values are immutable and delivered
// to exactly one consumer.
type WorkItem struct {
	path        string
	endOfStream bool
}

// FileItem creates a work item carrying a file path.
func FileItem(path string) WorkItem {
	return WorkItem{path: path}
}

// EndOfStream creates the sentinel item that tells a consumer to exit.
func EndOfStream() WorkItem {
	return WorkItem{endOfStream: true}
}

// Path returns the file path of a non-sentinel item.
func (w WorkItem) Path() string {
	return w.path
}

// IsEndOfStream reports whether the item is the sentinel.
func (w WorkItem) IsEndOfStream() bool {
	return w.endOfStream
}

// Queue is a blocking, capacity-bounded FIFO of WorkItems. Put blocks
// while the queue is full, Take blocks while it is empty; both unblock
// when their context is cancelled. A cancelled Put never partially
// inserts and a cancelled Take never drops an already-dequeued item;
// channel semantics make each operation atomic.
type Queue struct {
	items chan WorkItem
}

// NewQueue creates a queue with the given fixed capacity.
func NewQueue(capacity int) *Queue {
	return &Queue{
		items: make(chan WorkItem, capacity),
	}
}

// Put appends item to the queue, blocking while it is full.
func (q *Queue) Put(ctx context.Context, item WorkItem) error {
	select {
	case q.items <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Take removes the oldest item from the queue, blocking while it is empty.
func (q *Queue) Take(ctx context.Context) (WorkItem, error) {
	select {
	case item := <-q.items:
		return item, nil
	case <-ctx.Done():
		return WorkItem{}, ctx.Err()
	}
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return cap(q.items)
}
