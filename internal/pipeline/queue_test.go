package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Put(ctx, FileItem(fmt.Sprintf("file%d.txt", i))))
	}
	assert.Equal(t, 5, q.Len())

	for i := 0; i < 5; i++ {
		item, err := q.Take(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("file%d.txt", i), item.Path())
		assert.False(t, item.IsEndOfStream())
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueueCapacity(t *testing.T) {
	q := NewQueue(2)
	assert.Equal(t, 2, q.Cap())
}

func TestQueuePutBlocksWhenFull(t *testing.T) {
	q := NewQueue(1)
	ctx := context.Background()

	require.NoError(t, q.Put(ctx, FileItem("a.txt")))

	unblocked := make(chan error, 1)
	go func() {
		unblocked <- q.Put(ctx, FileItem("b.txt"))
	}()

	select {
	case <-unblocked:
		t.Fatal("put on a full queue must block")
	case <-time.After(50 * time.Millisecond):
	}

	// Draining one item releases the blocked producer.
	_, err := q.Take(ctx)
	require.NoError(t, err)

	select {
	case err := <-unblocked:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("put did not unblock after a take")
	}
}

func TestQueueTakeBlocksWhenEmpty(t *testing.T) {
	q := NewQueue(1)
	ctx := context.Background()

	taken := make(chan WorkItem, 1)
	go func() {
		item, err := q.Take(ctx)
		require.NoError(t, err)
		taken <- item
	}()

	select {
	case <-taken:
		t.Fatal("take on an empty queue must block")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, q.Put(ctx, FileItem("a.txt")))

	select {
	case item := <-taken:
		assert.Equal(t, "a.txt", item.Path())
	case <-time.After(time.Second):
		t.Fatal("take did not unblock after a put")
	}
}

func TestQueueCancelledPutInsertsNothing(t *testing.T) {
	q := NewQueue(1)
	require.NoError(t, q.Put(context.Background(), FileItem("a.txt")))

	ctx, cancel := context.WithCancel(context.Background())

	unblocked := make(chan error, 1)
	go func() {
		unblocked <- q.Put(ctx, FileItem("b.txt"))
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-unblocked:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled put did not unblock")
	}

	// The cancelled put must not have partially inserted anything.
	assert.Equal(t, 1, q.Len())
	item, err := q.Take(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a.txt", item.Path())
}

func TestQueueCancelledTakeLosesNothing(t *testing.T) {
	q := NewQueue(1)

	ctx, cancel := context.WithCancel(context.Background())

	unblocked := make(chan error, 1)
	go func() {
		_, err := q.Take(ctx)
		unblocked <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-unblocked:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled take did not unblock")
	}

	// An item put afterwards is still delivered intact.
	require.NoError(t, q.Put(context.Background(), FileItem("a.txt")))
	item, err := q.Take(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a.txt", item.Path())
}

func TestWorkItemTaggedUnion(t *testing.T) {
	file := FileItem("files/story.txt")
	assert.Equal(t, "files/story.txt", file.Path())
	assert.False(t, file.IsEndOfStream())

	sentinel := EndOfStream()
	assert.True(t, sentinel.IsEndOfStream())
	assert.Empty(t, sentinel.Path())
}
