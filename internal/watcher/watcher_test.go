package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxtFilter(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"files/a.txt", true},
		{"a.txt", true},
		{"files/a.TXT", false},
		{"files/a.md", false},
		{"files/txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, TxtFilter(tt.path))
		})
	}
}

func TestNoHiddenFilter(t *testing.T) {
	assert.True(t, NoHiddenFilter("files/a.txt"))
	assert.True(t, NoHiddenFilter("./files/a.txt"))
	assert.False(t, NoHiddenFilter("files/.git/a.txt"))
	assert.False(t, NoHiddenFilter(".cache/a.txt"))
}

func TestScanTriggerFiresOnTextFileChange(t *testing.T) {
	root := t.TempDir()

	var fired atomic.Int32
	st, err := NewScanTrigger(50*time.Millisecond, func() {
		fired.Add(1)
	}, nil)
	require.NoError(t, err)
	defer st.Stop()

	require.NoError(t, st.AddRecursive(root))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(root, "new.txt"), []byte("raz dwa"), 0o644))

	require.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScanTriggerIgnoresIrrelevantFiles(t *testing.T) {
	root := t.TempDir()

	var fired atomic.Int32
	st, err := NewScanTrigger(30*time.Millisecond, func() {
		fired.Add(1)
	}, nil)
	require.NoError(t, err)
	defer st.Stop()

	require.NoError(t, st.AddRecursive(root))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestScanTriggerDebouncesBursts(t *testing.T) {
	root := t.TempDir()

	var fired atomic.Int32
	st, err := NewScanTrigger(150*time.Millisecond, func() {
		fired.Add(1)
	}, nil)
	require.NoError(t, err)
	defer st.Stop()

	require.NoError(t, st.AddRecursive(root))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st.Start(ctx)

	// A burst of writes faster than the debounce window.
	path := filepath.Join(root, "busy.txt")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	// Quiet period: the burst collapsed into a single trigger.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestScanTriggerStopIsSafe(t *testing.T) {
	st, err := NewScanTrigger(50*time.Millisecond, func() {}, nil)
	require.NoError(t, err)
	require.NoError(t, st.Stop())
}
