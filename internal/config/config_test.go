package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "files", cfg.Root)
	assert.Equal(t, 15*time.Second, cfg.Interval)
	assert.Equal(t, 2, cfg.Consumers)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadOverrides(t *testing.T) {
	resetViper(t)

	viper.Set("root", "corpus")
	viper.Set("interval", "5s")
	viper.Set("consumers", 4)
	viper.Set("watch.enabled", true)
	viper.Set("log.format", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "corpus", cfg.Root)
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Equal(t, 4, cfg.Consumers)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		wantErr string
	}{
		{"path traversal", "root", "../outside", "traversal"},
		{"dangerous character", "root", "files;rm", "dangerous character"},
		{"negative interval", "interval", "-3s", "interval must be positive"},
		{"zero consumers", "consumers", 0, "consumers must be at least 1"},
		{"negative debounce", "watch.debounce", "-1ms", "debounce must be positive"},
		{"bad log format", "log.format", "xml", "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			viper.Set(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultMatchesLoad(t *testing.T) {
	resetViper(t)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}
