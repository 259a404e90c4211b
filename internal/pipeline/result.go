package pipeline

import (
	"time"

	"github.com/mzielinski/freqwatch/internal/wordcount"
)

// Result is the outcome of processing one file: its ranked frequency
// table, or the per-file failure that aborted it.
type Result struct {
	Path     string
	Table    wordcount.FrequencyTable
	Err      error
	Duration time.Duration
	Worker   int
}

// ResultHandler is called by a consumer for every completed file, failures
// included. Handlers run on consumer goroutines and may be called
// concurrently from different workers.
type ResultHandler func(Result)

// CountFunc computes the frequency table for a single file.
type CountFunc func(path string) (wordcount.FrequencyTable, error)
