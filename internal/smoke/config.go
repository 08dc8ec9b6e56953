// Package smoke drives a running CRM server through its externally visible
// guarantees: create/fetch/update round trips, idempotent deletes, the
// task/user join and the 404/409 error contract.
package smoke

import (
	"errors"
	"time"
)

// ErrChecksFailed is returned by Run when at least one check failed.
var ErrChecksFailed = errors.New("smoke checks failed")

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL string        // Base URL of the service
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every request
}

// Result is the outcome of one check.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Stats holds run statistics.
type Stats struct {
	Results   []Result
	Passed    int
	Failed    int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
