package database

import (
	"time"
)

// SourceStatus is the last known state of one feed source.
type SourceStatus struct {
	Name                string
	URL                 string
	LastFetchedAt       time.Time
	LastSuccessAt       *time.Time // nil until a fetch succeeds
	LastError           string
	ItemCount           int
	ConsecutiveFailures int
}
