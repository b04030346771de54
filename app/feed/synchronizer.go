package feed

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var ErrAllSourcesFailed = errors.New("all feed sources failed")

// StatusRecorder keeps a record of each source attempt. Recording failures
// are logged and never stop a run.
type StatusRecorder interface {
	RecordSuccess(source, url string, itemCount int, at time.Time) error
	RecordFailure(source, url string, fetchErr error, at time.Time) error
}

type Synchronizer struct {
	fetcher   *Fetcher
	parser    *Parser
	filterer  *Filterer
	extractor *ContentExtractor
	recorder  StatusRecorder
	cachePath string
	now       func() time.Time
}

func NewSynchronizer(fetcher *Fetcher, parser *Parser, filterer *Filterer, extractor *ContentExtractor, recorder StatusRecorder, cachePath string) *Synchronizer {
	return &Synchronizer{
		fetcher:   fetcher,
		parser:    parser,
		filterer:  filterer,
		extractor: extractor,
		recorder:  recorder,
		cachePath: cachePath,
		now:       time.Now,
	}
}

// Run fetches every source in order, merges the results into the cache and
// rewrites it. When every source fails the cache is left untouched and
// ErrAllSourcesFailed is returned.
func (s *Synchronizer) Run(ctx context.Context, config *Config) (*Result, error) {
	cached, err := LoadCache(s.cachePath)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var fresh []Item

	for _, source := range config.Feeds {
		slog.Info("Fetching feed", "feed", source.Name, "url", source.URL)

		items, err := s.syncSource(ctx, source, config.MaxItemsPerFeed)
		if err != nil {
			result.Failed++
			slog.Warn("Feed failed", "feed", source.Name, "error", err)
			s.record(source, func(at time.Time) error {
				return s.recorder.RecordFailure(source.Name, source.URL, err, at)
			})
			continue
		}

		result.Fetched++
		fresh = append(fresh, items...)
		slog.Info("Feed fetched", "feed", source.Name, "items", len(items))
		s.record(source, func(at time.Time) error {
			return s.recorder.RecordSuccess(source.Name, source.URL, len(items), at)
		})
	}

	if result.Fetched == 0 {
		return result, ErrAllSourcesFailed
	}

	merged := Merge(Dedupe(fresh), cached)
	SortByDateDesc(merged)

	if err := WriteCache(s.cachePath, merged); err != nil {
		return result, err
	}

	result.Total = len(merged)
	result.NetChange = len(merged) - len(cached)

	slog.Info("Feed sync complete",
		"fetched", result.Fetched,
		"failed", result.Failed,
		"total", result.Total,
		"net_change", result.NetChange)

	return result, nil
}

func (s *Synchronizer) syncSource(ctx context.Context, source Source, maxItems int) ([]Item, error) {
	data, err := s.fetcher.Run(ctx, source.URL, s.timeout(source))
	if err != nil {
		return nil, err
	}

	entries, err := s.parser.Run(data)
	if err != nil {
		return nil, err
	}

	items := Normalize(source, maxItems, entries, s.now())

	items, reasons := s.filterer.Run(items, source)
	for _, reason := range reasons {
		slog.Debug("Item filtered", "feed", source.Name, "reason", reason)
	}

	if source.ExtractExcerpt {
		s.extractExcerpts(ctx, source, items)
	}

	return items, nil
}

// extractExcerpts fills missing excerpts from the linked pages. Failures
// leave the item without one.
func (s *Synchronizer) extractExcerpts(ctx context.Context, source Source, items []Item) {
	if s.extractor == nil {
		return
	}

	for i := range items {
		if items[i].Excerpt != "" {
			continue
		}

		data, err := s.fetcher.Run(ctx, items[i].Link, s.timeout(source))
		if err != nil {
			slog.Debug("Failed to fetch item page", "feed", source.Name, "link", items[i].Link, "error", err)
			continue
		}

		excerpt, err := s.extractor.Run(data, items[i].Link)
		if err != nil {
			slog.Debug("Failed to extract excerpt", "feed", source.Name, "link", items[i].Link, "error", err)
			continue
		}
		items[i].Excerpt = truncateExcerpt(excerpt)
	}
}

func (s *Synchronizer) timeout(source Source) time.Duration {
	seconds := source.Timeout
	if seconds <= 0 {
		seconds = DefaultTimeout
	}
	return time.Duration(seconds) * time.Second
}

func (s *Synchronizer) record(source Source, write func(at time.Time) error) {
	if s.recorder == nil {
		return
	}
	if err := write(s.now().UTC()); err != nil {
		slog.Warn("Failed to record source status", "feed", source.Name, "error", err)
	}
}
