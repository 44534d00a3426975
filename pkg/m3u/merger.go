package m3u

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Fetcher retrieves the raw text of a playlist source.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// SourceResult is the outcome of processing one source. Err is set when
// the source could not be fetched; Entries is then empty.
type SourceResult struct {
	Source  string
	Entries EntrySet
	Lines   int
	Skipped []SkippedLine
	Err     error
}

// OK reports whether the source was fetched.
func (r SourceResult) OK() bool {
	return r.Err == nil
}

// Merger fetches and extracts each source in turn and unions the results.
type Merger struct {
	fetcher Fetcher
	log     logrus.FieldLogger
	metrics *Metrics
}

// NewMerger creates a merger. metrics may be nil.
func NewMerger(fetcher Fetcher, log logrus.FieldLogger, metrics *Metrics) *Merger {
	return &Merger{
		fetcher: fetcher,
		log:     log.WithField("component", "merger"),
		metrics: metrics,
	}
}

// Process fetches and extracts a single source.
func (m *Merger) Process(ctx context.Context, source string) SourceResult {
	result := SourceResult{
		Source:  source,
		Entries: make(EntrySet),
	}

	content, err := m.fetcher.Fetch(ctx, source)
	if err != nil {
		result.Err = err
		return result
	}

	ext := Extract(content)
	result.Entries = ext.Entries
	result.Lines = ext.Lines
	result.Skipped = ext.Skipped
	return result
}

// Merge processes sources in order and returns the union of all entries
// along with one result per processed source. A failing source is logged
// and skipped. Merge stops early only if ctx is done.
func (m *Merger) Merge(ctx context.Context, sources []string) (EntrySet, []SourceResult, error) {
	all := make(EntrySet)
	results := make([]SourceResult, 0, len(sources))

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return all, results, err
		}

		log := m.log.WithField("source", source)
		log.Info("Processing source")

		result := m.Process(ctx, source)
		results = append(results, result)

		// a fetch cut short by cancellation is not an ordinary failed source
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("Merge interrupted")
			return all, results, err
		}
		m.report(log, result)

		if !result.OK() {
			continue
		}

		all.Union(result.Entries)
		log.WithField("total", all.Len()).Info("Total unique streams so far")
	}

	if m.metrics != nil {
		m.metrics.UniqueEntries.Set(float64(all.Len()))
	}

	return all, results, nil
}

// report logs the diagnostics of one source result.
func (m *Merger) report(log logrus.FieldLogger, r SourceResult) {
	if m.metrics != nil {
		m.metrics.Observe(r)
	}

	if !r.OK() {
		log.WithError(r.Err).Warn("Error downloading source")
		return
	}

	if r.Lines == 0 {
		log.Warn("No content received")
		return
	}

	log.WithField("lines", r.Lines).Debug("Processed lines")
	for _, s := range r.Skipped {
		log.WithFields(logrus.Fields{
			"line": s.Line,
			"url":  s.Text,
		}).Warn("Skipping invalid URL")
	}
	log.WithField("streams", r.Entries.Len()).Info("Found valid streams")
}
