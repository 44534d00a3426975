package m3u

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Report summarizes a merge run.
type Report struct {
	RunID        string
	Results      []SourceResult
	Total        int
	Output       string
	Verification Verification
	VerifyErr    error
}

// Failed returns the results of sources that could not be fetched.
func (r *Report) Failed() []SourceResult {
	var failed []SourceResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Runner drives one merge: fetch, extract, union, sort, write, verify.
type Runner struct {
	cfg     Config
	log     logrus.FieldLogger
	out     io.Writer
	fetcher Fetcher
	verify  func(path string) (Verification, error)
}

// NewRunner validates cfg and prepares the downloader. Progress messages
// go to out, diagnostics to log.
func NewRunner(cfg Config, log logrus.FieldLogger, out io.Writer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	headers, err := LoadHeaders(cfg.HeadersFile)
	if err != nil {
		return nil, err
	}

	d := NewDownloader(cfg.Timeout)
	d.SetHeaders(headers)

	return &Runner{
		cfg:     cfg,
		log:     log,
		out:     out,
		fetcher: d,
		verify:  VerifyPlaylist,
	}, nil
}

// Run performs the merge. Source failures and verification failures are
// recorded in the report; only a failed write or a cancelled context is
// returned as an error.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{
		RunID:  uuid.NewString(),
		Output: r.cfg.Output,
	}
	log := r.log.WithField("run_id", report.RunID)

	var metrics *Metrics
	if r.cfg.MetricsFile != "" {
		metrics = NewMetrics()
	}

	merger := NewMerger(r.fetcher, log, metrics)
	merged, results, err := merger.Merge(ctx, r.cfg.Sources)
	report.Results = results
	report.Total = merged.Len()
	if err != nil {
		return report, fmt.Errorf("merge interrupted: %w", err)
	}

	fmt.Fprintf(r.out, "\nTotal unique streams found: %d\n", report.Total)
	fmt.Fprintf(r.out, "Saving to %s...\n", r.cfg.Output)

	wlog := log.WithFields(logrus.Fields{
		"component": "writer",
		"output":    r.cfg.Output,
	})
	wlog.WithField("streams", report.Total).Info("Saving streams")
	if err := WritePlaylist(r.cfg.Output, merged); err != nil {
		return report, err
	}
	wlog.Info("Successfully saved playlist")

	report.Verification, report.VerifyErr = r.verify(r.cfg.Output)
	if report.VerifyErr != nil {
		wlog.WithError(report.VerifyErr).Error("Error reading back the output file")
	} else {
		wlog.WithFields(logrus.Fields{
			"lines": report.Verification.LineCount,
			"head":  report.Verification.Head,
		}).Info("Output file verified")
	}

	if metrics != nil {
		metrics.Finish(start)
		if err := metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
			log.WithError(err).Warn("Metrics not written")
		}
	}

	return report, nil
}
