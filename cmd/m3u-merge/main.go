package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/hollowness-inside/m3u-merge/pkg/m3u"
	"github.com/spf13/cobra"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "m3u-merge",
		Short: "Merge M3U playlists into one deduplicated, sorted playlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(cmd, stdout, stderr)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.Flags()
	flags.StringSliceP("source", "s", m3u.DefaultSources(), "Playlist URL to merge (repeatable or comma-separated)")
	flags.StringP("output", "o", m3u.DefaultOutput, "Path of the merged playlist")
	flags.String("headers", "", "Path to JSON file containing request headers")
	flags.Duration("timeout", 0, "Per-request timeout (0 waits indefinitely)")
	flags.String("metrics-file", "", "Write run metrics in Prometheus text format to this file")
	flags.BoolP("verbose", "v", false, "Enable verbose output")

	return rootCmd
}

func runE(cmd *cobra.Command, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := m3u.NewLogger(stderr, cfg.Verbose)

	fmt.Fprintln(stdout, "Starting to merge playlists...")

	runner, err := m3u.NewRunner(cfg, log, stdout)
	if err != nil {
		return err
	}

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(stdout, report)
	return nil
}

func printSummary(w io.Writer, report *m3u.Report) {
	if failed := report.Failed(); len(failed) > 0 {
		fmt.Fprintf(w, "\nFailed to download %d out of %d sources:\n", len(failed), len(report.Results))
		for _, r := range failed {
			fmt.Fprintf(w, "  %s: %v\n", r.Source, r.Err)
		}
	}

	if _, err := os.Stat(report.Output); err != nil {
		fmt.Fprintln(w, "\nERROR: Failed to create output file. Check file permissions and disk space.")
		return
	}

	if report.VerifyErr != nil {
		fmt.Fprintf(w, "\nWARNING: Merged playlist saved to %s but could not be read back: %v\n", report.Output, report.VerifyErr)
		fmt.Fprintf(w, "Total entries: %d\n", report.Total)
		return
	}

	if report.Verification.LineCount <= 1 {
		fmt.Fprintln(w, "\nWARNING: Output file was created but appears to be empty or only contains the header.")
		fmt.Fprintln(w, "Check the debug output above for any errors.")
		return
	}

	fmt.Fprintf(w, "\nSuccess! Merged playlist saved to %s\n", report.Output)
	fmt.Fprintf(w, "Total entries: %d\n", report.Total)
}

// execute runs rootCmd and returns the process exit status. Errors are
// reported by message only; panics also get their stack trace.
func execute(ctx context.Context, rootCmd *cobra.Command, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "\nERROR: An error occurred: %v\n", r)
			fmt.Fprintf(stderr, "\nTraceback:\n%s", debug.Stack())
			code = 1
		}
	}()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "\nERROR: An error occurred: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, newRootCmd(os.Stdout, os.Stderr), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
