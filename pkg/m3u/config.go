package m3u

import (
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultOutput is the playlist written when no output is configured.
const DefaultOutput = "merged_playlist.m3u"

// DefaultSources returns the playlists merged when no sources are configured.
func DefaultSources() []string {
	return []string{
		"https://www.apsattv.com/gblg.m3u",
		"https://www.apsattv.com/aulg.m3u",
		"https://www.apsattv.com/nzlg.m3u",
	}
}

// Config holds the settings of a merge run
type Config struct {
	Sources     []string
	Output      string
	HeadersFile string
	Timeout     time.Duration
	MetricsFile string
	Verbose     bool
}

// DefaultConfig returns a config with the built-in sources and output.
func DefaultConfig() Config {
	return Config{
		Sources: DefaultSources(),
		Output:  DefaultOutput,
	}
}

// Validate checks that a run can be started with c.
func (c Config) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("no sources configured")
	}
	for _, s := range c.Sources {
		if s == "" {
			return errors.New("empty source URL")
		}
	}
	if c.Output == "" {
		return errors.New("no output file configured")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// NewLogger creates the diagnostics logger. Verbose enables debug output.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
