package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hollowness-inside/m3u-merge/pkg/m3u"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = "m3u-merge"
	envPrefix  = "M3U_MERGE"
)

// loadConfig resolves the run configuration. Precedence, highest first:
// explicit flags, M3U_MERGE_* environment variables (a .env file is
// loaded into the environment first), an optional m3u-merge.{json,yaml,toml}
// in the working directory, and the flag defaults. Sources given through
// the environment or a config file may be comma-separated.
func loadConfig(cmd *cobra.Command) (m3u.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return m3u.Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return m3u.Config{}, fmt.Errorf("unable to bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return m3u.Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return m3u.Config{
		Sources:     splitSources(v.GetStringSlice("source")),
		Output:      v.GetString("output"),
		HeadersFile: v.GetString("headers"),
		Timeout:     v.GetDuration("timeout"),
		MetricsFile: v.GetString("metrics-file"),
		Verbose:     v.GetBool("verbose"),
	}, nil
}

// splitSources flattens comma-separated values. Viper splits environment
// values on whitespace only.
func splitSources(values []string) []string {
	var sources []string
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sources = append(sources, s)
			}
		}
	}
	return sources
}
