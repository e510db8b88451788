package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/quotehub/pkg/config"
)

var (
	// Global flags
	logLevel string
	verbose  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quotehub",
	Short: "quotehub - 시세 수집/정규화 서버",
	Long: `quotehub

Polls mainland, Hong Kong, US and futures quotes from two providers,
normalizes them into one snapshot shape and publishes the merged list.

Usage:
  go run ./cmd/quotehub [command]

Examples:
  go run ./cmd/quotehub quotes sh000001 hk00700 usr_aapl cnf_V2201
  go run ./cmd/quotehub suggest 腾讯
  go run ./cmd/quotehub serve`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadConfig loads env config and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}
