// Package cmd provides Cobra CLI commands for adshield.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/adshield/internal/cli"
	"github.com/bnema/adshield/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	options   cli.Options
	rootCmd   = &cobra.Command{
		Use:   "adshield",
		Short: "An ad and tracker shield for pages, payloads and proxies",
		Long: `adshield - classify, block and scrub ads and trackers.

The same rule engine runs in three places:
  - as a filtering HTTP proxy that cancels tracker requests and strips
    ad data from player responses
  - as a one-shot sanitizer for saved HTML documents and JSON payloads
  - as an in-page shield for hosts that embed it

Use 'adshield proxy' to start the proxy, or explore the subcommands to
classify URLs, export rules for other engines and manage per-site bypasses.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(options)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&options.ConfigFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/adshield/config.toml)")
	rootCmd.PersistentFlags().StringVar(&options.LogLevel, "log-level", "", "override the configured log level")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
	rootCmd.Version = info.Short()
}
