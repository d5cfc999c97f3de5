// Package cmd provides Cobra CLI commands for navstack.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/navstack/internal/cli"
	"github.com/bnema/navstack/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "navstack",
		Short: "Keep a stack of UI layers in sync with a linear back history",
		Long: `navstack - a virtual navigation stack for the platform back button.

Modals, drawers and menus register as layers. navstack mirrors them as
entries of the host's single linear history so that the platform back
gesture closes the topmost layer, and keeps both sides consistent when
the user, the platform or a reload moves the history underneath.

This binary drives the coordinator against an in-memory history host:
  - replay scenario files (TOML, YAML or JavaScript) and print the trace
  - explore interactively with the terminal simulator
  - inspect traces recorded in the sqlite trace store`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "version", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

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

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info.WithDefaults()
}
