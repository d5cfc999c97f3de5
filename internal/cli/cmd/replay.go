package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/navstack/internal/application/port"
	"github.com/bnema/navstack/internal/domain/entity"
	"github.com/bnema/navstack/internal/infrastructure/scenario"
	"github.com/bnema/navstack/internal/logging"
)

var (
	replayRecord  bool
	replayTraceDB string
)

var replayCmd = &cobra.Command{
	Use:   "replay <scenario>...",
	Short: "Replay scenario files against the in-memory host",
	Long: `Replay one or more scenario files and print the resulting host trace.

A scenario is a list of steps (open, close, release, back, forward, reload,
press, flush, expect) in TOML or YAML, or a JavaScript file calling the same
actions as functions. The output is deterministic and suitable for golden
files.

Examples:
  navstack replay testdata/menu.yaml
  navstack replay --record flows/*.toml      # also store traces in sqlite
  navstack replay --trace-db ./t.sqlite a.js # store in a specific database`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayRecord, "record", false, "record traces in the trace store (default: trace.enabled)")
	replayCmd.Flags().StringVar(&replayTraceDB, "trace-db", "", "trace store path (implies --record)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	record := replayRecord || replayTraceDB != "" || app.Config.Trace.Enabled
	out := cmd.OutOrStdout()

	var failed error
	for i, path := range args {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := replayFile(app.Ctx(), out, cmd.ErrOrStderr(), path, record); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), app.Theme.ErrorStyle.Render(err.Error()))
			failed = errors.Join(failed, err)
		}
	}
	return failed
}

func replayFile(ctx context.Context, out, errOut io.Writer, path string, record bool) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	var (
		recorder port.TraceRecorder
		runID    string
	)
	if record {
		store, err := GetApp().Traces(replayTraceDB)
		if err != nil {
			return err
		}
		stamp := entity.SessionStamp(sc.Stamp)
		if stamp == 0 {
			stamp = scenario.DefaultStamp
		}
		rec, err := store.BeginRun(ctx, filepath.Base(path), stamp)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := rec.Close(); cerr != nil {
				logging.FromContext(ctx).Warn().Err(cerr).Msg("failed to close trace run")
			}
		}()
		recorder, runID = rec, rec.ID()
	}

	res, runErr := scenario.Run(ctx, sc, scenario.Options{Recorder: recorder})
	if res != nil {
		if err := scenario.FormatTrace(out, res); err != nil {
			return err
		}
	}
	if runID != "" {
		fmt.Fprintf(errOut, "recorded run %s\n", runID)
	}
	if runErr != nil {
		return fmt.Errorf("%s: %w", path, runErr)
	}
	return nil
}
