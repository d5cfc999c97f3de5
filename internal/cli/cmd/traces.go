package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/navstack/internal/cli/styles"
)

var (
	tracesDB    string
	tracesLimit int
	tracesKeep  int
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "Inspect recorded host traces",
	Long:  `List, show and delete runs stored by 'replay --record' and 'sim --record'.`,
}

var tracesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE:  runTracesList,
}

var tracesShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the events of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runTracesShow,
}

var tracesDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>...",
	Short: "Delete runs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTracesDelete,
}

var tracesInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the trace store location and size",
	Args:  cobra.NoArgs,
	RunE:  runTracesInfo,
}

var tracesPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Keep only the newest runs",
	Args:  cobra.NoArgs,
	RunE:  runTracesPrune,
}

func init() {
	rootCmd.AddCommand(tracesCmd)
	tracesCmd.AddCommand(tracesListCmd, tracesShowCmd, tracesInfoCmd, tracesDeleteCmd, tracesPruneCmd)
	tracesCmd.PersistentFlags().StringVar(&tracesDB, "trace-db", "", "trace store path (default: trace.path)")
	tracesListCmd.Flags().IntVarP(&tracesLimit, "limit", "n", 20, "number of runs to list")
	tracesPruneCmd.Flags().IntVar(&tracesKeep, "keep", 10, "number of runs to keep")
}

func runTracesList(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	store, err := app.Traces(tracesDB)
	if err != nil {
		return err
	}

	runs, err := store.Runs(app.Ctx(), tracesLimit)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.RenderRuns(app.Theme, runs))
	return nil
}

func runTracesShow(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	store, err := app.Traces(tracesDB)
	if err != nil {
		return err
	}

	events, err := store.List(app.Ctx(), args[0])
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("run %s has no events or does not exist", args[0])
	}

	renderer := styles.NewTraceRenderer(app.Theme)
	out := cmd.OutOrStdout()
	for _, ev := range events {
		fmt.Fprintf(out, "%s  %s\n", app.Theme.Subtle.Render(ev.At.Local().Format("15:04:05.000")), renderer.Event(ev))
	}
	return nil
}

func runTracesDelete(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	store, err := app.Traces(tracesDB)
	if err != nil {
		return err
	}

	for _, id := range args {
		if err := store.Delete(app.Ctx(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s deleted %s\n", app.Theme.SuccessStyle.Render(styles.IconCheck), id)
	}
	return nil
}

func runTracesPrune(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if tracesKeep < 1 {
		return fmt.Errorf("--keep must be at least 1")
	}
	store, err := app.Traces(tracesDB)
	if err != nil {
		return err
	}

	removed, err := store.Prune(app.Ctx(), tracesKeep)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s removed %d runs\n", app.Theme.SuccessStyle.Render(styles.IconDatabase), removed)
	return nil
}

func runTracesInfo(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	store, err := app.Traces(tracesDB)
	if err != nil {
		return err
	}

	info, err := store.Info(app.Ctx())
	if err != nil {
		return err
	}
	path := tracesDB
	if path == "" {
		path = app.Config.Trace.Path
	}

	out := cmd.OutOrStdout()
	label := app.Theme.Subtle
	fmt.Fprintf(out, "%s %s\n", label.Render("path:    "), path)
	fmt.Fprintf(out, "%s %d\n", label.Render("schema:  "), info.SchemaVersion)
	fmt.Fprintf(out, "%s %d\n", label.Render("runs:    "), info.Runs)
	fmt.Fprintf(out, "%s %d\n", label.Render("events:  "), info.Events)
	return nil
}
