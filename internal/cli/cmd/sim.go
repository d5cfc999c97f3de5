package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/navstack/internal/application/port"
	"github.com/bnema/navstack/internal/cli/model"
	"github.com/bnema/navstack/internal/domain/entity"
	"github.com/bnema/navstack/internal/infrastructure/config"
	"github.com/bnema/navstack/internal/infrastructure/container/wsbridge"
	"github.com/bnema/navstack/internal/logging"
	"github.com/bnema/navstack/internal/ui/mainloop"
)

var (
	simContainerURL   string
	simEmulate        bool
	simStamp          int64
	simMountOrderOnly bool
	simRecord         bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Interactive navigation stack simulator",
	Long: `Open layers, press back, reload and watch the coordinator keep the
in-memory host history in sync.

Queued host work runs after every key by default. Toggle auto flush off
to run it one task at a time and reproduce races between the app and the
user.

With --container (or container.enabled in the config) the simulator
connects to an embedding container shell over WebSocket and mirrors its
back button.`,
	RunE: runSim,
}

func init() {
	rootCmd.AddCommand(simCmd)
	simCmd.Flags().StringVar(&simContainerURL, "container", "", "container shell WebSocket URL (ws:// or wss://)")
	simCmd.Flags().BoolVar(&simEmulate, "emulate-container", false, "emulate a container back button with the p key")
	simCmd.Flags().Int64Var(&simStamp, "stamp", 0, "session stamp (default: history.stamp or random)")
	simCmd.Flags().BoolVar(&simMountOrderOnly, "mount-order-only", false, "host without back notifications")
	simCmd.Flags().BoolVar(&simRecord, "record", false, "record the session in the trace store")
}

func runSim(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := app.Config
	ctx, cancel := context.WithCancel(app.Ctx())
	defer cancel()

	simCfg := model.SimConfig{
		Stamp:            entity.SessionStamp(cfg.History.Stamp),
		MountOrderOnly:   simMountOrderOnly || !cfg.History.SupportsBackNotifications,
		ExitOnRootBack:   cfg.History.ExitOnRootBack,
		ShowRecords:      cfg.Simulator.ShowRecords,
		ShowTrace:        cfg.Simulator.ShowTrace,
		TraceLines:       cfg.Simulator.TraceLines,
		EmulateContainer: simEmulate,
		Inbox:            make(chan func(), 64),
	}
	if simStamp != 0 {
		simCfg.Stamp = entity.SessionStamp(simStamp)
	}

	url := simContainerURL
	if url == "" && cfg.Container.Enabled {
		url = cfg.Container.URL
	}
	if url != "" {
		bridge, err := dialContainer(ctx, url, time.Duration(cfg.Container.DialTimeoutMs)*time.Millisecond, simCfg.Inbox)
		if err != nil {
			return err
		}
		defer bridge.Close()
		simCfg.Container = bridge
	}

	if simRecord || cfg.Trace.Enabled {
		rec, err := beginSimRun(ctx, simCfg.Stamp)
		if err != nil {
			return err
		}
		defer rec.Close()
		simCfg.Recorder = rec
	}

	sim := model.NewSimModel(ctx, app.Theme, simCfg)
	if app.Manager != nil {
		coalescer := mainloop.NewCoalescer(inboxPoster(ctx, simCfg.Inbox))
		defer coalescer.Destroy()
		app.Manager.OnConfigChange(func(c *config.Config) {
			display := c.Simulator
			coalescer.Post("simulator", func() {
				sim.SetDisplay(display.ShowRecords, display.ShowTrace, display.TraceLines)
			})
		})
		if err := app.Manager.Watch(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("config watch disabled")
		}
	}

	p := tea.NewProgram(sim, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// inboxPoster returns a post function feeding the simulator inbox. It
// gives up when ctx is done so producers never outlive the program.
func inboxPoster(ctx context.Context, inbox chan func()) func(func()) {
	return func(fn func()) {
		select {
		case inbox <- fn:
		case <-ctx.Done():
		}
	}
}

func dialContainer(ctx context.Context, url string, timeout time.Duration, inbox chan func()) (*wsbridge.Bridge, error) {
	bridge, err := wsbridge.Dial(ctx, url, timeout, inboxPoster(ctx, inbox))
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info().Str("url", url).Msg("connected to container")
	return bridge, nil
}

func beginSimRun(ctx context.Context, stamp entity.SessionStamp) (port.TraceRecorder, error) {
	store, err := GetApp().Traces("")
	if err != nil {
		return nil, err
	}
	return store.BeginRun(ctx, "sim", stamp)
}
