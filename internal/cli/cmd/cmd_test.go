package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/navstack/internal/cli"
	"github.com/bnema/navstack/internal/infrastructure/config"
)

const scenarioDir = "../../infrastructure/scenario/testdata"

// withApp installs an App backed by a temporary trace store.
func withApp(t *testing.T) *cli.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Trace.Path = filepath.Join(t.TempDir(), "traces.sqlite")

	a, err := cli.NewAppWithConfig(cfg, "config.toml")
	require.NoError(t, err)
	app = a
	t.Cleanup(func() {
		_ = a.Close()
		app = nil
	})
	return a
}

func testCmd() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	c.SetErr(&out)
	return c, &out
}

func TestReplayFile_MatchesGolden(t *testing.T) {
	for _, name := range []string{"three_layers.toml", "menu_replace.yaml", "forward_revert.js"} {
		t.Run(name, func(t *testing.T) {
			golden, err := os.ReadFile(filepath.Join(scenarioDir, "golden", trimExt(name)+".golden"))
			require.NoError(t, err)

			var out, errOut bytes.Buffer
			require.NoError(t, replayFile(context.Background(), &out, &errOut, filepath.Join(scenarioDir, name), false))
			assert.Equal(t, string(golden), out.String())
			assert.Empty(t, errOut.String())
		})
	}
}

func TestReplayFile_MissingFile(t *testing.T) {
	var out, errOut bytes.Buffer
	err := replayFile(context.Background(), &out, &errOut, filepath.Join(t.TempDir(), "nope.toml"), false)
	assert.Error(t, err)
}

func TestReplayAndTraces(t *testing.T) {
	a := withApp(t)

	var out, errOut bytes.Buffer
	require.NoError(t, replayFile(a.Ctx(), &out, &errOut, filepath.Join(scenarioDir, "three_layers.toml"), true))
	assert.Contains(t, errOut.String(), "recorded run ")

	store, err := a.Traces("")
	require.NoError(t, err)
	runs, err := store.Runs(a.Ctx(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "three_layers.toml", runs[0].Label)
	assert.Positive(t, runs[0].Events)

	c, buf := testCmd()
	require.NoError(t, runTracesList(c, nil))
	assert.Contains(t, buf.String(), "three_layers.toml")

	c, buf = testCmd()
	require.NoError(t, runTracesShow(c, []string{runs[0].ID}))
	assert.Contains(t, buf.String(), "replace index=0")

	c, buf = testCmd()
	require.NoError(t, runTracesInfo(c, nil))
	assert.Contains(t, buf.String(), a.Config.Trace.Path)

	c, _ = testCmd()
	require.NoError(t, runTracesDelete(c, []string{runs[0].ID}))
	c, _ = testCmd()
	assert.Error(t, runTracesShow(c, []string{runs[0].ID}))
}

func TestConfigCommands(t *testing.T) {
	withApp(t)

	c, buf := testCmd()
	require.NoError(t, runConfigPath(c, nil))
	assert.Equal(t, "config.toml\n", buf.String())

	c, buf = testCmd()
	require.NoError(t, runConfigShow(c, nil))
	assert.Contains(t, buf.String(), "[history]")
	assert.Contains(t, buf.String(), "[logging]")

	c, buf = testCmd()
	require.NoError(t, runConfigSchema(c, nil))
	assert.Contains(t, buf.String(), `"properties"`)
}

func TestCommandsRequireApp(t *testing.T) {
	app = nil
	c, _ := testCmd()
	assert.Error(t, runTracesList(c, nil))
	assert.Error(t, runConfigShow(c, nil))
	assert.Error(t, runReplay(c, []string{"x"}))
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

func TestGenDocs_Markdown(t *testing.T) {
	dir := t.TempDir()
	genDocsFormat, genDocsOutputDir = "markdown", dir
	t.Cleanup(func() { genDocsFormat, genDocsOutputDir = "man", "" })

	c, buf := testCmd()
	require.NoError(t, runGenDocs(c, nil))
	assert.FileExists(t, filepath.Join(dir, "navstack.md"))
	assert.FileExists(t, filepath.Join(dir, "navstack_replay.md"))
	assert.Contains(t, buf.String(), "navstack_sim.md")
}

func TestGenDocs_UnknownFormat(t *testing.T) {
	genDocsFormat = "pdf"
	t.Cleanup(func() { genDocsFormat = "man" })

	c, _ := testCmd()
	assert.Error(t, runGenDocs(c, nil))
}
