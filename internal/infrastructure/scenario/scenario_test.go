package scenario

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/navstack/internal/application/port/mocks"
	"github.com/bnema/navstack/internal/domain/entity"
	"github.com/bnema/navstack/internal/ui/coordinator"
)

func TestRun_Golden(t *testing.T) {
	files := []string{
		"three_layers.toml",
		"menu_replace.yaml",
		"reload.toml",
		"forward_revert.js",
		"container.yaml",
		"mount_order.toml",
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			sc, err := Load(filepath.Join("testdata", file))
			require.NoError(t, err)

			res, err := Run(context.Background(), sc, Options{})
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, FormatTrace(&buf, res))
			g.Assert(t, sc.Name, buf.Bytes())
		})
	}
}

func TestLoad_NamesScriptsAfterFile(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "forward_revert.js"))
	require.NoError(t, err)

	assert.Equal(t, "forward_revert", sc.Name)
	assert.NotEmpty(t, sc.Script)
	assert.Empty(t, sc.Steps)
}

func TestLoad_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o600))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("name = \"x\"\nstepz = []\n"), ".toml")
	assert.Error(t, err)

	_, err = Parse([]byte("name: x\nsteps:\n  - action: back\n    layr: a\n"), "yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	two := 2
	tests := []struct {
		name    string
		sc      Scenario
		wantErr error
	}{
		{name: "ok", sc: Scenario{Name: "ok", Steps: []Step{{Action: ActionBack}, {Action: ActionExpect, Cursor: &two}}}},
		{name: "no steps", sc: Scenario{Name: "empty"}},
		{name: "no name", sc: Scenario{Steps: []Step{{Action: ActionBack}}}},
		{name: "open without layer", sc: Scenario{Name: "x", Steps: []Step{{Action: ActionOpen}}}, wantErr: ErrInvalidStep},
		{name: "expect without cursor", sc: Scenario{Name: "x", Steps: []Step{{Action: ActionExpect}}}, wantErr: ErrInvalidStep},
		{name: "unknown action", sc: Scenario{Name: "x", Steps: []Step{{Action: "jump"}}}, wantErr: ErrInvalidStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sc.Validate()
			switch {
			case tt.name == "ok":
				assert.NoError(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.Error(t, err)
			}
		})
	}
}

func TestRun_ExpectationFailureKeepsPartialResult(t *testing.T) {
	want := 5
	sc := &Scenario{Name: "wrong", Steps: []Step{
		{Action: ActionOpen, Layer: "a"},
		{Action: ActionFlush},
		{Action: ActionExpect, Cursor: &want},
		{Action: ActionBack},
	}}

	res, err := Run(context.Background(), sc, Options{})
	require.ErrorIs(t, err, ErrExpectation)
	assert.Contains(t, err.Error(), "step 3")
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Cursor)
	assert.False(t, res.Exited)
}

func TestRun_CloseUnknownLayer(t *testing.T) {
	sc := &Scenario{Name: "ghost", Steps: []Step{{Action: ActionClose, Layer: "ghost"}}}

	_, err := Run(context.Background(), sc, Options{})
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestRun_PressWithoutContainer(t *testing.T) {
	sc := &Scenario{Name: "press", Steps: []Step{{Action: ActionPress}}}

	_, err := Run(context.Background(), sc, Options{})
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestRun_ReleaseThenReopenRegistersAgain(t *testing.T) {
	sc := &Scenario{Name: "remount", Steps: []Step{
		{Action: ActionOpen, Layer: "a"},
		{Action: ActionFlush},
		{Action: ActionRelease, Layer: "a"},
		{Action: ActionOpen, Layer: "a"},
		{Action: ActionFlush},
	}}

	res, err := Run(context.Background(), sc, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cursor)
	assert.Equal(t, "a", res.Stack[1].Label)
}

func TestRun_ScriptErrors(t *testing.T) {
	t.Run("syntax", func(t *testing.T) {
		_, err := Run(context.Background(), &Scenario{Name: "bad", Script: "open(("}, Options{})
		assert.Error(t, err)
	})

	t.Run("failed step is reported even when caught", func(t *testing.T) {
		src := `try { expectCursor(3); } catch (e) {} flush();`
		_, err := Run(context.Background(), &Scenario{Name: "caught", Script: src}, Options{})
		assert.ErrorIs(t, err, ErrExpectation)
	})

	t.Run("cursor binding", func(t *testing.T) {
		src := `open("a"); flush(); if (cursor() !== 1) { throw new Error("cursor " + cursor()); }`
		res, err := Run(context.Background(), &Scenario{Name: "cursor", Script: src}, Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Cursor)
	})
}

func TestRun_ObserverSeesEveryStep(t *testing.T) {
	sc := &Scenario{Name: "observed", Steps: []Step{
		{Action: ActionOpen, Layer: "a"},
		{Action: ActionFlush},
	}}

	var seen []Action
	_, err := Run(context.Background(), sc, Options{
		Observer: func(step Step, nav *coordinator.NavigationCoordinator) {
			seen = append(seen, step.Action)
			assert.NotNil(t, nav)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []Action{ActionOpen, ActionFlush}, seen)
}

func TestRun_RecorderReceivesTrace(t *testing.T) {
	rec := mocks.NewMockTraceRecorder(t)
	var kinds []entity.TraceKind
	rec.EXPECT().Record(mock.Anything, mock.AnythingOfType("entity.TraceEvent")).
		Run(func(_ context.Context, ev entity.TraceEvent) { kinds = append(kinds, ev.Kind) }).
		Return(nil)

	sc := &Scenario{Name: "recorded", Steps: []Step{
		{Action: ActionOpen, Layer: "a"},
		{Action: ActionFlush},
	}}
	res, err := Run(context.Background(), sc, Options{Recorder: rec})
	require.NoError(t, err)

	assert.Equal(t, []entity.TraceKind{entity.TraceReplace, entity.TracePush}, kinds)
	assert.Len(t, res.Trace, 2)
}

func TestRun_RecorderErrorFailsRun(t *testing.T) {
	boom := errors.New("disk full")
	rec := mocks.NewMockTraceRecorder(t)
	rec.EXPECT().Record(mock.Anything, mock.Anything).Return(boom).Once()

	sc := &Scenario{Name: "recorded", Steps: []Step{
		{Action: ActionOpen, Layer: "a"},
		{Action: ActionFlush},
	}}
	_, err := Run(context.Background(), sc, Options{Recorder: rec})
	assert.ErrorIs(t, err, boom)
}

func TestFormatEvent(t *testing.T) {
	assert.Equal(t, "push index=2 stamp=9", FormatEvent(entity.TraceEvent{Kind: entity.TracePush, Index: 2, Stamp: 9}))
	assert.Equal(t, "go delta=-2 from=3", FormatEvent(entity.TraceEvent{Kind: entity.TraceGo, Index: 3, Delta: -2}))
	assert.Equal(t, "notify index=4 no-payload", FormatEvent(entity.TraceEvent{Kind: entity.TraceNotify, Index: 4, Note: "no-payload"}))
	assert.Equal(t, "exit", FormatEvent(entity.TraceEvent{Kind: entity.TraceExit}))
}

func TestFormatTrace_Pending(t *testing.T) {
	res := &Result{
		Scenario: "p",
		Stamp:    1,
		Stack:    []coordinator.RecordState{{Label: "root"}, {Index: 1, Label: "a", Closed: true}},
		Cursor:   1,
		Pending:  []entity.Operation{entity.GoOperation(-1)},
	}
	var buf bytes.Buffer
	require.NoError(t, FormatTrace(&buf, res))

	assert.Contains(t, buf.String(), "stack: root > a (closed)\n")
	assert.Contains(t, buf.String(), "pending: go(-1)\n")
	assert.NotContains(t, buf.String(), "container:")
}
