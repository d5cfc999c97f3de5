// Package scenario loads scripted navigation scenarios and replays them
// against the in-memory host, producing a deterministic host trace.
//
// Scenarios are declarative step lists in TOML or YAML, or JavaScript
// programs calling the same actions as functions.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownFormat is returned for files that are neither TOML, YAML nor JavaScript.
	ErrUnknownFormat = errors.New("unknown scenario format")
	// ErrInvalidStep is returned for steps missing required fields or with an unknown action.
	ErrInvalidStep = errors.New("invalid step")
	// ErrExpectation is returned when an expect step does not hold.
	ErrExpectation = errors.New("expectation failed")
)

// Action names a scenario step.
type Action string

const (
	// ActionOpen activates a layer, registering it on first use.
	ActionOpen Action = "open"
	// ActionClose deactivates a layer.
	ActionClose Action = "close"
	// ActionRelease unmounts a layer.
	ActionRelease Action = "release"
	// ActionBack presses the host back affordance.
	ActionBack Action = "back"
	// ActionForward presses the host forward affordance.
	ActionForward Action = "forward"
	// ActionReload reloads the page: a new coordinator with a new stamp.
	ActionReload Action = "reload"
	// ActionPress presses the container back button.
	ActionPress Action = "press"
	// ActionFlush ends the current scheduling turn.
	ActionFlush Action = "flush"
	// ActionExpect checks the coordinator cursor.
	ActionExpect Action = "expect"
)

// Step is one scenario action.
type Step struct {
	Action        Action `toml:"action" yaml:"action"`
	Layer         string `toml:"layer,omitempty" yaml:"layer,omitempty"`
	Replace       bool   `toml:"replace,omitempty" yaml:"replace,omitempty"`
	SkipContainer bool   `toml:"skip_container,omitempty" yaml:"skip_container,omitempty"`
	Cursor        *int   `toml:"cursor,omitempty" yaml:"cursor,omitempty"`
}

func (s Step) String() string {
	switch {
	case s.Layer != "":
		return fmt.Sprintf("%s %s", s.Action, s.Layer)
	case s.Cursor != nil:
		return fmt.Sprintf("%s cursor=%d", s.Action, *s.Cursor)
	default:
		return string(s.Action)
	}
}

// Validate checks that the step can be executed.
func (s Step) Validate() error {
	switch s.Action {
	case ActionOpen, ActionClose, ActionRelease:
		if s.Layer == "" {
			return fmt.Errorf("%w: %s requires a layer", ErrInvalidStep, s.Action)
		}
	case ActionExpect:
		if s.Cursor == nil {
			return fmt.Errorf("%w: expect requires a cursor", ErrInvalidStep)
		}
	case ActionBack, ActionForward, ActionReload, ActionPress, ActionFlush:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidStep, s.Action)
	}
	return nil
}

// Scenario is a named sequence of steps.
type Scenario struct {
	Name        string `toml:"name" yaml:"name"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
	// Stamp is the session stamp of the first coordinator. Each reload adds one.
	Stamp int64 `toml:"stamp,omitempty" yaml:"stamp,omitempty"`
	// MountOrderOnly runs the coordinator without host back notifications.
	MountOrderOnly bool `toml:"mount_order_only,omitempty" yaml:"mount_order_only,omitempty"`
	// Container attaches an emulated container back button.
	Container bool   `toml:"container,omitempty" yaml:"container,omitempty"`
	Steps     []Step `toml:"steps" yaml:"steps"`

	// Script holds the JavaScript source of script scenarios.
	Script string `toml:"-" yaml:"-"`
}

// Validate checks the scenario and all of its steps.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Script != "" {
		return nil
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Load reads a scenario file. The format follows the extension: .toml,
// .yaml/.yml or .js. Script scenarios are named after their file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	sc, err := Parse(data, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scenario. format is a file extension such as ".toml".
// Unknown fields are rejected.
func Parse(data []byte, format string) (*Scenario, error) {
	var sc Scenario
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "toml":
		md, err := toml.Decode(string(data), &sc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse TOML: unknown field %q", undecoded[0].String())
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case "js":
		sc.Script = string(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &sc, nil
}
