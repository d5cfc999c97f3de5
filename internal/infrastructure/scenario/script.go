package scenario

import (
	"fmt"

	"github.com/grafana/sobek"
)

// runScript executes a JavaScript scenario. The script drives the replay
// through global functions mirroring the step actions:
//
//	open("menu", {replace: true}); flush(); back(); flush(); expectCursor(0);
func runScript(r *runner, name, src string) error {
	vm := sobek.New()
	var stepErr error

	do := func(step Step) {
		if err := r.apply(step); err != nil {
			stepErr = fmt.Errorf("%s: %w", step, err)
			panic(vm.NewGoError(stepErr))
		}
	}
	layerArg := func(call sobek.FunctionCall) string {
		arg := call.Argument(0)
		if sobek.IsUndefined(arg) || sobek.IsNull(arg) {
			return ""
		}
		return arg.String()
	}
	action := func(a Action) func(sobek.FunctionCall) sobek.Value {
		return func(call sobek.FunctionCall) sobek.Value {
			do(Step{Action: a, Layer: layerArg(call)})
			return sobek.Undefined()
		}
	}

	bindings := map[string]any{
		"open": func(call sobek.FunctionCall) sobek.Value {
			step := Step{Action: ActionOpen, Layer: layerArg(call)}
			if opts := call.Argument(1); !sobek.IsUndefined(opts) && !sobek.IsNull(opts) {
				obj := opts.ToObject(vm)
				if v := obj.Get("replace"); v != nil {
					step.Replace = v.ToBoolean()
				}
				if v := obj.Get("skipContainer"); v != nil {
					step.SkipContainer = v.ToBoolean()
				}
			}
			do(step)
			return sobek.Undefined()
		},
		"close":   action(ActionClose),
		"release": action(ActionRelease),
		"back":    action(ActionBack),
		"forward": action(ActionForward),
		"reload":  action(ActionReload),
		"press":   action(ActionPress),
		"flush":   action(ActionFlush),
		"expectCursor": func(call sobek.FunctionCall) sobek.Value {
			want := int(call.Argument(0).ToInteger())
			do(Step{Action: ActionExpect, Cursor: &want})
			return sobek.Undefined()
		},
		"cursor": func(sobek.FunctionCall) sobek.Value {
			return vm.ToValue(r.nav.Cursor())
		},
	}
	for fn, impl := range bindings {
		if err := vm.Set(fn, impl); err != nil {
			return fmt.Errorf("failed to bind %s: %w", fn, err)
		}
	}

	_, err := vm.RunScript(name, src)
	if stepErr != nil {
		// Reported even when the script caught the exception.
		return stepErr
	}
	if err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}
