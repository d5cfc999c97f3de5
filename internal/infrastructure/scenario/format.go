package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/navstack/internal/domain/entity"
)

// FormatEvent renders one trace event without its timestamp.
func FormatEvent(ev entity.TraceEvent) string {
	switch ev.Kind {
	case entity.TracePush, entity.TraceReplace:
		return fmt.Sprintf("%s index=%d stamp=%d", ev.Kind, ev.Index, ev.Stamp)
	case entity.TraceGo, entity.TraceUserBack, entity.TraceUserFwd:
		return fmt.Sprintf("%s delta=%d from=%d", ev.Kind, ev.Delta, ev.Index)
	case entity.TraceNotify:
		if ev.Note != "" {
			return fmt.Sprintf("notify index=%d %s", ev.Index, ev.Note)
		}
		return fmt.Sprintf("notify index=%d stamp=%d", ev.Index, ev.Stamp)
	case entity.TraceReload:
		return fmt.Sprintf("reload index=%d", ev.Index)
	default:
		return string(ev.Kind)
	}
}

// FormatTrace writes a deterministic, timestamp-free report of res.
func FormatTrace(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "scenario: %s\n", res.Scenario)
	fmt.Fprintf(bw, "stamp: %d\n", res.Stamp)
	fmt.Fprintln(bw, "trace:")
	for _, ev := range res.Trace {
		fmt.Fprintf(bw, "  #%d %s\n", ev.Seq, FormatEvent(ev))
	}

	backs := "-"
	if len(res.Backs) > 0 {
		backs = strings.Join(res.Backs, ", ")
	}
	fmt.Fprintf(bw, "backs: %s\n", backs)
	fmt.Fprintf(bw, "cursor: %d\n", res.Cursor)
	fmt.Fprintf(bw, "stack: %s\n", formatStack(res))
	if len(res.Pending) > 0 {
		ops := make([]string, len(res.Pending))
		for i, op := range res.Pending {
			ops[i] = op.String()
		}
		fmt.Fprintf(bw, "pending: %s\n", strings.Join(ops, ", "))
	}
	if res.Container {
		state := "hidden"
		if res.ContainerVisible {
			state = "visible"
		}
		fmt.Fprintf(bw, "container: %s\n", state)
	}
	fmt.Fprintf(bw, "exited: %t\n", res.Exited)

	return bw.Flush()
}

func formatStack(res *Result) string {
	parts := make([]string, len(res.Stack))
	for i, r := range res.Stack {
		label := r.Label
		if r.Closed {
			label += " (closed)"
		}
		parts[i] = label
	}
	return strings.Join(parts, " > ")
}
