package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/navstack/internal/domain/entity"
	"github.com/bnema/navstack/internal/infrastructure/scenario"
)

// TraceRenderer colors trace events by who caused them: coordinator writes,
// user or platform moves, and notifications.
type TraceRenderer struct {
	theme *Theme
}

// NewTraceRenderer creates a trace renderer.
func NewTraceRenderer(theme *Theme) *TraceRenderer {
	return &TraceRenderer{theme: theme}
}

// Event renders one event line.
func (r *TraceRenderer) Event(ev entity.TraceEvent) string {
	seq := r.theme.Subtle.Render(fmt.Sprintf("#%-3d", ev.Seq))
	return seq + " " + r.style(ev.Kind).Render(scenario.FormatEvent(ev))
}

// Events renders the last max events, oldest first. max <= 0 renders all.
func (r *TraceRenderer) Events(events []entity.TraceEvent, max int) []string {
	if max > 0 && len(events) > max {
		events = events[len(events)-max:]
	}
	lines := make([]string, len(events))
	for i, ev := range events {
		lines[i] = r.Event(ev)
	}
	return lines
}

func (r *TraceRenderer) style(kind entity.TraceKind) lipgloss.Style {
	switch kind {
	case entity.TracePush, entity.TraceReplace, entity.TraceGo:
		return r.theme.Highlight
	case entity.TraceUserBack, entity.TraceUserFwd:
		return r.theme.WarningStyle
	case entity.TraceReload, entity.TraceExit:
		return r.theme.ErrorStyle
	default:
		return r.theme.Normal
	}
}
