package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/navstack/internal/domain/build"
)

// VersionRenderer renders build info.
type VersionRenderer struct {
	theme *Theme
}

// NewVersionRenderer creates a new version renderer with the given theme.
func NewVersionRenderer(theme *Theme) *VersionRenderer {
	return &VersionRenderer{theme: theme}
}

// Render renders a stacked-layers logo next to the build info lines.
func (r *VersionRenderer) Render(info build.Info) string {
	logoStyle := lipgloss.NewStyle().Foreground(r.theme.Accent).Bold(true).MarginLeft(2)
	logo := logoStyle.Render("┌──────┐\n│ ┌──────┐\n└─│ ┌──────┐\n  └─│      │\n    └──────┘")

	return lipgloss.JoinHorizontal(lipgloss.Top, logo, "   ", r.lines(info))
}

func (r *VersionRenderer) lines(info build.Info) string {
	key := r.theme.Subtle
	val := r.theme.Highlight
	icon := lipgloss.NewStyle().Foreground(r.theme.Accent)

	line := func(i, k, v string) string {
		return fmt.Sprintf("%s %s %s", icon.Render(i), key.Render(k), val.Render(v))
	}
	return strings.Join([]string{
		line(IconVersion, "Version", info.Version),
		line(IconGitBranch, "Commit", info.Commit),
		line(IconCalendar, "Built", info.BuildDate),
		line(IconGo, "Go", info.GoVersion),
		"",
		fmt.Sprintf("%s %s", icon.Render(IconGithub), key.Render(build.RepoURL())),
	}, "\n")
}
