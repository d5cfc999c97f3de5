package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// SimKeyMap defines keybindings of the simulator.
type SimKeyMap struct {
	Open        key.Binding
	OpenReplace key.Binding
	Close       key.Binding
	Release     key.Binding
	Back        key.Binding
	Forward     key.Binding
	Reload      key.Binding
	Press       key.Binding
	Step        key.Binding
	Auto        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k SimKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Close, k.Back, k.Step, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k SimKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.OpenReplace, k.Close, k.Release},
		{k.Back, k.Forward, k.Reload, k.Press},
		{k.Step, k.Auto},
		{k.Help, k.Quit},
	}
}

// DefaultSimKeyMap returns the default simulator keybindings.
func DefaultSimKeyMap() SimKeyMap {
	return SimKeyMap{
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open layer"),
		),
		OpenReplace: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "open menu (replace on next)"),
		),
		Close: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "close top"),
		),
		Release: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "unmount top"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b/←", "host back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("f", "right"),
			key.WithHelp("f/→", "host forward"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Press: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "container back"),
		),
		Step: key.NewBinding(
			key.WithKeys("n", "enter"),
			key.WithHelp("n", "run one task"),
		),
		Auto: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle auto flush"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
