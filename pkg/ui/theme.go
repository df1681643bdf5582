package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lifeos/pkg/model"
	"github.com/vanderheijden86/lifeos/pkg/nodes"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme holds the color palette and precomputed styles. Styles are built
// once at startup rather than per frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Resource statuses
	Active   lipgloss.AdaptiveColor
	Done     lipgloss.AdaptiveColor
	Archived lipgloss.AdaptiveColor

	// Resource types
	Folder lipgloss.AdaptiveColor
	Task   lipgloss.AdaptiveColor
	Note   lipgloss.AdaptiveColor
	Event  lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Header   lipgloss.Style
	Selected lipgloss.Style

	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	PrimaryBold   lipgloss.Style
	ErrorText     lipgloss.Style
	StatusBar     lipgloss.Style
	Crumb         lipgloss.Style
	CrumbActive   lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		Active:   lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		Done:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Archived: lipgloss.AdaptiveColor{Light: "#888888", Dark: "#44475A"},

		Folder: lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Task:   lipgloss.AdaptiveColor{Light: "#2684FF", Dark: "#4C9AFF"},
		Note:   lipgloss.AdaptiveColor{Light: "#36B37E", Dark: "#57D9A3"},
		Event:  lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.ErrorText = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}).Bold(true)
	t.StatusBar = r.NewStyle().Foreground(t.Subtext)
	t.Crumb = r.NewStyle().Foreground(t.Muted)
	t.CrumbActive = r.NewStyle().Foreground(t.Primary).Bold(true)

	return t
}

// GetStatusColor maps a resource status to its theme color.
func (t Theme) GetStatusColor(s model.ResourceStatus) lipgloss.AdaptiveColor {
	switch s {
	case model.StatusDone:
		return t.Done
	case model.StatusArchived:
		return t.Archived
	default:
		return t.Active
	}
}

// GetTypeIcon returns the icon and color for a resource type.
func (t Theme) GetTypeIcon(typ model.ResourceType) (string, lipgloss.AdaptiveColor) {
	switch typ {
	case model.ResourceFolder, model.ResourceProject:
		return "▸", t.Folder
	case model.ResourceTask:
		return "☐", t.Task
	case model.ResourceNote, model.ResourceDocument:
		return "✎", t.Note
	case model.ResourceRecipe:
		return "♨", t.Note
	case model.ResourceEvent:
		return "◷", t.Event
	default:
		return "•", t.Secondary
	}
}

// NodeStyles bridges the theme into the view engine's style set.
func (t Theme) NodeStyles() nodes.Styles {
	r := t.Renderer
	return nodes.Styles{
		Title:    r.NewStyle().Foreground(t.Primary).Bold(true),
		Subtitle: t.Base,
		Muted:    t.MutedText,
		Badge:    r.NewStyle().Foreground(t.Event).Bold(true),
		Done:     r.NewStyle().Foreground(t.Done).Strikethrough(true),
		Debug:    r.NewStyle().Foreground(t.Archived),
	}
}
