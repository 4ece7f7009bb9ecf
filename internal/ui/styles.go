package ui

import (
	"github.com/charmbracelet/lipgloss"

	"situation/internal/model"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, workspace id
	ColorHighlight = "205" // Magenta - for selected items, focused borders
	ColorDanger    = "196" // Red - for errors, failed change sets
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "238" // Darker gray - for unfocused borders
	ColorWarning   = "220" // Yellow - for change set names, in-progress
	ColorSuccess   = "42"  // Green - for applied change sets
	ColorTrigger   = "27"  // Blue - focused top bar trigger background
)

// Styles contains shared style definitions used across panes.
var Styles = struct {
	Title   lipgloss.Style // Bold accent color - pane titles
	Section lipgloss.Style // Schema categories, content headings

	Pane        lipgloss.Style // Unfocused pane border
	PaneFocused lipgloss.Style // Focused pane border
	Dropdown    lipgloss.Style // Change set dropdown box

	Trigger        lipgloss.Style
	TriggerFocused lipgloss.Style
	Workspace      lipgloss.Style
	ChangeSetName  lipgloss.Style

	Selected lipgloss.Style // Item under the cursor
	Muted    lipgloss.Style
	Normal   lipgloss.Style
	Hint     lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style
	Input    lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Section: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Pane: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDim)),
	PaneFocused: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)),
	Dropdown: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Trigger: lipgloss.NewStyle(),
	TriggerFocused: lipgloss.NewStyle().
		Background(lipgloss.Color(ColorTrigger)).
		Foreground(lipgloss.Color("255")),
	Workspace: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	ChangeSetName: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Input: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
}

// StatusStyle colors a change set by its status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case model.StatusApplied:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	case model.StatusFailed:
		return Styles.Error
	case model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	case model.StatusAbandoned:
		return Styles.Muted
	default:
		return Styles.Normal
	}
}

func paneStyle(focused bool) lipgloss.Style {
	if focused {
		return Styles.PaneFocused
	}
	return Styles.Pane
}
