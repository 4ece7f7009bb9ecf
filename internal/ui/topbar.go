package ui

import (
	"github.com/charmbracelet/lipgloss"

	"situation/internal/session"
	"situation/internal/ui/textutil"
)

// topBarColumns splits the top bar 30/40/30 between the workspace trigger,
// the change set trigger and the user email.
func topBarColumns(width int) (ws, cs, email int) {
	ws = width * 30 / 100
	cs = width * 40 / 100
	return ws, cs, width - ws - cs
}

func triggerFocused(s *session.State, which session.DropdownFocus) bool {
	if s.Mode != session.ModeNormal || s.DropdownFocus != which {
		return false
	}
	return s.Focus.Current == session.FocusTopBar || s.Focus.Current == session.FocusChangeSetDropdown
}

// trigger renders "prefix value suffix" in width columns. Focused triggers
// are drawn as one inverted block.
func trigger(prefix, value, suffix string, valueStyle lipgloss.Style, width int, focused bool) string {
	avail := width - textutil.VisualWidth(prefix) - textutil.VisualWidth(suffix)
	if focused || avail <= 0 {
		st := Styles.Trigger
		if focused {
			st = Styles.TriggerFocused
		}
		return st.Render(textutil.Fit(prefix+value+suffix, width))
	}
	value = textutil.Truncate(value, avail)
	pad := textutil.Fit("", avail-textutil.VisualWidth(value))
	return prefix + valueStyle.Render(value) + suffix + pad
}

func renderTopBar(s *session.State, width int) string {
	wsW, csW, emailW := topBarColumns(width)

	ws, email := "Loading...", ""
	if s.Identity != nil {
		ws, email = s.Identity.WorkspaceID, s.Identity.Email
	}

	name, status := "Select Change Set", ""
	if cs, ok := s.SelectedSummary(); ok {
		name = cs.Name
		status = " (" + cs.Status + ")"
	}
	indicator := "▶"
	if s.Focus.Current == session.FocusChangeSetDropdown {
		indicator = "▼"
	}

	return trigger(" Workspace: ", ws, " ", Styles.Workspace, wsW, triggerFocused(s, session.DropdownWorkspace)) +
		trigger(" Change Set: ", name, status+" "+indicator+" ", Styles.ChangeSetName, csW, triggerFocused(s, session.DropdownChangeSet)) +
		lipgloss.NewStyle().Width(emailW).Align(lipgloss.Right).Render(textutil.Truncate(email, emailW))
}

const (
	dropdownWidth    = 50
	dropdownMaxItems = 10
)

// renderDropdown draws the open change set list. The highlighted row is the
// dropdown cursor, not the current selection.
func renderDropdown(s *session.State, maxWidth int) string {
	width := min(dropdownWidth, maxWidth)
	inner := width - 4
	if inner <= 0 {
		return ""
	}

	rows := []row{{text: "Select Change Set (Enter/Esc)", style: Styles.Title}}
	if len(s.Summaries) == 0 {
		rows = append(rows, row{text: "No change sets found.", style: Styles.Empty})
	}
	start := textutil.Window(s.DropdownCursor, len(s.Summaries), dropdownMaxItems)
	end := min(start+dropdownMaxItems, len(s.Summaries))
	for i := start; i < end; i++ {
		cs := s.Summaries[i]
		text := cs.Name + " (" + cs.Status + ") - " + cs.ID
		if i == s.DropdownCursor {
			rows = append(rows, row{text: "> " + text, style: Styles.Selected})
			continue
		}
		rows = append(rows, row{text: "  " + text, style: StatusStyle(cs.Status)})
	}
	return Styles.Dropdown.Render(renderRows(rows, inner, len(rows)))
}
