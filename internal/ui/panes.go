package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"situation/internal/jsonutil"
	"situation/internal/session"
	"situation/internal/ui/textutil"
)

// row is one line of pane text. Text is fitted to the pane before the style
// is applied so widths never count escape sequences.
type row struct {
	text  string
	style lipgloss.Style
}

func plain(text string) row { return row{text: text, style: Styles.Normal} }

func renderRows(rows []row, width, height int) string {
	out := make([]string, height)
	for i := range out {
		if i >= len(rows) {
			out[i] = textutil.Fit("", width)
			continue
		}
		out[i] = rows[i].style.Render(textutil.Fit(rows[i].text, width))
	}
	return strings.Join(out, "\n")
}

// scrolled keeps the title row and windows the rest around the cursor row.
func scrolled(title row, rows []row, cursor, height int) []row {
	body := height - 1
	if body <= 0 {
		return []row{title}
	}
	start := textutil.Window(cursor, len(rows), body)
	end := min(start+body, len(rows))
	return append([]row{title}, rows[start:end]...)
}

// renderSchemaList draws the schemas grouped by category.
func renderSchemaList(s *session.State, width, height int) string {
	focused := s.Focus.Current == session.FocusSchemaList
	title := row{text: "Schemas", style: Styles.Title}
	if s.Schemas == nil {
		return renderRows([]row{title, {text: "No schemas loaded.", style: Styles.Empty}}, width, height)
	}
	if len(s.Schemas) == 0 {
		return renderRows([]row{title, {text: "No schemas.", style: Styles.Empty}}, width, height)
	}

	var rows []row
	cursorRow := 0
	category := ""
	for i, sc := range s.Schemas {
		if i == 0 || sc.Category != category {
			category = sc.Category
			name := category
			if name == "" {
				name = "Uncategorized"
			}
			rows = append(rows, row{text: name, style: Styles.Section})
		}
		r := plain("  " + sc.Name)
		if !sc.Installed {
			r.style = Styles.Muted
		}
		if i == s.SchemaCursor {
			cursorRow = len(rows)
			r.text = "> " + sc.Name
			if focused {
				r.style = Styles.Selected
			}
		}
		rows = append(rows, r)
	}
	return renderRows(scrolled(title, rows, cursorRow, height), width, height)
}

// renderContent draws the selected change set, its merge status and its
// components. With nothing loaded it shows the keybindings for the current
// focus instead.
func renderContent(s *session.State, hm help.Model, keys help.KeyMap, width, height int) string {
	if s.Detail == nil && len(s.Components) == 0 && s.ComponentDetail == nil {
		body := Styles.Title.Render("Keybindings") + "\n\n" + hm.FullHelpView(keys.FullHelp())
		return lipgloss.NewStyle().
			Width(width).Height(height).
			MaxWidth(width).MaxHeight(height).
			Render(body)
	}

	focused := s.Focus.Current == session.FocusContentArea
	title := row{text: "Details", style: Styles.Title}
	var rows []row
	cursorRow := 0

	if d := s.Detail; d != nil {
		rows = append(rows,
			plain(fmt.Sprintf("Change Set: %s (%s)", d.Name, d.ID)),
			row{text: "Status: " + d.Status, style: StatusStyle(d.Status)},
			plain(""),
			row{text: "Merge Status:", style: Styles.Section},
		)
		switch {
		case s.MergeStatus == nil:
			rows = append(rows, row{text: "  Merge status loading or unavailable.", style: Styles.Empty})
		case len(s.MergeStatus.Actions) == 0:
			rows = append(rows, plain("  No actions required."))
		default:
			for _, a := range s.MergeStatus.Actions {
				line := fmt.Sprintf("  [%s] %s %s", a.Kind, a.State, a.Name)
				if a.Component != nil {
					line += fmt.Sprintf(" - %s (%s)", a.Component.Name, a.Component.ID)
				}
				rows = append(rows, plain(line))
			}
		}
		rows = append(rows, plain(""))
	}

	if s.Components != nil {
		rows = append(rows, row{text: "Components:", style: Styles.Section})
		if len(s.Components) == 0 {
			rows = append(rows, row{text: "  No components.", style: Styles.Empty})
		}
		for i, c := range s.Components {
			text := c.DisplayName()
			if schema := s.SchemaNameFor(c); schema != "" {
				text += " [" + schema + "]"
			}
			r := plain("  " + text)
			if i == s.ComponentCursor {
				cursorRow = len(rows)
				r.text = "> " + text
				if focused {
					r.style = Styles.Selected
				}
			}
			rows = append(rows, r)
		}
	}

	if cd := s.ComponentDetail; cd != nil {
		rows = append(rows,
			plain(""),
			row{text: fmt.Sprintf("Component: %s (%s)", cd.Name, cd.ID), style: Styles.Section},
		)
		if sc, ok := s.SchemaByID(cd.SchemaID); ok {
			rows = append(rows, plain("  Schema: "+sc.Name))
		}
		for _, l := range jsonutil.FlattenLines(cd.Domain) {
			rows = append(rows, row{text: "    " + l, style: Styles.Muted})
		}
	}

	if !focused {
		cursorRow = 0
	}
	return renderRows(scrolled(title, rows, cursorRow, height), width, height)
}
