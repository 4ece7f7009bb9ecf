package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"situation/internal/session"
	"situation/internal/ui/textutil"
)

// LogPanel displays the session log through a fixed-height viewport. The
// scroll position is owned by session.LogBuffer; the panel only draws the
// window it reports.
type LogPanel struct {
	viewport viewport.Model
	width    int
}

// NewLogPanel creates a log panel sized for the default log height.
func NewLogPanel() *LogPanel {
	return &LogPanel{viewport: viewport.New(defaultWidth, session.DefaultLogHeight)}
}

// SetSize sets the inner width and the number of visible log lines.
func (p *LogPanel) SetSize(width, lines int) {
	p.width = width
	p.viewport.Width = width
	p.viewport.Height = lines
}

// logTitle names the remote call in flight, if any.
func logTitle(s *session.State, spin string) string {
	if s.CurrentAction == "" {
		return "Logs (j/k: Scroll)"
	}
	return "Logs (j/k: Scroll) - [" + spin + s.CurrentAction + "]"
}

// View renders the title row and the visible slice of the log.
func (p *LogPanel) View(s *session.State, spin string) string {
	lines := s.Log.Visible(p.viewport.Height)
	out := make([]string, len(lines))
	for i, l := range lines {
		l = textutil.Truncate(l, p.width)
		if strings.HasPrefix(l, "Error ") {
			out[i] = Styles.Error.Render(l)
			continue
		}
		out[i] = l
	}
	p.viewport.SetContent(strings.Join(out, "\n"))

	title := row{text: logTitle(s, spin), style: Styles.Title}
	return renderRows([]row{title}, p.width, 1) + "\n" + p.viewport.View()
}
