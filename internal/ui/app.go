package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"situation/internal/controller"
	"situation/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	inputPrompt = "Enter Change Set Name (Esc: Cancel, Enter: Create): "
)

// App is the root tea.Model. Key events and remote-call results go to the
// controller; App keeps only widget state (sizes, spinner, text input) and
// draws the session on every frame.
type App struct {
	ctrl  *controller.Controller
	state *session.State

	width, height int

	log      *LogPanel
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	spinning bool
}

var _ tea.Model = (*App)(nil)

// NewApp wraps a controller for tea.NewProgram.
func NewApp(ctrl *controller.Controller) *App {
	in := textinput.New()
	in.Prompt = inputPrompt
	in.PromptStyle = Styles.Input
	in.TextStyle = Styles.Input
	in.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	sp.Style = Styles.Title

	hm := help.New()
	hm.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight)).Bold(true)
	hm.Styles.ShortDesc = Styles.Hint
	hm.Styles.ShortSeparator = Styles.Hint
	hm.Styles.FullKey = hm.Styles.ShortKey
	hm.Styles.FullDesc = Styles.Hint
	hm.Styles.FullSeparator = Styles.Hint

	a := &App{
		ctrl:    ctrl,
		state:   ctrl.State,
		width:   defaultWidth,
		height:  defaultHeight,
		log:     NewLogPanel(),
		input:   in,
		spinner: sp,
		help:    hm,
	}
	a.resize()
	return a
}

// Init starts the startup cascade.
func (a *App) Init() tea.Cmd {
	return a.track(a.ctrl.Start())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.resize()
		return a, nil
	case spinner.TickMsg:
		if !a.ctrl.Busy() {
			a.spinning = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	cmd := a.ctrl.Update(msg)
	a.syncInput()
	return a, a.track(cmd)
}

// track starts the spinner when a cascade is running.
func (a *App) track(cmd tea.Cmd) tea.Cmd {
	if a.ctrl.Busy() && !a.spinning {
		a.spinning = true
		return tea.Batch(cmd, a.spinner.Tick)
	}
	return cmd
}

func (a *App) syncInput() {
	if a.state.Mode != session.ModeEnteringChangeSetName {
		a.input.Blur()
		a.input.Reset()
		return
	}
	a.input.Focus()
	a.input.SetValue(a.state.InputBuffer)
	a.input.CursorEnd()
}

func (a *App) resize() {
	a.help.Width = a.width
	a.log.SetSize(max(a.width-2, 1), a.state.LogHeight)
	a.input.Width = max(a.width-lipgloss.Width(inputPrompt)-1, 1)
}

// View implements tea.Model.
func (a *App) View() string {
	s := a.state
	w, h := a.width, a.height
	keys := a.ctrl.Keys.ContextHelp(s.Mode, s.Focus.Current)

	top := renderTopBar(s, w)
	logBox := paneStyle(s.Focus.Current == session.FocusLogPanel).Render(a.log.View(s, a.spinnerView()))
	footer := a.help.ShortHelpView(keys.ShortHelp())

	var input string
	used := 1 + lipgloss.Height(logBox) + 1
	if s.Mode == session.ModeEnteringChangeSetName {
		input = a.input.View()
		used++
	}

	mainH := max(h-used, 3)
	schemaW := min(max(w*30/100, 20), w/2)
	contentW := w - schemaW
	schemas := paneStyle(s.Focus.Current == session.FocusSchemaList).
		Render(renderSchemaList(s, max(schemaW-2, 1), mainH-2))
	content := paneStyle(s.Focus.Current == session.FocusContentArea).
		Render(renderContent(s, a.help, keys, max(contentW-2, 1), mainH-2))
	main := lipgloss.JoinHorizontal(lipgloss.Top, schemas, content)

	parts := []string{top, main, logBox}
	if input != "" {
		parts = append(parts, input)
	}
	parts = append(parts, footer)
	frame := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if s.Focus.Current == session.FocusChangeSetDropdown {
		wsW, _, _ := topBarColumns(w)
		frame = overlay(frame, renderDropdown(s, w-wsW), wsW, 1)
	}
	return frame
}

func (a *App) spinnerView() string {
	if !a.ctrl.Busy() {
		return ""
	}
	return a.spinner.View() + " "
}
