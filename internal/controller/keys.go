package controller

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"situation/internal/session"
)

// KeyMap holds every binding the dispatcher recognises.
type KeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Tab       key.Binding

	FocusWorkspace key.Binding
	FocusChangeSet key.Binding
	FocusSchemas   key.Binding
	FocusContent   key.Binding
	FocusLog       key.Binding

	LogUp   key.Binding
	LogDown key.Binding

	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Activate key.Binding
	Confirm  key.Binding
	Cancel   key.Binding

	Create     key.Binding
	Abandon    key.Binding
	ForceApply key.Binding
	Refresh    key.Binding

	NewComponent    key.Binding
	DeleteComponent key.Binding

	Backspace key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),

		FocusWorkspace: key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "workspace")),
		FocusChangeSet: key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "change set")),
		FocusSchemas:   key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "schemas")),
		FocusContent:   key.NewBinding(key.WithKeys("alt+d"), key.WithHelp("alt+d", "details")),
		FocusLog:       key.NewBinding(key.WithKeys("alt+l"), key.WithHelp("alt+l", "log")),

		LogUp:   key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "log up")),
		LogDown: key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "log down")),

		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Toggle:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "switch trigger")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Create:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create change set")),
		Abandon:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "abandon")),
		ForceApply: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "force apply")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),

		NewComponent:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new component")),
		DeleteComponent: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete component")),

		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
	}
}

// ContextHelp returns the bindings that apply in the given mode and focus,
// for rendering with bubbles/help.
func (k KeyMap) ContextHelp(mode session.Mode, focus session.Focus) help.KeyMap {
	var local []key.Binding
	switch {
	case mode == session.ModeEnteringChangeSetName:
		return contextHelp{short: []key.Binding{k.Confirm, k.Cancel, k.ForceQuit}}
	case focus == session.FocusTopBar:
		local = []key.Binding{k.Toggle, k.Activate, k.Create, k.Abandon, k.ForceApply, k.Refresh}
	case focus == session.FocusChangeSetDropdown:
		local = []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
	case focus == session.FocusSchemaList:
		local = []key.Binding{k.Up, k.Down, withHelp(k.Confirm, "components")}
	case focus == session.FocusContentArea:
		local = []key.Binding{k.Up, k.Down, withHelp(k.Confirm, "inspect"), k.NewComponent, k.DeleteComponent}
	case focus == session.FocusLogPanel:
		local = []key.Binding{withHelp(k.Up, "scroll up"), withHelp(k.Down, "scroll down")}
	}
	global := []key.Binding{k.Tab, k.LogDown, k.LogUp, k.Quit}
	return contextHelp{
		short: append(local, global...),
		full: [][]key.Binding{
			local,
			{k.FocusWorkspace, k.FocusChangeSet, k.FocusSchemas, k.FocusContent, k.FocusLog},
			global,
		},
	}
}

func withHelp(b key.Binding, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(b.Keys()...), key.WithHelp(b.Help().Key, desc))
}

type contextHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h contextHelp) ShortHelp() []key.Binding { return h.short }

func (h contextHelp) FullHelp() [][]key.Binding {
	if h.full == nil {
		return [][]key.Binding{h.short}
	}
	return h.full
}
