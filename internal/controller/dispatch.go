package controller

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"situation/internal/model"
	"situation/internal/session"
)

// Dispatch resolves one key event against the current mode and focus. State
// mutations that need no remote call are applied immediately; the returned
// steps are the cascade to run, in order. quit asks the session to end.
//
// Resolution order: ctrl+c, then Mode, then global keys, then Focus.
func (c *Controller) Dispatch(msg tea.KeyMsg) (steps []step, quit bool) {
	s := c.State
	k := c.Keys

	if key.Matches(msg, k.ForceQuit) {
		return nil, true
	}
	if s.Mode == session.ModeEnteringChangeSetName {
		return c.dispatchInput(msg), false
	}

	switch {
	case key.Matches(msg, k.Quit):
		return nil, true
	case key.Matches(msg, k.LogUp):
		s.Log.ScrollUp()
		return nil, false
	case key.Matches(msg, k.LogDown):
		s.Log.ScrollDown(s.LogHeight)
		return nil, false
	case key.Matches(msg, k.FocusWorkspace):
		s.Focus.Set(session.FocusTopBar)
		s.DropdownFocus = session.DropdownWorkspace
		return nil, false
	case key.Matches(msg, k.FocusChangeSet):
		s.Focus.Set(session.FocusTopBar)
		s.DropdownFocus = session.DropdownChangeSet
		return nil, false
	case key.Matches(msg, k.FocusSchemas):
		s.Focus.Set(session.FocusSchemaList)
		return nil, false
	case key.Matches(msg, k.FocusContent):
		s.Focus.Set(session.FocusContentArea)
		return nil, false
	case key.Matches(msg, k.FocusLog):
		s.Focus.Set(session.FocusLogPanel)
		return nil, false
	}

	if s.Focus.Current == session.FocusChangeSetDropdown {
		return c.dispatchDropdown(msg), false
	}
	if key.Matches(msg, k.Tab) {
		s.Focus.Next()
		return nil, false
	}

	switch s.Focus.Current {
	case session.FocusTopBar:
		return c.dispatchTopBar(msg), false
	case session.FocusSchemaList:
		return c.dispatchSchemaList(msg), false
	case session.FocusContentArea:
		return c.dispatchContentArea(msg), false
	case session.FocusLogPanel:
		c.dispatchLogPanel(msg)
	}
	return nil, false
}

func (c *Controller) dispatchInput(msg tea.KeyMsg) []step {
	s := c.State
	switch {
	case key.Matches(msg, c.Keys.Confirm):
		name := strings.TrimSpace(s.InputBuffer)
		c.leaveInput()
		if name == "" {
			c.note("Change set name cannot be empty.")
			return nil
		}
		ws := c.workspace()
		if ws == "" {
			c.note("Cannot create change set: no workspace available.")
			return nil
		}
		return []step{c.createChangeSetStep(ws, name)}
	case key.Matches(msg, c.Keys.Cancel):
		c.leaveInput()
		c.note("Change set creation cancelled.")
	case key.Matches(msg, c.Keys.Backspace):
		if len(s.InputBuffer) > 0 {
			_, size := utf8.DecodeLastRuneInString(s.InputBuffer)
			s.InputBuffer = s.InputBuffer[:len(s.InputBuffer)-size]
		}
	case msg.Type == tea.KeySpace:
		s.InputBuffer += " "
	case msg.Type == tea.KeyRunes && !msg.Alt:
		s.InputBuffer += string(msg.Runes)
	}
	return nil
}

func (c *Controller) leaveInput() {
	c.State.Mode = session.ModeNormal
	c.State.InputBuffer = ""
	c.State.Focus.Set(session.FocusTopBar)
}

func (c *Controller) dispatchDropdown(msg tea.KeyMsg) []step {
	s := c.State
	switch {
	case key.Matches(msg, c.Keys.Up):
		s.MoveDropdownCursor(-1)
	case key.Matches(msg, c.Keys.Down):
		s.MoveDropdownCursor(1)
	case key.Matches(msg, c.Keys.Confirm):
		s.Focus.Set(session.FocusTopBar)
		if s.DropdownCursor < 0 || s.DropdownCursor >= len(s.Summaries) {
			return nil
		}
		s.SelectIndex(s.DropdownCursor)
		cs, _ := s.SelectedSummary()
		c.note("Selected change set: " + label(cs))
		return c.selectionCascade()
	case key.Matches(msg, c.Keys.Cancel), key.Matches(msg, c.Keys.Tab):
		s.Focus.Set(session.FocusTopBar)
	}
	return nil
}

func (c *Controller) dispatchTopBar(msg tea.KeyMsg) []step {
	s := c.State
	switch {
	case key.Matches(msg, c.Keys.Toggle):
		s.DropdownFocus = s.DropdownFocus.Toggle()
	case key.Matches(msg, c.Keys.Activate):
		if s.DropdownFocus == session.DropdownWorkspace {
			c.note("Workspace selection not implemented.")
			return nil
		}
		if len(s.Summaries) == 0 {
			c.note("No change sets to select.")
			return nil
		}
		s.DropdownCursor = max(s.Selected, 0)
		s.Focus.Set(session.FocusChangeSetDropdown)
	case key.Matches(msg, c.Keys.Create):
		s.Mode = session.ModeEnteringChangeSetName
		s.InputBuffer = ""
		s.Focus.Set(session.FocusInput)
	case key.Matches(msg, c.Keys.Abandon):
		return c.withSelection("abandon", c.abandonStep)
	case key.Matches(msg, c.Keys.ForceApply):
		return c.withSelection("force apply", c.forceApplyStep)
	case key.Matches(msg, c.Keys.Refresh):
		ws := c.workspace()
		if ws == "" {
			c.note("Cannot refresh change sets: no workspace available.")
			return nil
		}
		return []step{c.refreshStep(ws, "")}
	}
	return nil
}

func (c *Controller) dispatchSchemaList(msg tea.KeyMsg) []step {
	s := c.State
	switch {
	case key.Matches(msg, c.Keys.Up), key.Matches(msg, c.Keys.Down):
		delta := 1
		if key.Matches(msg, c.Keys.Up) {
			delta = -1
		}
		if !s.MoveSchemaCursor(delta) {
			return nil
		}
		sc, _ := s.CurrentSchema()
		c.note(fmt.Sprintf("Selected schema: %s (%s)", sc.Name, sc.ID))
	case key.Matches(msg, c.Keys.Confirm):
		return c.withSelection("fetch components", c.componentsStep)
	}
	return nil
}

func (c *Controller) dispatchContentArea(msg tea.KeyMsg) []step {
	s := c.State
	switch {
	case key.Matches(msg, c.Keys.Up):
		s.MoveComponentCursor(-1)
	case key.Matches(msg, c.Keys.Down):
		s.MoveComponentCursor(1)
	case key.Matches(msg, c.Keys.Confirm):
		comp, ok := s.CurrentComponent()
		if !ok {
			c.note("No component selected.")
			return nil
		}
		return c.withSelection("fetch component", func(ws string, cs model.ChangeSetSummary) step {
			return c.getComponentStep(ws, cs, comp)
		})
	case key.Matches(msg, c.Keys.NewComponent):
		schema, ok := s.CurrentSchema()
		if !ok {
			c.note("No schema selected to create a component from.")
			return nil
		}
		return c.withSelection("create component", func(ws string, cs model.ChangeSetSummary) step {
			return c.createComponentStep(ws, cs, schema)
		})
	case key.Matches(msg, c.Keys.DeleteComponent):
		comp, ok := s.CurrentComponent()
		if !ok {
			c.note("No component selected.")
			return nil
		}
		return c.withSelection("delete component", func(ws string, cs model.ChangeSetSummary) step {
			return c.deleteComponentStep(ws, cs, comp)
		})
	}
	return nil
}

func (c *Controller) dispatchLogPanel(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, c.Keys.Up):
		c.State.Log.ScrollUp()
	case key.Matches(msg, c.Keys.Down):
		c.State.Log.ScrollDown(c.State.LogHeight)
	}
}

// withSelection builds a one-step cascade against the selected change set,
// logging why nothing happens when there is no selection or workspace.
func (c *Controller) withSelection(what string, build func(ws string, cs model.ChangeSetSummary) step) []step {
	ws := c.workspace()
	if ws == "" {
		c.note(fmt.Sprintf("Cannot %s: no workspace available.", what))
		return nil
	}
	cs, ok := c.State.SelectedSummary()
	if !ok {
		c.note(fmt.Sprintf("Cannot %s: no change set selected.", what))
		return nil
	}
	return []step{build(ws, cs)}
}
