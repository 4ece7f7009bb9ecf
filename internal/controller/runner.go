package controller

import (
	tea "github.com/charmbracelet/bubbletea"
)

// stepDoneMsg carries the outcome of one remote call back to the update loop.
type stepDoneMsg struct {
	apply outcome
}

// Start returns the command that runs the startup cascade.
func (c *Controller) Start() tea.Cmd {
	return c.begin(c.startupCascade())
}

// Update folds a message into the session. It handles key events and the
// completion of remote calls; other messages are ignored. While a cascade is
// in flight key events are queued and replayed in order once it finishes,
// so exactly one dispatch is ever in progress. ctrl+c is never queued.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if c.busy {
			if msg.String() == "ctrl+c" {
				return tea.Quit
			}
			c.queued = append(c.queued, msg)
			return nil
		}
		return c.handleKey(msg)
	case stepDoneMsg:
		follow := msg.apply(c)
		c.pending = append(follow, c.pending...)
		return c.next()
	}
	return nil
}

func (c *Controller) handleKey(msg tea.KeyMsg) tea.Cmd {
	steps, quit := c.Dispatch(msg)
	if quit {
		c.logger.Info("quit requested", "key", msg.String())
		return tea.Quit
	}
	if len(steps) == 0 {
		return nil
	}
	c.logger.Debug("dispatching cascade", "key", msg.String(), "focus", c.State.Focus.Current, "steps", len(steps))
	return c.begin(steps)
}

func (c *Controller) begin(steps []step) tea.Cmd {
	c.pending = steps
	return c.next()
}

// next issues the next pending call. With the cascade drained it replays
// queued keys until one of them starts a new cascade or quits.
func (c *Controller) next() tea.Cmd {
	if len(c.pending) == 0 {
		c.busy = false
		c.State.CurrentAction = ""
		for len(c.queued) > 0 {
			msg := c.queued[0]
			c.queued = c.queued[1:]
			if cmd := c.handleKey(msg); cmd != nil {
				return cmd
			}
		}
		return nil
	}

	s := c.pending[0]
	c.pending = c.pending[1:]
	c.busy = true
	c.State.CurrentAction = s.label
	ctx, svc := c.ctx, c.svc
	return func() tea.Msg {
		return stepDoneMsg{apply: s.run(ctx, svc)}
	}
}

// RunSync drives steps to completion on the calling goroutine, applying each
// outcome before the next call starts. It is the blocking counterpart of the
// tea.Cmd chain and shares its ordering.
func (c *Controller) RunSync(steps []step) {
	pending := steps
	for len(pending) > 0 {
		s := pending[0]
		pending = pending[1:]
		c.State.CurrentAction = s.label
		follow := s.run(c.ctx, c.svc)(c)
		pending = append(follow, pending...)
	}
	c.State.CurrentAction = ""
}

// StartSync runs the startup cascade synchronously.
func (c *Controller) StartSync() {
	c.RunSync(c.startupCascade())
}

// PressSync dispatches one key and runs its cascade synchronously. It
// reports whether the key asked to quit.
func (c *Controller) PressSync(msg tea.KeyMsg) bool {
	steps, quit := c.Dispatch(msg)
	if quit {
		return true
	}
	c.RunSync(steps)
	return false
}
