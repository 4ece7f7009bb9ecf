// Package ui draws the session with Bubble Tea and lipgloss.
//
// Layout, top to bottom:
//   - top bar: workspace trigger, change set trigger, user email
//   - schema list (left) and details pane (right)
//   - log panel, titled with the remote call in flight
//   - change set name input, only while one is being entered
//   - short help for the focused pane
//
// The change set dropdown is drawn over the frame below its trigger.
// Rendering reads session.State and never mutates it.
package ui
