// Package session holds everything the terminal UI shows: identity, the
// change set list and its selection, the data fetched for the selection, the
// log and the interaction mode. The controller is its only mutator.
package session

import (
	"sort"
	"strings"

	"situation/internal/model"
)

// NoSelection is the value of State.Selected when nothing is selected.
const NoSelection = -1

// DefaultLogHeight is the number of log lines visible in the log panel.
const DefaultLogHeight = 10

// State is the session snapshot the renderer draws from.
type State struct {
	Identity *model.Identity

	Summaries []model.ChangeSetSummary
	Selected  int

	// Populated only while a summary is selected.
	Detail          *model.ChangeSetDetail
	MergeStatus     *model.MergeStatus
	Components      []model.ComponentSummary
	ComponentCursor int
	ComponentDetail *model.ComponentDetail

	Schemas      []model.SchemaSummary
	SchemaCursor int

	Log       *LogBuffer
	LogHeight int

	Mode           Mode
	Focus          *FocusRing
	DropdownFocus  DropdownFocus
	DropdownCursor int
	InputBuffer    string

	// CurrentAction labels the remote call in flight, "" when idle.
	CurrentAction string
}

// New returns an empty session with nothing selected and focus on the top bar.
func New(logHeight, logMaxLines int) *State {
	if logHeight <= 0 {
		logHeight = DefaultLogHeight
	}
	return &State{
		Selected:      NoSelection,
		Log:           NewLogBuffer(logMaxLines),
		LogHeight:     logHeight,
		Mode:          ModeNormal,
		Focus:         NewFocusRing(),
		DropdownFocus: DropdownChangeSet,
	}
}

// AppendLog appends a line to the log and snaps it to the bottom. Embedded
// line breaks are collapsed so one entry is always one row.
func (s *State) AppendLog(line string) {
	if strings.ContainsAny(line, "\r\n") {
		line = strings.Join(strings.Fields(line), " ")
	}
	s.Log.AppendAutoScroll(line, s.LogHeight)
}

// SelectedSummary returns the selected change set, if any.
func (s *State) SelectedSummary() (model.ChangeSetSummary, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Summaries) {
		return model.ChangeSetSummary{}, false
	}
	return s.Summaries[s.Selected], true
}

// SelectedID returns the id of the selected change set or "".
func (s *State) SelectedID() string {
	cs, ok := s.SelectedSummary()
	if !ok {
		return ""
	}
	return cs.ID
}

// WorkspaceID returns the workspace of the identity or "".
func (s *State) WorkspaceID() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.WorkspaceID
}

// ClearDependents resets everything fetched for the selected change set.
func (s *State) ClearDependents() {
	s.Detail = nil
	s.MergeStatus = nil
	s.Components = nil
	s.ComponentCursor = 0
	s.ComponentDetail = nil
}

// SelectIndex selects the summary at i, or nothing when i is out of range,
// and clears the dependent entities.
func (s *State) SelectIndex(i int) {
	if i < 0 || i >= len(s.Summaries) {
		i = NoSelection
	}
	s.Selected = i
	s.ClearDependents()
}

// SelectByID selects the summary with the given id. It reports whether the id
// was found; the selection is untouched otherwise.
func (s *State) SelectByID(id string) bool {
	for i, cs := range s.Summaries {
		if cs.ID == id {
			s.SelectIndex(i)
			return true
		}
	}
	return false
}

// ApplyRefreshedList replaces the summary list after a re-fetch. The previous
// index is kept while still in range, clamped to the last entry otherwise,
// and dropped when the list is empty. Dependents are always cleared.
func (s *State) ApplyRefreshedList(list []model.ChangeSetSummary) {
	prev := s.Selected
	s.Summaries = list
	switch {
	case len(list) == 0:
		s.SelectIndex(NoSelection)
	case prev < 0:
		s.SelectIndex(0)
	case prev >= len(list):
		s.SelectIndex(len(list) - 1)
	default:
		s.SelectIndex(prev)
	}
}

// SetSchemas stores the schema list sorted by category, then name.
func (s *State) SetSchemas(schemas []model.SchemaSummary) {
	sorted := make([]model.SchemaSummary, len(schemas))
	copy(sorted, schemas)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Category != sorted[j].Category {
			return sorted[i].Category < sorted[j].Category
		}
		return sorted[i].Name < sorted[j].Name
	})
	s.Schemas = sorted
	if s.SchemaCursor >= len(sorted) {
		s.SchemaCursor = 0
	}
}

// ClearSchemas drops the schema list.
func (s *State) ClearSchemas() {
	s.Schemas = nil
	s.SchemaCursor = 0
}

// SetComponents stores the component list, keeping names already resolved
// for ids that are still present.
func (s *State) SetComponents(components []model.ComponentSummary) {
	known := make(map[string]model.ComponentSummary, len(s.Components))
	for _, c := range s.Components {
		known[c.ID] = c
	}
	out := make([]model.ComponentSummary, len(components))
	for i, c := range components {
		if prev, ok := known[c.ID]; ok && c.Name == "" {
			c = prev
		}
		out[i] = c
	}
	s.Components = out
	if s.ComponentCursor >= len(out) {
		s.ComponentCursor = max(0, len(out)-1)
	}
}

// ResolveComponent records the name and schema learned from fetching a
// single component.
func (s *State) ResolveComponent(detail model.ComponentDetail) {
	s.ComponentDetail = &detail
	for i := range s.Components {
		if s.Components[i].ID == detail.ID {
			s.Components[i].Name = detail.Name
			s.Components[i].SchemaID = detail.SchemaID
		}
	}
}

// SchemaByID looks a schema up by id.
func (s *State) SchemaByID(id string) (model.SchemaSummary, bool) {
	for _, sc := range s.Schemas {
		if sc.ID == id {
			return sc, true
		}
	}
	return model.SchemaSummary{}, false
}

// SchemaNameFor resolves the schema name of a component, "" when unknown.
func (s *State) SchemaNameFor(c model.ComponentSummary) string {
	if c.SchemaID == "" {
		return ""
	}
	sc, ok := s.SchemaByID(c.SchemaID)
	if !ok {
		return ""
	}
	return sc.Name
}

// CurrentSchema returns the schema under the cursor.
func (s *State) CurrentSchema() (model.SchemaSummary, bool) {
	if s.SchemaCursor < 0 || s.SchemaCursor >= len(s.Schemas) {
		return model.SchemaSummary{}, false
	}
	return s.Schemas[s.SchemaCursor], true
}

// CurrentComponent returns the component under the cursor.
func (s *State) CurrentComponent() (model.ComponentSummary, bool) {
	if s.ComponentCursor < 0 || s.ComponentCursor >= len(s.Components) {
		return model.ComponentSummary{}, false
	}
	return s.Components[s.ComponentCursor], true
}

// MoveSchemaCursor moves the schema cursor by delta, wrapping at both ends.
func (s *State) MoveSchemaCursor(delta int) bool {
	if len(s.Schemas) == 0 {
		return false
	}
	s.SchemaCursor = wrap(s.SchemaCursor+delta, len(s.Schemas))
	return true
}

// MoveComponentCursor moves the component cursor by delta, wrapping.
func (s *State) MoveComponentCursor(delta int) bool {
	if len(s.Components) == 0 {
		return false
	}
	s.ComponentCursor = wrap(s.ComponentCursor+delta, len(s.Components))
	return true
}

// MoveDropdownCursor moves the dropdown highlight by delta, wrapping.
func (s *State) MoveDropdownCursor(delta int) {
	if len(s.Summaries) == 0 {
		s.DropdownCursor = 0
		return
	}
	s.DropdownCursor = wrap(s.DropdownCursor+delta, len(s.Summaries))
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
