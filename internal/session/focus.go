package session

// Focus is the UI region that owns keyboard input. Exactly one is active.
type Focus int

const (
	FocusTopBar Focus = iota
	FocusSchemaList
	FocusContentArea
	FocusLogPanel
	FocusChangeSetDropdown
	FocusInput
)

func (f Focus) String() string {
	switch f {
	case FocusTopBar:
		return "TopBar"
	case FocusSchemaList:
		return "SchemaList"
	case FocusContentArea:
		return "ContentArea"
	case FocusLogPanel:
		return "LogPanel"
	case FocusChangeSetDropdown:
		return "ChangeSetDropdown"
	case FocusInput:
		return "Input"
	default:
		return "Unknown"
	}
}

// DropdownFocus is the trigger highlighted inside the top bar. It only
// matters while Focus is FocusTopBar.
type DropdownFocus int

const (
	DropdownWorkspace DropdownFocus = iota
	DropdownChangeSet
)

func (d DropdownFocus) String() string {
	switch d {
	case DropdownWorkspace:
		return "Workspace"
	case DropdownChangeSet:
		return "ChangeSet"
	default:
		return "Unknown"
	}
}

// Toggle returns the other top bar trigger.
func (d DropdownFocus) Toggle() DropdownFocus {
	if d == DropdownWorkspace {
		return DropdownChangeSet
	}
	return DropdownWorkspace
}

// TabOrder is the pane rotation for Tab in normal mode.
var TabOrder = []Focus{FocusTopBar, FocusSchemaList, FocusContentArea, FocusLogPanel}

// FocusRing tracks the focused pane and rotates it along an order.
type FocusRing struct {
	Current Focus
	Order   []Focus
}

// NewFocusRing starts at the top bar with the Tab order.
func NewFocusRing() *FocusRing {
	return &FocusRing{Current: FocusTopBar, Order: TabOrder}
}

// Next advances focus to the next pane in order. A focus that is not part of
// the order (dropdown, input) rotates back to the first pane.
func (f *FocusRing) Next() Focus {
	if len(f.Order) == 0 {
		return f.Current
	}
	idx := -1
	for i, id := range f.Order {
		if id == f.Current {
			idx = i
			break
		}
	}
	next := f.Order[0]
	if idx >= 0 {
		next = f.Order[(idx+1)%len(f.Order)]
	}
	f.Set(next)
	return f.Current
}

// Set moves focus to the given pane.
func (f *FocusRing) Set(to Focus) {
	f.Current = to
}
