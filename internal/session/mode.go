package session

// Mode is the interaction mode. It is orthogonal to Focus: the dispatcher
// resolves a key against Mode first.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEnteringChangeSetName
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeEnteringChangeSetName:
		return "EnteringChangeSetName"
	default:
		return "Unknown"
	}
}
