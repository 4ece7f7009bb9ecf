// Package model holds the domain types shared by the api client, the session
// state and the renderer. None of them carry wire tags; internal/api maps
// JSON payloads onto them.
package model

// Identity is the authenticated user and the workspace they operate in.
type Identity struct {
	UserID      string
	Email       string
	WorkspaceID string
}

// Change set status values reported by the service.
const (
	StatusDraft      = "Draft"
	StatusApplied    = "Applied"
	StatusAbandoned  = "Abandoned"
	StatusFailed     = "Failed"
	StatusInProgress = "InProgress"
)

// ChangeSetSummary is one entry of the workspace change set list.
type ChangeSetSummary struct {
	ID     string
	Name   string
	Status string
}

// ChangeSetDetail is the full view of a single change set.
type ChangeSetDetail struct {
	ID     string
	Name   string
	Status string
}

// ComponentRef names the component an action operates on.
type ComponentRef struct {
	ID   string
	Name string
}

// Action is one pending operation that applying a change set would run.
type Action struct {
	ID        string
	State     string
	Kind      string
	Name      string
	Component *ComponentRef
}

// MergeStatus lists the actions a change set would apply.
type MergeStatus struct {
	ChangeSet ChangeSetDetail
	Actions   []Action
}

// SchemaSummary is a template components are instantiated from.
type SchemaSummary struct {
	ID        string
	Name      string
	Category  string
	Installed bool
}

// ComponentSummary is a component of the selected change set. The list
// endpoint only returns ids; Name and SchemaID are filled in once the
// component has been fetched individually.
type ComponentSummary struct {
	ID       string
	Name     string
	SchemaID string
}

// DisplayName returns the component name, falling back to its id.
func (c ComponentSummary) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// ComponentDetail is the result of fetching a single component.
type ComponentDetail struct {
	ID       string
	Name     string
	SchemaID string
	Domain   map[string]any
}

// CreateComponentRequest is the payload for creating a component.
type CreateComponentRequest struct {
	Name       string
	SchemaName string
	Domain     map[string]any
	ViewName   string
}

// UpdateComponentRequest is the payload for updating a component. An empty
// Name leaves the name unchanged.
type UpdateComponentRequest struct {
	Name   string
	Domain map[string]any
}
