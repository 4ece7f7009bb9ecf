package api

import "situation/internal/model"

// JSON shapes exchanged with the service. They are mapped onto
// internal/model types at the edge of each operation.

type tokenDetails struct {
	Iat         int64  `json:"iat"`
	Sub         string `json:"sub"`
	UserPK      string `json:"user_pk"`
	WorkspacePK string `json:"workspace_pk"`
}

type whoamiResponse struct {
	UserID      string       `json:"userId"`
	UserEmail   string       `json:"userEmail"`
	WorkspaceID string       `json:"workspaceId"`
	Token       tokenDetails `json:"token"`
}

type changeSetWire struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (w changeSetWire) summary() model.ChangeSetSummary {
	return model.ChangeSetSummary{ID: w.ID, Name: w.Name, Status: w.Status}
}

func (w changeSetWire) detail() model.ChangeSetDetail {
	return model.ChangeSetDetail{ID: w.ID, Name: w.Name, Status: w.Status}
}

type listChangeSetsResponse struct {
	ChangeSets []changeSetWire `json:"changeSets"`
}

type createChangeSetRequest struct {
	ChangeSetName string `json:"changeSetName"`
}

type changeSetEnvelope struct {
	ChangeSet changeSetWire `json:"changeSet"`
}

type abandonChangeSetResponse struct {
	Success bool `json:"success"`
}

type componentRefWire struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type actionWire struct {
	ID        string            `json:"id"`
	State     string            `json:"state"`
	Kind      string            `json:"kind"`
	Name      string            `json:"name"`
	Component *componentRefWire `json:"component,omitempty"`
}

type mergeStatusResponse struct {
	ChangeSet changeSetWire `json:"changeSet"`
	Actions   []actionWire  `json:"actions"`
}

func (w mergeStatusResponse) toModel() model.MergeStatus {
	out := model.MergeStatus{
		ChangeSet: w.ChangeSet.detail(),
		Actions:   make([]model.Action, 0, len(w.Actions)),
	}
	for _, a := range w.Actions {
		act := model.Action{ID: a.ID, State: a.State, Kind: a.Kind, Name: a.Name}
		if a.Component != nil {
			act.Component = &model.ComponentRef{ID: a.Component.ID, Name: a.Component.Name}
		}
		out.Actions = append(out.Actions, act)
	}
	return out
}

type schemaWire struct {
	SchemaID   string `json:"schemaId"`
	SchemaName string `json:"schemaName"`
	Category   string `json:"category"`
	Installed  bool   `json:"installed"`
}

type listSchemasResponse struct {
	Schemas []schemaWire `json:"schemas"`
}

type listComponentsResponse struct {
	Components []string `json:"components"`
}

type createComponentRequest struct {
	Domain      map[string]any `json:"domain"`
	Name        string         `json:"name"`
	SchemaName  string         `json:"schemaName"`
	Connections []any          `json:"connections"`
	ViewName    *string        `json:"viewName,omitempty"`
}

type createComponentResponse struct {
	ComponentID string `json:"componentId"`
}

type componentWire struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SchemaID string `json:"schemaId"`
}

type getComponentResponse struct {
	Component componentWire  `json:"component"`
	Domain    map[string]any `json:"domain"`
}

type updateComponentRequest struct {
	Domain map[string]any `json:"domain"`
	Name   *string        `json:"name,omitempty"`
}

type deleteComponentResponse struct {
	Status string `json:"status"`
}
