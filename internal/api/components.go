package api

import (
	"context"
	"net/http"

	"situation/internal/model"
)

// ListComponents lists the component ids of a change set. Names and schemas
// are unknown until each component is fetched.
func (c *Client) ListComponents(ctx context.Context, ws, cs string) ([]model.ComponentSummary, []string, error) {
	var resp listComponentsResponse
	diag, err := c.call(ctx, "ListComponents", http.MethodGet, workspacePath(ws, cs, "components"), nil, &resp)
	if err != nil {
		return nil, diag, err
	}
	out := make([]model.ComponentSummary, 0, len(resp.Components))
	for _, id := range resp.Components {
		out = append(out, model.ComponentSummary{ID: id})
	}
	return out, diag, nil
}

// CreateComponent creates a component and returns its id.
func (c *Client) CreateComponent(ctx context.Context, ws, cs string, req model.CreateComponentRequest) (string, []string, error) {
	body := createComponentRequest{
		Domain:      req.Domain,
		Name:        req.Name,
		SchemaName:  req.SchemaName,
		Connections: []any{},
	}
	if body.Domain == nil {
		body.Domain = map[string]any{}
	}
	if req.ViewName != "" {
		body.ViewName = &req.ViewName
	}
	var resp createComponentResponse
	diag, err := c.call(ctx, "CreateComponent", http.MethodPost, workspacePath(ws, cs, "components"), body, &resp)
	if err != nil {
		return "", diag, err
	}
	return resp.ComponentID, diag, nil
}

// GetComponent fetches one component with its domain properties.
func (c *Client) GetComponent(ctx context.Context, ws, cs, id string) (model.ComponentDetail, []string, error) {
	var resp getComponentResponse
	diag, err := c.call(ctx, "GetComponent", http.MethodGet, workspacePath(ws, cs, "components", id), nil, &resp)
	if err != nil {
		return model.ComponentDetail{}, diag, err
	}
	detail := model.ComponentDetail{
		ID:       resp.Component.ID,
		Name:     resp.Component.Name,
		SchemaID: resp.Component.SchemaID,
		Domain:   resp.Domain,
	}
	if detail.ID == "" {
		detail.ID = id
	}
	return detail, diag, nil
}

// UpdateComponent updates the name and domain of a component.
func (c *Client) UpdateComponent(ctx context.Context, ws, cs, id string, req model.UpdateComponentRequest) ([]string, error) {
	body := updateComponentRequest{Domain: req.Domain}
	if body.Domain == nil {
		body.Domain = map[string]any{}
	}
	if req.Name != "" {
		body.Name = &req.Name
	}
	return c.call(ctx, "UpdateComponent", http.MethodPut, workspacePath(ws, cs, "components", id), body, nil)
}

// DeleteComponent marks a component for deletion and returns the reported
// status, normally "MarkedForDeletion".
func (c *Client) DeleteComponent(ctx context.Context, ws, cs, id string) (string, []string, error) {
	var resp deleteComponentResponse
	diag, err := c.call(ctx, "DeleteComponent", http.MethodDelete, workspacePath(ws, cs, "components", id), nil, &resp)
	if err != nil {
		return "", diag, err
	}
	return resp.Status, diag, nil
}
