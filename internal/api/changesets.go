package api

import (
	"context"
	"net/http"

	"situation/internal/model"
)

// WhoAmI fetches the authenticated identity and its workspace.
func (c *Client) WhoAmI(ctx context.Context) (model.Identity, []string, error) {
	var resp whoamiResponse
	diag, err := c.call(ctx, "WhoAmI", http.MethodGet, "/whoami", nil, &resp)
	if err != nil {
		return model.Identity{}, diag, err
	}
	return model.Identity{
		UserID:      resp.UserID,
		Email:       resp.UserEmail,
		WorkspaceID: resp.WorkspaceID,
	}, diag, nil
}

// ListChangeSets lists the change sets of a workspace in service order.
func (c *Client) ListChangeSets(ctx context.Context, ws string) ([]model.ChangeSetSummary, []string, error) {
	var resp listChangeSetsResponse
	diag, err := c.call(ctx, "ListChangeSets", http.MethodGet, workspacePath(ws), nil, &resp)
	if err != nil {
		return nil, diag, err
	}
	out := make([]model.ChangeSetSummary, 0, len(resp.ChangeSets))
	for _, cs := range resp.ChangeSets {
		out = append(out, cs.summary())
	}
	return out, diag, nil
}

// CreateChangeSet creates a change set with the given name.
func (c *Client) CreateChangeSet(ctx context.Context, ws, name string) (model.ChangeSetSummary, []string, error) {
	var resp changeSetEnvelope
	diag, err := c.call(ctx, "CreateChangeSet", http.MethodPost, workspacePath(ws),
		createChangeSetRequest{ChangeSetName: name}, &resp)
	if err != nil {
		return model.ChangeSetSummary{}, diag, err
	}
	return resp.ChangeSet.summary(), diag, nil
}

// GetChangeSet fetches one change set.
func (c *Client) GetChangeSet(ctx context.Context, ws, cs string) (model.ChangeSetDetail, []string, error) {
	var resp changeSetEnvelope
	diag, err := c.call(ctx, "GetChangeSet", http.MethodGet, workspacePath(ws, cs), nil, &resp)
	if err != nil {
		return model.ChangeSetDetail{}, diag, err
	}
	return resp.ChangeSet.detail(), diag, nil
}

// AbandonChangeSet deletes a change set and reports the service's success flag.
func (c *Client) AbandonChangeSet(ctx context.Context, ws, cs string) (bool, []string, error) {
	var resp abandonChangeSetResponse
	diag, err := c.call(ctx, "AbandonChangeSet", http.MethodDelete, workspacePath(ws, cs), nil, &resp)
	if err != nil {
		return false, diag, err
	}
	return resp.Success, diag, nil
}

// GetMergeStatus lists the actions applying the change set would run.
func (c *Client) GetMergeStatus(ctx context.Context, ws, cs string) (model.MergeStatus, []string, error) {
	var resp mergeStatusResponse
	diag, err := c.call(ctx, "GetMergeStatus", http.MethodGet, workspacePath(ws, cs, "merge_status"), nil, &resp)
	if err != nil {
		return model.MergeStatus{}, diag, err
	}
	return resp.toModel(), diag, nil
}

// ForceApply applies the change set. The success body is ignored.
func (c *Client) ForceApply(ctx context.Context, ws, cs string) ([]string, error) {
	return c.call(ctx, "ForceApply", http.MethodPost, workspacePath(ws, cs, "force_apply"), nil, nil)
}

// ListSchemas lists the schemas available in a change set, in service order.
func (c *Client) ListSchemas(ctx context.Context, ws, cs string) ([]model.SchemaSummary, []string, error) {
	var resp listSchemasResponse
	diag, err := c.call(ctx, "ListSchemas", http.MethodGet, workspacePath(ws, cs, "schema"), nil, &resp)
	if err != nil {
		return nil, diag, err
	}
	out := make([]model.SchemaSummary, 0, len(resp.Schemas))
	for _, s := range resp.Schemas {
		out = append(out, model.SchemaSummary{
			ID:        s.SchemaID,
			Name:      s.SchemaName,
			Category:  s.Category,
			Installed: s.Installed,
		})
	}
	return out, diag, nil
}
