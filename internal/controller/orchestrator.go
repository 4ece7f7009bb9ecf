package controller

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"situation/internal/api"
	"situation/internal/model"
	"situation/internal/session"
)

// step is one remote call of a cascade. run executes off the update loop and
// must not touch state; the outcome it returns is applied on the loop and
// yields the follow-up steps, which run before the rest of the cascade.
type step struct {
	label string
	run   func(ctx context.Context, svc Service) outcome
}

type outcome func(c *Controller) []step

// succeeded surfaces the diagnostic lines of a call followed by a summary.
func (c *Controller) succeeded(diag []string, line string) {
	for _, d := range diag {
		c.note(d)
	}
	c.note(line)
}

// failed appends exactly one line to the session log. The diagnostic lines
// of the failed exchange only go to the process log.
func (c *Controller) failed(what string, diag []string, err error) {
	c.logger.Warn("remote call failed", "call", what, "class", api.Classify(err), "err", err)
	for _, d := range diag {
		c.logger.Debug(d, "call", what)
	}
	c.note(fmt.Sprintf("Error %s: %s", what, api.Pretty(err)))
}

func label(cs model.ChangeSetSummary) string {
	if cs.Name != "" {
		return cs.Name
	}
	return cs.ID
}

func defaultComponentName(schema string) string {
	return fmt.Sprintf("%s-%s", schema, uuid.NewString()[:8])
}

// startupCascade: identity, change set list (selecting the first entry),
// then schemas and components for that entry.
func (c *Controller) startupCascade() []step {
	return []step{{
		label: "Fetching identity...",
		run: func(ctx context.Context, svc Service) outcome {
			id, diag, err := svc.WhoAmI(ctx)
			return func(c *Controller) []step {
				if err != nil {
					c.failed("fetching identity", diag, err)
					return nil
				}
				c.State.Identity = &id
				c.succeeded(diag, fmt.Sprintf("Logged in as %s (workspace %s)", id.Email, id.WorkspaceID))
				return []step{c.initialListStep(id.WorkspaceID)}
			}
		},
	}}
}

func (c *Controller) initialListStep(ws string) step {
	return step{
		label: "Fetching change sets...",
		run: func(ctx context.Context, svc Service) outcome {
			list, diag, err := svc.ListChangeSets(ctx, ws)
			return func(c *Controller) []step {
				if err != nil {
					c.failed("fetching change sets", diag, err)
					c.State.SelectIndex(session.NoSelection)
					return nil
				}
				c.State.Summaries = list
				c.State.SelectIndex(0)
				c.succeeded(diag, fmt.Sprintf("Found %d change sets.", len(list)))
				cs, ok := c.State.SelectedSummary()
				if !ok {
					return nil
				}
				return []step{c.schemasStep(ws, cs), c.componentsStep(ws, cs)}
			}
		},
	}
}

// selectionCascade re-fetches everything that depends on the selection.
// With nothing selected it clears the dependents instead.
func (c *Controller) selectionCascade() []step {
	ws := c.workspace()
	cs, ok := c.State.SelectedSummary()
	if !ok || ws == "" {
		c.State.ClearDependents()
		c.State.ClearSchemas()
		return nil
	}
	return []step{
		c.detailStep(ws, cs),
		c.mergeStatusStep(ws, cs),
		c.schemasStep(ws, cs),
		c.componentsStep(ws, cs),
	}
}

func (c *Controller) detailStep(ws string, cs model.ChangeSetSummary) step {
	return step{
		label: fmt.Sprintf("Fetching details for %s...", label(cs)),
		run: func(ctx context.Context, svc Service) outcome {
			d, diag, err := svc.GetChangeSet(ctx, ws, cs.ID)
			return func(c *Controller) []step {
				if err != nil {
					c.State.Detail = nil
					c.failed("fetching details for "+label(cs), diag, err)
					return nil
				}
				c.State.Detail = &d
				c.succeeded(diag, "Details fetched for "+label(cs))
				return nil
			}
		},
	}
}

func (c *Controller) mergeStatusStep(ws string, cs model.ChangeSetSummary) step {
	return step{
		label: fmt.Sprintf("Fetching merge status for %s...", label(cs)),
		run: func(ctx context.Context, svc Service) outcome {
			ms, diag, err := svc.GetMergeStatus(ctx, ws, cs.ID)
			return func(c *Controller) []step {
				if err != nil {
					c.State.MergeStatus = nil
					c.failed("fetching merge status for "+label(cs), diag, err)
					return nil
				}
				c.State.MergeStatus = &ms
				c.succeeded(diag, fmt.Sprintf("Merge status fetched for %s (%d actions)", label(cs), len(ms.Actions)))
				return nil
			}
		},
	}
}

func (c *Controller) schemasStep(ws string, cs model.ChangeSetSummary) step {
	return step{
		label: "Fetching schemas...",
		run: func(ctx context.Context, svc Service) outcome {
			schemas, diag, err := svc.ListSchemas(ctx, ws, cs.ID)
			return func(c *Controller) []step {
				if err != nil {
					c.State.ClearSchemas()
					c.failed("fetching schemas", diag, err)
					return nil
				}
				c.State.SetSchemas(schemas)
				c.succeeded(diag, fmt.Sprintf("Fetched %d schemas.", len(schemas)))
				return nil
			}
		},
	}
}

func (c *Controller) componentsStep(ws string, cs model.ChangeSetSummary) step {
	return step{
		label: fmt.Sprintf("Fetching components for %s...", label(cs)),
		run: func(ctx context.Context, svc Service) outcome {
			comps, diag, err := svc.ListComponents(ctx, ws, cs.ID)
			return func(c *Controller) []step {
				if err != nil {
					c.State.Components = nil
					c.State.ComponentCursor = 0
					c.failed("fetching components for "+label(cs), diag, err)
					return nil
				}
				c.State.SetComponents(comps)
				c.succeeded(diag, fmt.Sprintf("Fetched %d components for %s.", len(comps), label(cs)))
				return nil
			}
		},
	}
}

// refreshStep re-fetches the list, applies the preserve/clamp/none policy,
// optionally re-selects preferID, then runs the selection cascade. On
// failure the old list is kept but nothing stays selected.
func (c *Controller) refreshStep(ws, preferID string) step {
	return step{
		label: "Refreshing change sets...",
		run: func(ctx context.Context, svc Service) outcome {
			list, diag, err := svc.ListChangeSets(ctx, ws)
			return func(c *Controller) []step {
				if err != nil {
					c.State.SelectIndex(session.NoSelection)
					c.State.ClearSchemas()
					c.failed("refreshing change sets", diag, err)
					return nil
				}
				c.State.ApplyRefreshedList(list)
				if preferID != "" {
					c.State.SelectByID(preferID)
				}
				c.succeeded(diag, "Change set list refreshed.")
				return c.selectionCascade()
			}
		},
	}
}

func (c *Controller) createChangeSetStep(ws, name string) step {
	return step{
		label: fmt.Sprintf("Creating change set '%s'...", name),
		run: func(ctx context.Context, svc Service) outcome {
			cs, diag, err := svc.CreateChangeSet(ctx, ws, name)
			return func(c *Controller) []step {
				if err != nil {
					c.failed(fmt.Sprintf("creating change set '%s'", name), diag, err)
					return []step{c.refreshStep(ws, "")}
				}
				c.succeeded(diag, fmt.Sprintf("Created changeset '%s' (%s)", cs.Name, cs.ID))
				return []step{c.refreshStep(ws, cs.ID)}
			}
		},
	}
}

func (c *Controller) abandonStep(ws string, cs model.ChangeSetSummary) step {
	return step{
		label: fmt.Sprintf("Abandoning %s...", label(cs)),
		run: func(ctx context.Context, svc Service) outcome {
			ok, diag, err := svc.AbandonChangeSet(ctx, ws, cs.ID)
			return func(c *Controller) []step {
				c.State.Detail = nil
				c.State.MergeStatus = nil
				if err != nil {
					c.failed("abandoning "+label(cs), diag, err)
				} else {
					c.succeeded(diag, fmt.Sprintf("Abandoned changeset %s (Success: %t)", label(cs), ok))
				}
				return []step{c.refreshStep(ws, "")}
			}
		},
	}
}

func (c *Controller) forceApplyStep(ws string, cs model.ChangeSetSummary) step {
	return step{
		label: fmt.Sprintf("Force applying %s...", label(cs)),
		run: func(ctx context.Context, svc Service) outcome {
			diag, err := svc.ForceApply(ctx, ws, cs.ID)
			return func(c *Controller) []step {
				c.State.Detail = nil
				c.State.MergeStatus = nil
				if err != nil {
					c.failed("force applying "+label(cs), diag, err)
				} else {
					c.succeeded(diag, "Force apply requested for "+label(cs))
				}
				return []step{c.refreshStep(ws, "")}
			}
		},
	}
}

func (c *Controller) getComponentStep(ws string, cs model.ChangeSetSummary, comp model.ComponentSummary) step {
	return step{
		label: fmt.Sprintf("Fetching component %s...", comp.DisplayName()),
		run: func(ctx context.Context, svc Service) outcome {
			d, diag, err := svc.GetComponent(ctx, ws, cs.ID, comp.ID)
			return func(c *Controller) []step {
				if err != nil {
					c.State.ComponentDetail = nil
					c.failed("fetching component "+comp.DisplayName(), diag, err)
					return nil
				}
				c.State.ResolveComponent(d)
				resolved := model.ComponentSummary{ID: d.ID, Name: d.Name, SchemaID: d.SchemaID}
				line := "Fetched component " + resolved.DisplayName()
				if schema := c.State.SchemaNameFor(resolved); schema != "" {
					line += " (" + schema + ")"
				}
				c.succeeded(diag, line)
				return nil
			}
		},
	}
}

func (c *Controller) createComponentStep(ws string, cs model.ChangeSetSummary, schema model.SchemaSummary) step {
	name := c.newName(schema.Name)
	return step{
		label: fmt.Sprintf("Creating %s component...", schema.Name),
		run: func(ctx context.Context, svc Service) outcome {
			id, diag, err := svc.CreateComponent(ctx, ws, cs.ID, model.CreateComponentRequest{
				Name:       name,
				SchemaName: schema.Name,
				Domain:     map[string]any{},
			})
			return func(c *Controller) []step {
				if err != nil {
					c.failed(fmt.Sprintf("creating component '%s'", name), diag, err)
					return nil
				}
				c.succeeded(diag, fmt.Sprintf("Created component '%s' (%s)", name, id))
				return []step{c.componentsStep(ws, cs)}
			}
		},
	}
}

func (c *Controller) deleteComponentStep(ws string, cs model.ChangeSetSummary, comp model.ComponentSummary) step {
	return step{
		label: fmt.Sprintf("Deleting component %s...", comp.DisplayName()),
		run: func(ctx context.Context, svc Service) outcome {
			status, diag, err := svc.DeleteComponent(ctx, ws, cs.ID, comp.ID)
			return func(c *Controller) []step {
				if err != nil {
					c.failed("deleting component "+comp.DisplayName(), diag, err)
					return nil
				}
				if c.State.ComponentDetail != nil && c.State.ComponentDetail.ID == comp.ID {
					c.State.ComponentDetail = nil
				}
				c.succeeded(diag, fmt.Sprintf("Deleted component %s (%s)", comp.DisplayName(), status))
				return []step{c.componentsStep(ws, cs)}
			}
		},
	}
}
