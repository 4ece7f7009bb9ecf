// Package controller owns the session's state transitions. It maps key
// events to state mutations and remote-call cascades, runs those cascades
// one call at a time and folds each result back into session.State.
package controller

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"situation/internal/model"
	"situation/internal/session"
)

// Service is the remote change-management service. *api.Client implements
// it. Every call returns the diagnostic lines of the exchange alongside its
// result.
type Service interface {
	WhoAmI(ctx context.Context) (model.Identity, []string, error)
	ListChangeSets(ctx context.Context, ws string) ([]model.ChangeSetSummary, []string, error)
	CreateChangeSet(ctx context.Context, ws, name string) (model.ChangeSetSummary, []string, error)
	GetChangeSet(ctx context.Context, ws, cs string) (model.ChangeSetDetail, []string, error)
	AbandonChangeSet(ctx context.Context, ws, cs string) (bool, []string, error)
	GetMergeStatus(ctx context.Context, ws, cs string) (model.MergeStatus, []string, error)
	ForceApply(ctx context.Context, ws, cs string) ([]string, error)
	ListSchemas(ctx context.Context, ws, cs string) ([]model.SchemaSummary, []string, error)
	ListComponents(ctx context.Context, ws, cs string) ([]model.ComponentSummary, []string, error)
	CreateComponent(ctx context.Context, ws, cs string, req model.CreateComponentRequest) (string, []string, error)
	GetComponent(ctx context.Context, ws, cs, id string) (model.ComponentDetail, []string, error)
	DeleteComponent(ctx context.Context, ws, cs, id string) (string, []string, error)
}

// Controller is the single mutator of a session.
type Controller struct {
	State *session.State
	Keys  KeyMap

	svc    Service
	ctx    context.Context
	logger *log.Logger

	pending []step
	queued  []tea.KeyMsg
	busy    bool

	// newName generates names for components created from a schema.
	newName func(schema string) string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the process logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithContext sets the context passed to every remote call.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// WithComponentNamer overrides how new component names are generated.
func WithComponentNamer(fn func(schema string) string) Option {
	return func(c *Controller) { c.newName = fn }
}

// New creates a controller over state backed by svc.
func New(state *session.State, svc Service, opts ...Option) *Controller {
	c := &Controller{
		State:   state,
		Keys:    DefaultKeyMap(),
		svc:     svc,
		ctx:     context.Background(),
		logger:  log.New(io.Discard),
		newName: defaultComponentName,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Busy reports whether a cascade is in flight.
func (c *Controller) Busy() bool {
	return c.busy
}

// Queued returns the number of key events waiting for the cascade to finish.
func (c *Controller) Queued() int {
	return len(c.queued)
}

func (c *Controller) note(line string) {
	c.State.AppendLog(line)
}

func (c *Controller) workspace() string {
	return c.State.WorkspaceID()
}
