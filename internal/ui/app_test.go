package ui

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"situation/internal/api"
	"situation/internal/config"
	"situation/internal/controller"
	"situation/internal/model"
	"situation/internal/session"
)

func testState() *session.State {
	s := session.New(5, 0)
	s.Identity = &model.Identity{UserID: "u1", Email: "dev@example.com", WorkspaceID: "ws1"}
	s.Summaries = []model.ChangeSetSummary{
		{ID: "a", Name: "alpha", Status: model.StatusDraft},
		{ID: "b", Name: "beta", Status: model.StatusApplied},
	}
	s.Selected = 0
	return s
}

func testApp(s *session.State) *App {
	a := NewApp(controller.New(s, nil))
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return a
}

func assertFits(t *testing.T, frame string, width int) {
	t.Helper()
	for i, l := range strings.Split(frame, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(l), width, "line %d too wide: %q", i, l)
	}
}

func TestTopBar(t *testing.T) {
	s := testState()
	bar := renderTopBar(s, 120)
	assert.Contains(t, bar, "Workspace: ws1")
	assert.Contains(t, bar, "Change Set: alpha (Draft) ▶")
	assert.Contains(t, bar, "dev@example.com")
	assert.Equal(t, 120, lipgloss.Width(bar))

	s.Identity = nil
	s.Selected = session.NoSelection
	bar = renderTopBar(s, 120)
	assert.Contains(t, bar, "Workspace: Loading...")
	assert.Contains(t, bar, "Select Change Set")
}

func TestViewShowsKeybindingsWithoutDetail(t *testing.T) {
	a := testApp(testState())
	frame := a.View()
	assert.Contains(t, frame, "Keybindings")
	assert.Contains(t, frame, "create change set")
	assert.Contains(t, frame, "No schemas loaded.")
	assertFits(t, frame, 120)
}

func TestViewDetailAndComponents(t *testing.T) {
	s := testState()
	s.Detail = &model.ChangeSetDetail{ID: "a", Name: "alpha", Status: model.StatusDraft}
	s.MergeStatus = &model.MergeStatus{Actions: []model.Action{{
		Kind: "Create", State: "Queued", Name: "create",
		Component: &model.ComponentRef{ID: "c1", Name: "home-region"},
	}}}
	s.SetSchemas([]model.SchemaSummary{
		{ID: "s2", Name: "VPC", Category: "AWS EC2", Installed: true},
		{ID: "s1", Name: "Region", Category: "AWS", Installed: true},
	})
	s.SetComponents([]model.ComponentSummary{{ID: "c1"}})
	s.ResolveComponent(model.ComponentDetail{
		ID: "c1", Name: "home-region", SchemaID: "s1",
		Domain: map[string]any{"region": "us-east-1"},
	})

	frame := testApp(s).View()
	for _, want := range []string{
		"Change Set: alpha (a)",
		"Status: Draft",
		"[Create] Queued create - home-region (c1)",
		"AWS EC2",
		"> Region",
		"> home-region [Region]",
		"Component: home-region (c1)",
		"region: us-east-1",
	} {
		assert.Contains(t, frame, want)
	}
	assert.NotContains(t, frame, "Keybindings")
	assertFits(t, frame, 120)
}

func TestViewMergeStatusUnavailable(t *testing.T) {
	s := testState()
	s.Detail = &model.ChangeSetDetail{ID: "a", Name: "alpha", Status: model.StatusDraft}
	frame := testApp(s).View()
	assert.Contains(t, frame, "Merge status loading or unavailable.")
}

func TestViewDropdownOverlay(t *testing.T) {
	s := testState()
	s.Focus.Set(session.FocusChangeSetDropdown)
	s.DropdownCursor = 1

	frame := testApp(s).View()
	assert.Contains(t, frame, "Select Change Set (Enter/Esc)")
	assert.Contains(t, frame, "> beta (Applied) - b")
	assert.Contains(t, frame, "  alpha (Draft) - a")
	assert.Contains(t, frame, "▼")
	assertFits(t, frame, 120)
}

func TestViewInputLine(t *testing.T) {
	s := testState()
	a := testApp(s)
	s.Mode = session.ModeEnteringChangeSetName
	s.Focus.Set(session.FocusInput)
	s.InputBuffer = "my change"
	a.syncInput()

	frame := a.View()
	assert.Contains(t, frame, "Enter Change Set Name (Esc: Cancel, Enter: Create):")
	assert.Contains(t, frame, "my change")
}

func TestLogPanelFollowsOffset(t *testing.T) {
	s := testState()
	for i := 0; i < 12; i++ {
		s.AppendLog(strings.Repeat("x", i+1))
	}
	s.CurrentAction = "Fetching schemas..."
	p := NewLogPanel()
	p.SetSize(60, s.LogHeight)

	out := p.View(s, "")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 1+s.LogHeight)
	assert.Contains(t, lines[0], "[Fetching schemas...]")
	assert.Equal(t, strings.Repeat("x", 8), strings.TrimSpace(lines[1]))
	assert.Equal(t, strings.Repeat("x", 12), strings.TrimSpace(lines[5]))

	s.Log.ScrollUp()
	s.Log.ScrollUp()
	out = p.View(s, "")
	assert.Equal(t, strings.Repeat("x", 6), strings.TrimSpace(strings.Split(out, "\n")[1]))
}

func TestLogPanelShowsLatestAfterMultilineError(t *testing.T) {
	s := session.New(5, 0)
	s.AppendLog("Error fetching change sets: status 502: <html>\n<p>a</p>\n<p>b</p>\n<p>c</p>\n<p>d</p>\n</html>")
	s.AppendLog("latest line")
	p := NewLogPanel()
	p.SetSize(120, s.LogHeight)

	lines := strings.Split(p.View(s, ""), "\n")
	require.Len(t, lines, 1+s.LogHeight)
	assert.Contains(t, lines[1], "<html> <p>a</p>")
	assert.Equal(t, "latest line", strings.TrimSpace(lines[2]))
}

func TestOverlay(t *testing.T) {
	bg := "aaaaaa\nbbbbbb\ncccccc"
	got := overlay(bg, "XY\nZW", 2, 1)
	assert.Equal(t, "aaaaaa\nbbXYbb\nccZWcc", got)

	// Rows past the background are dropped.
	got = overlay("ab", "X\nY", 0, 0)
	assert.Equal(t, "Xb", got)
}

// newServer serves a one-change-set workspace.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	routes := map[string]string{
		"GET /whoami":                            `{"userId":"u1","userEmail":"dev@example.com","workspaceId":"ws1"}`,
		"GET /v1/w/ws1/change-sets":              `{"changeSets":[{"id":"a","name":"alpha","status":"Draft"}]}`,
		"GET /v1/w/ws1/change-sets/a/schema":     `{"schemas":[{"schemaId":"s1","schemaName":"Region","category":"AWS","installed":true}]}`,
		"GET /v1/w/ws1/change-sets/a/components": `{"components":[]}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProgramStartupAndQuit(t *testing.T) {
	srv := newServer(t)
	client := api.New(config.APIConfig{URL: srv.URL, Token: "secret", Timeout: 5 * time.Second})
	state := session.New(5, 0)
	app := NewApp(controller.New(state, client))

	tm := teatest.NewTestModel(t, app, teatest.WithInitialTermSize(120, 30))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("dev@example.com")) && bytes.Contains(b, []byte("Region"))
	}, teatest.WithDuration(5*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	fm := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := fm.(*App)
	require.True(t, ok)
	assert.Equal(t, "a", final.state.SelectedID())
	assert.Len(t, final.state.Schemas, 1)
	assert.Contains(t, final.state.Log.Lines(), "Logged in as dev@example.com (workspace ws1)")
	assert.Empty(t, final.state.CurrentAction)
}

func TestProgramLogsFailedCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"token expired","statusCode":401}`)
	}))
	t.Cleanup(srv.Close)
	client := api.New(config.APIConfig{URL: srv.URL, Token: "stale", Timeout: 5 * time.Second})
	state := session.New(5, 0)

	tm := teatest.NewTestModel(t, NewApp(controller.New(state, client)), teatest.WithInitialTermSize(120, 30))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Access denied"))
	}, teatest.WithDuration(5*time.Second))
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	errs := 0
	for _, l := range state.Log.Lines() {
		if strings.HasPrefix(l, "Error fetching identity: Access denied") {
			errs++
		}
	}
	assert.Equal(t, 1, errs)
	assert.Nil(t, state.Identity)
}
