package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"situation/internal/model"
)

func summaries(ids ...string) []model.ChangeSetSummary {
	out := make([]model.ChangeSetSummary, len(ids))
	for i, id := range ids {
		out[i] = model.ChangeSetSummary{ID: id, Name: "cs-" + id, Status: model.StatusDraft}
	}
	return out
}

func populated(s *State) {
	s.Detail = &model.ChangeSetDetail{ID: "x"}
	s.MergeStatus = &model.MergeStatus{}
	s.Components = []model.ComponentSummary{{ID: "c1"}}
	s.ComponentDetail = &model.ComponentDetail{ID: "c1"}
}

func TestNew_Defaults(t *testing.T) {
	s := New(0, 0)
	assert.Equal(t, NoSelection, s.Selected)
	assert.Equal(t, DefaultLogHeight, s.LogHeight)
	assert.Equal(t, ModeNormal, s.Mode)
	assert.Equal(t, FocusTopBar, s.Focus.Current)
	assert.Equal(t, DropdownChangeSet, s.DropdownFocus)
	_, ok := s.SelectedSummary()
	assert.False(t, ok)
}

func TestApplyRefreshedList(t *testing.T) {
	tests := []struct {
		name     string
		prev     []string
		selected int
		next     []string
		wantIdx  int
		wantID   string
	}{
		{"same index still in range keeps id", []string{"a", "b", "c"}, 1, []string{"a", "b", "c", "d"}, 1, "b"},
		{"index past end clamps to last", []string{"a", "b", "c"}, 2, []string{"a", "b"}, 1, "b"},
		{"empty list selects none", []string{"a"}, 0, nil, NoSelection, ""},
		{"no previous selection picks first", []string{"a"}, NoSelection, []string{"z", "y"}, 0, "z"},
		{"abandoned last entry falls back", []string{"a", "b"}, 1, []string{"a"}, 0, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(10, 0)
			s.Summaries = summaries(tt.prev...)
			s.Selected = tt.selected
			populated(s)

			s.ApplyRefreshedList(summaries(tt.next...))

			assert.Equal(t, tt.wantIdx, s.Selected)
			assert.Equal(t, tt.wantID, s.SelectedID())
			assert.Nil(t, s.Detail)
			assert.Nil(t, s.MergeStatus)
			assert.Nil(t, s.Components)
			assert.Nil(t, s.ComponentDetail)
		})
	}
}

func TestSelectByID(t *testing.T) {
	s := New(10, 0)
	s.Summaries = summaries("a", "b")
	s.SelectIndex(0)
	populated(s)

	require.True(t, s.SelectByID("b"))
	assert.Equal(t, 1, s.Selected)
	assert.Nil(t, s.Detail)

	populated(s)
	assert.False(t, s.SelectByID("missing"))
	assert.Equal(t, 1, s.Selected)
	assert.NotNil(t, s.Detail, "failed lookup leaves state untouched")
}

func TestSetSchemas_SortsByCategoryThenName(t *testing.T) {
	s := New(10, 0)
	s.SetSchemas([]model.SchemaSummary{
		{ID: "3", Name: "VPC", Category: "AWS EC2"},
		{ID: "1", Name: "Region", Category: "AWS"},
		{ID: "2", Name: "Bucket", Category: "AWS S3"},
		{ID: "4", Name: "Account", Category: "AWS"},
	})
	var got []string
	for _, sc := range s.Schemas {
		got = append(got, sc.ID)
	}
	assert.Equal(t, []string{"4", "1", "3", "2"}, got)
}

func TestCursorsWrap(t *testing.T) {
	s := New(10, 0)
	assert.False(t, s.MoveSchemaCursor(1), "no schemas")

	s.SetSchemas([]model.SchemaSummary{{ID: "a", Name: "a"}, {ID: "b", Name: "b"}, {ID: "c", Name: "c"}})
	s.MoveSchemaCursor(-1)
	assert.Equal(t, 2, s.SchemaCursor)
	s.MoveSchemaCursor(1)
	assert.Equal(t, 0, s.SchemaCursor)

	s.Summaries = summaries("a", "b")
	s.MoveDropdownCursor(-1)
	assert.Equal(t, 1, s.DropdownCursor)
	s.MoveDropdownCursor(1)
	assert.Equal(t, 0, s.DropdownCursor)

	s.Components = []model.ComponentSummary{{ID: "c1"}, {ID: "c2"}}
	s.MoveComponentCursor(3)
	assert.Equal(t, 1, s.ComponentCursor)
}

func TestComponentResolution(t *testing.T) {
	s := New(10, 0)
	s.SetSchemas([]model.SchemaSummary{{ID: "s1", Name: "Region", Category: "AWS"}})
	s.SetComponents([]model.ComponentSummary{{ID: "c1"}, {ID: "c2"}})

	c, ok := s.CurrentComponent()
	require.True(t, ok)
	assert.Equal(t, "c1", c.DisplayName())
	assert.Empty(t, s.SchemaNameFor(c))

	s.ResolveComponent(model.ComponentDetail{ID: "c1", Name: "us-east-1", SchemaID: "s1"})
	c, _ = s.CurrentComponent()
	assert.Equal(t, "us-east-1", c.DisplayName())
	assert.Equal(t, "Region", s.SchemaNameFor(c))

	// A re-fetch of the id list keeps what was already resolved.
	s.SetComponents([]model.ComponentSummary{{ID: "c1"}})
	assert.Equal(t, "us-east-1", s.Components[0].Name)
}

func TestAppendLog_OneRowPerEntry(t *testing.T) {
	s := New(5, 0)
	s.AppendLog("Error fetching merge status: status 502: <html>\n<p>a</p>\n<p>b</p>\n<p>c</p>\n<p>d</p>\n</html>")
	s.AppendLog("latest line")

	require.Equal(t, 2, s.Log.Len())
	assert.Equal(t, "Error fetching merge status: status 502: <html> <p>a</p> <p>b</p> <p>c</p> <p>d</p> </html>", s.Log.Lines()[0])
	assert.Equal(t, "latest line", s.Log.Visible(s.LogHeight)[1])

	s.AppendLog("  indented  text  ")
	assert.Equal(t, "  indented  text  ", s.Log.Lines()[2], "single-row lines are kept as is")
}

func TestFocusRing_Next(t *testing.T) {
	f := NewFocusRing()
	got := []Focus{f.Next(), f.Next(), f.Next(), f.Next()}
	assert.Equal(t, []Focus{FocusSchemaList, FocusContentArea, FocusLogPanel, FocusTopBar}, got)

	f.Set(FocusChangeSetDropdown)
	assert.Equal(t, FocusTopBar, f.Next())
}
