package controller

import (
	"context"
	"errors"
	"fmt"

	"situation/internal/model"
)

var errBoom = errors.New("boom")

// fakeService is an in-memory Service. fail maps an operation name to the
// error it should return; calls records "Op arg..." for every invocation.
type fakeService struct {
	identity   model.Identity
	changeSets []model.ChangeSetSummary
	schemas    []model.SchemaSummary
	components map[string][]string
	comps      map[string]model.ComponentDetail
	fail       map[string]error
	calls      []string

	// nextID numbers created change sets and components.
	nextID int
}

func newFakeService() *fakeService {
	return &fakeService{
		identity: model.Identity{UserID: "u1", Email: "dev@example.com", WorkspaceID: "ws1"},
		changeSets: []model.ChangeSetSummary{
			{ID: "a", Name: "alpha", Status: model.StatusDraft},
			{ID: "b", Name: "beta", Status: model.StatusApplied},
		},
		schemas: []model.SchemaSummary{
			{ID: "s2", Name: "VPC", Category: "AWS EC2"},
			{ID: "s1", Name: "Region", Category: "AWS"},
		},
		components: map[string][]string{},
		comps:      map[string]model.ComponentDetail{},
		fail:       map[string]error{},
	}
}

func (f *fakeService) record(op string, args ...string) error {
	call := op
	for _, a := range args {
		call += " " + a
	}
	f.calls = append(f.calls, call)
	return f.fail[op]
}

func diag(op string) []string {
	return []string{"Calling API: " + op, "API Response Status: 200 OK"}
}

func (f *fakeService) WhoAmI(ctx context.Context) (model.Identity, []string, error) {
	if err := f.record("WhoAmI"); err != nil {
		return model.Identity{}, nil, err
	}
	return f.identity, diag("WhoAmI"), nil
}

func (f *fakeService) ListChangeSets(ctx context.Context, ws string) ([]model.ChangeSetSummary, []string, error) {
	if err := f.record("ListChangeSets", ws); err != nil {
		return nil, nil, err
	}
	out := make([]model.ChangeSetSummary, len(f.changeSets))
	copy(out, f.changeSets)
	return out, diag("ListChangeSets"), nil
}

func (f *fakeService) CreateChangeSet(ctx context.Context, ws, name string) (model.ChangeSetSummary, []string, error) {
	if err := f.record("CreateChangeSet", name); err != nil {
		return model.ChangeSetSummary{}, nil, err
	}
	f.nextID++
	cs := model.ChangeSetSummary{ID: fmt.Sprintf("new%d", f.nextID), Name: name, Status: model.StatusDraft}
	f.changeSets = append(f.changeSets, cs)
	return cs, diag("CreateChangeSet"), nil
}

func (f *fakeService) find(id string) (model.ChangeSetSummary, bool) {
	for _, cs := range f.changeSets {
		if cs.ID == id {
			return cs, true
		}
	}
	return model.ChangeSetSummary{}, false
}

func (f *fakeService) GetChangeSet(ctx context.Context, ws, cs string) (model.ChangeSetDetail, []string, error) {
	if err := f.record("GetChangeSet", cs); err != nil {
		return model.ChangeSetDetail{}, []string{"Calling API: GetChangeSet", "API Response Status: 500"}, err
	}
	s, _ := f.find(cs)
	return model.ChangeSetDetail{ID: s.ID, Name: s.Name, Status: s.Status}, diag("GetChangeSet"), nil
}

func (f *fakeService) AbandonChangeSet(ctx context.Context, ws, cs string) (bool, []string, error) {
	if err := f.record("AbandonChangeSet", cs); err != nil {
		return false, nil, err
	}
	kept := f.changeSets[:0:0]
	for _, s := range f.changeSets {
		if s.ID != cs {
			kept = append(kept, s)
		}
	}
	f.changeSets = kept
	return true, diag("AbandonChangeSet"), nil
}

func (f *fakeService) GetMergeStatus(ctx context.Context, ws, cs string) (model.MergeStatus, []string, error) {
	if err := f.record("GetMergeStatus", cs); err != nil {
		return model.MergeStatus{}, []string{"Calling API: GetMergeStatus", "API Response Status: 500"}, err
	}
	s, _ := f.find(cs)
	return model.MergeStatus{
		ChangeSet: model.ChangeSetDetail{ID: s.ID, Name: s.Name, Status: s.Status},
		Actions:   []model.Action{{ID: "act1", Kind: "Create", State: "Queued", Name: "create"}},
	}, diag("GetMergeStatus"), nil
}

func (f *fakeService) ForceApply(ctx context.Context, ws, cs string) ([]string, error) {
	if err := f.record("ForceApply", cs); err != nil {
		return nil, err
	}
	for i := range f.changeSets {
		if f.changeSets[i].ID == cs {
			f.changeSets[i].Status = model.StatusApplied
		}
	}
	return diag("ForceApply"), nil
}

func (f *fakeService) ListSchemas(ctx context.Context, ws, cs string) ([]model.SchemaSummary, []string, error) {
	if err := f.record("ListSchemas", cs); err != nil {
		return nil, nil, err
	}
	out := make([]model.SchemaSummary, len(f.schemas))
	copy(out, f.schemas)
	return out, diag("ListSchemas"), nil
}

func (f *fakeService) ListComponents(ctx context.Context, ws, cs string) ([]model.ComponentSummary, []string, error) {
	if err := f.record("ListComponents", cs); err != nil {
		return nil, nil, err
	}
	var out []model.ComponentSummary
	for _, id := range f.components[cs] {
		out = append(out, model.ComponentSummary{ID: id})
	}
	if out == nil {
		out = []model.ComponentSummary{}
	}
	return out, diag("ListComponents"), nil
}

func (f *fakeService) CreateComponent(ctx context.Context, ws, cs string, req model.CreateComponentRequest) (string, []string, error) {
	if err := f.record("CreateComponent", cs, req.SchemaName, req.Name); err != nil {
		return "", nil, err
	}
	f.nextID++
	id := fmt.Sprintf("c%d", f.nextID)
	f.components[cs] = append(f.components[cs], id)
	f.comps[id] = model.ComponentDetail{ID: id, Name: req.Name}
	return id, diag("CreateComponent"), nil
}

func (f *fakeService) GetComponent(ctx context.Context, ws, cs, id string) (model.ComponentDetail, []string, error) {
	if err := f.record("GetComponent", cs, id); err != nil {
		return model.ComponentDetail{}, nil, err
	}
	return f.comps[id], diag("GetComponent"), nil
}

func (f *fakeService) DeleteComponent(ctx context.Context, ws, cs, id string) (string, []string, error) {
	if err := f.record("DeleteComponent", cs, id); err != nil {
		return "", nil, err
	}
	kept := []string{}
	for _, c := range f.components[cs] {
		if c != id {
			kept = append(kept, c)
		}
	}
	f.components[cs] = kept
	return "MarkedForDeletion", diag("DeleteComponent"), nil
}
