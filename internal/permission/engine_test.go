package permission

import (
	"testing"

	"backoffice/internal/model"
	"backoffice/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Collection[model.Role]) {
	t.Helper()
	roles := store.NewCollection[model.Role](t.TempDir(), "roles")
	return NewEngine(roles), roles
}

func TestIsGrantedDefaultDeny(t *testing.T) {
	e, roles := newTestEngine(t)

	if e.IsGranted("ghost", ModuleCases, ActionView) {
		t.Fatal("unknown role must be denied")
	}

	if err := roles.Insert(model.Role{
		ID:   "clerk",
		Name: "Clerk",
		Permissions: map[string][]string{
			ModuleCases: {ActionView},
		},
	}); err != nil {
		t.Fatal(err)
	}

	if !e.IsGranted("clerk", ModuleCases, ActionView) {
		t.Fatal("granted action must pass")
	}
	if e.IsGranted("clerk", ModuleCases, ActionDelete) {
		t.Fatal("absent action must be denied")
	}
	if e.IsGranted("clerk", ModuleUsers, ActionView) {
		t.Fatal("absent module must be denied")
	}
}

func TestSetPermissionsRoundTrip(t *testing.T) {
	e, roles := newTestEngine(t)
	if err := roles.Insert(model.Role{ID: "judge", Name: "Judge"}); err != nil {
		t.Fatal(err)
	}

	grants := map[string][]string{
		ModuleCases: {ActionView, ActionEdit, ActionView}, // duplicate view
		ModuleUsers: {ActionView},
	}
	if err := e.SetPermissions("judge", grants); err != nil {
		t.Fatal(err)
	}

	got := e.GrantsFor("judge")
	if len(got[ModuleCases]) != 2 {
		t.Fatalf("expected duplicates collapsed, got %v", got[ModuleCases])
	}
	want := map[string]bool{ActionView: true, ActionEdit: true}
	for _, a := range got[ModuleCases] {
		if !want[a] {
			t.Fatalf("unexpected action %q", a)
		}
		delete(want, a)
	}
	if len(got[ModuleUsers]) != 1 || got[ModuleUsers][0] != ActionView {
		t.Fatalf("users grants wrong: %v", got[ModuleUsers])
	}
}

func TestSetPermissionsUnknownRole(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.SetPermissions("ghost", map[string][]string{ModuleCases: {ActionView}}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(map[string][]string{
		ModuleCases:   {ActionView, "", ActionView, "fly"},
		"not-a-thing": {ActionView},
		ModuleUsers:   {},
	})

	if len(got) != 1 {
		t.Fatalf("expected only cases to survive, got %v", got)
	}
	if len(got[ModuleCases]) != 1 || got[ModuleCases][0] != ActionView {
		t.Fatalf("cases grants wrong: %v", got[ModuleCases])
	}
}

func TestCatalogsAreStable(t *testing.T) {
	m := Modules()
	if len(m) == 0 || m[0].ID != ModuleCases {
		t.Fatalf("unexpected module catalog: %v", m)
	}
	// returned slices are copies; mutation must not leak
	m[0].ID = "mutated"
	if Modules()[0].ID != ModuleCases {
		t.Fatal("catalog mutated through returned slice")
	}

	a := Actions()
	if len(a) != 4 {
		t.Fatalf("expected 4 actions, got %d", len(a))
	}
}
