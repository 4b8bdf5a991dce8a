package solvers

import "testing"

func TestRegistryConstructsEveryKind(t *testing.T) {
	for _, kind := range Kinds() {
		solver, err := New(kind)
		if err != nil {
			t.Fatalf("New(%s): %v", kind, err)
		}
		if solver == nil {
			t.Fatalf("New(%s): nil solver", kind)
		}
		if solver.FixedStep() != DefaultStep {
			t.Errorf("%s: default step %v, want %v", kind, solver.FixedStep(), DefaultStep)
		}
	}
}

func TestRegistryReturnsFreshInstances(t *testing.T) {
	a, err := New(KindRK4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(KindRK4)
	if err != nil {
		t.Fatal(err)
	}
	a.SetFixedStep(0.5)
	if b.FixedStep() == 0.5 {
		t.Error("instances share state")
	}
}

func TestRegistryUnknownKind(t *testing.T) {
	if _, err := New("euler-cromer"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
