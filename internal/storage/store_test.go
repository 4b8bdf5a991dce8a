package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/pmorenz/oscilab/internal/ode"
	"github.com/pmorenz/oscilab/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		States: []ode.State{{1, 0}, {0.9, -0.4}, {0.7, -0.8}},
		Times:  []float64{0, 0.1, 0.2},
		Metrics: map[string]float64{
			"energy_drift": 1e-7,
		},
		StepsTaken: 2,
	}
}

func sampleMeta() RunMetadata {
	return RunMetadata{
		Model:       "spring",
		Solver:      "rk4",
		Granularity: "normal",
		FrameDelta:  0.1,
		Duration:    0.2,
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save(sampleMeta(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(runID, "spring_") {
		t.Errorf("run id = %q", runID)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.ID != runID || meta.Model != "spring" || meta.Solver != "rk4" {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Metrics["energy_drift"] != 1e-7 {
		t.Errorf("metrics = %v", meta.Metrics)
	}

	states, times, err := store.LoadStates(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 3 || len(times) != 3 {
		t.Fatalf("loaded %d states, %d times", len(states), len(times))
	}
	if math.Abs(states[1][1]+0.4) > 1e-6 {
		t.Errorf("states[1] = %v", states[1])
	}
	if math.Abs(times[2]-0.2) > 1e-6 {
		t.Errorf("times = %v", times)
	}
}

func TestStoreList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("fresh store lists %d runs", len(runs))
	}

	if _, err := store.Save(sampleMeta(), sampleResult()); err != nil {
		t.Fatal(err)
	}
	runs, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("list = %d runs, want 1", len(runs))
	}
	if runs[0].Model != "spring" {
		t.Errorf("listed run = %+v", runs[0])
	}
}

func TestStoreListMissingBaseDir(t *testing.T) {
	store := New(t.TempDir() + "/never-created")
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("runs = %v", runs)
	}
}

func TestStoreLoadUnknownRun(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Load("spring_0"); err == nil {
		t.Error("expected error for unknown run")
	}
	if _, _, err := store.LoadStates("spring_0"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestExportJSON(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := store.Save(sampleMeta(), sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	states, times, err := store.LoadStates(runID)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, states, times); err != nil {
		t.Fatal(err)
	}

	var out ExportData
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.ID != runID || out.Model != "spring" || out.Steps != 3 {
		t.Errorf("export = %+v", out)
	}
	if len(out.States) != 3 || len(out.States[0]) != 2 {
		t.Errorf("exported states = %v", out.States)
	}
}
