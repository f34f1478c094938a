package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fumin/qmps/sim"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	d, err := Open(filepath.Join(dir, "sweeps.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestChiSweepRoundTrip(t *testing.T) {
	t.Parallel()
	d := openTestDB(t)

	rows := []sim.ChiRow{
		{MaxBond: 2, Depth: 2, ChiMax: 2, LayerMs: 0.5},
		{MaxBond: 2, Depth: 4, ChiMax: 2, LayerMs: 0.6},
	}
	if err := d.SaveChiSweep("run1", rows); err != nil {
		t.Fatalf("SaveChiSweep: %v", err)
	}

	got, err := d.LoadChiSweep("run1")
	if err != nil {
		t.Fatalf("LoadChiSweep: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(rows))
	}
	for i, row := range rows {
		if got[i] != row {
			t.Fatalf("row %d = %#v, want %#v", i, got[i], row)
		}
	}
}

func TestFidelitySweepRoundTripAndOverwrite(t *testing.T) {
	t.Parallel()
	d := openTestDB(t)

	first := []sim.FidelityRow{{Chi: 2, Fidelity: 0.9, OneMinusFidelity: 0.1}}
	if err := d.SaveFidelitySweep("run1", first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := []sim.FidelityRow{
		{Chi: 4, Fidelity: 0.99, OneMinusFidelity: 0.01},
		{Chi: 8, Fidelity: 1.0, OneMinusFidelity: 0.0},
	}
	if err := d.SaveFidelitySweep("run1", second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := d.LoadFidelitySweep("run1")
	if err != nil {
		t.Fatalf("LoadFidelitySweep: %v", err)
	}
	if len(got) != len(second) {
		t.Fatalf("re-saving run1 did not overwrite: len(got) = %d, want %d", len(got), len(second))
	}
	for i, row := range second {
		if got[i] != row {
			t.Fatalf("row %d = %#v, want %#v", i, got[i], row)
		}
	}
}

func TestDepthFidelitySweepRoundTrip(t *testing.T) {
	t.Parallel()
	d := openTestDB(t)

	rows := []sim.DepthFidelityRow{
		{Depth: 2, Chi: 2, Fidelity: 0.95, OneMinusFidelity: 0.05},
		{Depth: 4, Chi: 2, Fidelity: 0.80, OneMinusFidelity: 0.20},
	}
	if err := d.SaveDepthFidelitySweep("run1", rows); err != nil {
		t.Fatalf("SaveDepthFidelitySweep: %v", err)
	}
	got, err := d.LoadDepthFidelitySweep("run1")
	if err != nil {
		t.Fatalf("LoadDepthFidelitySweep: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(rows))
	}
}

func TestErrorSweepRoundTrip(t *testing.T) {
	t.Parallel()
	d := openTestDB(t)

	rows := []sim.ErrorRow{
		{Chi: 2, Energy: -0.5, ErrorEnergy: 0.1},
		{Chi: 8, Energy: -0.6, ErrorEnergy: 0.0},
	}
	if err := d.SaveErrorSweep("run1", rows); err != nil {
		t.Fatalf("SaveErrorSweep: %v", err)
	}
	got, err := d.LoadErrorSweep("run1")
	if err != nil {
		t.Fatalf("LoadErrorSweep: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(rows))
	}
}

func TestVQESweepRoundTrip(t *testing.T) {
	t.Parallel()
	d := openTestDB(t)

	rows := []sim.VQERow{
		{Theta: 0.0, Energy: 1.0},
		{Theta: 1.57, Energy: 0.0},
		{Theta: 3.14, Energy: -1.0},
	}
	if err := d.SaveVQESweep("run1", rows); err != nil {
		t.Fatalf("SaveVQESweep: %v", err)
	}
	got, err := d.LoadVQESweep("run1")
	if err != nil {
		t.Fatalf("LoadVQESweep: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(rows))
	}
	for i, row := range rows {
		if got[i] != row {
			t.Fatalf("row %d = %#v, want %#v", i, got[i], row)
		}
	}
}

func TestRunsDoNotCollide(t *testing.T) {
	t.Parallel()
	d := openTestDB(t)

	if err := d.SaveChiSweep("a", []sim.ChiRow{{MaxBond: 2, Depth: 1, ChiMax: 2, LayerMs: 1}}); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := d.SaveChiSweep("b", []sim.ChiRow{{MaxBond: 4, Depth: 1, ChiMax: 3, LayerMs: 1}}); err != nil {
		t.Fatalf("save b: %v", err)
	}

	a, err := d.LoadChiSweep("a")
	if err != nil {
		t.Fatalf("load a: %v", err)
	}
	b, err := d.LoadChiSweep("b")
	if err != nil {
		t.Fatalf("load b: %v", err)
	}
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("len(a)=%d len(b)=%d, want 1,1", len(a), len(b))
	}
	if a[0].MaxBond == b[0].MaxBond {
		t.Fatalf("run a and run b share rows")
	}
}
