package sim

import (
	"math"
	"testing"
)

// TestScenarioS6SelfFidelity checks that comparing a run at chiRef
// against itself yields fidelity 1, the trivial case of property 7.
func TestScenarioS6SelfFidelity(t *testing.T) {
	t.Parallel()
	const n, depth, chiRef = 10, 8, 8

	rows := FidelitySweep(n, depth, []int{chiRef}, chiRef, 1e-12, "self-fidelity")
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if d := math.Abs(rows[0].Fidelity - 1); d > 1e-8 {
		t.Fatalf("self fidelity = %v, want within 1e-8 of 1", rows[0].Fidelity)
	}
	if d := math.Abs(rows[0].OneMinusFidelity); d > 1e-8 {
		t.Fatalf("1-fidelity = %v, want within 1e-8 of 0", rows[0].OneMinusFidelity)
	}
}

// TestScenarioS7TruncationMonotonicity exercises property 7 at a reduced
// scale: as chi_test grows toward chi_ref, the truncated state's
// infidelity against the reference state trends downward.
func TestScenarioS7TruncationMonotonicity(t *testing.T) {
	t.Parallel()
	const n, depth, chiRef = 12, 10, 16
	chiTest := []int{2, 4, 8, chiRef}

	rows := FidelitySweep(n, depth, chiTest, chiRef, 1e-10, "truncation-monotone")
	if len(rows) != len(chiTest) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(chiTest))
	}

	for _, row := range rows {
		if row.Fidelity < 0 || row.Fidelity > 1+1e-9 {
			t.Fatalf("chi=%d fidelity=%v out of [0,1]", row.Chi, row.Fidelity)
		}
	}

	if d := math.Abs(rows[len(rows)-1].OneMinusFidelity); d > 1e-8 {
		t.Fatalf("infidelity at chi=chi_ref = %v, want within 1e-8 of 0", rows[len(rows)-1].OneMinusFidelity)
	}

	// Coarser truncations should, on average, lose more fidelity than
	// finer ones: the smallest chi tested should not out-fidelity the
	// largest.
	if rows[0].Fidelity > rows[len(rows)-1].Fidelity+1e-9 {
		t.Fatalf("chi=%d fidelity=%v exceeds chi=%d fidelity=%v", rows[0].Chi, rows[0].Fidelity, rows[len(rows)-1].Chi, rows[len(rows)-1].Fidelity)
	}
}

func TestFidelityDepthSweepShape(t *testing.T) {
	t.Parallel()
	rows := FidelityDepthSweep(8, 2, 6, 2, []int{2, 4}, 8, 1e-10, "depth-sweep")

	seenDepths := make(map[int]bool)
	for _, row := range rows {
		if row.Depth < 2 || row.Depth > 6 {
			t.Fatalf("row depth %d out of requested range [2,6]", row.Depth)
		}
		seenDepths[row.Depth] = true
	}
	for _, want := range []int{2, 4, 6} {
		if !seenDepths[want] {
			t.Fatalf("missing depth %d in output", want)
		}
	}
}
