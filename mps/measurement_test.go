package mps

import (
	"fmt"
	"testing"

	"github.com/fumin/qmps/rng"
)

func TestScenarioS2(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}

	var count01, count10, count00, count11 int
	for i := 0; i < 100; i++ {
		seed := fmt.Sprintf("seed-%d", i)
		r := rng.New([]byte(seed))
		psi := bellState(trunc)
		m0 := psi.MeasureZ(0, r)
		m1 := psi.MeasureZ(1, r)

		switch {
		case m0 == 0 && m1 == 1:
			count01++
		case m0 == 1 && m1 == 0:
			count10++
		case m0 == 0 && m1 == 0:
			count00++
		case m0 == 1 && m1 == 1:
			count11++
		}
	}

	if count01 != 0 {
		t.Fatalf("count(0,1) = %d, want 0", count01)
	}
	if count10 != 0 {
		t.Fatalf("count(1,0) = %d, want 0", count10)
	}
	if count00 == 0 {
		t.Fatalf("count(0,0) = 0, want > 0")
	}
	if count11 == 0 {
		t.Fatalf("count(1,1) = 0, want > 0")
	}
}

func TestMeasureZZeroWeightIsNoop(t *testing.T) {
	t.Parallel()
	psi := New(1)
	// Zero out the only amplitude to force a zero-weight degeneracy.
	psi.Sites[0].Set(0, 0, 0, 0)

	r := rng.New([]byte("zero-weight"))
	outcome := psi.MeasureZ(0, r)
	if outcome != 0 {
		t.Fatalf("outcome = %d, want 0", outcome)
	}
}

func TestMeasureZCollapses(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}
	psi := bellState(trunc)
	r := rng.New([]byte("collapse"))

	m0 := psi.MeasureZ(0, r)
	m1 := psi.MeasureZ(1, r)
	if m0 != m1 {
		t.Fatalf("Bell outcomes disagree: %d vs %d", m0, m1)
	}
}
