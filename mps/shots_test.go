package mps

import (
	"math"
	"testing"

	"github.com/fumin/qmps/rng"
)

func TestShotConvergence(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}
	psi := bellState(trunc)

	r := rng.New([]byte("shots"))
	est := EstimateZZShots(psi, 0, 1, r, 5000)
	exact := ExpectZZ(psi, 0, 1)

	if math.Abs(est-exact) > 0.05 {
		t.Fatalf("shot estimate %v not within 0.05 of exact %v", est, exact)
	}
}

func TestShotsZeroShots(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}
	psi := bellState(trunc)
	r := rng.New([]byte("zero"))

	if v := EstimateZShots(psi, 0, r, 0); v != 0 {
		t.Fatalf("EstimateZShots with 0 shots = %v, want 0", v)
	}
	if v := EstimateZZShots(psi, 0, 1, r, 0); v != 0 {
		t.Fatalf("EstimateZZShots with 0 shots = %v, want 0", v)
	}
}

func TestEstimateEnergyHeisenbergShotsConverges(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}
	psi := bellState(trunc)
	h := Heisenberg{Jx: []float64{1}, Jy: []float64{1}, Jz: []float64{1}}

	r := rng.New([]byte("heis-shots"))
	est := EstimateEnergyHeisenbergShots(psi, h, r, 3000)
	exact := EnergyHeisenberg(psi, h)

	if math.Abs(est-exact) > 0.15 {
		t.Fatalf("shot estimate %v not close to exact %v", est, exact)
	}
}
