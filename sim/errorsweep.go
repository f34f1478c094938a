package sim

import (
	"fmt"

	"github.com/fumin/qmps/mps"
	"github.com/fumin/qmps/rng"
)

// HMode is the only tagged variant the energy layer needs: a
// Hamiltonian is either diagonal (Ising-like) or nearest-neighbor
// Heisenberg, resolved at the call site.
type HMode struct {
	ising      *mps.Hamiltonian
	heisenberg *mps.Heisenberg
}

// IsingMode wraps a diagonal Z/ZZ Hamiltonian as an HMode.
func IsingMode(h mps.Hamiltonian) HMode { return HMode{ising: &h} }

// HeisenbergMode wraps a Heisenberg Hamiltonian as an HMode.
func HeisenbergMode(h mps.Heisenberg) HMode { return HMode{heisenberg: &h} }

func (hm HMode) energy(psi *mps.MPS) float64 {
	switch {
	case hm.ising != nil:
		return mps.Energy(psi, *hm.ising)
	case hm.heisenberg != nil:
		return mps.EnergyHeisenberg(psi, *hm.heisenberg)
	default:
		panic("sim: HMode has neither variant set")
	}
}

// ErrorRow is one (chi, energy, error_energy) sample.
type ErrorRow struct {
	Chi         int
	Energy      float64
	ErrorEnergy float64
}

func runEnergy(n, depth int, trunc mps.Truncation, seed string, h HMode) float64 {
	r := rng.New([]byte(seed))
	psi := mps.New(n)
	for i := 0; i < depth; i++ {
		ApplyBrickworkLayer(psi, trunc, r)
	}
	return h.energy(psi)
}

// ErrorSweep compares the energy of a brickwork circuit truncated at
// each chi in chiTest against a reference run at chiRef, returning the
// absolute energy error at each chi.
func ErrorSweep(n, depth int, chiTest []int, chiRef int, cutoff float64, seed string, h HMode) []ErrorRow {
	eRef := runEnergy(n, depth, mps.Truncation{MaxBond: chiRef, Cutoff: cutoff}, seed, h)

	rows := make([]ErrorRow, 0, len(chiTest))
	for _, chi := range chiTest {
		e := runEnergy(n, depth, mps.Truncation{MaxBond: chi, Cutoff: cutoff}, seed, h)
		rows = append(rows, ErrorRow{Chi: chi, Energy: e, ErrorEnergy: abs(e - eRef)})
	}
	return rows
}

// BellHeisenbergSanity reproduces the Bell-state Heisenberg identity
// (energy = Jx - Jy + Jz) as a standalone check, returning an error if
// it fails to hold within 1e-12.
func BellHeisenbergSanity(jx, jy, jz float64) error {
	trunc := mps.Truncation{MaxBond: 8, Cutoff: 1e-12}
	psi := mps.New(2)
	psi.Apply1Q(0, mps.Hadamard())
	psi.ApplyCNOT(0, trunc)

	h := mps.Heisenberg{Jx: []float64{jx}, Jy: []float64{jy}, Jz: []float64{jz}}
	e := mps.EnergyHeisenberg(psi, h)
	want := jx - jy + jz
	if d := abs(e - want); d > 1e-12 {
		return fmt.Errorf("sanity check failed: E=%v want=%v err=%v", e, want, d)
	}
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
