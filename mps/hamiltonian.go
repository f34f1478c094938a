package mps

import "github.com/fumin/qmps/rng"

// Hamiltonian is a diagonal Z/ZZ Hamiltonian H = sum h_i Z_i + sum J_i Z_i Z_{i+1}.
type Hamiltonian struct {
	ZFields     []float64
	ZZCouplings []float64
}

// Ising returns the uniform-field, uniform-coupling diagonal Hamiltonian on n qubits.
func Ising(n int, h, j float64) Hamiltonian {
	zz := 0
	if n > 1 {
		zz = n - 1
	}
	hs := make([]float64, n)
	js := make([]float64, zz)
	for i := range hs {
		hs[i] = h
	}
	for i := range js {
		js[i] = j
	}
	return Hamiltonian{ZFields: hs, ZZCouplings: js}
}

// Energy returns <psi|H|psi> for a diagonal Z/ZZ Hamiltonian.
func Energy(m *MPS, h Hamiltonian) float64 {
	e := 0.0
	for i, hi := range h.ZFields {
		e += hi * ExpectZ(m, i)
	}
	for i, j := range h.ZZCouplings {
		e += j * ExpectZZ(m, i, i+1)
	}
	return e
}

// EstimateEnergyShots estimates <psi|H|psi> via shots for a diagonal Z/ZZ Hamiltonian.
func EstimateEnergyShots(m *MPS, h Hamiltonian, r *rng.ONDRng, shots int) float64 {
	e := 0.0
	for i, hi := range h.ZFields {
		e += hi * EstimateZShots(m, i, r, shots)
	}
	for i, j := range h.ZZCouplings {
		e += j * EstimateZZShots(m, i, i+1, r, shots)
	}
	return e
}

// Heisenberg is a nearest-neighbor Heisenberg Hamiltonian
// H = sum (Jx_i X_iX_{i+1} + Jy_i Y_iY_{i+1} + Jz_i Z_iZ_{i+1}).
type Heisenberg struct {
	Jx, Jy, Jz []float64
}

// HeisenbergUniform returns a uniform-coupling Heisenberg Hamiltonian on n qubits.
func HeisenbergUniform(n int, j float64) Heisenberg {
	bonds := 0
	if n > 1 {
		bonds = n - 1
	}
	jx := make([]float64, bonds)
	jy := make([]float64, bonds)
	jz := make([]float64, bonds)
	for i := range jx {
		jx[i], jy[i], jz[i] = j, j, j
	}
	return Heisenberg{Jx: jx, Jy: jy, Jz: jz}
}

// EnergyHeisenberg returns <psi|H|psi> for a nearest-neighbor Heisenberg Hamiltonian.
func EnergyHeisenberg(m *MPS, h Heisenberg) float64 {
	e := 0.0
	for i, jx := range h.Jx {
		e += jx * ExpectXX(m, i, i+1)
	}
	for i, jy := range h.Jy {
		e += jy * ExpectYY(m, i, i+1)
	}
	for i, jz := range h.Jz {
		e += jz * ExpectZZ(m, i, i+1)
	}
	return e
}

// EstimateEnergyHeisenbergShots estimates <psi|H|psi> via shots for a
// nearest-neighbor Heisenberg Hamiltonian, rotating into the X/Y
// eigenbasis as needed before each projective measurement.
func EstimateEnergyHeisenbergShots(m *MPS, h Heisenberg, r *rng.ONDRng, shots int) float64 {
	e := 0.0
	for i, jx := range h.Jx {
		e += jx * estimateXXShots(m, i, i+1, r, shots)
	}
	for i, jy := range h.Jy {
		e += jy * estimateYYShots(m, i, i+1, r, shots)
	}
	for i, jz := range h.Jz {
		e += jz * EstimateZZShots(m, i, i+1, r, shots)
	}
	return e
}
