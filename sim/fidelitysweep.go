package sim

import (
	"github.com/fumin/qmps/mps"
	"github.com/fumin/qmps/rng"
)

// FidelityRow is one (chi, fidelity, one_minus_fidelity) sample.
type FidelityRow struct {
	Chi              int
	Fidelity         float64
	OneMinusFidelity float64
}

func fidelityOf(psi, ref *mps.MPS) float64 {
	ov := mps.Overlap(psi, ref)
	norm := real(mps.Overlap(psi, psi))
	refNorm := real(mps.Overlap(ref, ref))
	ovSq := real(ov)*real(ov) + imag(ov)*imag(ov)
	return ovSq / (norm * refNorm)
}

func buildState(n, depth int, trunc mps.Truncation, seed string) *mps.MPS {
	r := rng.New([]byte(seed))
	psi := mps.New(n)
	for i := 0; i < depth; i++ {
		ApplyBrickworkLayer(psi, trunc, r)
	}
	return psi
}

// FidelitySweep builds a depth-deep brickwork state at bond dimension
// chiRef, then builds the same random circuit (same seed, same gates)
// truncated at each chi in chiTest, and reports the fidelity of each
// truncated state against the reference.
func FidelitySweep(n, depth int, chiTest []int, chiRef int, cutoff float64, seed string) []FidelityRow {
	refTrunc := mps.Truncation{MaxBond: chiRef, Cutoff: cutoff}
	ref := buildState(n, depth, refTrunc, seed)

	rows := make([]FidelityRow, 0, len(chiTest))
	for _, chi := range chiTest {
		trunc := mps.Truncation{MaxBond: chi, Cutoff: cutoff}
		psi := buildState(n, depth, trunc, seed)

		f := fidelityOf(psi, ref)
		rows = append(rows, FidelityRow{Chi: chi, Fidelity: f, OneMinusFidelity: 1 - f})
	}
	return rows
}

// DepthFidelityRow is one (depth, chi, fidelity, one_minus_fidelity) sample.
type DepthFidelityRow struct {
	Depth            int
	Chi              int
	Fidelity         float64
	OneMinusFidelity float64
}

// FidelityDepthSweep replays the same brickwork circuit layer by layer
// across a reference state and every test bond dimension, recording
// fidelity at every depthStep-th layer in [depthStart, depthEnd].
func FidelityDepthSweep(n, depthStart, depthEnd, depthStep int, chiTest []int, chiRef int, cutoff float64, seed string) []DepthFidelityRow {
	r := rng.New([]byte(seed))
	trunc := mps.Truncation{MaxBond: chiRef, Cutoff: cutoff}
	truncs := make([]mps.Truncation, len(chiTest))
	for i, chi := range chiTest {
		truncs[i] = mps.Truncation{MaxBond: chi, Cutoff: cutoff}
	}

	psiRef := mps.New(n)
	psiTests := make([]*mps.MPS, len(chiTest))
	for i := range psiTests {
		psiTests[i] = mps.New(n)
	}

	var rows []DepthFidelityRow
	for depth := 1; depth <= depthEnd; depth++ {
		layer := BuildBrickworkLayer(n, r)
		ApplyLayer(psiRef, trunc, layer)
		for i := range psiTests {
			ApplyLayer(psiTests[i], truncs[i], layer)
		}

		if depth < depthStart {
			continue
		}
		if (depth-depthStart)%depthStep != 0 && depth != depthEnd {
			continue
		}

		for i, chi := range chiTest {
			f := fidelityOf(psiTests[i], psiRef)
			rows = append(rows, DepthFidelityRow{Depth: depth, Chi: chi, Fidelity: f, OneMinusFidelity: 1 - f})
		}
	}
	return rows
}
