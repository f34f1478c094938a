// Package sim hosts the experiment drivers built on top of the mps
// core: brickwork random circuits, the chi/fidelity/error sweeps, and
// the analytic/shot/noisy VQE sweeps. None of it is part of the core's
// public contract; it exists only to exercise the core the way a
// driver next to a library package always does.
package sim

import (
	"math"

	"github.com/fumin/qmps/mps"
	"github.com/fumin/qmps/rng"
)

// GateParams is one random two-site brick: three Euler-angle 1-qubit
// rotations on each of the pair's qubits, followed by a CNOT.
type GateParams struct {
	K                      int
	A0, B0, C0, A1, B1, C1 float64
}

func randAngle(r *rng.ONDRng, ctx []byte) float64 {
	return r.Float64(ctx) * 2 * math.Pi
}

// BuildBrickworkLayer draws a full even+odd brickwork layer's gate
// parameters from r, without applying them; used so that a reference
// run and several truncated runs can replay identical random gates.
func BuildBrickworkLayer(n int, r *rng.ONDRng) []GateParams {
	layer := make([]GateParams, 0, n)
	for _, start := range [2]int{0, 1} {
		for i := start; i+1 < n; i += 2 {
			layer = append(layer, GateParams{
				K:  i,
				A0: randAngle(r, []byte("RZ0")),
				B0: randAngle(r, []byte("RX0")),
				C0: randAngle(r, []byte("RZ1")),
				A1: randAngle(r, []byte("RZ2")),
				B1: randAngle(r, []byte("RX1")),
				C1: randAngle(r, []byte("RZ3")),
			})
		}
	}
	return layer
}

// ApplyGateParams applies one brick (Rz.Rx.Rz on each qubit, then CNOT) to psi.
func ApplyGateParams(psi *mps.MPS, trunc mps.Truncation, g GateParams) {
	psi.Apply1Q(g.K, mps.Rz(g.A0))
	psi.Apply1Q(g.K, mps.Rx(g.B0))
	psi.Apply1Q(g.K, mps.Rz(g.C0))
	psi.Apply1Q(g.K+1, mps.Rz(g.A1))
	psi.Apply1Q(g.K+1, mps.Rx(g.B1))
	psi.Apply1Q(g.K+1, mps.Rz(g.C1))
	psi.ApplyCNOT(g.K, trunc)
}

// ApplyLayer applies every brick in layer, in order, to psi.
func ApplyLayer(psi *mps.MPS, trunc mps.Truncation, layer []GateParams) {
	for _, g := range layer {
		ApplyGateParams(psi, trunc, g)
	}
}

// ApplyBrickworkLayer draws and applies one full brickwork layer.
func ApplyBrickworkLayer(psi *mps.MPS, trunc mps.Truncation, r *rng.ONDRng) {
	layer := BuildBrickworkLayer(psi.Len(), r)
	ApplyLayer(psi, trunc, layer)
}

// ChiMax returns the largest bond dimension anywhere in psi.
func ChiMax(psi *mps.MPS) int {
	chi := 1
	for _, s := range psi.Sites {
		dl, _, dr := s.Dims()
		if dl > chi {
			chi = dl
		}
		if dr > chi {
			chi = dr
		}
	}
	return chi
}
