package sim

import (
	"time"

	"github.com/fumin/qmps/mps"
	"github.com/fumin/qmps/rng"
)

// ChiRow is one (max_bond, depth, chi_max, layer_ms) sample.
type ChiRow struct {
	MaxBond int
	Depth   int
	ChiMax  int
	LayerMs float64
}

// ChiSweep runs, for each max bond dimension in maxBonds, a brickwork
// circuit on n qubits out to depthMax layers, recording chi_max every
// depthStep layers. All max_bond sweeps share the RNG seed so that the
// same random circuit, truncated differently, is compared.
func ChiSweep(n, depthMax, depthStep int, maxBonds []int, cutoff float64, seed string) []ChiRow {
	var rows []ChiRow

	for _, maxBond := range maxBonds {
		trunc := mps.Truncation{MaxBond: maxBond, Cutoff: cutoff}
		r := rng.New([]byte(seed))
		psi := mps.New(n)

		depth := 0
		for depth < depthMax {
			layers := depthMax - depth
			if layers > depthStep {
				layers = depthStep
			}

			start := time.Now()
			for i := 0; i < layers; i++ {
				ApplyBrickworkLayer(psi, trunc, r)
				depth++
			}
			elapsed := time.Since(start).Seconds()
			layerMs := (elapsed / float64(layers)) * 1000

			rows = append(rows, ChiRow{MaxBond: maxBond, Depth: depth, ChiMax: ChiMax(psi), LayerMs: layerMs})
		}
	}

	return rows
}
