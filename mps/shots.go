package mps

import (
	"math"

	"github.com/fumin/qmps/rng"
)

// EstimateZShots estimates <Z_k> from shots projective measurements,
// each on an independent clone of m.
func EstimateZShots(m *MPS, k int, r *rng.ONDRng, shots int) float64 {
	if shots == 0 {
		return 0
	}

	sum := 0.0
	for i := 0; i < shots; i++ {
		trial := m.Clone()
		if trial.MeasureZ(k, r) == 0 {
			sum += 1
		} else {
			sum -= 1
		}
	}
	return sum / float64(shots)
}

// EstimateZZShots estimates <Z_i Z_j> from shots projective
// measurements of site i then site j on the same collapsed clone.
func EstimateZZShots(m *MPS, i, j int, r *rng.ONDRng, shots int) float64 {
	if shots == 0 {
		return 0
	}

	sum := 0.0
	for t := 0; t < shots; t++ {
		trial := m.Clone()
		mi := trial.MeasureZ(i, r)
		mj := trial.MeasureZ(j, r)

		zi, zj := 1.0, 1.0
		if mi != 0 {
			zi = -1
		}
		if mj != 0 {
			zj = -1
		}
		sum += zi * zj
	}
	return sum / float64(shots)
}

// estimateXXShots and estimateYYShots rotate into the X/Y eigenbasis
// with a single-qubit gate before the usual Z measurement: H maps the
// X eigenbasis onto the Z eigenbasis, and Rx(pi/2) maps the Y
// eigenbasis onto the Z eigenbasis up to a global phase, which
// measurement ignores.
func estimateXXShots(m *MPS, i, j int, r *rng.ONDRng, shots int) float64 {
	if shots == 0 {
		return 0
	}
	sum := 0.0
	for t := 0; t < shots; t++ {
		trial := m.Clone()
		trial.Apply1Q(i, Hadamard())
		trial.Apply1Q(j, Hadamard())
		mi := trial.MeasureZ(i, r)
		mj := trial.MeasureZ(j, r)
		zi, zj := 1.0, 1.0
		if mi != 0 {
			zi = -1
		}
		if mj != 0 {
			zj = -1
		}
		sum += zi * zj
	}
	return sum / float64(shots)
}

func estimateYYShots(m *MPS, i, j int, r *rng.ONDRng, shots int) float64 {
	if shots == 0 {
		return 0
	}
	sum := 0.0
	for t := 0; t < shots; t++ {
		trial := m.Clone()
		trial.Apply1Q(i, Rx(math.Pi/2))
		trial.Apply1Q(j, Rx(math.Pi/2))
		mi := trial.MeasureZ(i, r)
		mj := trial.MeasureZ(j, r)
		zi, zj := 1.0, 1.0
		if mi != 0 {
			zi = -1
		}
		if mj != 0 {
			zj = -1
		}
		sum += zi * zj
	}
	return sum / float64(shots)
}
