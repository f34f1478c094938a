package mps

import "github.com/fumin/qmps/rng"

// Depolarize1Q applies a single-qubit depolarizing channel at site k
// with probability p via a random Pauli kick: no-op with probability
// 1-p, otherwise X, Y, or Z each with probability p/3.
func (m *MPS) Depolarize1Q(k int, p float64, r *rng.ONDRng) {
	if p <= 0 {
		return
	}

	x := r.Float64([]byte("DEPOL_1Q"))
	if x >= p {
		return
	}

	switch frac := x / p; {
	case frac < 1.0/3.0:
		m.Apply1Q(k, PauliX())
	case frac < 2.0/3.0:
		m.Apply1Q(k, PauliY())
	default:
		m.Apply1Q(k, PauliZ())
	}
}
