package mps

import (
	"math"

	"github.com/fumin/qmps/rng"
)

// MeasureZ draws a projective Z outcome at site k and collapses the
// state in place. Returns 0 or 1. If the total weight at k is exactly
// zero (a numerical degeneracy), returns 0 without mutating m.
func (m *MPS) MeasureZ(k int, r *rng.ONDRng) int {
	s := m.Sites[k]
	left := leftEnv(m.Sites, k)
	right := rightEnv(m.Sites, k)

	probs := make([]float64, s.dp)
	for p := 0; p < s.dp; p++ {
		var acc complex128
		for l := 0; l < s.dl; l++ {
			for lp := 0; lp < s.dl; lp++ {
				lval := left[l*s.dl+lp]
				for rr := 0; rr < s.dr; rr++ {
					for rp := 0; rp < s.dr; rp++ {
						rval := right[rr*s.dr+rp]
						acc += lval * s.Get(l, p, rr) * conj(s.Get(lp, p, rp)) * rval
					}
				}
			}
		}
		v := real(acc)
		if v < 0 {
			v = 0
		}
		probs[p] = v
	}

	total := 0.0
	for _, p := range probs {
		total += p
	}
	if total == 0 {
		return 0
	}

	x := r.Float64([]byte("MEASURE_Z")) * total
	outcome := 0
	for idx, p := range probs {
		if x < p {
			outcome = idx
			break
		}
		x -= p
	}

	norm := math.Sqrt(probs[outcome])
	if norm == 0 {
		return outcome
	}

	t := NewSite(s.dl, s.dp, s.dr)
	for l := 0; l < s.dl; l++ {
		for rr := 0; rr < s.dr; rr++ {
			t.Set(l, outcome, rr, s.Get(l, outcome, rr)/complex(norm, 0))
		}
	}
	m.Sites[k] = t

	return outcome
}
