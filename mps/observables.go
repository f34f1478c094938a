package mps

import "fmt"

// siteWeight returns the real, non-negative weight w_k(p) of physical
// outcome p at site k, floored at 0 to absorb round-off.
func siteWeight(m *MPS, k, p int) float64 {
	s := m.Sites[k]
	left := leftEnv(m.Sites, k)
	right := rightEnv(m.Sites, k)

	var acc complex128
	for l := 0; l < s.dl; l++ {
		for lp := 0; lp < s.dl; lp++ {
			lval := left[l*s.dl+lp]
			for r := 0; r < s.dr; r++ {
				for rp := 0; rp < s.dr; rp++ {
					rval := right[r*s.dr+rp]
					acc += lval * s.Get(l, p, r) * conj(s.Get(lp, p, rp)) * rval
				}
			}
		}
	}
	if real(acc) < 0 {
		return 0
	}
	return real(acc)
}

// siteElement returns the off-diagonal double-layer element E_k[p,p'].
func siteElement(m *MPS, k, p, pp int) complex128 {
	s := m.Sites[k]
	left := leftEnv(m.Sites, k)
	right := rightEnv(m.Sites, k)

	var acc complex128
	for l := 0; l < s.dl; l++ {
		for lp := 0; lp < s.dl; lp++ {
			lval := left[l*s.dl+lp]
			for r := 0; r < s.dr; r++ {
				for rp := 0; rp < s.dr; rp++ {
					rval := right[r*s.dr+rp]
					acc += lval * s.Get(l, p, r) * conj(s.Get(lp, pp, rp)) * rval
				}
			}
		}
	}
	return acc
}

func requireQubit(s *Site, who string) {
	if s.dp != 2 {
		panic(fmt.Sprintf("mps: %s supports qubits only, got dp=%d", who, s.dp))
	}
}

func requireNeighbor(i, j int, who string) {
	if j != i+1 {
		panic(fmt.Sprintf("mps: %s supports nearest neighbors only, got (%d,%d)", who, i, j))
	}
}

func expectSingleSite(m *MPS, k int, op [2][2]complex128) float64 {
	w0 := siteWeight(m, k, 0)
	w1 := siteWeight(m, k, 1)
	denom := w0 + w1
	if denom == 0 {
		return 0
	}

	var numer complex128
	for p := 0; p < 2; p++ {
		for pp := 0; pp < 2; pp++ {
			numer += op[pp][p] * siteElement(m, k, p, pp)
		}
	}
	return real(numer) / denom
}

// ExpectZ returns <Z_k>.
func ExpectZ(m *MPS, k int) float64 {
	requireQubit(m.Sites[k], "ExpectZ")

	w0 := siteWeight(m, k, 0)
	w1 := siteWeight(m, k, 1)
	denom := w0 + w1
	if denom == 0 {
		return 0
	}
	return (w0 - w1) / denom
}

// ExpectX returns <X_k>.
func ExpectX(m *MPS, k int) float64 {
	requireQubit(m.Sites[k], "ExpectX")
	return expectSingleSite(m, k, PauliX())
}

// ExpectY returns <Y_k>.
func ExpectY(m *MPS, k int) float64 {
	requireQubit(m.Sites[k], "ExpectY")
	return expectSingleSite(m, k, PauliY())
}

// ExpectZZ returns <Z_i Z_j> for nearest neighbors j == i+1.
func ExpectZZ(m *MPS, i, j int) float64 {
	requireNeighbor(i, j, "ExpectZZ")
	a, b := m.Sites[i], m.Sites[j]
	requireQubit(a, "ExpectZZ")
	requireQubit(b, "ExpectZZ")

	left := leftEnv(m.Sites, i)
	right := rightEnv(m.Sites, j)

	var weights [2][2]float64
	for pi := 0; pi < 2; pi++ {
		for pj := 0; pj < 2; pj++ {
			var acc complex128
			for l := 0; l < a.dl; l++ {
				for lp := 0; lp < a.dl; lp++ {
					lval := left[l*a.dl+lp]
					for r := 0; r < b.dr; r++ {
						for rp := 0; rp < b.dr; rp++ {
							rval := right[r*b.dr+rp]
							for mm := 0; mm < a.dr; mm++ {
								for mp := 0; mp < a.dr; mp++ {
									acc += lval *
										a.Get(l, pi, mm) * b.Get(mm, pj, r) *
										conj(a.Get(lp, pi, mp)) * conj(b.Get(mp, pj, rp)) *
										rval
								}
							}
						}
					}
				}
			}
			v := real(acc)
			if v < 0 {
				v = 0
			}
			weights[pi][pj] = v
		}
	}

	denom := weights[0][0] + weights[0][1] + weights[1][0] + weights[1][1]
	if denom == 0 {
		return 0
	}
	numer := weights[0][0] - weights[0][1] - weights[1][0] + weights[1][1]
	return numer / denom
}

func expectTwoSite(m *MPS, i, j int, op [4][4]complex128) float64 {
	requireNeighbor(i, j, "expectTwoSite")
	a, b := m.Sites[i], m.Sites[j]
	requireQubit(a, "expectTwoSite")
	requireQubit(b, "expectTwoSite")

	left := leftEnv(m.Sites, i)
	right := rightEnv(m.Sites, j)

	var denom float64
	var numer complex128

	for pi := 0; pi < 2; pi++ {
		for pj := 0; pj < 2; pj++ {
			for qi := 0; qi < 2; qi++ {
				for qj := 0; qj < 2; qj++ {
					opVal := op[pi*2+pj][qi*2+qj]

					var acc complex128
					for l := 0; l < a.dl; l++ {
						for lp := 0; lp < a.dl; lp++ {
							lval := left[l*a.dl+lp]
							for r := 0; r < b.dr; r++ {
								for rp := 0; rp < b.dr; rp++ {
									rval := right[r*b.dr+rp]
									for mm := 0; mm < a.dr; mm++ {
										for mp := 0; mp < a.dr; mp++ {
											acc += lval *
												a.Get(l, pi, mm) * b.Get(mm, pj, r) *
												conj(a.Get(lp, qi, mp)) * conj(b.Get(mp, qj, rp)) *
												rval
										}
									}
								}
							}
						}
					}

					numer += opVal * acc
					if pi == qi && pj == qj {
						v := real(acc)
						if v < 0 {
							v = 0
						}
						denom += v
					}
				}
			}
		}
	}

	if denom == 0 {
		return 0
	}
	return real(numer) / denom
}

func kron2(a, b [2][2]complex128) [4][4]complex128 {
	var out [4][4]complex128
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					out[i*2+k][j*2+l] = a[i][j] * b[k][l]
				}
			}
		}
	}
	return out
}

// ExpectXX returns <X_i X_j> for nearest neighbors.
func ExpectXX(m *MPS, i, j int) float64 {
	return expectTwoSite(m, i, j, kron2(PauliX(), PauliX()))
}

// ExpectYY returns <Y_i Y_j> for nearest neighbors.
func ExpectYY(m *MPS, i, j int) float64 {
	return expectTwoSite(m, i, j, kron2(PauliY(), PauliY()))
}
