package mps

// leftEnv returns L_k flattened as a length dl_k^2 vector with index
// l*dl_k + l', the double-layer contraction of every site strictly left
// of k. L_0 is the 1x1 identity.
func leftEnv(sites []*Site, k int) []complex128 {
	env := []complex128{1}
	for i := 0; i < k; i++ {
		a := sites[i]
		next := make([]complex128, a.dr*a.dr)
		for l := 0; l < a.dl; l++ {
			for lp := 0; lp < a.dl; lp++ {
				lval := env[l*a.dl+lp]
				for p := 0; p < a.dp; p++ {
					for r := 0; r < a.dr; r++ {
						aval := a.Get(l, p, r)
						for rp := 0; rp < a.dr; rp++ {
							idx := r*a.dr + rp
							next[idx] += lval * aval * conj(a.Get(lp, p, rp))
						}
					}
				}
			}
		}
		env = next
	}
	return env
}

// rightEnv returns R_k flattened as a length dr_k^2 vector with index
// l*dr_k + l', the double-layer contraction of every site strictly
// right of k. R_{n-1} is the 1x1 identity.
func rightEnv(sites []*Site, k int) []complex128 {
	env := []complex128{1}
	for i := len(sites) - 1; i > k; i-- {
		a := sites[i]
		next := make([]complex128, a.dl*a.dl)
		for r := 0; r < a.dr; r++ {
			for rp := 0; rp < a.dr; rp++ {
				rval := env[r*a.dr+rp]
				for p := 0; p < a.dp; p++ {
					for l := 0; l < a.dl; l++ {
						aval := a.Get(l, p, r)
						for lp := 0; lp < a.dl; lp++ {
							idx := l*a.dl + lp
							next[idx] += aval * conj(a.Get(lp, p, rp)) * rval
						}
					}
				}
			}
		}
		env = next
	}
	return env
}

func conj(v complex128) complex128 { return complex(real(v), -imag(v)) }
