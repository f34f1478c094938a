package mps

import "fmt"

// Overlap computes <a|b> for two MPS of equal length by sweeping a
// transfer vector left to right.
func Overlap(a, b *MPS) complex128 {
	if a.Len() != b.Len() {
		panic(fmt.Sprintf("mps: overlap length mismatch %d != %d", a.Len(), b.Len()))
	}

	env := []complex128{1}
	for i := 0; i < a.Len(); i++ {
		sa, sb := a.Sites[i], b.Sites[i]
		next := make([]complex128, sa.dr*sb.dr)
		for la := 0; la < sa.dl; la++ {
			for lb := 0; lb < sb.dl; lb++ {
				ev := env[la*sb.dl+lb]
				if ev == 0 {
					continue
				}
				for ra := 0; ra < sa.dr; ra++ {
					for rb := 0; rb < sb.dr; rb++ {
						var acc complex128
						for p := 0; p < sa.dp; p++ {
							acc += conj(sa.Get(la, p, ra)) * sb.Get(lb, p, rb)
						}
						next[ra*sb.dr+rb] += ev * acc
					}
				}
			}
		}
		env = next
	}

	var out complex128
	for _, v := range env {
		out += v
	}
	return out
}
