package mps

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Truncation is the bond-truncation policy applied after a two-site SVD:
// keep singular values above Cutoff, capped at MaxBond, but never fewer
// than one so adjacency is never broken.
type Truncation struct {
	MaxBond int
	Cutoff  float64
}

// Apply2Q fuses sites k and k+1 with the 4x4 unitary u, performs a thin
// SVD of the resulting two-site block, truncates under trunc, and folds
// the singular values into the left factor (sigma-on-the-left
// convention). k+1 must be a valid site index.
func (m *MPS) Apply2Q(k int, u [4][4]complex128, trunc Truncation) {
	if k < 0 || k+1 >= len(m.Sites) {
		panic(fmt.Sprintf("mps: pair (%d,%d) out of range for chain of length %d", k, k+1, len(m.Sites)))
	}
	if trunc.MaxBond < 1 {
		panic(fmt.Sprintf("mps: MaxBond must be >= 1, got %d", trunc.MaxBond))
	}

	a, b := m.Sites[k], m.Sites[k+1]
	dl, chi, dr := a.dl, a.dr, b.dr

	theta := newCMat(2*dl, 2*dr)
	for l := 0; l < dl; l++ {
		for mm := 0; mm < chi; mm++ {
			for r := 0; r < dr; r++ {
				for p1 := 0; p1 < 2; p1++ {
					for p2 := 0; p2 < 2; p2++ {
						var v complex128
						for q1 := 0; q1 < 2; q1++ {
							for q2 := 0; q2 < 2; q2++ {
								i := p1*2 + p2
								j := q1*2 + q2
								v += u[i][j] * a.Get(l, q1, mm) * b.Get(mm, q2, r)
							}
						}
						row, col := l*2+p1, p2*dr+r
						theta.add(row, col, v)
					}
				}
			}
		}
	}

	uMat, sVals, vMat := thinSVD(theta)

	kept := 0
	for i := 0; i < len(sVals); i++ {
		if sVals[i] > trunc.Cutoff && kept < trunc.MaxBond {
			kept++
		}
	}
	if kept == 0 {
		kept = 1
	}
	for _, sv := range sVals[:kept] {
		if math.IsNaN(sv) || math.IsInf(sv, 0) {
			panic(fmt.Sprintf("mps: non-finite singular value %v", sv))
		}
	}

	newA := NewSite(dl, 2, kept)
	for l := 0; l < dl; l++ {
		for p := 0; p < 2; p++ {
			for mi := 0; mi < kept; mi++ {
				newA.Set(l, p, mi, uMat.at(l*2+p, mi)*complex(sVals[mi], 0))
			}
		}
	}

	newB := NewSite(kept, 2, dr)
	for mi := 0; mi < kept; mi++ {
		for p := 0; p < 2; p++ {
			for r := 0; r < dr; r++ {
				newB.Set(mi, p, r, cmplx.Conj(vMat.at(p*dr+r, mi)))
			}
		}
	}

	m.Sites[k] = newA
	m.Sites[k+1] = newB
}

// cmat is a row-major dense complex matrix used only by the SVD kernel.
type cmat struct {
	data       []complex128
	rows, cols int
}

func newCMat(rows, cols int) *cmat {
	return &cmat{data: make([]complex128, rows*cols), rows: rows, cols: cols}
}

func (c *cmat) at(i, j int) complex128     { return c.data[i*c.cols+j] }
func (c *cmat) set(i, j int, v complex128) { c.data[i*c.cols+j] = v }
func (c *cmat) add(i, j int, v complex128) { c.data[i*c.cols+j] += v }

func identityCMat(n int) *cmat {
	c := newCMat(n, n)
	for i := 0; i < n; i++ {
		c.set(i, i, 1)
	}
	return c
}

// thinSVD computes a economy-size singular value decomposition of a
// complex matrix a (rows x cols) using one-sided complex Jacobi
// rotations: a = u * diag(s) * v^H, with s sorted in descending order
// and p = min(rows, cols) singular triplets returned.
//
// No library in scope exposes a complex-valued SVD, so this kernel is
// hand-rolled following the classical one-sided Jacobi algorithm
// (Hestenes / Demmel & Veselic), generalized to complex columns by
// removing the off-diagonal phase before applying the real 2x2
// rotation.
func thinSVD(a *cmat) (u *cmat, s []float64, v *cmat) {
	rows, cols := a.rows, a.cols
	p := min(rows, cols)

	// Work on a copy whose columns converge to orthogonal vectors of
	// norm sigma_i; v accumulates the right singular vectors.
	work := newCMat(rows, cols)
	copy(work.data, a.data)
	v = identityCMat(cols)

	const maxSweeps = 60
	const tol = 1e-14

	for sweep := 0; sweep < maxSweeps; sweep++ {
		offNorm := 0.0
		for pcol := 0; pcol < cols; pcol++ {
			for qcol := pcol + 1; qcol < cols; qcol++ {
				app, aqq, apq := gram(work, pcol, qcol)
				offNorm += cmplx.Abs(apq) * cmplx.Abs(apq)
				if cmplx.Abs(apq) < tol*math.Sqrt((app+1)*(aqq+1)) {
					continue
				}
				rotateColumns(work, v, pcol, qcol, app, aqq, apq)
			}
		}
		if offNorm < tol*tol {
			break
		}
	}

	sigmas := make([]float64, cols)
	for j := 0; j < cols; j++ {
		var norm2 float64
		for i := 0; i < rows; i++ {
			vv := work.at(i, j)
			norm2 += real(vv)*real(vv) + imag(vv)*imag(vv)
		}
		sigmas[j] = math.Sqrt(norm2)
	}

	order := make([]int, cols)
	for i := range order {
		order[i] = i
	}
	// Simple descending insertion sort; cols is small (bond dimensions
	// bounded by max_bond) so O(cols^2) is not a concern.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && sigmas[order[j]] > sigmas[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	s = make([]float64, p)
	u = newCMat(rows, p)
	vOut := newCMat(cols, p)
	for outCol := 0; outCol < p; outCol++ {
		srcCol := order[outCol]
		sigma := sigmas[srcCol]
		s[outCol] = sigma
		for i := 0; i < cols; i++ {
			vOut.set(i, outCol, v.at(i, srcCol))
		}
		if sigma < 1e-300 {
			continue
		}
		for i := 0; i < rows; i++ {
			u.set(i, outCol, work.at(i, srcCol)/complex(sigma, 0))
		}
	}
	v = vOut
	return u, s, v
}

// gram returns the real diagonal Gram entries and the complex
// off-diagonal entry for columns p and q of work: app = <a_p,a_p>,
// aqq = <a_q,a_q>, apq = <a_p,a_q>.
func gram(work *cmat, p, q int) (app, aqq float64, apq complex128) {
	for i := 0; i < work.rows; i++ {
		ap, aq := work.at(i, p), work.at(i, q)
		app += real(ap)*real(ap) + imag(ap)*imag(ap)
		aqq += real(aq)*real(aq) + imag(aq)*imag(aq)
		apq += cmplx.Conj(ap) * aq
	}
	return app, aqq, apq
}

// rotateColumns applies a complex Jacobi rotation to columns p, q of
// work (and the corresponding columns of v) that annihilates the
// off-diagonal Gram entry apq.
func rotateColumns(work, v *cmat, p, q int, app, aqq float64, apq complex128) {
	mag := cmplx.Abs(apq)
	if mag == 0 {
		return
	}
	phase := apq / complex(mag, 0)

	tau := (aqq - app) / (2 * mag)
	var t float64
	if tau >= 0 {
		t = 1 / (tau + math.Sqrt(1+tau*tau))
	} else {
		t = 1 / (tau - math.Sqrt(1+tau*tau))
	}
	c := 1 / math.Sqrt(1+t*t)
	s := c * t

	for i := 0; i < work.rows; i++ {
		ap, aq := work.at(i, p), work.at(i, q)
		aqPhased := aq * cmplx.Conj(phase)
		newAp := complex(c, 0)*ap - complex(s, 0)*aqPhased
		newAq := complex(s, 0)*ap + complex(c, 0)*aqPhased
		work.set(i, p, newAp)
		work.set(i, q, newAq)
	}
	for i := 0; i < v.rows; i++ {
		vp, vq := v.at(i, p), v.at(i, q)
		vqPhased := vq * cmplx.Conj(phase)
		newVp := complex(c, 0)*vp - complex(s, 0)*vqPhased
		newVq := complex(s, 0)*vp + complex(c, 0)*vqPhased
		v.set(i, p, newVp)
		v.set(i, q, newVq)
	}
}
