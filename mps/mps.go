// Package mps implements a matrix-product-state representation of an
// n-qubit system, together with gate application, observables,
// measurement, and noise primitives.
//
// References:
//   - The density-matrix renormalization group in the age of matrix product states, Ulrich Schollwock
package mps

import "fmt"

const (
	// siteLeftAxis is the axis of T[l, p, r] varying slowest.
	siteLeftAxis  = 0
	sitePhysAxis  = 1
	siteRightAxis = 2

	physDim = 2
)

// Site is a rank-3 dense tensor T[l, p, r] with left bond dimension dl,
// physical dimension dp (always 2, qubits only), and right bond
// dimension dr. Storage is row-major with r fastest, then p, then l.
type Site struct {
	data   []complex128
	dl, dp, dr int
}

// NewSite creates a zero tensor of the given dimensions.
func NewSite(dl, dp, dr int) *Site {
	return &Site{data: make([]complex128, dl*dp*dr), dl: dl, dp: dp, dr: dr}
}

func (s *Site) idx(l, p, r int) int {
	if l < 0 || l >= s.dl || p < 0 || p >= s.dp || r < 0 || r >= s.dr {
		panic(fmt.Sprintf("index (%d,%d,%d) out of bounds for shape (%d,%d,%d)", l, p, r, s.dl, s.dp, s.dr))
	}
	return (l*s.dp+p)*s.dr + r
}

// Get returns T[l, p, r].
func (s *Site) Get(l, p, r int) complex128 { return s.data[s.idx(l, p, r)] }

// Set assigns T[l, p, r] = v.
func (s *Site) Set(l, p, r int, v complex128) { s.data[s.idx(l, p, r)] = v }

// Dims returns (dl, dp, dr).
func (s *Site) Dims() (int, int, int) { return s.dl, s.dp, s.dr }

func (s *Site) clone() *Site {
	c := &Site{data: make([]complex128, len(s.data)), dl: s.dl, dp: s.dp, dr: s.dr}
	copy(c.data, s.data)
	return c
}

// MPS is an ordered chain of site tensors representing an n-qubit state.
type MPS struct {
	Sites []*Site
}

// New creates the product state |0...0> on n qubits.
func New(n int) *MPS {
	if n < 1 {
		panic(fmt.Sprintf("mps: n must be >= 1, got %d", n))
	}
	sites := make([]*Site, n)
	for i := range sites {
		t := NewSite(1, physDim, 1)
		t.Set(0, 0, 0, 1)
		sites[i] = t
	}
	return &MPS{Sites: sites}
}

// Len returns the number of sites.
func (m *MPS) Len() int { return len(m.Sites) }

// Clone performs a deep copy; no site tensor is shared with m.
func (m *MPS) Clone() *MPS {
	c := &MPS{Sites: make([]*Site, len(m.Sites))}
	for i, s := range m.Sites {
		c.Sites[i] = s.clone()
	}
	return c
}

// Apply1Q contracts the 2x2 unitary u onto the physical axis of site k
// in place: T'[l,p,r] = sum_p' u[p,p'] T[l,p',r].
func (m *MPS) Apply1Q(k int, u [2][2]complex128) {
	if k < 0 || k >= len(m.Sites) {
		panic(fmt.Sprintf("mps: site index %d out of range [0,%d)", k, len(m.Sites)))
	}
	s := m.Sites[k]
	out := NewSite(s.dl, s.dp, s.dr)
	for l := 0; l < s.dl; l++ {
		for r := 0; r < s.dr; r++ {
			for p := 0; p < 2; p++ {
				var acc complex128
				for pp := 0; pp < 2; pp++ {
					acc += u[p][pp] * s.Get(l, pp, r)
				}
				out.Set(l, p, r, acc)
			}
		}
	}
	m.Sites[k] = out
}
