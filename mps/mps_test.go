package mps

import (
	"fmt"
	"math"
	"testing"
)

const tol1e12 = 1e-12

func bellState(trunc Truncation) *MPS {
	m := New(2)
	m.Apply1Q(0, Hadamard())
	m.ApplyCNOT(0, trunc)
	return m
}

func TestBellStateZCorrelations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		maxBond int
	}{
		{maxBond: 2},
		{maxBond: 8},
		{maxBond: 64},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("maxBond=%d", test.maxBond), func(t *testing.T) {
			t.Parallel()
			trunc := Truncation{MaxBond: test.maxBond, Cutoff: 1e-12}
			psi := bellState(trunc)

			if v := ExpectZ(psi, 0); math.Abs(v) > tol1e12 {
				t.Fatalf("ExpectZ(0) = %v, want 0", v)
			}
			if v := ExpectZ(psi, 1); math.Abs(v) > tol1e12 {
				t.Fatalf("ExpectZ(1) = %v, want 0", v)
			}
			if v := ExpectZZ(psi, 0, 1); math.Abs(v-1) > tol1e12 {
				t.Fatalf("ExpectZZ(0,1) = %v, want 1", v)
			}
		})
	}
}

func TestBellHeisenbergIdentity(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}
	psi := bellState(trunc)

	if v := ExpectXX(psi, 0, 1); math.Abs(v-1) > tol1e12 {
		t.Fatalf("ExpectXX = %v, want 1", v)
	}
	if v := ExpectYY(psi, 0, 1); math.Abs(v+1) > tol1e12 {
		t.Fatalf("ExpectYY = %v, want -1", v)
	}
	if v := ExpectZZ(psi, 0, 1); math.Abs(v-1) > tol1e12 {
		t.Fatalf("ExpectZZ = %v, want 1", v)
	}

	tests := []struct {
		jx, jy, jz float64
	}{
		{jx: 1, jy: 1, jz: 1},
		{jx: 2, jy: -1, jz: 0.5},
		{jx: 0, jy: 0, jz: 3},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%#v", test), func(t *testing.T) {
			t.Parallel()
			h := Heisenberg{Jx: []float64{test.jx}, Jy: []float64{test.jy}, Jz: []float64{test.jz}}
			e := EnergyHeisenberg(psi, h)
			want := test.jx - test.jy + test.jz
			if math.Abs(e-want) > tol1e12 {
				t.Fatalf("energy = %v, want %v", e, want)
			}
		})
	}
}

func TestIsingEnergyOnBell(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}
	psi := bellState(trunc)

	h := Hamiltonian{ZFields: []float64{0, 0}, ZZCouplings: []float64{1}}
	e := Energy(psi, h)
	if math.Abs(e-1) > tol1e12 {
		t.Fatalf("energy = %v, want 1", e)
	}
}

func TestScenarioS1(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}
	psi := bellState(trunc)

	if v := ExpectZZ(psi, 0, 1); math.Abs(v-1) > tol1e12 {
		t.Fatalf("ExpectZZ = %v, want 1.0", v)
	}
	h := Hamiltonian{ZFields: []float64{0, 0}, ZZCouplings: []float64{1}}
	if e := Energy(psi, h); math.Abs(e-1) > tol1e12 {
		t.Fatalf("Energy = %v, want 1.0", e)
	}
}

func TestOverlapSymmetry(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}
	a := bellState(trunc)
	b := New(2)
	b.Apply1Q(0, Rx(0.3))
	b.ApplyCNOT(0, trunc)

	ab := Overlap(a, b)
	ba := Overlap(b, a)
	if d := cmplxAbs(ab - cmplxConjForTest(ba)); d > tol1e12 {
		t.Fatalf("<a|b> = %v, conj(<b|a>) = %v", ab, cmplxConjForTest(ba))
	}

	aa := Overlap(a, a)
	if math.Abs(imag(aa)) > tol1e12 {
		t.Fatalf("<a|a> not real: %v", aa)
	}
	if real(aa) < 0 {
		t.Fatalf("<a|a> negative: %v", aa)
	}
}

func cmplxAbs(v complex128) float64 {
	return math.Hypot(real(v), imag(v))
}

func cmplxConjForTest(v complex128) complex128 {
	return complex(real(v), -imag(v))
}

func TestApply1QPreservesShape(t *testing.T) {
	t.Parallel()
	psi := New(3)
	psi.Apply1Q(1, Hadamard())
	dl, dp, dr := psi.Sites[1].Dims()
	if dl != 1 || dp != 2 || dr != 1 {
		t.Fatalf("dims = (%d,%d,%d), want (1,2,1)", dl, dp, dr)
	}
}

func TestApply2QPanicsOnOutOfRange(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	psi := New(2)
	psi.Apply2Q(1, CNOT(), Truncation{MaxBond: 2, Cutoff: 0})
}

func TestApply2QPanicsOnZeroMaxBond(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	psi := New(2)
	psi.Apply2Q(0, CNOT(), Truncation{MaxBond: 0, Cutoff: 0})
}
