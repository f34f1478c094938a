package mps

import (
	"math"
	"testing"
)

func TestApply2QIdentityPreservesNorm(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}
	psi := New(3)
	psi.Apply1Q(0, Hadamard())

	ident := [4][4]complex128{}
	for i := 0; i < 4; i++ {
		ident[i][i] = 1
	}
	psi.Apply2Q(0, ident, trunc)

	norm := Overlap(psi, psi)
	if math.Abs(real(norm)-1) > 1e-9 {
		t.Fatalf("norm after identity gate = %v, want ~1", norm)
	}
}

func TestApply2QBellBondDimension(t *testing.T) {
	t.Parallel()
	trunc := Truncation{MaxBond: 8, Cutoff: 1e-12}
	psi := New(2)
	psi.Apply1Q(0, Hadamard())
	psi.ApplyCNOT(0, trunc)

	_, _, dr := psi.Sites[0].Dims()
	if dr != 2 {
		t.Fatalf("bond dimension after CNOT on Bell state = %d, want 2", dr)
	}
}

func TestApply2QTruncationNeverBreaksAdjacency(t *testing.T) {
	t.Parallel()
	tests := []struct {
		maxBond int
		cutoff  float64
	}{
		{maxBond: 1, cutoff: 1e-12},
		{maxBond: 1, cutoff: 0.999},
		{maxBond: 4, cutoff: 1e-12},
	}
	for _, test := range tests {
		trunc := Truncation{MaxBond: test.maxBond, Cutoff: test.cutoff}
		psi := New(2)
		psi.Apply1Q(0, Hadamard())
		psi.ApplyCNOT(0, trunc)

		_, _, dr := psi.Sites[0].Dims()
		dl, _, _ := psi.Sites[1].Dims()
		if dr != dl {
			t.Fatalf("adjacency broken: dr=%d dl=%d", dr, dl)
		}
		if dr < 1 {
			t.Fatalf("bond dimension %d < 1", dr)
		}
		if dr > test.maxBond {
			t.Fatalf("bond dimension %d exceeds max_bond %d", dr, test.maxBond)
		}
	}
}

func TestApply2QCapsAtMaxBond(t *testing.T) {
	t.Parallel()
	psi := New(2)
	psi.Apply1Q(0, Hadamard())
	trunc := Truncation{MaxBond: 1, Cutoff: 1e-12}
	psi.ApplyCNOT(0, trunc)

	_, _, dr := psi.Sites[0].Dims()
	if dr != 1 {
		t.Fatalf("bond dimension %d, want capped at 1", dr)
	}
}
