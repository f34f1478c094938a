package mps

import "math"

// Hadamard returns the 1-qubit Hadamard gate.
func Hadamard() [2][2]complex128 {
	s := 1 / math.Sqrt2
	return [2][2]complex128{
		{complex(s, 0), complex(s, 0)},
		{complex(s, 0), complex(-s, 0)},
	}
}

// PauliX returns the Pauli X gate.
func PauliX() [2][2]complex128 {
	return [2][2]complex128{
		{0, 1},
		{1, 0},
	}
}

// PauliY returns the Pauli Y gate.
func PauliY() [2][2]complex128 {
	return [2][2]complex128{
		{0, complex(0, -1)},
		{complex(0, 1), 0},
	}
}

// PauliZ returns the Pauli Z gate.
func PauliZ() [2][2]complex128 {
	return [2][2]complex128{
		{1, 0},
		{0, -1},
	}
}

// Rx returns the 1-qubit rotation about X by theta.
func Rx(theta float64) [2][2]complex128 {
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	return [2][2]complex128{
		{complex(c, 0), complex(0, -s)},
		{complex(0, -s), complex(c, 0)},
	}
}

// Rz returns diag(cos(theta/2) - i*sin(theta/2), cos(theta/2) + i*sin(theta/2)).
// This is diag(e^{-i theta/2}, e^{i theta/2}) written out with cos/sin,
// and equals diag(1, e^{i theta}) up to an overall phase. The cos/sin
// literal is the source's own definition and is preserved for bit-exact
// reproduction of existing artifacts.
func Rz(theta float64) [2][2]complex128 {
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	return [2][2]complex128{
		{complex(c, -s), 0},
		{0, complex(c, s)},
	}
}

// CNOT returns the 2-qubit CNOT gate: |00>->|00>, |01>->|01>, |10>->|11>, |11>->|10>.
func CNOT() [4][4]complex128 {
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
}

// CZ returns diag(1, 1, 1, -1).
func CZ() [4][4]complex128 {
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	}
}

// ApplyCNOT applies CNOT to the neighbor pair (k, k+1) under trunc.
func (m *MPS) ApplyCNOT(k int, trunc Truncation) {
	m.Apply2Q(k, CNOT(), trunc)
}

// ApplyCZ applies CZ to the neighbor pair (k, k+1) under trunc.
func (m *MPS) ApplyCZ(k int, trunc Truncation) {
	m.Apply2Q(k, CZ(), trunc)
}
