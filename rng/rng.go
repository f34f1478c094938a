// Package rng implements a deterministic, seedable, context-keyed stream of
// uniform float64 draws in [0, 1].
//
// The stream is built from SHAKE256 extendable-output hashing so that the
// same seed and the same sequence of context tags always produce the same
// draws. The context tag only enters the hash that produces a draw's
// output; the internal state advances once per draw whatever its tag, so
// adding or removing a draw shifts every later draw.
package rng

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// ONDRng is a deterministic random source keyed by a 32-byte state and a
// monotonically increasing step counter.
type ONDRng struct {
	state [32]byte
	step  uint64
}

// New creates an ONDRng whose initial state is derived from seed alone.
func New(seed []byte) *ONDRng {
	r := &ONDRng{}
	shake(r.state[:], seed, []byte("OND_INIT"))
	return r
}

// Float64 advances the stream and returns a uniform draw in [0, 1].
//
// ctx identifies the logical draw site (e.g. "RZ0", "MEASURE_Z",
// "DEPOL_1Q") and is hashed with the advanced state to produce this draw;
// it does not affect the state carried into the next draw.
func (r *ONDRng) Float64(ctx []byte) float64 {
	r.step++

	var stepBE [8]byte
	binary.BigEndian.PutUint64(stepBE[:], r.step)

	var next [32]byte
	shake(next[:], r.state[:], stepBE[:], []byte("QSIM"))
	r.state = next

	var out [8]byte
	shake(out[:], r.state[:], ctx)

	// State-mixing quirk: if the leading byte of the new state is small,
	// mix once more so that low-byte states do not bias the next draw's
	// context hash.
	if r.state[0] < 16 {
		var skipped [32]byte
		shake(skipped[:], r.state[:], []byte("SKIP"))
		r.state = skipped
	}

	u := binary.BigEndian.Uint64(out[:])
	return float64(u) / float64(^uint64(0))
}

func shake(out []byte, parts ...[]byte) {
	h := sha3.NewShake256()
	for _, p := range parts {
		h.Write(p)
	}
	h.Read(out)
}
