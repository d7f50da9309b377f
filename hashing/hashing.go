// Package hashing implements the recursive hash used for Fiat-Shamir
// challenges, OT key streams and return codes. Outputs are read from a
// SHAKE256 extendable-output function, so any multiple of 8 bits can be
// configured as the security length.
package hashing

import (
	"fmt"
	"math/big"

	"github.com/cloudflare/circl/xof"
)

// Hash computes fixed-length digests of nested values.
type Hash interface {
	// RecHash returns the digest of the given values. A single value is
	// hashed on its own, several values are hashed as one tuple.
	RecHash(values ...any) []byte
	// Size returns the digest length in bytes.
	Size() int
}

// Tuple is implemented by composite values that hash as the vector of
// their elements.
type Tuple interface {
	HashElements() []any
}

// Shake is a Hash over SHAKE256.
type Shake struct {
	size int
}

// New returns a Hash producing securityLength-bit digests. The length must
// be a positive multiple of 8.
func New(securityLength int) *Shake {
	if securityLength <= 0 || securityLength%8 != 0 {
		panic(fmt.Sprintf("hashing: invalid security length %d", securityLength))
	}
	return &Shake{size: securityLength / 8}
}

func (h *Shake) Size() int {
	return h.size
}

func (h *Shake) RecHash(values ...any) []byte {
	if len(values) == 1 {
		return h.hash(values[0])
	}
	return h.hash(values)
}

func (h *Shake) hash(v any) []byte {
	switch x := v.(type) {
	case []byte:
		return h.sum(x)
	case string:
		return h.sum([]byte(x))
	case *big.Int:
		if x.Sign() < 0 {
			panic("hashing: negative integer")
		}
		return h.sum(x.Bytes())
	case int:
		return h.hash(big.NewInt(int64(x)))
	case []*big.Int:
		parts := make([]any, len(x))
		for i := range x {
			parts[i] = x[i]
		}
		return h.hash(parts)
	case []any:
		buf := make([]byte, 0, len(x)*h.size)
		for _, e := range x {
			buf = append(buf, h.hash(e)...)
		}
		return h.sum(buf)
	case Tuple:
		return h.hash(x.HashElements())
	default:
		panic(fmt.Sprintf("hashing: unsupported type %T", v))
	}
}

func (h *Shake) sum(b []byte) []byte {
	s := xof.SHAKE256.New()
	_, _ = s.Write(b)
	out := make([]byte, h.size)
	_, _ = s.Read(out)
	return out
}

// KeyStream stretches the group element k into n pseudo-random bytes by
// hashing (k, 1), (k, 2), ... and truncating the concatenation.
func KeyStream(h Hash, k *big.Int, n int) []byte {
	blocks := (n + h.Size() - 1) / h.Size()
	out := make([]byte, 0, blocks*h.Size())
	for z := 1; z <= blocks; z++ {
		out = append(out, h.RecHash(k, big.NewInt(int64(z)))...)
	}
	return out[:n]
}
