// Package random provides the sources of uniform randomness used for OT
// blinding factors and proof commitments.
package random

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/cloudflare/circl/xof"
)

// ErrExhausted is returned by a Sequence that has handed out all its values.
var ErrExhausted = errors.New("random sequence exhausted")

// Source samples uniform integers. Implementations must be safe for
// concurrent use, or be used by a single goroutine.
type Source interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n *big.Int) (*big.Int, error)
}

type secureSource struct{}

// Secure returns a Source backed by crypto/rand.
func Secure() Source {
	return secureSource{}
}

func (secureSource) IntN(n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("invalid modulus %s", n)
	}
	return rand.Int(rand.Reader, n)
}

// Deterministic expands a seed with SHAKE128 and samples by rejection.
type Deterministic struct {
	mu     sync.Mutex
	stream xof.XOF
}

// NewDeterministic returns a reproducible Source. It must never be used
// outside of tests and simulations.
func NewDeterministic(seed []byte) *Deterministic {
	stream := xof.SHAKE128.New()
	_, _ = stream.Write(seed)
	return &Deterministic{stream: stream}
}

func (d *Deterministic) IntN(n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("invalid modulus %s", n)
	}
	bitLen := n.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	excess := uint(len(buf)*8 - bitLen)

	d.mu.Lock()
	defer d.mu.Unlock()
	for {
		if _, err := d.stream.Read(buf); err != nil {
			return nil, err
		}
		buf[0] &= byte(0xFF >> excess)
		x := new(big.Int).SetBytes(buf)
		if x.Cmp(n) < 0 {
			return x, nil
		}
	}
}

// Sequence hands out fixed values in order, each reduced modulo the
// requested bound. It lets tests pin every random choice of an algorithm.
type Sequence struct {
	mu     sync.Mutex
	values []*big.Int
	next   int
}

// NewSequence returns a Sequence over the given values.
func NewSequence(values ...*big.Int) *Sequence {
	return &Sequence{values: values}
}

// Ints is a convenience constructor for small fixed values.
func Ints(values ...int64) *Sequence {
	vs := make([]*big.Int, len(values))
	for i, v := range values {
		vs[i] = big.NewInt(v)
	}
	return NewSequence(vs...)
}

func (s *Sequence) IntN(n *big.Int) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.values) {
		return nil, ErrExhausted
	}
	v := new(big.Int).Mod(s.values[s.next], n)
	s.next++
	return v, nil
}

// Consumed returns how many values have been handed out.
func (s *Sequence) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
