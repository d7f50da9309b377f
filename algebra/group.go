// Package algebra gathers the number-theoretic helpers of the protocol that
// depend on the election parameters: group membership, the enumeration of
// primes inside the encryption group and Fiat-Shamir challenges.
package algebra

import (
	"errors"
	"fmt"
	"math/big"

	lru "github.com/hashicorp/golang-lru"
	"github.com/takakv/votecast/hashing"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/util"
)

// ErrNotEnoughPrimesInGroup is returned when G_q holds fewer small primes
// than requested.
var ErrNotEnoughPrimesInGroup = errors.New("not enough primes in group")

const primeCacheSize = 32

var two = big.NewInt(2)

// GroupAlgebra is safe for concurrent use.
type GroupAlgebra struct {
	pp     *params.PublicParameters
	hash   hashing.Hash
	primes *lru.Cache // n -> the first n primes of G_q
}

func New(pp *params.PublicParameters, h hashing.Hash) *GroupAlgebra {
	cache, err := lru.New(primeCacheSize)
	if err != nil {
		panic(err)
	}
	return &GroupAlgebra{pp: pp, hash: h, primes: cache}
}

// IsMember reports whether x is in the encryption group G_q.
func (ga *GroupAlgebra) IsMember(x *big.Int) bool {
	return ga.pp.EncryptionGroup.IsMember(x)
}

// IsMemberGqHat reports whether x is in the identification group.
func (ga *GroupAlgebra) IsMemberGqHat(x *big.Int) bool {
	return ga.pp.IdentificationGroup.IsMember(x)
}

// IsInZq reports whether 0 <= x < q.
func (ga *GroupAlgebra) IsInZq(x *big.Int) bool {
	return ga.pp.EncryptionGroup.IsInZq(x)
}

// IsInZqHat reports whether 0 <= x < q̂.
func (ga *GroupAlgebra) IsInZqHat(x *big.Int) bool {
	return ga.pp.IdentificationGroup.IsInZq(x)
}

// IsInZpPrime reports whether 0 <= x < p'.
func (ga *GroupAlgebra) IsInZpPrime(x *big.Int) bool {
	return ga.pp.PrimeField.Contains(x)
}

// Primes returns the first n primes, in increasing order, that are members
// of G_q. The returned slice is a fresh copy.
func (ga *GroupAlgebra) Primes(n int) ([]*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative prime count %d", n)
	}
	if cached, ok := ga.primes.Get(n); ok {
		return copyInts(cached.([]*big.Int)), nil
	}

	p := ga.pp.EncryptionGroup.P()
	primes := make([]*big.Int, 0, n)
	x := new(big.Int).Set(two)
	for len(primes) < n {
		if x.Cmp(p) >= 0 {
			return nil, fmt.Errorf("%w: G_q holds %d primes, %d requested", ErrNotEnoughPrimesInGroup, len(primes), n)
		}
		if x.ProbablyPrime(20) && ga.IsMember(x) {
			primes = append(primes, new(big.Int).Set(x))
		}
		if x.Cmp(two) == 0 {
			x.SetInt64(3)
		} else {
			x.Add(x, two)
		}
	}

	ga.primes.Add(n, primes)
	return copyInts(primes), nil
}

// Challenge derives the Fiat-Shamir challenge of public values y and
// commitments t, reduced modulo n.
func (ga *GroupAlgebra) Challenge(y, t []*big.Int, n *big.Int) *big.Int {
	digest := ga.hash.RecHash(y, t)
	return new(big.Int).Mod(util.ToInteger(digest), n)
}

func copyInts(xs []*big.Int) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = new(big.Int).Set(x)
	}
	return out
}
