package group

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ing-bank/zkrp/util/bn"
	"github.com/takakv/votecast/random"
)

var one = big.NewInt(1)

// ModPGroup is the prime-order subgroup G_q of Z_p^* generated by g.
// The same type serves the encryption and the identification group, so both
// share one implementation of the modular arithmetic.
// Values returned by P, Q and G must not be modified.
type ModPGroup struct {
	gen        *big.Int
	fieldOrder *big.Int
	groupOrder *big.Int
	name       string
	safe       bool // p = 2q + 1
}

// NewSubgroup describes the subgroup of order q of Z_p^* generated by g.
// Use Validate to check the description.
func NewSubgroup(name string, p, q, g *big.Int) *ModPGroup {
	G := new(ModPGroup)
	G.fieldOrder = new(big.Int).Set(p)
	G.groupOrder = new(big.Int).Set(q)
	G.gen = new(big.Int).Set(g)
	G.name = name
	G.safe = new(big.Int).Add(new(big.Int).Lsh(q, 1), one).Cmp(p) == 0
	return G
}

// NewModPGroup builds the group of quadratic residues of a safe prime given
// in hexadecimal, as published in RFC 3526. It panics on malformed input.
func NewModPGroup(name string, fieldOrder, generator string) *ModPGroup {
	repr := strings.Join(strings.Fields(fieldOrder), "")

	ffOrder, ok := new(big.Int).SetString(repr, 16)
	if !ok {
		panic("invalid group definition")
	}

	gen, ok := new(big.Int).SetString(generator, 16)
	if !ok {
		panic("invalid generator")
	}

	genOrder := new(big.Int).Set(ffOrder)
	genOrder.Sub(genOrder, one)
	genOrder.Div(genOrder, big.NewInt(2))

	return NewSubgroup(name, ffOrder, genOrder, gen)
}

func (g *ModPGroup) Name() string {
	return g.name
}

// P returns the modulus.
func (g *ModPGroup) P() *big.Int {
	return g.fieldOrder
}

// Q returns the group order.
func (g *ModPGroup) Q() *big.Int {
	return g.groupOrder
}

// G returns the generator.
func (g *ModPGroup) G() *big.Int {
	return g.gen
}

func (g *ModPGroup) Equal(h *ModPGroup) bool {
	if g == h {
		return true
	}
	return g.fieldOrder.Cmp(h.fieldOrder) == 0 &&
		g.groupOrder.Cmp(h.groupOrder) == 0 &&
		g.gen.Cmp(h.gen) == 0
}

// Validate checks that p and q are (probably) prime, that q divides p-1 and
// that g is a non-unit element of the subgroup.
func (g *ModPGroup) Validate() error {
	if !g.fieldOrder.ProbablyPrime(32) {
		return fmt.Errorf("%s: p is not prime", g.name)
	}
	if !g.groupOrder.ProbablyPrime(32) {
		return fmt.Errorf("%s: q is not prime", g.name)
	}
	pm1 := new(big.Int).Sub(g.fieldOrder, one)
	if new(big.Int).Mod(pm1, g.groupOrder).Sign() != 0 {
		return fmt.Errorf("%s: q does not divide p-1", g.name)
	}
	if g.gen.Cmp(one) == 0 || !g.IsMember(g.gen) {
		return fmt.Errorf("%s: g does not generate G_q", g.name)
	}
	return nil
}

// IsMember reports whether 1 <= x < p and x^q = 1 mod p.
func (g *ModPGroup) IsMember(x *big.Int) bool {
	if x == nil || x.Sign() <= 0 || x.Cmp(g.fieldOrder) >= 0 {
		return false
	}
	if g.safe {
		// the quadratic residues are exactly the subgroup of order q
		return big.Jacobi(x, g.fieldOrder) == 1
	}
	return new(big.Int).Exp(x, g.groupOrder, g.fieldOrder).Cmp(one) == 0
}

// IsInZq reports whether 0 <= x < q.
func (g *ModPGroup) IsInZq(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(g.groupOrder) < 0
}

// Exp returns x^e mod p. Negative exponents use the modular inverse of x.
func (g *ModPGroup) Exp(x, e *big.Int) *big.Int {
	if e.Sign() < 0 {
		pos := new(big.Int).Exp(x, new(big.Int).Neg(e), g.fieldOrder)
		return bn.ModInverse(pos, g.fieldOrder)
	}
	return new(big.Int).Exp(x, e, g.fieldOrder)
}

// BaseExp returns g^e mod p.
func (g *ModPGroup) BaseExp(e *big.Int) *big.Int {
	return g.Exp(g.gen, e)
}

// Mul returns the product of xs mod p, or 1 for no factors.
func (g *ModPGroup) Mul(xs ...*big.Int) *big.Int {
	acc := big.NewInt(1)
	for _, x := range xs {
		acc = bn.Mod(bn.Multiply(acc, x), g.fieldOrder)
	}
	return acc
}

// Inverse returns x^-1 mod p.
func (g *ModPGroup) Inverse(x *big.Int) *big.Int {
	return bn.ModInverse(x, g.fieldOrder)
}

// RandomExponent samples uniformly from Z_q.
func (g *ModPGroup) RandomExponent(src random.Source) (*big.Int, error) {
	return src.IntN(g.groupOrder)
}

// RandomElement samples uniformly from G_q as g^r for r in Z_q.
func (g *ModPGroup) RandomElement(src random.Source) (*big.Int, error) {
	r, err := g.RandomExponent(src)
	if err != nil {
		return nil, err
	}
	return g.BaseExp(r), nil
}
