package group

import (
	"math/big"

	"github.com/ing-bank/zkrp/util/bn"
	"github.com/takakv/votecast/random"
)

// PrimeField is Z_p' for a prime p'. Return-code points live in it.
type PrimeField struct {
	order *big.Int
}

func NewPrimeField(p *big.Int) *PrimeField {
	return &PrimeField{order: new(big.Int).Set(p)}
}

// P returns the field order. It must not be modified.
func (f *PrimeField) P() *big.Int {
	return f.order
}

// Contains reports whether 0 <= x < p'.
func (f *PrimeField) Contains(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(f.order) < 0
}

func (f *PrimeField) Add(x, y *big.Int) *big.Int {
	return bn.Mod(new(big.Int).Add(x, y), f.order)
}

func (f *PrimeField) Mul(x, y *big.Int) *big.Int {
	return bn.Mod(bn.Multiply(x, y), f.order)
}

// Random samples uniformly from Z_p'.
func (f *PrimeField) Random(src random.Source) (*big.Int, error) {
	return src.IntN(f.order)
}

// RandomNonZero samples uniformly from Z_p' \ {0}.
func (f *PrimeField) RandomNonZero(src random.Source) (*big.Int, error) {
	x, err := src.IntN(new(big.Int).Sub(f.order, one))
	if err != nil {
		return nil, err
	}
	return x.Add(x, one), nil
}
