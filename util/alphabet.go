package util

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrUnknownCharacter is returned when a string contains a character outside its alphabet.
var ErrUnknownCharacter = errors.New("character not in alphabet")

// Alphabet is an ordered set of printable characters used as the digits of a
// base-|A| representation. The rank of a character is its position.
type Alphabet struct {
	chars []rune
	rank  map[rune]int
}

// NewAlphabet builds an alphabet from the characters of s, in order.
func NewAlphabet(s string) (*Alphabet, error) {
	a := &Alphabet{rank: make(map[rune]int)}
	for _, c := range s {
		if _, ok := a.rank[c]; ok {
			return nil, fmt.Errorf("duplicate character %q in alphabet", c)
		}
		a.rank[c] = len(a.chars)
		a.chars = append(a.chars, c)
	}
	if len(a.chars) < 2 {
		return nil, errors.New("an alphabet needs at least two characters")
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error. It is meant for
// package-level presets.
func MustAlphabet(s string) *Alphabet {
	a, err := NewAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Size returns the number of characters.
func (a *Alphabet) Size() int {
	return len(a.chars)
}

func (a *Alphabet) String() string {
	return string(a.chars)
}

// ToInteger decodes s as a base-|A| number, most significant character first.
func (a *Alphabet) ToInteger(s string) (*big.Int, error) {
	n := big.NewInt(int64(len(a.chars)))
	x := new(big.Int)
	for _, c := range s {
		r, ok := a.rank[c]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCharacter, c)
		}
		x.Mul(x, n)
		x.Add(x, big.NewInt(int64(r)))
	}
	return x, nil
}

// EncodeInteger writes x with exactly l characters, most significant first,
// padding with the first character of the alphabet.
func (a *Alphabet) EncodeInteger(x *big.Int, l int) (string, error) {
	n := big.NewInt(int64(len(a.chars)))
	if x.Sign() < 0 || x.Cmp(new(big.Int).Exp(n, big.NewInt(int64(l)), nil)) >= 0 {
		return "", fmt.Errorf("%w: %s does not fit %d characters", ErrOutOfRange, x, l)
	}
	digits := Decompose(x, n, l)
	out := make([]rune, l)
	for i, d := range digits {
		out[l-1-i] = a.chars[d.Int64()]
	}
	return string(out), nil
}

// StringLength returns the number of characters needed to encode any array of
// byteLen bytes, i.e. the smallest l such that |A|^l >= 256^byteLen.
func (a *Alphabet) StringLength(byteLen int) int {
	n := big.NewInt(int64(len(a.chars)))
	bound := new(big.Int).Lsh(big.NewInt(1), uint(8*byteLen))
	acc := big.NewInt(1)
	l := 0
	for acc.Cmp(bound) < 0 {
		acc.Mul(acc, n)
		l++
	}
	return l
}

// ToString encodes b, read as a big-endian integer, with StringLength(len(b)) characters.
func (a *Alphabet) ToString(b []byte) string {
	s, err := a.EncodeInteger(ToInteger(b), a.StringLength(len(b)))
	if err != nil {
		// unreachable: the length is chosen to fit every value of len(b) bytes
		panic(err)
	}
	return s
}
