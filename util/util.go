/*
 * Copyright (C) 2019 ING BANK N.V.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package util holds the integer, byte-array and alphabet conversions shared
// by the voting client and the authorities. All conversions are big-endian
// and bit-exact, since independent verifiers recompute the same values.
package util

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrLengthMismatch is returned when two byte arrays must have the same length.
	ErrLengthMismatch = errors.New("byte arrays differ in length")
	// ErrOutOfRange is returned when an integer does not fit the requested width.
	ErrOutOfRange = errors.New("integer out of range")
)

/*
Decompose receives as input a bigint x and outputs an array of l integers such that
x = sum(xi.u^i), i.e. it returns the decomposition of x into base u, least
significant digit first. Digits above l are dropped.
*/
func Decompose(x *big.Int, u *big.Int, l int) []*big.Int {
	result := make([]*big.Int, l)
	rest := new(big.Int).Set(x)

	for i := 0; i < l; i++ {
		digit := new(big.Int)
		rest.DivMod(rest, u, digit)
		result[i] = digit
	}

	return result
}

// ToByteArray returns the big-endian representation of x padded with leading
// zeroes to exactly n bytes.
func ToByteArray(x *big.Int, n int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value", ErrOutOfRange)
	}
	if x.BitLen() > 8*n {
		return nil, fmt.Errorf("%w: %d bits do not fit into %d bytes", ErrOutOfRange, x.BitLen(), n)
	}
	return x.FillBytes(make([]byte, n)), nil
}

// ToInteger interprets b as a big-endian unsigned integer.
func ToInteger(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// XOR returns a ^ b. Both arrays must have the same length.
func XOR(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// Truncate returns a copy of the first n bytes of b, or of b when it is shorter.
func Truncate(b []byte, n int) []byte {
	if n > len(b) {
		n = len(b)
	}
	out := make([]byte, n)
	copy(out, b[:n])
	return out
}

// Concat joins the given byte arrays into a new one.
func Concat(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
