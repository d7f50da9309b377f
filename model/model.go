// Package model contains the values exchanged during vote casting. All of
// them are built once per casting attempt and never modified afterwards;
// slices held by these types must be treated as read-only.
package model

import "math/big"

// EncryptionPublicKey is the authorities' combined ElGamal key, pk in G_q.
type EncryptionPublicKey struct {
	PublicKey *big.Int `json:"pk"`
}

// ObliviousTransferQuery is the voter's OT request. A goes to the
// authorities, R is the blinding randomness and stays with the voter.
type ObliviousTransferQuery struct {
	A []*big.Int `json:"a"`
	R []*big.Int `json:"-"`
}

// NonInteractiveZKP is a Fiat-Shamir transcript: commitments T and responses S.
type NonInteractiveZKP struct {
	T []*big.Int `json:"t"`
	S []*big.Int `json:"s"`
}

// BallotAndQuery is the only value sent to the election server.
type BallotAndQuery struct {
	XHat  *big.Int          `json:"xHat"` // Credential commitment in the identification group.
	A     []*big.Int        `json:"a"`    // OT query, one entry per selection.
	B     *big.Int          `json:"b"`    // Second ElGamal component, g^r.
	Proof NonInteractiveZKP `json:"pi"`
}

// BallotQueryAndRand pairs the submitted ballot with the randomness the voter
// must retain, as confidentially as a private key, until the return codes
// have been derived.
type BallotQueryAndRand struct {
	Ballot BallotAndQuery `json:"ballot"`
	R      []*big.Int     `json:"-"`
}

// ObliviousTransferResponse is one authority's answer to a query.
type ObliviousTransferResponse struct {
	B []*big.Int `json:"b"` // One per selection.
	C [][]byte   `json:"c"` // One row per candidate.
	D []*big.Int `json:"d"` // One per election.
}

// Point is a point of Z_p' x Z_p', decoded per selection and authority.
type Point struct {
	X *big.Int `json:"x"`
	Y *big.Int `json:"y"`
}

// HashElements lets a Point hash as the tuple (x, y).
func (p Point) HashElements() []any {
	return []any{p.X, p.Y}
}

// Encryption is an ElGamal ciphertext (a, b) = (m·pk^r, g^r).
type Encryption struct {
	A *big.Int `json:"a"`
	B *big.Int `json:"b"`
}

// ReEncryption is a re-encrypted ciphertext along with the randomness used,
// as produced by the mixing stage.
type ReEncryption struct {
	Encryption Encryption `json:"encryption"`
	Randomness *big.Int   `json:"-"`
}

// Encryption returns the ElGamal encryption carried by a ballot: the product of
// the OT query entries and b.
func (b BallotAndQuery) Encryption(p *big.Int) Encryption {
	a := big.NewInt(1)
	for _, ai := range b.A {
		a.Mul(a, ai)
		a.Mod(a, p)
	}
	return Encryption{A: a, B: new(big.Int).Set(b.B)}
}
