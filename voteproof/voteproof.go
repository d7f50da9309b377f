// Package voteproof implements the ballot well-formedness proof: a Sigma
// protocol, made non-interactive with Fiat-Shamir, showing knowledge of the
// credential x behind x̂ = ĝ^x and of the plaintext m and randomness r behind
// the ElGamal encryption (a, b) = (m·pk^r, g^r).
//
// The statement spans two groups of different orders. A single challenge is
// reduced modulo min(q, q̂) and each response is reduced in its own group.
package voteproof

import (
	"fmt"
	"math/big"

	"github.com/takakv/votecast/algebra"
	"github.com/takakv/votecast/log"
	"github.com/takakv/votecast/model"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/random"
)

// PublicValues holds the public side of the statement.
type PublicValues struct {
	XHat *big.Int // Credential commitment in G_q̂.
	A    *big.Int // First ElGamal component.
	B    *big.Int // Second ElGamal component.
	PK   *big.Int // Encryption key.
}

func (v PublicValues) y() []*big.Int {
	return []*big.Int{v.XHat, v.A, v.B}
}

// Prover generates ballot proofs. It is safe for concurrent use when its
// random source is.
type Prover struct {
	pp  *params.PublicParameters
	alg *algebra.GroupAlgebra
	rnd random.Source
}

func NewProver(pp *params.PublicParameters, alg *algebra.GroupAlgebra, rnd random.Source) *Prover {
	return &Prover{pp: pp, alg: alg, rnd: rnd}
}

func (pr *Prover) validate(x, m, r *big.Int, pub PublicValues) error {
	switch {
	case !pr.alg.IsInZqHat(x):
		return fmt.Errorf("%w: the private credential must be in Z_q^", model.ErrInvalidInput)
	case !pr.alg.IsMemberGqHat(pub.XHat):
		return fmt.Errorf("%w: x^ must be in G_q^", model.ErrInvalidInput)
	case !pr.alg.IsMember(m):
		return fmt.Errorf("%w: m must be in G_q", model.ErrInvalidInput)
	case !pr.alg.IsInZq(r):
		return fmt.Errorf("%w: r must be in Z_q", model.ErrInvalidInput)
	case !pr.alg.IsMember(pub.A):
		return fmt.Errorf("%w: a must be in G_q", model.ErrInvalidInput)
	case !pr.alg.IsMember(pub.B):
		return fmt.Errorf("%w: b must be in G_q", model.ErrInvalidInput)
	case !pr.alg.IsMember(pub.PK):
		return fmt.Errorf("%w: the key must be a member of G_q", model.ErrInvalidInput)
	}
	return nil
}

// Prove returns the transcript (t, s) for witness (x, m, r) of the public
// values. Every input is validated before any randomness is drawn.
func (pr *Prover) Prove(x, m, r *big.Int, pub PublicValues) (model.NonInteractiveZKP, error) {
	if err := pr.validate(x, m, r, pub); err != nil {
		return model.NonInteractiveZKP{}, err
	}
	GqHat := pr.pp.IdentificationGroup
	Gq := pr.pp.EncryptionGroup
	qHat := GqHat.Q()
	q := Gq.Q()

	log.Debugf("genBallotProof: a = %s", pub.A)

	omega1, err := GqHat.RandomExponent(pr.rnd)
	if err != nil {
		return model.NonInteractiveZKP{}, err
	}
	omega2, err := Gq.RandomElement(pr.rnd)
	if err != nil {
		return model.NonInteractiveZKP{}, err
	}
	omega3, err := Gq.RandomExponent(pr.rnd)
	if err != nil {
		return model.NonInteractiveZKP{}, err
	}

	t1 := GqHat.BaseExp(omega1)
	t2 := Gq.Mul(omega2, Gq.Exp(pub.PK, omega3))
	t3 := Gq.BaseExp(omega3)
	t := []*big.Int{t1, t2, t3}

	c := pr.alg.Challenge(pub.y(), t, pr.pp.ChallengeModulus())
	log.Debugf("genBallotProof: c = %s", c)

	s1 := new(big.Int).Mul(c, x)
	s1.Add(s1, omega1).Mod(s1, qHat)
	s2 := Gq.Mul(omega2, Gq.Exp(m, c))
	s3 := new(big.Int).Mul(c, r)
	s3.Add(s3, omega3).Mod(s3, q)

	return model.NonInteractiveZKP{T: t, S: []*big.Int{s1, s2, s3}}, nil
}

// Verify reports whether proof is a valid transcript for the public values.
func Verify(pp *params.PublicParameters, alg *algebra.GroupAlgebra, proof model.NonInteractiveZKP, pub PublicValues) bool {
	if len(proof.T) != 3 || len(proof.S) != 3 {
		return false
	}
	t1, t2, t3 := proof.T[0], proof.T[1], proof.T[2]
	s1, s2, s3 := proof.S[0], proof.S[1], proof.S[2]
	if !alg.IsMemberGqHat(pub.XHat) || !alg.IsMember(pub.A) || !alg.IsMember(pub.B) || !alg.IsMember(pub.PK) {
		return false
	}
	if !alg.IsMemberGqHat(t1) || !alg.IsMember(t2) || !alg.IsMember(t3) {
		return false
	}
	if !alg.IsInZqHat(s1) || !alg.IsMember(s2) || !alg.IsInZq(s3) {
		return false
	}
	GqHat := pp.IdentificationGroup
	Gq := pp.EncryptionGroup

	c := alg.Challenge(pub.y(), proof.T, pp.ChallengeModulus())
	negC := new(big.Int).Neg(c)

	// t1 = ĝ^s1 · x̂^-c mod p̂
	t1p := GqHat.Mul(GqHat.BaseExp(s1), GqHat.Exp(pub.XHat, negC))
	// t2 = s2 · pk^s3 · a^-c mod p
	t2p := Gq.Mul(s2, Gq.Exp(pub.PK, s3), Gq.Exp(pub.A, negC))
	// t3 = g^s3 · b^-c mod p
	t3p := Gq.Mul(Gq.BaseExp(s3), Gq.Exp(pub.B, negC))

	return t1.Cmp(t1p) == 0 && t2.Cmp(t2p) == 0 && t3.Cmp(t3p) == 0
}
