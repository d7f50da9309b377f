// Package params holds the election-wide public parameters shared by voters
// and authorities.
package params

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/takakv/votecast/group"
	"github.com/takakv/votecast/util"
)

// ErrInvalidParameters wraps every validation failure.
var ErrInvalidParameters = errors.New("invalid public parameters")

// PublicParameters is an immutable description of an election setup. It is
// constructed once and passed to every component; nothing mutates it.
type PublicParameters struct {
	EncryptionGroup     *group.ModPGroup // Ballot encryption and OT, (p, q, g).
	IdentificationGroup *group.ModPGroup // Voter credentials, (p̂, q̂, ĝ).
	PrimeField          *group.PrimeField

	SecurityLength   int // L, in bits.
	MessageLength    int // L_m, in bits; holds one point per OT row.
	ReturnCodeLength int // L_r, in bits.
	Authorities      int // S.

	CredentialAlphabet *util.Alphabet // A_x.
	CredentialLength   int            // Characters per credential; 0 skips the check.
	ReturnCodeAlphabet *util.Alphabet // A_r.
}

// MessageBytes returns L_m/8.
func (pp *PublicParameters) MessageBytes() int {
	return pp.MessageLength / 8
}

// ReturnCodeBytes returns L_r/8.
func (pp *PublicParameters) ReturnCodeBytes() int {
	return pp.ReturnCodeLength / 8
}

// ChallengeModulus returns min(q, q̂), the modulus of the ballot proof challenge.
func (pp *PublicParameters) ChallengeModulus() *big.Int {
	q := pp.EncryptionGroup.Q()
	qHat := pp.IdentificationGroup.Q()
	if q.Cmp(qHat) < 0 {
		return q
	}
	return qHat
}

// Validate checks the structural invariants of the parameters.
func (pp *PublicParameters) Validate() error {
	if pp.EncryptionGroup == nil || pp.IdentificationGroup == nil || pp.PrimeField == nil {
		return fmt.Errorf("%w: missing group description", ErrInvalidParameters)
	}
	if err := pp.EncryptionGroup.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if err := pp.IdentificationGroup.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	pPrime := pp.PrimeField.P()
	if !pPrime.ProbablyPrime(32) {
		return fmt.Errorf("%w: p' is not prime", ErrInvalidParameters)
	}
	if pPrime.Cmp(pp.EncryptionGroup.Q()) >= 0 {
		return fmt.Errorf("%w: p' must be smaller than q", ErrInvalidParameters)
	}
	if pp.SecurityLength <= 0 || pp.SecurityLength%8 != 0 {
		return fmt.Errorf("%w: security length %d is not a positive multiple of 8", ErrInvalidParameters, pp.SecurityLength)
	}
	if pp.MessageLength <= 0 || pp.MessageLength%16 != 0 {
		return fmt.Errorf("%w: message length %d is not a positive multiple of 16", ErrInvalidParameters, pp.MessageLength)
	}
	if pPrime.BitLen() > pp.MessageLength/2 {
		return fmt.Errorf("%w: p' does not fit into half an OT message", ErrInvalidParameters)
	}
	if pp.ReturnCodeLength <= 0 || pp.ReturnCodeLength%8 != 0 {
		return fmt.Errorf("%w: return code length %d is not a positive multiple of 8", ErrInvalidParameters, pp.ReturnCodeLength)
	}
	if pp.ReturnCodeLength > pp.SecurityLength {
		return fmt.Errorf("%w: return codes cannot be longer than the hash output", ErrInvalidParameters)
	}
	if pp.Authorities < 1 {
		return fmt.Errorf("%w: at least one authority is required", ErrInvalidParameters)
	}
	if pp.CredentialAlphabet == nil || pp.ReturnCodeAlphabet == nil {
		return fmt.Errorf("%w: missing alphabet", ErrInvalidParameters)
	}
	if pp.CredentialLength < 0 {
		return fmt.Errorf("%w: negative credential length", ErrInvalidParameters)
	}
	return nil
}
