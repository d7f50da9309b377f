// Package votecasting is the voter side of vote casting. It turns candidate
// selections into a ballot carrying an OT query and a well-formedness proof,
// and later decodes the authorities' OT responses into return codes.
//
// A Client holds no mutable state besides its random source, so one Client
// may serve many concurrent casting sessions when the source allows it.
package votecasting

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/takakv/votecast/algebra"
	"github.com/takakv/votecast/hashing"
	"github.com/takakv/votecast/model"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/random"
	"github.com/takakv/votecast/voteproof"
)

// Client runs the vote casting algorithms for one election setup.
type Client struct {
	pp     *params.PublicParameters
	alg    *algebra.GroupAlgebra
	rnd    random.Source
	hash   hashing.Hash
	prover *voteproof.Prover
}

func NewClient(pp *params.PublicParameters, alg *algebra.GroupAlgebra, rnd random.Source, hash hashing.Hash) *Client {
	return &Client{
		pp:     pp,
		alg:    alg,
		rnd:    rnd,
		hash:   hash,
		prover: voteproof.NewProver(pp, alg, rnd),
	}
}

// GenBallot encodes the selections boldS of the voter holding credential
// code upperX into a ballot for the election server. The returned R must be
// kept secret until the return codes have been derived.
func (c *Client) GenBallot(upperX string, boldS []int, pk model.EncryptionPublicKey) (model.BallotQueryAndRand, error) {
	if err := validateSelections(boldS); err != nil {
		return model.BallotQueryAndRand{}, err
	}
	if err := c.validateKey(pk); err != nil {
		return model.BallotQueryAndRand{}, err
	}
	x, err := c.decodeCredential(upperX)
	if err != nil {
		return model.BallotQueryAndRand{}, err
	}

	Gq := c.pp.EncryptionGroup
	xHat := c.pp.IdentificationGroup.BaseExp(x)

	boldQ, err := c.GetSelectedPrimes(boldS)
	if err != nil {
		return model.BallotQueryAndRand{}, err
	}
	m := new(big.Int).SetInt64(1)
	for _, qi := range boldQ {
		m.Mul(m, qi)
	}
	if m.Cmp(Gq.P()) >= 0 {
		return model.BallotQueryAndRand{}, fmt.Errorf("%w: the selected primes overflow G_q", model.ErrIncompatibleParameters)
	}

	query, err := c.GenQuery(boldQ, pk)
	if err != nil {
		return model.BallotQueryAndRand{}, err
	}
	a := Gq.Mul(query.A...)
	r := new(big.Int)
	for _, ri := range query.R {
		r.Add(r, ri)
	}
	r.Mod(r, Gq.Q())
	b := Gq.BaseExp(r)

	pi, err := c.GenBallotProof(x, m, r, xHat, a, b, pk)
	if err != nil {
		return model.BallotQueryAndRand{}, err
	}
	ballotsGenerated.Inc()

	return model.BallotQueryAndRand{
		Ballot: model.BallotAndQuery{XHat: xHat, A: query.A, B: b, Proof: pi},
		R:      query.R,
	}, nil
}

// GetSelectedPrimes maps the 1-based selection indices onto the primes of G_q.
func (c *Client) GetSelectedPrimes(boldS []int) ([]*big.Int, error) {
	if err := validateSelections(boldS); err != nil {
		return nil, err
	}
	primes, err := c.alg.Primes(boldS[len(boldS)-1])
	if errors.Is(err, algebra.ErrNotEnoughPrimesInGroup) {
		return nil, fmt.Errorf("%w: %w", model.ErrIncompatibleParameters, err)
	}
	if err != nil {
		return nil, err
	}
	boldQ := make([]*big.Int, len(boldS))
	for i, si := range boldS {
		boldQ[i] = primes[si-1]
	}
	return boldQ, nil
}

// GenQuery blinds every selected prime under pk.
func (c *Client) GenQuery(boldQ []*big.Int, pk model.EncryptionPublicKey) (model.ObliviousTransferQuery, error) {
	if err := c.validateKey(pk); err != nil {
		return model.ObliviousTransferQuery{}, err
	}
	Gq := c.pp.EncryptionGroup
	boldA := make([]*big.Int, len(boldQ))
	boldR := make([]*big.Int, len(boldQ))
	for i, qi := range boldQ {
		ri, err := Gq.RandomExponent(c.rnd)
		if err != nil {
			return model.ObliviousTransferQuery{}, err
		}
		boldA[i] = Gq.Mul(qi, Gq.Exp(pk.PublicKey, ri))
		boldR[i] = ri
	}
	return model.ObliviousTransferQuery{A: boldA, R: boldR}, nil
}

// GenBallotProof proves knowledge of x, m and r such that x̂ = ĝ^x and
// (a, b) encrypts m under pk with randomness r.
func (c *Client) GenBallotProof(x, m, r, xHat, a, b *big.Int, pk model.EncryptionPublicKey) (model.NonInteractiveZKP, error) {
	return c.prover.Prove(x, m, r, voteproof.PublicValues{XHat: xHat, A: a, B: b, PK: pk.PublicKey})
}

func (c *Client) validateKey(pk model.EncryptionPublicKey) error {
	if !c.alg.IsMember(pk.PublicKey) {
		return fmt.Errorf("%w: the key must be a member of G_q", model.ErrInvalidInput)
	}
	if pk.PublicKey.Cmp(big.NewInt(1)) == 0 {
		return fmt.Errorf("%w: the key must not be 1", model.ErrInvalidInput)
	}
	return nil
}

func (c *Client) decodeCredential(upperX string) (*big.Int, error) {
	if n := c.pp.CredentialLength; n > 0 && len([]rune(upperX)) != n {
		return nil, fmt.Errorf("%w: the credential must have %d characters", model.ErrInvalidInput, n)
	}
	x, err := c.pp.CredentialAlphabet.ToInteger(upperX)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	if !c.alg.IsInZqHat(x) {
		return nil, fmt.Errorf("%w: the private credential must be in Z_q^", model.ErrInvalidInput)
	}
	return x, nil
}
