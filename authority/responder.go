package authority

import (
	"fmt"
	"math/big"

	"github.com/takakv/votecast/algebra"
	"github.com/takakv/votecast/hashing"
	"github.com/takakv/votecast/log"
	"github.com/takakv/votecast/model"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/random"
	"github.com/takakv/votecast/util"
	"github.com/takakv/votecast/voteproof"
)

// Responder answers the OT queries of ballots cast under one shared key.
type Responder struct {
	pp   *params.PublicParameters
	alg  *algebra.GroupAlgebra
	hash hashing.Hash
	rnd  random.Source
	pk   model.EncryptionPublicKey
}

func NewResponder(pp *params.PublicParameters, alg *algebra.GroupAlgebra, hash hashing.Hash, rnd random.Source, pk model.EncryptionPublicKey) *Responder {
	return &Responder{pp: pp, alg: alg, hash: hash, rnd: rnd, pk: pk}
}

// CheckBallot verifies that a ballot carries one query entry per allowed
// selection and a valid well-formedness proof.
func (rs *Responder) CheckBallot(ballot model.BallotAndQuery, boldK []int) error {
	k := 0
	for _, kj := range boldK {
		k += kj
	}
	if len(ballot.A) != k {
		return fmt.Errorf("%w: the ballot holds %d query entries for %d selections", model.ErrInvalidInput, len(ballot.A), k)
	}
	enc := ballot.Encryption(rs.pp.EncryptionGroup.P())
	pub := voteproof.PublicValues{XHat: ballot.XHat, A: enc.A, B: enc.B, PK: rs.pk.PublicKey}
	if !voteproof.Verify(rs.pp, rs.alg, ballot.Proof, pub) {
		return fmt.Errorf("%w: the ballot proof does not verify", model.ErrInvalidInput)
	}
	return nil
}

// GenResponse answers the query boldA. points holds this authority's point
// for every candidate, boldN and boldK the candidates and allowed
// selections per election.
func (rs *Responder) GenResponse(boldA []*big.Int, boldN, boldK []int, points []model.Point) (model.ObliviousTransferResponse, error) {
	if len(boldN) != len(boldK) {
		return model.ObliviousTransferResponse{}, fmt.Errorf("%w: %d elections but %d quotas", model.ErrInvalidInput, len(boldN), len(boldK))
	}
	n, k := 0, 0
	for j := range boldN {
		n += boldN[j]
		k += boldK[j]
	}
	if len(points) != n {
		return model.ObliviousTransferResponse{}, fmt.Errorf("%w: %d points for %d candidates", model.ErrInvalidInput, len(points), n)
	}
	if len(boldA) != k {
		return model.ObliviousTransferResponse{}, fmt.Errorf("%w: %d query entries for %d selections", model.ErrInvalidInput, len(boldA), k)
	}
	for i, ai := range boldA {
		if !rs.alg.IsMember(ai) {
			return model.ObliviousTransferResponse{}, fmt.Errorf("%w: a[%d] is not in G_q", model.ErrInvalidInput, i)
		}
	}

	primes, err := rs.alg.Primes(n)
	if err != nil {
		return model.ObliviousTransferResponse{}, fmt.Errorf("%w: %w", model.ErrIncompatibleParameters, err)
	}

	Gq := rs.pp.EncryptionGroup
	upperLm := rs.pp.MessageBytes()
	beta := model.ObliviousTransferResponse{
		B: make([]*big.Int, 0, k),
		C: make([][]byte, 0, n),
		D: make([]*big.Int, 0, len(boldN)),
	}
	i, l := 0, 0
	for j := range boldN {
		zj, err := Gq.RandomExponent(rs.rnd)
		if err != nil {
			return model.ObliviousTransferResponse{}, err
		}
		for end := i + boldK[j]; i < end; i++ {
			beta.B = append(beta.B, Gq.Exp(boldA[i], zj))
		}
		for end := l + boldN[j]; l < end; l++ {
			Ml, err := encodePoint(points[l], upperLm/2)
			if err != nil {
				return model.ObliviousTransferResponse{}, err
			}
			mask := hashing.KeyStream(rs.hash, Gq.Exp(primes[l], zj), upperLm)
			cl, err := util.XOR(Ml, mask)
			if err != nil {
				return model.ObliviousTransferResponse{}, err
			}
			beta.C = append(beta.C, cl)
		}
		beta.D = append(beta.D, Gq.Exp(rs.pk.PublicKey, zj))
	}
	log.Debugf("generated OT response for %d selections over %d candidates", k, n)
	return beta, nil
}

func encodePoint(pt model.Point, half int) ([]byte, error) {
	x, err := util.ToByteArray(pt.X, half)
	if err != nil {
		return nil, err
	}
	y, err := util.ToByteArray(pt.Y, half)
	if err != nil {
		return nil, err
	}
	return util.Concat(x, y), nil
}
