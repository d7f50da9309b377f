package votecasting

import (
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/takakv/votecast/hashing"
	"github.com/takakv/votecast/log"
	"github.com/takakv/votecast/model"
	"github.com/takakv/votecast/util"
)

// GetPointMatrix decodes the responses of all authorities concurrently.
// Row j of the result belongs to boldBeta[j]. A single rejected response
// fails the whole call.
func (c *Client) GetPointMatrix(boldBeta []model.ObliviousTransferResponse, boldK, boldS []int, boldR []*big.Int) ([][]model.Point, error) {
	if err := c.checkDimensions(boldK, boldS, boldR); err != nil {
		return nil, err
	}
	boldP := make([][]model.Point, len(boldBeta))
	var g errgroup.Group
	for j := range boldBeta {
		g.Go(func() error {
			points, err := c.GetPoints(boldBeta[j], boldK, boldS, boldR)
			if err != nil {
				return fmt.Errorf("authority %d: %w", j+1, err)
			}
			boldP[j] = points
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return boldP, nil
}

// GetPoints decodes the points of the selected candidates from one
// authority's response. boldK holds the number of selections per election,
// boldS the flattened 1-based selections and boldR the query randomness.
func (c *Client) GetPoints(beta model.ObliviousTransferResponse, boldK, boldS []int, boldR []*big.Int) ([]model.Point, error) {
	if err := c.checkDimensions(boldK, boldS, boldR); err != nil {
		return nil, err
	}
	if len(beta.B) < len(boldS) {
		return nil, c.reject("b holds %d values for %d selections", len(beta.B), len(boldS))
	}
	if len(beta.D) < len(boldK) {
		return nil, c.reject("d holds %d values for %d elections", len(beta.D), len(boldK))
	}

	Gq := c.pp.EncryptionGroup
	upperLm := c.pp.MessageBytes()
	decoded := make([]model.Point, 0, len(boldS))
	i := 0
	for j, kj := range boldK {
		dj := beta.D[j]
		if kj > 0 && !c.alg.IsMember(dj) {
			return nil, c.reject("d[%d] is not in G_q", j)
		}
		for l := 0; l < kj; l++ {
			bi := beta.B[i]
			if !c.alg.IsMember(bi) {
				return nil, c.reject("b[%d] is not in G_q", i)
			}
			row := boldS[i] - 1
			if row >= len(beta.C) {
				return nil, c.reject("no row for candidate %d", boldS[i])
			}
			if len(beta.C[row]) != upperLm {
				return nil, c.reject("row %d holds %d bytes instead of %d", boldS[i], len(beta.C[row]), upperLm)
			}

			k := Gq.Mul(bi, Gq.Exp(dj, new(big.Int).Neg(boldR[i])))
			Mi, err := util.XOR(beta.C[row], hashing.KeyStream(c.hash, k, upperLm))
			if err != nil {
				return nil, err
			}
			xi := util.ToInteger(Mi[:upperLm/2])
			yi := util.ToInteger(Mi[upperLm/2:])
			if !c.alg.IsInZpPrime(xi) || !c.alg.IsInZpPrime(yi) {
				return nil, c.reject("point %d lies outside Z_p'", i)
			}
			decoded = append(decoded, model.Point{X: xi, Y: yi})
			i++
		}
	}
	return decoded, nil
}

func (c *Client) checkDimensions(boldK, boldS []int, boldR []*big.Int) error {
	if len(boldS) != len(boldR) {
		return fmt.Errorf("%w: %d selections but %d randomizations", model.ErrInvalidInput, len(boldS), len(boldR))
	}
	total := 0
	for _, kj := range boldK {
		if kj < 0 {
			return fmt.Errorf("%w: negative number of selections", model.ErrInvalidInput)
		}
		total += kj
	}
	if total != len(boldS) {
		return fmt.Errorf("%w: %d selections allowed but %d given", model.ErrInvalidInput, total, len(boldS))
	}
	for i, si := range boldS {
		if si < 1 {
			return fmt.Errorf("%w: selections must be strictly positive", model.ErrInvalidInput)
		}
		if !c.alg.IsInZq(boldR[i]) {
			return fmt.Errorf("%w: r[%d] must be in Z_q", model.ErrInvalidInput, i)
		}
	}
	return nil
}

// reject builds an InvalidObliviousTransferResponse error and records it
// for audit.
func (c *Client) reject(format string, args ...any) error {
	responsesRejected.Inc()
	err := fmt.Errorf("%w: "+format, append([]any{model.ErrInvalidObliviousTransferResponse}, args...)...)
	log.Warnw("rejected oblivious transfer response", "reason", err.Error())
	return err
}
