package authority

import (
	"fmt"
	"math/big"

	"github.com/takakv/votecast/model"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/random"
)

// GenPoints returns one point per candidate. The points of election j lie
// on a random polynomial of degree boldK[j]-1 over Z_p', so any boldK[j]
// of them determine its constant term. boldN holds the number of candidates
// per election.
func GenPoints(pp *params.PublicParameters, rnd random.Source, boldN, boldK []int) ([]model.Point, error) {
	if len(boldN) != len(boldK) {
		return nil, fmt.Errorf("%w: %d elections but %d quotas", model.ErrInvalidInput, len(boldN), len(boldK))
	}
	field := pp.PrimeField
	maxX := new(big.Int).Sub(field.P(), big.NewInt(1))
	var points []model.Point
	for j := range boldN {
		nj, kj := boldN[j], boldK[j]
		if kj < 1 || kj > nj {
			return nil, fmt.Errorf("%w: election %d allows %d of %d candidates", model.ErrInvalidInput, j+1, kj, nj)
		}
		if big.NewInt(int64(nj)).Cmp(maxX) > 0 {
			return nil, fmt.Errorf("%w: election %d has more candidates than Z_p' has abscissas", model.ErrIncompatibleParameters, j+1)
		}
		coeffs := make([]*big.Int, kj)
		for l := range coeffs {
			a, err := field.Random(rnd)
			if err != nil {
				return nil, err
			}
			coeffs[l] = a
		}
		seen := make(map[string]bool, nj)
		for len(seen) < nj {
			x, err := field.RandomNonZero(rnd)
			if err != nil {
				return nil, err
			}
			if seen[x.String()] {
				continue
			}
			seen[x.String()] = true
			points = append(points, model.Point{X: x, Y: evaluate(pp, coeffs, x)})
		}
	}
	return points, nil
}

// evaluate computes the polynomial with the given coefficients, lowest
// degree first, at x.
func evaluate(pp *params.PublicParameters, coeffs []*big.Int, x *big.Int) *big.Int {
	field := pp.PrimeField
	y := new(big.Int)
	for l := len(coeffs) - 1; l >= 0; l-- {
		y = field.Add(field.Mul(y, x), coeffs[l])
	}
	return y
}
