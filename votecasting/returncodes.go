package votecasting

import (
	"fmt"

	"github.com/takakv/votecast/hashing"
	"github.com/takakv/votecast/model"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/util"
)

// GetReturnCodes derives one printable return code per selection from the
// point matrix, which must hold one row per authority.
func (c *Client) GetReturnCodes(boldP [][]model.Point) ([]string, error) {
	rc, err := c.returnCodeBytes(boldP)
	if err != nil {
		return nil, err
	}
	codes := make([]string, len(rc))
	for i, rci := range rc {
		codes[i] = c.pp.ReturnCodeAlphabet.ToString(rci)
	}
	returnCodesDerived.Add(len(codes))
	return codes, nil
}

func (c *Client) returnCodeBytes(boldP [][]model.Point) ([][]byte, error) {
	if err := CheckPointMatrix(c.pp, boldP); err != nil {
		return nil, err
	}
	n := len(boldP[0])
	rc := make([][]byte, n)
	column := make([]model.Point, len(boldP))
	for i := 0; i < n; i++ {
		for j := range boldP {
			column[j] = boldP[j][i]
		}
		rc[i] = FoldPoints(c.hash, c.pp.ReturnCodeBytes(), column...)
	}
	return rc, nil
}

// CheckPointMatrix verifies that boldP holds one non-empty row per authority,
// that all rows have the same length and that every point lies in Z_p' x Z_p'.
func CheckPointMatrix(pp *params.PublicParameters, boldP [][]model.Point) error {
	if len(boldP) == 0 {
		return fmt.Errorf("%w: empty point matrix", model.ErrInvalidInput)
	}
	if len(boldP) != pp.Authorities {
		return fmt.Errorf("%w: %d point rows for %d authorities", model.ErrInvalidInput, len(boldP), pp.Authorities)
	}
	n := len(boldP[0])
	for j, row := range boldP {
		if len(row) != n {
			return fmt.Errorf("%w: row %d holds %d points instead of %d", model.ErrInvalidInput, j, len(row), n)
		}
		for i, pt := range row {
			if !pp.PrimeField.Contains(pt.X) || !pp.PrimeField.Contains(pt.Y) {
				return fmt.Errorf("%w: point [%d][%d] lies outside Z_p'", model.ErrInvalidInput, j, i)
			}
		}
	}
	return nil
}

// FoldPoints XORs the n-byte truncated hashes of the given points. The result
// does not depend on the order of the points. Callers check the points with
// CheckPointMatrix first.
func FoldPoints(h hashing.Hash, n int, points ...model.Point) []byte {
	acc := make([]byte, n)
	for _, pt := range points {
		// lengths match by construction
		acc, _ = util.XOR(acc, util.Truncate(h.RecHash(pt), n))
	}
	return acc
}
