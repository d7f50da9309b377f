package authority

import (
	"github.com/takakv/votecast/hashing"
	"github.com/takakv/votecast/model"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/votecasting"
)

// VotingCardCodes returns the return code printed on the voting card for
// every candidate, given the points of all authorities. The voter compares
// them with the codes derived from the OT responses.
func VotingCardCodes(pp *params.PublicParameters, hash hashing.Hash, boldP [][]model.Point) ([]string, error) {
	if err := votecasting.CheckPointMatrix(pp, boldP); err != nil {
		return nil, err
	}
	n := len(boldP[0])
	codes := make([]string, n)
	column := make([]model.Point, len(boldP))
	for l := range codes {
		for j := range boldP {
			column[j] = boldP[j][l]
		}
		codes[l] = pp.ReturnCodeAlphabet.ToString(votecasting.FoldPoints(hash, pp.ReturnCodeBytes(), column...))
	}
	return codes, nil
}
