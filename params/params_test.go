package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/takakv/votecast/group"
)

func TestPresetsValidate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			pp, err := ByName(name)
			require.NoError(t, err)
			require.NoError(t, pp.Validate())
			require.Equal(t, 0, pp.MessageBytes()%2)
		})
	}
	_, err := ByName("level9")
	require.Error(t, err)
}

func TestChallengeModulus(t *testing.T) {
	pp := Level0()
	require.Equal(t, int64(11), pp.ChallengeModulus().Int64())

	pp = Level1()
	require.Equal(t, pp.IdentificationGroup.Q(), pp.ChallengeModulus())
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(pp *PublicParameters)
	}{
		{"missing group", func(pp *PublicParameters) { pp.EncryptionGroup = nil }},
		{"bad encryption group", func(pp *PublicParameters) {
			pp.EncryptionGroup = group.NewSubgroup("bad", big.NewInt(23), big.NewInt(11), big.NewInt(5))
		}},
		{"p' not below q", func(pp *PublicParameters) { pp.PrimeField = group.NewPrimeField(big.NewInt(13)) }},
		{"p' composite", func(pp *PublicParameters) { pp.PrimeField = group.NewPrimeField(big.NewInt(9)) }},
		{"security length", func(pp *PublicParameters) { pp.SecurityLength = 12 }},
		{"message length", func(pp *PublicParameters) { pp.MessageLength = 24 }},
		{"p' too wide for message", func(pp *PublicParameters) {
			// 563 = 2*281 + 1
			pp.EncryptionGroup = group.NewModPGroup("wide", "233", "4")
			pp.PrimeField = group.NewPrimeField(big.NewInt(257))
		}},
		{"return code length", func(pp *PublicParameters) { pp.ReturnCodeLength = 0 }},
		{"return code wider than hash", func(pp *PublicParameters) { pp.ReturnCodeLength = 24 }},
		{"no authorities", func(pp *PublicParameters) { pp.Authorities = 0 }},
		{"missing alphabet", func(pp *PublicParameters) { pp.ReturnCodeAlphabet = nil }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pp := Level0()
			c.mutate(pp)
			require.ErrorIs(t, pp.Validate(), ErrInvalidParameters)
		})
	}
}
