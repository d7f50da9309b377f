package votecasting

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/takakv/votecast/algebra"
	"github.com/takakv/votecast/hashing"
	"github.com/takakv/votecast/model"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/random"
	"github.com/takakv/votecast/voteproof"
)

func newClient(pp *params.PublicParameters, rnd random.Source) *Client {
	h := hashing.New(pp.SecurityLength)
	return NewClient(pp, algebra.New(pp, h), rnd, h)
}

// g^3 in the toy encryption group.
var toyKey = model.EncryptionPublicKey{PublicKey: big.NewInt(8)}

func TestInvalidSelectionsConsumeNoRandomness(t *testing.T) {
	cases := []struct {
		name  string
		boldS []int
	}{
		{"empty", nil},
		{"duplicate", []int{1, 1}},
		{"zero", []int{0, 2}},
		{"negative", []int{-1}},
		{"unordered", []int{3, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rnd := random.Ints(1, 2, 3, 4, 5)
			cl := newClient(params.Level0(), rnd)

			_, err := cl.GenBallot("11", tc.boldS, toyKey)
			require.ErrorIs(t, err, model.ErrInvalidInput)
			_, err = cl.GetSelectedPrimes(tc.boldS)
			require.ErrorIs(t, err, model.ErrInvalidInput)
			require.Zero(t, rnd.Consumed())
		})
	}
}

func TestGenBallotRejectsBadKeyAndCredential(t *testing.T) {
	rnd := random.Ints(1, 2, 3, 4, 5)
	cl := newClient(params.Level0(), rnd)

	for _, pk := range []*big.Int{big.NewInt(1), big.NewInt(5), big.NewInt(0), big.NewInt(23), nil} {
		_, err := cl.GenBallot("11", []int{1}, model.EncryptionPublicKey{PublicKey: pk})
		require.ErrorIs(t, err, model.ErrInvalidInput, "pk = %v", pk)
	}
	for _, x := range []string{"1", "111", "1x"} {
		_, err := cl.GenBallot(x, []int{1}, toyKey)
		require.ErrorIs(t, err, model.ErrInvalidInput, "credential %q", x)
	}
	require.Zero(t, rnd.Consumed())
}

func TestGenBallotIncompatibleParameters(t *testing.T) {
	cases := []struct {
		name  string
		boldS []int
	}{
		// 3 * 13 = 39 >= 23
		{"product overflows p", []int{2, 3}},
		// 2 * 13 = 26 >= 23
		{"sparse product overflows p", []int{1, 3}},
		{"not enough primes", []int{4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rnd := random.Ints(1, 2, 3, 4, 5)
			cl := newClient(params.Level0(), rnd)
			_, err := cl.GenBallot("11", tc.boldS, toyKey)
			require.ErrorIs(t, err, model.ErrIncompatibleParameters)
			require.Equal(t, model.KindIncompatibleParameters, model.KindOf(err))
			require.Zero(t, rnd.Consumed())
		})
	}

	cl := newClient(params.Level0(), random.Ints())
	_, err := cl.GetSelectedPrimes([]int{4})
	require.ErrorIs(t, err, algebra.ErrNotEnoughPrimesInGroup)
	require.ErrorIs(t, err, model.ErrIncompatibleParameters)
}

func TestGetSelectedPrimes(t *testing.T) {
	cl := newClient(params.Level0(), random.Ints())
	boldQ, err := cl.GetSelectedPrimes([]int{1, 3})
	require.NoError(t, err)
	require.Equal(t, []*big.Int{big.NewInt(2), big.NewInt(13)}, boldQ)
}

func TestGenQueryUnblinding(t *testing.T) {
	pp := params.Level0()
	Gq := pp.EncryptionGroup
	cl := newClient(pp, random.Ints(4))

	query, err := cl.GenQuery([]*big.Int{big.NewInt(3)}, toyKey)
	require.NoError(t, err)
	// 3 * 8^4 mod 23
	require.Equal(t, []*big.Int{big.NewInt(6)}, query.A)
	require.Equal(t, []*big.Int{big.NewInt(4)}, query.R)

	// the holder of r recovers q as a * pk^-r
	q := Gq.Mul(query.A[0], Gq.Exp(toyKey.PublicKey, big.NewInt(-4)))
	require.Equal(t, int64(3), q.Int64())

	// the holder of sk = 3 recovers q from (a, g^r)
	q = Gq.Mul(query.A[0], Gq.Exp(Gq.BaseExp(query.R[0]), big.NewInt(-3)))
	require.Equal(t, int64(3), q.Int64())

	_, err = cl.GenQuery([]*big.Int{big.NewInt(3)}, model.EncryptionPublicKey{PublicKey: big.NewInt(1)})
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestGenBallotToy(t *testing.T) {
	pp := params.Level0()
	// r1 = 4, then omega1 = 7, omega2 = g^2, omega3 = 5
	rnd := random.Ints(4, 7, 2, 5)
	cl := newClient(pp, rnd)
	before := ballotsGenerated.Get()

	// "11" decodes to x = 5 with the alphabet "0123"
	res, err := cl.GenBallot("11", []int{1}, toyKey)
	require.NoError(t, err)
	require.Equal(t, 4, rnd.Consumed())
	require.Equal(t, before+1, ballotsGenerated.Get())

	ballot := res.Ballot
	require.Equal(t, int64(32), ballot.XHat.Int64())
	require.Equal(t, []*big.Int{big.NewInt(4)}, ballot.A)
	require.Equal(t, int64(16), ballot.B.Int64())
	require.Equal(t, []*big.Int{big.NewInt(4)}, res.R)

	enc := ballot.Encryption(pp.EncryptionGroup.P())
	pub := voteproof.PublicValues{XHat: ballot.XHat, A: enc.A, B: enc.B, PK: toyKey.PublicKey}
	require.True(t, voteproof.Verify(pp, cl.alg, ballot.Proof, pub))
}

func TestGenBallotLevel1(t *testing.T) {
	pp := params.Level1()
	rnd := random.NewDeterministic([]byte("ballot"))
	cl := newClient(pp, rnd)
	Gq := pp.EncryptionGroup

	sk, err := Gq.RandomExponent(rnd)
	require.NoError(t, err)
	pk := model.EncryptionPublicKey{PublicKey: Gq.BaseExp(sk)}

	res, err := cl.GenBallot("0123456789abcdefghijk", []int{2, 5, 9}, pk)
	require.NoError(t, err)
	require.Len(t, res.Ballot.A, 3)
	require.Len(t, res.R, 3)

	enc := res.Ballot.Encryption(Gq.P())
	require.True(t, voteproof.Verify(pp, cl.alg, res.Ballot.Proof, voteproof.PublicValues{
		XHat: res.Ballot.XHat, A: enc.A, B: enc.B, PK: pk.PublicKey,
	}))

	// decrypting the aggregate yields the product of the selected primes
	boldQ, err := cl.GetSelectedPrimes([]int{2, 5, 9})
	require.NoError(t, err)
	m := Gq.Mul(enc.A, Gq.Exp(enc.B, new(big.Int).Neg(sk)))
	require.Equal(t, Gq.Mul(boldQ...), m)
}
