package algebra

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/takakv/votecast/hashing"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/util"
)

func toyAlgebra() *GroupAlgebra {
	pp := params.Level0()
	return New(pp, hashing.New(pp.SecurityLength))
}

func TestPrimesInToyGroup(t *testing.T) {
	ga := toyAlgebra()

	primes, err := ga.Primes(3)
	require.NoError(t, err)
	require.Equal(t, []*big.Int{big.NewInt(2), big.NewInt(3), big.NewInt(13)}, primes)

	none, err := ga.Primes(0)
	require.NoError(t, err)
	require.Empty(t, none)

	_, err = ga.Primes(4)
	require.ErrorIs(t, err, ErrNotEnoughPrimesInGroup)
}

func TestPrimesCacheReturnsCopies(t *testing.T) {
	ga := toyAlgebra()
	first, err := ga.Primes(2)
	require.NoError(t, err)
	first[0].SetInt64(99)

	second, err := ga.Primes(2)
	require.NoError(t, err)
	require.Equal(t, int64(2), second[0].Int64())
}

func TestPrimesAreMembers(t *testing.T) {
	pp := params.Level1()
	ga := New(pp, hashing.New(pp.SecurityLength))

	var wg sync.WaitGroup
	results := make([][]*big.Int, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = ga.Primes(20)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Equal(t, results[0], r)
	}
	require.Len(t, results[0], 20)
	for i, q := range results[0] {
		require.True(t, q.ProbablyPrime(20))
		require.True(t, ga.IsMember(q))
		if i > 0 {
			require.Equal(t, 1, q.Cmp(results[0][i-1]))
		}
	}
}

func TestChallenge(t *testing.T) {
	ga := toyAlgebra()
	h := hashing.New(16)
	y := []*big.Int{big.NewInt(3), big.NewInt(6), big.NewInt(16)}
	tt := []*big.Int{big.NewInt(4), big.NewInt(9), big.NewInt(18)}
	n := big.NewInt(11)

	want := new(big.Int).Mod(util.ToInteger(h.RecHash(y, tt)), n)
	c := ga.Challenge(y, tt, n)
	require.Equal(t, want, c)
	require.True(t, c.Cmp(n) < 0)
	require.Equal(t, c, ga.Challenge(y, tt, n))
}

func TestMembershipHelpers(t *testing.T) {
	ga := toyAlgebra()
	require.True(t, ga.IsMember(big.NewInt(13)))
	require.False(t, ga.IsMember(big.NewInt(5)))
	require.True(t, ga.IsMemberGqHat(big.NewInt(2)))
	require.True(t, ga.IsInZq(big.NewInt(10)))
	require.False(t, ga.IsInZq(big.NewInt(11)))
	require.True(t, ga.IsInZqHat(big.NewInt(22)))
	require.False(t, ga.IsInZqHat(big.NewInt(23)))
	require.True(t, ga.IsInZpPrime(big.NewInt(6)))
	require.False(t, ga.IsInZpPrime(big.NewInt(7)))
}
