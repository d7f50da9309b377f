// Package authority is a reference implementation of the election
// authorities' side of vote casting. It generates keys and the points behind
// the voting cards, checks submitted ballots, and answers OT queries. Tests
// and the demo binary use it to exercise the voter side end to end.
package authority

import (
	"fmt"
	"math/big"

	"github.com/takakv/votecast/model"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/random"
)

// KeyPair is an ElGamal key pair of G_q.
type KeyPair struct {
	SK *big.Int
	PK *big.Int
}

// GenKeyPair samples sk from Z_q and returns it with pk = g^sk.
func GenKeyPair(pp *params.PublicParameters, rnd random.Source) (KeyPair, error) {
	sk, err := pp.EncryptionGroup.RandomExponent(rnd)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{SK: sk, PK: pp.EncryptionGroup.BaseExp(sk)}, nil
}

// CombineKeys returns the shared encryption key, the product of the
// authorities' public keys.
func CombineKeys(pp *params.PublicParameters, pks ...*big.Int) (model.EncryptionPublicKey, error) {
	for j, pk := range pks {
		if !pp.EncryptionGroup.IsMember(pk) {
			return model.EncryptionPublicKey{}, fmt.Errorf("%w: key %d is not in G_q", model.ErrInvalidInput, j+1)
		}
	}
	return model.EncryptionPublicKey{PublicKey: pp.EncryptionGroup.Mul(pks...)}, nil
}

// PartialDecrypt returns b^sk, one authority's share of the decryption of
// an encryption (a, b).
func PartialDecrypt(pp *params.PublicParameters, enc model.Encryption, sk *big.Int) *big.Int {
	return pp.EncryptionGroup.Exp(enc.B, sk)
}

// Decrypt recovers m = a / ∏ shares.
func Decrypt(pp *params.PublicParameters, enc model.Encryption, shares ...*big.Int) *big.Int {
	Gq := pp.EncryptionGroup
	return Gq.Mul(enc.A, Gq.Inverse(Gq.Mul(shares...)))
}
