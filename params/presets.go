package params

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/takakv/votecast/group"
	"github.com/takakv/votecast/util"
)

const (
	base62 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	base16 = "0123456789ABCDEF"
	base32 = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var presets = map[string]func() *PublicParameters{
	"level0": Level0,
	"level1": Level1,
	"level2": Level2,
}

// ByName returns the preset with the given name.
func ByName(name string) (*PublicParameters, error) {
	f, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q, available: %v", name, Names())
	}
	return f(), nil
}

// Names lists the available presets.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func hexInt(s string) *big.Int {
	x, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex constant " + s)
	}
	return x
}

// Level0 is a toy setup for unit tests. It offers no security.
func Level0() *PublicParameters {
	return &PublicParameters{
		EncryptionGroup:     group.NewSubgroup("level0/Gq", big.NewInt(23), big.NewInt(11), big.NewInt(2)),
		IdentificationGroup: group.NewSubgroup("level0/Gq^", big.NewInt(47), big.NewInt(23), big.NewInt(2)),
		PrimeField:          group.NewPrimeField(big.NewInt(7)),
		SecurityLength:      16,
		MessageLength:       16,
		ReturnCodeLength:    16,
		Authorities:         2,
		CredentialAlphabet:  util.MustAlphabet("0123"),
		CredentialLength:    2,
		ReturnCodeAlphabet:  util.MustAlphabet(base16),
	}
}

// Level1 uses small but non-trivial groups, fast enough for integration tests.
func Level1() *PublicParameters {
	p := hexInt("a3ddc29917f73f723ed6a4d43cdbf4a842729c743f991155e456e36c092346ef" +
		"19dc97ee8076642b790072c8d15eebf3fc2fb6cafd5b28789db421f67084cf1b")
	q := hexInt("51eee14c8bfb9fb91f6b526a1e6dfa5421394e3a1fcc88aaf22b71b60491a377" +
		"8cee4bf7403b3215bc80396468af75f9fe17db657ead943c4eda10fb3842678d")
	pHat := hexInt("82def81fc3250c467235c9f4b8020d27c18ed68cb9a789b6a36270333b6dd45d")
	qHat := hexInt("9184dc8124d1ec7f1e8fc97791623221")
	gHat := hexInt("2c0d2177d6b9477409ce8b15f7d4fca6c92a56b5a2f83a369a15162ea497a97b")
	// 2^127 - 1
	pPrime := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))

	return &PublicParameters{
		EncryptionGroup:     group.NewSubgroup("level1/Gq", p, q, big.NewInt(4)),
		IdentificationGroup: group.NewSubgroup("level1/Gq^", pHat, qHat, gHat),
		PrimeField:          group.NewPrimeField(pPrime),
		SecurityLength:      128,
		MessageLength:       256,
		ReturnCodeLength:    64,
		Authorities:         3,
		CredentialAlphabet:  util.MustAlphabet(base62),
		CredentialLength:    21,
		ReturnCodeAlphabet:  util.MustAlphabet(base16),
	}
}

// Level2 uses the RFC 3526 3072-bit MODP group for encryption.
func Level2() *PublicParameters {
	enc := group.NewModPGroup("level2/Gq",
		`FFFFFFFF FFFFFFFF C90FDAA2 2168C234 C4C6628B 80DC1CD1
		29024E08 8A67CC74 020BBEA6 3B139B22 514A0879 8E3404DD
		EF9519B3 CD3A431B 302B0A6D F25F1437 4FE1356D 6D51C245
		E485B576 625E7EC6 F44C42E9 A637ED6B 0BFF5CB6 F406B7ED
		EE386BFB 5A899FA5 AE9F2411 7C4B1FE6 49286651 ECE45B3D
		C2007CB8 A163BF05 98DA4836 1C55D39A 69163FA8 FD24CF5F
		83655D23 DCA3AD96 1C62F356 208552BB 9ED52907 7096966D
		670C354E 4ABC9804 F1746C08 CA18217C 32905E46 2E36CE3B
		E39E772C 180E8603 9B2783A2 EC07A28F B5C55DF0 6F4C52C9
		DE2BCBF6 95581718 3995497C EA956AE5 15D22618 98FA0510
		15728E5A 8AAAC42D AD33170D 04507A33 A85521AB DF1CBA64
		ECFB8504 58DBEF0A 8AEA7157 5D060C7D B3970F85 A6E1E4C7
		ABF5AE8C DB0933D7 1E8C94E0 4A25619D CEE3D226 1AD2EE6B
		F12FFA06 D98A0864 D8760273 3EC86A64 521F2B18 177B200C
		BBE11757 7A615D6C 770988C0 BAD946E2 08E24FA0 74E5AB31
		43DB5BFC E0FD108E 4B82D120 A93AD2CA FFFFFFFF FFFFFFFF`, "2")

	pHat := hexInt("86c63b09ea4ddb2a469b353b2c0ca9c2469f45eaafd3c327368af7180052deb8" +
		"bf1463470a3023979000a312211a21c2cabbe6208f1cf2cada192b2008645d9c" +
		"de565beb1c9e7c134fc5990654ab1e3f48f1e2a7dabc271ee98d69c61b09f75d" +
		"4d03b206937c672735d970b90acf3cfb6070ead3fa22a2f06abb7bb3dff95ec7" +
		"78aecd416e2edd4193cab4c740974c9a41140291cf70960a3c4e249bd7955d18" +
		"7b84d34933c9b4a19a52f7506040e9dfcf561435ebed186627e5d888d31f709b" +
		"2489f583bcdd767dacb8ebdf1e4bfef2929f8d53ba9107f93c375dceb5d464e9" +
		"c56320d1a78e94f2a83305ae9c0fe40436de6758a73ed423b825a297b0367215")
	qHat := hexInt("c2b38755cd37880e16ac4191a26aa0ae044f1574f037afc644d82a531289bafb")
	gHat := hexInt("69a1ad44bf907bb3a9431e676ea63f4517f3cd1a9ed7030df28a5d42bfaa6301" +
		"1b86bdb5381ceb89a50517b041d5857a8fad1daa256abc91d55e8316cb1ac521" +
		"5cd713d7000914c67c33ee73f8ab61e0f1c55a231a653cec7e78659f3a45fbb0" +
		"6944b99fddf1e4250401f9a2b97784a00ce230d95cbbe4aafa7089469a041d39" +
		"99e22bea1e57d8971b5c8607f7fc9f16b34c2e7d0704f4bbbcfc64f1ce333649" +
		"c6aeff9cefb40d5502db3ac3f4f0e84574aa2e71245ce2db03df2061aac9744c" +
		"1aee6e53fec444d45dc43c2d27eb332bcaafdcd1c44a7a61be0916a75262d27b" +
		"c19687847fbbf4b8ba52df025536ce0676f8e7229b8829e10da2e6859c7b86b6")
	// 2^255 - 19
	pPrime := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))

	return &PublicParameters{
		EncryptionGroup:     enc,
		IdentificationGroup: group.NewSubgroup("level2/Gq^", pHat, qHat, gHat),
		PrimeField:          group.NewPrimeField(pPrime),
		SecurityLength:      256,
		MessageLength:       512,
		ReturnCodeLength:    80,
		Authorities:         4,
		CredentialAlphabet:  util.MustAlphabet(base62),
		CredentialLength:    42,
		ReturnCodeAlphabet:  util.MustAlphabet(base32),
	}
}
