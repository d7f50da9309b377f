package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/takakv/votecast/params"
)

const toy = `
authorities = 2
security_length = 16
message_length = 16
return_code_length = 16
credential_alphabet = "0123"
credential_length = 2
return_code_alphabet = "0123456789ABCDEF"

[encryption_group]
p = "17"
q = "b"
g = "2"

[identification_group]
p = "0x2f"
g = "2"

[prime_field]
p = "7"
`

func TestDecodeFullDescription(t *testing.T) {
	pp, err := Decode(toy)
	require.NoError(t, err)

	want := params.Level0()
	require.True(t, want.EncryptionGroup.Equal(pp.EncryptionGroup))
	require.True(t, want.IdentificationGroup.Equal(pp.IdentificationGroup))
	require.Equal(t, want.PrimeField.P(), pp.PrimeField.P())
	require.Equal(t, 2, pp.Authorities)
	require.Equal(t, 2, pp.CredentialLength)
	require.Equal(t, "0123", pp.CredentialAlphabet.String())
}

func TestDecodePresetOverride(t *testing.T) {
	pp, err := Decode(`
preset = "level1"
authorities = 5
return_code_alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
`)
	require.NoError(t, err)
	require.Equal(t, 5, pp.Authorities)
	require.Equal(t, 32, pp.ReturnCodeAlphabet.Size())
	require.True(t, params.Level1().EncryptionGroup.Equal(pp.EncryptionGroup))
	require.Equal(t, 128, pp.SecurityLength)
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"syntax", `authorities = `},
		{"unknown key", `preset = "level0"` + "\n" + `colour = "blue"`},
		{"unknown preset", `preset = "level9"`},
		{"bad hex", `preset = "level0"` + "\n[prime_field]\np = \"zz\""},
		{"duplicate alphabet characters", `preset = "level0"` + "\n" + `credential_alphabet = "0012"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Decode(`preset = "level0"` + "\n[prime_field]\np = \"d\"")
	require.ErrorIs(t, err, params.ErrInvalidParameters)

	_, err = Decode(`authorities = 2`)
	require.ErrorIs(t, err, params.ErrInvalidParameters)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.toml")
	require.NoError(t, os.WriteFile(path, []byte(toy), 0o600))

	pp, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, int64(23), pp.EncryptionGroup.P().Int64())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}
