// Package config loads election parameters from TOML files. A file may name
// a preset and override any of its fields:
//
//	preset = "level1"
//	authorities = 4
//
//	[encryption_group]
//	p = "a3dd..."   # hex
//	g = "4"         # q defaults to (p-1)/2
package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/takakv/votecast/group"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/util"
)

// ErrInvalidConfig wraps every decoding failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type File struct {
	Preset             string `toml:"preset"`
	Authorities        int    `toml:"authorities"`
	SecurityLength     int    `toml:"security_length"`
	MessageLength      int    `toml:"message_length"`
	ReturnCodeLength   int    `toml:"return_code_length"`
	CredentialAlphabet string `toml:"credential_alphabet"`
	CredentialLength   int    `toml:"credential_length"`
	ReturnCodeAlphabet string `toml:"return_code_alphabet"`

	EncryptionGroup     *Group `toml:"encryption_group"`
	IdentificationGroup *Group `toml:"identification_group"`
	PrimeField          *Field `toml:"prime_field"`
}

// Group describes a subgroup of Z_p^* with hex-encoded integers.
type Group struct {
	P string `toml:"p"`
	Q string `toml:"q"`
	G string `toml:"g"`
}

type Field struct {
	P string `toml:"p"`
}

// Load reads and validates the parameter file at path.
func Load(path string) (*params.PublicParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return Decode(string(data))
}

// Decode parses and validates parameters from TOML text.
func Decode(data string) (*params.PublicParameters, error) {
	var f File
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", ErrInvalidConfig, undecoded[0])
	}
	return f.Parameters()
}

// Parameters applies f on top of its preset, if any, and validates the result.
func (f *File) Parameters() (*params.PublicParameters, error) {
	pp := &params.PublicParameters{}
	if f.Preset != "" {
		preset, err := params.ByName(f.Preset)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		pp = preset
	}

	var err error
	if f.EncryptionGroup != nil {
		if pp.EncryptionGroup, err = f.EncryptionGroup.build("Gq"); err != nil {
			return nil, err
		}
	}
	if f.IdentificationGroup != nil {
		if pp.IdentificationGroup, err = f.IdentificationGroup.build("Gq^"); err != nil {
			return nil, err
		}
	}
	if f.PrimeField != nil {
		p, err := parseHex("prime_field.p", f.PrimeField.P)
		if err != nil {
			return nil, err
		}
		pp.PrimeField = group.NewPrimeField(p)
	}

	setInt(&pp.Authorities, f.Authorities)
	setInt(&pp.SecurityLength, f.SecurityLength)
	setInt(&pp.MessageLength, f.MessageLength)
	setInt(&pp.ReturnCodeLength, f.ReturnCodeLength)
	setInt(&pp.CredentialLength, f.CredentialLength)
	if f.CredentialAlphabet != "" {
		if pp.CredentialAlphabet, err = util.NewAlphabet(f.CredentialAlphabet); err != nil {
			return nil, fmt.Errorf("%w: credential_alphabet: %v", ErrInvalidConfig, err)
		}
	}
	if f.ReturnCodeAlphabet != "" {
		if pp.ReturnCodeAlphabet, err = util.NewAlphabet(f.ReturnCodeAlphabet); err != nil {
			return nil, fmt.Errorf("%w: return_code_alphabet: %v", ErrInvalidConfig, err)
		}
	}

	if err := pp.Validate(); err != nil {
		return nil, err
	}
	return pp, nil
}

func (g *Group) build(name string) (*group.ModPGroup, error) {
	if g.Q == "" {
		if _, err := parseHex(name+".p", g.P); err != nil {
			return nil, err
		}
		if _, err := parseHex(name+".g", g.G); err != nil {
			return nil, err
		}
		return group.NewModPGroup(name, trimHex(g.P), trimHex(g.G)), nil
	}
	p, err := parseHex(name+".p", g.P)
	if err != nil {
		return nil, err
	}
	q, err := parseHex(name+".q", g.Q)
	if err != nil {
		return nil, err
	}
	gen, err := parseHex(name+".g", g.G)
	if err != nil {
		return nil, err
	}
	return group.NewSubgroup(name, p, q, gen), nil
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func trimHex(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
}

func parseHex(field, s string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(trimHex(s), 16)
	if !ok || x.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s is not a positive hex integer", ErrInvalidConfig, field)
	}
	return x, nil
}
