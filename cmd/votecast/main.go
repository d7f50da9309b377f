// Command votecast casts one ballot end to end against simulated
// authorities: it prints the voting card, generates and checks the ballot,
// collects the OT responses and compares the derived return codes with the
// card.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/takakv/votecast/algebra"
	"github.com/takakv/votecast/authority"
	"github.com/takakv/votecast/config"
	"github.com/takakv/votecast/hashing"
	"github.com/takakv/votecast/log"
	"github.com/takakv/votecast/model"
	"github.com/takakv/votecast/params"
	"github.com/takakv/votecast/random"
	"github.com/takakv/votecast/votecasting"
)

// VotecastConfig holds the command line configuration.
type VotecastConfig struct {
	logLevel, paramsFile, preset, out, seed string
	candidates, quota, selections           []int
}

func main() {
	cfg := VotecastConfig{}
	flag.StringVar(&cfg.logLevel, "logLevel", "error", "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.paramsFile, "params", "", "TOML file with the election parameters")
	flag.StringVar(&cfg.preset, "preset", "level1", "parameter preset ("+strings.Join(params.Names(), ", ")+")")
	flag.IntSliceVar(&cfg.candidates, "candidates", []int{3, 4}, "number of candidates per election")
	flag.IntSliceVar(&cfg.quota, "quota", []int{1, 2}, "number of selections per election")
	flag.IntSliceVar(&cfg.selections, "select", []int{2, 4, 6}, "1-based selected candidates, across all elections")
	flag.StringVar(&cfg.out, "out", "", "write the ballot as JSON to this file")
	flag.StringVar(&cfg.seed, "seed", "", "seed for reproducible runs (insecure)")
	flag.CommandLine.SortFlags = false
	flag.Parse()

	pviper := viper.New()
	pviper.SetEnvPrefix("VOTECAST")
	pviper.AutomaticEnv()
	for _, name := range []string{"logLevel", "params", "preset", "candidates", "quota", "select", "out", "seed"} {
		if err := pviper.BindPFlag(name, flag.Lookup(name)); err != nil {
			panic(err)
		}
	}
	cfg.logLevel = pviper.GetString("logLevel")
	cfg.paramsFile = pviper.GetString("params")
	cfg.preset = pviper.GetString("preset")
	cfg.candidates = pviper.GetIntSlice("candidates")
	cfg.quota = pviper.GetIntSlice("quota")
	cfg.selections = pviper.GetIntSlice("select")
	cfg.out = pviper.GetString("out")
	cfg.seed = pviper.GetString("seed")

	log.Init(cfg.logLevel, "stderr")
	if err := run(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func loadParameters(cfg VotecastConfig) (*params.PublicParameters, error) {
	if cfg.paramsFile != "" {
		return config.Load(cfg.paramsFile)
	}
	pp, err := params.ByName(cfg.preset)
	if err != nil {
		return nil, err
	}
	return pp, pp.Validate()
}

func run(cfg VotecastConfig, w io.Writer) error {
	pp, err := loadParameters(cfg)
	if err != nil {
		return err
	}
	if len(cfg.candidates) != len(cfg.quota) {
		return fmt.Errorf("%d elections in --candidates but %d in --quota", len(cfg.candidates), len(cfg.quota))
	}
	rnd := random.Secure()
	if cfg.seed != "" {
		rnd = random.NewDeterministic([]byte(cfg.seed))
	}
	hash := hashing.New(pp.SecurityLength)
	alg := algebra.New(pp, hash)

	// Setup: one key pair and one point list per authority.
	var pks []*big.Int
	points := make([][]model.Point, pp.Authorities)
	for j := range points {
		kp, err := authority.GenKeyPair(pp, rnd)
		if err != nil {
			return err
		}
		pks = append(pks, kp.PK)
		if points[j], err = authority.GenPoints(pp, rnd, cfg.candidates, cfg.quota); err != nil {
			return err
		}
	}
	pk, err := authority.CombineKeys(pp, pks...)
	if err != nil {
		return err
	}
	card, err := authority.VotingCardCodes(pp, hash, points)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Voting card")
	for l, code := range card {
		fmt.Fprintf(w, "  candidate %d: %s\n", l+1, code)
	}

	credential, err := randomCredential(pp, rnd)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\nVote casting")
	client := votecasting.NewClient(pp, alg, rnd, hash)
	start := time.Now()
	res, err := client.GenBallot(credential, cfg.selections, pk)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "  ballot generated in", time.Since(start))
	if cfg.out != "" {
		data, err := json.MarshalIndent(res.Ballot, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.out, data, 0o600); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "\nOblivious transfer")
	responses := make([]model.ObliviousTransferResponse, len(points))
	for j := range points {
		rs := authority.NewResponder(pp, alg, hash, rnd, pk)
		if err := rs.CheckBallot(res.Ballot, cfg.quota); err != nil {
			return fmt.Errorf("authority %d: %w", j+1, err)
		}
		if responses[j], err = rs.GenResponse(res.Ballot.A, cfg.candidates, cfg.quota, points[j]); err != nil {
			return fmt.Errorf("authority %d: %w", j+1, err)
		}
	}
	fmt.Fprintf(w, "  %d authorities accepted the ballot\n", len(responses))

	start = time.Now()
	boldP, err := client.GetPointMatrix(responses, cfg.quota, cfg.selections, res.R)
	if err != nil {
		return err
	}
	codes, err := client.GetReturnCodes(boldP)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "  return codes derived in", time.Since(start))

	fmt.Fprintln(w, "\nReturn codes")
	ok := true
	for i, si := range cfg.selections {
		match := card[si-1] == codes[i]
		ok = ok && match
		fmt.Fprintf(w, "  candidate %d: %s (card %s, match %t)\n", si, codes[i], card[si-1], match)
	}
	if !ok {
		return errors.New("return codes do not match the voting card")
	}
	fmt.Fprintln(w, "\nAll return codes match the voting card")
	return nil
}

// randomCredential draws x below both q̂ and |A_x|^ℓ and encodes it with ℓ
// characters.
func randomCredential(pp *params.PublicParameters, rnd random.Source) (string, error) {
	alphabet := pp.CredentialAlphabet
	qHat := pp.IdentificationGroup.Q()
	l := pp.CredentialLength
	if l == 0 {
		l = alphabet.StringLength((qHat.BitLen() + 7) / 8)
	}
	bound := new(big.Int).Exp(big.NewInt(int64(alphabet.Size())), big.NewInt(int64(l)), nil)
	if bound.Cmp(qHat) > 0 {
		bound = qHat
	}
	x, err := rnd.IntN(bound)
	if err != nil {
		return "", err
	}
	return alphabet.EncodeInteger(x, l)
}
