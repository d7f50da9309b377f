package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/takakv/votecast/model"
)

func toyConfig() VotecastConfig {
	return VotecastConfig{
		preset:     "level0",
		seed:       "toy",
		candidates: []int{3},
		quota:      []int{2},
		selections: []int{1, 2},
	}
}

func TestRunToy(t *testing.T) {
	cfg := toyConfig()
	cfg.out = filepath.Join(t.TempDir(), "ballot.json")

	var buf bytes.Buffer
	require.NoError(t, run(cfg, &buf))
	require.Contains(t, buf.String(), "All return codes match the voting card")

	data, err := os.ReadFile(cfg.out)
	require.NoError(t, err)
	var ballot model.BallotAndQuery
	require.NoError(t, json.Unmarshal(data, &ballot))
	require.Len(t, ballot.A, 2)
	require.Len(t, ballot.Proof.T, 3)
}

func TestRunLevel1(t *testing.T) {
	cfg := VotecastConfig{
		preset:     "level1",
		seed:       "demo",
		candidates: []int{3, 4},
		quota:      []int{1, 2},
		selections: []int{2, 4, 6},
	}
	var buf bytes.Buffer
	require.NoError(t, run(cfg, &buf))
	require.Contains(t, buf.String(), "candidate 6:")
}

func TestRunRejectsBadInput(t *testing.T) {
	cfg := toyConfig()
	cfg.quota = []int{1, 1}
	require.Error(t, run(cfg, &bytes.Buffer{}))

	cfg = toyConfig()
	cfg.selections = []int{2, 1}
	require.ErrorIs(t, run(cfg, &bytes.Buffer{}), model.ErrInvalidInput)

	cfg = toyConfig()
	cfg.preset = "level9"
	require.Error(t, run(cfg, &bytes.Buffer{}))

	cfg = toyConfig()
	cfg.paramsFile = filepath.Join(t.TempDir(), "missing.toml")
	require.Error(t, run(cfg, &bytes.Buffer{}))
}
