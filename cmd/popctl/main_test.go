package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/dietpop-lineup/internal/app"
	"github.com/riskibarqy/dietpop-lineup/internal/config"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
	"github.com/riskibarqy/dietpop-lineup/internal/usecase"
)

func newTestRuntime(t *testing.T) *app.Runtime {
	t.Helper()
	ctx := context.Background()
	rt, err := app.NewRuntime(ctx, config.Config{
		StorageDriver:  config.StorageMemory,
		PersistWorkers: 1,
		PersistTimeout: time.Second,
	}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, rt.Close(ctx)) })
	return rt
}

func run(t *testing.T, rt *app.Runtime, args ...string) (string, error) {
	t.Helper()
	open := func(context.Context) (*app.Runtime, func(context.Context) error, error) {
		return rt, nil, nil
	}

	var out bytes.Buffer
	root := newRootCommand(open)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLineupCommands(t *testing.T) {
	rt := newTestRuntime(t)

	out, err := run(t, rt, "lineup", "assign", "1c", "diet-coke")
	require.NoError(t, err)
	require.Contains(t, out, "Diet Coke")
	require.Contains(t, out, "(6% complete)")

	_, err = run(t, rt, "lineup", "assign", "2RD", "diet-pepsi")
	require.NoError(t, err)

	out, err = run(t, rt, "lineup", "swap", "1C", "2RD")
	require.NoError(t, err)
	require.Contains(t, out, "(11% complete)")

	got, err := rt.Lineups.Current(context.Background(), usecase.DefaultOwnerID)
	require.NoError(t, err)
	require.Equal(t, "diet-pepsi", got.At("1C"))
	require.Equal(t, "diet-coke", got.At("2RD"))

	_, err = run(t, rt, "lineup", "move", "2RD", "3LW")
	require.NoError(t, err)
	_, err = run(t, rt, "lineup", "remove", "1C")
	require.NoError(t, err)

	out, err = run(t, rt, "lineup", "show")
	require.NoError(t, err)
	require.Contains(t, out, "pops: 1/18")
	require.Contains(t, out, "brands: Coca-Cola 1")

	out, err = run(t, rt, "lineup", "clear")
	require.NoError(t, err)
	require.Contains(t, out, "(0% complete)")
}

func TestLineupCommands_Errors(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := run(t, rt, "lineup", "assign", "G", "diet-coke")
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = run(t, rt, "lineup", "assign", "1C", "crystal-pepsi")
	require.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = run(t, rt, "lineup", "swap", "1C")
	require.Error(t, err)
}

func TestOwnerFlagIsolatesLineups(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := run(t, rt, "--owner", "alice", "lineup", "assign", "1C", "tab")
	require.NoError(t, err)

	out, err := run(t, rt, "--owner", "bob", "lineup", "show")
	require.NoError(t, err)
	require.Contains(t, out, "pops: 0/18")
}

func TestPopsCommands(t *testing.T) {
	rt := newTestRuntime(t)

	out, err := run(t, rt, "pops", "list", "--brand", "7UP")
	require.NoError(t, err)
	require.Contains(t, out, "diet-7up")
	require.NotContains(t, out, "diet-coke")

	out, err = run(t, rt, "pops", "list", "--custom-only")
	require.NoError(t, err)
	require.Contains(t, out, "no pops match")

	out, err = run(t, rt, "pops", "brands")
	require.NoError(t, err)
	brands := strings.Fields(strings.ReplaceAll(out, "\n", " "))
	require.Contains(t, brands, "PepsiCo")
}

func TestExportCommand(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := run(t, rt, "lineup", "assign", "1LD", "diet-7up")
	require.NoError(t, err)

	out, err := run(t, rt, "export")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, sonic.UnmarshalString(strings.TrimSpace(out), &doc))
	positions := doc["lineup"].(map[string]any)["positions"].(map[string]any)
	require.Equal(t, "diet-7up", positions["1LD"])
	require.Len(t, positions, 18)

	file := filepath.Join(t.TempDir(), "backup.json")
	out, err = run(t, rt, "export", "--file", file)
	require.NoError(t, err)
	require.Contains(t, out, "exported to")

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"customPops":[]`)
}
