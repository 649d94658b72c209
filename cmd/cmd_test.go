package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutsYAML = `titles:
  scrim: {team: 0, player: 1, wl: 2, kills: 3, deaths: 4, hits: 5, shots: 6}
`

const scrimCSV = `team,player,win?,kills,deaths,hits,shots
A,P1,W,3,1,10,20
A,P1,L,2,2,5,10
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	prevLogger := slog.Default()
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(t, rootCmd.PersistentFlags())
		for _, c := range rootCmd.Commands() {
			resetFlags(t, c.Flags())
		}
		slog.SetDefault(prevLogger)
	})
	err := rootCmd.Execute()
	return stdout.String(), err
}

// resetFlags restores every flag, and the variable behind it, to its default.
func resetFlags(t *testing.T, fs *pflag.FlagSet) {
	t.Helper()
	fs.VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})
}

func TestFlagsResetBetweenRuns(t *testing.T) {
	t.Run("run with overrides", func(t *testing.T) {
		_, err := execute(t, "titles", "--in", t.TempDir(), "--jobs", "4", "--partial", "--log-level", "error")
		require.NoError(t, err)
		assert.Equal(t, 4, jobs)
	})

	assert.Equal(t, envOr("CWLSTATS_IN", "data/game"), inputRoot)
	assert.Equal(t, 0, jobs)
	assert.False(t, partial)
	assert.Equal(t, "info", logLevel)
}

func TestGenerateAndShow(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "game")
	out := filepath.Join(root, "out")
	layouts := filepath.Join(root, "layouts.yaml")
	require.NoError(t, os.MkdirAll(filepath.Join(in, "scrim"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "scrim", "week1.csv"), []byte(scrimCSV), 0o644))
	require.NoError(t, os.WriteFile(layouts, []byte(layoutsYAML), 0o644))

	flags := []string{"--in", in, "--out", out, "--layouts", layouts, "--log-level", "error"}

	stdout, err := execute(t, append([]string{"generate", "scrim"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Kind: player")
	assert.Contains(t, stdout, "Kind: team")

	playerFile := filepath.Join(out, "scrim", "player", "week1.json")
	teamFile := filepath.Join(out, "scrim", "team", "week1.json")
	assert.FileExists(t, playerFile)
	assert.FileExists(t, teamFile)

	stdout, err = execute(t, append([]string{"show", playerFile}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "P1")
	assert.Contains(t, stdout, "50.00%")

	stdout, err = execute(t, append([]string{"show", teamFile}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.67")
}

func TestPlayersUnsupportedTitle(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")

	_, err := execute(t, "players", "halo", "--in", root, "--out", out, "--layouts", "", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported game title")
	assert.NoDirExists(t, out)
}

func TestShowNeedsKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	_, err := execute(t, "show", path, "--log-level", "error")
	require.Error(t, err)

	stdout, err := execute(t, "show", path, "--kind", "team", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "TEAM")
}

func TestTitles(t *testing.T) {
	stdout, err := execute(t, "titles", "--layouts", "", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bo4")
	assert.Contains(t, stdout, "wwii")
}
