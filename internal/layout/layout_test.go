package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBuiltin(t *testing.T) {
	r := Builtin()

	l, err := r.Lookup(BO4)
	require.NoError(t, err)
	assert.Equal(t, 6, l.Team)
	assert.Equal(t, 7, l.Player)
	assert.Equal(t, 19, l.MaxIndex())

	l, err = r.Lookup("WWII")
	require.NoError(t, err, "lookup is case-insensitive")
	assert.Equal(t, 22, l.Shots)
}

func TestLookupUnsupported(t *testing.T) {
	_, err := Builtin().Lookup("mw3")
	require.ErrorIs(t, err, ErrUnsupportedTitle)
	assert.Contains(t, err.Error(), "bo4, wwii")
}

func TestTitlesSorted(t *testing.T) {
	assert.Equal(t, []Title{BO4, WWII}, Builtin().Titles())
}

func TestMaxIndex(t *testing.T) {
	l := Layout{Team: 0, Player: 1, WL: 2, Kills: 9, Deaths: 3, Hits: 4, Shots: 5}
	assert.Equal(t, 9, l.MaxIndex())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Layout{}.Validate())

	err := Layout{Hits: -1}.Validate()
	require.ErrorIs(t, err, ErrInvalidLayout)
	assert.Contains(t, err.Error(), "hits")
}

func TestParseOverrides(t *testing.T) {
	data := []byte(`
titles:
  BO4:
    team: 0
    player: 1
    wl: 2
    kills: 3
    deaths: 4
    hits: 5
    shots: 6
  iw:
    team: 1
    player: 2
    wl: 3
    kills: 4
    deaths: 5
    hits: 30
    shots: 31
`)
	r, err := Parse(data)
	require.NoError(t, err)

	bo4, err := r.Lookup(BO4)
	require.NoError(t, err)
	assert.Equal(t, Layout{Team: 0, Player: 1, WL: 2, Kills: 3, Deaths: 4, Hits: 5, Shots: 6}, bo4)

	iw, err := r.Lookup("iw")
	require.NoError(t, err)
	assert.Equal(t, 31, iw.MaxIndex())

	_, err = r.Lookup(WWII)
	require.NoError(t, err, "built-ins not named in the file survive")

	// The built-in table itself is untouched.
	orig, _ := Builtin().Lookup(BO4)
	assert.Equal(t, 6, orig.Team)
}

func TestParseRejectsNegative(t *testing.T) {
	_, err := Parse([]byte("titles:\n  bo4: {team: 6, player: 7, wl: 8, kills: -2, deaths: 11, hits: 18, shots: 19}\n"))
	require.ErrorIs(t, err, ErrInvalidLayout)
}

func TestParseRejectsUnknownKey(t *testing.T) {
	_, err := Parse([]byte("titles:\n  mw: {team: 6, player: 7, wl: 8, kils: 10, deaths: 11, hits: 18, shots: 19}\n"))
	require.ErrorIs(t, err, ErrInvalidLayout)
	assert.Contains(t, err.Error(), "kils")
}

func TestParseRejectsMissingColumns(t *testing.T) {
	_, err := Parse([]byte("titles:\n  mw: {team: 6, player: 7, wl: 8, deaths: 11, hits: 18}\n"))
	require.ErrorIs(t, err, ErrInvalidLayout)
	assert.Contains(t, err.Error(), "missing kills, shots")
}

func TestParseEmpty(t *testing.T) {
	r, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, []Title{BO4, WWII}, r.Titles())
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("titles: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidLayout)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("titles:\n  ghosts: {team: 0, player: 1, wl: 2, kills: 3, deaths: 4, hits: 11, shots: 12}\n"), 0o644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	l, err := r.Lookup("ghosts")
	require.NoError(t, err)
	assert.Equal(t, 12, l.Shots)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
