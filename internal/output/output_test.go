package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cwl-stats/internal/model"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNewDirIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "game", "bo4", "player")

	_, err := NewDir(path)
	require.NoError(t, err)
	_, err = NewDir(path)
	require.NoError(t, err, "existing directory is fine")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewDirFailsOnFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "player")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := NewDir(filepath.Join(blocker, "nested"))
	require.Error(t, err)
}

func TestStageCommit(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	players := model.NewPlayers()
	players.Set("Scump", &model.PlayerStat{ID: "Scump", Kills: 24, Deaths: 16, KDR: 1.5})

	staged, err := d.Stage("champs", players)
	require.NoError(t, err)
	assert.Equal(t, "champs", staged.Name)
	assert.NotContains(t, listDir(t, d.Path()), "champs.json", "nothing is published before commit")

	target, err := d.Commit(staged)
	require.NoError(t, err)
	assert.Equal(t, d.Target("champs"), target)
	assert.Equal(t, []string{"champs.json"}, listDir(t, d.Path()))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"Scump":{"id":"Scump","kills":24,"deaths":16,"kdr":1.5,"hits":0,"shots":0,"accuracy":0}}`,
		string(data))
}

func TestCommitReplacesPreviousOutput(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(d.Target("champs"), []byte("stale"), 0o644))

	staged, err := d.Stage("champs", map[string]int{"fresh": 1})
	require.NoError(t, err)
	_, err = d.Commit(staged)
	require.NoError(t, err)

	data, err := os.ReadFile(d.Target("champs"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"fresh":1}`, string(data))
}

func TestDiscard(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	staged, err := d.Stage("champs", map[string]int{})
	require.NoError(t, err)
	require.NoError(t, d.Discard(staged))
	require.NoError(t, d.Discard(staged), "second discard is a no-op")
	assert.Empty(t, listDir(t, d.Path()))
}

func TestStageEncodeFailureLeavesNothing(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	_, err = d.Stage("bad", map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Empty(t, listDir(t, d.Path()))
}

func TestReadBackKeepsOrder(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	teams := model.NewTeams()
	for _, id := range []string{"Zeta", "Alpha", "Mid"} {
		teams.Set(id, &model.TeamStat{ID: id, Wins: 1, WLR: 1, Players: []*model.TeamPlayerStat{{ID: id + "-1"}}})
	}
	staged, err := d.Stage("series", teams)
	require.NoError(t, err)
	target, err := d.Commit(staged)
	require.NoError(t, err)

	got, err := ReadTeams(target)
	require.NoError(t, err)
	var ids []string
	for pair := got.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, ids)

	zeta, _ := got.Get("Zeta")
	assert.Equal(t, "Zeta-1", zeta.Players[0].ID)
}

func TestReadPlayersErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadPlayers(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = ReadPlayers(bad)
	require.Error(t, err)
}
