// Package output writes aggregate summaries as JSON files.
//
// Writes are two-phase: Stage encodes into a hidden temp file next to the
// destination and Commit renames it into place, so a batch can decide
// whether to publish anything after every file has been processed.
package output

//go:generate mockgen -destination=mocks/mock_sink.go -package=mocks github.com/pable/go-cwl-stats/internal/output Sink

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pable/go-cwl-stats/internal/model"
)

// Staged is an encoded summary waiting to be committed or discarded.
type Staged struct {
	Name string // output base name, without extension
	Temp string // path of the staged temp file
}

// Sink accepts encoded summaries.
type Sink interface {
	Stage(name string, v any) (Staged, error)
	Commit(s Staged) (string, error)
	Discard(s Staged) error
}

// Dir is a Sink writing <name>.json files into one directory.
type Dir struct {
	path string
}

// NewDir creates path if missing and returns a Sink over it.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory written to.
func (d *Dir) Path() string {
	return d.path
}

// Target returns the final path for an output name.
func (d *Dir) Target(name string) string {
	return filepath.Join(d.path, name+".json")
}

// Stage encodes v as JSON into a temp file in the output directory.
func (d *Dir) Stage(name string, v any) (Staged, error) {
	f, err := os.CreateTemp(d.path, "."+name+".*.tmp")
	if err != nil {
		return Staged{}, fmt.Errorf("stage %s: %w", name, err)
	}
	staged := Staged{Name: name, Temp: f.Name()}

	if err := json.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		os.Remove(staged.Temp)
		return Staged{}, fmt.Errorf("encode %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(staged.Temp)
		return Staged{}, fmt.Errorf("flush %s: %w", name, err)
	}
	return staged, nil
}

// Commit moves a staged file to its final name, replacing any previous output.
func (d *Dir) Commit(s Staged) (string, error) {
	target := d.Target(s.Name)
	if err := os.Rename(s.Temp, target); err != nil {
		return "", fmt.Errorf("commit %s: %w", s.Name, err)
	}
	return target, nil
}

// Discard removes a staged file. Discarding twice is not an error.
func (d *Dir) Discard(s Staged) error {
	if err := os.Remove(s.Temp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("discard %s: %w", s.Name, err)
	}
	return nil
}

// ReadPlayers decodes a player summary, keeping the file's key order.
func ReadPlayers(path string) (*model.Players, error) {
	players := model.NewPlayers()
	if err := readJSON(path, players); err != nil {
		return nil, err
	}
	return players, nil
}

// ReadTeams decodes a team summary, keeping the file's key order.
func ReadTeams(path string) (*model.Teams, error) {
	teams := model.NewTeams()
	if err := readJSON(path, teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read summary: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
