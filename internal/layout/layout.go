// Package layout maps the semantic columns of a match export (team, player,
// win/loss, kills, deaths, hits, shots) to field positions. Exports are not
// uniformly formatted across game titles, so each title carries its own
// layout.
package layout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedTitle = errors.New("unsupported game title")
	ErrInvalidLayout    = errors.New("invalid column layout")
)

// Title is a game-title token such as "bo4".
type Title string

const (
	WWII Title = "wwii"
	BO4  Title = "bo4"
)

// Normalize lower-cases and trims a title token.
func (t Title) Normalize() Title {
	return Title(strings.ToLower(strings.TrimSpace(string(t))))
}

// Layout holds zero-based field positions within a row.
type Layout struct {
	Team   int
	Player int
	WL     int
	Kills  int
	Deaths int
	Hits   int
	Shots  int
}

// MaxIndex returns the highest configured position. A row needs at least
// MaxIndex()+1 fields.
func (l Layout) MaxIndex() int {
	m := l.Team
	for _, i := range []int{l.Player, l.WL, l.Kills, l.Deaths, l.Hits, l.Shots} {
		if i > m {
			m = i
		}
	}
	return m
}

// Validate rejects negative positions.
func (l Layout) Validate() error {
	for _, c := range l.Columns() {
		if c.Index < 0 {
			return fmt.Errorf("%w: %s column is %d", ErrInvalidLayout, c.Name, c.Index)
		}
	}
	return nil
}

// Column is a named position, used for error messages and display.
type Column struct {
	Name  string
	Index int
}

// Columns lists the layout's positions in a fixed order.
func (l Layout) Columns() []Column {
	return []Column{
		{"team", l.Team},
		{"player", l.Player},
		{"wl", l.WL},
		{"kills", l.Kills},
		{"deaths", l.Deaths},
		{"hits", l.Hits},
		{"shots", l.Shots},
	}
}

// builtin layouts for the league exports. Both titles share the leading
// identity/result columns; hits and shots moved between export versions.
var builtin = map[Title]Layout{
	WWII: {Team: 6, Player: 7, WL: 8, Kills: 10, Deaths: 11, Hits: 21, Shots: 22},
	BO4:  {Team: 6, Player: 7, WL: 8, Kills: 10, Deaths: 11, Hits: 18, Shots: 19},
}

// Registry is a title→layout table.
type Registry struct {
	layouts map[Title]Layout
}

// Builtin returns a registry holding the shipped layouts.
func Builtin() *Registry {
	r := &Registry{layouts: make(map[Title]Layout, len(builtin))}
	for t, l := range builtin {
		r.layouts[t] = l
	}
	return r
}

// Lookup returns the layout for a title.
func (r *Registry) Lookup(title Title) (Layout, error) {
	l, ok := r.layouts[title.Normalize()]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedTitle, title, r.titleList())
	}
	return l, nil
}

// Titles returns the supported titles in sorted order.
func (r *Registry) Titles() []Title {
	out := make([]Title, 0, len(r.layouts))
	for t := range r.layouts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) titleList() string {
	titles := r.Titles()
	names := make([]string, len(titles))
	for i, t := range titles {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// overrideFile is the schema of a --layouts YAML file:
//
//	titles:
//	  bo4:
//	    team: 6
//	    player: 7
//	    ...
//
// Every title must name all seven columns.
type overrideFile struct {
	Titles map[string]columnSet `yaml:"titles"`
}

type columnSet struct {
	Team   *int `yaml:"team"`
	Player *int `yaml:"player"`
	WL     *int `yaml:"wl"`
	Kills  *int `yaml:"kills"`
	Deaths *int `yaml:"deaths"`
	Hits   *int `yaml:"hits"`
	Shots  *int `yaml:"shots"`
}

func (c columnSet) layout() (Layout, error) {
	var missing []string
	get := func(name string, v *int) int {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return *v
	}
	l := Layout{
		Team:   get("team", c.Team),
		Player: get("player", c.Player),
		WL:     get("wl", c.WL),
		Kills:  get("kills", c.Kills),
		Deaths: get("deaths", c.Deaths),
		Hits:   get("hits", c.Hits),
		Shots:  get("shots", c.Shots),
	}
	if len(missing) > 0 {
		return Layout{}, fmt.Errorf("%w: missing %s", ErrInvalidLayout, strings.Join(missing, ", "))
	}
	return l, l.Validate()
}

// LoadFile reads a YAML override file and merges it over the built-in
// layouts. Titles in the file replace built-ins wholesale.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layouts: %w", err)
	}
	return Parse(data)
}

// Parse is LoadFile without the file read. Unknown keys are rejected.
func Parse(data []byte) (*Registry, error) {
	var f overrideFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
		}
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	r := Builtin()
	for name, cols := range f.Titles {
		title := Title(name).Normalize()
		if title == "" {
			return nil, fmt.Errorf("%w: empty title", ErrInvalidLayout)
		}
		l, err := cols.layout()
		if err != nil {
			return nil, fmt.Errorf("title %s: %w", title, err)
		}
		r.layouts[title] = l
	}
	return r, nil
}
