package model

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind names an aggregation pipeline and the output sub-directory it writes to.
type Kind string

const (
	KindPlayer Kind = "player"
	KindTeam   Kind = "team"
)

func (k Kind) String() string {
	return string(k)
}

// ParseKind accepts "player"/"players" and "team"/"teams".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "player", "players":
		return KindPlayer, nil
	case "team", "teams":
		return KindTeam, nil
	default:
		return "", fmt.Errorf("unknown aggregation kind %q", s)
	}
}

// ---- Player aggregate ----

// PlayerStat is the running total for one player within one match file.
// KDR and Accuracy are derived and must only be set by the aggregator after
// the counters change.
type PlayerStat struct {
	ID       string  `json:"id"`
	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
	KDR      float64 `json:"kdr"`
	Hits     int     `json:"hits"`
	Shots    int     `json:"shots"`
	Accuracy float64 `json:"accuracy"` // percent, two decimals
}

// Players maps player id to its running total, in first-seen order.
type Players = orderedmap.OrderedMap[string, *PlayerStat]

// NewPlayers returns an empty player table.
func NewPlayers() *Players {
	return orderedmap.New[string, *PlayerStat]()
}

// ---- Team aggregate ----

// TeamPlayerStat is a player's running total inside one team. It is kept
// apart from the top-level PlayerStat table.
type TeamPlayerStat struct {
	ID     string  `json:"id"`
	Kills  int     `json:"kills"`
	Deaths int     `json:"deaths"`
	KDR    float64 `json:"kdr"`
}

// TeamStat is the running total for one team within one match file.
type TeamStat struct {
	ID      string            `json:"id"`
	Wins    int               `json:"wins"`
	Losses  int               `json:"losses"`
	WLR     float64           `json:"wlr"`
	Players []*TeamPlayerStat `json:"players"`
}

// Player returns the roster entry with the given id, or nil.
// Rosters are a handful of players so a linear scan is enough.
func (t *TeamStat) Player(id string) *TeamPlayerStat {
	for _, p := range t.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Teams maps team id to its running total, in first-seen order.
type Teams = orderedmap.OrderedMap[string, *TeamStat]

// NewTeams returns an empty team table.
func NewTeams() *Teams {
	return orderedmap.New[string, *TeamStat]()
}
