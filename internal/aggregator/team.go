package aggregator

import (
	"github.com/pable/go-cwl-stats/internal/layout"
	"github.com/pable/go-cwl-stats/internal/model"
	"github.com/pable/go-cwl-stats/internal/ratio"
)

// winFlag marks a won map in the win/loss column. Anything else is a loss.
const winFlag = "W"

// Teams folds every row into a table keyed by team id. Each team carries its
// own roster of player totals, independent of Players.
//
// A row's kills and deaths are added to the roster entry exactly once,
// whether or not the entry already existed.
func Teams(rd RowReader, l layout.Layout) (*model.Teams, error) {
	teams := model.NewTeams()

	err := eachRow(rd, l, func(r row) error {
		kills, err := r.count(l.Kills, "kills")
		if err != nil {
			return err
		}
		deaths, err := r.count(l.Deaths, "deaths")
		if err != nil {
			return err
		}

		teamID := r.text(l.Team)
		team, ok := teams.Get(teamID)
		if !ok {
			team = &model.TeamStat{ID: teamID, Players: []*model.TeamPlayerStat{}}
			teams.Set(teamID, team)
		}

		playerID := r.text(l.Player)
		p := team.Player(playerID)
		if p == nil {
			p = &model.TeamPlayerStat{ID: playerID}
			team.Players = append(team.Players, p)
		}
		p.Kills += kills
		p.Deaths += deaths
		p.KDR = ratio.KDR(p.Kills, p.Deaths)

		if r.text(l.WL) == winFlag {
			team.Wins++
		} else {
			team.Losses++
		}
		team.WLR = ratio.WLR(team.Wins, team.Losses)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}
