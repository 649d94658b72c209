package aggregator

import (
	"github.com/pable/go-cwl-stats/internal/layout"
	"github.com/pable/go-cwl-stats/internal/model"
	"github.com/pable/go-cwl-stats/internal/ratio"
)

// Players folds every row into a table keyed by player id. Players appear in
// the order they are first seen.
func Players(rd RowReader, l layout.Layout) (*model.Players, error) {
	players := model.NewPlayers()

	err := eachRow(rd, l, func(r row) error {
		kills, err := r.count(l.Kills, "kills")
		if err != nil {
			return err
		}
		deaths, err := r.count(l.Deaths, "deaths")
		if err != nil {
			return err
		}
		hits, err := r.count(l.Hits, "hits")
		if err != nil {
			return err
		}
		shots, err := r.count(l.Shots, "shots")
		if err != nil {
			return err
		}

		id := r.text(l.Player)
		p, ok := players.Get(id)
		if !ok {
			p = &model.PlayerStat{ID: id}
			players.Set(id, p)
		}

		p.Kills += kills
		p.Deaths += deaths
		p.Hits += hits
		p.Shots += shots
		p.KDR = ratio.KDR(p.Kills, p.Deaths)
		p.Accuracy = ratio.Accuracy(p.Hits, p.Shots)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}
