package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cwl-stats/internal/batch"
	"github.com/pable/go-cwl-stats/internal/layout"
	"github.com/pable/go-cwl-stats/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintOutcome prints a one-line batch header followed by one row per export.
func PrintOutcome(w io.Writer, o batch.Outcome) {
	fmt.Fprintf(w, "\nTitle: %s  |  Kind: %s  |  Files: %d  |  OK: %d  |  Failed: %d  |  Withheld: %d  |  %s\n\n",
		o.Title, o.Kind, o.Total(), len(o.Succeeded), len(o.Failed), len(o.Discarded), o.Elapsed.Round(time.Millisecond))
	if o.Total() == 0 {
		fmt.Fprintln(w, "No match exports found.")
		return
	}

	table := newTable(w)
	table.Header("FILE", "STATUS", "DETAIL")
	for _, r := range o.Succeeded {
		table.Append(r.Name, "written", r.Output)
	}
	for _, r := range o.Discarded {
		table.Append(r.Name, "withheld", "batch failed; nothing published")
	}
	for _, r := range o.Failed {
		table.Append(r.Name, "FAILED", r.Err.Error())
	}
	table.Render()
}

// PrintPlayers prints a player summary in file order.
func PrintPlayers(w io.Writer, players *model.Players) {
	table := newTable(w)
	table.Header("PLAYER", "K", "D", "K/D", "HITS", "SHOTS", "ACC%")
	for pair := players.Oldest(); pair != nil; pair = pair.Next() {
		p := pair.Value
		table.Append(
			p.ID,
			strconv.Itoa(p.Kills),
			strconv.Itoa(p.Deaths),
			fmt.Sprintf("%.2f", p.KDR),
			strconv.Itoa(p.Hits),
			strconv.Itoa(p.Shots),
			fmt.Sprintf("%.2f%%", p.Accuracy),
		)
	}
	table.Render()
}

// PrintTeams prints one row per team followed by an indented row per
// rostered player.
func PrintTeams(w io.Writer, teams *model.Teams) {
	table := newTable(w)
	table.Header("TEAM", "PLAYER", "W", "L", "W/L", "K", "D", "K/D")
	for pair := teams.Oldest(); pair != nil; pair = pair.Next() {
		t := pair.Value
		table.Append(
			t.ID, "",
			strconv.Itoa(t.Wins),
			strconv.Itoa(t.Losses),
			fmt.Sprintf("%.2f", t.WLR),
			"", "", "",
		)
		for _, p := range t.Players {
			table.Append(
				"", p.ID,
				"", "", "",
				strconv.Itoa(p.Kills),
				strconv.Itoa(p.Deaths),
				fmt.Sprintf("%.2f", p.KDR),
			)
		}
	}
	table.Render()
}

// PrintTitles prints every supported title with its column positions.
func PrintTitles(w io.Writer, r *layout.Registry) {
	table := newTable(w)
	table.Header("TITLE", "TEAM", "PLAYER", "WL", "KILLS", "DEATHS", "HITS", "SHOTS")
	for _, title := range r.Titles() {
		l, err := r.Lookup(title)
		if err != nil {
			continue
		}
		row := []any{string(title)}
		for _, c := range l.Columns() {
			row = append(row, strconv.Itoa(c.Index))
		}
		table.Append(row...)
	}
	table.Render()
}
