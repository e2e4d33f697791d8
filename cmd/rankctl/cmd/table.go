package cmd

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
)

func newTableStyle() table.Style {
	style := table.StyleRounded
	style.Format.Header = text.FormatUpper
	style.Options.SeparateRows = false
	return style
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(newTableStyle())
	return t
}

func renderPoints(w io.Writer, points []ranking.Point) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Period", "Rank", "Symbol", "Base", "Concept", "Score"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Rank", Align: text.AlignRight},
		{Name: "Score", Align: text.AlignRight},
	})
	for _, p := range points {
		t.AppendRow(table.Row{p.PeriodQuarter, p.PositionRank, p.Symbol, p.Base, p.Concept, p.Ranking.String()})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Rows", len(points)})
	t.Render()
}

func renderPodium(w io.Writer, podium []ranking.Podium) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Symbol", "Gold", "Silver", "Bronze", "Total"})
	for i, p := range podium {
		t.AppendRow(table.Row{i + 1, p.Symbol, p.Gold, p.Silver, p.Bronze, p.Total()})
	}
	t.Render()
}

func renderPeriods(w io.Writer, periods []string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Period"})
	for _, p := range periods {
		t.AppendRow(table.Row{p})
	}
	t.Render()
}
