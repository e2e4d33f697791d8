package ranking

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
)

// PointOptions 시계열 순위 옵션
type PointOptions struct {
	Window   int              // rolling width, coerced by ranking.SelectWindow
	Grouping ranking.Grouping // default GroupByConcept
	Concept  string           // optional normalized concept filter
	Symbol   string           // optional, applied after ranking
	Limit    int              // 0 = no cap
}

// PodiumOptions 포디움 집계 옵션
type PodiumOptions struct {
	Window   int
	Grouping ranking.Grouping
	Concept  string
	Periods  []string // target periods; empty = every period present
}

// Engine computes rolling scores, position ranks and podium tallies.
// It holds no state; every call works only on the facts it is given.
type Engine struct{}

// NewEngine 엔진 생성
func NewEngine() *Engine {
	return &Engine{}
}

// Points returns the ranked point series sorted by period desc, rank asc.
func (e *Engine) Points(facts []ranking.Fact, opts PointOptions) []ranking.Point {
	points := e.rank(facts, opts.Window, opts.Grouping, opts.Concept, nil)

	if opts.Symbol != "" {
		kept := points[:0]
		for _, p := range points {
			if p.Symbol == opts.Symbol {
				kept = append(kept, p)
			}
		}
		points = kept
	}

	sort.SliceStable(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.PeriodQuarter != b.PeriodQuarter {
			return a.PeriodQuarter > b.PeriodQuarter
		}
		if a.PositionRank != b.PositionRank {
			return a.PositionRank < b.PositionRank
		}
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		if a.Base != b.Base {
			return a.Base < b.Base
		}
		return a.Concept < b.Concept
	})

	if opts.Limit > 0 && len(points) > opts.Limit {
		points = points[:opts.Limit]
	}
	return points
}

// Podium ranks each target period independently and counts
// rank 1/2/3 placements per symbol across every group.
func (e *Engine) Podium(facts []ranking.Fact, opts PodiumOptions) []ranking.Podium {
	var targets map[string]struct{}
	if len(opts.Periods) > 0 {
		targets = make(map[string]struct{}, len(opts.Periods))
		for _, p := range opts.Periods {
			targets[p] = struct{}{}
		}
	}

	points := e.rank(facts, opts.Window, opts.Grouping, opts.Concept, targets)

	tally := make(map[string]*ranking.Podium)
	for _, p := range points {
		if p.PositionRank > 3 {
			continue
		}
		row, ok := tally[p.Symbol]
		if !ok {
			row = &ranking.Podium{Symbol: p.Symbol}
			tally[p.Symbol] = row
		}
		switch p.PositionRank {
		case 1:
			row.Gold++
		case 2:
			row.Silver++
		case 3:
			row.Bronze++
		}
	}

	podium := make([]ranking.Podium, 0, len(tally))
	for _, row := range tally {
		podium = append(podium, *row)
	}

	sort.Slice(podium, func(i, j int) bool {
		a, b := podium[i], podium[j]
		if a.Gold != b.Gold {
			return a.Gold > b.Gold
		}
		if a.Silver != b.Silver {
			return a.Silver > b.Silver
		}
		if a.Bronze != b.Bronze {
			return a.Bronze > b.Bronze
		}
		return a.Symbol < b.Symbol
	})

	return podium
}

// rank runs filter → aggregate → rolling sum → competition rank.
// A nil targets map keeps every period.
func (e *Engine) rank(facts []ranking.Fact, window int, grouping ranking.Grouping, concept string, targets map[string]struct{}) []ranking.Point {
	points := aggregate(facts, grouping, concept, targets)
	if len(points) == 0 {
		return points
	}

	roll(points, ranking.SelectWindow(window))
	assignRanks(points)

	return points
}

type scoreKey struct {
	symbol  string
	base    string
	concept string
	period  string
}

// aggregate sums ranking per (symbol, base, period, normalized concept),
// relabelling base/concept according to the grouping.
func aggregate(facts []ranking.Fact, grouping ranking.Grouping, concept string, targets map[string]struct{}) []ranking.Point {
	sums := make(map[scoreKey]decimal.Decimal)
	for _, f := range facts {
		if !f.Qualifies() {
			continue
		}
		if targets != nil {
			if _, ok := targets[f.PeriodQuarter]; !ok {
				continue
			}
		}

		normalized := ranking.NormalizeConcept(f.Concept)
		if concept != "" && normalized != concept {
			continue
		}

		key := scoreKey{symbol: f.Symbol, base: f.Base, concept: normalized, period: f.PeriodQuarter}
		switch grouping {
		case ranking.GroupByBase:
			key.concept = ranking.OverallLabel
		case ranking.GroupGlobal:
			key.base = ranking.GlobalBaseLabel
			key.concept = ranking.OverallLabel
		}

		sums[key] = sums[key].Add(f.Ranking.Decimal)
	}

	points := make([]ranking.Point, 0, len(sums))
	for k, v := range sums {
		points = append(points, ranking.Point{
			Symbol:        k.symbol,
			Base:          k.base,
			PeriodQuarter: k.period,
			Concept:       k.concept,
			Ranking:       v,
		})
	}
	return points
}

func sameSeries(a, b ranking.Point) bool {
	return a.Symbol == b.Symbol && a.Base == b.Base && a.Concept == b.Concept
}

func sameGroup(a, b ranking.Point) bool {
	return a.Base == b.Base && a.Concept == b.Concept && a.PeriodQuarter == b.PeriodQuarter
}

// roll replaces each aggregated score with the sum of itself and up to
// window-1 preceding rows of the same series (ROWS n PRECEDING semantics).
func roll(points []ranking.Point, window int) {
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		if a.Base != b.Base {
			return a.Base < b.Base
		}
		if a.Concept != b.Concept {
			return a.Concept < b.Concept
		}
		return a.PeriodQuarter < b.PeriodQuarter
	})

	raw := make([]decimal.Decimal, len(points))
	for i := range points {
		raw[i] = points[i].Ranking
	}

	start := 0
	for i := range points {
		if i > 0 && !sameSeries(points[i-1], points[i]) {
			start = i
		}
		lo := i - window + 1
		if lo < start {
			lo = start
		}
		sum := decimal.Zero
		for j := lo; j <= i; j++ {
			sum = sum.Add(raw[j])
		}
		points[i].Ranking = sum
	}
}

// assignRanks sets standard competition ranks (1, 2, 2, 4) by rolling
// score descending within each (base, concept, period) group.
func assignRanks(points []ranking.Point) {
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Base != b.Base {
			return a.Base < b.Base
		}
		if a.Concept != b.Concept {
			return a.Concept < b.Concept
		}
		if a.PeriodQuarter != b.PeriodQuarter {
			return a.PeriodQuarter < b.PeriodQuarter
		}
		if c := a.Ranking.Cmp(b.Ranking); c != 0 {
			return c > 0
		}
		return a.Symbol < b.Symbol
	})

	start := 0
	for i := range points {
		if i > 0 && !sameGroup(points[i-1], points[i]) {
			start = i
		}
		if i > start && points[i].Ranking.Equal(points[i-1].Ranking) {
			points[i].PositionRank = points[i-1].PositionRank
			continue
		}
		points[i].PositionRank = i - start + 1
	}
}
