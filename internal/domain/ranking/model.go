package ranking

import (
	"github.com/shopspring/decimal"
)

// Base 재무제표/비율 카테고리
type Base string

const (
	BaseIncomeStatements Base = "income_statements"
	BaseBalanceSheets    Base = "balance_sheets"
	BaseCashFlows        Base = "cash_flows"
	BaseEarnings         Base = "earnings"
	BaseProfitability    Base = "profitability"
	BaseLiquidity        Base = "liquidity"
	BaseSolvency         Base = "solvency"
	BaseEfficiency       Base = "efficiency"
	BaseValuation        Base = "valuation"
	BaseGrowth           Base = "growth"
)

var bases = []Base{
	BaseIncomeStatements,
	BaseBalanceSheets,
	BaseCashFlows,
	BaseEarnings,
	BaseProfitability,
	BaseLiquidity,
	BaseSolvency,
	BaseEfficiency,
	BaseValuation,
	BaseGrowth,
}

// Bases returns the fixed set of bases in display order
func Bases() []Base {
	out := make([]Base, len(bases))
	copy(out, bases)
	return out
}

// IsValidBase reports whether s names one of the known bases
func IsValidBase(s string) bool {
	for _, b := range bases {
		if string(b) == s {
			return true
		}
	}
	return false
}

// Labels used by the aggregated variants
const (
	GlobalBaseLabel = "all"
	OverallLabel    = "Overall"
)

// Fact 단일 관측값 (development.base 한 행)
type Fact struct {
	Symbol        string              `json:"symbol" db:"symbol"`
	Base          string              `json:"base" db:"base"`
	PeriodQuarter string              `json:"period_quarter" db:"period_quarter"` // "" = NULL
	Concept       string              `json:"concept" db:"concept"`
	Ranking       decimal.NullDecimal `json:"ranking" db:"ranking"`
}

// Qualifies reports whether the fact takes part in ranking (ranking > 0, period present)
func (f Fact) Qualifies() bool {
	return f.PeriodQuarter != "" && f.Ranking.Valid && f.Ranking.Decimal.IsPositive()
}

// Point 순위 시계열 한 행
type Point struct {
	Symbol        string          `json:"symbol" db:"symbol"`
	Base          string          `json:"base" db:"base"`
	PeriodQuarter string          `json:"period_quarter" db:"period_quarter"`
	Concept       string          `json:"concept" db:"concept"`
	Ranking       decimal.Decimal `json:"ranking" db:"ranking"`             // rolling score
	PositionRank  int             `json:"position_rank" db:"position_rank"` // 1-based, competition rank
}

// Podium 종목별 1~3위 집계
type Podium struct {
	Symbol string `json:"symbol"`
	Gold   int    `json:"gold"`
	Silver int    `json:"silver"`
	Bronze int    `json:"bronze"`
}

// Total returns gold + silver + bronze
func (p Podium) Total() int {
	return p.Gold + p.Silver + p.Bronze
}

// Grouping selects which key the rolling score is ranked within
type Grouping string

const (
	// GroupByConcept ranks per (base, normalized concept, period)
	GroupByConcept Grouping = "concept"
	// GroupByBase ranks the sum of all concepts of a base ("Overall")
	GroupByBase Grouping = "base"
	// GroupGlobal ranks the sum across every base and concept
	GroupGlobal Grouping = "global"
)

// ParseGrouping maps request text to a Grouping, defaulting to GroupByConcept
func ParseGrouping(s string) Grouping {
	switch Grouping(s) {
	case GroupByBase:
		return GroupByBase
	case GroupGlobal:
		return GroupGlobal
	default:
		return GroupByConcept
	}
}

// FactFilter 조회 조건. 빈 값은 필터 없음.
type FactFilter struct {
	Symbol  string
	Base    string
	Concept string   // normalized concept
	Periods []string // target periods (podium)
}
