// Package query builds the parameterized SQL issued against the fact table.
//
// Symbol, base, concept and period values are always bound parameters.
// The only values written into the query text are the table identifier
// (validated by pattern) and the rolling width (validated by
// ranking.SelectWindow).
package query

import (
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
)

// Dialect SQL 방언
type Dialect int

const (
	Postgres Dialect = iota
	BigQuery
)

func (d Dialect) String() string {
	switch d {
	case BigQuery:
		return "bigquery"
	default:
		return "postgres"
	}
}

func (d Dialect) placeholder() sq.PlaceholderFormat {
	if d == Postgres {
		return sq.Dollar
	}
	return sq.Question
}

// normalizeExpr is the SQL rendition of ranking.NormalizeConcept
func (d Dialect) normalizeExpr(column string) string {
	if d == BigQuery {
		return fmt.Sprintf("REGEXP_REPLACE(%s, r'%s', '')", column, ranking.ConceptSuffixPattern)
	}
	return fmt.Sprintf("regexp_replace(%s, '%s', '')", column, ranking.ConceptSuffixPattern)
}

func (d Dialect) rankingColumn() string {
	if d == BigQuery {
		return "CAST(ranking AS STRING) AS ranking"
	}
	return "ranking"
}

var tableIdent = regexp.MustCompile(`^[A-Za-z0-9_\-]+(\.[A-Za-z0-9_\-]+){0,2}$`)

// Builder 팩트 테이블 쿼리 빌더
type Builder struct {
	table   string
	dialect Dialect
}

// NewBuilder validates the table identifier and returns a builder for it
func NewBuilder(table string, dialect Dialect) (*Builder, error) {
	if !tableIdent.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ranking.ErrInvalidTable, table)
	}

	quoted := table
	if dialect == BigQuery {
		quoted = "`" + table + "`"
	}

	return &Builder{table: quoted, dialect: dialect}, nil
}

// qualifying selects facts that can take part in ranking
func (b *Builder) qualifying(columns ...string) sq.SelectBuilder {
	return sq.Select(columns...).
		From(b.table).
		Where("ranking > 0").
		Where("period_quarter IS NOT NULL")
}

func (b *Builder) applyFilter(q sq.SelectBuilder, f ranking.FactFilter) sq.SelectBuilder {
	if f.Symbol != "" {
		q = q.Where(sq.Eq{"symbol": f.Symbol})
	}
	if f.Base != "" {
		q = q.Where(sq.Eq{"base": f.Base})
	}
	if f.Concept != "" {
		q = q.Where(sq.Expr(b.dialect.normalizeExpr("concept")+" = ?", f.Concept))
	}
	if len(f.Periods) > 0 {
		q = q.Where(sq.Eq{"period_quarter": f.Periods})
	}
	return q
}

// Facts selects raw qualifying facts matching the filter
func (b *Builder) Facts(f ranking.FactFilter) (string, []interface{}, error) {
	q := b.qualifying("symbol", "base", "period_quarter", "concept", b.dialect.rankingColumn())
	q = b.applyFilter(q, f)

	return q.PlaceholderFormat(b.dialect.placeholder()).ToSql()
}

// Periods selects distinct period labels, newest first
func (b *Builder) Periods() (string, []interface{}, error) {
	return sq.Select("DISTINCT period_quarter").
		From(b.table).
		Where("period_quarter IS NOT NULL").
		OrderBy("period_quarter DESC").
		PlaceholderFormat(b.dialect.placeholder()).
		ToSql()
}

// LatestPeriod selects the maximum period label
func (b *Builder) LatestPeriod() (string, []interface{}, error) {
	return sq.Select("MAX(period_quarter) AS period_quarter").
		From(b.table).
		Where("period_quarter IS NOT NULL").
		PlaceholderFormat(b.dialect.placeholder()).
		ToSql()
}

// RankedPoints computes the concept-level point series inside the warehouse:
// aggregate per normalized concept → rolling SUM over W rows → RANK per group.
// The symbol filter is applied after ranking so ranks stay relative to peers.
func (b *Builder) RankedPoints(f ranking.FactFilter, window int, limit int) (string, []interface{}, error) {
	w := ranking.SelectWindow(window)
	normalized := b.dialect.normalizeExpr("concept")

	peers := f
	peers.Symbol = ""

	aggregated := b.qualifying(
		"symbol",
		"base",
		"period_quarter",
		normalized+" AS concept",
		"SUM(ranking) AS score",
	)
	aggregated = b.applyFilter(aggregated, peers).GroupBy("1", "2", "3", "4")

	rolling := sq.Select(
		"symbol",
		"base",
		"period_quarter",
		"concept",
		fmt.Sprintf("SUM(score) OVER (PARTITION BY symbol, base, concept ORDER BY period_quarter ROWS BETWEEN %d PRECEDING AND CURRENT ROW) AS rolling", w-1),
	).FromSelect(aggregated, "aggregated")

	rankingExpr := "rolling AS ranking"
	if b.dialect == BigQuery {
		rankingExpr = "CAST(rolling AS STRING) AS ranking"
	}

	ranked := sq.Select(
		"symbol",
		"base",
		"period_quarter",
		"concept",
		rankingExpr,
		"RANK() OVER (PARTITION BY base, concept, period_quarter ORDER BY rolling DESC) AS position_rank",
	).FromSelect(rolling, "rolling_scores")

	points := sq.Select("symbol", "base", "period_quarter", "concept", "ranking", "position_rank").
		FromSelect(ranked, "ranked")
	if f.Symbol != "" {
		points = points.Where(sq.Eq{"symbol": f.Symbol})
	}
	points = points.OrderBy("period_quarter DESC", "position_rank ASC", "symbol ASC", "base ASC", "concept ASC")

	if limit > 0 {
		points = points.Suffix("LIMIT ?", limit)
	}

	return points.PlaceholderFormat(b.dialect.placeholder()).ToSql()
}

// Describe renders a query for logging with whitespace collapsed
func Describe(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
