package bigquery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
	"github.com/MHmolesini/alphavantage-sub000/internal/infra/warehouse/query"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/metrics"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/reqctx"
)

const driverName = "bigquery"

// FactRepository BigQuery 팩트 저장소 (ranking.FactSource, ranking.PointRanker)
type FactRepository struct {
	client  *Client
	builder *query.Builder
}

// NewFactRepository 팩트 저장소 생성
func NewFactRepository(client *Client, table string) (*FactRepository, error) {
	builder, err := query.NewBuilder(table, query.BigQuery)
	if err != nil {
		return nil, err
	}
	return &FactRepository{client: client, builder: builder}, nil
}

type factRow struct {
	Symbol        bigquery.NullString `bigquery:"symbol"`
	Base          bigquery.NullString `bigquery:"base"`
	PeriodQuarter bigquery.NullString `bigquery:"period_quarter"`
	Concept       bigquery.NullString `bigquery:"concept"`
	Ranking       bigquery.NullString `bigquery:"ranking"`
}

func (r factRow) toFact() (ranking.Fact, error) {
	f := ranking.Fact{
		Symbol:        r.Symbol.StringVal,
		Base:          r.Base.StringVal,
		PeriodQuarter: r.PeriodQuarter.StringVal,
		Concept:       r.Concept.StringVal,
	}
	if r.Ranking.Valid {
		d, err := decimal.NewFromString(r.Ranking.StringVal)
		if err != nil {
			return f, fmt.Errorf("parse ranking %q: %w", r.Ranking.StringVal, err)
		}
		f.Ranking = decimal.NewNullDecimal(d)
	}
	return f, nil
}

type pointRow struct {
	Symbol        string `bigquery:"symbol"`
	Base          string `bigquery:"base"`
	PeriodQuarter string `bigquery:"period_quarter"`
	Concept       string `bigquery:"concept"`
	Ranking       string `bigquery:"ranking"`
	PositionRank  int64  `bigquery:"position_rank"`
}

func (r pointRow) toPoint() (ranking.Point, error) {
	score, err := decimal.NewFromString(r.Ranking)
	if err != nil {
		return ranking.Point{}, fmt.Errorf("parse rolling score %q: %w", r.Ranking, err)
	}
	return ranking.Point{
		Symbol:        r.Symbol,
		Base:          r.Base,
		PeriodQuarter: r.PeriodQuarter,
		Concept:       r.Concept,
		Ranking:       score,
		PositionRank:  int(r.PositionRank),
	}, nil
}

type periodRow struct {
	PeriodQuarter bigquery.NullString `bigquery:"period_quarter"`
}

// read runs sql with positional parameters
func (r *FactRepository) read(ctx context.Context, operation, sql string, args []interface{}) (*bigquery.RowIterator, error) {
	q := r.client.Query(sql)
	q.Parameters = make([]bigquery.QueryParameter, len(args))
	for i, arg := range args {
		q.Parameters[i] = bigquery.QueryParameter{Value: arg}
	}
	log.Debug().
		Str("request_id", reqctx.RequestID(ctx)).
		Str("operation", operation).
		Str("sql", query.Describe(sql)).
		Int("params", len(args)).
		Msg("BigQuery query")

	return q.Read(ctx)
}

// Facts 필터에 맞는 팩트 조회
func (r *FactRepository) Facts(ctx context.Context, filter ranking.FactFilter) ([]ranking.Fact, error) {
	defer metrics.ObserveQuery(driverName, "facts", time.Now())

	sql, args, err := r.builder.Facts(filter)
	if err != nil {
		return nil, fmt.Errorf("build facts query: %w", err)
	}

	it, err := r.read(ctx, "facts", sql, args)
	if err != nil {
		return nil, fmt.Errorf("query facts: %w", err)
	}

	var facts []ranking.Fact
	for {
		var row factRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read fact row: %w", err)
		}
		f, err := row.toFact()
		if err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return facts, nil
}

// Periods 기간 목록 (내림차순)
func (r *FactRepository) Periods(ctx context.Context) ([]string, error) {
	defer metrics.ObserveQuery(driverName, "periods", time.Now())

	sql, args, err := r.builder.Periods()
	if err != nil {
		return nil, fmt.Errorf("build periods query: %w", err)
	}

	it, err := r.read(ctx, "periods", sql, args)
	if err != nil {
		return nil, fmt.Errorf("query periods: %w", err)
	}

	var periods []string
	for {
		var row periodRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read period row: %w", err)
		}
		if row.PeriodQuarter.Valid {
			periods = append(periods, row.PeriodQuarter.StringVal)
		}
	}
	return periods, nil
}

// LatestPeriod 최신 기간
func (r *FactRepository) LatestPeriod(ctx context.Context) (string, error) {
	defer metrics.ObserveQuery(driverName, "latest_period", time.Now())

	sql, args, err := r.builder.LatestPeriod()
	if err != nil {
		return "", fmt.Errorf("build latest period query: %w", err)
	}

	it, err := r.read(ctx, "latest_period", sql, args)
	if err != nil {
		return "", fmt.Errorf("query latest period: %w", err)
	}

	var row periodRow
	if err := it.Next(&row); err != nil {
		if errors.Is(err, iterator.Done) {
			return "", ranking.ErrNoData
		}
		return "", fmt.Errorf("read latest period: %w", err)
	}
	if !row.PeriodQuarter.Valid {
		return "", ranking.ErrNoData
	}
	return row.PeriodQuarter.StringVal, nil
}

// RankedPoints 순위 계산을 BigQuery window function으로 수행
func (r *FactRepository) RankedPoints(ctx context.Context, filter ranking.FactFilter, window int, limit int) ([]ranking.Point, error) {
	defer metrics.ObserveQuery(driverName, "ranked_points", time.Now())

	sql, args, err := r.builder.RankedPoints(filter, window, limit)
	if err != nil {
		return nil, fmt.Errorf("build ranked points query: %w", err)
	}

	it, err := r.read(ctx, "ranked_points", sql, args)
	if err != nil {
		return nil, fmt.Errorf("query ranked points: %w", err)
	}

	var points []ranking.Point
	for {
		var row pointRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read point row: %w", err)
		}
		p, err := row.toPoint()
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}
