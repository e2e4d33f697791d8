// Package ranking orchestrates fact source reads and the ranking engine.
// Source failures never reach the caller: they are logged, counted and
// turned into empty results.
package ranking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/config"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/metrics"
	engine "github.com/MHmolesini/alphavantage-sub000/internal/strategy/ranking"
)

const (
	defaultPointLimit    = 20000
	defaultMaxPointLimit = 50000
)

// Options 서비스 옵션
type Options struct {
	PointLimit    int  // cap when the request has none
	MaxPointLimit int  // hard cap
	Pushdown      bool // rank in the warehouse when the source supports it
	Concurrency   int  // parallel source reads for Overview
	QueryTimeout  time.Duration
}

// OptionsFromConfig maps ranking config onto service options
func OptionsFromConfig(cfg config.RankingConfig) Options {
	return Options{
		PointLimit:    cfg.PointLimit,
		MaxPointLimit: cfg.MaxPointLimit,
		Pushdown:      cfg.Pushdown,
		Concurrency:   cfg.Concurrency,
		QueryTimeout:  cfg.QueryTimeout,
	}
}

// Service is the ranking service
type Service struct {
	source ranking.FactSource
	engine *engine.Engine
	opts   Options

	// identical concurrent reads share one source query
	sf singleflight.Group
}

// NewService creates a ranking service over source
func NewService(source ranking.FactSource, opts Options) *Service {
	if opts.MaxPointLimit <= 0 {
		opts.MaxPointLimit = defaultMaxPointLimit
	}
	if opts.PointLimit <= 0 {
		opts.PointLimit = defaultPointLimit
	}
	if opts.PointLimit > opts.MaxPointLimit {
		opts.PointLimit = opts.MaxPointLimit
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	return &Service{
		source: source,
		engine: engine.NewEngine(),
		opts:   opts,
	}
}

// limit resolves the effective row cap for a request
func (s *Service) limit(requested int) int {
	switch {
	case requested <= 0:
		return s.opts.PointLimit
	case requested > s.opts.MaxPointLimit:
		return s.opts.MaxPointLimit
	default:
		return requested
	}
}

func (s *Service) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

// sourceFailed logs and counts a source error. Callers return an empty result.
func sourceFailed(operation string, err error) {
	metrics.SourceErrors.WithLabelValues(operation).Inc()
	log.Error().Err(err).Str("operation", operation).Msg("Fact source query failed")
}

// facts reads facts for filter; on failure it reports and returns nil
func (s *Service) facts(ctx context.Context, operation string, filter ranking.FactFilter) ([]ranking.Fact, bool) {
	v, err, _ := s.sf.Do(filterKey(filter), func() (interface{}, error) {
		// shared callers must not be cancelled by the first one leaving
		qctx, cancel := s.queryContext(context.WithoutCancel(ctx))
		defer cancel()
		return s.source.Facts(qctx, filter)
	})
	if err != nil {
		sourceFailed(operation, err)
		return nil, false
	}
	return v.([]ranking.Fact), true
}

func filterKey(filter ranking.FactFilter) string {
	return strings.Join([]string{
		filter.Base,
		filter.Concept,
		filter.Symbol,
		strings.Join(filter.Periods, ","),
	}, "|")
}

func observeRows(operation string, n int) {
	metrics.RowsReturned.WithLabelValues(operation).Observe(float64(n))
}

// Points 개념별 순위 시계열
func (s *Service) Points(ctx context.Context, req PointsRequest) []ranking.Point {
	window := ranking.SelectWindow(req.Window)
	limit := s.limit(req.Limit)
	concept := ranking.NormalizeConcept(req.Concept)

	if ranker, ok := s.source.(ranking.PointRanker); ok && s.opts.Pushdown {
		qctx, cancel := s.queryContext(ctx)
		defer cancel()

		points, err := ranker.RankedPoints(qctx, ranking.FactFilter{
			Symbol:  req.Symbol,
			Base:    req.Base,
			Concept: concept,
		}, window, limit)
		if err != nil {
			sourceFailed("points", err)
			return []ranking.Point{}
		}
		if points == nil {
			points = []ranking.Point{}
		}
		observeRows("points", len(points))
		return points
	}

	facts, ok := s.facts(ctx, "points", ranking.FactFilter{Base: req.Base, Concept: concept})
	if !ok {
		return []ranking.Point{}
	}

	points := s.engine.Points(facts, engine.PointOptions{
		Window:   window,
		Grouping: ranking.GroupByConcept,
		Concept:  concept,
		Symbol:   req.Symbol,
		Limit:    limit,
	})
	observeRows("points", len(points))
	return points
}

// BaseOverall ranks symbols by the total across every concept of one base
func (s *Service) BaseOverall(ctx context.Context, req BaseOverallRequest) []ranking.Point {
	facts, ok := s.facts(ctx, "base_overall", ranking.FactFilter{Base: req.Base})
	if !ok {
		return []ranking.Point{}
	}

	points := s.engine.Points(facts, engine.PointOptions{
		Window:   req.Window,
		Grouping: ranking.GroupByBase,
		Symbol:   req.Symbol,
		Limit:    s.limit(req.Limit),
	})
	observeRows("base_overall", len(points))
	return points
}

// Global ranks symbols by the total across every base and concept
func (s *Service) Global(ctx context.Context, req GlobalRequest) []ranking.Point {
	facts, ok := s.facts(ctx, "global", ranking.FactFilter{})
	if !ok {
		return []ranking.Point{}
	}

	points := s.engine.Points(facts, engine.PointOptions{
		Window:   req.Window,
		Grouping: ranking.GroupGlobal,
		Symbol:   req.Symbol,
		Limit:    s.limit(req.Limit),
	})
	observeRows("global", len(points))
	return points
}

// Podium 메달 집계. 기간 미지정 시 최신 기간 사용
func (s *Service) Podium(ctx context.Context, req PodiumRequest) []ranking.Podium {
	periods := req.Periods
	if len(periods) == 0 {
		latest := s.LatestPeriod(ctx)
		if latest == "" {
			return []ranking.Podium{}
		}
		periods = []string{latest}
	}

	concept := ranking.NormalizeConcept(req.Concept)
	facts, ok := s.facts(ctx, "podium", ranking.FactFilter{
		Base:    req.Base,
		Concept: concept,
		Periods: periods,
	})
	if !ok {
		return []ranking.Podium{}
	}

	podium := s.engine.Podium(facts, engine.PodiumOptions{
		Window:   req.Window,
		Grouping: req.Grouping,
		Concept:  concept,
		Periods:  periods,
	})
	observeRows("podium", len(podium))
	return podium
}

// Periods 기간 목록 (최신순)
func (s *Service) Periods(ctx context.Context) []string {
	qctx, cancel := s.queryContext(ctx)
	defer cancel()

	periods, err := s.source.Periods(qctx)
	if err != nil {
		sourceFailed("periods", err)
		return []string{}
	}
	if periods == nil {
		periods = []string{}
	}
	return periods
}

// LatestPeriod 최신 기간. 데이터가 없으면 빈 문자열
func (s *Service) LatestPeriod(ctx context.Context) string {
	qctx, cancel := s.queryContext(ctx)
	defer cancel()

	period, err := s.source.LatestPeriod(qctx)
	if err != nil {
		if !errors.Is(err, ranking.ErrNoData) {
			sourceFailed("latest_period", err)
		}
		return ""
	}
	return period
}
