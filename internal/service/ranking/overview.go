package ranking

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
)

// Overview returns one symbol's point series for every base.
// Bases are read concurrently, bounded by Options.Concurrency.
// A failing base yields an empty series; the others are unaffected.
func (s *Service) Overview(ctx context.Context, req OverviewRequest) map[string][]ranking.Point {
	bases := ranking.Bases()
	result := make(map[string][]ranking.Point, len(bases))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for _, base := range bases {
		base := string(base)
		g.Go(func() error {
			points := s.Points(gctx, PointsRequest{
				Symbol: req.Symbol,
				Base:   base,
				Window: req.Window,
			})

			mu.Lock()
			result[base] = points
			mu.Unlock()
			return nil
		})
	}

	// Points never returns an error
	_ = g.Wait()

	log.Debug().
		Str("symbol", req.Symbol).
		Int("bases", len(result)).
		Msg("Overview assembled")

	return result
}
