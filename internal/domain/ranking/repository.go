package ranking

import "context"

// FactSource 팩트 조회 저장소 (read-only)
type FactSource interface {
	// 필터에 맞는 qualifying fact 조회 (ranking > 0, period_quarter NOT NULL)
	Facts(ctx context.Context, filter FactFilter) ([]Fact, error)

	// 기간 목록 (내림차순, 중복 제거)
	Periods(ctx context.Context) ([]string, error)

	// 최신 기간. 테이블이 비어 있으면 ErrNoData
	LatestPeriod(ctx context.Context) (string, error)
}

// PointRanker is implemented by sources that can compute the
// concept-level point series inside the warehouse.
type PointRanker interface {
	RankedPoints(ctx context.Context, filter FactFilter, window int, limit int) ([]Point, error)
}
