package ranking

import "github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"

// PointsRequest 개념별 시계열 요청
type PointsRequest struct {
	Symbol  string
	Base    string
	Concept string
	Window  int
	Limit   int
}

// BaseOverallRequest 베이스 종합 요청
type BaseOverallRequest struct {
	Base   string
	Symbol string
	Window int
	Limit  int
}

// GlobalRequest 전체 종합 요청
type GlobalRequest struct {
	Symbol string
	Window int
	Limit  int
}

// PodiumRequest 포디움 요청
type PodiumRequest struct {
	Base     string
	Concept  string
	Window   int
	Periods  []string
	Grouping ranking.Grouping
}

// OverviewRequest 종목별 전체 베이스 요청
type OverviewRequest struct {
	Symbol string
	Window int
}
