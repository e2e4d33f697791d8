package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/MHmolesini/alphavantage-sub000/internal/api/response"
	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
	rankingsvc "github.com/MHmolesini/alphavantage-sub000/internal/service/ranking"
)

// RankingHandler serves point series, podium tallies and period lists.
// Results are always 200; an unavailable warehouse yields empty data.
type RankingHandler struct {
	svc           *rankingsvc.Service
	validate      *validator.Validate
	defaultWindow int
}

// NewRankingHandler creates a new RankingHandler
func NewRankingHandler(svc *rankingsvc.Service, defaultWindow int) *RankingHandler {
	return &RankingHandler{
		svc:           svc,
		validate:      newValidator(),
		defaultWindow: defaultWindow,
	}
}

// valid runs the validator and writes a 400 on failure
func (h *RankingHandler) valid(w http.ResponseWriter, r *http.Request, params interface{}) bool {
	if err := h.validate.Struct(params); err != nil {
		response.ValidationError(w, r, fieldErrors(err))
		return false
	}
	return true
}

// Points handles GET /api/v1/rankings/points
func (h *RankingHandler) Points(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := limitParam(q)
	if err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}

	params := pointsParams{
		Symbol:  q.Get("symbol"),
		Base:    q.Get("base"),
		Concept: q.Get("concept"),
		Window:  windowParam(q, h.defaultWindow),
		Limit:   limit,
	}
	if !h.valid(w, r, params) {
		return
	}

	points := h.svc.Points(r.Context(), rankingsvc.PointsRequest{
		Symbol:  params.Symbol,
		Base:    params.Base,
		Concept: params.Concept,
		Window:  params.Window,
		Limit:   limitValue(params.Limit),
	})
	response.SuccessList(w, r, points, len(points))
}

// BaseOverall handles GET /api/v1/rankings/bases/{base}/overall
func (h *RankingHandler) BaseOverall(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := limitParam(q)
	if err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}

	params := overallParams{
		Base:   mux.Vars(r)["base"],
		Symbol: q.Get("symbol"),
		Window: windowParam(q, h.defaultWindow),
		Limit:  limit,
	}
	if !h.valid(w, r, params) {
		return
	}

	points := h.svc.BaseOverall(r.Context(), rankingsvc.BaseOverallRequest{
		Base:   params.Base,
		Symbol: params.Symbol,
		Window: params.Window,
		Limit:  limitValue(params.Limit),
	})
	response.SuccessList(w, r, points, len(points))
}

// Global handles GET /api/v1/rankings/global
func (h *RankingHandler) Global(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := limitParam(q)
	if err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}

	params := overallParams{
		Symbol: q.Get("symbol"),
		Window: windowParam(q, h.defaultWindow),
		Limit:  limit,
	}
	if !h.valid(w, r, params) {
		return
	}

	points := h.svc.Global(r.Context(), rankingsvc.GlobalRequest{
		Symbol: params.Symbol,
		Window: params.Window,
		Limit:  limitValue(params.Limit),
	})
	response.SuccessList(w, r, points, len(points))
}

// Podium handles GET /api/v1/rankings/podium
func (h *RankingHandler) Podium(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := podiumParams{
		Base:     q.Get("base"),
		Concept:  q.Get("concept"),
		Window:   windowParam(q, h.defaultWindow),
		Periods:  periodsParam(q),
		Grouping: q.Get("grouping"),
	}
	if !h.valid(w, r, params) {
		return
	}

	podium := h.svc.Podium(r.Context(), rankingsvc.PodiumRequest{
		Base:     params.Base,
		Concept:  params.Concept,
		Window:   params.Window,
		Periods:  params.Periods,
		Grouping: ranking.ParseGrouping(params.Grouping),
	})
	response.SuccessList(w, r, podium, len(podium))
}

// Overview handles GET /api/v1/rankings/overview/{symbol}
func (h *RankingHandler) Overview(w http.ResponseWriter, r *http.Request) {
	params := overviewParams{
		Symbol: mux.Vars(r)["symbol"],
		Window: windowParam(r.URL.Query(), h.defaultWindow),
	}
	if !h.valid(w, r, params) {
		return
	}

	overview := h.svc.Overview(r.Context(), rankingsvc.OverviewRequest{
		Symbol: params.Symbol,
		Window: params.Window,
	})
	response.Success(w, r, overview)
}

// Periods handles GET /api/v1/periods
func (h *RankingHandler) Periods(w http.ResponseWriter, r *http.Request) {
	periods := h.svc.Periods(r.Context())
	response.SuccessList(w, r, periods, len(periods))
}

// LatestPeriodResponse GET /api/v1/periods/latest
type LatestPeriodResponse struct {
	Period string `json:"period"`
}

// LatestPeriod handles GET /api/v1/periods/latest
func (h *RankingHandler) LatestPeriod(w http.ResponseWriter, r *http.Request) {
	response.Success(w, r, LatestPeriodResponse{Period: h.svc.LatestPeriod(r.Context())})
}
