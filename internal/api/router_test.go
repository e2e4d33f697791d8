package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MHmolesini/alphavantage-sub000/internal/api/middleware"
	"github.com/MHmolesini/alphavantage-sub000/internal/api/response"
	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
	"github.com/MHmolesini/alphavantage-sub000/internal/pkg/health"
	rankingsvc "github.com/MHmolesini/alphavantage-sub000/internal/service/ranking"
)

type memorySource struct {
	facts []ranking.Fact
	err   error
}

func (m *memorySource) Facts(_ context.Context, filter ranking.FactFilter) ([]ranking.Fact, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []ranking.Fact
	for _, f := range m.facts {
		if filter.Base != "" && f.Base != filter.Base {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (m *memorySource) Periods(context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []string{"2024 T2", "2024 T1"}, nil
}

func (m *memorySource) LatestPeriod(context.Context) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "2024 T2", nil
}

type staticHealth struct {
	status string
}

func (s staticHealth) Health(context.Context) *health.Status {
	return &health.Status{Status: s.status, Driver: "memory", CheckedAt: time.Now()}
}

func fact(symbol, base, period, concept string, value int64) ranking.Fact {
	return ranking.Fact{
		Symbol:        symbol,
		Base:          base,
		PeriodQuarter: period,
		Concept:       concept,
		Ranking:       decimal.NewNullDecimal(decimal.NewFromInt(value)),
	}
}

func newTestRouter(src ranking.FactSource, warehouse string) http.Handler {
	return NewRouter(RouterConfig{
		Service:       rankingsvc.NewService(src, rankingsvc.Options{}),
		Warehouse:     staticHealth{status: warehouse},
		Version:       "test",
		DefaultWindow: 1,
	})
}

func sampleSource() *memorySource {
	return &memorySource{facts: []ranking.Fact{
		fact("A", "profitability", "2024 T1", "roe_ttm", 10),
		fact("B", "profitability", "2024 T1", "roe", 20),
		fact("A", "profitability", "2024 T2", "roe", 30),
		fact("B", "profitability", "2024 T2", "roe_var_4", 5),
		fact("A", "growth", "2024 T2", "sales", 1),
		fact("B", "growth", "2024 T2", "sales", 2),
	}}
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta response.Meta   `json:"meta"`
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, v))
	return env
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestRouter_Points(t *testing.T) {
	h := newTestRouter(sampleSource(), health.StatusHealthy)

	rec := get(t, h, "/api/v1/rankings/points?base=profitability&symbol=A&window=6")
	require.Equal(t, http.StatusOK, rec.Code)

	var points []ranking.Point
	env := decodeData(t, rec, &points)
	require.Len(t, points, 2)
	assert.Equal(t, 2, env.Meta.Count)
	assert.Equal(t, "2024 T2", points[0].PeriodQuarter)
	assert.Equal(t, 1, points[0].PositionRank)
	assert.Equal(t, "roe", points[0].Concept)
	assert.True(t, points[0].Ranking.Equal(decimal.NewFromInt(30)))
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	h := newTestRouter(sampleSource(), health.StatusHealthy)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/periods", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))

	var periods []string
	env := decodeData(t, rec, &periods)
	assert.Equal(t, "req-123", env.Meta.RequestID)
	assert.Equal(t, []string{"2024 T2", "2024 T1"}, periods)
}

func TestRouter_GeneratesRequestID(t *testing.T) {
	h := newTestRouter(sampleSource(), health.StatusHealthy)

	rec := get(t, h, "/api/v1/periods/latest")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	var latest struct {
		Period string `json:"period"`
	}
	decodeData(t, rec, &latest)
	assert.Equal(t, "2024 T2", latest.Period)
}

func TestRouter_ValidationErrors(t *testing.T) {
	h := newTestRouter(sampleSource(), health.StatusHealthy)

	tests := []struct {
		name   string
		target string
		code   string
		field  string
	}{
		{"unknown base", "/api/v1/rankings/points?base=unknown", response.ErrCodeValidation, "base"},
		{"symbol too long", "/api/v1/rankings/points?symbol=" + strings.Repeat("X", 17), response.ErrCodeValidation, "symbol"},
		{"limit above cap", "/api/v1/rankings/global?limit=50001", response.ErrCodeValidation, "limit"},
		{"limit below one", "/api/v1/rankings/global?limit=-1", response.ErrCodeValidation, "limit"},
		{"limit zero", "/api/v1/rankings/points?limit=0", response.ErrCodeValidation, "limit"},
		{"overall limit zero", "/api/v1/rankings/bases/growth/overall?limit=0", response.ErrCodeValidation, "limit"},
		{"limit not a number", "/api/v1/rankings/points?limit=abc", response.ErrCodeInvalidParameter, ""},
		{"unknown path base", "/api/v1/rankings/bases/nope/overall", response.ErrCodeValidation, "base"},
		{"unknown grouping", "/api/v1/rankings/podium?grouping=sector", response.ErrCodeValidation, "grouping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			detail := decodeError(t, rec)
			assert.Equal(t, tt.code, detail.Code)
			if tt.field != "" {
				require.NotEmpty(t, detail.Fields)
				assert.Equal(t, tt.field, detail.Fields[0].Field)
			}
		})
	}
}

func TestRouter_WindowIsCoercedNotRejected(t *testing.T) {
	h := newTestRouter(sampleSource(), health.StatusHealthy)

	for _, w := range []string{"6", "abc", "-4", "100"} {
		rec := get(t, h, "/api/v1/rankings/points?window="+w)
		assert.Equal(t, http.StatusOK, rec.Code, "window=%s", w)
	}
}

func TestRouter_BaseOverallAndGlobal(t *testing.T) {
	h := newTestRouter(sampleSource(), health.StatusHealthy)

	rec := get(t, h, "/api/v1/rankings/bases/profitability/overall?window=4")
	require.Equal(t, http.StatusOK, rec.Code)
	var overall []ranking.Point
	decodeData(t, rec, &overall)
	require.NotEmpty(t, overall)
	assert.Equal(t, ranking.OverallLabel, overall[0].Concept)

	rec = get(t, h, "/api/v1/rankings/global?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)
	var global []ranking.Point
	decodeData(t, rec, &global)
	require.Len(t, global, 1)
	assert.Equal(t, ranking.GlobalBaseLabel, global[0].Base)
}

func TestRouter_Podium(t *testing.T) {
	h := newTestRouter(sampleSource(), health.StatusHealthy)

	rec := get(t, h, "/api/v1/rankings/podium?periods=2024%20T1,2024%20T2&base=profitability")
	require.Equal(t, http.StatusOK, rec.Code)

	var podium []ranking.Podium
	decodeData(t, rec, &podium)
	require.Len(t, podium, 2)
	// T1 B gold, T2 A gold
	assert.Equal(t, "A", podium[0].Symbol)
	assert.Equal(t, 1, podium[0].Gold)
	assert.Equal(t, 1, podium[0].Silver)
}

func TestRouter_Overview(t *testing.T) {
	h := newTestRouter(sampleSource(), health.StatusHealthy)

	rec := get(t, h, "/api/v1/rankings/overview/A")
	require.Equal(t, http.StatusOK, rec.Code)

	var overview map[string][]ranking.Point
	decodeData(t, rec, &overview)
	assert.Len(t, overview, len(ranking.Bases()))
	assert.Len(t, overview["growth"], 1)
}

func TestRouter_SourceFailureIsEmptyOK(t *testing.T) {
	h := newTestRouter(&memorySource{err: errors.New("boom")}, health.StatusHealthy)

	rec := get(t, h, "/api/v1/rankings/points?base=growth")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.JSONEq(t, "[]", string(env.Data))

	rec = get(t, h, "/api/v1/periods")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestRouter_Health(t *testing.T) {
	rec := get(t, newTestRouter(sampleSource(), health.StatusHealthy), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, newTestRouter(sampleSource(), health.StatusUnhealthy), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = get(t, newTestRouter(sampleSource(), health.StatusUnhealthy), "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	rec := get(t, newTestRouter(sampleSource(), health.StatusHealthy), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(sampleSource(), health.StatusHealthy)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/periods", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
