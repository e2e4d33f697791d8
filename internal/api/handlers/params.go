package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MHmolesini/alphavantage-sub000/internal/api/response"
	"github.com/MHmolesini/alphavantage-sub000/internal/domain/ranking"
)

const maxLimit = 50000

// pointsParams GET /api/v1/rankings/points
type pointsParams struct {
	Symbol  string `query:"symbol" validate:"omitempty,max=16"`
	Base    string `query:"base" validate:"omitempty,base"`
	Concept string `query:"concept" validate:"omitempty,max=128"`
	Window  int    `query:"window"`
	Limit   *int   `query:"limit" validate:"omitempty,min=1,max=50000"`
}

// overallParams GET /api/v1/rankings/bases/{base}/overall, /api/v1/rankings/global
type overallParams struct {
	Base   string `query:"base" validate:"omitempty,base"`
	Symbol string `query:"symbol" validate:"omitempty,max=16"`
	Window int    `query:"window"`
	Limit  *int   `query:"limit" validate:"omitempty,min=1,max=50000"`
}

// podiumParams GET /api/v1/rankings/podium
type podiumParams struct {
	Base     string   `query:"base" validate:"omitempty,base"`
	Concept  string   `query:"concept" validate:"omitempty,max=128"`
	Window   int      `query:"window"`
	Periods  []string `query:"periods" validate:"max=64,dive,max=32"`
	Grouping string   `query:"grouping" validate:"omitempty,oneof=concept base global"`
}

// overviewParams GET /api/v1/rankings/overview/{symbol}
type overviewParams struct {
	Symbol string `query:"symbol" validate:"required,max=16"`
	Window int    `query:"window"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("query")
	})
	_ = v.RegisterValidation("base", func(fl validator.FieldLevel) bool {
		return ranking.IsValidBase(fl.Field().String())
	})
	return v
}

// fieldErrors converts validator errors into response field errors
func fieldErrors(err error) []response.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []response.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, response.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "base":
		return fmt.Sprintf("must be one of: %s", strings.Join(baseNames(), ", "))
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func baseNames() []string {
	bases := ranking.Bases()
	names := make([]string, len(bases))
	for i, b := range bases {
		names[i] = string(b)
	}
	return names
}

// windowParam coerces the window; it is never rejected
func windowParam(q url.Values, fallback int) int {
	raw := strings.TrimSpace(q.Get("window"))
	if raw == "" {
		return ranking.SelectWindow(fallback)
	}
	return ranking.ParseWindow(raw)
}

// limitParam parses limit; nil when absent. Range is checked by the validator.
func limitParam(q url.Values) (*int, error) {
	raw := strings.TrimSpace(q.Get("limit"))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("limit must be an integer between 1 and %d", maxLimit)
	}
	return &n, nil
}

// limitValue unwraps a validated limit; 0 selects the service default
func limitValue(limit *int) int {
	if limit == nil {
		return 0
	}
	return *limit
}

// periodsParam accepts repeated ?periods= values and comma-separated lists
func periodsParam(q url.Values) []string {
	var periods []string
	for _, raw := range q["periods"] {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				periods = append(periods, p)
			}
		}
	}
	return periods
}
