package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeConcept(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"totalRevenue", "totalRevenue"},
		{"totalRevenue_var_1", "totalRevenue"},
		{"totalRevenue_var_12", "totalRevenue"},
		{"totalRevenue_acum", "totalRevenue"},
		{"totalRevenue_ttm", "totalRevenue"},
		{"totalRevenue_var_acum_4", "totalRevenue"},
		{"netIncome_acum_ttm", "netIncome"},
		{"foo_var_", "foo_var_"},
		{"foo_ttm_bar", "foo_ttm_bar"},
		{"var_1", "var_1"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeConcept(tt.in))
		})
	}
}

func TestNormalizeConcept_Idempotent(t *testing.T) {
	inputs := []string{
		"grossProfit",
		"grossProfit_var_4",
		"grossProfit_acum_ttm",
		"a_ttm_b_ttm",
		"_ttm",
		"x_var_acum_8_var_1",
	}

	for _, in := range inputs {
		once := NormalizeConcept(in)
		assert.Equal(t, once, NormalizeConcept(once), "input %q", in)
	}
}
