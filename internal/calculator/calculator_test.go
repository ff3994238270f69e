package calculator

import (
	"encoding/json"
	"testing"

	"github.com/iwvelando/finance-toolkit/pkg/chart"
	"github.com/iwvelando/finance-toolkit/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	f, err := format.NewFormatter("en", "NPR")
	require.NoError(t, err)
	return NewRegistry(f, nil)
}

func mustGet(t *testing.T, r *Registry, id string) Calculator {
	t.Helper()
	c, ok := r.Get(id)
	require.True(t, ok, "calculator %q not registered", id)
	return c
}

func TestRegistryOrder(t *testing.T) {
	r := newTestRegistry(t)

	var ids []string
	for _, c := range r.All() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []string{"mortgage", "loan", "savings", "investment", "retirement", "budget", "salary", "tip"}, ids)

	_, ok := r.Get("exchange")
	assert.False(t, ok)

	infos := r.Infos()
	require.Len(t, infos, 8)
	assert.Equal(t, "Mortgage Calculator", infos[0].Title)
	assert.Equal(t, "Budget Planner", infos[5].Title)
}

func TestNewRegistryOfIgnoresDuplicates(t *testing.T) {
	first := &tipCalculator{common: common{id: "tip", title: "First"}}
	second := &tipCalculator{common: common{id: "tip", title: "Second"}}

	r := NewRegistryOf(first, second)
	require.Len(t, r.All(), 1)
	c, _ := r.Get("tip")
	assert.Equal(t, "First", c.Title())
}

func TestGrowthInitialLabels(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, "Initial Deposit", mustGet(t, r, "savings").Fields()[0].Label)
	assert.Equal(t, "Initial Investment", mustGet(t, r, "investment").Fields()[0].Label)
	assert.Equal(t, "Initial Deposit", mustGet(t, r, "retirement").Fields()[0].Label)
}

func TestSliderRanges(t *testing.T) {
	r := newTestRegistry(t)

	loanRate := mustGet(t, r, "mortgage").Fields()[1]
	require.NotNil(t, loanRate.Slider)
	assert.Equal(t, Range{Min: 1, Max: 15, Step: 0.01}, *loanRate.Slider)

	growthTerm := mustGet(t, r, "savings").Fields()[3]
	require.NotNil(t, growthTerm.Slider)
	assert.Equal(t, Range{Min: 1, Max: 50, Step: 1}, *growthTerm.Slider)
}

func TestLoanDefaults(t *testing.T) {
	r := newTestRegistry(t)
	view := mustGet(t, r, "mortgage").Evaluate(nil, chart.Light)

	require.Equal(t, StatusOK, view.Status)
	require.Len(t, view.Summary, 3)
	assert.Equal(t, "Monthly Payment", view.Summary[0].Label)
	assert.True(t, view.Summary[0].Highlight)
	assert.InDelta(t, 1122.61, view.Summary[0].Value, 0.01)
	assert.Equal(t, "NPR 1,122.61", view.Summary[0].Text)
	assert.InDelta(t, view.Summary[1].Value-250000, view.Summary[2].Value, 1e-6)

	require.NotNil(t, view.Chart)
	assert.Equal(t, "doughnut", view.Chart.Type)
	assert.Equal(t, 250000.0, view.Chart.Data.Datasets[0].Data[0])
}

func TestLoanInvalidInputs(t *testing.T) {
	r := newTestRegistry(t)
	loan := mustGet(t, r, "loan")

	tests := []map[string]string{
		{"amount": "0"},
		{"amount": ""},
		{"amount": "abc"},
		{"interest": "0"},
		{"interest": ""},
		{"term": "0"},
		{"term": "-5"},
	}
	for _, values := range tests {
		view := loan.Evaluate(values, chart.Light)
		assert.Equal(t, StatusInvalid, view.Status, "values %v", values)
		assert.Equal(t, MessageInvalidValues, view.Message)
		assert.Empty(t, view.Summary)
		assert.Nil(t, view.Chart)
	}
}

func TestLoanPermissiveParsing(t *testing.T) {
	r := newTestRegistry(t)
	view := mustGet(t, r, "loan").Evaluate(map[string]string{"amount": "250000abc", "interest": "3.5%", "term": "30 years"}, chart.Dark)
	require.Equal(t, StatusOK, view.Status)
	assert.InDelta(t, 1122.61, view.Summary[0].Value, 0.01)
}

func TestGrowthDefaults(t *testing.T) {
	r := newTestRegistry(t)
	view := mustGet(t, r, "investment").Evaluate(map[string]string{}, chart.Light)

	require.Equal(t, StatusOK, view.Status)
	require.Len(t, view.Summary, 3)
	assert.Equal(t, "Future Value", view.Summary[0].Label)
	assert.Greater(t, view.Summary[0].Value, view.Summary[1].Value)
	assert.Equal(t, 13000.0, view.Summary[1].Value)

	require.NotNil(t, view.Chart)
	assert.Len(t, view.Chart.Data.Labels, 11)
}

func TestGrowthInvalidTerm(t *testing.T) {
	r := newTestRegistry(t)
	for _, term := range []string{"0", "", "-1", "abc"} {
		view := mustGet(t, r, "savings").Evaluate(map[string]string{"term": term}, chart.Light)
		assert.Equal(t, StatusInvalid, view.Status, "term %q", term)
		assert.Equal(t, MessageInvalidTerm, view.Message)
		assert.Nil(t, view.Chart)
	}
}

func TestGrowthAcceptsZeroRate(t *testing.T) {
	r := newTestRegistry(t)
	view := mustGet(t, r, "retirement").Evaluate(map[string]string{"interest": "0", "term": "2"}, chart.Light)
	require.Equal(t, StatusOK, view.Status)
	assert.Equal(t, 3400.0, view.Summary[0].Value)
	assert.Equal(t, 0.0, view.Summary[2].Value)
}

func TestBudget(t *testing.T) {
	r := newTestRegistry(t)
	budget := mustGet(t, r, "budget")

	view := budget.Evaluate(nil, chart.Light)
	require.Equal(t, StatusOK, view.Status)
	assert.Equal(t, 5000.0, view.Summary[0].Value)
	assert.Equal(t, 3500.0, view.Summary[1].Value)
	assert.Equal(t, 1500.0, view.Summary[2].Value)
	assert.False(t, view.Summary[2].Negative)
	require.NotNil(t, view.Chart)
	assert.Equal(t, []string{"Housing", "Food", "Transport", "Entertainment", "Savings", "Other"}, view.Chart.Data.Labels)

	deficit := budget.Evaluate(map[string]string{"income": "1000", "food": ""}, chart.Dark)
	assert.Equal(t, 2900.0, deficit.Summary[1].Value)
	assert.Equal(t, -1900.0, deficit.Summary[2].Value)
	assert.True(t, deficit.Summary[2].Negative)
	assert.Equal(t, "-NPR 1,900.00", deficit.Summary[2].Text)
}

func TestSalary(t *testing.T) {
	r := newTestRegistry(t)
	view := mustGet(t, r, "salary").Evaluate(nil, chart.Light)

	require.Equal(t, StatusOK, view.Status)
	require.Len(t, view.Summary, 4)
	assert.Equal(t, 60000.0, view.Summary[0].Value)
	assert.Equal(t, 12000.0, view.Summary[1].Value)
	assert.Equal(t, 46200.0, view.Summary[2].Value)
	assert.Equal(t, 3850.0, view.Summary[3].Value)
	assert.True(t, view.Summary[3].Highlight)
	assert.Nil(t, view.Chart)
}

func TestTip(t *testing.T) {
	r := newTestRegistry(t)
	tip := mustGet(t, r, "tip")

	view := tip.Evaluate(map[string]string{"bill": "100", "percentage": "15", "split": "4"}, chart.Light)
	require.Equal(t, StatusOK, view.Status)
	require.Len(t, view.Summary, 3)
	assert.Equal(t, 15.0, view.Summary[0].Value)
	assert.Equal(t, 115.0, view.Summary[1].Value)
	assert.Equal(t, "Amount Per Person", view.Summary[2].Label)
	assert.Equal(t, 28.75, view.Summary[2].Value)

	single := tip.Evaluate(map[string]string{"split": "0"}, chart.Light)
	assert.Len(t, single.Summary, 2, "per-person line is hidden without a split")

	empty := tip.Evaluate(map[string]string{"bill": "0"}, chart.Light)
	assert.Equal(t, StatusEmpty, empty.Status)
	assert.Empty(t, empty.Summary)
	assert.Empty(t, empty.Message)
}

func TestThemeOnlyChangesChart(t *testing.T) {
	r := newTestRegistry(t)
	c := mustGet(t, r, "mortgage")

	light := c.Evaluate(nil, chart.Light)
	dark := c.Evaluate(nil, chart.Dark)

	assert.Equal(t, light.Summary, dark.Summary)
	assert.NotEqual(t, light.Chart.Data.Datasets[0].BorderColor, dark.Chart.Data.Datasets[0].BorderColor)
}

func TestViewJSON(t *testing.T) {
	r := newTestRegistry(t)
	raw, err := json.Marshal(mustGet(t, r, "tip").Evaluate(map[string]string{"bill": "0"}, chart.Light))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"tip","status":"empty"}`, string(raw))
}

func TestDefaults(t *testing.T) {
	r := newTestRegistry(t)
	defaults := Defaults(mustGet(t, r, "salary"))
	assert.Equal(t, map[string]string{"gross": "60000", "tax": "20", "deductions": "150"}, defaults)
}

func TestOverflowingInputsAreInvalid(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name   string
		id     string
		values map[string]string
	}{
		{"growth compounding past float range", "savings", map[string]string{"interest": "100000", "term": "50"}},
		{"budget expenses past float range", "budget", map[string]string{"housing": "1e308", "food": "1e308"}},
		{"salary deductions past float range", "salary", map[string]string{"gross": "1e308", "deductions": "-1e308"}},
		{"tip total past float range", "tip", map[string]string{"bill": "1e308", "percentage": "100"}},
		{"loan total past float range", "loan", map[string]string{"amount": "1e308", "interest": "15", "term": "40"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var view View
			require.NotPanics(t, func() {
				view = mustGet(t, r, tt.id).Evaluate(tt.values, chart.Light)
			})
			assert.Equal(t, StatusInvalid, view.Status)
			assert.Equal(t, MessageInvalidValues, view.Message)
			assert.Empty(t, view.Summary)
			assert.Nil(t, view.Chart)

			_, err := json.Marshal(view)
			assert.NoError(t, err)
		})
	}
}

func TestTermLimit(t *testing.T) {
	r := newTestRegistry(t)

	for _, id := range []string{"savings", "mortgage"} {
		t.Run(id, func(t *testing.T) {
			view := mustGet(t, r, id).Evaluate(map[string]string{"term": "2000000000"}, chart.Light)
			assert.Equal(t, StatusInvalid, view.Status)
			assert.Equal(t, MessageInvalidTerm, view.Message)

			view = mustGet(t, r, id).Evaluate(map[string]string{"term": "100"}, chart.Light)
			assert.Equal(t, StatusOK, view.Status)
		})
	}
}
