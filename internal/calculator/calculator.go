// Package calculator adapts raw form values into engine calls and produces the
// result view and chart for each calculator page.
package calculator

import (
	"github.com/iwvelando/finance-toolkit/pkg/chart"
	"github.com/iwvelando/finance-toolkit/pkg/format"
	"go.uber.org/zap"
)

// Status describes the outcome of an evaluation.
type Status string

// Evaluation outcomes.
const (
	StatusOK      Status = "ok"
	StatusInvalid Status = "invalid"
	StatusEmpty   Status = "empty"
)

// Placeholder messages shown instead of a result.
const (
	MessageInvalidValues = "Please enter valid values."
	MessageInvalidTerm   = "Please enter a valid term."
)

// Unit tells the page how to label an input.
type Unit string

// Input units.
const (
	UnitCurrency Unit = "currency"
	UnitPercent  Unit = "percent"
	UnitYears    Unit = "years"
	UnitCount    Unit = "count"
)

// Field describes one form input. Min, Max and Step are set for inputs that have
// a slider next to them.
type Field struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Unit    Unit    `json:"unit"`
	Default string  `json:"default"`
	Step    float64 `json:"step,omitempty"`
	Slider  *Range  `json:"slider,omitempty"`
}

// Range is a slider's bounds.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Line is one labelled amount of a result summary.
type Line struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Text      string  `json:"text"`
	Highlight bool    `json:"highlight,omitempty"`
	Negative  bool    `json:"negative,omitempty"`
}

// View is the rendered state of a calculator after one evaluation.
type View struct {
	ID      string       `json:"id"`
	Status  Status       `json:"status"`
	Message string       `json:"message,omitempty"`
	Summary []Line       `json:"summary,omitempty"`
	Chart   *chart.Chart `json:"chart,omitempty"`
}

// Calculator is one calculator page.
type Calculator interface {
	ID() string
	Title() string
	Fields() []Field
	// Evaluate computes the view for the given form values. Missing values take
	// the field default; unparsable values follow the page's parse-or-default rule.
	Evaluate(values map[string]string, theme chart.Theme) View
}

// Info is the JSON description of a calculator.
type Info struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Describe returns the calculator's Info.
func Describe(c Calculator) Info {
	return Info{ID: c.ID(), Title: c.Title(), Fields: c.Fields()}
}

// Registry holds the calculators in page order.
type Registry struct {
	ordered []Calculator
	byID    map[string]Calculator
}

// NewRegistry creates the standard set of calculators. A nil formatter uses the
// default locale and currency.
func NewRegistry(f *format.Formatter, logger *zap.Logger) *Registry {
	if f == nil {
		f = format.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base := func(id, title string) common {
		return common{id: id, title: title, formatter: f, logger: logger}
	}

	return NewRegistryOf(
		&loanCalculator{common: base("mortgage", "Mortgage Calculator")},
		&loanCalculator{common: base("loan", "Loan Calculator")},
		&growthCalculator{common: base("savings", "Savings Calculator"), initialLabel: "Initial Deposit"},
		&growthCalculator{common: base("investment", "Investment Calculator"), initialLabel: "Initial Investment"},
		&growthCalculator{common: base("retirement", "Retirement Calculator"), initialLabel: "Initial Deposit"},
		&budgetCalculator{common: base("budget", "Budget Planner")},
		&salaryCalculator{common: base("salary", "Salary Calculator")},
		&tipCalculator{common: base("tip", "Tip Calculator")},
	)
}

// NewRegistryOf builds a registry from the given calculators. Later duplicates of
// an ID are ignored.
func NewRegistryOf(calculators ...Calculator) *Registry {
	r := &Registry{byID: make(map[string]Calculator, len(calculators))}
	for _, c := range calculators {
		if _, exists := r.byID[c.ID()]; exists {
			continue
		}
		r.byID[c.ID()] = c
		r.ordered = append(r.ordered, c)
	}
	return r
}

// Get looks up a calculator by ID.
func (r *Registry) Get(id string) (Calculator, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// All returns the calculators in page order.
func (r *Registry) All() []Calculator {
	out := make([]Calculator, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Infos describes every calculator in page order.
func (r *Registry) Infos() []Info {
	infos := make([]Info, 0, len(r.ordered))
	for _, c := range r.ordered {
		infos = append(infos, Describe(c))
	}
	return infos
}

// Defaults returns the default form values of a calculator.
func Defaults(c Calculator) map[string]string {
	values := make(map[string]string)
	for _, field := range c.Fields() {
		values[field.Name] = field.Default
	}
	return values
}
