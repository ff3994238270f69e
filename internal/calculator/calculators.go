package calculator

import (
	"github.com/iwvelando/finance-toolkit/pkg/chart"
	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/finance"
	"github.com/iwvelando/finance-toolkit/pkg/format"
	"github.com/iwvelando/finance-toolkit/pkg/input"
	"github.com/iwvelando/finance-toolkit/pkg/loans"
	"github.com/iwvelando/finance-toolkit/pkg/mathutil"
	"go.uber.org/zap"
)

type common struct {
	id        string
	title     string
	formatter *format.Formatter
	logger    *zap.Logger
}

func (c common) ID() string    { return c.id }
func (c common) Title() string { return c.title }

func (c common) line(label string, value float64) Line {
	return Line{Label: label, Value: value, Text: c.formatter.Currency(value)}
}

func (c common) highlight(label string, value float64) Line {
	l := c.line(label, value)
	l.Highlight = true
	return l
}

// overflowed reports whether a result cannot be shown because finite inputs
// grew past float64 range.
func (c common) overflowed(op string, values ...float64) bool {
	if mathutil.IsFinite(values...) {
		return false
	}
	c.logger.Debug("result out of range",
		zap.String("op", op),
		zap.String("calculator", c.id),
	)
	return true
}

func (c common) invalid(message string) View {
	return View{ID: c.id, Status: StatusInvalid, Message: message}
}

// raw returns the submitted value for a field, or its default when absent.
func raw(values map[string]string, field Field) string {
	if v, ok := values[field.Name]; ok {
		return v
	}
	return field.Default
}

var (
	loanFields = []Field{
		{Name: "amount", Label: "Loan Amount", Unit: UnitCurrency, Default: "250000"},
		{Name: "interest", Label: "Annual Interest Rate", Unit: UnitPercent, Default: "3.5", Step: 0.01,
			Slider: &Range{Min: 1, Max: 15, Step: 0.01}},
		{Name: "term", Label: "Loan Term (Years)", Unit: UnitYears, Default: "30",
			Slider: &Range{Min: 1, Max: 40, Step: 1}},
	}

	budgetFields = []Field{
		{Name: "income", Label: "Monthly Income", Unit: UnitCurrency, Default: "5000"},
		{Name: "housing", Label: "Housing", Unit: UnitCurrency, Default: "1500"},
		{Name: "food", Label: "Food & Groceries", Unit: UnitCurrency, Default: "600"},
		{Name: "transport", Label: "Transportation", Unit: UnitCurrency, Default: "300"},
		{Name: "entertainment", Label: "Entertainment", Unit: UnitCurrency, Default: "200"},
		{Name: "savings", Label: "Savings & Investments", Unit: UnitCurrency, Default: "500"},
		{Name: "other", Label: "Other", Unit: UnitCurrency, Default: "400"},
	}

	salaryFields = []Field{
		{Name: "gross", Label: "Gross Annual Salary", Unit: UnitCurrency, Default: "60000"},
		{Name: "tax", Label: "Income Tax Rate", Unit: UnitPercent, Default: "20"},
		{Name: "deductions", Label: "Other Monthly Deductions", Unit: UnitCurrency, Default: "150"},
	}

	tipFields = []Field{
		{Name: "bill", Label: "Bill Amount", Unit: UnitCurrency, Default: "100"},
		{Name: "percentage", Label: "Tip Percentage", Unit: UnitPercent, Default: "15"},
		{Name: "split", Label: "Number of People", Unit: UnitCount, Default: "1"},
	}
)

func copyFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

type loanCalculator struct {
	common
}

func (c *loanCalculator) Fields() []Field { return copyFields(loanFields) }

func (c *loanCalculator) Evaluate(values map[string]string, theme chart.Theme) View {
	amount := input.FloatOrZero(raw(values, loanFields[0]))
	rate := input.FloatOrZero(raw(values, loanFields[1]))
	term := input.FloatOrZero(raw(values, loanFields[2]))
	if term > constants.MaxTermYears {
		return c.invalid(MessageInvalidTerm)
	}

	result, err := loans.ComputeLoan(amount, rate, term)
	if err != nil {
		c.logger.Debug("loan inputs rejected",
			zap.String("op", "calculator.loan.Evaluate"),
			zap.String("calculator", c.id),
			zap.Error(err),
		)
		return c.invalid(MessageInvalidValues)
	}
	if c.overflowed("calculator.loan.Evaluate", result.MonthlyPayment, result.TotalPayment, result.TotalInterest) {
		return c.invalid(MessageInvalidValues)
	}

	loanChart := chart.LoanBreakdown(amount, result.TotalInterest, theme)
	return View{
		ID:     c.id,
		Status: StatusOK,
		Summary: []Line{
			c.highlight("Monthly Payment", result.MonthlyPayment),
			c.line("Total Payment", result.TotalPayment),
			c.line("Total Interest", result.TotalInterest),
		},
		Chart: &loanChart,
	}
}

type growthCalculator struct {
	common
	initialLabel string
}

func (c *growthCalculator) Fields() []Field {
	return []Field{
		{Name: "initial", Label: c.initialLabel, Unit: UnitCurrency, Default: "1000"},
		{Name: "monthly", Label: "Monthly Contribution", Unit: UnitCurrency, Default: "100"},
		{Name: "interest", Label: "Annual Rate of Return", Unit: UnitPercent, Default: "7", Step: 0.01,
			Slider: &Range{Min: 1, Max: 20, Step: 0.1}},
		{Name: "term", Label: "Time (Years)", Unit: UnitYears, Default: "10",
			Slider: &Range{Min: 1, Max: 50, Step: 1}},
	}
}

func (c *growthCalculator) Evaluate(values map[string]string, theme chart.Theme) View {
	fields := c.Fields()
	initial := input.FloatOrZero(raw(values, fields[0]))
	monthly := input.FloatOrZero(raw(values, fields[1]))
	rate := input.FloatOrZero(raw(values, fields[2]))
	term := input.Int(raw(values, fields[3]), 0)
	if term > constants.MaxTermYears {
		return c.invalid(MessageInvalidTerm)
	}

	series, err := finance.ComputeGrowth(initial, monthly, rate, term)
	if err != nil {
		c.logger.Debug("growth inputs rejected",
			zap.String("op", "calculator.growth.Evaluate"),
			zap.String("calculator", c.id),
			zap.Int("term", term),
		)
		return c.invalid(MessageInvalidTerm)
	}
	points := make([]float64, 0, 2*len(series.Points)+1)
	for _, p := range series.Points {
		points = append(points, p.Value, p.CumulativeContribution)
	}
	if c.overflowed("calculator.growth.Evaluate", append(points, series.TotalInterest())...) {
		return c.invalid(MessageInvalidValues)
	}

	growthChart := chart.GrowthLines(series, theme)
	return View{
		ID:     c.id,
		Status: StatusOK,
		Summary: []Line{
			c.highlight("Future Value", series.FinalValue()),
			c.line("Total Contributions", series.TotalContribution()),
			c.line("Total Interest Earned", series.TotalInterest()),
		},
		Chart: &growthChart,
	}
}

type budgetCalculator struct {
	common
}

func (c *budgetCalculator) Fields() []Field { return copyFields(budgetFields) }

func (c *budgetCalculator) Evaluate(values map[string]string, theme chart.Theme) View {
	income := input.FloatOrZero(raw(values, budgetFields[0]))

	categories := make([]finance.Category, 0, len(budgetFields)-1)
	for i, field := range budgetFields[1:] {
		name := field.Label
		if i < len(finance.DefaultBudgetCategories) {
			name = finance.DefaultBudgetCategories[i].Name
		}
		categories = append(categories, finance.Category{
			Name:   name,
			Amount: input.FloatOrZero(raw(values, field)),
		})
	}

	result := finance.ComputeBudget(income, categories)
	if c.overflowed("calculator.budget.Evaluate", result.TotalIncome, result.TotalExpenses, result.Balance) {
		return c.invalid(MessageInvalidValues)
	}

	balance := c.highlight("Remaining Balance", result.Balance)
	balance.Negative = result.IsDeficit()

	budgetChart := chart.BudgetPie(result.Categories, theme)
	return View{
		ID:     c.id,
		Status: StatusOK,
		Summary: []Line{
			c.line("Total Income", result.TotalIncome),
			c.line("Total Expenses", result.TotalExpenses),
			balance,
		},
		Chart: &budgetChart,
	}
}

type salaryCalculator struct {
	common
}

func (c *salaryCalculator) Fields() []Field { return copyFields(salaryFields) }

func (c *salaryCalculator) Evaluate(values map[string]string, _ chart.Theme) View {
	result := finance.ComputeSalary(
		input.FloatOrZero(raw(values, salaryFields[0])),
		input.FloatOrZero(raw(values, salaryFields[1])),
		input.FloatOrZero(raw(values, salaryFields[2])),
	)
	if c.overflowed("calculator.salary.Evaluate", result.GrossAnnual, result.AnnualTax, result.NetAnnual, result.NetMonthly) {
		return c.invalid(MessageInvalidValues)
	}

	return View{
		ID:     c.id,
		Status: StatusOK,
		Summary: []Line{
			c.line("Gross Annual Salary", result.GrossAnnual),
			c.line("Annual Tax", result.AnnualTax),
			c.line("Net Annual Salary", result.NetAnnual),
			c.highlight("Net Monthly Salary", result.NetMonthly),
		},
	}
}

type tipCalculator struct {
	common
}

func (c *tipCalculator) Fields() []Field { return copyFields(tipFields) }

func (c *tipCalculator) Evaluate(values map[string]string, _ chart.Theme) View {
	result, ok := finance.ComputeTip(
		input.FloatOrZero(raw(values, tipFields[0])),
		input.FloatOrZero(raw(values, tipFields[1])),
		input.Int(raw(values, tipFields[2]), 1),
	)
	if !ok {
		return View{ID: c.id, Status: StatusEmpty}
	}
	if c.overflowed("calculator.tip.Evaluate", result.TipAmount, result.TotalAmount, result.PerPerson) {
		return c.invalid(MessageInvalidValues)
	}

	summary := []Line{
		c.line("Tip Amount", result.TipAmount),
		c.line("Total Bill", result.TotalAmount),
	}
	if result.ShowPerPerson() {
		summary = append(summary, c.highlight("Amount Per Person", result.PerPerson))
	}
	return View{ID: c.id, Status: StatusOK, Summary: summary}
}
