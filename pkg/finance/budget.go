package finance

// Category is a named monthly expense line.
type Category struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// BudgetResult summarises income against categorised expenses.
type BudgetResult struct {
	TotalIncome   float64    `json:"totalIncome"`
	TotalExpenses float64    `json:"totalExpenses"`
	Balance       float64    `json:"balance"`
	Categories    []Category `json:"categories"`
}

// DefaultBudgetCategories lists the expense lines offered by the budget planner.
var DefaultBudgetCategories = []Category{
	{Name: "Housing", Amount: 1500},
	{Name: "Food", Amount: 600},
	{Name: "Transport", Amount: 300},
	{Name: "Entertainment", Amount: 200},
	{Name: "Savings", Amount: 500},
	{Name: "Other", Amount: 400},
}

// ComputeBudget sums the categories and subtracts them from income. Negative
// amounts are accepted as-is and a deficit shows up as a negative balance.
func ComputeBudget(income float64, categories []Category) BudgetResult {
	total := 0.0
	for _, category := range categories {
		total += category.Amount
	}

	return BudgetResult{
		TotalIncome:   income,
		TotalExpenses: total,
		Balance:       income - total,
		Categories:    append([]Category(nil), categories...),
	}
}

// IsDeficit reports whether expenses exceed income.
func (r BudgetResult) IsDeficit() bool {
	return r.Balance < 0
}
