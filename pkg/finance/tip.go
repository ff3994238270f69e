package finance

import "github.com/iwvelando/finance-toolkit/pkg/mathutil"

// TipResult is a bill with tip, optionally split between several people.
type TipResult struct {
	TipAmount   float64 `json:"tipAmount"`
	TotalAmount float64 `json:"totalAmount"`
	PerPerson   float64 `json:"perPerson"`
	SplitCount  int     `json:"splitCount"`
}

// ComputeTip returns ok=false when there is no bill yet (bill <= 0), which callers
// treat as "nothing to show" rather than a zero tip. A split count below one is
// treated as one.
func ComputeTip(bill, tipPercent float64, splitCount int) (TipResult, bool) {
	if bill <= 0 {
		return TipResult{}, false
	}
	if splitCount < 1 {
		splitCount = 1
	}

	tip := mathutil.ApplyPercentage(bill, tipPercent)
	total := bill + tip

	return TipResult{
		TipAmount:   tip,
		TotalAmount: total,
		PerPerson:   total / float64(splitCount),
		SplitCount:  splitCount,
	}, true
}

// ShowPerPerson reports whether the per-person share is worth displaying.
func (r TipResult) ShowPerPerson() bool {
	return r.SplitCount > 1
}
