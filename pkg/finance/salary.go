package finance

import (
	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/mathutil"
)

// SalaryResult is the net pay derived from a gross annual salary.
type SalaryResult struct {
	GrossAnnual float64 `json:"grossAnnual"`
	AnnualTax   float64 `json:"annualTax"`
	NetAnnual   float64 `json:"netAnnual"`
	NetMonthly  float64 `json:"netMonthly"`
}

// ComputeSalary applies a flat tax rate and fixed monthly deductions. Inputs are
// not validated.
func ComputeSalary(grossAnnual, taxRatePercent, otherMonthlyDeductions float64) SalaryResult {
	annualTax := mathutil.ApplyPercentage(grossAnnual, taxRatePercent)
	netAnnual := grossAnnual - annualTax - otherMonthlyDeductions*constants.MonthsPerYear

	return SalaryResult{
		GrossAnnual: grossAnnual,
		AnnualTax:   annualTax,
		NetAnnual:   netAnnual,
		NetMonthly:  netAnnual / constants.MonthsPerYear,
	}
}
