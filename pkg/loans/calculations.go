// Package loans provides fixed-payment loan amortization.
package loans

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/mathutil"
	"go.uber.org/zap"
)

// ErrInvalidInput is returned when principal, rate or term is not strictly positive.
var ErrInvalidInput = errors.New("loan requires positive principal, interest rate and term")

// ErrTermTooLong is returned when a schedule is requested for more than constants.MaxTermYears.
var ErrTermTooLong = fmt.Errorf("loan schedules are limited to %d years", constants.MaxTermYears)

// LoanResult holds the headline figures of a fixed-payment loan.
type LoanResult struct {
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
	TermMonths     int
}

// Payment holds the values for a given payment.
type Payment struct {
	Month              int
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
}

// YearSummary aggregates one year of payments.
type YearSummary struct {
	Year             int
	PrincipalPaid    float64
	InterestPaid     float64
	RemainingBalance float64
}

// ComputeLoan calculates the monthly payment, total payment and total interest of a
// loan. No rounding is applied; callers round at display time.
func ComputeLoan(principal, annualRatePercent, termYears float64) (LoanResult, error) {
	if !mathutil.IsFinite(principal, annualRatePercent, termYears) {
		return LoanResult{}, ErrInvalidInput
	}
	if principal <= 0 || annualRatePercent <= 0 || termYears <= 0 {
		return LoanResult{}, ErrInvalidInput
	}

	rate := mathutil.MonthlyRate(annualRatePercent)
	periods := termYears * constants.MonthsPerYear
	monthlyPayment := annuityPayment(principal, rate, periods)
	if !mathutil.IsFinite(monthlyPayment) {
		return LoanResult{}, ErrInvalidInput
	}

	totalPayment := monthlyPayment * periods
	return LoanResult{
		MonthlyPayment: monthlyPayment,
		TotalPayment:   totalPayment,
		TotalInterest:  totalPayment - principal,
		TermMonths:     int(math.Round(periods)),
	}, nil
}

// annuityPayment is principal·x·r/(x−1) with x = (1+r)^n.
func annuityPayment(principal, rate, periods float64) float64 {
	x := math.Pow(1+rate, periods)
	return principal * x * rate / (x - 1)
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}
	return annuityPayment(principal, mathutil.MonthlyRate(annualInterestRate), float64(termMonths))
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates the month-by-month amortization schedule of a loan.
func (g *AmortizationScheduleGenerator) GenerateSchedule(principal, annualRatePercent, termYears float64) ([]Payment, error) {
	if termYears > constants.MaxTermYears {
		return nil, ErrTermTooLong
	}
	result, err := ComputeLoan(principal, annualRatePercent, termYears)
	if err != nil {
		return nil, err
	}

	schedule := make([]Payment, 0, result.TermMonths)
	remaining := principal
	for month := 1; month <= result.TermMonths; month++ {
		var current Payment
		current.Month = month
		current.Payment = result.MonthlyPayment
		current.Interest = CalculateInterestPayment(remaining, annualRatePercent)
		current.Principal = result.MonthlyPayment - current.Interest

		if month == result.TermMonths || mathutil.IsZero(remaining-current.Principal) {
			// We will get machine error otherwise so just set to 0.
			current.Principal = remaining
			current.RemainingPrincipal = 0
			schedule = append(schedule, current)
			if month != result.TermMonths {
				g.logger.Debug(fmt.Sprintf("loan settled early at month %d of %d", month, result.TermMonths),
					zap.String("op", "loans.GenerateSchedule"),
				)
			}
			break
		}

		remaining -= current.Principal
		current.RemainingPrincipal = remaining
		schedule = append(schedule, current)
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "loans.GenerateSchedule"),
		zap.Float64("principal", principal),
		zap.Float64("annualRatePercent", annualRatePercent),
		zap.Int("payments", len(schedule)),
	)

	return schedule, nil
}

// SummarizeByYear folds a monthly schedule into per-year totals.
func SummarizeByYear(schedule []Payment) []YearSummary {
	if len(schedule) == 0 {
		return nil
	}

	years := make([]YearSummary, 0, (len(schedule)+constants.MonthsPerYear-1)/constants.MonthsPerYear)
	for _, payment := range schedule {
		year := (payment.Month-1)/constants.MonthsPerYear + 1
		if len(years) < year {
			years = append(years, YearSummary{Year: year})
		}
		summary := &years[year-1]
		summary.PrincipalPaid += payment.Principal
		summary.InterestPaid += payment.Interest
		summary.RemainingBalance = payment.RemainingPrincipal
	}
	return years
}
