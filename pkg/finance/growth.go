// Package finance provides the savings, budget, salary and tip calculations.
package finance

import (
	"errors"

	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/mathutil"
)

// ErrInvalidTerm is returned when a growth projection has no whole years to run.
var ErrInvalidTerm = errors.New("growth projection requires a term of at least one year")

// GrowthPoint is the state of a projection at the end of a year.
type GrowthPoint struct {
	Year                   int     `json:"year"`
	Value                  float64 `json:"value"`
	CumulativeContribution float64 `json:"cumulativeContribution"`
}

// GrowthSeries is a year-indexed projection; Points[0] is the starting position.
type GrowthSeries struct {
	Points              []GrowthPoint `json:"points"`
	Initial             float64       `json:"initial"`
	MonthlyContribution float64       `json:"monthlyContribution"`
	TermYears           int           `json:"termYears"`
}

// ComputeGrowth simulates monthly contributions followed by monthly compounding and
// records the value at the end of every year. Contributions are added before the
// month's growth is applied.
func ComputeGrowth(initial, monthlyContribution, annualRatePercent float64, termYears int) (GrowthSeries, error) {
	if termYears <= 0 {
		return GrowthSeries{}, ErrInvalidTerm
	}

	monthlyGrowth := 1 + mathutil.MonthlyRate(annualRatePercent)

	points := make([]GrowthPoint, 0, termYears+1)
	points = append(points, GrowthPoint{Year: 0, Value: initial, CumulativeContribution: initial})

	value := initial
	for year := 1; year <= termYears; year++ {
		for month := 1; month <= constants.MonthsPerYear; month++ {
			value += monthlyContribution
			value *= monthlyGrowth
		}
		points = append(points, GrowthPoint{
			Year:                   year,
			Value:                  value,
			CumulativeContribution: initial + monthlyContribution*constants.MonthsPerYear*float64(year),
		})
	}

	return GrowthSeries{
		Points:              points,
		Initial:             initial,
		MonthlyContribution: monthlyContribution,
		TermYears:           termYears,
	}, nil
}

// FinalValue returns the value at the end of the term.
func (s GrowthSeries) FinalValue() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Value
}

// TotalContribution returns the initial amount plus every monthly contribution.
func (s GrowthSeries) TotalContribution() float64 {
	return s.Initial + s.MonthlyContribution*float64(s.TermYears)*constants.MonthsPerYear
}

// TotalInterest returns the growth earned over the contributions. It is only
// negative when the rate is negative.
func (s GrowthSeries) TotalInterest() float64 {
	return s.FinalValue() - s.TotalContribution()
}
