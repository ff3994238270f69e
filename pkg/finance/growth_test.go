package finance

import (
	"errors"
	"math"
	"testing"
)

func TestComputeGrowthSeriesShape(t *testing.T) {
	for _, term := range []int{1, 2, 10, 30, 50} {
		series, err := ComputeGrowth(1000, 100, 7, term)
		if err != nil {
			t.Fatalf("ComputeGrowth(term=%d) error = %v", term, err)
		}

		if len(series.Points) != term+1 {
			t.Errorf("term %d: expected %d points, got %d", term, term+1, len(series.Points))
		}
		if first := series.Points[0]; first != (GrowthPoint{Year: 0, Value: 1000, CumulativeContribution: 1000}) {
			t.Errorf("term %d: unexpected starting point %+v", term, first)
		}
		for i, point := range series.Points {
			if point.Year != i {
				t.Errorf("term %d: point %d has year %d", term, i, point.Year)
			}
		}
	}
}

func TestComputeGrowthTenYears(t *testing.T) {
	series, err := ComputeGrowth(1000, 100, 7, 10)
	if err != nil {
		t.Fatalf("ComputeGrowth() error = %v", err)
	}

	if series.TotalContribution() != 13000 {
		t.Errorf("TotalContribution() = %.2f, expected 13000.00", series.TotalContribution())
	}
	if series.FinalValue() <= series.TotalContribution() {
		t.Errorf("FinalValue() %.2f should exceed contributions %.2f", series.FinalValue(), series.TotalContribution())
	}
	if math.Abs(series.TotalInterest()-(series.FinalValue()-13000)) > 1e-9 {
		t.Errorf("TotalInterest() = %.2f, expected FinalValue - contributions", series.TotalInterest())
	}
	// Annuity-due future value of 1000 and 100/month at 7%/12 for 120 months is about 19,419.
	if series.FinalValue() < 19300 || series.FinalValue() > 19600 {
		t.Errorf("FinalValue() = %.2f, expected about 19,419", series.FinalValue())
	}
	if got := series.Points[10].CumulativeContribution; got != 13000 {
		t.Errorf("year 10 cumulative contribution = %.2f, expected 13000.00", got)
	}
}

func TestComputeGrowthFirstYearByHand(t *testing.T) {
	series, err := ComputeGrowth(0, 100, 12, 1)
	if err != nil {
		t.Fatalf("ComputeGrowth() error = %v", err)
	}

	rate := 12.0
	expected := 0.0
	for month := 0; month < 12; month++ {
		expected += 100
		expected *= 1 + rate/100/12
	}
	if series.FinalValue() != expected {
		t.Errorf("FinalValue() = %v, expected %v", series.FinalValue(), expected)
	}
}

func TestComputeGrowthZeroRate(t *testing.T) {
	series, err := ComputeGrowth(500, 50, 0, 3)
	if err != nil {
		t.Fatalf("ComputeGrowth() error = %v", err)
	}
	if series.FinalValue() != 2300 {
		t.Errorf("FinalValue() = %.2f, expected 2300.00", series.FinalValue())
	}
	if series.TotalInterest() != 0 {
		t.Errorf("TotalInterest() = %.2f, expected 0", series.TotalInterest())
	}
}

func TestComputeGrowthNegativeRateIsNotRejected(t *testing.T) {
	series, err := ComputeGrowth(1000, 0, -5, 2)
	if err != nil {
		t.Fatalf("ComputeGrowth() error = %v", err)
	}
	if series.TotalInterest() >= 0 {
		t.Errorf("TotalInterest() = %.2f, expected negative for a negative rate", series.TotalInterest())
	}
}

func TestComputeGrowthInvalidTerm(t *testing.T) {
	for _, term := range []int{0, -1} {
		series, err := ComputeGrowth(1000, 100, 7, term)
		if !errors.Is(err, ErrInvalidTerm) {
			t.Errorf("ComputeGrowth(term=%d) error = %v, expected ErrInvalidTerm", term, err)
		}
		if len(series.Points) != 0 || series.FinalValue() != 0 {
			t.Errorf("ComputeGrowth(term=%d) returned data on error: %+v", term, series)
		}
	}
}

func TestComputeGrowthIdempotent(t *testing.T) {
	first, _ := ComputeGrowth(1000, 100, 7, 10)
	second, _ := ComputeGrowth(1000, 100, 7, 10)
	if len(first.Points) != len(second.Points) {
		t.Fatal("series lengths differ between identical calls")
	}
	for i := range first.Points {
		if first.Points[i] != second.Points[i] {
			t.Errorf("point %d differs: %+v vs %+v", i, first.Points[i], second.Points[i])
		}
	}
}
