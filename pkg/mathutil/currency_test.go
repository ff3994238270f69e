package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down below midpoint", 1.234, 1.23},
		{"Round up above midpoint", 1.236, 1.24},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"Monthly mortgage payment", 1122.6117, 1122.61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Just below negative tolerance", -0.02, false},
		{"Large positive", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1, 2.5, -3, 0) {
		t.Error("IsFinite() = false for ordinary values")
	}
	if IsFinite(1, math.NaN()) {
		t.Error("IsFinite() = true with NaN")
	}
	if IsFinite(math.Inf(1)) {
		t.Error("IsFinite() = true with +Inf")
	}
	if !IsFinite() {
		t.Error("IsFinite() with no values should be true")
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"15% tip on 100", 100.0, 15.0, 15.0},
		{"20% tax on 60000", 60000.0, 20.0, 12000.0},
		{"0% of value", 100.0, 0.0, 0.0},
		{"Percentage of zero", 0.0, 50.0, 0.0},
		{"Negative percentage", 100.0, -50.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v",
					tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestMonthlyRate(t *testing.T) {
	if got := MonthlyRate(12); math.Abs(got-0.01) > 1e-12 {
		t.Errorf("MonthlyRate(12) = %v, expected 0.01", got)
	}
	if got := MonthlyRate(0); got != 0 {
		t.Errorf("MonthlyRate(0) = %v, expected 0", got)
	}
	if got := PercentToDecimal(7); math.Abs(got-0.07) > 1e-12 {
		t.Errorf("PercentToDecimal(7) = %v, expected 0.07", got)
	}
}
