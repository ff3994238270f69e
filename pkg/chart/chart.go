// Package chart builds chart configurations from calculation results.
//
// A chart is a pure function of a result and the UI theme, serialised in the
// shape Chart.js expects, so switching theme is just another evaluation.
package chart

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-toolkit/pkg/constants"
	"github.com/iwvelando/finance-toolkit/pkg/finance"
)

// Theme selects the chart palette.
type Theme string

// Supported themes.
const (
	Light Theme = constants.ThemeLight
	Dark  Theme = constants.ThemeDark
)

// ParseTheme maps a UI theme name to a Theme, defaulting to Light.
func ParseTheme(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), constants.ThemeDark) {
		return Dark
	}
	return Light
}

// Chart is a Chart.js configuration.
type Chart struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

// Data holds labels and datasets.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series. BackgroundColor is a single colour for line fills and a
// list of colours for pie and doughnut slices.
type Dataset struct {
	Label           string      `json:"label,omitempty"`
	Data            []float64   `json:"data"`
	BackgroundColor interface{} `json:"backgroundColor"`
	BorderColor     string      `json:"borderColor,omitempty"`
	BorderWidth     int         `json:"borderWidth,omitempty"`
	Fill            bool        `json:"fill,omitempty"`
}

// Options carries the layout options shared by every chart.
type Options struct {
	Responsive          bool            `json:"responsive"`
	MaintainAspectRatio bool            `json:"maintainAspectRatio"`
	Scales              map[string]Axis `json:"scales,omitempty"`
	Plugins             Plugins         `json:"plugins"`
}

// Axis styles a cartesian axis.
type Axis struct {
	Ticks ColorOption `json:"ticks"`
	Grid  ColorOption `json:"grid"`
}

// ColorOption is an object with a single colour.
type ColorOption struct {
	Color string `json:"color"`
}

// Plugins configures Chart.js plugins.
type Plugins struct {
	Legend Legend `json:"legend"`
}

// Legend positions and colours the legend.
type Legend struct {
	Position string      `json:"position"`
	Labels   ColorOption `json:"labels"`
}

type palette struct {
	primary, secondary     string
	primaryFill, mutedFill string
	muted                  string
	border                 string
	legend, ticks, grid    string
}

var palettes = map[Theme]palette{
	Light: {
		primary:     "#10b981",
		secondary:   "#34d399",
		primaryFill: "rgba(16, 185, 129, 0.5)",
		mutedFill:   "rgba(203, 213, 225, 0.5)",
		muted:       "#cbd5e1",
		border:      "var(--white)",
		legend:      "var(--slate-600)",
		ticks:       "var(--slate-500)",
		grid:        "var(--slate-200)",
	},
	Dark: {
		primary:     "#059669",
		secondary:   "#047857",
		primaryFill: "rgba(5, 150, 105, 0.5)",
		mutedFill:   "rgba(100, 116, 139, 0.5)",
		muted:       "#64748b",
		border:      "var(--slate-800)",
		legend:      "var(--slate-300)",
		ticks:       "var(--slate-400)",
		grid:        "var(--slate-700)",
	},
}

// budgetColors is shared by both themes.
var budgetColors = []string{"#10b981", "#34d399", "#6ee7b7", "#a7f3d0", "#059669", "#047857"}

func paletteFor(theme Theme) palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[Light]
}

func baseOptions(p palette) Options {
	return Options{
		Responsive:          true,
		MaintainAspectRatio: false,
		Plugins:             Plugins{Legend: Legend{Position: "bottom", Labels: ColorOption{Color: p.legend}}},
	}
}

// LoanBreakdown is a doughnut of principal against total interest.
func LoanBreakdown(principal, totalInterest float64, theme Theme) Chart {
	p := paletteFor(theme)
	return Chart{
		Type: "doughnut",
		Data: Data{
			Labels: []string{"Principal", "Interest"},
			Datasets: []Dataset{{
				Data:            []float64{principal, totalInterest},
				BackgroundColor: []string{p.primary, p.secondary},
				BorderColor:     p.border,
				BorderWidth:     4,
			}},
		},
		Options: baseOptions(p),
	}
}

// GrowthLines plots cumulative contributions and projected value per year.
func GrowthLines(series finance.GrowthSeries, theme Theme) Chart {
	p := paletteFor(theme)

	labels := make([]string, len(series.Points))
	contributions := make([]float64, len(series.Points))
	values := make([]float64, len(series.Points))
	for i, point := range series.Points {
		labels[i] = fmt.Sprintf("Year %d", point.Year)
		contributions[i] = point.CumulativeContribution
		values[i] = point.Value
	}

	options := baseOptions(p)
	axis := Axis{Ticks: ColorOption{Color: p.ticks}, Grid: ColorOption{Color: p.grid}}
	options.Scales = map[string]Axis{"x": axis, "y": axis}

	return Chart{
		Type: "line",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{
				{
					Label:           "Total Contributions",
					Data:            contributions,
					BackgroundColor: p.mutedFill,
					BorderColor:     p.muted,
					Fill:            true,
				},
				{
					Label:           "Future Value",
					Data:            values,
					BackgroundColor: p.primaryFill,
					BorderColor:     p.primary,
					Fill:            true,
				},
			},
		},
		Options: options,
	}
}

// BudgetPie shows each expense category's share.
func BudgetPie(categories []finance.Category, theme Theme) Chart {
	p := paletteFor(theme)

	labels := make([]string, len(categories))
	values := make([]float64, len(categories))
	colors := make([]string, len(categories))
	for i, category := range categories {
		labels[i] = category.Name
		values[i] = category.Amount
		colors[i] = budgetColors[i%len(budgetColors)]
	}

	return Chart{
		Type: "pie",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Data:            values,
				BackgroundColor: colors,
				BorderColor:     p.border,
				BorderWidth:     4,
			}},
		},
		Options: baseOptions(p),
	}
}
