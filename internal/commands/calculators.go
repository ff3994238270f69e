package commands

import (
	"errors"

	"github.com/iwvelando/finance-toolkit/internal/calculator"
	"github.com/iwvelando/finance-toolkit/pkg/chart"
	"github.com/iwvelando/finance-toolkit/pkg/finance"
	"github.com/iwvelando/finance-toolkit/pkg/input"
	"github.com/iwvelando/finance-toolkit/pkg/loans"
	"github.com/iwvelando/finance-toolkit/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// tableBuilder produces the optional detail table for a calculator from its
// form values. It returns nil when the inputs cannot produce one.
type tableBuilder func(values map[string]string, logger *zap.Logger) *output.Table

type calculatorCommand struct {
	id    string
	short string
	// tableFlag names the boolean flag that adds the detail table.
	tableFlag string
	table     tableBuilder
}

var calculatorCommands = []calculatorCommand{
	{id: "mortgage", short: "Monthly payment and interest for a mortgage", tableFlag: "schedule", table: loanSchedule},
	{id: "loan", short: "Monthly payment and interest for a loan", tableFlag: "schedule", table: loanSchedule},
	{id: "savings", short: "Project savings with monthly deposits", tableFlag: "yearly", table: growthTable},
	{id: "investment", short: "Project an investment with monthly contributions", tableFlag: "yearly", table: growthTable},
	{id: "retirement", short: "Project a retirement fund", tableFlag: "yearly", table: growthTable},
	{id: "budget", short: "Break down a monthly budget"},
	{id: "salary", short: "Net pay after tax and deductions"},
	{id: "tip", short: "Tip and per-person split for a bill"},
}

// newCalculatorCommand exposes one calculator with a string flag per form field,
// so flag values follow the same parse-or-default rules as the web form.
func newCalculatorCommand(a *app, def calculatorCommand) *cobra.Command {
	// Fields are fixed per calculator, so a throwaway registry can describe them.
	describe, _ := calculator.NewRegistry(nil, nil).Get(def.id)
	fields := describe.Fields()

	flagValues := make(map[string]*string, len(fields))
	var withTable bool

	cmd := &cobra.Command{
		Use:   def.id,
		Short: def.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := make(map[string]string, len(fields))
			for name, v := range flagValues {
				values[name] = *v
			}

			calc, _ := calculator.NewRegistry(a.conf.Formatter(), a.logger).Get(def.id)
			view := calc.Evaluate(values, chart.Light)

			report := viewReport(calc.Title(), view)
			if withTable && def.table != nil && view.Status == calculator.StatusOK {
				report.Table = def.table(values, a.logger)
			}
			if err := a.render(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if view.Status == calculator.StatusInvalid {
				return errors.New(view.Message)
			}
			return nil
		},
	}

	for _, field := range fields {
		flagValues[field.Name] = cmd.Flags().String(field.Name, field.Default, field.Label)
	}
	if def.tableFlag != "" {
		cmd.Flags().BoolVar(&withTable, def.tableFlag, false, "include the year-by-year table")
	}

	return cmd
}

// viewReport converts a calculator view into a printable report.
func viewReport(title string, view calculator.View) output.Report {
	report := output.Report{Title: title}
	switch view.Status {
	case calculator.StatusInvalid:
		report.Notes = []string{view.Message}
	case calculator.StatusEmpty:
		report.Notes = []string{"Nothing to calculate."}
	default:
		for _, line := range view.Summary {
			report.Fields = append(report.Fields, output.Field{
				Label:     line.Label,
				Value:     line.Value,
				Kind:      output.KindCurrency,
				Highlight: line.Highlight,
			})
		}
	}
	return report
}

func loanSchedule(values map[string]string, logger *zap.Logger) *output.Table {
	generator := loans.NewAmortizationScheduleGenerator(logger)
	schedule, err := generator.GenerateSchedule(
		input.FloatOrZero(values["amount"]),
		input.FloatOrZero(values["interest"]),
		input.FloatOrZero(values["term"]),
	)
	if err != nil {
		return nil
	}

	table := &output.Table{Columns: []output.Column{
		{Name: "Year", Kind: output.KindCount},
		{Name: "Principal Paid"},
		{Name: "Interest Paid"},
		{Name: "Remaining Balance"},
	}}
	for _, year := range loans.SummarizeByYear(schedule) {
		table.Rows = append(table.Rows, []float64{float64(year.Year), year.PrincipalPaid, year.InterestPaid, year.RemainingBalance})
	}
	return table
}

func growthTable(values map[string]string, _ *zap.Logger) *output.Table {
	series, err := finance.ComputeGrowth(
		input.FloatOrZero(values["initial"]),
		input.FloatOrZero(values["monthly"]),
		input.FloatOrZero(values["interest"]),
		input.Int(values["term"], 0),
	)
	if err != nil {
		return nil
	}

	table := &output.Table{Columns: []output.Column{
		{Name: "Year", Kind: output.KindCount},
		{Name: "Total Contributions"},
		{Name: "Value"},
	}}
	for _, point := range series.Points {
		table.Rows = append(table.Rows, []float64{float64(point.Year), point.CumulativeContribution, point.Value})
	}
	return table
}
