// Package output renders calculation reports for the terminal.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-toolkit/pkg/format"
	"github.com/iwvelando/finance-toolkit/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Kind says how a value is rendered.
type Kind int

// Value kinds.
const (
	KindCurrency Kind = iota
	KindPercent
	KindCount
	KindText
)

// Field is one labelled line of a report summary.
type Field struct {
	Label     string
	Value     float64
	Text      string // used when Kind is KindText
	Kind      Kind
	Highlight bool
}

// Column describes one table column.
type Column struct {
	Name string
	Kind Kind
}

// Table is a numeric table such as a yearly schedule.
type Table struct {
	Columns []Column
	Rows    [][]float64
}

// Report is everything a CLI command prints for one calculation.
type Report struct {
	Title  string
	Fields []Field
	Table  *Table
	Notes  []string
}

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report Report, f *format.Formatter) error {
	if f == nil {
		f = format.Default()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s ---\n", report.Title)

	width := 0
	for _, field := range report.Fields {
		if len(field.Label) > width {
			width = len(field.Label)
		}
	}
	for _, field := range report.Fields {
		marker := " "
		if field.Highlight {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-*s  %s\n", marker, width, field.Label, prettyValue(field.Kind, field.Value, field.Text, f))
	}

	if report.Table != nil && len(report.Table.Columns) > 0 {
		b.WriteString("\n")
		writePrettyTable(&b, report.Table, f)
	}

	for _, note := range report.Notes {
		fmt.Fprintf(&b, "\n%s\n", note)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writePrettyTable(b *strings.Builder, table *Table, f *format.Formatter) {
	cells := make([][]string, len(table.Rows))
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = len(col.Name)
	}
	for r, row := range table.Rows {
		cells[r] = make([]string, len(table.Columns))
		for i, col := range table.Columns {
			if i >= len(row) {
				continue
			}
			cells[r][i] = prettyValue(col.Kind, row[i], "", f)
			if len(cells[r][i]) > widths[i] {
				widths[i] = len(cells[r][i])
			}
		}
	}

	header := make([]string, len(table.Columns))
	rule := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = fmt.Sprintf("%-*s", widths[i], col.Name)
		rule[i] = strings.Repeat("_", widths[i])
	}
	b.WriteString(strings.Join(header, " | ") + "\n")
	b.WriteString(strings.Join(rule, " | ") + "\n")

	for _, row := range cells {
		line := make([]string, len(row))
		for i, cell := range row {
			line[i] = fmt.Sprintf("%*s", widths[i], cell)
		}
		b.WriteString(strings.Join(line, " | ") + "\n")
	}
}

func percentValue(value float64) string {
	if !mathutil.IsFinite(value) {
		return format.NotANumber
	}
	return decimal.NewFromFloat(value).StringFixed(2)
}

func countValue(value float64) string {
	if !mathutil.IsFinite(value) {
		return format.NotANumber
	}
	return strconv.FormatInt(decimal.NewFromFloat(value).Round(0).IntPart(), 10)
}

func prettyValue(kind Kind, value float64, text string, f *format.Formatter) string {
	switch kind {
	case KindPercent:
		return percentValue(value) + "%"
	case KindCount:
		return countValue(value)
	case KindText:
		return text
	default:
		return f.Currency(value)
	}
}

func csvValue(kind Kind, value float64, text string) string {
	switch kind {
	case KindPercent:
		return percentValue(value)
	case KindCount:
		return countValue(value)
	case KindText:
		return text
	default:
		return format.Plain(value)
	}
}

// CsvFormat outputs in comma-separated value format. A report with a table writes
// the table; otherwise it writes one "field,value" row per summary line.
func CsvFormat(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)

	if report.Table != nil && len(report.Table.Columns) > 0 {
		header := make([]string, len(report.Table.Columns))
		for i, col := range report.Table.Columns {
			header[i] = col.Name
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		for r, row := range report.Table.Rows {
			record := make([]string, len(report.Table.Columns))
			for i, col := range report.Table.Columns {
				if i < len(row) {
					record[i] = csvValue(col.Kind, row[i], "")
				}
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("writing row %d: %w", r+2, err)
			}
		}
	} else {
		if err := cw.Write([]string{"field", "value"}); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		for i, field := range report.Fields {
			if err := cw.Write([]string{field.Label, csvValue(field.Kind, field.Value, field.Text)}); err != nil {
				return fmt.Errorf("writing row %d: %w", i+2, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
