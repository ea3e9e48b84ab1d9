package metric

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/chartdraw/pkg/core"
)

// Summary collects descriptive statistics for an indicator series
type Summary struct {
	Name   string
	Count  int // number of non-null values
	Nulls  int // number of null padding values
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Median float64

	values []float64
}

// Describe computes summary statistics over an indicator output series.
// Null padding values are counted but excluded from the statistics.
func Describe(name string, points []core.DataPoint) Summary {
	summary := Summary{Name: name}

	for _, point := range points {
		if point.Value == nil {
			summary.Nulls++
			continue
		}
		summary.values = append(summary.values, *point.Value)
	}

	summary.Count = len(summary.values)
	if summary.Count == 0 {
		return summary
	}

	sorted := make([]float64, summary.Count)
	copy(sorted, summary.values)
	sort.Float64s(sorted)

	summary.Min = sorted[0]
	summary.Max = sorted[summary.Count-1]
	summary.Mean, summary.StdDev = meanStdDev(sorted)
	summary.Median = quantile(0.5, sorted)

	return summary
}

// Values returns the non-null values in series order
func (s Summary) Values() []float64 {
	return s.values
}

// Quantile returns the p-quantile of the non-null values
func (s Summary) Quantile(p float64) float64 {
	if s.Count == 0 {
		return 0
	}

	sorted := make([]float64, s.Count)
	copy(sorted, s.values)
	sort.Float64s(sorted)

	return quantile(p, sorted)
}

// String formats the summary as a text table
func (s Summary) String() string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)

	data := [][]string{
		{"Series", s.Name},
		{"Count", strconv.Itoa(s.Count)},
		{"Nulls", strconv.Itoa(s.Nulls)},
		{"Min", fmt.Sprintf("%.4f", s.Min)},
		{"Max", fmt.Sprintf("%.4f", s.Max)},
		{"Mean", fmt.Sprintf("%.4f", s.Mean)},
		{"Std Dev", fmt.Sprintf("%.4f", s.StdDev)},
		{"Median", fmt.Sprintf("%.4f", s.Median)},
	}

	table.AppendBulk(data)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.Render()

	return tableString.String()
}

// Histogram writes an ASCII histogram of the non-null values
func (s Summary) Histogram(w io.Writer, bins int) error {
	if s.Count == 0 {
		return fmt.Errorf("%w: %s", core.ErrInsufficientData, s.Name)
	}

	hist := histogram.Hist(bins, s.values)
	return histogram.Fprint(w, hist, histogram.Linear(10))
}
