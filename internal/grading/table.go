package grading

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"excelinterviewer/mock-interviewer/internal/models"
)

var tableColumns = []string{"Region", "Sales"}

const (
	missingColumnsScore = 1.0
	rowCountScore       = 1.5
)

type tableEvaluator struct {
	dataset *Dataset
}

func NewTableEvaluator(dataset *Dataset) Evaluator {
	return &tableEvaluator{dataset: dataset}
}

func (e *tableEvaluator) Evaluate(_ context.Context, q models.Question, answer Answer) (Result, error) {
	expected, err := e.dataset.Table(q.EvalKey)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute expected table: %w", err)
	}

	if missing := missingColumns(answer.Table); len(missing) > 0 {
		return Result{
			Score: math.Min(missingColumnsScore, q.MaxScore),
			Feedback: fmt.Sprintf("Missing columns: [%s]. Expected: [%s].",
				strings.Join(missing, ", "), strings.Join(tableColumns, ", ")),
		}, nil
	}

	want := normalizeTable(expected)
	got := normalizeTable(parseAnswerTable(answer.Table))

	if len(got) != len(want) {
		return Result{
			Score:    math.Min(rowCountScore, q.MaxScore),
			Feedback: fmt.Sprintf("Row count mismatch: expected %d, got %d.", len(want), len(got)),
		}, nil
	}

	for i := range want {
		if !sameRow(want[i], got[i]) {
			return Result{
				Score: math.Min(partialCredit, q.MaxScore),
				Feedback: fmt.Sprintf("Table differs near row %d. Expected %s, got %s.",
					i+1, formatRow(want[i]), formatRow(got[i])),
			}, nil
		}
	}

	return Result{Score: q.MaxScore, Feedback: "Correct table.", Passed: true}, nil
}

func missingColumns(rows []map[string]any) []string {
	present := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			present[col] = true
		}
	}

	var missing []string
	for _, col := range tableColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

func parseAnswerTable(rows []map[string]any) []RegionSales {
	out := make([]RegionSales, 0, len(rows))
	for _, row := range rows {
		var region string
		if v, ok := row["Region"]; ok && v != nil {
			region = fmt.Sprint(v)
		}
		out = append(out, RegionSales{Region: region, Sales: toNumber(row["Sales"])})
	}
	return out
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// normalizeTable rounds Sales to cents and orders rows by Sales descending,
// then Region ascending. Unparseable sales sort last.
func normalizeTable(rows []RegionSales) []RegionSales {
	out := make([]RegionSales, len(rows))
	for i, r := range rows {
		out[i] = RegionSales{Region: r.Region, Sales: round2(r.Sales)}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		aNaN, bNaN := math.IsNaN(a.Sales), math.IsNaN(b.Sales)
		if aNaN != bNaN {
			return bNaN
		}
		if !aNaN && a.Sales != b.Sales {
			return a.Sales > b.Sales
		}
		return a.Region < b.Region
	})
	return out
}

func sameRow(a, b RegionSales) bool {
	if a.Region != b.Region {
		return false
	}
	if math.IsNaN(a.Sales) || math.IsNaN(b.Sales) {
		return math.IsNaN(a.Sales) && math.IsNaN(b.Sales)
	}
	return math.Abs(a.Sales-b.Sales) < 1e-9
}

func formatRow(r RegionSales) string {
	return fmt.Sprintf("{Region: %s, Sales: %s}", r.Region, formatNumber(r.Sales))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
