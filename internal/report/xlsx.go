package report

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// Sheet names written by WriteXLSX, in order.
const (
	SheetSummary         = "Summary"
	SheetGaps            = "Gaps"
	SheetRisks           = "Risks"
	SheetBenchmark       = "Benchmark"
	SheetRecommendations = "Recommendations"
)

// WriteXLSX writes r as a workbook with one sheet per report area.
func WriteXLSX(w io.Writer, r *model.Report) error {
	f := xlsx.NewFile()

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetSummary, summaryRows(r)},
		{SheetGaps, gapRows(r.Gaps)},
		{SheetRisks, riskRows(r)},
		{SheetBenchmark, benchmarkRows(r.Benchmarks)},
		{SheetRecommendations, recommendationRows(r.Recommendations)},
	}
	for _, s := range sheets {
		sheet, err := f.AddSheet(s.name)
		if err != nil {
			return eris.Wrapf(err, "xlsx: add sheet %s", s.name)
		}
		for _, values := range s.rows {
			writeRow(sheet.AddRow(), values)
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}

func writeRow(row *xlsx.Row, values []any) {
	for _, v := range values {
		cell := row.AddCell()
		switch x := v.(type) {
		case int:
			cell.SetInt(x)
		case float64:
			cell.SetFloat(x)
		case string:
			cell.SetString(x)
		default:
			cell.SetValue(x)
		}
	}
}

func summaryRows(r *model.Report) [][]any {
	m := r.Maturity
	rows := [][]any{
		{"Field", "Value"},
		{"Report ID", r.ID},
		{"Company", r.Company},
		{"Industry", r.Industry},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Overall", m.Overall},
		{"Maturity Level", m.MaturityLevel()},
	}
	for _, d := range model.Dimensions {
		rows = append(rows, []any{titleCase.String(string(d)), m.Get(d)})
	}
	for _, f := range r.Compliance {
		rows = append(rows, []any{f.Standard, f.Status})
	}
	return append(rows,
		[]any{"Input Tokens", int(r.Usage.InputTokens)},
		[]any{"Output Tokens", int(r.Usage.OutputTokens)},
		[]any{"Estimated Cost (USD)", r.Usage.Cost},
	)
}

func gapRows(gaps []model.Gap) [][]any {
	rows := [][]any{{"Severity", "Category", "Description", "Score", "Threshold"}}
	for _, g := range gaps {
		row := []any{string(g.Severity), g.Category, g.Description, "", ""}
		if g.Score != nil {
			row[3] = *g.Score
		}
		if g.Threshold != nil {
			row[4] = *g.Threshold
		}
		rows = append(rows, row)
	}
	return rows
}

func riskRows(r *model.Report) [][]any {
	quantified := make(map[string]model.QuantifiedRisk, len(r.QuantifiedRisks))
	for _, q := range r.QuantifiedRisks {
		quantified[q.Risk] = q
	}

	rows := [][]any{{"ID", "Risk", "Impact", "Likelihood", "Level", "Mitigation", "SLE", "ARO", "ALE", "Mitigation Cost", "ROI %"}}
	for _, rk := range r.Risks {
		q := quantified[rk.Risk]
		rows = append(rows, []any{rk.ID, rk.Risk, rk.Impact, rk.Likelihood, rk.Level, rk.Mitigation, q.SLE, q.ARO, q.ALE, q.MitigationCost, q.ROI})
	}
	return rows
}

func benchmarkRows(b model.BenchmarkResult) [][]any {
	rows := [][]any{
		{"Metric", "Yours", "Industry", "Status"},
		{"Score", b.YourScore, b.IndustryAverage, b.Comparison},
		{"Percentile", b.Percentile, "", b.PercentileLabel},
		{"Budget (USD)", b.YourBudget, b.ExpectedBudget, b.BudgetStatus},
		{"Team (FTE)", b.YourTeamSize, b.ExpectedTeamSize, b.TeamStatus},
		{"Incidents", b.YourIncidents, b.IndustryAverageIncidents, b.IncidentStatus},
	}
	for _, cg := range b.CertificationGaps {
		rows = append(rows, []any{"Certification " + cg.Certification, "missing", cg.IndustryRate, cg.Message})
	}
	return rows
}

func recommendationRows(recs []model.Recommendation) [][]any {
	rows := [][]any{{"ID", "Priority", "Category", "Title", "Business Impact", "Min Cost", "Max Cost", "Timeline", "Steps"}}
	for _, rec := range recs {
		rows = append(rows, []any{
			rec.ID, rec.Priority, rec.Category, rec.Title, rec.BusinessImpact,
			rec.EstimatedCost.Min, rec.EstimatedCost.Max, rec.Timeline,
			strings.Join(rec.Steps, "\n"),
		})
	}
	return rows
}
