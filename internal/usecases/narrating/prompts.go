package narrating

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/pkg/utils"
)

// maxTableRows limita a tabela enviada ao modelo aos meses mais recentes
const maxTableRows = 24

// Colunas sempre presentes na tabela da explicação de uma métrica
var contextColumns = []string{
	domain.ColumnMRRTotal,
	domain.ColumnNetNewMRR,
	domain.ColumnNewMRR,
	domain.ColumnExpansionMRR,
	domain.ColumnContractionMRR,
	domain.ColumnChurnMRR,
}

const analystPreamble = `You are a SaaS finance analyst. Use ONLY the provided data.
Do not invent causes or assumptions (no marketing, pricing, product changes, etc.).
If asked "why", explain that the dataset does not contain causal drivers.`

// BuildMetricPrompt monta o prompt de explicação de uma métrica sobre a janela informada.
// A janela deve estar em ordem cronológica e não pode ser vazia.
func BuildMetricPrompt(window []domain.MonthlyPortfolioMetrics, label, column, question string) (string, error) {
	if len(window) == 0 {
		return "", domain.NewEmptyDatasetError("metric prompt window")
	}
	if _, ok := LabelFor(column); !ok {
		return "", domain.NewDataValidationError(domain.ErrUnknownMetric, "column", 0, "", column)
	}

	first, last := window[0], window[len(window)-1]
	startVal, _ := first.MetricValue(column)
	endVal, _ := last.MetricValue(column)
	delta := endVal - startVal

	changeLine := formatValue(column, delta)
	if pct, ok := utils.PercentChange(startVal, endVal); ok {
		changeLine = fmt.Sprintf("%s (%s%%)", changeLine, strconv.FormatFloat(pct, 'f', -1, 64))
	}

	biggestMonth, biggestVal := biggestMonthOverMonth(window, column)

	columns := []string{domain.ColumnMonth, column}
	for _, extra := range contextColumns {
		if extra != column {
			columns = append(columns, extra)
		}
	}

	var b strings.Builder
	b.WriteString(analystPreamble)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Metric to explain: %s (%s)\n", label, column)
	fmt.Fprintf(&b, "Time window: %s to %s\n\n", first.Month, last.Month)
	b.WriteString("Facts (computed from the data):\n")
	fmt.Fprintf(&b, "- Start value: %s\n", formatValue(column, startVal))
	fmt.Fprintf(&b, "- End value: %s\n", formatValue(column, endVal))
	fmt.Fprintf(&b, "- Change over window: %s\n", changeLine)
	fmt.Fprintf(&b, "- Biggest MoM change: %s in %s\n\n", formatValue(column, biggestVal), biggestMonth)
	b.WriteString("Data table:\n")
	b.WriteString(markdownTable(window, columns))
	b.WriteString(questionBlock(question))
	b.WriteString(`
Write 5-10 bullet points:
- Trend summary
- Notable spikes/drops (month + magnitude)
- Relationship to Net New MRR / Churn MRR when relevant
- Keep it plain language for a finance stakeholder

Formatting rules:
- Use Markdown.
- Use '-' for bullets.
- Do NOT use underscores for emphasis.
- If you mention column names, wrap them in backticks (example: ` + "`net_new_mrr`" + `).
- Keep spaces between numbers and units (example: 1.54 M).`)

	return strings.TrimSpace(b.String()), nil
}

// BuildExecutiveSummaryPrompt monta o prompt do resumo executivo com todas as métricas da janela
func BuildExecutiveSummaryPrompt(window []domain.MonthlyPortfolioMetrics, question string) (string, error) {
	if len(window) == 0 {
		return "", domain.NewEmptyDatasetError("executive summary window")
	}

	first, last := window[0], window[len(window)-1]
	columns := append([]string{domain.ColumnMonth}, domain.MetricColumns...)

	var b strings.Builder
	b.WriteString(analystPreamble)
	b.WriteString(`

Formatting rules (must follow):
- Output ONLY Markdown bullet points using '- '.
- Do NOT use headings (no '#', '##', etc.).
- Do NOT use numbered lists.
- Do NOT use code blocks (no triple backticks).
- Do NOT repeat the same section twice.
- If you mention column names, wrap them in backticks (example: ` + "`net_new_mrr`" + `).

`)
	fmt.Fprintf(&b, "Task: Write an executive summary of business performance from %s to %s.\n", first.Month, last.Month)
	b.WriteString(`Focus on:
- Overall MRR trend (start, end, change)
- What drove Net New MRR (New vs Expansion vs Churn vs Contraction)
- Any notable spikes/drops (month + magnitude)
- Active customers trend and revenue churn rate trend (if meaningful)

`)
	b.WriteString("Data table:\n")
	b.WriteString(markdownTable(window, columns))
	b.WriteString(questionBlock(question))
	b.WriteString(`
Output:
- 8-12 bullet points
- Then a short "Top 3 takeaways" section`)

	return strings.TrimSpace(b.String()), nil
}

func questionBlock(question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return "\n"
	}
	return fmt.Sprintf("\nUser question: %s\n\n", question)
}

// biggestMonthOverMonth retorna o mês com a maior variação absoluta contra o mês anterior.
// Em empate vale o primeiro; janela de um mês retorna "N/A".
func biggestMonthOverMonth(window []domain.MonthlyPortfolioMetrics, column string) (string, float64) {
	month, value := "N/A", 0.0
	best := -1.0

	for i := 1; i < len(window); i++ {
		prev, _ := window[i-1].MetricValue(column)
		curr, _ := window[i].MetricValue(column)
		diff := curr - prev
		if math.Abs(diff) > best {
			best = math.Abs(diff)
			month, value = window[i].Month.String(), diff
		}
	}

	return month, value
}

// markdownTable renderiza as últimas maxTableRows linhas como tabela markdown
func markdownTable(window []domain.MonthlyPortfolioMetrics, columns []string) string {
	rows := window
	if len(rows) > maxTableRows {
		rows = rows[len(rows)-maxTableRows:]
	}

	var b strings.Builder
	b.WriteString("| " + strings.Join(columns, " | ") + " |\n")

	align := make([]string, len(columns))
	for i, col := range columns {
		if col == domain.ColumnMonth {
			align[i] = ":---"
		} else {
			align[i] = "---:"
		}
	}
	b.WriteString("|" + strings.Join(align, "|") + "|\n")

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = cell(row, col)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return b.String()
}

func cell(row domain.MonthlyPortfolioMetrics, column string) string {
	if column == domain.ColumnMonth {
		return row.Month.String()
	}
	v, _ := row.MetricValue(column)
	return formatValue(column, v)
}

func formatValue(column string, v float64) string {
	switch column {
	case domain.ColumnRevenueChurnRate:
		return strconv.FormatFloat(math.Round(v*10000)/10000, 'f', -1, 64)
	case domain.ColumnActiveCustomers:
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(v), 'f', 2, 64)
}
