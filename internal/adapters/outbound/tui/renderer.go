package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dfguard/dfguard/internal/domain"
	"github.com/dfguard/dfguard/internal/domain/stats"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	statusColors = map[domain.Status]lipgloss.Color{
		domain.StatusOK:      success,
		domain.StatusWarning: warning,
		domain.StatusError:   danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderOptions carries context that is shown but not part of the report.
type RenderOptions struct {
	// Revision is the commit of the repository holding the dataset, if any.
	Revision string
}

// RenderReport formats a validation report for the terminal.
func RenderReport(report *domain.ValidationReport, opts RenderOptions) string {
	var b strings.Builder
	p := report.Profile()

	// ── Header ──
	source := "in-memory table"
	if p != nil && p.Path != "" {
		source = p.Path
	}
	lines := []string{
		headerStyle.Render("dfguard"),
		dimStyle.Render("Data Validation Report"),
		"",
		fileStyle.Render(source),
	}
	if opts.Revision != "" {
		lines = append(lines, faintStyle.Render("@ "+shortHash(opts.Revision)))
	}
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if p != nil {
		renderSummary(&b, p)
	}
	for _, c := range []domain.Category{domain.CategoryStructural, domain.CategoryQuality} {
		renderChecks(&b, c, report.Results(c), p)
	}
	renderNumeric(&b, report)

	b.WriteString("\n  " + separatorLine + "\n\n")
	b.WriteString("  " + statusLabel(report.Status()) + "\n")
	return b.String()
}

func renderSummary(b *strings.Builder, p *domain.Profile) {
	types := p.TypeBreakdown()
	b.WriteString("\n  " + titleStyle.Render("Data Summary") + "\n")
	fmt.Fprintf(b, "    %s %d\n", dimStyle.Render("Rows:    │"), p.RowCount)
	fmt.Fprintf(b, "    %s %d\n", dimStyle.Render("Columns: │"), p.ColumnCount)
	if len(p.ColumnNames) > 0 {
		fmt.Fprintf(b, "    %s %s\n", dimStyle.Render("Names:   │"), strings.Join(p.ColumnNames, ", "))
	}
	fmt.Fprintf(b, "    %s %d text, %d numeric, %d other\n", dimStyle.Render("Types:   │"),
		types[domain.ClassText], types[domain.ClassNumeric], types[domain.ClassOther])
}

func renderChecks(b *strings.Builder, c domain.Category, results []domain.ValidationResult, p *domain.Profile) {
	b.WriteString("\n  " + titleStyle.Render(categoryTitles[c]+" Checks") + "\n")

	warned := false
	for _, r := range results {
		warned = warned || r.Warning
		fmt.Fprintf(b, "    %s %s\n", resultSymbol(r), r.Message)
		for _, line := range formatDetails(r.Details, p) {
			fmt.Fprintf(b, "      %s %s\n", faintStyle.Render("-"), dimStyle.Render(line))
		}
	}
	if !warned {
		fmt.Fprintf(b, "    %s No %s issues detected\n", passStyle.Render("✓"), strings.ToLower(categoryTitles[c]))
	}
}

func resultSymbol(r domain.ValidationResult) string {
	switch {
	case r.Failed:
		return failStyle.Render("✗")
	case r.Warning:
		return warnStyle.Render("⚠")
	default:
		return passStyle.Render("✓")
	}
}

func renderNumeric(b *strings.Builder, report *domain.ValidationReport) {
	b.WriteString("\n  " + titleStyle.Render("Numeric Distribution") + "\n")

	p := report.Profile()
	if p == nil || p.Table == nil || len(p.NumericStats) == 0 {
		b.WriteString("    " + dimStyle.Render("(no numeric columns)") + "\n")
		return
	}

	outliers := outlierCounts(report.Numeric())
	for _, name := range p.ColumnNames {
		st, ok := p.NumericStats[name]
		if !ok {
			continue
		}
		col, ok := p.Table.Column(name)
		if !ok {
			continue
		}
		sorted := stats.Sorted(col.Floats())
		if len(sorted) == 0 {
			continue
		}
		median := stats.Median(sorted)
		fences := stats.TukeyFences(sorted)

		var parts []string
		if o, ok := outliers[name]; ok && o.count > 0 {
			parts = append(parts, fmt.Sprintf("%d outliers (%s)", o.count, formatRatio(o.ratio)))
		}
		skewed := median != 0 && st.Mean > 2*median
		if skewed {
			parts = append(parts, "suspicious distribution")
		}

		suffix := ""
		if len(parts) > 0 {
			suffix = " " + warnStyle.Render("⚠ "+strings.Join(parts, " · "))
		}
		fmt.Fprintf(b, "    • %s: [%s → %s], median %s%s\n",
			name, formatNumber(st.Min), formatNumber(st.Max), formatNumber(median), suffix)
		if skewed {
			fmt.Fprintf(b, "      %s\n", dimStyle.Render(fmt.Sprintf("- mean %.2f >> median %.2f", st.Mean, median)))
		}
		fmt.Fprintf(b, "      %s\n", dimStyle.Render(fmt.Sprintf("- IQR [%.2f → %.2f]", fences.Q1, fences.Q3)))
	}
}

type outlierInfo struct {
	count int64
	ratio float64
}

func outlierCounts(results []domain.ValidationResult) map[string]outlierInfo {
	out := make(map[string]outlierInfo)
	for _, r := range results {
		cols, ok := r.Details["columns"].(domain.Details)
		if !ok {
			continue
		}
		for name, v := range cols {
			info, ok := v.(domain.Details)
			if !ok {
				continue
			}
			count, _ := info["count"].(int64)
			ratio, _ := info["ratio"].(float64)
			out[name] = outlierInfo{count: count, ratio: ratio}
		}
	}
	return out
}

// formatDetails flattens details into display lines. Floats are ratios and
// print as percentages. Column keys follow the dataset's column order.
func formatDetails(d domain.Details, p *domain.Profile) []string {
	if cols, ok := d["columns"].(domain.Details); ok {
		var lines []string
		for _, name := range orderedKeys(cols, p) {
			info, _ := cols[name].(domain.Details)
			count, _ := info["count"].(int64)
			ratio, _ := info["ratio"].(float64)
			lines = append(lines, fmt.Sprintf("%s: count=%d, ratio=%s", name, count, formatRatio(ratio)))
		}
		return lines
	}

	lines := make([]string, 0, len(d))
	for _, k := range orderedKeys(d, p) {
		switch v := d[k].(type) {
		case float64:
			lines = append(lines, fmt.Sprintf("%s: %s", k, formatRatio(v)))
		default:
			lines = append(lines, fmt.Sprintf("%s: %v", k, v))
		}
	}
	return lines
}

func orderedKeys(d domain.Details, p *domain.Profile) []string {
	keys := make([]string, 0, len(d))
	seen := make(map[string]bool, len(d))
	if p != nil {
		for _, name := range p.ColumnNames {
			if _, ok := d[name]; ok {
				keys = append(keys, name)
				seen[name] = true
			}
		}
	}
	var rest []string
	for k := range d {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func statusLabel(s domain.Status) string {
	color, ok := statusColors[s]
	if !ok {
		color = fg
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).
		Render("Status: " + strings.ToUpper(string(s)))
}

func formatRatio(r float64) string {
	return fmt.Sprintf("%.2f%%", r*100)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
