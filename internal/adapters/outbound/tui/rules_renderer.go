package tui

import (
	"fmt"
	"strings"

	"github.com/dfguard/dfguard/internal/domain"
)

var categoryTitles = map[domain.Category]string{
	domain.CategoryStructural: "Structural",
	domain.CategoryQuality:    "Quality",
	domain.CategoryNumeric:    "Numeric",
}

// RenderRules lists registered rules grouped by category, in execution order.
func RenderRules(byCategory map[domain.Category][]domain.Rule) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, c := range domain.Categories {
		rules := byCategory[c]
		fmt.Fprintf(&b, "  %s %s\n",
			titleStyle.Render(categoryTitles[c]),
			dimStyle.Render(fmt.Sprintf("(%d)", len(rules))),
		)
		if len(rules) == 0 {
			b.WriteString("    " + faintStyle.Render("none") + "\n")
		}
		for i, r := range rules {
			fmt.Fprintf(&b, "    %s %s\n", faintStyle.Render(fmt.Sprintf("%d.", i+1)), r.Name())
		}
		b.WriteString("\n")
	}
	return b.String()
}
