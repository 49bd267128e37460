package criteria

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

// FormatTable renders c as a markdown table.
func FormatTable(c Criteria) string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Field", "Value")
	_ = table.Append("type", c.Type)
	_ = table.Append("style", c.Style)
	_ = table.Append("season", c.Season)
	_ = table.Append("budget", formatBudget(c.Budget))
	_ = table.Append("material", strings.Join(c.Material, ", "))
	_ = table.Append("colors", strings.Join(c.Colors, ", "))
	_ = table.Append("brands", strings.Join(c.Brands, ", "))
	_ = table.Append("occasion", strconv.FormatBool(c.Occasion))
	_ = table.Render()
	return buf.String()
}

func formatBudget(budget []float64) string {
	if len(budget) == 0 {
		return ""
	}
	parts := make([]string, 0, len(budget))
	for _, b := range budget {
		parts = append(parts, strconv.FormatFloat(b, 'f', -1, 64))
	}
	return strings.Join(parts, " - ")
}
