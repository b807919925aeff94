// Package chart renders ASCII bar charts for terminal reports.
package chart

import (
	"fmt"
	"strings"

	"github.com/airport-sim/airport-sim/sim"
)

const chartWidth = 50

// Generator generates ASCII charts.
type Generator struct {
	width int
}

// NewGenerator creates a new chart generator.
func NewGenerator() *Generator {
	return &Generator{width: chartWidth}
}

// UtilizationChart renders one bar per resource, scaled so a full bar is
// 100% utilization. Resources appear in journey order.
func (g *Generator) UtilizationChart(result *sim.Result) string {
	if result == nil || len(result.Utilization) == 0 {
		return "No data to display"
	}

	var sb strings.Builder
	sb.WriteString("\nResource Utilization\n")
	sb.WriteString(strings.Repeat("=", g.width+25))
	sb.WriteString("\n")
	for _, name := range sim.ResourceNames {
		u, ok := result.Utilization[name]
		if !ok {
			continue
		}
		fill := int(u*float64(g.width) + 0.5)
		if fill > g.width {
			fill = g.width
		}
		bar := strings.Repeat("#", fill) + strings.Repeat(" ", g.width-fill)
		sb.WriteString(fmt.Sprintf("%-14s |%s| %6.2f%%\n", name, bar, u*100))
	}
	return sb.String()
}

// MetricChart renders labeled values scaled against their maximum. Used to
// compare one metric across batch or grid experiments.
func (g *Generator) MetricChart(title string, labels []string, values []float64) string {
	if len(labels) == 0 || len(labels) != len(values) {
		return "No data to display"
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}

	var sb strings.Builder
	sb.WriteString("\n" + title + "\n")
	sb.WriteString(strings.Repeat("=", g.width+25))
	sb.WriteString("\n")
	for i, label := range labels {
		fill := 0
		if max > 0 {
			fill = int(values[i]/max*float64(g.width) + 0.5)
		}
		if fill > g.width {
			fill = g.width
		}
		bar := strings.Repeat("#", fill)
		sb.WriteString(fmt.Sprintf("%-14s |%-*s| %.2f\n", label, g.width, bar, values[i]))
	}
	return sb.String()
}
