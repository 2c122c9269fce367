package check

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// Report holds the outcome of a diagnostic run.
type Report struct {
	Results []Result
}

// RunAll executes the given checks in order.
func RunAll(ctx context.Context, checks []Check) *Report {
	report := &Report{}
	for _, c := range checks {
		result := c.Run(ctx)
		slog.Debug("check finished", "name", result.Name, "passed", result.Passed, "detail", result.Detail)
		report.Results = append(report.Results, result)
	}
	return report
}

// Passed reports whether every check in the report passed.
func (r *Report) Passed() bool {
	for _, result := range r.Results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// Render writes a human-readable report to w.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintln(w, headerStyle.Render("GUI environment diagnostics"))
	fmt.Fprintln(w)

	passed := 0
	for _, result := range r.Results {
		mark := failStyle.Render("✗")
		if result.Passed {
			mark = passStyle.Render("✓")
			passed++
		}
		fmt.Fprintf(w, "%s %s: %s\n", mark, result.Name, result.Detail)
		if !result.Passed && result.Hint != "" {
			fmt.Fprintf(w, "  %s\n", hintStyle.Render("hint: "+result.Hint))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d/%d checks passed\n", passed, len(r.Results))
}
