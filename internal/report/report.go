package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/username/workday-analyzer/internal/analyzer"
	"github.com/username/workday-analyzer/pkg/dateutil"
)

const (
	headerWidth  = 50
	maxDates     = 10 // dates shown per category before truncating
	maxBreakdown = 5  // dates shown per distance bucket
)

// Renderer writes an analysis report as plain text. The writer is injected
// so tests can capture output.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a new Renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes the full report: one section per category, the elsewhere
// distance breakdown when present, and the totals footer.
func (r *Renderer) Render(rep *analyzer.Report) {
	rule := strings.Repeat("=", headerWidth)

	fmt.Fprintf(r.w, "\n%s\n", rule)
	fmt.Fprintf(r.w, "%s\n", centered(fmt.Sprintf("Working Day Analysis %d", rep.Year), headerWidth))
	fmt.Fprintf(r.w, "%s\n\n", rule)

	r.section(color.New(color.FgGreen), "Office days", rep.Office)
	r.section(color.New(color.FgCyan), "Home days", rep.Home)
	r.elsewhereSection(rep)
	r.section(color.New(color.FgYellow), "Missing data days", rep.Missing)

	fmt.Fprintf(r.w, "%s\n", rule)
	fmt.Fprintf(r.w, "Expected working days:  %d\n", rep.ExpectedWorkingDays)
	fmt.Fprintf(r.w, "Days with data:         %d\n", rep.DaysWithData)
	fmt.Fprintf(r.w, "Days missing data:      %d\n", len(rep.Missing))
	if rep.Stats != nil {
		fmt.Fprintf(r.w, "Segments processed:     %d\n", rep.Stats.Processed)
		if rep.Stats.SkippedOtherYear > 0 {
			fmt.Fprintf(r.w, "Segments other years:   %d\n", rep.Stats.SkippedOtherYear)
		}
		if rep.Stats.SkippedRecords > 0 {
			fmt.Fprintf(r.w, "Records skipped:        %d\n", rep.Stats.SkippedRecords)
		}
	}
	fmt.Fprintf(r.w, "%s\n\n", rule)
}

// section renders one category heading with its count and truncated date list
func (r *Renderer) section(heading *color.Color, title string, dates []dateutil.Date) {
	fmt.Fprintf(r.w, "%s: %d\n", heading.Sprint(title), len(dates))
	r.dateList("   ", dates, maxDates)
	fmt.Fprintln(r.w)
}

// elsewhereSection renders the elsewhere category plus its distance breakdown
func (r *Renderer) elsewhereSection(rep *analyzer.Report) {
	heading := color.New(color.FgMagenta)
	fmt.Fprintf(r.w, "%s: %d\n", heading.Sprint("Elsewhere days"), len(rep.Elsewhere))

	buckets := []struct {
		label string
		dates []dateutil.Date
	}{
		{"Local (< 50km)", rep.Breakdown.Local},
		{"Regional (50-150km)", rep.Breakdown.Regional},
		{"National (150-500km)", rep.Breakdown.National},
		{"International (500km+)", rep.Breakdown.International},
	}

	hasBreakdown := false
	for _, b := range buckets {
		if len(b.dates) == 0 {
			continue
		}
		hasBreakdown = true
		fmt.Fprintf(r.w, "   %s: %d days\n", b.label, len(b.dates))
		r.dateList("      ", b.dates, maxBreakdown)
	}

	if !hasBreakdown {
		r.dateList("   ", rep.Elsewhere, maxDates)
	}
	fmt.Fprintln(r.w)
}

// dateList prints up to limit dates on one indented line, noting how many
// were omitted.
func (r *Renderer) dateList(indent string, dates []dateutil.Date, limit int) {
	if len(dates) == 0 {
		return
	}

	shown := dates
	if len(shown) > limit {
		shown = shown[:limit]
	}

	formatted := make([]string, len(shown))
	for i, d := range shown {
		formatted[i] = d.String()
	}

	fmt.Fprintf(r.w, "%s%s\n", indent, strings.Join(formatted, ", "))
	if omitted := len(dates) - len(shown); omitted > 0 {
		fmt.Fprintf(r.w, "%s... and %d more\n", indent, omitted)
	}
}

// centered pads s to be horizontally centered within width
func centered(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
