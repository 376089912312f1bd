package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// MarkdownWriter outputs trips in Markdown format.
// This format is designed for documentation and sharing: trip briefings
// posted to a club wiki or pasted into a group chat.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the trip in Markdown format.
func (w *MarkdownWriter) Write(trip *model.Trip) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, trip)
	w.writeSummary(md, trip)
	w.writeTimeline(md, trip)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteAll outputs each trip as its own section in one document.
func (w *MarkdownWriter) WriteAll(trips []*model.Trip) (int, error) {
	var total int
	for _, trip := range trips {
		n, err := w.Write(trip)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// writeHeader writes the trip header with route and departure information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, trip *model.Trip) {
	name := trip.RouteName
	if name == "" {
		name = "Ad-hoc Route"
	}
	md.H1("Trip Report: " + name)
	md.PlainText("")

	// Basic info table
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Distance", fmt.Sprintf("%.1f nm", trip.DistanceMeters/metersPerNauticalMile)},
			{"Speed", fmt.Sprintf("%.1f kn", trip.SpeedKnots)},
			{"Boat", boatText(trip)},
			{"Departure", trip.Departure.Format("2006-01-02 15:04 MST")},
			{"Arrival", trip.Arrival().Format("2006-01-02 15:04 MST")},
			{"Status", w.getStatusText(trip)},
		},
	})
	md.PlainText("")
}

// boatText returns the boat name or a placeholder.
func boatText(trip *model.Trip) string {
	if trip.Boat.Name == "" {
		return "-"
	}
	return trip.Boat.Name
}

// getStatusText returns the status text based on trip state.
func (w *MarkdownWriter) getStatusText(trip *model.Trip) string {
	if trip.ErrorMessage != "" {
		return "❌ Error - " + trip.ErrorMessage
	}
	if len(trip.Samples) == 0 {
		return "⚠️ Not scored"
	}
	return "✅ Scored"
}

// writeSummary writes the label summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, trip *model.Trip) {
	if len(trip.Samples) == 0 {
		return
	}

	md.H2("Conditions Summary")
	md.PlainText("")

	counts := trip.LabelCounts()

	// Summary table
	md.Table(markdown.TableSet{
		Header: []string{"Label", "Samples"},
		Rows: [][]string{
			{"🟢 Great", strconv.Itoa(counts[model.LabelGreat.String()])},
			{"🟡 OK", strconv.Itoa(counts[model.LabelOK.String()])},
			{"🟠 Rough", strconv.Itoa(counts[model.LabelRough.String()])},
			{"🔴 Avoid", strconv.Itoa(counts[model.LabelAvoid.String()])},
			{"**Average score**", fmt.Sprintf("**%.1f**", trip.AverageScore())},
		},
	})
	md.PlainText("")

	w.writePieChart(md, counts)
	w.writeAlert(md, trip)
}

// writePieChart writes a mermaid pie chart for the label distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts map[string]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Ride Quality Along Route"),
		piechart.WithShowData(true),
	)

	if n := counts[model.LabelGreat.String()]; n > 0 {
		chart.LabelAndIntValue("Great", uint64(n))
	}
	if n := counts[model.LabelOK.String()]; n > 0 {
		chart.LabelAndIntValue("OK", uint64(n))
	}
	if n := counts[model.LabelRough.String()]; n > 0 {
		chart.LabelAndIntValue("Rough", uint64(n))
	}
	if n := counts[model.LabelAvoid.String()]; n > 0 {
		chart.LabelAndIntValue("Avoid", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the worst stretch.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, trip *model.Trip) {
	counts := trip.LabelCounts()
	switch trip.WorstLabel() {
	case model.LabelAvoid:
		md.Cautionf(
			"Dangerous conditions on this route! %d sample(s) are rated avoid.",
			counts[model.LabelAvoid.String()],
		)
	case model.LabelRough:
		md.Warningf(
			"Rough water expected. %d sample(s) are rated rough.",
			counts[model.LabelRough.String()],
		)
	case model.LabelOK:
		md.Note("Conditions are acceptable for most boats along the whole route.")
	case model.LabelGreat:
		md.Tip("Great conditions for the entire trip.")
	}
	md.PlainText("")
}

// writeTimeline writes the per-sample timeline table.
func (w *MarkdownWriter) writeTimeline(md *markdown.Markdown, trip *model.Trip) {
	md.H2("Timeline")
	md.PlainText("")

	if len(trip.Samples) == 0 {
		md.PlainText("No scored samples.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(trip.Samples))
	for i, s := range trip.Samples {
		detail := s.Detail
		if detail == "" {
			detail = "-"
		}
		rows[i] = []string{
			s.ETA.Format("15:04"),
			"`" + s.Point.String() + "`",
			fmt.Sprintf("%.1f", s.Score),
			s.ScoreLabel().String(),
			"`" + s.Color.Hex() + "`",
			truncateString(detail, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"ETA", "Position", "Score", "Label", "Color", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [boatride](https://github.com/cmpeavlerjr72/boat-ride-app)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
