package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// scoreBarWidth is the width of the per-sample score bar in characters.
// A full bar means a score of 100.
const scoreBarWidth = 20

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display: a trip header, a timeline
// with one line per sampled point, and a label summary.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Hex colors are still printed in verbose mode for map overlays
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output: backend detail
	// strings and the hex display color per sample.
	verbose bool

	// printer formats numbers with locale-aware separators.
	printer *message.Printer
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
		printer:    message.NewPrinter(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the trip in human-readable format.
func (w *SimpleWriter) Write(trip *model.Trip) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, trip)
	w.writeTimeline(&sb, trip)
	w.writeSummary(&sb, trip)

	return w.output.Write([]byte(sb.String()))
}

// WriteAll outputs each trip in turn, separated by blank lines.
func (w *SimpleWriter) WriteAll(trips []*model.Trip) (int, error) {
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
func (w *SimpleWriter) writeHeader(sb *strings.Builder, trip *model.Trip) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	name := trip.RouteName
	if name == "" {
		name = "ad-hoc route"
	}
	sb.WriteString(w.printer.Sprintf("  %s\n", name))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	nm := trip.DistanceMeters / metersPerNauticalMile
	sb.WriteString(w.printer.Sprintf("Distance:   %.1f nm (%.1f km)\n", nm, trip.DistanceMeters/1000))
	sb.WriteString(w.printer.Sprintf("Speed:      %.1f kn\n", trip.SpeedKnots))
	if trip.Boat.Name != "" {
		sb.WriteString(w.printer.Sprintf("Boat:       %s\n", trip.Boat.Name))
	}
	sb.WriteString(w.printer.Sprintf("Departure:  %s\n", trip.Departure.Format("Mon Jan 2 15:04")))
	sb.WriteString(w.printer.Sprintf("Arrival:    %s (%s underway)\n",
		trip.Arrival().Format("Mon Jan 2 15:04"), formatDuration(trip.Duration)))

	if trip.ErrorMessage != "" {
		sb.WriteString(w.printer.Sprintf("Status:     ERROR - %s\n", trip.ErrorMessage))
	}

	sb.WriteString("\n")
}

// writeTimeline writes one line per sampled point: time of day, score bar,
// score, and label.
func (w *SimpleWriter) writeTimeline(sb *strings.Builder, trip *model.Trip) {
	if len(trip.Samples) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("TIMELINE\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, s := range trip.Samples {
		sb.WriteString(w.printer.Sprintf("  %s  [%s] %5.1f  %-5s\n",
			s.ETA.Format("15:04"), scoreBar(s.Score), s.Score, s.ScoreLabel().String()))

		if w.verbose {
			sb.WriteString(w.printer.Sprintf("           at %s  color %s\n", s.Point.String(), s.Color.Hex()))
			if s.Detail != "" {
				sb.WriteString(w.printer.Sprintf("           %s\n", s.Detail))
			}
		}
	}
	sb.WriteString("\n")
}

// writeSummary writes the label summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, trip *model.Trip) {
	if len(trip.Samples) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	counts := trip.LabelCounts()
	sb.WriteString(w.printer.Sprintf("  GREAT: %d   OK: %d   ROUGH: %d   AVOID: %d\n",
		counts[model.LabelGreat.String()],
		counts[model.LabelOK.String()],
		counts[model.LabelRough.String()],
		counts[model.LabelAvoid.String()]))
	sb.WriteString(w.printer.Sprintf("  Average score: %.1f   Worst stretch: %s\n",
		trip.AverageScore(), trip.WorstLabel().String()))
	sb.WriteString("\n")
}

// scoreBar renders a fixed-width ASCII bar for a 0-100 score.
func scoreBar(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := int(score / 100 * scoreBarWidth)
	return strings.Repeat("#", filled) + strings.Repeat(".", scoreBarWidth-filled)
}

// formatDuration renders a duration as "2h05m" or "45m".
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
