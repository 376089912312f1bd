package report

import (
	"io"

	"github.com/cmpeavlerjr72/boat-ride-app/internal/model"
)

// Writer defines the interface for report output.
// Implementations write scored trips in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs a single scored trip to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(trip *model.Trip) (int, error)

	// WriteAll outputs multiple scored trips, as produced by scoring
	// every saved route at once.
	WriteAll(trips []*model.Trip) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write trips, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the trip to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(trip *model.Trip) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(trip)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAll outputs the trips to all configured Writers.
func (m *MultiWriter) WriteAll(trips []*model.Trip) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteAll(trips)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// metersPerNauticalMile converts route distances to the unit boaters
// actually navigate in.
const metersPerNauticalMile = 1852.0
