package report

import (
	"io"

	"github.com/nao1215/fundboard/internal/model"
	"github.com/nao1215/fundboard/internal/money"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write renders the listing to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(listing *model.Listing) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the listing to all configured Writers.
// Returns the total bytes written across all writers and stops on the
// first error.
func (m *MultiWriter) Write(listing *model.Listing) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(listing)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Option configures the text and Markdown writers.
type Option func(*baseWriter)

// WithFormatter sets the amount formatter. The default groups amounts for
// US English with a "$" symbol.
func WithFormatter(f *money.Formatter) Option {
	return func(w *baseWriter) {
		if f != nil {
			w.money = f
		}
	}
}

// WithTitle sets the report heading. An empty title keeps DefaultTitle.
func WithTitle(title string) Option {
	return func(w *baseWriter) {
		if title != "" {
			w.title = title
		}
	}
}

// DefaultTitle is the report heading when none is configured.
const DefaultTitle = "Fundraising Campaigns"

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
	money  *money.Formatter
	title  string
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer, opts ...Option) baseWriter {
	w := baseWriter{
		output: output,
		money:  money.NewFormatter(money.DefaultTag),
		title:  DefaultTitle,
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

// fundedLabel is the status shown next to each campaign.
func fundedLabel(c model.Campaign) string {
	if c.FullyFunded() {
		return "Fully funded"
	}
	return "Open"
}
