package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/fundboard/internal/model"
)

// JSONWriter outputs listings in JSON format for tool integration.
// Amounts are raw numbers; no locale formatting is applied.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONListing is the document written by JSONWriter.
type JSONListing struct {
	// Query is the sort and filter state that produced the listing.
	Query model.Query `json:"query"`

	// Campaigns is the display sequence.
	Campaigns []model.Campaign `json:"campaigns"`

	// Summary holds counts and totals for the shown campaigns.
	Summary JSONSummary `json:"summary"`
}

// JSONSummary extends model.Summary with dataset-level counts.
type JSONSummary struct {
	model.Summary

	// Total is the number of campaigns before filtering.
	Total int `json:"total"`

	// Hidden is the number of fully funded campaigns filtered out.
	Hidden int `json:"hidden"`
}

// NewJSONListing builds the JSON document for listing.
// Campaigns is never null so consumers can always iterate it.
func NewJSONListing(listing *model.Listing) *JSONListing {
	campaigns := listing.Campaigns
	if campaigns == nil {
		campaigns = []model.Campaign{}
	}
	return &JSONListing{
		Query:     listing.Query,
		Campaigns: campaigns,
		Summary: JSONSummary{
			Summary: listing.Summary(),
			Total:   listing.Total,
			Hidden:  listing.Hidden,
		},
	}
}

// Write outputs the listing in JSON format.
func (w *JSONWriter) Write(listing *model.Listing) (int, error) {
	return w.writeJSON(NewJSONListing(listing))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
