package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/fundboard/internal/model"
)

// reportWidth is the width of the rules in the text report.
const reportWidth = 60

// SimpleWriter outputs a human-readable text listing.
// Plain ASCII without colors so the output can be piped to files.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...Option) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output, opts...),
	}
}

// Write outputs the listing in human-readable format.
func (w *SimpleWriter) Write(listing *model.Listing) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, listing)
	w.writeCampaigns(&sb, listing)
	w.writeFooter(&sb, listing)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the title and the active query.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, listing *model.Listing) {
	sb.WriteString(strings.Repeat("=", reportWidth))
	sb.WriteString("\n")
	heading := strings.ToUpper(w.title)
	sb.WriteString(strings.Repeat(" ", max(0, (reportWidth-utf8.RuneCountInString(heading))/2)))
	sb.WriteString(heading)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", reportWidth))
	sb.WriteString("\n\n")

	q := listing.Query
	fmt.Fprintf(sb, "Sorted by:     %s (%s)\n", q.Key.Label(), q.Direction.Label())
	if q.IncludeFunded {
		sb.WriteString("Fully funded:  shown\n")
	} else {
		fmt.Fprintf(sb, "Fully funded:  hidden (%d)\n", listing.Hidden)
	}
	sb.WriteString("\n")
}

// writeCampaigns writes one block per campaign.
func (w *SimpleWriter) writeCampaigns(sb *strings.Builder, listing *model.Listing) {
	if listing.IsEmpty() {
		sb.WriteString("No campaigns to display.\n\n")
		return
	}

	for i, c := range listing.Campaigns {
		fmt.Fprintf(sb, "%d. %s\n", i+1, c.Title)
		fmt.Fprintf(sb, "   Raised: %s (Goal: %s)\n", w.money.Currency(c.AmountRaised), w.money.Currency(c.Goal))
		fmt.Fprintf(sb, "   Difference from Goal: %s\n", w.money.Number(c.DifferenceFromGoal))
		fmt.Fprintf(sb, "   Progress: %s  %s\n", w.money.Percent(c.Progress()), fundedLabel(c))
		fmt.Fprintf(sb, "   %s\n", c.URL)
		sb.WriteString("\n")
	}
}

// writeFooter writes the totals.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, listing *model.Listing) {
	s := listing.Summary()

	sb.WriteString(strings.Repeat("-", reportWidth))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Showing %d of %d campaigns", s.Count, listing.Total)
	if s.FundedCount > 0 {
		fmt.Fprintf(sb, ", %d fully funded", s.FundedCount)
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Total raised:  %s of %s\n", w.money.Currency(s.TotalRaised), w.money.Currency(s.TotalGoal))
}
