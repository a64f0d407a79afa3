package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/fundboard/internal/model"
)

// MarkdownWriter outputs listings in Markdown format for sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...Option) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output, opts...),
	}
}

// Write outputs the listing in Markdown format.
func (w *MarkdownWriter) Write(listing *model.Listing) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, listing)
	w.writeCampaigns(md, listing)
	w.writeSummary(md, listing)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the query table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, listing *model.Listing) {
	md.H1(w.title)
	md.PlainText("")

	q := listing.Query
	funded := "hidden (" + strconv.Itoa(listing.Hidden) + ")"
	if q.IncludeFunded {
		funded = "shown"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Sort", q.Key.Label() + " (" + q.Direction.Label() + ")"},
			{"Fully funded", funded},
			{"Campaigns", strconv.Itoa(len(listing.Campaigns)) + " of " + strconv.Itoa(listing.Total)},
		},
	})
	md.PlainText("")
}

// writeCampaigns writes the campaign table in display order.
func (w *MarkdownWriter) writeCampaigns(md *markdown.Markdown, listing *model.Listing) {
	md.H2("Campaigns")
	md.PlainText("")

	if listing.IsEmpty() {
		md.PlainText("No campaigns to display.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(listing.Campaigns))
	for i, c := range listing.Campaigns {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			markdown.Link(c.Title, c.URL),
			w.money.Currency(c.AmountRaised),
			w.money.Currency(c.Goal),
			w.money.Number(c.DifferenceFromGoal),
			w.money.Percent(c.Progress()),
			fundedLabel(c),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Campaign", "Raised", "Goal", "Difference from Goal", "Progress", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSummary writes totals, the pie chart and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, listing *model.Listing) {
	s := listing.Summary()

	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total raised", w.money.Currency(s.TotalRaised)},
			{"Total goal", w.money.Currency(s.TotalGoal)},
			{"Fully funded", strconv.Itoa(s.FundedCount)},
			{"Hidden", strconv.Itoa(listing.Hidden)},
		},
	})
	md.PlainText("")

	if s.Count > 0 {
		w.writePieChart(md, s)
	}

	w.writeAlert(md, listing, s)
}

// writePieChart writes a mermaid pie chart of funded versus open campaigns.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Funding Status"),
		piechart.WithShowData(true),
	)

	if s.FundedCount > 0 {
		chart.LabelAndIntValue("Fully funded", uint64(s.FundedCount))
	}
	if open := s.Count - s.FundedCount; open > 0 {
		chart.LabelAndIntValue("Open", uint64(open))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes a note when the listing needs explaining.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, listing *model.Listing, s model.Summary) {
	switch {
	case listing.Total == 0:
		md.Note("The dataset contains no campaigns.")
	case s.Count == 0:
		md.Importantf("Every campaign has met its goal. %d fully funded campaign(s) are hidden.", listing.Hidden)
	case s.FundedCount == s.Count:
		md.Tip("Every campaign shown has met its goal.")
	default:
		return
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [fundboard](https://github.com/nao1215/fundboard)*")
}
