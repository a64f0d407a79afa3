// Package report renders campaign listings for output.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown for sharing, with a mermaid pie chart
//
// Writers implement the Writer interface, so they can be used
// interchangeably and combined with MultiWriter.
package report
