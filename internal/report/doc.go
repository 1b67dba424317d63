// Package report assembles and renders investigation reports.
//
// Build composes the outputs of every component into one immutable
// model.InvestigationReport. Writers then render it:
//   - SimpleWriter: human-readable text with tables for terminal display
//   - JSONWriter: structured JSON for tool integration and the saved report
//   - MarkdownWriter: Markdown with tables, alerts and a mermaid chart
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
