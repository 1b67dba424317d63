package report

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/mailsleuth/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.InvestigationReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeIdentity(md, report)
	w.writeScores(md, report)
	w.writePlatforms(md, report)
	w.writeDomain(md, report)
	w.writeManualChecks(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with investigation information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.InvestigationReport) {
	md.H1("mailsleuth Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Email", "`" + report.Identity.Email + "`"},
			{"Report ID", report.ID},
			{"Date", report.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Duration", strconv.FormatInt(report.Metadata.DurationMillis, 10) + " ms"},
			{"Tool Version", report.Metadata.ToolVersion},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeIdentity(md *markdown.Markdown, report *model.InvestigationReport) {
	id := report.Identity
	md.H2("Identity")
	md.PlainText("")

	rows := [][]string{
		{"Username", "`" + id.LocalPart + "`"},
		{"Domain", id.Domain},
		{"Name Fragments", orDash(strings.Join(id.NameFragments, ", "))},
		{"Possible Birth Year", orDash(id.PossibleBirthYear)},
	}
	if id.PossibleName != nil {
		rows = append(rows, []string{"Possible Name", id.PossibleName.Full})
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")

	if len(report.NameAnalysis.Patterns) > 0 {
		md.PlainText("**Patterns**")
		md.PlainText("")
		md.BulletList(report.NameAnalysis.Patterns...)
		md.PlainText("")
	}
}

// writeScores writes the four scores and an alert keyed off security risk.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, report *model.InvestigationReport) {
	md.H2("Scores")
	md.PlainText("")

	s := report.Scores
	rows := [][]string{}
	for _, entry := range []struct {
		name  string
		score *model.ScoreResult
	}{
		{"Quality", s.Quality},
		{"Professional", s.Professional},
		{"Security Risk", s.SecurityRisk},
		{"Social Visibility", s.SocialVisibility},
	} {
		if entry.score == nil {
			continue
		}
		rows = append(rows, []string{
			entry.name,
			strconv.Itoa(entry.score.Score),
			entry.score.Level.String(),
			orDash(strings.Join(entry.score.Factors, "; ")),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Score", "Value", "Level", "Factors"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeAlert(md, report)
}

// writeAlert writes an alert based on the security-risk level.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.InvestigationReport) {
	risk := report.Scores.SecurityRisk
	if risk == nil {
		return
	}

	switch risk.Level {
	case model.LevelHigh:
		md.Cautionf("High security risk. %d risk factor(s) detected.", len(risk.Factors))
	case model.LevelMedium:
		md.Warningf("Medium security risk. %d risk factor(s) detected.", len(risk.Factors))
	default:
		if len(risk.Factors) > 0 {
			md.Note("Low security risk.")
		} else {
			md.Tip("No security risk factors detected.")
		}
	}
	md.PlainText("")

	if len(risk.Recommendations) > 0 {
		md.PlainText("**Recommendations**")
		md.PlainText("")
		md.BulletList(risk.Recommendations...)
		md.PlainText("")
	}
}

// writePlatforms writes the probe results and a found/not-found chart.
func (w *MarkdownWriter) writePlatforms(md *markdown.Markdown, report *model.InvestigationReport) {
	md.H2("Platforms")
	md.PlainText("")

	if len(report.Probes) == 0 {
		md.PlainText("No platforms were probed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Probes))
	for i, p := range report.Probes {
		rows[i] = []string{
			p.Platform.DisplayName(),
			foundLabel(p),
			orDash(p.MatchedURL),
			truncateString(orDash(p.PageTitle), 50),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Platform", "Status", "URL", "Title"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, report)

	for _, p := range report.FoundProbes() {
		if details := probeDetails(p); details != "" {
			md.Details(p.Platform.DisplayName(), details)
		}
	}
	md.PlainText("")

	if len(report.GitHubAccounts) > 0 {
		md.PlainText("**GitHub accounts with this public email**")
		md.PlainText("")
		md.BulletList(report.GitHubAccounts...)
		md.PlainText("")
	}
}

// writePieChart writes a mermaid pie chart of the probe outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.InvestigationReport) {
	var found, notFound, failed uint64
	for _, p := range report.Probes {
		switch {
		case p.Found:
			found++
		case p.Error != nil:
			failed++
		default:
			notFound++
		}
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Platform Probe Outcomes"),
		piechart.WithShowData(true),
	)
	if found > 0 {
		chart.LabelAndIntValue("Found", found)
	}
	if notFound > 0 {
		chart.LabelAndIntValue("Not found", notFound)
	}
	if failed > 0 {
		chart.LabelAndIntValue("Error", failed)
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// probeDetails renders extracted fields and content annotations.
func probeDetails(p model.ProbeResult) string {
	var lines []string

	keys := make([]string, 0, len(p.ExtractedFields))
	for k := range p.ExtractedFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, k+": "+p.ExtractedFields[k])
	}

	if p.Sentiment != nil {
		lines = append(lines, "sentiment: "+p.Sentiment.Label+" ("+strconv.FormatFloat(p.Sentiment.Score, 'f', 2, 64)+")")
	}
	if len(p.Keywords) > 0 {
		lines = append(lines, "keywords: "+strings.Join(p.Keywords, ", "))
	}
	if len(p.Entities) > 0 {
		lines = append(lines, "entities: "+strings.Join(p.Entities, ", "))
	}
	for _, l := range p.LinkedProfiles {
		lines = append(lines, "links to "+l.Network+": "+l.URL)
	}
	return strings.Join(lines, "\n")
}

// writeDomain writes the domain profile.
func (w *MarkdownWriter) writeDomain(md *markdown.Markdown, report *model.InvestigationReport) {
	d := report.Domain
	md.H2("Domain")
	md.PlainText("")

	created := "-"
	if d.RegistrationDate != nil {
		created = d.RegistrationDate.Format("2006-01-02")
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Domain", d.Domain},
			{"Created", created},
			{"Organization", orDash(d.Organization)},
			{"Country", orDash(d.Country)},
			{"Registrar", orDash(d.Registrar)},
			{"MX", orDash(strings.Join(d.MXRecords, ", "))},
			{"SPF", yesNo(d.HasSPF)},
			{"DMARC", yesNo(d.HasDMARC)},
		},
	})
	md.PlainText("")

	if d.WhoisError != nil {
		md.Importantf("WHOIS lookup failed: %s", d.WhoisError.Message)
		md.PlainText("")
	}
}

// writeManualChecks lists URLs for manual review.
func (w *MarkdownWriter) writeManualChecks(md *markdown.Markdown, report *model.InvestigationReport) {
	if len(report.ManualChecks) == 0 {
		return
	}

	md.H2("Manual Checks")
	md.PlainText("")
	for _, m := range report.ManualChecks {
		md.H3(m.Title)
		md.PlainText("")
		md.BulletList(m.URLs...)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [mailsleuth](https://github.com/nao1215/mailsleuth)*")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
