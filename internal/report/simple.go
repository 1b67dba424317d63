package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/mailsleuth/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// ruleWidth is the width of section separators.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with nothing to show are printed.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

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
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.InvestigationReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	if err := w.writeIdentity(&sb, report); err != nil {
		return 0, err
	}
	if err := w.writeScores(&sb, report); err != nil {
		return 0, err
	}
	if err := w.writePlatforms(&sb, report); err != nil {
		return 0, err
	}
	if err := w.writeDomain(&sb, report); err != nil {
		return 0, err
	}
	w.writeManualChecks(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with investigation information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.InvestigationReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                    MAILSLEUTH INVESTIGATION REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Email:     %s\n", report.Identity.Email)
	fmt.Fprintf(sb, "Date:      %s\n", report.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Duration:  %d ms\n", report.Metadata.DurationMillis)
	if w.verbose {
		fmt.Fprintf(sb, "Report ID: %s\n", report.ID)
		if len(report.Metadata.PerformedSteps) > 0 {
			fmt.Fprintf(sb, "Steps:     %s\n", strings.Join(report.Metadata.PerformedSteps, ", "))
		}
	}
	sb.WriteString("\n")
}

// writeSection writes a section title between rules.
func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// keyValueTable renders borderless two-column rows.
func keyValueTable(sb *strings.Builder, rows [][]string) error {
	table := tablewriter.NewTable(sb,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{Borders: tw.BorderNone})),
	)
	for _, r := range rows {
		if err := table.Append(r); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	sb.WriteString("\n")
	return nil
}

func (w *SimpleWriter) writeIdentity(sb *strings.Builder, report *model.InvestigationReport) error {
	id := report.Identity
	writeSection(sb, "IDENTITY")

	rows := [][]string{
		{"Username", id.LocalPart},
		{"Domain", id.Domain},
		{"Name fragments", orDash(strings.Join(id.NameFragments, ", "))},
		{"Birth year", orDash(id.PossibleBirthYear)},
	}
	if id.PossibleName != nil {
		rows = append(rows, []string{"Possible name", id.PossibleName.Full})
	}
	if len(report.NameAnalysis.Patterns) > 0 {
		rows = append(rows, []string{"Patterns", strings.Join(report.NameAnalysis.Patterns, "; ")})
	}
	return keyValueTable(sb, rows)
}

func (w *SimpleWriter) writeScores(sb *strings.Builder, report *model.InvestigationReport) error {
	writeSection(sb, "SCORES")

	table := tablewriter.NewTable(sb)
	table.Header("Score", "Value", "Level")
	s := report.Scores
	for _, entry := range []struct {
		name  string
		score *model.ScoreResult
	}{
		{"Quality", s.Quality},
		{"Professional", s.Professional},
		{"Security risk", s.SecurityRisk},
		{"Social visibility", s.SocialVisibility},
	} {
		if entry.score == nil {
			continue
		}
		if err := table.Append(entry.name, strconv.Itoa(entry.score.Score), entry.score.Level.String()); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	sb.WriteString("\n")

	if risk := s.SecurityRisk; risk != nil {
		for _, f := range risk.Factors {
			fmt.Fprintf(sb, "  [!] %s\n", f)
		}
		for _, r := range risk.Recommendations {
			fmt.Fprintf(sb, "  [*] %s\n", r)
		}
		sb.WriteString("\n")
	}

	if w.verbose {
		for _, entry := range []struct {
			name  string
			score *model.ScoreResult
		}{
			{"Quality", s.Quality},
			{"Professional", s.Professional},
			{"Social visibility", s.SocialVisibility},
		} {
			if entry.score == nil || len(entry.score.Factors) == 0 {
				continue
			}
			fmt.Fprintf(sb, "%s factors:\n", entry.name)
			for _, f := range entry.score.Factors {
				fmt.Fprintf(sb, "  - %s\n", f)
			}
		}
		sb.WriteString("\n")
	}
	return nil
}

func (w *SimpleWriter) writePlatforms(sb *strings.Builder, report *model.InvestigationReport) error {
	probes := report.Probes
	if !w.showEmpty {
		probes = report.FoundProbes()
	}
	if len(probes) == 0 && !w.showEmpty {
		writeSection(sb, "PLATFORMS")
		fmt.Fprintf(sb, "  No profiles found on %d platforms\n\n", len(report.Probes))
		return nil
	}

	writeSection(sb, fmt.Sprintf("PLATFORMS (%d/%d found)", model.CountFound(report.Probes), len(report.Probes)))

	table := tablewriter.NewTable(sb)
	table.Header("Platform", "Status", "URL")
	for _, p := range probes {
		if err := table.Append(p.Platform.DisplayName(), foundLabel(p), orDash(p.MatchedURL)); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	sb.WriteString("\n")

	if w.verbose {
		for _, p := range report.FoundProbes() {
			if details := probeDetails(p); details != "" {
				fmt.Fprintf(sb, "%s:\n", p.Platform.DisplayName())
				for _, line := range strings.Split(details, "\n") {
					fmt.Fprintf(sb, "  %s\n", line)
				}
			}
		}
		sb.WriteString("\n")
	}

	if len(report.GitHubAccounts) > 0 {
		fmt.Fprintf(sb, "GitHub accounts with this public email: %s\n\n", strings.Join(report.GitHubAccounts, ", "))
	}
	return nil
}

func (w *SimpleWriter) writeDomain(sb *strings.Builder, report *model.InvestigationReport) error {
	d := report.Domain
	writeSection(sb, "DOMAIN")

	created := "unknown"
	if d.RegistrationDate != nil {
		created = d.RegistrationDate.Format("2006-01-02")
	}
	if d.WhoisError != nil {
		created = "lookup failed"
	}
	rows := [][]string{
		{"Domain", d.Domain},
		{"Created", created},
		{"Organization", orDash(d.Organization)},
		{"Country", orDash(d.Country)},
		{"MX", orDash(strings.Join(d.MXRecords, ", "))},
		{"SPF", yesNo(d.HasSPF)},
		{"DMARC", yesNo(d.HasDMARC)},
	}
	if w.verbose && d.Registrar != "" {
		rows = append(rows, []string{"Registrar", d.Registrar})
	}
	return keyValueTable(sb, rows)
}

func (w *SimpleWriter) writeManualChecks(sb *strings.Builder, report *model.InvestigationReport) {
	if len(report.ManualChecks) == 0 && !w.showEmpty {
		return
	}

	writeSection(sb, "MANUAL CHECKS")
	for _, m := range report.ManualChecks {
		fmt.Fprintf(sb, "%s\n", m.Title)
		for _, u := range m.URLs {
			fmt.Fprintf(sb, "  * %s\n", u)
		}
		sb.WriteString("\n")
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by mailsleuth\n")
	sb.WriteString("https://github.com/nao1215/mailsleuth\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
