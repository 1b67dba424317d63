package report

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/nao1215/mailsleuth/internal/model"
)

// Input carries everything an investigation produced.
type Input struct {
	Identity       model.EmailIdentity
	NameAnalysis   model.NameAnalysis
	Probes         []model.ProbeResult
	GitHubAccounts []string
	Domain         model.DomainProfile
	Scores         model.Scores
	ManualChecks   []model.ManualCheck

	// Timestamp is when the investigation finished. Zero means now.
	Timestamp time.Time

	// Duration is how long the investigation took.
	Duration time.Duration

	// Steps are the names of the pipeline steps that ran.
	Steps []string

	// ToolVersion is the version of the binary that ran the investigation.
	// Empty means DevelVersion.
	ToolVersion string
}

// DevelVersion is recorded when no tool version is supplied.
const DevelVersion = "(devel)"

// Build assembles the final report. It performs no validation beyond
// checking that every score is present. Slices are copied so the report
// does not share memory with in.
func Build(in Input) (*model.InvestigationReport, error) {
	if !in.Scores.Complete() {
		return nil, ErrIncompleteScores
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	probes := make([]model.ProbeResult, len(in.Probes))
	for i, p := range in.Probes {
		probes[i] = copyProbe(p)
	}

	manual := make([]model.ManualCheck, len(in.ManualChecks))
	for i, m := range in.ManualChecks {
		manual[i] = model.ManualCheck{Title: m.Title, URLs: slices.Clone(m.URLs)}
	}

	id := in.Identity
	id.NameFragments = slices.Clone(id.NameFragments)
	if id.PossibleName != nil {
		pn := *id.PossibleName
		id.PossibleName = &pn
	}

	version := in.ToolVersion
	if version == "" {
		version = DevelVersion
	}

	domain := in.Domain
	domain.MXRecords = slices.Clone(domain.MXRecords)
	domain.TXTRecords = slices.Clone(domain.TXTRecords)

	return &model.InvestigationReport{
		ID:       uuid.NewString(),
		Identity: id,
		NameAnalysis: model.NameAnalysis{
			PossibleNames: slices.Clone(in.NameAnalysis.PossibleNames),
			Patterns:      slices.Clone(in.NameAnalysis.Patterns),
		},
		Probes:         probes,
		GitHubAccounts: slices.Clone(in.GitHubAccounts),
		Domain:         domain,
		Scores:         copyScores(in.Scores),
		ManualChecks:   manual,
		Timestamp:      ts,
		Metadata: model.Metadata{
			ToolVersion:    version,
			DurationMillis: in.Duration.Milliseconds(),
			PerformedSteps: slices.Clone(in.Steps),
		},
	}, nil
}

func copyProbe(p model.ProbeResult) model.ProbeResult {
	out := p
	if p.ExtractedFields != nil {
		out.ExtractedFields = make(map[string]string, len(p.ExtractedFields))
		for k, v := range p.ExtractedFields {
			out.ExtractedFields[k] = v
		}
	}
	if p.Sentiment != nil {
		s := *p.Sentiment
		out.Sentiment = &s
	}
	if p.Error != nil {
		e := *p.Error
		out.Error = &e
	}
	out.Keywords = slices.Clone(p.Keywords)
	out.Entities = slices.Clone(p.Entities)
	out.LinkedProfiles = slices.Clone(p.LinkedProfiles)
	return out
}

func copyScores(s model.Scores) model.Scores {
	cp := func(r *model.ScoreResult) *model.ScoreResult {
		c := *r
		c.Factors = slices.Clone(r.Factors)
		c.Recommendations = slices.Clone(r.Recommendations)
		return &c
	}
	return model.Scores{
		Quality:          cp(s.Quality),
		Professional:     cp(s.Professional),
		SecurityRisk:     cp(s.SecurityRisk),
		SocialVisibility: cp(s.SocialVisibility),
	}
}
