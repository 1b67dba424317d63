package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/mailsleuth/internal/domaintrust"
	"github.com/nao1215/mailsleuth/internal/httpclient"
	"github.com/nao1215/mailsleuth/internal/identity"
	"github.com/nao1215/mailsleuth/internal/platform"
	"github.com/nao1215/mailsleuth/internal/probe"
	"github.com/nao1215/mailsleuth/internal/report"
	"github.com/nao1215/mailsleuth/internal/scoring"
)

// Step names.
const (
	StepIdentity     = "identity"
	StepCandidates   = "candidates"
	StepProbe        = "probe"
	StepGitHubSearch = "github_search"
	StepDomain       = "domain"
	StepScore        = "score"
	StepReport       = "report"
)

// IdentityStep validates the address and derives everything that comes
// from the address alone. An invalid address is the one critical failure
// of an investigation.
type IdentityStep struct{}

// NewIdentityStep creates the identity step.
func NewIdentityStep() *IdentityStep {
	return &IdentityStep{}
}

// Name returns the step name.
func (s *IdentityStep) Name() string {
	return StepIdentity
}

// Do executes the identity step.
func (s *IdentityStep) Do(_ context.Context, state *State) error {
	if err := identity.ValidateEmail(state.Email); err != nil {
		return err
	}
	state.Identity = identity.Derive(state.Email)
	state.NameAnalysis = identity.AnalyzeNamePatterns(state.Identity.LocalPart)
	state.ManualChecks = platform.ManualChecks(state.Identity.Email, state.Identity.LocalPart)
	return nil
}

// CandidatesStep expands the identity into candidate profile URLs.
type CandidatesStep struct {
	catalog *platform.Catalog
}

// NewCandidatesStep creates a candidates step. A nil catalog means the
// built-in one.
func NewCandidatesStep(catalog *platform.Catalog) *CandidatesStep {
	if catalog == nil {
		catalog = platform.Default()
	}
	return &CandidatesStep{catalog: catalog}
}

// Name returns the step name.
func (s *CandidatesStep) Name() string {
	return StepCandidates
}

// Do executes the candidates step.
func (s *CandidatesStep) Do(_ context.Context, state *State) error {
	state.Candidates = s.catalog.CandidatesFor(state.Identity)
	return nil
}

// ProbeStep checks every platform for a profile.
type ProbeStep struct {
	orchestrator *probe.Orchestrator
}

// NewProbeStep creates a probe step.
func NewProbeStep(orchestrator *probe.Orchestrator) *ProbeStep {
	return &ProbeStep{orchestrator: orchestrator}
}

// Name returns the step name.
func (s *ProbeStep) Name() string {
	return StepProbe
}

// Do executes the probe step. Per-platform failures end up in the results.
func (s *ProbeStep) Do(ctx context.Context, state *State) error {
	state.Probes = s.orchestrator.ProbeAll(ctx, state.Candidates)
	return nil
}

// DefaultGitHubTimeout bounds the GitHub search request.
const DefaultGitHubTimeout = 10 * time.Second

// GitHubSearchStep looks for GitHub accounts that publish the address.
type GitHubSearchStep struct {
	fetcher httpclient.Fetcher
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

// GitHubSearchStepOption configures a GitHubSearchStep.
type GitHubSearchStepOption func(*GitHubSearchStep)

// WithGitHubSearchURL overrides the search endpoint.
func WithGitHubSearchURL(u string) GitHubSearchStepOption {
	return func(s *GitHubSearchStep) {
		s.baseURL = u
	}
}

// WithGitHubTimeout bounds the search request. Non-positive values are ignored.
func WithGitHubTimeout(d time.Duration) GitHubSearchStepOption {
	return func(s *GitHubSearchStep) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithGitHubLogger sets a custom logger for the GitHub search step.
func WithGitHubLogger(logger *slog.Logger) GitHubSearchStepOption {
	return func(s *GitHubSearchStep) {
		s.logger = logger
	}
}

// NewGitHubSearchStep creates a GitHub search step.
func NewGitHubSearchStep(fetcher httpclient.Fetcher, opts ...GitHubSearchStepOption) *GitHubSearchStep {
	s := &GitHubSearchStep{
		fetcher: fetcher,
		baseURL: probe.GitHubSearchURL,
		timeout: DefaultGitHubTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *GitHubSearchStep) Name() string {
	return StepGitHubSearch
}

// Do executes the search. A failed search leaves GitHubAccounts empty.
func (s *GitHubSearchStep) Do(ctx context.Context, state *State) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logins, err := probe.SearchGitHubUsers(ctx, s.fetcher, s.baseURL, state.Identity.Email)
	if err != nil {
		s.logger.Debug("github search failed", "error", err)
		return nil
	}
	state.GitHubAccounts = logins
	return nil
}

// DomainStep analyzes the domain of the address.
type DomainStep struct {
	analyzer *domaintrust.Analyzer
}

// NewDomainStep creates a domain step.
func NewDomainStep(analyzer *domaintrust.Analyzer) *DomainStep {
	return &DomainStep{analyzer: analyzer}
}

// Name returns the step name.
func (s *DomainStep) Name() string {
	return StepDomain
}

// Do executes the domain step.
func (s *DomainStep) Do(ctx context.Context, state *State) error {
	state.Domain = s.analyzer.Analyze(ctx, state.Identity.Domain)
	return nil
}

// ScoreStep computes the four scores.
type ScoreStep struct {
	now func() time.Time
}

// NewScoreStep creates a score step. A nil clock means time.Now.
func NewScoreStep(now func() time.Time) *ScoreStep {
	if now == nil {
		now = time.Now
	}
	return &ScoreStep{now: now}
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return StepScore
}

// Do executes the score step.
func (s *ScoreStep) Do(_ context.Context, state *State) error {
	state.Scores = scoring.ScoreAll(state.Identity, state.Domain, state.Probes, s.now())
	return nil
}

// ReportStep assembles the final report.
type ReportStep struct {
	toolVersion string
}

// NewReportStep creates a report step that stamps toolVersion into the
// report metadata.
func NewReportStep(toolVersion string) *ReportStep {
	return &ReportStep{toolVersion: toolVersion}
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return StepReport
}

// Do executes the report step.
func (s *ReportStep) Do(_ context.Context, state *State) error {
	r, err := report.Build(report.Input{
		Identity:       state.Identity,
		NameAnalysis:   state.NameAnalysis,
		Probes:         state.Probes,
		GitHubAccounts: state.GitHubAccounts,
		Domain:         state.Domain,
		Scores:         state.Scores,
		ManualChecks:   state.ManualChecks,
		Duration:       time.Since(state.Started),
		Steps:          state.PerformedSteps,
		ToolVersion:    s.toolVersion,
	})
	if err != nil {
		return err
	}
	state.Report = r
	return nil
}

// Collaborators are the services the default pipeline is built from.
type Collaborators struct {
	// Fetcher is used for the GitHub search.
	Fetcher httpclient.Fetcher

	// Catalog is the platform catalog. Nil means platform.Default().
	Catalog *platform.Catalog

	Orchestrator *probe.Orchestrator
	Domain       *domaintrust.Analyzer

	// GitHubSearch enables the GitHub API search.
	GitHubSearch bool

	// GitHubSearchURL overrides the search endpoint.
	GitHubSearchURL string

	// GitHubTimeout bounds the GitHub search. Zero means DefaultGitHubTimeout.
	GitHubTimeout time.Duration

	// ToolVersion is recorded in the report metadata.
	ToolVersion string

	Logger *slog.Logger

	// Now is the clock used for scoring. Nil means time.Now.
	Now func() time.Time
}

// DefaultPipeline creates the standard investigation pipeline:
// identity, candidates, then probing and domain analysis in parallel,
// then scoring and the report.
func DefaultPipeline(c Collaborators, opts ...Option) *Pipeline {
	if c.Logger != nil {
		opts = append([]Option{WithLogger(c.Logger)}, opts...)
	}
	p := New(opts...)

	concurrent := []Step{
		NewProbeStep(c.Orchestrator),
		NewDomainStep(c.Domain),
	}
	if c.GitHubSearch && c.Fetcher != nil {
		ghOpts := []GitHubSearchStepOption{}
		if c.GitHubSearchURL != "" {
			ghOpts = append(ghOpts, WithGitHubSearchURL(c.GitHubSearchURL))
		}
		if c.GitHubTimeout > 0 {
			ghOpts = append(ghOpts, WithGitHubTimeout(c.GitHubTimeout))
		}
		if c.Logger != nil {
			ghOpts = append(ghOpts, WithGitHubLogger(c.Logger))
		}
		concurrent = append(concurrent, NewGitHubSearchStep(c.Fetcher, ghOpts...))
	}

	p.AddSteps(
		NewIdentityStep(),
		NewCandidatesStep(c.Catalog),
		NewParallel(concurrent...),
		NewScoreStep(c.Now),
		NewReportStep(c.ToolVersion),
	)

	return p
}
