package probe

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/nao1215/mailsleuth/internal/content"
	"github.com/nao1215/mailsleuth/internal/httpclient"
	"github.com/nao1215/mailsleuth/internal/model"
	"golang.org/x/sync/errgroup"
)

// Default orchestrator settings.
const (
	// DefaultConcurrency is the number of platforms probed at once.
	DefaultConcurrency = 10

	// DefaultTimeout bounds a single candidate request.
	DefaultTimeout = 5 * time.Second
)

// Orchestrator probes the candidates of every platform.
type Orchestrator struct {
	fetcher     httpclient.Fetcher
	concurrency int
	timeout     time.Duration
	logger      *slog.Logger
	annotator   *content.Annotator
	headers     map[model.Platform]http.Header
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConcurrency sets how many platforms are probed in parallel.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAnnotator enables content annotation of matched pages.
func WithAnnotator(a *content.Annotator) Option {
	return func(o *Orchestrator) {
		o.annotator = a
	}
}

// WithPlatformHeaders adds extra request headers for one platform.
func WithPlatformHeaders(platform model.Platform, headers map[string]string) Option {
	return func(o *Orchestrator) {
		if len(headers) == 0 {
			return
		}
		h := make(http.Header, len(headers))
		for k, v := range headers {
			h.Set(k, v)
		}
		o.headers[platform] = h
	}
}

// New creates an Orchestrator that fetches pages through fetcher.
func New(fetcher httpclient.Fetcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetcher:     fetcher,
		concurrency: DefaultConcurrency,
		timeout:     DefaultTimeout,
		logger:      slog.Default(),
		headers:     make(map[model.Platform]http.Header),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProbeAll probes every platform in groups and returns one result per
// platform in the same order. It never fails: request errors are recorded
// on the result of the platform they belong to.
//
// Each task writes only its own slot of the pre-allocated result slice, and
// Wait is the only synchronization point.
func (o *Orchestrator) ProbeAll(ctx context.Context, groups []model.PlatformCandidates) []model.ProbeResult {
	results := make([]model.ProbeResult, len(groups))

	// No derived context: one platform failing must not cancel the others.
	var g errgroup.Group
	g.SetLimit(o.concurrency)

	for i, group := range groups {
		g.Go(func() error {
			results[i] = o.probePlatform(ctx, group)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // tasks never return errors

	o.logger.Debug("probing completed",
		"platforms", len(groups),
		"found", model.CountFound(results),
	)
	return results
}

// probePlatform tries candidates in rank order until one matches. The group
// is sorted by VariantRank here so callers need not pre-sort it.
func (o *Orchestrator) probePlatform(ctx context.Context, group model.PlatformCandidates) model.ProbeResult {
	result := model.ProbeResult{Platform: group.Platform}

	candidates := slices.Clone(group.Candidates)
	slices.SortStableFunc(candidates, func(a, b model.CandidateURL) int {
		return cmp.Compare(a.VariantRank, b.VariantRank)
	})

	var lastErr error
	for _, cand := range candidates {
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
		result.CandidatesTried++

		resp, page, err := o.fetch(ctx, group.Platform, cand.URL)
		if err != nil {
			o.logger.Debug("candidate failed",
				"platform", group.Platform,
				"url", cand.URL,
				"error", err,
			)
			lastErr = err
			continue
		}

		if !IsProfile(resp.StatusCode, page) {
			if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
				lastErr = fmt.Errorf("%w: GET %s: unexpected status %d", model.ErrNetwork, cand.URL, resp.StatusCode)
			}
			continue
		}

		result.Found = true
		result.MatchedURL = cand.URL
		result.PageTitle = page.Title
		result.ExtractedFields = Extract(group.Platform, page)
		result.LinkedProfiles = LinkedProfiles(page, cand.URL)
		o.annotate(ctx, &result, page)

		o.logger.Debug("profile found", "platform", group.Platform, "url", cand.URL)
		return result
	}

	result.Error = model.NewProbeError(lastErr)
	return result
}

// fetch requests one candidate with its own timeout.
func (o *Orchestrator) fetch(ctx context.Context, platform model.Platform, rawURL string) (*httpclient.Response, *Page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.fetcher.Get(reqCtx, rawURL, o.headers[platform])
	if err != nil {
		return nil, nil, err
	}

	page, err := ParsePage(resp.Body)
	if err != nil {
		// Unparseable bodies still carry a status; treat them as untitled.
		page = &Page{Text: resp.Body}
	}
	return resp, page, nil
}

func (o *Orchestrator) annotate(ctx context.Context, result *model.ProbeResult, page *Page) {
	if o.annotator == nil {
		return
	}

	text := strings.TrimSpace(page.Description + " " + page.Text)
	ann := o.annotator.Annotate(ctx, text)
	result.Sentiment = &ann.Sentiment
	result.Keywords = ann.Keywords
	result.Entities = ann.Entities
}
