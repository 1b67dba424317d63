package content

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/mailsleuth/internal/model"
)

// sentimentInputSize is how much page text is used for sentiment. Profile
// pages front-load the bio, and longer input mostly adds navigation noise.
const sentimentInputSize = 512

// DefaultAnalyzerTimeout bounds each analyzer call.
const DefaultAnalyzerTimeout = 15 * time.Second

// Annotation is the content analysis of one page.
type Annotation struct {
	Sentiment model.Sentiment
	Keywords  []string
	Entities  []string
}

// Annotator combines an Analyzer with local keyword extraction.
type Annotator struct {
	analyzer     Analyzer
	keywordLimit int
	timeout      time.Duration
	logger       *slog.Logger
}

// AnnotatorOption configures an Annotator.
type AnnotatorOption func(*Annotator)

// WithKeywordLimit sets how many keywords are kept.
func WithKeywordLimit(n int) AnnotatorOption {
	return func(a *Annotator) {
		if n > 0 {
			a.keywordLimit = n
		}
	}
}

// WithAnalyzerTimeout bounds each analyzer call. Non-positive values are
// ignored.
func WithAnalyzerTimeout(d time.Duration) AnnotatorOption {
	return func(a *Annotator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the logger used to report analyzer failures.
func WithLogger(logger *slog.Logger) AnnotatorOption {
	return func(a *Annotator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnnotator creates an Annotator. A nil analyzer behaves like NopAnalyzer.
func NewAnnotator(analyzer Analyzer, opts ...AnnotatorOption) *Annotator {
	if analyzer == nil {
		analyzer = NopAnalyzer{}
	}
	a := &Annotator{
		analyzer:     analyzer,
		keywordLimit: DefaultKeywordLimit,
		timeout:      DefaultAnalyzerTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Annotate analyzes text. It never fails: analyzer errors are logged and
// replaced by the UNKNOWN sentiment and an empty entity list. An analyzer that
// does not answer within the timeout counts as failed.
func (a *Annotator) Annotate(ctx context.Context, text string) Annotation {
	text = strings.TrimSpace(text)
	ann := Annotation{Sentiment: model.UnknownSentiment()}
	if text == "" {
		return ann
	}

	ann.Keywords = Keywords(text, a.keywordLimit)

	sentiment, err := a.sentiment(ctx, text)
	if err != nil {
		a.logger.Debug("sentiment analysis failed", "error", err)
	} else {
		ann.Sentiment = sentiment
	}

	entities, err := a.entities(ctx, text)
	if err != nil {
		a.logger.Debug("entity extraction failed", "error", err)
	} else {
		ann.Entities = entities
	}

	return ann
}

func (a *Annotator) sentiment(ctx context.Context, text string) (model.Sentiment, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.analyzer.Sentiment(ctx, truncate(text, sentimentInputSize))
}

func (a *Annotator) entities(ctx context.Context, text string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.analyzer.Entities(ctx, text)
}
