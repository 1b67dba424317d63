package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nao1215/mailsleuth/internal/model"
	"github.com/sashabaranov/go-openai"
)

// Defaults for the OpenAI-compatible analyzer.
const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultMaxInputSize is the number of bytes of page text sent per request.
	DefaultMaxInputSize = 2000

	// DefaultRequestTimeout bounds one chat completion round trip.
	DefaultRequestTimeout = 30 * time.Second

	defaultMaxTokens = 200
)

const sentimentPrompt = `Classify the overall sentiment of the following profile page text.
Respond with a JSON object containing:
- label: one of "POSITIVE", "NEGATIVE" or "NEUTRAL"
- score: number between 0 and 1 (your confidence in the label)

Text:
%s

Respond only with the JSON object and nothing else.`

const entitiesPrompt = `List the names of people and organizations mentioned in the following profile page text.
Respond with a JSON object containing:
- entities: array of strings

Text:
%s

Respond only with the JSON object and nothing else.`

// OpenAIAnalyzer implements Analyzer on top of a chat completion API.
// Any server speaking the OpenAI protocol can be used through WithBaseURL.
type OpenAIAnalyzer struct {
	client       *openai.Client
	model        string
	maxInputSize int
	logger       *slog.Logger
}

// OpenAIOption configures an OpenAIAnalyzer.
type OpenAIOption func(*openAIOptions)

type openAIOptions struct {
	model          string
	baseURL        string
	maxInputSize   int
	requestTimeout time.Duration
	logger         *slog.Logger
}

// WithModel selects the chat model.
func WithModel(name string) OpenAIOption {
	return func(o *openAIOptions) {
		if name != "" {
			o.model = name
		}
	}
}

// WithBaseURL points the analyzer at an OpenAI-compatible server.
func WithBaseURL(url string) OpenAIOption {
	return func(o *openAIOptions) {
		o.baseURL = url
	}
}

// WithMaxInputSize limits how much text is sent per request.
func WithMaxInputSize(n int) OpenAIOption {
	return func(o *openAIOptions) {
		if n > 0 {
			o.maxInputSize = n
		}
	}
}

// WithRequestTimeout bounds each HTTP round trip to the completion API.
func WithRequestTimeout(d time.Duration) OpenAIOption {
	return func(o *openAIOptions) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// WithAnalyzerLogger sets the logger.
func WithAnalyzerLogger(logger *slog.Logger) OpenAIOption {
	return func(o *openAIOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOpenAIAnalyzer creates an analyzer authenticated with apiKey.
func NewOpenAIAnalyzer(apiKey string, opts ...OpenAIOption) *OpenAIAnalyzer {
	o := &openAIOptions{
		model:          DefaultModel,
		maxInputSize:   DefaultMaxInputSize,
		requestTimeout: DefaultRequestTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	cfg := openai.DefaultConfig(apiKey)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: o.requestTimeout}

	return &OpenAIAnalyzer{
		client:       openai.NewClientWithConfig(cfg),
		model:        o.model,
		maxInputSize: o.maxInputSize,
		logger:       o.logger,
	}
}

type sentimentResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type entitiesResponse struct {
	Entities []string `json:"entities"`
}

// Sentiment implements Analyzer.
func (a *OpenAIAnalyzer) Sentiment(ctx context.Context, text string) (model.Sentiment, error) {
	var resp sentimentResponse
	if err := a.complete(ctx, sentimentPrompt, text, &resp); err != nil {
		return model.UnknownSentiment(), err
	}

	label := strings.ToUpper(strings.TrimSpace(resp.Label))
	switch label {
	case "POSITIVE", "NEGATIVE", "NEUTRAL":
	default:
		return model.UnknownSentiment(), fmt.Errorf("%w: unexpected sentiment label %q", model.ErrParse, resp.Label)
	}

	return model.Sentiment{Label: label, Score: clamp01(resp.Score)}, nil
}

// Entities implements Analyzer.
func (a *OpenAIAnalyzer) Entities(ctx context.Context, text string) ([]string, error) {
	var resp entitiesResponse
	if err := a.complete(ctx, entitiesPrompt, text, &resp); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(resp.Entities))
	entities := make([]string, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		entities = append(entities, e)
	}
	return entities, nil
}

// complete sends one prompt and decodes the JSON answer into out.
func (a *OpenAIAnalyzer) complete(ctx context.Context, prompt, text string, out any) error {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a text analysis system. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(prompt, truncate(text, a.maxInputSize)),
			},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: 0,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: chat completion: %w", model.ErrNetwork, err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("%w: empty chat completion response", model.ErrParse)
	}

	answer := resp.Choices[0].Message.Content
	a.logger.Debug("analyzer response", "model", a.model, "bytes", len(answer))

	return decodeJSONAnswer(answer, out)
}

// decodeJSONAnswer parses answer as JSON. Models sometimes wrap the object in
// prose or a code fence, so the outermost braces are tried as a fallback.
func decodeJSONAnswer(answer string, out any) error {
	err := json.Unmarshal([]byte(answer), out)
	if err == nil {
		return nil
	}

	start := strings.IndexByte(answer, '{')
	end := strings.LastIndexByte(answer, '}')
	if start < 0 || end <= start {
		return fmt.Errorf("%w: no JSON object in response: %w", model.ErrParse, err)
	}
	if err := json.Unmarshal([]byte(answer[start:end+1]), out); err != nil {
		return fmt.Errorf("%w: %w", model.ErrParse, err)
	}
	return nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
