package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/feedpulse/feedpulse/domain/classify"
	"github.com/feedpulse/feedpulse/domain/prediction"
)

const sentimentPrompt = `You are a sentiment classifier. Classify the sentiment of the user's text.
Respond with only a JSON object of the form {"label": "...", "score": 0.0}
where label is one of NEGATIVE, NEUTRAL, POSITIVE and score is your
confidence between 0 and 1. No other output.`

// OpenAI classifies text through a chat-completion endpoint. The prediction
// log records the classifier under "openai/<model>", keeping results from
// different remote models separate.
type OpenAI struct {
	client        *openai.Client
	model         string
	maxChars      int
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// OpenAIOption configures an OpenAI classifier.
type OpenAIOption func(*OpenAI)

// WithOpenAIMaxRetries sets the maximum retry count.
func WithOpenAIMaxRetries(n int) OpenAIOption {
	return func(o *OpenAI) { o.maxRetries = n }
}

// WithOpenAIInitialDelay sets the initial retry delay.
func WithOpenAIInitialDelay(d time.Duration) OpenAIOption {
	return func(o *OpenAI) { o.initialDelay = d }
}

// WithOpenAIMaxChars overrides the input truncation bound.
func WithOpenAIMaxChars(n int) OpenAIOption {
	return func(o *OpenAI) { o.maxChars = n }
}

// NewOpenAI creates an OpenAI classifier.
func NewOpenAI(apiKey, baseURL, model string, opts ...OpenAIOption) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	o := &OpenAI{
		client:        openai.NewClientWithConfig(config),
		model:         model,
		maxChars:      classify.DefaultMaxChars,
		maxRetries:    3,
		initialDelay:  2 * time.Second,
		backoffFactor: 2.0,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ModelName identifies the remote classifier variant.
func (o *OpenAI) ModelName() string {
	return "openai/" + o.model
}

// Classify scores one text via chat completion. Transport failures after
// retries surface as classify.ErrUnavailable so a scoring pass fails fast
// instead of hammering a dead endpoint per record.
func (o *OpenAI) Classify(ctx context.Context, text string) (classify.Result, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sentimentPrompt},
			{Role: openai.ChatMessageRoleUser, Content: classify.Truncate(text, o.maxChars)},
		},
		Temperature: 0,
	}

	var resp openai.ChatCompletionResponse
	err := o.withRetry(ctx, func() error {
		var callErr error
		resp, callErr = o.client.CreateChatCompletion(ctx, req)
		return callErr
	})
	if err != nil {
		return classify.Result{}, fmt.Errorf("%w: %w", classify.ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return classify.Result{}, fmt.Errorf("%w: no choices in response", classify.ErrUnavailable)
	}

	return parseSentimentReply(resp.Choices[0].Message.Content)
}

// parseSentimentReply decodes the constrained JSON reply.
func parseSentimentReply(content string) (classify.Result, error) {
	var reply struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}

	content = strings.TrimSpace(content)
	// Models occasionally wrap the JSON in a code fence despite instructions.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &reply); err != nil {
		return classify.Result{}, fmt.Errorf("%w: unparseable classifier reply: %v", prediction.ErrValidation, err)
	}

	label := prediction.Label(strings.ToUpper(reply.Label))
	if !label.Valid() {
		return classify.Result{}, fmt.Errorf("%w: classifier replied with unknown label %q", prediction.ErrValidation, reply.Label)
	}
	score := reply.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return classify.NewResult(label, score, reply.Label), nil
}

// withRetry runs fn with exponential backoff on retryable errors.
func (o *OpenAI) withRetry(ctx context.Context, fn func() error) error {
	delay := o.initialDelay

	var err error
	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * o.backoffFactor)
		}

		err = fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
	}
	return err
}

// isRetryable reports whether an error is worth another attempt: network
// timeouts and rate-limit/server-side API statuses.
func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	return false
}

var _ classify.Classifier = (*OpenAI)(nil)
