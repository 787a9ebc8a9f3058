// Package narrative holds the collaborators that turn prompts into story text
// and story text into speech, plus the prompts the dungeon master sends.
package narrative

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/onekill0503/dnd-bot/internal/errors"
)

//go:generate mockgen -destination=mock/mock_generator.go -package=narrativemock github.com/onekill0503/dnd-bot/internal/narrative Generator,Synthesizer,AudioSink

// FallbackNarrative replaces a story beat the generator failed to produce
const FallbackNarrative = "The story continues..."

// Generator produces story text from a system and a user prompt
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAIConfig configures the OpenAI backed collaborators
type OpenAIConfig struct {
	APIKey string
	// BaseURL overrides the API endpoint (optional)
	BaseURL string
	// Model for chat completions (optional, defaults to gpt-4o-mini)
	Model string
	// Timeout per request (optional, defaults to 60 seconds)
	Timeout time.Duration
	// MaxTokens caps each completion (optional, defaults to 600)
	MaxTokens int64
	// Temperature for completions (optional, defaults to 0.8)
	Temperature float64
}

// Validate validates the config and sets defaults if not provided
func (c *OpenAIConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("APIKey", c.APIKey, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Model == "" {
		c.Model = openai.ChatModelGPT4oMini
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 600
	}
	if c.Temperature == 0 {
		c.Temperature = 0.8
	}
	return nil
}

func (c *OpenAIConfig) requestOptions() []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(c.APIKey),
		option.WithRequestTimeout(c.Timeout),
		// one call per story beat, no automatic retries
		option.WithMaxRetries(0),
	}
	if c.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.BaseURL))
	}
	return opts
}

// OpenAIGenerator generates story text with chat completions
type OpenAIGenerator struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewOpenAIGenerator creates a generator
func NewOpenAIGenerator(cfg *OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &OpenAIGenerator{
		client:      openai.NewClient(cfg.requestOptions()...),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

var _ Generator = (*OpenAIGenerator)(nil)

// Generate runs one chat completion
func (g *OpenAIGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	start := time.Now()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens:   openai.Int(g.maxTokens),
		Temperature: openai.Float(g.temperature),
	})
	if err != nil {
		return "", errors.GenerationFailed(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.GenerationFailed(nil).WithMeta("detail", "no choices returned")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.GenerationFailed(nil).WithMeta("detail", "empty completion")
	}

	slog.Debug("Generated narrative",
		"model", g.model,
		"chars", len(text),
		"duration", time.Since(start))

	return text, nil
}
