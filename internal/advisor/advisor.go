package advisor

import (
	"context"
	"fmt"

	"strategy-sandbox/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// Service produces free-text commentary on a strategy listing. The caller
// treats the result as opaque: it is appended to the listing as a comment
// block and never parsed back.
type Service struct {
	tracer trace.Tracer
	llm    LLMClient
	model  string
}

func New(tracer trace.Tracer, llm LLMClient, model string) *Service {
	return &Service{tracer: tracer, llm: llm, model: model}
}

// Enabled reports whether an LLM backend is configured.
func (s *Service) Enabled() bool { return s.llm != nil }

// Analyze asks the model for a short review of the listing under its
// current parameters.
func (s *Service) Analyze(ctx context.Context, strategy domain.StrategyType, listingText string, p domain.ParameterSet) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("strategy", string(strategy)),
		attribute.String("llm.model", s.model),
	)

	if s.llm == nil {
		return "", fmt.Errorf("advisor is not configured")
	}

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(strategy, listingText, p)),
		},
	})
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("advisor unavailable: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := completion.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) LLMClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiClient{client: client}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
