package advisor

import (
	"context"
	"errors"
	"testing"

	"strategy-sandbox/internal/domain"
	"strategy-sandbox/internal/listing"

	"github.com/openai/openai-go"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type stubLLMClient struct {
	response *openai.ChatCompletion
	err      error
	lastReq  openai.ChatCompletionNewParams
}

func (s *stubLLMClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	s.lastReq = params
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func TestAnalyzeHappyPath(t *testing.T) {
	llm := &stubLLMClient{
		response: &openai.ChatCompletion{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "Tighten the stop loss."}},
			},
		},
	}
	svc := New(testTracer, llm, "gpt-4o-mini")

	p := domain.DefaultParameters()
	reply, err := svc.Analyze(context.Background(), domain.StrategyDualMA, listing.Template(domain.StrategyDualMA), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Tighten the stop loss." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if llm.lastReq.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", llm.lastReq.Model)
	}
	if len(llm.lastReq.Messages) != 2 {
		t.Fatalf("expected system + user message, got %d", len(llm.lastReq.Messages))
	}
}

func TestAnalyzeLLMError(t *testing.T) {
	llm := &stubLLMClient{err: errors.New("api down")}
	svc := New(testTracer, llm, "gpt-4o-mini")

	_, err := svc.Analyze(context.Background(), domain.StrategyDualMA, "", domain.DefaultParameters())
	if err == nil {
		t.Fatal("expected error from LLM failure")
	}
}

func TestAnalyzeEmptyChoices(t *testing.T) {
	llm := &stubLLMClient{response: &openai.ChatCompletion{}}
	svc := New(testTracer, llm, "gpt-4o-mini")

	if _, err := svc.Analyze(context.Background(), domain.StrategyDualMA, "", domain.DefaultParameters()); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestAnalyzeDisabled(t *testing.T) {
	svc := New(testTracer, nil, "gpt-4o-mini")
	if svc.Enabled() {
		t.Fatal("nil client reported enabled")
	}
	if _, err := svc.Analyze(context.Background(), domain.StrategyDualMA, "", domain.DefaultParameters()); err == nil {
		t.Fatal("expected error when not configured")
	}
}
