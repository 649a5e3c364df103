package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultModel       = "gemini-1.5-flash"
	DefaultTemperature = 0.7
)

// OpenAISummarizer calls an OpenAI-compatible Chat Completions endpoint
// (Gemini by default) to produce summaries.
type OpenAISummarizer struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAISummarizer builds a new summarizer instance. An empty baseURL keeps
// the client default endpoint.
func NewOpenAISummarizer(
	apiKey string,
	baseURL string,
	model string,
	temperature float64,
) (*OpenAISummarizer, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("model is empty")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithMaxRetries(0),
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAISummarizer{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}, nil
}

// Summarize sends the article through the fixed prompt and returns the model
// answer verbatim.
func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	if strings.TrimSpace(input.Text) == "" {
		return "", errors.New("input is empty")
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(Prompt(input.Text)),
		},
		Temperature: openai.Float(s.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("choices are missing (model = %s)", resp.Model)
	}

	summary := resp.Choices[0].Message.Content
	if strings.TrimSpace(summary) == "" {
		return "", fmt.Errorf("output text is missing (finishReason = %s)", resp.Choices[0].FinishReason)
	}

	return summary, nil
}
