package claude

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/vbonduro/marineit/internal/summary"
)

// maxTokens leaves room for a 3-4 sentence Thai summary.
const maxTokens = 1024

type ClaudeSummarizer struct {
	client *anthropic.Client
	model  string
}

func NewClaudeSummarizer(apiKey, model string, opts ...anthropic.ClientOption) *ClaudeSummarizer {
	return &ClaudeSummarizer{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (s *ClaudeSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(s.model),
		System:    summary.SystemPrompt,
		MaxTokens: maxTokens,
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	for _, c := range resp.Content {
		if c.Type == anthropic.MessagesContentTypeText {
			return c.GetText(), nil
		}
	}
	return "", nil
}
