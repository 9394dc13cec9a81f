package llm

import (
	"context"
	"strings"

	openaiapi "github.com/sashabaranov/go-openai"
)

// OpenAIClient implementa ChatClient con el SDK go-openai.
type OpenAIClient struct {
	api   *openaiapi.Client
	model string
}

func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	cfg := openaiapi.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIClient{
		api:   openaiapi.NewClientWithConfig(cfg),
		model: model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openaiapi.ChatCompletionRequest{
		Model:    c.model,
		Messages: toAPIMessages(messages),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func toAPIMessages(msgs []Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, openaiapi.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return res
}
