package llm

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	ProviderHTTP   = "http"
	ProviderOpenAI = "openai"
)

// NewChatClient elige la implementacion segun LLM_PROVIDER.
func NewChatClient(provider, baseURL, apiKey, model string, logger *zap.Logger) (ChatClient, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderHTTP:
		return NewHTTPClient(baseURL, apiKey, model, logger), nil
	case ProviderOpenAI:
		return NewOpenAIClient(baseURL, apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
