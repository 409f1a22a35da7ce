package oracle

import (
	"context"
	"fmt"
	"time"

	"fjacquet/budget-tracker/internal/config"
)

// New builds the Client selected by cfg.Oracle, bounded by its timeout.
func New(ctx context.Context, cfg *config.Config) (Client, error) {
	o := cfg.Oracle

	var (
		client Client
		err    error
	)
	switch o.Provider {
	case config.ProviderOllama:
		client = NewOllamaClient(o.Model, o.BaseURL)
	case config.ProviderOpenAI:
		if o.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		client = NewOpenAIClient(o.APIKey, o.Model, o.BaseURL)
	case config.ProviderGemini:
		client, err = NewGeminiClient(ctx, o.APIKey, o.Model, o.BaseURL)
	case config.ProviderAnthropic:
		client, err = NewAnthropicClient(o.APIKey, o.Model, o.BaseURL, o.MaxTokens)
	default:
		return nil, fmt.Errorf("unknown oracle provider: %s", o.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithTimeout(client, time.Duration(o.TimeoutSeconds)*time.Second), nil
}
