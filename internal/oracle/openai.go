package oracle

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOllamaURL is the OpenAI-compatible endpoint of a local Ollama server.
const DefaultOllamaURL = "http://localhost:11434/v1"

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint,
// including a local Ollama server.
type OpenAIClient struct {
	client   *openai.Client
	model    string
	provider string
}

// NewOpenAIClient builds a client for the official OpenAI API, or for baseURL when set.
func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &OpenAIClient{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		provider: "openai",
	}
}

// NewOllamaClient builds a client for an Ollama server. Ollama ignores the API key.
func NewOllamaClient(model, baseURL string) *OpenAIClient {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	c := NewOpenAIClient("ollama", model, baseURL)
	c.provider = "ollama"
	return c
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", wrap(c.provider, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", wrap(c.provider, ErrEmptyReply)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Name() string {
	return c.provider
}
