package oracle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
)

// GeminiClient implements Client with the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a Gemini client for model. It does not contact the API.
// baseURL is optional.
func NewGeminiClient(ctx context.Context, apiKey, model, baseURL string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	// the SDK retries 503 replies with backoff; a 503 surfaced as a transport error is final
	hc := &http.Client{
		Transport: &transport.APIKey{
			Key:       apiKey,
			Transport: singleAttempt{base: http.DefaultTransport},
		},
	}
	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if baseURL != "" {
		opts = append(opts, option.WithEndpoint(baseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", wrap("gemini", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", wrap("gemini", ErrEmptyReply)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", wrap("gemini", ErrEmptyReply)
	}
	return sb.String(), nil
}

func (c *GeminiClient) Name() string {
	return "gemini"
}

// Close releases the underlying HTTP client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// singleAttempt turns 503 Service Unavailable replies into transport errors, which the
// SDK does not retry.
type singleAttempt struct {
	base http.RoundTripper
}

func (t singleAttempt) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		return resp, nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	_ = resp.Body.Close()
	return nil, fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
}
