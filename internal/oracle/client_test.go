package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fjacquet/budget-tracker/internal/config"
	"fjacquet/budget-tracker/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, content string, seen *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) || !assert.Len(t, body.Messages, 1) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		assert.Equal(t, "user", body.Messages[0].Role)
		if seen != nil {
			*seen = body.Model + "|" + body.Messages[0].Content
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   body.Model,
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]string{"role": "assistant", "content": content},
				},
			},
		})
	}))
}

func TestOllamaClient_Complete(t *testing.T) {
	var seen string
	srv := chatServer(t, `{"merchant":"Panda"}`, &seen)
	defer srv.Close()

	client := NewOllamaClient("mistral", srv.URL)
	reply, err := client.Complete(context.Background(), "استخرج")
	require.NoError(t, err)

	assert.Equal(t, `{"merchant":"Panda"}`, reply)
	assert.Equal(t, "mistral|استخرج", seen)
	assert.Equal(t, "ollama", client.Name())
}

func TestOpenAIClient_EmptyReply(t *testing.T) {
	srv := chatServer(t, "", nil)
	defer srv.Close()

	client := NewOpenAIClient("key", "gpt", srv.URL)
	_, err := client.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyReply))

	var oe *parsererror.OracleError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "openai", oe.Provider)
}

func TestOpenAIClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model not found"}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewOllamaClient("missing", srv.URL)
	_, err := client.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, parsererror.IsOracleFailure(err))
}

func TestWithTimeout(t *testing.T) {
	slow := ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	client := WithTimeout(slow, 10*time.Millisecond)
	_, err := client.Complete(context.Background(), "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, wrapped := WithTimeout(slow, 0).(*timeoutClient)
	assert.False(t, wrapped)
}

func TestUnavailable(t *testing.T) {
	u := &Unavailable{Provider: "gemini", Reason: errors.New("GEMINI_API_KEY environment variable not set")}
	_, err := u.Complete(context.Background(), "x")
	assert.True(t, parsererror.IsOracleFailure(err))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestMockClient(t *testing.T) {
	m := NewMockClient("first", "second")
	ctx := context.Background()

	r1, _ := m.Complete(ctx, "a")
	r2, _ := m.Complete(ctx, "b")
	r3, _ := m.Complete(ctx, "c")

	assert.Equal(t, []string{"first", "second", "second"}, []string{r1, r2, r3})
	assert.Equal(t, 3, m.Calls())
	assert.Equal(t, "c", m.LastPrompt())

	failing := NewFailingClient(errors.New("connection refused"))
	_, err := failing.Complete(ctx, "a")
	assert.True(t, parsererror.IsOracleFailure(err))
}

func TestNew(t *testing.T) {
	cfg := &config.Config{}
	cfg.Oracle.Provider = config.ProviderOllama
	cfg.Oracle.Model = "mistral"
	cfg.Oracle.TimeoutSeconds = 5

	client, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "ollama", client.Name())
	assert.NoError(t, Close(client))

	cfg.Oracle.Provider = config.ProviderAnthropic
	_, err = New(context.Background(), cfg)
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")

	cfg.Oracle.Provider = config.ProviderOpenAI
	_, err = New(context.Background(), cfg)
	assert.ErrorContains(t, err, "OPENAI_API_KEY")

	cfg.Oracle.Provider = "carrier-pigeon"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}
