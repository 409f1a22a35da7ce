package oracle

import (
	"context"
	"sync"
)

// MockClient replays canned replies and records every prompt it receives.
type MockClient struct {
	mu      sync.Mutex
	Replies []string
	Err     error
	Prompts []string
}

// NewMockClient returns a MockClient that answers with replies in order,
// repeating the last one once they run out.
func NewMockClient(replies ...string) *MockClient {
	return &MockClient{Replies: replies}
}

// NewFailingClient returns a MockClient whose every call fails with err.
func NewFailingClient(err error) *MockClient {
	return &MockClient{Err: err}
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", wrap("mock", m.Err)
	}
	if err := ctx.Err(); err != nil {
		return "", wrap("mock", err)
	}
	if len(m.Replies) == 0 {
		return "", wrap("mock", ErrEmptyReply)
	}
	idx := len(m.Prompts) - 1
	if idx >= len(m.Replies) {
		idx = len(m.Replies) - 1
	}
	return m.Replies[idx], nil
}

func (m *MockClient) Name() string {
	return "mock"
}

// Calls returns how many prompts were sent.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// LastPrompt returns the most recent prompt, or "" if none.
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}
