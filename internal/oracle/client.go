// Package oracle sends one prompt to a language model and returns its text reply.
// Every provider makes exactly one request per call and never retries; callers decide
// what a failure means for them.
package oracle

import (
	"context"
	"errors"
	"time"

	"fjacquet/budget-tracker/internal/parsererror"
)

// Client is a synchronous text-in/text-out language model.
type Client interface {
	// Complete sends prompt as a single user message and returns the reply text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider in logs and errors.
	Name() string
}

// ErrEmptyReply is returned when the provider answers with no text.
var ErrEmptyReply = errors.New("empty reply")

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

func (f ClientFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func (f ClientFunc) Name() string {
	return "func"
}

type timeoutClient struct {
	inner   Client
	timeout time.Duration
}

// WithTimeout bounds every Complete call of c by d. A zero d returns c unchanged.
func WithTimeout(c Client, d time.Duration) Client {
	if d <= 0 {
		return c
	}
	return &timeoutClient{inner: c, timeout: d}
}

func (t *timeoutClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Complete(ctx, prompt)
}

func (t *timeoutClient) Name() string {
	return t.inner.Name()
}

// Close forwards to the wrapped client when it holds resources.
func (t *timeoutClient) Close() error {
	return Close(t.inner)
}

// Unavailable is a Client that fails every call, used when a provider cannot be built
// (for example a missing API key) so that commands not needing the model still work.
type Unavailable struct {
	Provider string
	Reason   error
}

func (u *Unavailable) Complete(ctx context.Context, prompt string) (string, error) {
	return "", &parsererror.OracleError{Provider: u.Provider, Err: u.Reason}
}

func (u *Unavailable) Name() string {
	return u.Provider
}

// Close releases provider resources if c holds any.
func Close(c Client) error {
	if closer, ok := c.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func wrap(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &parsererror.OracleError{Provider: provider, Err: err}
}
