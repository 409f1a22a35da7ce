package store

import (
	"context"
	"errors"
	"sync"

	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"
)

// ErrClosed is returned by MockStore after Close.
var ErrClosed = errors.New("store is closed")

// MockStore is an in-memory Repository for tests.
type MockStore struct {
	mu      sync.Mutex
	Records []models.Record
	closed  bool

	// Error flags for testing error conditions
	AppendError error
	ListError   error
}

// NewMockStore returns a MockStore preloaded with records, numbered from 1.
func NewMockStore(records ...models.Record) *MockStore {
	m := &MockStore{}
	for _, r := range records {
		r.ID = int64(len(m.Records) + 1)
		m.Records = append(m.Records, r)
	}
	return m
}

// Append stores a copy of rec.
func (m *MockStore) Append(ctx context.Context, rec models.Record) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, &parsererror.StorageError{Op: "append", Err: ErrClosed}
	}
	if m.AppendError != nil {
		return 0, &parsererror.StorageError{Op: "append", Err: m.AppendError}
	}
	rec.ID = int64(len(m.Records) + 1)
	m.Records = append(m.Records, rec)
	return rec.ID, nil
}

// ListAll returns a copy of the stored records.
func (m *MockStore) ListAll(ctx context.Context) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListError != nil {
		return nil, &parsererror.StorageError{Op: "list", Err: m.ListError}
	}
	out := make([]models.Record, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

// Close marks the store closed.
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
