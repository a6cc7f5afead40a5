package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// errMockExhausted is returned once every queued response has been used.
var errMockExhausted = errors.New("mock provider has no responses queued")

// MockResponse is one queued reply of a MockProvider. Err wins over
// Content. Truncated makes the reply fail the way a provider does when
// the plan is cut off by the token limit.
type MockResponse struct {
	Content   json.RawMessage
	Usage     Usage
	Err       error
	Truncated bool
}

// MockProvider replays queued responses in order and records every
// request. Content is checked against the request schema like a real
// provider would, so malformed fixtures fail the same way.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	Calls []Request
}

// NewMockProvider queues responses for replay.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if len(m.queue) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: errMockExhausted}
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	m.mu.Unlock()

	switch {
	case next.Err != nil:
		return nil, next.Err
	case next.Truncated:
		return nil, &ErrMaxTokensExceeded{Content: next.Content}
	}
	if err := validateResponse(req.Schema, next.Content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      m.ModelID(),
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount returns how many requests were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pending returns how many queued responses are left.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
