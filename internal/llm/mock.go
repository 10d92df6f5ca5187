package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	// Deltas, when set, is the fragment sequence emitted by
	// GenerateStream before the final response is returned. When empty,
	// Content is emitted as a single delta.
	Deltas []string
	Usage  Usage
	Err    error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	canned, err := m.next(req)
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:    canned.Content,
		Usage:      canned.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// GenerateStream emits the next canned response's Deltas in order, then
// returns the accumulated response.
func (m *MockProvider) GenerateStream(_ context.Context, req Request, onDelta StreamHandler) (*Response, error) {
	canned, err := m.next(req)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if len(canned.Deltas) > 0 {
		for _, d := range canned.Deltas {
			onDelta(d)
			b.WriteString(d)
		}
	} else if len(canned.Content) > 0 {
		onDelta(string(canned.Content))
		b.Write(canned.Content)
	}

	return &Response{
		Content:    json.RawMessage(b.String()),
		Usage:      canned.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate/GenerateStream calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockProvider) next(req Request) (MockResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return MockResponse{}, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return MockResponse{}, resp.Err
	}
	return resp, nil
}
