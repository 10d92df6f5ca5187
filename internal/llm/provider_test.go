package llm

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestMockProvider_StreamEmitsDeltas(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Deltas: []string{"Hello, ", "world", "!"}},
	)

	var got []string
	resp, err := mock.GenerateStream(context.Background(), Request{}, func(d string) {
		got = append(got, d)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 deltas, got %d", len(got))
	}
	if strings.Join(got, "") != "Hello, world!" {
		t.Fatalf("unexpected deltas: %q", got)
	}
	if string(resp.Content) != "Hello, world!" {
		t.Fatalf("accumulated content = %q", resp.Content)
	}
}

func TestMockProvider_StreamFallsBackToContent(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`all at once`)},
	)

	var got []string
	_, err := mock.GenerateStream(context.Background(), Request{}, func(d string) {
		got = append(got, d)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "all at once" {
		t.Fatalf("unexpected deltas: %q", got)
	}
}

func TestMockProvider_EmptyQueue(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	req := Request{System: "be brief", MaxTokens: 64}
	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("CallCount = %d", mock.CallCount())
	}
	if mock.Calls[0].System != "be brief" {
		t.Fatalf("recorded request = %+v", mock.Calls[0])
	}
}
