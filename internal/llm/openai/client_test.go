package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"das-backend/internal/llm"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(" ", "gpt-4o"); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	client, err := NewClient("key", "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.model != defaultModel {
		t.Fatalf("expected default model, got %q", client.model)
	}
}

func TestGenerateSendsPromptAndReturnsContent(t *testing.T) {
	var mu sync.Mutex
	var gotPath, gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody = payload
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  The total is 42.  "}}],"usage":{"prompt_tokens":10,"completion_tokens":4,"total_tokens":14}}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "gpt-4o-mini", WithBaseURL(server.URL+"/v1/"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got, err := client.Generate(context.Background(), "What is the total?")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "The total is 42." {
		t.Fatalf("unexpected content: %q", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotPath != "/v1/chat/completions" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	messages, ok := gotBody["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("unexpected messages: %v", gotBody["messages"])
	}
	msg := messages[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "What is the total?" {
		t.Fatalf("unexpected message: %v", msg)
	}
	if _, ok := gotBody["temperature"]; !ok {
		t.Fatalf("expected temperature for non gpt-5 model")
	}
}

func TestGenerateOmitsTemperatureForGPT5(t *testing.T) {
	var mu sync.Mutex
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		mu.Lock()
		gotBody = payload
		mu.Unlock()
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client, _ := NewClient("k", "gpt-5-mini", WithBaseURL(server.URL))
	if _, err := client.Generate(context.Background(), "hi"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := gotBody["temperature"]; ok {
		t.Fatalf("expected temperature to be omitted for gpt-5 models")
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key","type":"invalid_request_error"}}`, wantMsg: "bad key"},
		{name: "non json error", status: http.StatusBadGateway, body: `upstream down`, wantMsg: "http status 502"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantMsg: "missing choices"},
		{name: "empty content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"   "}}]}`, wantMsg: "empty content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, _ := NewClient("k", "gpt-4o", WithBaseURL(server.URL))
			_, err := client.Generate(context.Background(), "q")

			var genErr *llm.GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("expected GenerationError, got %v", err)
			}
			if genErr.Provider != "openai" {
				t.Fatalf("unexpected provider: %s", genErr.Provider)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected %q in %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, _ := NewClient("k", "gpt-4o", WithBaseURL(server.URL), WithTimeout(50*time.Millisecond))
	_, err := client.Generate(context.Background(), "q")

	var genErr *llm.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("expected timeout error, got %v", err)
	}
}
