package expand

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"budgetapp/internal/core"
)

// completionBody builds a minimal chat-completion response envelope.
func completionBody(t *testing.T, model, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"id":     "gen-test",
		"object": "chat.completion",
		"model":  model,
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": content},
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal completion: %v", err)
	}
	return body
}

func stubGateway(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewProvider(ts.URL, 5*time.Second)
}

func TestProviderExpandSuccess(t *testing.T) {
	var gotAuth, gotReferer string
	var gotReq struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	p := stubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionBody(t, "openai/gpt-4o-mini", `{"summary":"S","deeperDive":"D","keyPoints":["k"],"actionPlan":["a"],"sources":[]}`))
	})

	exp, err := p.Expand(context.Background(), "tip-emergency-fund", "openai/gpt-4o-mini", "sk-or-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer sk-or-test" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if gotReferer == "" {
		t.Fatal("expected metadata headers on outbound request")
	}
	if gotReq.MaxTokens != maxOutputTokens {
		t.Fatalf("max_tokens = %d", gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("messages = %+v", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[1].Content, "Build an Emergency Fund") {
		t.Fatalf("user prompt missing tip title: %q", gotReq.Messages[1].Content)
	}
	if exp.Summary != "S" || exp.DeeperDive != "D" {
		t.Fatalf("coerced = %q/%q", exp.Summary, exp.DeeperDive)
	}
	if exp.Model != "openai/gpt-4o-mini" {
		t.Fatalf("model = %q", exp.Model)
	}
	if exp.Origin != core.SourceOpenRouter {
		t.Fatalf("origin = %q", exp.Origin)
	}
}

func TestProviderExpandNonJSONCompletion(t *testing.T) {
	p := stubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionBody(t, "m", "Plainly, not JSON at all."))
	})

	exp, err := p.Expand(context.Background(), "tip-round-up", "m", "sk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp.DeeperDive != "Plainly, not JSON at all." {
		t.Fatalf("deeperDive = %q", exp.DeeperDive)
	}
	if len(exp.KeyPoints) != 0 {
		t.Fatalf("keyPoints = %v", exp.KeyPoints)
	}
}

func TestProviderExpandNonSuccessStatus(t *testing.T) {
	p := stubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream melted", http.StatusBadGateway)
	})

	_, err := p.Expand(context.Background(), "tip-round-up", "m", "sk")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("error %q missing status code", err.Error())
	}
}

func TestProviderExpandUnknownTip(t *testing.T) {
	p := NewProvider("http://127.0.0.1:0", time.Second)
	if _, err := p.Expand(context.Background(), "tip-nonexistent", "m", "sk"); !errors.Is(err, core.ErrUnknownTip) {
		t.Fatalf("expected ErrUnknownTip, got %v", err)
	}
}

func TestProviderExpandMissingKey(t *testing.T) {
	p := NewProvider("http://127.0.0.1:0", time.Second)
	if _, err := p.Expand(context.Background(), "tip-round-up", "m", "  "); !errors.Is(err, core.ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}

func TestProviderExpandTransportError(t *testing.T) {
	// Closed server: connection refused must surface as an error.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	p := NewProvider(url, time.Second)
	if _, err := p.Expand(context.Background(), "tip-round-up", "m", "sk"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestExcerptKeepsRuneBoundary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short string untouched", in: "hello", n: 180, want: "hello"},
		{name: "ascii cut", in: "abcdef", n: 3, want: "abc"},
		{name: "cut inside rune backs off", in: "ab€cd", n: 3, want: "ab"},
		{name: "cut at rune end keeps it", in: "ab€cd", n: 5, want: "ab€"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := excerpt(tt.in, tt.n)
			if got != tt.want {
				t.Fatalf("excerpt(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("excerpt produced invalid UTF-8: %q", got)
			}
		})
	}
}
