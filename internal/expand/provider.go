// Package expand implements the tip expansion pipeline: the OpenRouter
// provider adapter, response coercion, the local fallback generator, and
// the orchestrating service with its per-tip cache.
package expand

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"budgetapp/internal/core"
	"budgetapp/internal/tips"
)

const (
	systemPrompt = "You are a concise, factual financial literacy assistant. Output educational guidance only. No personal financial advice."

	maxOutputTokens = 600

	// errExcerptLen bounds how much of a provider error body is carried
	// into error messages.
	errExcerptLen = 180
)

// Provider issues single synchronous chat-completion calls against an
// OpenRouter-compatible gateway and coerces the result into an Expansion.
type Provider struct {
	baseURL    string
	httpClient *http.Client
}

// NewProvider creates a provider adapter for the given gateway base URL.
// The timeout applies to the whole outbound call; expiry surfaces as a
// transport failure.
func NewProvider(baseURL string, timeout time.Duration) *Provider {
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &metadataTransport{base: http.DefaultTransport},
		},
	}
}

// Expand resolves the tip, prompts the provider, and coerces the reply.
// It fails for unknown tip ids, a missing credential, transport errors,
// non-success provider statuses, and malformed response envelopes; body
// shape problems inside a successful reply degrade per field instead.
func (p *Provider) Expand(ctx context.Context, tipID, model, apiKey string) (*core.Expansion, error) {
	tip, ok := tips.ByID(tipID)
	if !ok {
		return nil, core.ErrUnknownTip
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, core.ErrMissingKey
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = p.baseURL
	cfg.HTTPClient = p.httpClient
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(tip)},
		},
		MaxTokens: maxOutputTokens,
	})
	if err != nil {
		return nil, providerError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openrouter returned no choices")
	}

	reportedModel := resp.Model
	if reportedModel == "" {
		reportedModel = model
	}
	completion := strings.TrimSpace(resp.Choices[0].Message.Content)
	return coerce(tip, completion, reportedModel, time.Now().UTC()), nil
}

func userPrompt(tip core.Tip) string {
	return fmt.Sprintf("Return STRICT JSON with keys: summary, deeperDive, keyPoints (array), actionPlan (array), sources (array of {title,url}). No markdown. If unsure about sources, return an empty array.\nBase Tip:\nTitle: %s\nCategory: %s\nContent: %s\nActionable: %s",
		tip.Title, tip.Category, tip.Body(), tip.Actionable)
}

// providerError converts go-openai errors into messages carrying the HTTP
// status and a bounded body excerpt.
func providerError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openrouter request failed (%d): %s", apiErr.HTTPStatusCode, excerpt(apiErr.Message, errExcerptLen))
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("openrouter request failed (%d): %s", reqErr.HTTPStatusCode, excerpt(reqErr.Error(), errExcerptLen))
	}
	return fmt.Errorf("contact openrouter: %w", err)
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// back off to a rune boundary so the cut never splits a multi-byte
	// character
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// metadataTransport attaches the optional attribution headers OpenRouter
// recommends to every outbound request.
type metadataTransport struct {
	base http.RoundTripper
}

func (t *metadataTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("HTTP-Referer", "http://localhost")
	clone.Header.Set("X-Title", "Budget AI Tip Expansion")
	return t.base.RoundTrip(clone)
}
