// Package client implements the API consumer side: it picks the tip of the
// day, requests expansions from the server, and caches results in memory and
// in a persistent store so repeat views never re-hit the network.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"budgetapp/internal/core"
	"budgetapp/internal/tips"
)

// maxBodyExcerpt bounds how much of an unparseable response body is quoted
// in error messages.
const maxBodyExcerpt = 120

// Store is the persistent half of the client cache. internal/storage
// provides the SQLite implementation; tests substitute fakes.
type Store interface {
	DailyTip(ctx context.Context) (date, tipID string, ok bool, err error)
	SetDailyTip(ctx context.Context, date, tipID string) error
	Expansion(ctx context.Context, tipID string) (*core.Expansion, bool, error)
	PutExpansion(ctx context.Context, exp *core.Expansion) error
}

type Requestor struct {
	apiBase    string
	httpClient *http.Client
	store      Store

	mu        sync.Mutex
	memory    map[string]*core.Expansion
	lastError string
}

// NewRequestor builds a requestor for the API at apiBase. store may be nil,
// in which case only the in-memory cache is used.
func NewRequestor(apiBase string, store Store) *Requestor {
	return &Requestor{
		apiBase:    strings.TrimRight(apiBase, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		memory:     make(map[string]*core.Expansion),
	}
}

// CurrentTip returns the tip for the given day. The choice is persisted so
// the same tip shows all day; a stale or unknown persisted record is
// recomputed from the date.
func (r *Requestor) CurrentTip(ctx context.Context, now time.Time) (core.Tip, error) {
	day := tips.DayKey(now)

	if r.store != nil {
		date, tipID, ok, err := r.store.DailyTip(ctx)
		if err != nil {
			return core.Tip{}, err
		}
		if ok && date == day {
			if tip, found := tips.ByID(tipID); found {
				return tip, nil
			}
		}
	}

	tip := tips.PickForDate(now)
	if r.store != nil {
		if err := r.store.SetDailyTip(ctx, day, tip.ID); err != nil {
			return core.Tip{}, err
		}
	}
	return tip, nil
}

// AnotherTip returns a random tip outside the excluded set. It does not
// change the persisted daily tip.
func (r *Requestor) AnotherTip(excludeIDs []string) core.Tip {
	return tips.RandomExcluding(excludeIDs)
}

// Expand returns the expansion for a tip, preferring the memory cache, then
// the persistent store, then the server. The second return reports whether
// the result came from a local cache.
func (r *Requestor) Expand(ctx context.Context, tipID string) (*core.Expansion, bool, error) {
	r.mu.Lock()
	if exp, ok := r.memory[tipID]; ok {
		r.lastError = ""
		r.mu.Unlock()
		return exp, true, nil
	}
	r.mu.Unlock()

	if r.store != nil {
		exp, ok, err := r.store.Expansion(ctx, tipID)
		if err != nil {
			return nil, false, r.fail(err)
		}
		if ok {
			r.remember(tipID, exp)
			return exp, true, nil
		}
	}

	exp, err := r.fetchExpansion(ctx, tipID)
	if err != nil {
		return nil, false, r.fail(err)
	}

	r.remember(tipID, exp)
	if r.store != nil {
		if err := r.store.PutExpansion(ctx, exp); err != nil {
			return nil, false, r.fail(err)
		}
	}
	return exp, false, nil
}

// LastError reports the most recent expansion failure as plain text, or ""
// when the last operation succeeded. Presentation layers surface it as-is.
func (r *Requestor) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastError
}

// Status queries the server's credential status.
func (r *Requestor) Status(ctx context.Context) (keyPresent bool, model string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.apiBase+"/api/status", nil)
	if err != nil {
		return false, "", err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false, "", fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		OK         bool   `json:"ok"`
		KeyPresent bool   `json:"keyPresent"`
		Model      string `json:"model"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, "", fmt.Errorf("decode status response: %w", err)
	}
	if !payload.OK {
		return false, "", fmt.Errorf("status request failed with status %d", resp.StatusCode)
	}
	return payload.KeyPresent, payload.Model, nil
}

func (r *Requestor) remember(tipID string, exp *core.Expansion) {
	r.mu.Lock()
	r.memory[tipID] = exp
	r.lastError = ""
	r.mu.Unlock()
}

func (r *Requestor) fail(err error) error {
	r.mu.Lock()
	r.lastError = err.Error()
	r.mu.Unlock()
	return err
}

// fetchExpansion performs the POST and defensively parses the response.
// Bodies that are not JSON, or JSON of the wrong shape, become descriptive
// errors carrying the status code and a short excerpt, never panics.
func (r *Requestor) fetchExpansion(ctx context.Context, tipID string) (*core.Expansion, error) {
	body, err := json.Marshal(map[string]string{"tipId": tipID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.apiBase+"/api/tips/expand", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("expand request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read expand response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return nil, fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, bodyExcerpt(raw))
	}

	var envelope struct {
		OK     bool            `json:"ok"`
		Error  string          `json:"error"`
		Cached bool            `json:"cached"`
		Data   *core.Expansion `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("invalid response body (status %d): %s", resp.StatusCode, bodyExcerpt(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.OK {
		if envelope.Error != "" {
			return nil, fmt.Errorf("%s", envelope.Error)
		}
		return nil, fmt.Errorf("expand request failed with status %d", resp.StatusCode)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("empty expansion payload (status %d)", resp.StatusCode)
	}
	if envelope.Data.BaseTipID != tipID {
		return nil, fmt.Errorf("expansion is for tip %q, requested %q", envelope.Data.BaseTipID, tipID)
	}
	return envelope.Data, nil
}

func bodyExcerpt(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "(empty body)"
	}
	if len(s) > maxBodyExcerpt {
		// back off to a rune boundary so the cut never splits a multi-byte
		// character
		n := maxBodyExcerpt
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n] + "…"
	}
	return s
}
