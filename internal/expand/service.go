package expand

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"budgetapp/internal/cache"
	"budgetapp/internal/config"
	"budgetapp/internal/core"
	"budgetapp/internal/tips"
)

// Service orchestrates expansion requests: credential re-check, per-tip
// caching, provider/fallback routing, and reason annotation. The cache is
// injected at construction and scoped to the server's lifetime.
type Service struct {
	cache    *cache.Store[*core.Expansion]
	provider *Provider
	creds    func() config.Credentials
	sf       singleflight.Group
}

// NewService wires an orchestrator. creds is invoked at the top of every
// request cycle so a credential added or removed between requests takes
// effect without a restart.
func NewService(store *cache.Store[*core.Expansion], provider *Provider, creds func() config.Credentials) *Service {
	return &Service{cache: store, provider: provider, creds: creds}
}

// Result is an expansion plus whether it was served from the cache.
type Result struct {
	Expansion *core.Expansion
	Cached    bool
}

// Expand resolves the expansion for a tip id. Provider-side failures never
// propagate: they are converted into fallback expansions so the caller
// always gets something renderable. Only an unknown tip id is an error.
func (s *Service) Expand(ctx context.Context, tipID string) (Result, error) {
	if _, ok := tips.ByID(tipID); !ok {
		return Result{}, core.ErrUnknownTip
	}
	creds := s.creds()

	if exp, ok := s.cachedSnapshot(ctx, tipID, creds); ok {
		return Result{Expansion: exp, Cached: true}, nil
	}

	// Coalesce concurrent misses for the same id into one upstream call.
	v, err, _ := s.sf.Do(tipID, func() (any, error) {
		if exp, ok := s.cachedSnapshot(ctx, tipID, creds); ok {
			return exp, nil
		}
		exp, err := s.resolve(ctx, tipID, creds)
		if err != nil {
			return nil, err
		}
		// Fallback results are cached too; a transient provider failure
		// sticks for the rest of the process run (no retry policy).
		// Callers get a copy taken before publication; after Set, the
		// stored object is only touched under the store lock.
		snap := *exp
		s.cache.Set(tipID, exp)
		return &snap, nil
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Expansion: v.(*core.Expansion), Cached: false}, nil
}

// cachedSnapshot returns a private copy of the cached entry for callers to
// hold and encode freely. When the key was removed after a provider entry
// was generated, the stored object is first annotated in place so later
// reads observe it; a plain success stamp does not count as an annotation.
// Annotation and copy both happen under the store lock so concurrent
// requests for the same tip never race on the shared object.
func (s *Service) cachedSnapshot(ctx context.Context, tipID string, creds config.Credentials) (*core.Expansion, bool) {
	var snap core.Expansion
	annotated := false
	ok := s.cache.Update(tipID, func(exp *core.Expansion) *core.Expansion {
		if !creds.Present() && exp.Origin == core.SourceOpenRouter &&
			(exp.Reason == "" || exp.Reason == core.ReasonSuccess) {
			exp.Reason = core.ReasonCachedWithoutKey
			annotated = true
		}
		snap = *exp
		return exp
	})
	if !ok {
		return nil, false
	}
	if annotated {
		slog.InfoContext(ctx, "Annotated cached expansion", "tip_id", tipID, "reason", core.ReasonCachedWithoutKey)
	}
	return &snap, true
}

func (s *Service) resolve(ctx context.Context, tipID string, creds config.Credentials) (*core.Expansion, error) {
	if !creds.Present() {
		return Fallback(tipID, core.ReasonMissingKey)
	}

	exp, err := s.provider.Expand(ctx, tipID, creds.Model, creds.Key)
	if err != nil {
		reason := core.ReasonError
		if errors.Is(err, core.ErrMissingKey) {
			reason = core.ReasonMissingKey
		}
		fb, fbErr := Fallback(tipID, reason)
		if fbErr != nil {
			return nil, fbErr
		}
		fb.DeeperDive += "\n(Original error: " + err.Error() + ")"
		slog.WarnContext(ctx, "Provider expansion failed, using fallback",
			"tip_id", tipID, "reason", reason, "error", err)
		return fb, nil
	}

	if exp.Origin == "" {
		exp.Origin = core.SourceOpenRouter
	}
	if exp.Reason == "" {
		exp.Reason = core.ReasonSuccess
	}
	return exp, nil
}

// Status reports credential presence and the configured model identifier.
// The credential value itself is never exposed.
func (s *Service) Status() (keyPresent bool, model string) {
	creds := s.creds()
	return creds.Present(), creds.Model
}
