package core

import (
	"errors"
	"strings"
)

const (
	Budgeting TipCategory = "budgeting"
	Saving    TipCategory = "saving"
	Investing TipCategory = "investing"
	Debt      TipCategory = "debt"
	Mindset   TipCategory = "mindset"
)

// Expansion origin values.
const (
	SourceOpenRouter = "openrouter"
	SourceFallback   = "fallback"
)

// Machine-readable reason codes attached to expansions.
const (
	ReasonSuccess          = "success"
	ReasonMissingKey       = "missing-key"
	ReasonError            = "error"
	ReasonCachedWithoutKey = "cached-without-key"
)

// ModelFallback is the sentinel model identifier for locally generated expansions.
const ModelFallback = "fallback-local"

// Caps applied during expansion coercion.
const (
	MaxKeyPoints  = 12
	MaxActionPlan = 12
	MaxSources    = 8
)

type (
	TipCategory string

	// Tip is a static educational record. Tips are defined at process start
	// and never mutated.
	Tip struct {
		ID          string      `json:"id"`
		Category    TipCategory `json:"category"`
		Title       string      `json:"title"`
		Description string      `json:"description"`
		Content     string      `json:"content,omitempty"`
		Actionable  string      `json:"actionable,omitempty"`
		Difficulty  string      `json:"difficulty,omitempty"`
	}

	// SourceRef is a reference entry attached to an expansion.
	SourceRef struct {
		Title string `json:"title"`
		URL   string `json:"url,omitempty"`
	}

	// Expansion is an AI- or fallback-generated elaboration of a Tip,
	// cached per tip id. CreatedAt is a legacy alias and always equals
	// GeneratedAt.
	Expansion struct {
		TipID       string      `json:"tipId"`
		BaseTipID   string      `json:"baseTipId"`
		Summary     string      `json:"summary"`
		DeeperDive  string      `json:"deeperDive"`
		KeyPoints   []string    `json:"keyPoints"`
		ActionPlan  []string    `json:"actionPlan"`
		Sources     []SourceRef `json:"sources"`
		Model       string      `json:"model"`
		GeneratedAt string      `json:"generatedAt"`
		CreatedAt   string      `json:"createdAt"`
		Origin      string      `json:"source,omitempty"`
		Reason      string      `json:"reason,omitempty"`
	}
)

var (
	ErrUnknownTip   = errors.New("unknown tip id")
	ErrMissingKey   = errors.New("provider credential not configured")
	ErrInvalidTipID = errors.New("invalid tip id")
)

// ValidateTipID checks that an id is a well-formed identifier string.
func ValidateTipID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > 100 {
		return ErrInvalidTipID
	}
	for _, r := range id {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' {
			continue
		}
		return ErrInvalidTipID
	}
	return nil
}

// Body returns the extended tip text, falling back to the short description.
func (t Tip) Body() string {
	if t.Content != "" {
		return t.Content
	}
	return t.Description
}

func (e Expansion) Validate() error {
	if e.TipID == "" {
		return ErrInvalidTipID
	}
	if e.BaseTipID != e.TipID {
		return errors.New("baseTipId must equal tipId")
	}
	if len(e.KeyPoints) > MaxKeyPoints {
		return errors.New("too many key points")
	}
	if len(e.ActionPlan) > MaxActionPlan {
		return errors.New("too many action plan steps")
	}
	if len(e.Sources) > MaxSources {
		return errors.New("too many sources")
	}
	for _, s := range e.Sources {
		if strings.TrimSpace(s.Title) == "" {
			return errors.New("source entry without title")
		}
	}
	return nil
}
