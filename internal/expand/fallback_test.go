package expand

import (
	"errors"
	"testing"

	"budgetapp/internal/core"
)

func TestFallbackEmergencyFund(t *testing.T) {
	exp, err := Fallback("tip-emergency-fund", core.ReasonMissingKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exp.TipID != "tip-emergency-fund" || exp.BaseTipID != exp.TipID {
		t.Fatalf("ids = %q/%q", exp.TipID, exp.BaseTipID)
	}
	if exp.Origin != core.SourceFallback {
		t.Fatalf("origin = %q", exp.Origin)
	}
	if exp.Reason != core.ReasonMissingKey {
		t.Fatalf("reason = %q", exp.Reason)
	}
	if exp.Model != core.ModelFallback {
		t.Fatalf("model = %q", exp.Model)
	}
	wantPoints := []string{"Review base concept", "Apply actionable step", "Track impact over time"}
	if len(exp.KeyPoints) != len(wantPoints) {
		t.Fatalf("keyPoints = %v", exp.KeyPoints)
	}
	for i, p := range wantPoints {
		if exp.KeyPoints[i] != p {
			t.Fatalf("keyPoints[%d] = %q, want %q", i, exp.KeyPoints[i], p)
		}
	}
	wantAction := "Open a high-yield savings account and set an automatic weekly transfer."
	if len(exp.ActionPlan) != 1 || exp.ActionPlan[0] != wantAction {
		t.Fatalf("actionPlan = %v", exp.ActionPlan)
	}
	if len(exp.Sources) != 0 {
		t.Fatalf("sources = %v", exp.Sources)
	}
	if exp.GeneratedAt == "" || exp.GeneratedAt != exp.CreatedAt {
		t.Fatalf("timestamps = %q/%q", exp.GeneratedAt, exp.CreatedAt)
	}
	if err := exp.Validate(); err != nil {
		t.Fatalf("fallback expansion invalid: %v", err)
	}
}

func TestFallbackUnknownTip(t *testing.T) {
	if _, err := Fallback("tip-nonexistent", core.ReasonError); !errors.Is(err, core.ErrUnknownTip) {
		t.Fatalf("expected ErrUnknownTip, got %v", err)
	}
}

func TestFallbackKeyPointsIsolated(t *testing.T) {
	a, _ := Fallback("tip-round-up", core.ReasonError)
	a.KeyPoints[0] = "mutated"
	b, _ := Fallback("tip-round-up", core.ReasonError)
	if b.KeyPoints[0] != "Review base concept" {
		t.Fatal("fallback key points share backing storage across calls")
	}
}
