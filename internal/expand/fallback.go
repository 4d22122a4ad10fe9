package expand

import (
	"time"

	"budgetapp/internal/core"
	"budgetapp/internal/tips"
)

// fallbackKeyPoints are the fixed guidance strings used when no provider
// content is available.
var fallbackKeyPoints = []string{
	"Review base concept",
	"Apply actionable step",
	"Track impact over time",
}

// Fallback synthesizes a minimal expansion entirely from the tip's own
// static fields, tagged with the supplied reason code. No network call is
// made; it fails only for unknown tip ids.
func Fallback(tipID, reason string) (*core.Expansion, error) {
	tip, ok := tips.ByID(tipID)
	if !ok {
		return nil, core.ErrUnknownTip
	}
	stamp := time.Now().UTC().Format(time.RFC3339)
	return &core.Expansion{
		TipID:       tip.ID,
		BaseTipID:   tip.ID,
		Summary:     tip.Description,
		DeeperDive:  tip.Body(),
		KeyPoints:   append([]string(nil), fallbackKeyPoints...),
		ActionPlan:  actionableOrEmpty(tip),
		Sources:     []core.SourceRef{},
		Model:       core.ModelFallback,
		GeneratedAt: stamp,
		CreatedAt:   stamp,
		Origin:      core.SourceFallback,
		Reason:      reason,
	}, nil
}
