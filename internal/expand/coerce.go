package expand

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"budgetapp/internal/core"
)

// decoded is the tagged outcome of parsing a completion: either a
// structured JSON payload with independently coercible fields, or the raw
// completion text. The provider's output is untrusted free text pretending
// to be structured data, so a structural parse failure never fails the
// expansion — it selects the raw variant instead.
type decoded struct {
	structured bool
	fields     map[string]json.RawMessage
	raw        string
}

func decodeCompletion(text string) decoded {
	candidate := stripFences(text)
	var probe any
	if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
		return decoded{raw: strings.TrimSpace(text)}
	}
	// Valid JSON that is not an object leaves fields nil; every field then
	// takes its default.
	var fields map[string]json.RawMessage
	_ = json.Unmarshal([]byte(candidate), &fields)
	return decoded{structured: true, fields: fields}
}

// stripFences removes a leading ```json marker and a trailing ``` fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 7 && strings.EqualFold(s[:7], "```json") {
		s = strings.TrimPrefix(s[7:], "\n")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// coerce turns a completion into an Expansion. Every field defaults
// independently: a malformed field degrades to tip-derived content without
// discarding the rest of the response.
func coerce(tip core.Tip, completion, model string, now time.Time) *core.Expansion {
	d := decodeCompletion(completion)

	var summary, deeperDive string
	var keyPoints, actionPlan []string
	var actionPlanSet bool
	var sources []core.SourceRef

	if d.structured {
		summary = stringField(d.fields, "summary")
		deeperDive = firstNonEmpty(
			stringField(d.fields, "deeperDive"),
			stringField(d.fields, "details"),
			stringField(d.fields, "content"),
		)
		keyPoints, _ = stringsField(d.fields, "keyPoints", core.MaxKeyPoints)
		actionPlan, actionPlanSet = stringsField(d.fields, "actionPlan", core.MaxActionPlan)
		sources = sourcesField(d.fields)
	} else {
		deeperDive = d.raw
		actionPlan, actionPlanSet = actionableOrEmpty(tip), true
	}

	if !actionPlanSet {
		actionPlan = actionableOrEmpty(tip)
	}
	if keyPoints == nil {
		keyPoints = []string{}
	}
	if sources == nil {
		sources = []core.SourceRef{}
	}

	stamp := now.Format(time.RFC3339)
	return &core.Expansion{
		TipID:       tip.ID,
		BaseTipID:   tip.ID,
		Summary:     firstNonEmpty(summary, tip.Description),
		DeeperDive:  firstNonEmpty(deeperDive, tip.Content, tip.Description),
		KeyPoints:   keyPoints,
		ActionPlan:  actionPlan,
		Sources:     sources,
		Model:       model,
		GeneratedAt: stamp,
		CreatedAt:   stamp,
		Origin:      core.SourceOpenRouter,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func actionableOrEmpty(tip core.Tip) []string {
	if tip.Actionable != "" {
		return []string{tip.Actionable}
	}
	return []string{}
}

// stringField returns the field's text, or "" when absent or not a string.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// stringsField returns the field as a string slice capped at max. The
// second return reports whether the field was an actual sequence; wrong
// shapes count as absent. Scalar entries keep their literal text, nested
// structures are dropped.
func stringsField(fields map[string]json.RawMessage, key string, max int) ([]string, bool) {
	raw, ok := fields[key]
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if len(out) == max {
			break
		}
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		literal := strings.TrimSpace(string(item))
		if literal == "" || literal == "null" || literal[0] == '{' || literal[0] == '[' {
			continue
		}
		out = append(out, literal)
	}
	return out, true
}

// sourcesField filters source entries to those with a non-empty title,
// coercing url to text-or-absent and capping the result.
func sourcesField(fields map[string]json.RawMessage) []core.SourceRef {
	raw, ok := fields["sources"]
	if !ok {
		return nil
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]core.SourceRef, 0, len(items))
	for _, item := range items {
		if len(out) == core.MaxSources {
			break
		}
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title := anyToText(entry["title"])
		if title == "" {
			continue
		}
		out = append(out, core.SourceRef{Title: title, URL: anyToText(entry["url"])})
	}
	return out
}

func anyToText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
