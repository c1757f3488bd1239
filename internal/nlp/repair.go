package nlp

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
)

// ErrUnparseable reports that an LLM reply contained no JSON object that
// could be parsed or repaired. It is a distinct condition, not a crash:
// callers fall back to the rule-based result.
var ErrUnparseable = errors.New("nlp: no parseable JSON in response")

const llmDatetimeLayout = "2006-01-02 15:04:05"

// ParseLLMPayload extracts the outermost {...} span from raw model output
// and decodes it, running it through JSON repair when strict parsing fails.
// Keys may be missing or wrongly typed; the caller repairs the gaps.
func ParseLLMPayload(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, ErrUnparseable
	}
	blob := raw[start : end+1]

	var payload map[string]any
	if err := json.Unmarshal([]byte(blob), &payload); err == nil {
		return payload, nil
	}

	repaired, err := jsonrepair.JSONRepair(blob)
	if err != nil {
		return nil, ErrUnparseable
	}
	if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
		return nil, ErrUnparseable
	}
	return payload, nil
}

// RepairSchedule fills the missing fields of a partial schedule record from
// the original text. Fields already present are never overwritten. The
// result is always fully populated; in particular StartTime is never zero.
func RepairSchedule(partial *ScheduleSlots, text string, now time.Time) *ScheduleSlots {
	normalized := Normalize(text)
	out := &ScheduleSlots{}
	if partial != nil {
		*out = *partial
	}

	if out.Category == "" {
		out.Category = DetectCategory(normalized)
	}
	if out.Title == "" {
		out.Title = ExtractTitle(normalized, out.Category)
	}
	if out.Description == "" {
		out.Description = ExtractDescription(normalized)
	}
	if out.StartTime.IsZero() {
		if ContainsTimePhrase(normalized) {
			out.StartTime = ResolveDateTime(normalized, now).At
		} else {
			// Storage cannot accept a null timestamp.
			out.StartTime = now.Add(time.Hour).Truncate(time.Minute)
		}
	}
	if out.DurationMinutes <= 0 {
		if out.Category == CategoryAlarm {
			out.DurationMinutes = alarmDurationMinutes
		} else {
			out.DurationMinutes = defaultDurationMinutes
		}
	}
	if out.Priority == "" {
		priority, matched := DetectPriority(normalized)
		if !matched && out.Category == CategoryAlarm {
			priority = PriorityHigh
		}
		out.Priority = priority
	}
	if out.Location == nil {
		out.Location = ExtractLocation(normalized)
	}
	if out.ReminderMinutes == nil {
		out.ReminderMinutes = ExtractReminderMinutes(normalized)
	}

	return out
}

// FromLLM converts a raw LLM reply into a Result, using the rule-based
// extractors to fill whatever the model left out. The original text and
// current time are required for that repair. Returns ErrUnparseable when
// the reply holds no usable JSON.
func (e *Engine) FromLLM(raw, text string, now time.Time) (Result, error) {
	payload, err := ParseLLMPayload(raw)
	if err != nil {
		return Result{}, err
	}

	normalized := Normalize(text)
	intent := parseIntent(payloadString(payload, "intent"))
	if intent == IntentUnknown {
		intent = Classify(normalized).Intent
	}

	confidence := payloadFloat(payload, "confidence")
	if confidence <= 0 || confidence > 1 {
		confidence = 0.7
	}

	result := Result{Classification: Classification{
		Intent:     intent,
		Confidence: confidence,
		Method:     MethodLLMAnalysis,
	}}

	switch intent {
	case IntentSchedule:
		partial := &ScheduleSlots{
			Title:           payloadString(payload, "title"),
			Description:     payloadString(payload, "description"),
			DurationMinutes: payloadInt(payload, "duration_minutes"),
			Category:        parseCategory(payloadString(payload, "category")),
			Priority:        parsePriority(payloadString(payload, "priority")),
		}
		if partial.Title == DefaultTitle {
			// The sentinel means "no title provided"; let repair retry.
			partial.Title = ""
		}
		if at, err := time.ParseInLocation(llmDatetimeLayout, payloadString(payload, "datetime"), now.Location()); err == nil {
			partial.StartTime = at
		}
		result.Schedule = RepairSchedule(partial, text, now)
	case IntentQuery:
		if scope := parseScope(payloadString(payload, "query_scope")); scope != "" {
			result.Query = &QuerySlots{Scope: scope}
		} else {
			result.Query = ExtractQuerySlots(normalized)
		}
	case IntentUpdate:
		result.Update = ExtractUpdateSlots(normalized, now)
	case IntentDelete:
		result.Delete = ExtractDeleteSlots(normalized)
	}

	return result, nil
}

func parseIntent(s string) Intent {
	switch Intent(s) {
	case IntentSchedule, IntentQuery, IntentUpdate, IntentDelete,
		IntentConversation, IntentGreeting, IntentThanks, IntentHelp,
		IntentTimeQuery, IntentDateQuery:
		return Intent(s)
	}
	return IntentUnknown
}

func parseCategory(s string) Category {
	switch Category(s) {
	case CategoryAlarm, CategoryMeeting, CategoryPersonal,
		CategoryWork, CategoryStudy, CategoryGeneral:
		return Category(s)
	}
	return ""
}

func parsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s)
	}
	return ""
}

func parseScope(s string) QueryScope {
	switch QueryScope(s) {
	case ScopeToday, ScopeTomorrow, ScopeWeek, ScopeAll:
		return QueryScope(s)
	}
	return ""
}

func payloadString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func payloadFloat(payload map[string]any, key string) float64 {
	switch v := payload[key].(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

func payloadInt(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
