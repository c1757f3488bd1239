// Package nlp turns informal Vietnamese text into a structured scheduling
// command: an intent plus typed slots. Every entry point is a pure function
// of (text, current time); the only process-wide state is the immutable
// pattern table and keyword lexicons compiled at init.
package nlp

import "time"

// Intent is the coarse category of what the user wants.
type Intent string

const (
	IntentSchedule     Intent = "schedule"
	IntentQuery        Intent = "query"
	IntentUpdate       Intent = "update"
	IntentDelete       Intent = "delete"
	IntentConversation Intent = "conversation"
	IntentGreeting     Intent = "greeting"
	IntentThanks       Intent = "thanks"
	IntentHelp         Intent = "help"
	IntentTimeQuery    Intent = "time_query"
	IntentDateQuery    Intent = "date_query"
	IntentUnknown      Intent = "unknown"
)

// Method reports how a classification was produced.
type Method string

const (
	MethodPatternScoring Method = "pattern_scoring"
	MethodFallback       Method = "fallback"
	MethodLLMAnalysis    Method = "llm_analysis"
)

// Classification is the classifier output. Confidence is a heuristic score
// in [0,1], not a calibrated probability.
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Method     Method  `json:"method"`
}

// Category of a scheduled event.
type Category string

const (
	CategoryAlarm    Category = "alarm"
	CategoryMeeting  Category = "meeting"
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryStudy    Category = "study"
	CategoryGeneral  Category = "general"
)

// Priority of a scheduled event.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultTitle is the sentinel used when no title could be extracted.
// Callers must treat it as "no title provided".
const DefaultTitle = "Sự kiện mới"

// ScheduleSlots is the slot record for intent=schedule. StartTime is always
// set: the resolver supplies a default rather than leaving it zero.
type ScheduleSlots struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Category        Category  `json:"category"`
	Priority        Priority  `json:"priority"`
	Location        *string   `json:"location,omitempty"`
	ReminderMinutes *int      `json:"reminder_minutes,omitempty"`
}

// QueryScope narrows a schedule listing.
type QueryScope string

const (
	ScopeToday    QueryScope = "today"
	ScopeTomorrow QueryScope = "tomorrow"
	ScopeWeek     QueryScope = "week"
	ScopeAll      QueryScope = "all"
)

// QuerySlots is the slot record for intent=query.
type QuerySlots struct {
	Scope QueryScope `json:"scope"`
}

// UpdateSlots is the slot record for intent=update. The three groups
// (ID, old/new title pair, time) are independent; any subset may be set.
type UpdateSlots struct {
	ScheduleID *int64     `json:"schedule_id,omitempty"`
	OldTitle   *string    `json:"old_title,omitempty"`
	NewTitle   *string    `json:"new_title,omitempty"`
	StartTime  *time.Time `json:"start_time,omitempty"`
}

// DeleteSlots is the slot record for intent=delete. A ScheduleID takes
// absolute precedence over TitleKeyword.
type DeleteSlots struct {
	ScheduleID     *int64    `json:"schedule_id,omitempty"`
	TitleKeyword   *string   `json:"title_keyword,omitempty"`
	SearchCategory *Category `json:"search_category,omitempty"`
}

// Result bundles a classification with the slot record for its intent.
// At most one of the slot pointers is non-nil.
type Result struct {
	Classification
	Schedule *ScheduleSlots `json:"schedule,omitempty"`
	Query    *QuerySlots    `json:"query,omitempty"`
	Update   *UpdateSlots   `json:"update,omitempty"`
	Delete   *DeleteSlots   `json:"delete,omitempty"`
}
