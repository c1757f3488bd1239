package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	alarmDurationMinutes   = 15
	defaultDurationMinutes = 60
)

// ExtractScheduleSlots builds a complete schedule record from normalized
// text. Every field is populated: absent information falls back to the
// documented defaults.
func ExtractScheduleSlots(text string, now time.Time) *ScheduleSlots {
	category := DetectCategory(text)
	ti := ResolveDateTime(text, now)

	duration := defaultDurationMinutes
	if category == CategoryAlarm {
		duration = alarmDurationMinutes
	}

	priority, matched := DetectPriority(text)
	if !matched && category == CategoryAlarm {
		// Alarms are time-critical by convention.
		priority = PriorityHigh
	}

	return &ScheduleSlots{
		Title:           ExtractTitle(text, category),
		Description:     ExtractDescription(text),
		StartTime:       ti.At,
		DurationMinutes: duration,
		Category:        category,
		Priority:        priority,
		Location:        ExtractLocation(text),
		ReminderMinutes: ExtractReminderMinutes(text),
	}
}

var allScopeWords = []string{"tất cả", "các", "hiện có", "toàn bộ"}

// ExtractQuerySlots resolves the listing scope by keyword priority:
// tomorrow > today > week > explicit all > default all.
func ExtractQuerySlots(text string) *QuerySlots {
	scope := ScopeAll
	switch {
	case strings.Contains(text, "mai"):
		scope = ScopeTomorrow
	case strings.Contains(text, "hôm nay"):
		scope = ScopeToday
	case strings.Contains(text, "tuần"):
		scope = ScopeWeek
	default:
		for _, kw := range allScopeWords {
			if strings.Contains(text, kw) {
				scope = ScopeAll
				break
			}
		}
	}
	return &QuerySlots{Scope: scope}
}

var (
	renameRe     = regexp.MustCompile(`(?:sửa|sửa lại|đổi|thay đổi)\s+(.+?)\s+thành\s+(.+)`)
	scheduleIDRe = regexp.MustCompile(`(?:lịch\s*)?(?:có\s+)?id\s*(?:bằng|là|=)?\s*(\d+)`)
)

// ExtractUpdateSlots pulls the independent pieces of an update request:
// an "X thành Y" rename pair, an explicit numeric ID, and a new time when a
// time phrase is present. Any subset may be set.
func ExtractUpdateSlots(text string, now time.Time) *UpdateSlots {
	slots := &UpdateSlots{}

	if m := renameRe.FindStringSubmatch(text); m != nil {
		if old := cleanTitleEdges(m[1]); old != "" {
			slots.OldTitle = &old
		}
		if nw := cleanTitleEdges(m[2]); nw != "" {
			slots.NewTitle = &nw
		}
	}

	if m := scheduleIDRe.FindStringSubmatch(text); m != nil {
		id, _ := strconv.ParseInt(m[1], 10, 64)
		slots.ScheduleID = &id
	}

	if ContainsTimePhrase(text) {
		at := ResolveDateTime(text, now).At
		slots.StartTime = &at
	}

	return slots
}

// Delete-by-name patterns: explicit "named X" forms first, then the
// generic "delete X".
var deleteNamePatterns = compile(
	`xóa\s+lịch\s+(?:có\s+tên|tên\s+là|với\s+tên)\s+(.+)`,
	`hủy\s+lịch\s+(?:có\s+tên|tên\s+là|với\s+tên)\s+(.+)`,
	`xóa\s+(.+)`,
	`hủy\s+(.+)`,
)

var (
	deleteTimeIndicators = []string{"lúc", "vào", "ngày", "mai", "hôm nay", "sáng", "chiều", "tối"}
	deleteStopPhrases    = []string{"cho tôi", "giúp tôi", "giùm tôi", "giúp", "cho"}
	timeTokenRe          = regexp.MustCompile(`\d+[h:\s]*`)
)

// ExtractDeleteSlots identifies the deletion target. An explicit numeric ID
// short-circuits; otherwise the cleaned title keyword plus an optional
// category hint narrow later matching.
func ExtractDeleteSlots(text string) *DeleteSlots {
	slots := &DeleteSlots{}

	if m := scheduleIDRe.FindStringSubmatch(text); m != nil {
		id, _ := strconv.ParseInt(m[1], 10, 64)
		slots.ScheduleID = &id
		return slots
	}

	for _, re := range deleteNamePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if kw := cleanDeleteKeyword(m[1]); kw != "" {
			slots.TitleKeyword = &kw
			break
		}
	}

	if cat := deleteSearchCategory(text); cat != "" {
		slots.SearchCategory = &cat
	}

	return slots
}

func deleteSearchCategory(text string) Category {
	for _, kw := range []string{"báo thức", "nhắc", "đánh thức"} {
		if strings.Contains(text, kw) {
			return CategoryAlarm
		}
	}
	for _, kw := range []string{"họp", "hẹn"} {
		if strings.Contains(text, kw) {
			return CategoryMeeting
		}
	}
	return ""
}

// cleanDeleteKeyword strips trailing time expressions, politeness fillers
// and digit+unit tokens from a captured keyword.
func cleanDeleteKeyword(raw string) string {
	kw := strings.TrimSpace(raw)

	for _, ind := range deleteTimeIndicators {
		if idx := strings.Index(kw, ind); idx >= 0 {
			kw = strings.TrimSpace(kw[:idx])
		}
	}
	for _, phrase := range deleteStopPhrases {
		kw = strings.TrimSpace(strings.ReplaceAll(kw, phrase, ""))
	}
	kw = strings.TrimSpace(timeTokenRe.ReplaceAllString(kw, ""))

	return kw
}

var titleEdgeWords = []string{"về", "cho", "vào", "lúc", "ngày", "vào lúc", "vào ngày"}

// cleanTitleEdges trims connective words from both ends of a captured
// rename operand.
func cleanTitleEdges(title string) string {
	t := strings.TrimSpace(title)
	for _, w := range titleEdgeWords {
		if strings.HasPrefix(t, w+" ") {
			t = strings.TrimSpace(t[len(w):])
		}
		if strings.HasSuffix(t, " "+w) {
			t = strings.TrimSpace(t[:len(t)-len(w)])
		}
	}
	return t
}
