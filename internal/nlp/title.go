package nlp

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Title extraction is a chain of strategies tried in order; the first
// sufficiently long result wins. Quoted text beats trigger keywords beats
// end-of-sentence remainder beats main-content salvage.

const minTitleLen = 3 // runes

var (
	doubleQuotedRe = regexp.MustCompile(`["“”]([^"“”]+)["“”]`)
	singleQuotedRe = regexp.MustCompile(`'([^']+)'`)
)

// Trigger phrases announcing a title, quoted variants first.
var titleKeywordPatterns = compile(
	`với\s+tiêu\s+đề\s+là\s+["“”]([^"“”]+)["“”]`,
	`tiêu\s+đề\s+là\s+["“”]([^"“”]+)["“”]`,
	`tên\s+là\s+["“”]([^"“”]+)["“”]`,
	`với\s+tên\s+là\s+["“”]([^"“”]+)["“”]`,
	`đặt\s+tên\s+là\s+["“”]([^"“”]+)["“”]`,
	`gọi\s+là\s+["“”]([^"“”]+)["“”]`,
	`với\s+tiêu\s+đề\s+là\s+(.+)`,
	`tiêu\s+đề\s+là\s+(.+)`,
	`tên\s+là\s+(.+)`,
	`với\s+tên\s+là\s+(.+)`,
	`thành\s+(.+)`,
	`là\s+(.+)`,
)

// Leading time expression followed by the remainder of the sentence.
var titleEndPatterns = compile(
	`lúc\s+\d{1,2}(?:h|:\d{2})?\s*(?:sáng|chiều|tối)?\s*(?:ngày\s+mai|mai|hôm\s+nay)?\s*(.+)`,
	`vào\s+\d{1,2}(?:h|:\d{2})?\s*(?:sáng|chiều|tối)?\s*(?:ngày\s+mai|mai|hôm\s+nay)?\s*(.+)`,
	`ngày\s+mai\s+lúc\s+\d{1,2}(?:h|:\d{2})?\s*(?:sáng|chiều|tối)?\s*(.+)`,
	`hôm\s+nay\s+lúc\s+\d{1,2}(?:h|:\d{2})?\s*(?:sáng|chiều|tối)?\s*(.+)`,
	`thứ\s+\S+\s+lúc\s+\d{1,2}(?:h|:\d{2})?\s*(.+)`,
)

// Action/time fragments stripped before main-content salvage.
var mainContentStrip = compile(
	`.*(đặt|lập|tạo|thêm|ghi)\s+(lịch|báo thức|nhắc)\s+(cho\s+)?(tôi|mình|tớ)?\s*`,
	`(vào|lúc|ngày|vào ngày|vào lúc|hôm|mai|ngày mai)\s+.*`,
	`\d{1,2}(h|:\d{2})?\s*(sáng|chiều|tối)?\s*`,
	`^(xin\s+)?(chào|hello|hi)\s+.*`,
)

var titleStopStarts = []string{
	"với tiêu đề là", "tiêu đề là", "tên là", "với tên là", "gọi là", "thành", "là",
}

var titleStopWords = map[string]struct{}{
	"với": {}, "cho": {}, "vào": {}, "lúc": {}, "ngày": {}, "mai": {},
	"sáng": {}, "chiều": {}, "tối": {}, "nhé": {}, "nha": {}, "ạ": {},
}

var mainContentSkip = map[string]struct{}{
	"là": {}, "có": {}, "với": {}, "cho": {}, "của": {}, "từ": {},
}

var trimPunct = regexp.MustCompile(`^[,\-\s]+|[,\-\s]+$`)

// ExtractTitle recovers an event name from normalized text. When every
// strategy fails it falls back to a category-specific label, then to the
// DefaultTitle sentinel.
func ExtractTitle(text string, category Category) string {
	for _, strategy := range []func(string) string{
		extractQuotedTitle,
		extractTitleAfterKeywords,
		extractTitleFromEnd,
		extractMainContentTitle,
	} {
		if t := strategy(text); utf8.RuneCountInString(t) >= minTitleLen {
			return t
		}
	}

	if category == CategoryAlarm {
		switch {
		case strings.Contains(text, "dậy") || strings.Contains(text, "tỉnh"):
			return "Báo thức dậy"
		case strings.Contains(text, "uống thuốc"):
			return "Báo thức uống thuốc"
		default:
			return "Báo thức"
		}
	}

	return DefaultTitle
}

// extractQuotedTitle returns the last quoted span; an explicit quote is the
// strongest signal the user gave a title.
func extractQuotedTitle(text string) string {
	if ms := doubleQuotedRe.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		return strings.TrimSpace(ms[len(ms)-1][1])
	}
	if ms := singleQuotedRe.FindAllStringSubmatch(text, -1); len(ms) > 0 {
		return strings.TrimSpace(ms[len(ms)-1][1])
	}
	return ""
}

func extractTitleAfterKeywords(text string) string {
	for _, re := range titleKeywordPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t := cleanExtractedTitle(m[1]); utf8.RuneCountInString(t) >= minTitleLen {
			return t
		}
	}
	return ""
}

func extractTitleFromEnd(text string) string {
	for _, re := range titleEndPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		t := cleanExtractedTitle(m[1])
		if t == "" {
			continue
		}
		if containsAny(t, "với", "cho", "để", "là", "có") {
			continue
		}
		return t
	}
	return ""
}

// extractMainContentTitle strips known action and time fragments and keeps
// the first five meaningful words of what remains.
func extractMainContentTitle(text string) string {
	clean := text
	for _, re := range mainContentStrip {
		clean = strings.TrimSpace(re.ReplaceAllString(clean, ""))
	}

	var important []string
	for _, w := range strings.Fields(clean) {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if _, skip := mainContentSkip[w]; skip {
			continue
		}
		important = append(important, w)
		if len(important) == 5 {
			break
		}
	}

	title := strings.Join(important, " ")
	if utf8.RuneCountInString(title) > 3 {
		return title
	}
	return ""
}

func cleanExtractedTitle(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, stop := range titleStopStarts {
		if strings.HasPrefix(raw, stop) {
			raw = strings.TrimSpace(raw[len(stop):])
		}
	}

	var kept []string
	for _, w := range strings.Fields(raw) {
		if _, stop := titleStopWords[w]; !stop {
			kept = append(kept, w)
		}
	}

	return trimPunct.ReplaceAllString(strings.Join(kept, " "), "")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
