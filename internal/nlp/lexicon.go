package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

// Keyword lexicons are fixed at compile time and shared read-only.

// Category groups are checked in order; the first group with a hit wins.
var categoryGroups = []struct {
	category Category
	keywords []string
}{
	{CategoryAlarm, []string{"báo thức", "đánh thức", "dậy", "tỉnh", "thức", "nhắc"}},
	{CategoryMeeting, []string{"họp", "meeting", "hội họp"}},
	{CategoryPersonal, []string{"siêu thị", "mua sắm", "ăn uống", "cafe", "giải trí"}},
	{CategoryWork, []string{"làm việc", "công ty", "deadline", "báo cáo"}},
	{CategoryStudy, []string{"học", "bài", "đồ án", "dự án"}},
}

// DetectCategory returns the event category for normalized text,
// defaulting to general.
func DetectCategory(text string) Category {
	for _, g := range categoryGroups {
		for _, kw := range g.keywords {
			if strings.Contains(text, kw) {
				return g.category
			}
		}
	}
	return CategoryGeneral
}

var (
	highPriorityWords   = []string{"khẩn cấp", "gấp", "quan trọng", "urgent"}
	mediumPriorityWords = []string{"bình thường", "không gấp"}
)

// DetectPriority maps urgency keywords to a priority. The boolean reports
// whether any keyword matched, so callers can apply their own default.
func DetectPriority(text string) (Priority, bool) {
	for _, kw := range highPriorityWords {
		if strings.Contains(text, kw) {
			return PriorityHigh, true
		}
	}
	for _, kw := range mediumPriorityWords {
		if strings.Contains(text, kw) {
			return PriorityMedium, true
		}
	}
	return PriorityLow, false
}

// "remind N minutes/hours before" in either word order. Hour patterns
// are listed with a multiplier of 60.
var reminderPatterns = []struct {
	re       *regexp.Regexp
	multiply int
}{
	{regexp.MustCompile(`nhắc\s*trước\s*(\d+)\s*phút`), 1},
	{regexp.MustCompile(`trước\s*(\d+)\s*phút`), 1},
	{regexp.MustCompile(`(\d+)\s*phút\s*trước`), 1},
	{regexp.MustCompile(`nhắc\s*trước\s*(\d+)\s*giờ`), 60},
	{regexp.MustCompile(`trước\s*(\d+)\s*giờ`), 60},
	{regexp.MustCompile(`(\d+)\s*giờ\s*trước`), 60},
}

// ExtractReminderMinutes returns the requested lead time in minutes, or nil
// when no reminder phrase is present.
func ExtractReminderMinutes(text string) *int {
	for _, rp := range reminderPatterns {
		if m := rp.re.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			n *= rp.multiply
			return &n
		}
	}
	return nil
}

var locationKeywords = map[string]struct{}{
	"tại": {}, "ở": {}, "đến": {}, "sang": {},
}

var locationStopWords = map[string]struct{}{
	"lúc": {}, "vào": {}, "ngày": {}, "mai": {}, "hôm": {},
	"sáng": {}, "chiều": {}, "tối": {},
}

var digitRe = regexp.MustCompile(`\d`)

// ExtractLocation scans for a location preposition and takes up to three
// following words, skipping further location keywords and stopping at time
// words. Returns nil when no location phrase is found.
func ExtractLocation(text string) *string {
	words := strings.Fields(text)
	for i, w := range words {
		if _, ok := locationKeywords[w]; !ok {
			continue
		}
		var parts []string
		for _, next := range words[i+1:] {
			if _, loc := locationKeywords[next]; loc {
				continue
			}
			if _, stop := locationStopWords[next]; stop {
				break
			}
			if digitRe.MatchString(next) {
				break
			}
			parts = append(parts, next)
			if len(parts) == 3 {
				break
			}
		}
		if len(parts) > 0 {
			loc := strings.Join(parts, " ")
			return &loc
		}
	}
	return nil
}

// Contextual description hits, joined in lexicon order.
var descriptionHits = []struct {
	label    string
	keywords []string
}{
	{"quan trọng", []string{"quan trọng", "khẩn cấp", "gấp"}},
	{"uống thuốc", []string{"uống thuốc"}},
	{"dậy sớm", []string{"dậy sớm"}},
	{"học tập", []string{"học bài", "làm bài"}},
	{"mua sắm", []string{"mua sắm", "siêu thị"}},
}

// ExtractDescription collects contextual descriptive keyword hits, joined
// with commas; empty when nothing matches.
func ExtractDescription(text string) string {
	var found []string
	for _, hit := range descriptionHits {
		for _, kw := range hit.keywords {
			if strings.Contains(text, kw) {
				found = append(found, hit.label)
				break
			}
		}
	}
	return strings.Join(found, ", ")
}
