package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateType records which day reference resolved the date part.
type DateType string

const (
	DateToday     DateType = "today"
	DateTomorrow  DateType = "tomorrow"
	DateYesterday DateType = "yesterday"
	DateMonday    DateType = "monday"
	DateTuesday   DateType = "tuesday"
	DateWednesday DateType = "wednesday"
	DateThursday  DateType = "thursday"
	DateFriday    DateType = "friday"
	DateSaturday  DateType = "saturday"
	DateSunday    DateType = "sunday"
)

// TimeInfo is a fully resolved timestamp plus resolution metadata.
type TimeInfo struct {
	At       time.Time
	DateType DateType
	Period   string
}

var weekdayNames = []struct {
	aliases  []string
	weekday  time.Weekday
	dateType DateType
}{
	{[]string{"thứ 2", "thứ hai"}, time.Monday, DateMonday},
	{[]string{"thứ 3", "thứ ba"}, time.Tuesday, DateTuesday},
	{[]string{"thứ 4", "thứ tư"}, time.Wednesday, DateWednesday},
	{[]string{"thứ 5", "thứ năm"}, time.Thursday, DateThursday},
	{[]string{"thứ 6", "thứ sáu"}, time.Friday, DateFriday},
	{[]string{"thứ 7", "thứ bảy"}, time.Saturday, DateSaturday},
	{[]string{"chủ nhật"}, time.Sunday, DateSunday},
}

// Time-of-day patterns, tried in priority order; the first match wins.
// minuteIdx/periodIdx are submatch indexes, 0 when the pattern has no
// such group.
var timePatterns = []struct {
	re        *regexp.Regexp
	minuteIdx int
	periodIdx int
}{
	{regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(sáng|chiều|tối)?`), 2, 3},
	{regexp.MustCompile(`(\d{1,2})h\s*(\d{1,2})?\s*(sáng|chiều|tối)?`), 2, 3},
	{regexp.MustCompile(`lúc\s*(\d{1,2})\s*(sáng|chiều|tối)?`), 0, 2},
	{regexp.MustCompile(`(\d{1,2})\s*giờ\s*(\d{1,2})?\s*(sáng|chiều|tối)?`), 2, 3},
	{regexp.MustCompile(`(\d{1,2})\s*(sáng|chiều|tối)`), 0, 2},
}

// ResolveDateTime resolves day references and time-of-day phrases in
// normalized text against the supplied current instant. It always returns a
// fully specified timestamp: missing day defaults to today, missing time to
// 09:00, and a "today" timestamp that already passed rolls forward one day.
func ResolveDateTime(text string, now time.Time) TimeInfo {
	targetDate, dateType := resolveDate(text, now)
	hour, minute, period := resolveClock(text)

	at := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(),
		hour, minute, 0, 0, now.Location())

	// "9h" said after 09:00 with no explicit day means tomorrow.
	if at.Before(now) && dateType == DateToday {
		at = at.AddDate(0, 0, 1)
	}

	return TimeInfo{At: at, DateType: dateType, Period: period}
}

func resolveDate(text string, now time.Time) (time.Time, DateType) {
	switch {
	case strings.Contains(text, "ngày mai") || strings.Contains(text, "mai"):
		return now.AddDate(0, 0, 1), DateTomorrow
	case strings.Contains(text, "hôm nay") || strings.Contains(text, "bây giờ"):
		return now, DateToday
	case strings.Contains(text, "hôm qua"):
		return now.AddDate(0, 0, -1), DateYesterday
	}

	for _, wd := range weekdayNames {
		for _, alias := range wd.aliases {
			if strings.Contains(text, alias) {
				// A weekday name always means the next occurrence,
				// never the current day.
				daysAhead := (int(wd.weekday) - int(now.Weekday()) + 7) % 7
				if daysAhead == 0 {
					daysAhead = 7
				}
				return now.AddDate(0, 0, daysAhead), wd.dateType
			}
		}
	}

	return now, DateToday
}

func resolveClock(text string) (hour, minute int, period string) {
	for _, tp := range timePatterns {
		m := tp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		hour, _ = strconv.Atoi(m[1])
		if tp.minuteIdx > 0 && m[tp.minuteIdx] != "" {
			minute, _ = strconv.Atoi(m[tp.minuteIdx])
		}
		if tp.periodIdx > 0 {
			period = m[tp.periodIdx]
		}

		switch period {
		case "chiều", "tối":
			if hour < 12 {
				hour += 12
			}
		case "sáng":
			if hour == 12 {
				hour = 0
			}
		}
		return hour, minute, period
	}

	// Default when no time phrase is present.
	return 9, 0, ""
}

var datePhrases = []string{"ngày mai", "mai", "hôm nay", "hôm qua", "bây giờ", "thứ ", "chủ nhật"}

// ContainsTimePhrase reports whether normalized text carries any day
// reference or time-of-day phrase the resolver would act on.
func ContainsTimePhrase(text string) bool {
	for _, p := range datePhrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	for _, tp := range timePatterns {
		if tp.re.MatchString(text) {
			return true
		}
	}
	return false
}
