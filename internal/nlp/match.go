package nlp

import (
	"sort"
	"strings"

	"github.com/quangtran/lichviet/internal/models"
)

// MatchSchedules filters existing schedules by case-insensitive substring
// match on the title, optionally narrowed by category, and returns the
// candidates sorted by id. The caller decides what one, many or zero
// matches mean; nothing is mutated here.
func MatchSchedules(keyword string, category *Category, schedules []models.Schedule) []models.Schedule {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil
	}

	var matches []models.Schedule
	for _, s := range schedules {
		if category != nil && s.Category != string(*category) {
			continue
		}
		if strings.Contains(strings.ToLower(s.Title), keyword) {
			matches = append(matches, s)
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches
}
