package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveDateTimeTomorrowMorning(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	ti := ResolveDateTime("đặt lịch họp ngày mai lúc 9h sáng", now)
	require.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), ti.At)
	require.Equal(t, DateTomorrow, ti.DateType)
	require.Equal(t, "sáng", ti.Period)
}

func TestResolveDateTimeWeekdayRollsToNextOccurrence(t *testing.T) {
	// 2024-01-05 is a Friday; "thứ sáu" must mean the following Friday.
	now := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	ti := ResolveDateTime("họp thứ sáu", now)
	require.Equal(t, time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC), ti.At)
	require.Equal(t, DateFriday, ti.DateType)

	// Mid-week reference stays within the same week.
	ti = ResolveDateTime("họp thứ 2", now)
	require.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), ti.At)
	require.Equal(t, DateMonday, ti.DateType)
}

func TestResolveDateTimePastTodayRollsForward(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	ti := ResolveDateTime("hôm nay lúc 8h", now)
	require.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), ti.At)

	// No day keyword at all defaults to today and still rolls forward.
	ti = ResolveDateTime("nhắc tôi lúc 8h sáng", now)
	require.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), ti.At)
}

func TestResolveDateTimeExplicitDayNeverRollsForward(t *testing.T) {
	now := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	ti := ResolveDateTime("họp ngày mai lúc 8h", now)
	require.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), ti.At)
}

func TestResolveClockForms(t *testing.T) {
	now := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	tests := []struct {
		text string
		want time.Time
	}{
		{"họp lúc 15:30", time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)},
		{"họp 9h30 sáng", time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)},
		{"họp lúc 3 chiều", time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)},
		{"họp 2 giờ chiều", time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)},
		{"đi ngủ 10 tối", time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)},
		{"họp 12h sáng", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ResolveDateTime(tt.text, now).At, "text %q", tt.text)
	}
}

func TestResolveDateTimeDefaultsToNineToday(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	ti := ResolveDateTime("họp với team", now)
	require.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), ti.At)
	require.Equal(t, DateToday, ti.DateType)
	require.Empty(t, ti.Period)
}

func TestContainsTimePhrase(t *testing.T) {
	require.True(t, ContainsTimePhrase("họp lúc 9h"))
	require.True(t, ContainsTimePhrase("họp ngày mai"))
	require.True(t, ContainsTimePhrase("họp thứ 6"))
	require.False(t, ContainsTimePhrase("họp với team"))
	require.False(t, ContainsTimePhrase(""))
}
