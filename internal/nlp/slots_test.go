package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestExtractScheduleSlotsAlarmDefaults(t *testing.T) {
	slots := ExtractScheduleSlots(Normalize("đặt báo thức 6h sáng mai"), testNow)

	require.Equal(t, CategoryAlarm, slots.Category)
	// Alarms without an explicit urgency keyword default to high, not low.
	require.Equal(t, PriorityHigh, slots.Priority)
	require.Equal(t, 15, slots.DurationMinutes)
	require.Equal(t, time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC), slots.StartTime)
	require.Equal(t, "Báo thức", slots.Title)
}

func TestExtractScheduleSlotsMeeting(t *testing.T) {
	slots := ExtractScheduleSlots(Normalize("đặt lịch họp với team ngày mai lúc 9h sáng"), testNow)

	require.Equal(t, CategoryMeeting, slots.Category)
	require.Equal(t, PriorityLow, slots.Priority)
	require.Equal(t, 60, slots.DurationMinutes)
	require.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), slots.StartTime)
	require.NotEmpty(t, slots.Title)
	require.Nil(t, slots.Location)
	require.Nil(t, slots.ReminderMinutes)
}

func TestExtractScheduleSlotsUrgencyAndExtras(t *testing.T) {
	slots := ExtractScheduleSlots(Normalize("đặt lịch họp gấp tại văn phòng lúc 3 chiều, nhắc trước 30 phút"), testNow)

	require.Equal(t, PriorityHigh, slots.Priority)
	require.Equal(t, "quan trọng", slots.Description)
	require.NotNil(t, slots.Location)
	require.Equal(t, "văn phòng", *slots.Location)
	require.NotNil(t, slots.ReminderMinutes)
	require.Equal(t, 30, *slots.ReminderMinutes)
	require.Equal(t, time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC), slots.StartTime)
}

func TestExtractReminderHoursMultiplied(t *testing.T) {
	mins := ExtractReminderMinutes("nhắc trước 2 giờ")
	require.NotNil(t, mins)
	require.Equal(t, 120, *mins)

	require.Nil(t, ExtractReminderMinutes("họp với team"))
}

func TestExtractQuerySlotsScopePriority(t *testing.T) {
	tests := []struct {
		text string
		want QueryScope
	}{
		{"xem lịch ngày mai", ScopeTomorrow},
		{"hôm nay có gì", ScopeToday},
		{"lịch tuần này", ScopeWeek},
		{"xem tất cả lịch", ScopeAll},
		{"xem lịch", ScopeAll},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ExtractQuerySlots(Normalize(tt.text)).Scope, "text %q", tt.text)
	}
}

func TestExtractUpdateSlotsRenamePair(t *testing.T) {
	slots := ExtractUpdateSlots(Normalize("sửa họp team thành họp khách hàng"), testNow)

	require.NotNil(t, slots.OldTitle)
	require.Equal(t, "họp team", *slots.OldTitle)
	require.NotNil(t, slots.NewTitle)
	require.Equal(t, "họp khách hàng", *slots.NewTitle)
	require.Nil(t, slots.ScheduleID)
	require.Nil(t, slots.StartTime)
}

func TestExtractUpdateSlotsIDAndTime(t *testing.T) {
	slots := ExtractUpdateSlots(Normalize("cập nhật lịch id 5 sang 3 chiều mai"), testNow)

	require.NotNil(t, slots.ScheduleID)
	require.Equal(t, int64(5), *slots.ScheduleID)
	require.NotNil(t, slots.StartTime)
	require.Equal(t, time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC), *slots.StartTime)
	require.Nil(t, slots.OldTitle)
}

func TestExtractDeleteSlotsIDShortCircuits(t *testing.T) {
	slots := ExtractDeleteSlots(Normalize("xóa lịch có id 3 tên là họp team"))

	require.NotNil(t, slots.ScheduleID)
	require.Equal(t, int64(3), *slots.ScheduleID)
	// ID takes absolute precedence; no keyword is extracted.
	require.Nil(t, slots.TitleKeyword)
}

func TestExtractDeleteSlotsKeywordCleanup(t *testing.T) {
	slots := ExtractDeleteSlots(Normalize("xóa lịch có tên họp team lúc 9h nhé"))

	require.Nil(t, slots.ScheduleID)
	require.NotNil(t, slots.TitleKeyword)
	require.Equal(t, "họp team", *slots.TitleKeyword)
	require.NotNil(t, slots.SearchCategory)
	require.Equal(t, CategoryMeeting, *slots.SearchCategory)
}

func TestExtractDeleteSlotsAlarmCategoryHint(t *testing.T) {
	slots := ExtractDeleteSlots(Normalize("hủy báo thức 6h"))

	require.NotNil(t, slots.TitleKeyword)
	require.Equal(t, "báo thức", *slots.TitleKeyword)
	require.NotNil(t, slots.SearchCategory)
	require.Equal(t, CategoryAlarm, *slots.SearchCategory)
}
