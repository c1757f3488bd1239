package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTitleQuotedWinsOverEndOfSentence(t *testing.T) {
	// Both a quoted span and an end-of-sentence candidate are present;
	// the quote must win.
	got := ExtractTitle(`đặt lịch lúc 9h sáng mai "họp với sếp"`, CategoryGeneral)
	require.Equal(t, "họp với sếp", got)
}

func TestExtractTitleLastQuotedSpan(t *testing.T) {
	got := ExtractTitle(`đổi "họp cũ" thành "họp khách hàng"`, CategoryGeneral)
	require.Equal(t, "họp khách hàng", got)

	got = ExtractTitle(`tạo lịch 'khám sức khỏe' ngày mai`, CategoryGeneral)
	require.Equal(t, "khám sức khỏe", got)
}

func TestExtractTitleAfterTriggerKeywords(t *testing.T) {
	got := ExtractTitle("đặt lịch tên là khám răng", CategoryGeneral)
	require.Equal(t, "khám răng", got)

	got = ExtractTitle("tạo lịch với tiêu đề là ôn thi cuối kỳ", CategoryGeneral)
	require.Equal(t, "ôn thi cuối kỳ", got)
}

func TestExtractTitleFromEndOfSentence(t *testing.T) {
	got := ExtractTitle("đặt lịch lúc 9h sáng mai khám răng", CategoryGeneral)
	require.Equal(t, "khám răng", got)
}

func TestExtractTitleMainContent(t *testing.T) {
	got := ExtractTitle("đặt lịch khám sức khỏe tổng quát", CategoryGeneral)
	require.Equal(t, "khám sức khỏe tổng quát", got)
}

func TestExtractTitleAlarmFallbacks(t *testing.T) {
	require.Equal(t, "Báo thức dậy", ExtractTitle("dậy", CategoryAlarm))
	require.Equal(t, "Báo thức", ExtractTitle("6h", CategoryAlarm))
}

func TestExtractTitleSentinel(t *testing.T) {
	require.Equal(t, DefaultTitle, ExtractTitle("ok", CategoryGeneral))
	require.Equal(t, DefaultTitle, ExtractTitle("", CategoryGeneral))
}
