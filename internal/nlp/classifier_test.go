package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyIntents(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"đặt lịch họp ngày mai lúc 9h sáng", IntentSchedule},
		{"nhắc tôi uống thuốc lúc 8h tối", IntentSchedule},
		{"xem lịch hôm nay", IntentQuery},
		{"hôm nay có gì không", IntentQuery},
		{"sửa lịch họp thành họp khách hàng", IntentUpdate},
		{"xóa lịch họp team", IntentDelete},
		{"xóa đi lịch họp", IntentDelete},
		{"hủy báo thức 6h", IntentDelete},
		{"hello", IntentGreeting},
		{"cảm ơn nhiều", IntentThanks},
		{"giúp tôi với, bạn làm gì được", IntentHelp},
		{"bây giờ là mấy giờ rồi", IntentTimeQuery},
		{"hôm nay thứ mấy", IntentDateQuery},
	}
	for _, tt := range tests {
		got := Classify(Normalize(tt.text))
		require.Equal(t, tt.want, got.Intent, "text %q", tt.text)
		require.Equal(t, MethodPatternScoring, got.Method, "text %q", tt.text)
	}
}

func TestClassifyConfidenceScaling(t *testing.T) {
	// One regex hit plus one 0.5 keyword bonus.
	got := Classify("đặt lịch khám răng")
	require.Equal(t, IntentSchedule, got.Intent)
	require.InDelta(t, 0.85, got.Confidence, 1e-9)

	// Enough hits to saturate at the cap.
	got = Classify(Normalize("xem lịch hôm nay, kiểm tra lịch giúp"))
	require.Equal(t, IntentQuery, got.Intent)
	require.Equal(t, 0.95, got.Confidence)
}

func TestClassifyFallback(t *testing.T) {
	// Keyword not at sentence start misses the anchored pattern but is
	// caught by the fallback checks.
	got := Classify(Normalize("em chào trợ lý"))
	require.Equal(t, IntentGreeting, got.Intent)
	require.Equal(t, MethodFallback, got.Method)
	require.Equal(t, 0.8, got.Confidence)

	got = Classify(Normalize("trời hôm qua đẹp quá"))
	require.Equal(t, IntentConversation, got.Intent)
	require.Equal(t, 0.5, got.Confidence)
	require.Equal(t, MethodFallback, got.Method)
}

func TestClassifyTotality(t *testing.T) {
	inputs := []string{"", "   ", "?!.,", "🎉🎂🎈", "asdfghjkl", "1234567890"}
	valid := map[Intent]bool{
		IntentSchedule: true, IntentQuery: true, IntentUpdate: true,
		IntentDelete: true, IntentConversation: true, IntentGreeting: true,
		IntentThanks: true, IntentHelp: true, IntentTimeQuery: true,
		IntentDateQuery: true,
	}
	for _, in := range inputs {
		got := Classify(Normalize(in))
		require.True(t, valid[got.Intent], "input %q got %q", in, got.Intent)
		require.GreaterOrEqual(t, got.Confidence, 0.0, "input %q", in)
		require.LessOrEqual(t, got.Confidence, 1.0, "input %q", in)
	}
}
