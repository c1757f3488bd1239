package nlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeStripsFillerParticles(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Đặt lịch họp nhé", "đặt lịch họp"},
		{"ạ xóa báo thức đi ạ", "xóa báo thức"},
		{"nhắc tôi uống thuốc nha", "nhắc tôi uống thuốc"},
		{"  xem lịch   hôm nay  ", "xem lịch hôm nay"},
		{"đặt lịch họp nhé!", "đặt lịch họp !"},
		{"xóa báo thức đi.", "xóa báo thức ."},
		{"nhắc tôi mua điện thoại", "nhắc tôi mua điện thoại"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeCanonicalizesSpelling(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"xoá lịch trình", "xóa lịch"},
		{"đặt bthức 6h", "đặt báo thức 6h"},
		{"nhắc nhở tôi họp", "nhắc tôi họp"},
		{"hủy cuộc họp với công việc", "hủy họp với việc"},
		{"xem lịch trình trình", "xem lịch"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Đặt lịch họp với team ngày mai lúc 9h sáng nhé",
		"xoá lịch trình đi ạ",
		"xem lịch trình trình",
		"xóa lịch trình trình trình hôm nay",
		"họp nhé!",
		"",
		"!!! ???",
		"nhắc nhở tôi dậy sớm nha",
	}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}
