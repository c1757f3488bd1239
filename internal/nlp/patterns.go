package nlp

import "regexp"

// intentPattern couples an intent with its regex list and bonus keywords.
// Each matching regex scores 1 point, each keyword found as a substring
// scores 0.5.
type intentPattern struct {
	intent   Intent
	patterns []*regexp.Regexp
	keywords []string
}

func compile(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(e)
	}
	return res
}

// intentTable is the process-wide pattern table. It is built once at init
// and never mutated, so it is safe to share across concurrent calls.
// The slice order is the documented tie-break: on equal scores the intent
// listed first wins.
var intentTable = []intentPattern{
	{
		intent: IntentSchedule,
		patterns: compile(
			`(đặt|lập|tạo|thêm|ghi|đăng ký|đăng kí)\s+(lịch|họp|sự kiện|báo thức|nhắc|hẹn|báo|việc|cần làm)`,
			`báo thức\s+`,
			`nhắc\s+`,
			`nhắc tôi`,
			`đánh thức`,
			`hẹn\s+`,
			`(phải|nhớ|cần)\s+(dậy|tỉnh|đánh thức|uống thuốc|làm|thực hiện|hoàn thành)`,
			`cho tôi.*báo thức`,
			`tạo cho tôi.*lịch`,
			`có việc`,
			`cần làm`,
			`phải làm`,
			`có hẹn`,
			`lên lịch`,
			`sắp xếp`,
		),
		keywords: []string{"đặt", "tạo", "báo thức", "nhắc", "hẹn", "việc", "làm"},
	},
	{
		intent: IntentQuery,
		patterns: compile(
			`(xem|kiểm tra|tra cứu|hiển thị|liệt kê|cho xem|cho tôi xem|hiện|kể|nói)\s+(lịch|việc|sự kiện|hẹn|báo thức)`,
			`(có|lịch)\s+gì\s+`,
			`xem lịch`,
			`lịch của tôi`,
			`tất cả lịch`,
			`lịch hiện có`,
			`lịch\s+(ngày mai|hôm nay|tuần này|tháng này|năm nay)`,
			`hôm nay có gì`,
			`ngày mai có gì`,
			`tuần này có gì`,
			`các việc cần làm`,
			`việc sắp tới`,
			`sự kiện sắp tới`,
			`hẹn sắp tới`,
			`kế hoạch`,
			`danh sách lịch`,
		),
		keywords: []string{"xem", "kiểm tra", "có gì", "lịch trình", "tất cả", "các"},
	},
	{
		intent: IntentUpdate,
		patterns: compile(
			`(sửa|thay đổi|chỉnh sửa|cập nhật|đổi|sửa lại|chỉnh|thay|điều chỉnh|update)\s+(lịch|tiêu đề|tên|thông tin)`,
			`(sửa|thay đổi|chỉnh sửa)\s+(tiêu đề|tên)`,
			`đổi tên lịch`,
			`cập nhật lịch`,
			`sửa\s+.*thành\s+`,
			`đổi\s+.*thành\s+`,
			`thay đổi\s+.*thành\s+`,
			`sửa lại\s+.*thành\s+`,
			`cho tôi sửa`,
			`chỉnh sửa`,
			`cập nhật`,
			`thay đổi thông tin`,
			`đổi tên`,
		),
		keywords: []string{"sửa", "đổi", "thành", "chỉnh", "cập nhật"},
	},
	{
		intent: IntentDelete,
		patterns: compile(
			`(xóa|hủy|hủy bỏ|xóa bỏ|dừng|ngừng|gỡ|remove|delete)\s+(lịch|báo thức|sự kiện|hẹn|việc)`,
			`xóa lịch`,
			`hủy lịch`,
			`xóa báo thức`,
			`hủy báo thức`,
			`dừng báo thức`,
			`xóa\s+.*lúc\s+`,
			`hủy\s+.*lúc\s+`,
			`xóa\s+lịch\s+(có\s+tên|tên\s+là|với\s+tên)\s+`,
			`hủy\s+lịch\s+(có\s+tên|tên\s+là|với\s+tên)\s+`,
			`xóa\s+(cái|cuộc|vụ)\s+(họp|hẹn)`,
			`hủy\s+(cái|cuộc|vụ)\s+(họp|hẹn)`,
			`cho tôi xóa`,
			`giúp tôi xóa`,
			`hủy bỏ`,
			`gỡ lịch`,
		),
		keywords: []string{"xóa", "hủy", "dừng", "gỡ"},
	},
	{
		intent: IntentGreeting,
		patterns: compile(
			`^(xin chào|chào|hello|hi|chào bạn|chào bot|chào em|chào anh|hey)`,
		),
	},
	{
		intent: IntentThanks,
		patterns: compile(
			`^(cảm ơn|thank you|thanks|cám ơn|đa tạ|cảm ơn bạn|cảm ơn nhiều)`,
		),
	},
	{
		intent: IntentHelp,
		patterns: compile(
			`^(help|giúp|hỗ trợ|làm gì|tính năng|hướng dẫn|chức năng|trợ giúp|support)`,
		),
	},
	{
		intent: IntentTimeQuery,
		patterns: compile(
			`(mấy giờ|mấy h|bao nhiêu giờ|thời gian hiện tại)`,
			`bây giờ là mấy`,
			`giờ là mấy`,
			`cho biết giờ`,
			`mấy giờ rồi`,
		),
	},
	{
		intent: IntentDateQuery,
		patterns: compile(
			`hôm nay là ngày mấy`,
			`ngày bao nhiêu`,
			`thứ mấy`,
			`cho biết ngày`,
			`hôm nay thứ mấy`,
			`ngày tháng`,
		),
	},
}
