package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quangtran/lichviet/internal/models"
	"github.com/quangtran/lichviet/internal/nlp"
	"github.com/quangtran/lichviet/internal/storage"
)

const datetimeLayout = "2006-01-02 15:04:05"

// Collaborator produces a raw analysis reply for a message. Implemented by
// the Ollama client; nil disables LLM analysis entirely.
type Collaborator interface {
	Analyze(ctx context.Context, message string, now string, upcoming []models.Schedule) (string, error)
}

// Response is what the chat endpoint returns to the client.
type Response struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Type       string            `json:"type"`
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	ScheduleID int64             `json:"schedule_id,omitempty"`
	Schedules  []models.Schedule `json:"schedules,omitempty"`
	Candidates []models.Schedule `json:"candidates,omitempty"`
}

// Assistant routes analyzed messages to storage operations and builds the
// Vietnamese replies.
type Assistant struct {
	store  storage.Storage
	engine *nlp.Engine
	llm    Collaborator
	logger *zap.Logger
	nowFn  func() time.Time
}

func New(store storage.Storage, engine *nlp.Engine, llm Collaborator, logger *zap.Logger) *Assistant {
	return &Assistant{
		store:  store,
		engine: engine,
		llm:    llm,
		logger: logger,
		nowFn:  time.Now,
	}
}

// ProcessMessage analyzes one chat message and performs the requested
// action. It always returns a user-facing reply; failures surface as
// replies, not errors.
func (a *Assistant) ProcessMessage(ctx context.Context, userID int64, message string) Response {
	now := a.nowFn()
	result := a.analyze(ctx, userID, message, now)

	a.logger.Info("processing message",
		zap.Int64("user_id", userID),
		zap.String("intent", string(result.Intent)),
		zap.Float64("confidence", result.Confidence))

	var resp Response
	switch result.Intent {
	case nlp.IntentSchedule:
		resp = a.handleCreate(userID, result.Schedule)
	case nlp.IntentQuery:
		resp = a.handleQuery(userID, result.Query, now)
	case nlp.IntentUpdate:
		resp = a.handleUpdate(userID, result.Update)
	case nlp.IntentDelete:
		resp = a.handleDelete(userID, result.Delete)
	case nlp.IntentGreeting:
		resp = infoReply("Xin chào! Tôi là trợ lý lịch trình của bạn. Bạn cần giúp gì?")
	case nlp.IntentThanks:
		resp = infoReply("Không có gì! Rất vui được giúp bạn 😊")
	case nlp.IntentHelp:
		resp = infoReply(helpMessage)
	case nlp.IntentTimeQuery:
		resp = infoReply(fmt.Sprintf("🕐 Bây giờ là %s", now.Format("15:04")))
	case nlp.IntentDateQuery:
		resp = infoReply(fmt.Sprintf("📅 Hôm nay là %s, ngày %s", weekdayName(now.Weekday()), now.Format("02/01/2006")))
	default:
		resp = a.handleConversation(result.Confidence)
	}

	resp.Intent = string(result.Intent)
	resp.Confidence = result.Confidence

	a.saveInteraction(userID, message, resp, result)
	return resp
}

// analyze prefers the LLM when one is configured, falling back to the rule
// engine whenever the model is unreachable or its reply is unusable.
func (a *Assistant) analyze(ctx context.Context, userID int64, message string, now time.Time) nlp.Result {
	if a.llm != nil {
		upcoming, err := a.store.ListSchedulesInRange(userID, now, now.Add(24*time.Hour))
		if err != nil {
			upcoming = nil
		}

		raw, err := a.llm.Analyze(ctx, message, now.Format(datetimeLayout), upcoming)
		if err == nil {
			if result, perr := a.engine.FromLLM(raw, message, now); perr == nil {
				return result
			}
			a.logger.Warn("llm reply not parseable, using rule analysis")
		}
	}

	return a.engine.Analyze(message, now)
}

func (a *Assistant) handleCreate(userID int64, slots *nlp.ScheduleSlots) Response {
	if slots == nil || slots.Title == nlp.DefaultTitle {
		return errorReply(`Vui lòng cung cấp tiêu đề cho lịch trình. Ví dụ: "đặt lịch họp team ngày mai lúc 9h"`)
	}
	if slots.StartTime.IsZero() {
		return errorReply(`Vui lòng cung cấp thời gian cho lịch trình. Ví dụ: "đặt lịch họp ngày mai lúc 9h"`)
	}

	schedule := &models.Schedule{
		UserID:      userID,
		Title:       slots.Title,
		Description: slots.Description,
		StartTime:   slots.StartTime,
		EndTime:     slots.StartTime.Add(time.Duration(slots.DurationMinutes) * time.Minute),
		Category:    string(slots.Category),
		Priority:    string(slots.Priority),
		Status:      "active",
	}
	if slots.Location != nil {
		schedule.Location = *slots.Location
	}
	if slots.ReminderMinutes != nil {
		schedule.ReminderMinutes = *slots.ReminderMinutes
	}

	if err := a.store.CreateSchedule(schedule); err != nil {
		a.logger.Error("create schedule failed", zap.Error(err))
		return errorReply("❌ Có lỗi khi tạo lịch trình. Vui lòng thử lại.")
	}

	return Response{
		Success:    true,
		Message:    fmt.Sprintf("✅ Đã tạo lịch '%s' vào lúc %s", schedule.Title, schedule.StartTime.Format("15:04 02/01/2006")),
		Type:       "schedule_created",
		ScheduleID: schedule.ID,
	}
}

func (a *Assistant) handleQuery(userID int64, slots *nlp.QuerySlots, now time.Time) Response {
	scope := nlp.ScopeAll
	if slots != nil {
		scope = slots.Scope
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		schedules []models.Schedule
		err       error
		display   string
	)
	switch scope {
	case nlp.ScopeToday:
		schedules, err = a.store.ListSchedulesInRange(userID, day, day.AddDate(0, 0, 1))
		display = "hôm nay"
	case nlp.ScopeTomorrow:
		schedules, err = a.store.ListSchedulesInRange(userID, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
		display = "ngày mai"
	case nlp.ScopeWeek:
		schedules, err = a.store.ListSchedulesInRange(userID, day, day.AddDate(0, 0, 7))
		display = "tuần này"
	default:
		schedules, err = a.store.ListSchedules(userID)
		display = "tất cả"
	}
	if err != nil {
		a.logger.Error("query schedules failed", zap.Error(err))
		return errorReply("❌ Có lỗi khi truy vấn lịch trình")
	}

	if len(schedules) == 0 {
		return Response{
			Success: true,
			Message: fmt.Sprintf("📅 Không có lịch trình nào cho %s", display),
			Type:    "no_schedules",
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Tìm thấy %d lịch trình cho %s:", len(schedules), display)
	for _, sc := range schedules {
		fmt.Fprintf(&b, "\n• [%d] %s lúc %s", sc.ID, sc.Title, sc.StartTime.Format("15:04 02/01/2006"))
	}

	return Response{
		Success:   true,
		Message:   b.String(),
		Type:      "schedule_list",
		Schedules: schedules,
	}
}

func (a *Assistant) handleUpdate(userID int64, slots *nlp.UpdateSlots) Response {
	if slots == nil || (slots.ScheduleID == nil && slots.OldTitle == nil) {
		return errorReply(`Vui lòng cho biết lịch trình cần sửa. Ví dụ: "sửa họp team thành họp khách hàng"`)
	}

	var target *models.Schedule
	if slots.ScheduleID != nil {
		sc, err := a.store.GetSchedule(userID, *slots.ScheduleID)
		if err != nil {
			return errorReply(fmt.Sprintf("Không tìm thấy lịch trình với ID %d", *slots.ScheduleID))
		}
		target = sc
	} else {
		all, err := a.store.ListSchedules(userID)
		if err != nil {
			a.logger.Error("list schedules failed", zap.Error(err))
			return errorReply("❌ Có lỗi khi truy vấn lịch trình")
		}

		matches := nlp.MatchSchedules(*slots.OldTitle, nil, all)
		switch len(matches) {
		case 0:
			return errorReply(fmt.Sprintf("Không tìm thấy lịch trình nào khớp với '%s'", *slots.OldTitle))
		case 1:
			target = &matches[0]
		default:
			return ambiguousReply(matches, "sửa")
		}
	}

	changed := false
	if slots.NewTitle != nil {
		target.Title = *slots.NewTitle
		changed = true
	}
	if slots.StartTime != nil {
		duration := target.EndTime.Sub(target.StartTime)
		target.StartTime = *slots.StartTime
		target.EndTime = slots.StartTime.Add(duration)
		changed = true
	}
	if !changed {
		return errorReply(`Vui lòng cho biết thay đổi mong muốn. Ví dụ: "đổi họp team thành họp khách hàng" hoặc "dời lịch id 3 sang 2h chiều mai"`)
	}

	if err := a.store.UpdateSchedule(target); err != nil {
		a.logger.Error("update schedule failed", zap.Error(err))
		return errorReply("❌ Có lỗi khi cập nhật lịch trình. Vui lòng thử lại.")
	}

	return Response{
		Success:    true,
		Message:    fmt.Sprintf("🔄 Đã cập nhật lịch '%s' vào lúc %s", target.Title, target.StartTime.Format("15:04 02/01/2006")),
		Type:       "schedule_updated",
		ScheduleID: target.ID,
	}
}

func (a *Assistant) handleDelete(userID int64, slots *nlp.DeleteSlots) Response {
	if slots != nil && slots.ScheduleID != nil {
		sc, err := a.store.GetSchedule(userID, *slots.ScheduleID)
		if err != nil {
			return errorReply(fmt.Sprintf("Không tìm thấy lịch trình với ID %d", *slots.ScheduleID))
		}
		if err := a.store.DeleteSchedule(userID, sc.ID); err != nil {
			a.logger.Error("delete schedule failed", zap.Error(err))
			return errorReply("❌ Có lỗi khi xóa lịch trình. Vui lòng thử lại.")
		}
		return deletedReply(sc)
	}

	if slots == nil || slots.TitleKeyword == nil {
		return errorReply(`Vui lòng cho biết lịch trình cần xóa. Ví dụ: "xóa lịch họp team"`)
	}

	all, err := a.store.ListSchedules(userID)
	if err != nil {
		a.logger.Error("list schedules failed", zap.Error(err))
		return errorReply("❌ Có lỗi khi truy vấn lịch trình")
	}

	matches := nlp.MatchSchedules(*slots.TitleKeyword, slots.SearchCategory, all)
	// A category hint that eliminates everything should not hide title
	// matches in other categories.
	if len(matches) == 0 && slots.SearchCategory != nil {
		matches = nlp.MatchSchedules(*slots.TitleKeyword, nil, all)
	}

	switch len(matches) {
	case 0:
		return errorReply(fmt.Sprintf("Không tìm thấy lịch trình nào khớp với '%s'", *slots.TitleKeyword))
	case 1:
		if err := a.store.DeleteSchedule(userID, matches[0].ID); err != nil {
			a.logger.Error("delete schedule failed", zap.Error(err))
			return errorReply("❌ Có lỗi khi xóa lịch trình. Vui lòng thử lại.")
		}
		return deletedReply(&matches[0])
	default:
		return ambiguousReply(matches, "xóa")
	}
}

func (a *Assistant) handleConversation(confidence float64) Response {
	if confidence < 0.5 {
		return Response{
			Success: false,
			Message: "🤔 Tôi chưa hiểu rõ yêu cầu của bạn. Bạn có thể thử:\n\n" +
				"• \"Đặt lịch họp ngày mai lúc 9h\"\n" +
				"• \"Xem lịch trình hôm nay\"\n" +
				"• \"Tôi có lịch gì chiều nay?\"\n" +
				"• \"Tạo lịch khám sức khỏe thứ 6\"",
			Type: "unknown_intent",
		}
	}
	return infoReply("Xin chào! Tôi có thể giúp gì cho bạn?")
}

// saveInteraction records the exchange best-effort; a failure here never
// affects the reply.
func (a *Assistant) saveInteraction(userID int64, message string, resp Response, result nlp.Result) {
	interaction := &models.Interaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserMessage: message,
		Reply:       resp.Message,
		Intent:      string(result.Intent),
		Confidence:  result.Confidence,
	}
	if err := a.store.SaveInteraction(interaction); err != nil {
		a.logger.Warn("could not save interaction", zap.Error(err))
	}
}

const helpMessage = "🤖 Tôi có thể giúp bạn:\n\n" +
	"• Tạo lịch: \"đặt lịch họp ngày mai lúc 9h\"\n" +
	"• Xem lịch: \"xem lịch hôm nay\"\n" +
	"• Sửa lịch: \"đổi họp team thành họp khách hàng\"\n" +
	"• Xóa lịch: \"xóa lịch họp team\"\n" +
	"• Đặt báo thức: \"đặt báo thức 6h sáng mai\""

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "thứ Hai",
	time.Tuesday:   "thứ Ba",
	time.Wednesday: "thứ Tư",
	time.Thursday:  "thứ Năm",
	time.Friday:    "thứ Sáu",
	time.Saturday:  "thứ Bảy",
	time.Sunday:    "Chủ nhật",
}

func weekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

func infoReply(message string) Response {
	return Response{Success: true, Message: message, Type: "info"}
}

func errorReply(message string) Response {
	return Response{Success: false, Message: message, Type: "error"}
}

func deletedReply(sc *models.Schedule) Response {
	return Response{
		Success:    true,
		Message:    fmt.Sprintf("🗑️ Đã xóa lịch '%s'", sc.Title),
		Type:       "schedule_deleted",
		ScheduleID: sc.ID,
	}
}

func ambiguousReply(matches []models.Schedule, action string) Response {
	var b strings.Builder
	fmt.Fprintf(&b, "Tìm thấy %d lịch trình khớp, vui lòng chọn theo ID để %s:", len(matches), action)
	for _, sc := range matches {
		fmt.Fprintf(&b, "\n• [%d] %s lúc %s", sc.ID, sc.Title, sc.StartTime.Format("15:04 02/01/2006"))
	}
	return Response{
		Success:    false,
		Message:    b.String(),
		Type:       "disambiguation",
		Candidates: matches,
	}
}
