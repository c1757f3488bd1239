package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/quangtran/lichviet/internal/models"
)

// Client talks to a local Ollama server through its OpenAI-compatible
// endpoint. It only produces raw text; parsing and repair happen in the
// nlp package.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

func NewClient(baseURL, model string, maxTokens int, temperature float64, timeout time.Duration, logger *zap.Logger) *Client {
	cfg := openai.DefaultConfig("ollama") // Ollama ignores the API key
	cfg.BaseURL = baseURL

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}
}

// Analyze sends the analysis prompt and returns the raw model reply.
func (c *Client) Analyze(ctx context.Context, message string, now string, upcoming []models.Schedule) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	prompt := buildPrompt(message, now, upcoming)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)
	if err != nil {
		c.logger.Warn("ollama request failed", zap.Error(err))
		return "", fmt.Errorf("ollama request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ollama request: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(message, now string, upcoming []models.Schedule) string {
	var b strings.Builder

	b.WriteString("Bạn là trợ lý AI phân tích câu tiếng Việt về lịch trình.\n\n")
	fmt.Fprintf(&b, "CÂU: %q\n", message)
	fmt.Fprintf(&b, "THỜI GIAN HIỆN TẠI: %s\n", now)

	if len(upcoming) > 0 {
		b.WriteString("\nLỊCH SẮP TỚI:\n")
		for _, sc := range upcoming {
			fmt.Fprintf(&b, "- [%d] %s lúc %s\n", sc.ID, sc.Title, sc.StartTime.Format("2006-01-02 15:04"))
		}
	}

	b.WriteString(`
PHÂN TÍCH:
1. MỤC ĐÍCH (intent):
   - "schedule": tạo lịch mới (đặt lịch, tạo lịch, lập lịch, hẹn)
   - "query": xem lịch (xem lịch, kiểm tra lịch, lịch trình)
   - "update": sửa lịch (thay đổi, chỉnh sửa, hoãn)
   - "delete": xóa lịch (hủy, xóa)
   - "unknown": không xác định

2. THÔNG TIN:
   - title: tiêu đề sự kiện
   - datetime: thời gian YYYY-MM-DD HH:MM:SS
   - duration_minutes: thời lượng phút
   - priority: độ ưu tiên (low, medium, high)

3. THỜI GIAN TIẾNG VIỆT:
   - "mai" = ngày mai
   - "hôm nay" = hôm nay
   - "sáng" = 7:00-11:00
   - "chiều" = 13:00-17:00
   - "tối" = 19:00-22:00

KẾT QUẢ (CHỈ JSON):
{
    "intent": "schedule",
    "title": "họp",
    "description": "",
    "datetime": "2024-01-02 09:00:00",
    "duration_minutes": 60,
    "priority": "medium",
    "confidence": 0.9
}

CHỈ TRẢ VỀ JSON, KHÔNG GIẢI THÍCH.
`)

	return b.String()
}
