package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quangtran/lichviet/internal/assistant"
	"github.com/quangtran/lichviet/internal/auth"
	"github.com/quangtran/lichviet/internal/nlp"
	"github.com/quangtran/lichviet/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStorage()
	logger := zap.NewNop()
	asst := assistant.New(store, nlp.NewEngine(logger), nil, logger)
	authMgr := auth.NewManager("test-secret", time.Hour)
	return New(store, asst, authMgr, logger)
}

func doRequest(t *testing.T, s *Server, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

func registerUser(t *testing.T, s *Server) string {
	t.Helper()
	w, payload := doRequest(t, s, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "an@example.com",
		"password": "matkhau123",
		"fullname": "Nguyễn Văn An",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, payload["success"])
	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w, payload := doRequest(t, s, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "khong-phai-email", "password": "matkhau123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Email không hợp lệ", payload["message"])

	w, payload = doRequest(t, s, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "an@example.com", "password": "123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, payload["message"], "6 ký tự")

	registerUser(t, s)
	w, payload = doRequest(t, s, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "an@example.com", "password": "matkhau123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Email đã được đăng ký", payload["message"])
}

func TestLoginFlow(t *testing.T) {
	s := newTestServer(t)
	registerUser(t, s)

	w, payload := doRequest(t, s, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "an@example.com", "password": "matkhau123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, payload["success"])
	require.NotEmpty(t, payload["token"])

	w, _ = doRequest(t, s, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "an@example.com", "password": "saimatkhau",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckEmail(t *testing.T) {
	s := newTestServer(t)
	registerUser(t, s)

	_, payload := doRequest(t, s, http.MethodPost, "/api/auth/check-email", "", gin.H{"email": "an@example.com"})
	require.Equal(t, false, payload["available"])

	_, payload = doRequest(t, s, http.MethodPost, "/api/auth/check-email", "", gin.H{"email": "moi@example.com"})
	require.Equal(t, true, payload["available"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	w, _ := doRequest(t, s, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doRequest(t, s, http.MethodGet, "/api/schedules", "khong-hop-le", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUserAndProfileUpdate(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s)

	w, payload := doRequest(t, s, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := payload["user"].(map[string]any)
	require.Equal(t, "an@example.com", user["email"])

	w, payload = doRequest(t, s, http.MethodPut, "/api/auth/update-profile", token, gin.H{
		"fullname": "Nguyễn An",
	})
	require.Equal(t, http.StatusOK, w.Code)
	user = payload["user"].(map[string]any)
	require.Equal(t, "Nguyễn An", user["fullname"])

	// Wrong current password blocks a password change.
	w, _ = doRequest(t, s, http.MethodPut, "/api/auth/update-profile", token, gin.H{
		"current_password": "saimatkhau", "new_password": "matkhaumoi",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleCRUD(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s)

	w, payload := doRequest(t, s, http.MethodPost, "/api/schedules", token, gin.H{
		"title":      "Họp team",
		"start_time": "2024-01-02T09:00:00Z",
		"end_time":   "2024-01-02T10:00:00Z",
		"category":   "meeting",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, payload["success"])
	id := int64(payload["schedule_id"].(float64))
	require.NotZero(t, id)

	_, payload = doRequest(t, s, http.MethodGet, "/api/schedules", token, nil)
	require.Equal(t, float64(1), payload["count"])

	_, payload = doRequest(t, s, http.MethodGet, "/api/schedules?date=2024-01-02", token, nil)
	require.Equal(t, float64(1), payload["count"])

	_, payload = doRequest(t, s, http.MethodGet, "/api/schedules?date=2024-01-03", token, nil)
	require.Equal(t, float64(0), payload["count"])

	_, payload = doRequest(t, s, http.MethodGet,
		"/api/schedules/range?start_date=2024-01-01&end_date=2024-01-02", token, nil)
	require.Equal(t, float64(1), payload["count"])

	w, _ = doRequest(t, s, http.MethodPut, "/api/schedules/999", token, gin.H{
		"title": "X", "start_time": "2024-01-02 09:00:00", "end_time": "2024-01-02 10:00:00",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, s, http.MethodPut, "/api/schedules/1", token, gin.H{
		"title": "Họp khách hàng", "start_time": "2024-01-02 14:00:00", "end_time": "2024-01-02 15:00:00",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, payload = doRequest(t, s, http.MethodDelete, "/api/schedules/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, payload["message"], "Đã xóa")

	w, _ = doRequest(t, s, http.MethodDelete, "/api/schedules/1", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatEndpointCreatesSchedule(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s)

	w, payload := doRequest(t, s, http.MethodPost, "/api/chat", token, gin.H{
		"message": "đặt lịch họp với team ngày mai lúc 9h sáng",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "schedule", payload["intent"])
	require.Contains(t, payload["message"], "Đã tạo lịch")

	_, payload = doRequest(t, s, http.MethodGet, "/api/schedules", token, nil)
	require.Equal(t, float64(1), payload["count"])
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w, payload := doRequest(t, s, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, payload["success"])
}
