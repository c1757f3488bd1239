package server

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quangtran/lichviet/internal/auth"
	"github.com/quangtran/lichviet/internal/models"
	"github.com/quangtran/lichviet/internal/storage"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"fullname":   u.Fullname,
		"created_at": u.CreatedAt.Format(time.RFC3339),
		"updated_at": u.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status": gin.H{
			"api":          "running",
			"database":     "connected",
			"ai_assistant": "available",
			"timestamp":    time.Now().Format(time.RFC3339),
		},
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Thiếu trường bắt buộc: email hoặc password")
		return
	}
	if !emailRe.MatchString(email) {
		fail(c, http.StatusBadRequest, "Email không hợp lệ")
		return
	}
	if len(req.Password) < 6 {
		fail(c, http.StatusBadRequest, "Mật khẩu phải có ít nhất 6 ký tự")
		return
	}

	if exists, err := s.store.EmailExists(email); err != nil {
		s.logger.Error("email check failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Có lỗi xảy ra khi đăng ký")
		return
	} else if exists {
		fail(c, http.StatusBadRequest, "Email đã được đăng ký")
		return
	}

	user := &models.User{
		Email:    email,
		Password: auth.HashPassword(req.Password),
		Fullname: strings.TrimSpace(req.Fullname),
	}
	if err := s.store.CreateUser(user); err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Đăng ký thất bại")
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		s.logger.Error("issue token failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Đăng ký thất bại")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Đăng ký thành công",
		"user":    userPayload(user),
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "Thiếu trường bắt buộc: email hoặc password")
		return
	}

	user, err := s.store.GetUserByEmail(email)
	if err != nil || !auth.VerifyPassword(req.Password, user.Password) {
		fail(c, http.StatusUnauthorized, "Email hoặc mật khẩu không đúng")
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		s.logger.Error("issue token failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Có lỗi xảy ra khi đăng nhập")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Đăng nhập thành công",
		"user":    userPayload(user),
		"token":   token,
	})
}

func (s *Server) checkEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, http.StatusBadRequest, "Thiếu thông tin email")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRe.MatchString(email) {
		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"available": false,
			"message":   "Email không hợp lệ",
		})
		return
	}

	exists, err := s.store.EmailExists(email)
	if err != nil {
		s.logger.Error("email check failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Có lỗi xảy ra khi kiểm tra email")
		return
	}

	message := "Email có thể sử dụng"
	if exists {
		message = "Email đã được sử dụng"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"available": !exists,
		"message":   message,
	})
}

func (s *Server) currentUser(c *gin.Context) {
	user, err := s.store.GetUserByID(currentUserID(c))
	if err != nil {
		fail(c, http.StatusNotFound, "Người dùng không tồn tại")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": userPayload(user)})
}

type updateProfileRequest struct {
	Fullname        *string `json:"fullname"`
	Email           *string `json:"email"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

func (s *Server) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	user, err := s.store.GetUserByID(currentUserID(c))
	if err != nil {
		fail(c, http.StatusNotFound, "Người dùng không tồn tại")
		return
	}

	changed := false
	if req.Fullname != nil {
		user.Fullname = strings.TrimSpace(*req.Fullname)
		changed = true
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailRe.MatchString(email) {
			fail(c, http.StatusBadRequest, "Email không hợp lệ")
			return
		}
		if existing, err := s.store.GetUserByEmail(email); err == nil && existing.ID != user.ID {
			fail(c, http.StatusBadRequest, "Email đã được sử dụng")
			return
		}
		user.Email = email
		changed = true
	}

	if req.CurrentPassword != nil && req.NewPassword != nil {
		if !auth.VerifyPassword(*req.CurrentPassword, user.Password) {
			fail(c, http.StatusBadRequest, "Mật khẩu hiện tại không đúng")
			return
		}
		if len(*req.NewPassword) < 6 {
			fail(c, http.StatusBadRequest, "Mật khẩu mới phải có ít nhất 6 ký tự")
			return
		}
		user.Password = auth.HashPassword(*req.NewPassword)
		changed = true
	}

	if !changed {
		fail(c, http.StatusBadRequest, "Không có dữ liệu để cập nhật")
		return
	}

	if err := s.store.UpdateUser(user); err != nil {
		s.logger.Error("update user failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Cập nhật thông tin thất bại")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cập nhật thông tin thành công",
		"user":    userPayload(user),
	})
}

func (s *Server) chat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		fail(c, http.StatusBadRequest, "Thiếu nội dung tin nhắn")
		return
	}

	resp := s.assistant.ProcessMessage(c.Request.Context(), currentUserID(c), req.Message)
	c.JSON(http.StatusOK, resp)
}

// parseTimestamp accepts both RFC3339 and the plain datetime layout the
// web client sends.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func (s *Server) listSchedules(c *gin.Context) {
	userID := currentUserID(c)

	var (
		schedules []models.Schedule
		err       error
	)
	if date := c.Query("date"); date != "" {
		day, perr := time.Parse("2006-01-02", date)
		if perr != nil {
			fail(c, http.StatusBadRequest, "Tham số date không hợp lệ")
			return
		}
		schedules, err = s.store.ListSchedulesInRange(userID, day, day.AddDate(0, 0, 1))
	} else {
		schedules, err = s.store.ListSchedules(userID)
	}
	if err != nil {
		s.logger.Error("list schedules failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Lỗi khi lấy lịch trình")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"schedules": schedules,
		"count":     len(schedules),
	})
}

func (s *Server) upcomingSchedules(c *gin.Context) {
	hours := 24
	if raw := c.Query("hours"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			hours = n
		}
	}

	now := time.Now()
	schedules, err := s.store.ListSchedulesInRange(currentUserID(c), now, now.Add(time.Duration(hours)*time.Hour))
	if err != nil {
		s.logger.Error("list upcoming schedules failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Lỗi khi lấy lịch trình sắp tới")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"schedules":       schedules,
		"count":           len(schedules),
		"timeframe_hours": hours,
	})
}

func (s *Server) schedulesInRange(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		fail(c, http.StatusBadRequest, "Thiếu tham số start_date hoặc end_date")
		return
	}

	from, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "Tham số start_date không hợp lệ")
		return
	}
	to, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "Tham số end_date không hợp lệ")
		return
	}

	// end_date is inclusive: the whole last day is covered.
	schedules, err := s.store.ListSchedulesInRange(currentUserID(c), from, to.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("list schedules in range failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Lỗi khi lấy lịch trình")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"schedules": schedules,
		"count":     len(schedules),
	})
}

type scheduleRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Location        string `json:"location"`
	ReminderMinutes int    `json:"reminder_minutes"`
	Priority        string `json:"priority"`
	Category        string `json:"category"`
}

func (req *scheduleRequest) apply(sc *models.Schedule) (string, bool) {
	if req.Title == "" || req.StartTime == "" || req.EndTime == "" {
		return "Thiếu trường bắt buộc: title, start_time hoặc end_time", false
	}

	start, err := parseTimestamp(req.StartTime)
	if err != nil {
		return "Tham số start_time không hợp lệ", false
	}
	end, err := parseTimestamp(req.EndTime)
	if err != nil {
		return "Tham số end_time không hợp lệ", false
	}

	sc.Title = req.Title
	sc.Description = req.Description
	sc.StartTime = start
	sc.EndTime = end
	sc.Location = req.Location
	sc.ReminderMinutes = req.ReminderMinutes
	sc.Priority = req.Priority
	if sc.Priority == "" {
		sc.Priority = "medium"
	}
	sc.Category = req.Category
	if sc.Category == "" {
		sc.Category = "general"
	}
	return "", true
}

func (s *Server) createSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	schedule := &models.Schedule{UserID: currentUserID(c)}
	if msg, ok := req.apply(schedule); !ok {
		fail(c, http.StatusBadRequest, msg)
		return
	}

	if err := s.store.CreateSchedule(schedule); err != nil {
		s.logger.Error("create schedule failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Lỗi khi tạo lịch trình")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Tạo lịch trình thành công",
		"schedule_id": schedule.ID,
	})
}

func (s *Server) updateSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "ID không hợp lệ")
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Dữ liệu không hợp lệ")
		return
	}

	schedule, err := s.store.GetSchedule(currentUserID(c), id)
	if err != nil {
		fail(c, http.StatusNotFound, "Lịch trình không tồn tại")
		return
	}

	if msg, ok := req.apply(schedule); !ok {
		fail(c, http.StatusBadRequest, msg)
		return
	}

	if err := s.store.UpdateSchedule(schedule); err != nil {
		s.logger.Error("update schedule failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Không thể cập nhật lịch trình")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cập nhật lịch trình thành công",
	})
}

func (s *Server) deleteSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "ID không hợp lệ")
		return
	}

	if err := s.store.DeleteSchedule(currentUserID(c), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail(c, http.StatusNotFound, "Lịch trình không tồn tại hoặc bạn không có quyền xóa")
			return
		}
		s.logger.Error("delete schedule failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Lỗi khi xóa lịch trình")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Đã xóa lịch trình ID " + strconv.FormatInt(id, 10),
		"schedule_id": id,
	})
}
