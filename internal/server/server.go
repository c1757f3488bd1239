package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quangtran/lichviet/internal/assistant"
	"github.com/quangtran/lichviet/internal/auth"
	"github.com/quangtran/lichviet/internal/storage"
)

// Server wires the HTTP API: public auth endpoints plus the JWT-protected
// chat and schedule routes.
type Server struct {
	store     storage.Storage
	assistant *assistant.Assistant
	auth      *auth.Manager
	logger    *zap.Logger
	router    *gin.Engine
}

func New(store storage.Storage, asst *assistant.Assistant, authMgr *auth.Manager, logger *zap.Logger) *Server {
	s := &Server{
		store:     store,
		assistant: asst,
		auth:      authMgr,
		logger:    logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)
		api.POST("/auth/check-email", s.checkEmail)
	}

	protected := api.Group("")
	protected.Use(s.authRequired())
	{
		protected.GET("/auth/me", s.currentUser)
		protected.PUT("/auth/update-profile", s.updateProfile)
		protected.POST("/chat", s.chat)
		protected.GET("/schedules", s.listSchedules)
		protected.POST("/schedules", s.createSchedule)
		protected.GET("/schedules/upcoming", s.upcomingSchedules)
		protected.GET("/schedules/range", s.schedulesInRange)
		protected.PUT("/schedules/:id", s.updateSchedule)
		protected.DELETE("/schedules/:id", s.deleteSchedule)
	}

	s.router = router
	return s
}

// Router exposes the handler for tests and for custom http.Server setups.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Run(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.router.Run(addr)
}
