package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aftermeet-app/aftermeet/internal/infrastructure/http/middleware"
	"github.com/aftermeet-app/aftermeet/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	authMiddleware *middleware.AuthMiddleware
	authHandler    *Auth
	meetingHandler *Meeting
	taskHandler    *Task
	webhookHandler *Webhook
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, authHandler *Auth, meetingHandler *Meeting, taskHandler *Task, webhookHandler *Webhook) *Router {
	return &Router{
		cfg:            cfg,
		authMiddleware: authMiddleware,
		authHandler:    authHandler,
		meetingHandler: meetingHandler,
		taskHandler:    taskHandler,
		webhookHandler: webhookHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")
	rt.setupAuthRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupTaskRoutes(v1)

	// Signed by the AI service, not a user token
	v1.POST("/webhooks/ai", rt.webhookHandler.HandleAnalysisCallback)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")
	authGroup.POST("/otp/request", rt.authHandler.RequestCode)
	authGroup.POST("/otp/verify", rt.authHandler.VerifyCode)
	authGroup.POST("/refresh", rt.authHandler.RefreshToken)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.GET("/me", rt.authHandler.Me, rt.authMiddleware.Authenticate)
}

// setupMeetingRoutes configures meeting and transcript routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings", rt.authMiddleware.Authenticate)

	meetings.POST("", rt.meetingHandler.Create)
	meetings.GET("", rt.meetingHandler.List)
	meetings.GET("/:id", rt.meetingHandler.Get)
	meetings.DELETE("/:id", rt.meetingHandler.Delete)

	meetings.POST("/:id/transcript", rt.meetingHandler.UploadTranscript)
	meetings.GET("/:id/transcript/raw", rt.meetingHandler.RawTranscript)
	meetings.POST("/:id/analyze", rt.meetingHandler.Analyze)
	meetings.GET("/:id/action-items", rt.meetingHandler.ActionItems)
	meetings.GET("/:id/analytics", rt.meetingHandler.Analytics)
	meetings.POST("/:id/chat", rt.meetingHandler.Chat)
	meetings.GET("/:id/search", rt.meetingHandler.Search)
}

// setupTaskRoutes configures Kanban board routes
func (rt *Router) setupTaskRoutes(g *echo.Group) {
	tasks := g.Group("/tasks", rt.authMiddleware.Authenticate)

	tasks.POST("", rt.taskHandler.Create)
	tasks.GET("", rt.taskHandler.List)
	tasks.GET("/:id", rt.taskHandler.Get)
	tasks.PATCH("/:id", rt.taskHandler.Update)
	tasks.DELETE("/:id", rt.taskHandler.Delete)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
