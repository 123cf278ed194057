package api

import (
	"github.com/gorilla/websocket"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/alumnet/alumni-network/internal/api/handler"
	"github.com/alumnet/alumni-network/internal/api/middleware"
	"github.com/alumnet/alumni-network/internal/core/ports"
	"github.com/alumnet/alumni-network/internal/infrastructure/http/handlers"
)

// Services groups everything the HTTP layer needs from the core.
type Services struct {
	Auth          ports.AuthService
	Users         ports.UserService
	Connections   ports.ConnectionService
	Clubs         ports.ClubService
	Projects      ports.ProjectService
	Posts         ports.PostService
	Mentorship    ports.MentorshipService
	Notifications ports.NotificationService
	Analytics     ports.AnalyticsService
}

// RouterConfig carries the transport-level collaborators.
type RouterConfig struct {
	JWTSecret string
	Logger    zerolog.Logger
	Readiness *handlers.ReadinessHandler
	Streamer  handler.Streamer
	Upgrader  *websocket.Upgrader

	// AccountStatus backs the suspended-account check on writes; nil skips it.
	AccountStatus middleware.StatusLookup
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title                       Alumni Network API
// @version                     1.0
// @description                 Alumni networking platform: profiles, connections, clubs, crowdfunding, posts, mentorship and notifications.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func NewRouter(svc Services, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(cfg.Logger))
	e.Use(echoprometheus.NewMiddleware("alumnet"))

	// --- Ops (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", cfg.Readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users)
	connectionHandler := handler.NewConnectionHandler(svc.Connections)
	clubHandler := handler.NewClubHandler(svc.Clubs)
	projectHandler := handler.NewProjectHandler(svc.Projects)
	postHandler := handler.NewPostHandler(svc.Posts)
	mentorshipHandler := handler.NewMentorshipHandler(svc.Mentorship)
	notificationHandler := handler.NewNotificationHandler(svc.Notifications, cfg.Streamer, cfg.Upgrader)
	analyticsHandler := handler.NewAnalyticsHandler(svc.Analytics)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	authed := v1.Group("", middleware.Auth(cfg.JWTSecret), middleware.ActiveAccount(cfg.AccountStatus))
	adminOnly := middleware.AdminOnly()

	// --- Users ---
	authed.GET("/users", userHandler.List)
	authed.GET("/users/me", userHandler.Me)
	authed.PATCH("/users/me", userHandler.UpdateMe)
	authed.POST("/users/me/password", authHandler.ChangePassword)
	authed.GET("/users/me/activity", userHandler.MyActivity)
	authed.PUT("/users/me/interests", userHandler.SetMyInterests)
	authed.GET("/users/me/clubs", clubHandler.MyClubs)
	authed.GET("/users/me/contributions", projectHandler.MyContributions)
	authed.GET("/users/me/bookmarks", postHandler.Bookmarks)
	authed.GET("/users/:id", userHandler.Get)
	authed.GET("/users/:id/stats", userHandler.Stats)
	authed.PATCH("/users/:id/status", userHandler.SetStatus, adminOnly)
	authed.POST("/users/:id/verify", userHandler.Verify, adminOnly)
	authed.GET("/interests", userHandler.ListInterests)

	// --- Connections ---
	authed.POST("/connections", connectionHandler.Request)
	authed.GET("/connections", connectionHandler.List)
	authed.GET("/connections/pending", connectionHandler.Pending)
	authed.POST("/connections/:id/respond", connectionHandler.Respond)

	// --- Clubs ---
	authed.GET("/clubs", clubHandler.List)
	authed.POST("/clubs", clubHandler.Create)
	authed.GET("/clubs/:id", clubHandler.Get)
	authed.PATCH("/clubs/:id", clubHandler.Update)
	authed.POST("/clubs/:id/join", clubHandler.Join)
	authed.POST("/clubs/:id/leave", clubHandler.Leave)
	authed.DELETE("/clubs/:id", clubHandler.Delete)
	authed.GET("/clubs/:id/members", clubHandler.Members)
	authed.GET("/clubs/:id/posts", clubHandler.Posts)
	authed.POST("/clubs/:id/posts", clubHandler.CreatePost)
	authed.GET("/clubs/:id/events", clubHandler.Events)
	authed.POST("/clubs/:id/events", clubHandler.CreateEvent)
	authed.GET("/events/:id", clubHandler.GetEvent)
	authed.PATCH("/events/:id", clubHandler.UpdateEvent)
	authed.DELETE("/events/:id", clubHandler.DeleteEvent)

	// --- Projects ---
	authed.GET("/projects", projectHandler.List)
	authed.POST("/projects", projectHandler.Create)
	authed.GET("/projects/stats", projectHandler.Stats)
	authed.GET("/projects/:id", projectHandler.Get)
	authed.PATCH("/projects/:id", projectHandler.Update)
	authed.POST("/projects/:id/submit", projectHandler.Submit)
	authed.POST("/projects/:id/activate", projectHandler.Activate)
	authed.POST("/projects/:id/reject", projectHandler.Reject, adminOnly)
	authed.POST("/projects/:id/cancel", projectHandler.Cancel)
	authed.POST("/projects/:id/close", projectHandler.Close)
	authed.POST("/projects/:id/contributions", projectHandler.Contribute)
	authed.GET("/projects/:id/contributions", projectHandler.ListContributions)

	// --- Posts ---
	authed.GET("/posts", postHandler.List)
	authed.POST("/posts", postHandler.Create)
	authed.GET("/posts/feed", postHandler.Feed)
	authed.GET("/posts/:id", postHandler.Get)
	authed.PATCH("/posts/:id", postHandler.Update)
	authed.DELETE("/posts/:id", postHandler.Delete)
	authed.POST("/posts/:id/like", postHandler.Like)
	authed.POST("/posts/:id/bookmark", postHandler.Bookmark)
	authed.POST("/posts/:id/comments", postHandler.Comment)
	authed.GET("/posts/:id/comments", postHandler.Comments)
	authed.PATCH("/comments/:id", postHandler.UpdateComment)
	authed.DELETE("/comments/:id", postHandler.DeleteComment)
	authed.POST("/posts/:id/share", postHandler.Share)

	// --- Mentorship ---
	authed.PUT("/mentors/me", mentorshipHandler.UpsertProfile)
	authed.GET("/mentors", mentorshipHandler.ListMentors)
	authed.GET("/mentors/:user_id", mentorshipHandler.GetProfile)
	authed.POST("/mentorships", mentorshipHandler.Request)
	authed.GET("/mentorships", mentorshipHandler.ListRequests)
	authed.POST("/mentorships/:id/respond", mentorshipHandler.Respond)
	authed.POST("/mentorships/:id/complete", mentorshipHandler.Complete)
	authed.POST("/mentorships/:id/sessions", mentorshipHandler.ScheduleSession)
	authed.GET("/mentorships/:id/sessions", mentorshipHandler.ListSessions)
	authed.POST("/sessions/:id/start", mentorshipHandler.StartSession)
	authed.POST("/sessions/:id/end", mentorshipHandler.EndSession)

	// --- Notifications ---
	authed.GET("/notifications", notificationHandler.List)
	authed.GET("/notifications/stats", notificationHandler.Stats)
	authed.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	authed.GET("/notifications/preferences", notificationHandler.Preferences)
	authed.PUT("/notifications/preferences", notificationHandler.UpdatePreferences)
	authed.GET("/notifications/:id", notificationHandler.Get)
	authed.POST("/notifications/:id/read", notificationHandler.MarkRead)
	authed.GET("/ws/notifications", notificationHandler.Stream)

	// --- Analytics ---
	authed.GET("/analytics/dashboard", analyticsHandler.Dashboard)
	authed.GET("/analytics/summary", analyticsHandler.Summary, adminOnly)
	authed.GET("/analytics/top-posts", analyticsHandler.TopPosts)

	return e
}
