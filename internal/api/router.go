// Package api wires the HTTP routes. Route paths are fixed: existing
// deployments and the bundled frontend depend on them.
package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mightywomble/linksdashboard/internal/api/handlers"
	"github.com/mightywomble/linksdashboard/internal/auth"
	"github.com/mightywomble/linksdashboard/internal/chat"
	"github.com/mightywomble/linksdashboard/internal/config"
	"github.com/mightywomble/linksdashboard/internal/feeds"
	"github.com/mightywomble/linksdashboard/internal/store"
	"github.com/mightywomble/linksdashboard/internal/web"
)

// NewRouter creates and configures the Gin router.
func NewRouter(cfg *config.Config, st *store.Store, sessions *auth.Sessions, fetcher *feeds.Fetcher, proxy *chat.Proxy) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware())

	router.SetHTMLTemplate(web.Templates())
	router.Static("/static/uploads", cfg.Storage.UploadDir)
	router.Static("/static/icons", cfg.Storage.IconsDir)

	pages := handlers.NewPagesHandler(st, sessions, cfg.Storage.IconsDir)
	groups := handlers.NewGroupsHandler(st)
	links := handlers.NewLinksHandler(st, cfg.Storage.UploadDir)
	settings := handlers.NewSettingsHandler(st)
	chatH := handlers.NewChatHandler(st, proxy)
	feedsH := handlers.NewFeedsHandler(st, fetcher)

	// Public routes: the dashboard itself is viewable by anyone with access
	// to the deployment, and so are the aggregated feed views.
	router.GET("/", pages.Index)
	router.GET("/login", pages.LoginForm)
	router.POST("/login", pages.Login)
	router.GET("/logout", pages.Logout)
	router.GET("/get_rss_feeds", feedsH.GetFeeds)
	router.GET("/get_rss_feed_page/:page", feedsH.GetFeedPage)
	router.GET("/get_latest_articles", feedsH.GetLatestArticles)

	// Browser-style admin routes: redirect to /login when unauthenticated,
	// respond with a flash message and a redirect on completion.
	webAdmin := router.Group("/")
	webAdmin.Use(sessions.RequireWeb())
	{
		webAdmin.GET("/settings", pages.Settings)
		webAdmin.POST("/add_group", groups.Add)
		webAdmin.POST("/delete_group", groups.Delete)
		webAdmin.POST("/move_group", groups.Move)
		webAdmin.POST("/add_link", links.Add)
		webAdmin.POST("/delete_link", links.Delete)
		webAdmin.POST("/move_link", links.Move)
		webAdmin.POST("/add_rss_feed", feedsH.Add)
		webAdmin.POST("/delete_rss_feed", feedsH.Delete)
	}

	// API-style admin routes: structured JSON errors, 401 when
	// unauthenticated.
	apiAdmin := router.Group("/")
	apiAdmin.Use(sessions.RequireAPI())
	{
		apiAdmin.POST("/edit_group", groups.Edit)
		apiAdmin.POST("/edit_link", links.Edit)
		apiAdmin.GET("/get_api_keys", settings.GetAPIKeys)
		apiAdmin.POST("/save_api_keys", settings.SaveAPIKeys)
		apiAdmin.POST("/change_admin_password", settings.ChangeAdminPassword)
		apiAdmin.GET("/get_dashboard_title", settings.GetDashboardTitle)
		apiAdmin.POST("/save_dashboard_title", settings.SaveDashboardTitle)
		apiAdmin.POST("/chat", chatH.Chat)
	}

	slog.Info("Router initialized", "mode", cfg.Server.Mode)
	return router
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		slog.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
		)
	}
}
