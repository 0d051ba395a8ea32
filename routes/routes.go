package routes

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	"github.com/coinpass/be-content-platform/domain/admin"
	"github.com/coinpass/be-content-platform/domain/article"
	"github.com/coinpass/be-content-platform/domain/auth"
	"github.com/coinpass/be-content-platform/domain/banner"
	"github.com/coinpass/be-content-platform/domain/exchange"
	"github.com/coinpass/be-content-platform/domain/faq"
	"github.com/coinpass/be-content-platform/domain/health"
	"github.com/coinpass/be-content-platform/domain/page"
	"github.com/coinpass/be-content-platform/domain/public"
	"github.com/coinpass/be-content-platform/middleware"
	"github.com/coinpass/be-content-platform/pkg/logger"
	"github.com/coinpass/be-content-platform/render"
	"github.com/coinpass/be-content-platform/store"
)

// Deps carries everything the routes need. Built once in main.
type Deps struct {
	DB       *sqlx.DB
	Store    *store.Adapter
	Sessions *auth.SessionStore
	Renderer *render.Renderer
}

// RegisterRoutes wires every handler. Public reads are open; admin writes
// sit behind JWT plus the CSRF write guard.
func RegisterRoutes(e *echo.Echo, d Deps) {
	log := logger.Get()

	healthHandler := health.NewHandler(d.Store)
	e.GET("/health", healthHandler.HealthHandler)
	e.GET("/health/live", healthHandler.LivenessHandler)
	e.GET("/health/ready", healthHandler.ReadinessHandler)
	e.GET("/health/stats", healthHandler.StatsHandler)

	// Auth routes
	authHandler := auth.NewHandler(d.DB, d.Sessions)
	loginLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		MaxRequests:   5,
		Window:        15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		DB:            d.DB.DB,
	})
	e.POST("/auth/login", authHandler.LoginHandler, loginLimiter)
	e.POST("/auth/logout", authHandler.LogoutHandler, middleware.JWT(d.DB))
	e.GET("/auth/session", authHandler.SessionHandler, middleware.JWT(d.DB))
	e.POST("/auth/refresh", authHandler.RefreshHandler, middleware.JWT(d.DB))

	// Public JSON reads
	e.GET("/content/exchanges", exchange.NewHandler(d.Store).ListHandler)
	e.GET("/content/faqs", faq.NewHandler(d.Store).ListHandler)
	pageHandler := page.NewHandler(d.Store)
	e.GET("/content/pages", pageHandler.ListHandler)
	e.GET("/content/pages/:name", pageHandler.GetHandler)
	e.GET("/content/articles", article.NewHandler(d.Store).ListActiveHandler)
	e.GET("/content/banners/:page", banner.NewHandler(d.Store).GetHandler)

	// Public HTML fragments
	publicHandler := public.NewHandler(d.Store, d.Renderer)
	e.GET("/pages/index", publicHandler.IndexHandler)
	fragments := e.Group("/fragments")
	fragments.GET("/exchanges", publicHandler.ExchangesHandler)
	fragments.GET("/faqs", publicHandler.FAQsHandler)
	fragments.GET("/hero", publicHandler.HeroHandler)
	fragments.GET("/hero/typing", publicHandler.TypingHandler)
	fragments.GET("/articles", publicHandler.ArticlesHandler)
	fragments.GET("/banners/:page", publicHandler.BannerHandler)
	fragments.GET("/popups/:name", publicHandler.PopupHandler)
	e.POST("/popups/dismiss", publicHandler.DismissPopupHandler)

	// Admin routes (JWT for reads, JWT + write guard for mutations)
	controller := admin.NewController(d.Store, log)
	adminHandler := admin.NewHandler(controller)
	adminGroup := e.Group("/admin", middleware.JWT(d.DB))
	adminGroup.GET("/content", adminHandler.MirrorHandler)
	adminGroup.GET("/pages/:name", adminHandler.GetPageHandler)

	writes := adminGroup.Group("", middleware.WriteGuard(d.Sessions))
	writes.POST("/exchanges", adminHandler.CreateExchangeHandler)
	writes.PUT("/exchanges", adminHandler.SaveExchangeHandler)
	writes.DELETE("/exchanges/:id", adminHandler.DeleteExchangeHandler)
	writes.POST("/faqs", adminHandler.CreateFAQHandler)
	writes.PUT("/faqs", adminHandler.SaveFAQHandler)
	writes.DELETE("/faqs/:id", adminHandler.DeleteFAQHandler)
	writes.PUT("/pages", adminHandler.SavePageHandler)
	writes.PUT("/articles", adminHandler.SaveArticleHandler)
	writes.PUT("/articles/all", adminHandler.SaveAllArticlesHandler)
	writes.PUT("/banners", adminHandler.SaveBannerHandler)
}
