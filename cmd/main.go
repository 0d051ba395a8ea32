package main

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/coinpass/be-content-platform/config"
	"github.com/coinpass/be-content-platform/domain/auth"
	"github.com/coinpass/be-content-platform/migrations"
	"github.com/coinpass/be-content-platform/pkg/apperrors"
	"github.com/coinpass/be-content-platform/pkg/logger"
	"github.com/coinpass/be-content-platform/render"
	"github.com/coinpass/be-content-platform/routes"
	"github.com/coinpass/be-content-platform/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/main.go [server|migrate]")
		os.Exit(1)
	}

	config.InitConfig()
	logger.Init(logger.Config{
		Level:       logger.Level(viper.GetString("LOG_LEVEL")),
		Environment: viper.GetString("ENVIRONMENT"),
		ServiceName: "content-platform",
	})

	switch os.Args[1] {
	case "server":
		startServer()
	case "migrate":
		runMigrations()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func startServer() {
	log := logger.Get()

	db := config.NewDB()
	rdb := config.NewRedis()

	contentStore := store.New(db, log)
	sessions := auth.NewSessionStore(rdb)
	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse templates", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(log)

	e.Use(logger.RequestLoggerMiddleware(log))
	e.Use(logger.RecoveryMiddleware(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{viper.GetString("CORS_ORIGIN")},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Session-Token", "X-CSRF-Token"},
		ExposeHeaders:    []string{echo.HeaderContentLength, "X-Session-Token", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	routes.RegisterRoutes(e, routes.Deps{
		DB:       db,
		Store:    contentStore,
		Sessions: sessions,
		Renderer: renderer,
	})

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("Starting server", logger.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server stopped", err)
	}
}

func runMigrations() {
	log := logger.Get()
	db := config.NewDB()

	if err := migrations.Up(db.DB); err != nil {
		log.Fatal("Migrations failed", err)
	}
	log.Info("Migrations applied")
}
