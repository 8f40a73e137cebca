package main

import (
	"log"
	"net/http"

	_ "chronotask/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"chronotask/internal/auth"
	"chronotask/internal/cache"
	"chronotask/internal/config"
	"chronotask/internal/db"
	"chronotask/internal/handler"
	"chronotask/internal/mail"
	"chronotask/internal/model"
	"chronotask/internal/repository"
	"chronotask/internal/router"
	"chronotask/internal/service"
)

// @title Chronotask API
// @version 1.0
// @description Task tracking API with email confirmation, password reset and JWT session cookies.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	jwtService, err := auth.NewJWTService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("auth init: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	mailer, err := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	if err != nil {
		log.Fatalf("mailer init: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	authService := service.NewAuthService(userRepo, jwtService, mailer, cfg)
	taskService := service.NewTaskService(taskRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionCookieTTL)
	taskHandler := handler.NewTaskHandler(taskService)

	guard := auth.NewGuard(userRepo)

	e := echo.New()
	e.Use(middleware.RequestID())

	router.Register(e, jwtService, guard, authHandler, taskHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
