package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "userdir/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"userdir/internal/auth"
	"userdir/internal/cache"
	"userdir/internal/config"
	"userdir/internal/db"
	"userdir/internal/handler"
	"userdir/internal/repository"
	"userdir/internal/router"
	"userdir/internal/service"
)

// @title User Directory API
// @version 1.0
// @description User directory with JWT authentication and role-based access control.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	mongo, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(mongo)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	validator := service.NewUserValidator()

	authService := service.NewAuthService(userRepo, jwtService, validator)
	userService := service.NewUserService(userRepo, cacheClient, validator)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, mongo, jwtService, authHandler, userHandler)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := cacheClient.Close(); err != nil {
		log.Printf("cache close: %v", err)
	}
	if err := mongo.Close(); err != nil {
		log.Printf("database close: %v", err)
	}
}
