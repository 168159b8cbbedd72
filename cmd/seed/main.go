package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"userdir/internal/config"
	"userdir/internal/db"
	apperrors "userdir/internal/errors"
	"userdir/internal/model"
	"userdir/internal/repository"
	"userdir/internal/service"
)

// Seeds the initial admin account so a fresh deployment has someone who
// can reach the admin endpoints. Running it twice is a no-op.
func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	mongo, err := db.NewMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer mongo.Close()
	log.Println("Connected to database")

	req := &model.CreateUserRequest{
		Name:     getEnv("ADMIN_NAME", "Admin"),
		Email:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		Password: getEnv("ADMIN_PASSWORD", "changeme"),
		Role:     string(model.RoleAdmin),
		Status:   string(model.StatusActive),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(mongo)
	userService := service.NewUserService(userRepo, nil, service.NewUserValidator())

	user, err := userService.Create(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			log.Printf("Admin %s already exists, nothing to do", req.Email)
			return
		}
		log.Fatalf("Failed to seed admin: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Admin created: %s (%s)", user.Email, user.ID.Hex())
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
