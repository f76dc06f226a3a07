package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workshop-registration/internal/config"
	"github.com/iliyamo/workshop-registration/internal/database"
	"github.com/iliyamo/workshop-registration/internal/handler"
	"github.com/iliyamo/workshop-registration/internal/middleware"
	"github.com/iliyamo/workshop-registration/internal/queue"
	"github.com/iliyamo/workshop-registration/internal/repository"
	"github.com/iliyamo/workshop-registration/internal/router"
	"github.com/iliyamo/workshop-registration/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limit disabled")
	}

	workshops := repository.NewWorkshopRepo(db)
	registrations := repository.NewRegistrationRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	locks := service.NewCodeLocks()
	workshopSvc := service.NewWorkshopService(workshops, registrations, locks)
	admissionSvc := service.NewAdmissionService(workshops, registrations, locks)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	workshopHandler := handler.NewWorkshopHandler(workshopSvc)
	registrationHandler := handler.NewRegistrationHandler(admissionSvc, workshopSvc)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, workshopHandler, rdb)
	router.RegisterWorkshops(e, workshopHandler, cfg.JWTSecret)
	router.RegisterRegistrations(e, registrationHandler, cfg.JWTSecret)

	// Consumer keeps its own reconnect loop; it never stops the server.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
