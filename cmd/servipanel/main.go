package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/AndesHost/ServiPanel/app/models"
	"github.com/AndesHost/ServiPanel/app/repository"
	"github.com/AndesHost/ServiPanel/internal/pkg/cache"
	"github.com/AndesHost/ServiPanel/internal/pkg/database"
	"github.com/AndesHost/ServiPanel/internal/pkg/env"
	"github.com/AndesHost/ServiPanel/internal/pkg/jobqueue"
	"github.com/AndesHost/ServiPanel/internal/pkg/router"
)

func main() {
	app := NewApplication()

	// Graceful shutdown on SIGINT/SIGTERM so queued jobs finish first
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		jobqueue.GetManager().Stop()
		_ = app.Shutdown()
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	if err != nil {
		log.Fatal(err)
	}
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	db := database.GetDB()
	repository.InitializeFactory(db)
	if err := models.LoadSettings(db); err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Background jobs: daily alert scan plus outbound mail delivery
	if err := jobqueue.GetManager().Start(repository.GetGlobalRepositories()); err != nil {
		log.Fatalf("Failed to start job queue: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "ServiPanel",
	})

	app.Use(recover.New(), logger.New())

	router.InstallRouter(app)

	return app
}
