package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/chapterhub/chapterhub/app/repository"
	"github.com/chapterhub/chapterhub/internal/pkg/cache"
	"github.com/chapterhub/chapterhub/internal/pkg/champions"
	"github.com/chapterhub/chapterhub/internal/pkg/database"
	"github.com/chapterhub/chapterhub/internal/pkg/env"
	"github.com/chapterhub/chapterhub/internal/pkg/reminder"
	"github.com/chapterhub/chapterhub/internal/pkg/router"
	"github.com/chapterhub/chapterhub/internal/pkg/scheduler"
)

func main() {
	app, sched := NewApplication()

	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}

	// Stop cron jobs cleanly on SIGINT/SIGTERM before the listener dies.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		sched.Stop()
		_ = app.Shutdown()
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() (*fiber.App, *scheduler.Scheduler) {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	app := fiber.New(fiber.Config{
		AppName: "ChapterHub",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	repos := repository.GetGlobalRepositories()
	sched := scheduler.New(
		champions.NewEngine(repos.Activity, repos.Champion),
		reminder.NewScanner(repos.Member, reminder.NewMailNotifier(database.GetDB())),
	)

	return app, sched
}
