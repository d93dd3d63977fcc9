package main

import (
	"os"
	"os/signal"
	"syscall"

	"learnpath/config"
	"learnpath/database"
	"learnpath/logger"
	authRoutes "learnpath/routers/authRoutes"
	courseRoutes "learnpath/routers/courseRoutes"
	"learnpath/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadConfig()

	log, err := logger.New(config.AppConfig.LogMode)
	if err != nil {
		panic(err)
	}
	logger.SetGlobal(log)
	defer log.Sync()

	database.ConnectDb()

	app := fiber.New()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupLearnRoutes(app)

	scheduler, err := utils.InitializeProgressScheduler(database.Database.Db, config.AppConfig.ProgressSyncSpec)
	if err != nil {
		log.Fatal("invalid PROGRESS_SYNC_SPEC", "spec", config.AppConfig.ProgressSyncSpec, "error", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		<-scheduler.Stop().Done()
		_ = app.Shutdown()
	}()

	log.Info("server is running", "port", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
