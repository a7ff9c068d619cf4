package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chaimkastel/happy-hour-app-sub002/injector"
	"github.com/chaimkastel/happy-hour-app-sub002/internal/infrastructures"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	config := infrastructures.LoadConfig()

	app, err := injector.InitializeApplication()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Fiber configuration
	fiberConfig := fiber.Config{
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	}

	router := fiber.New(fiberConfig)

	// Add CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-API-Key",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length",
		MaxAge:        300,
	}))

	app.RegisterRoutes(router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logrus.Info("Shutting down...")
		cancel()
		router.Shutdown()
	}()

	// The sweep only tidies vouchers that reads already treat as expired,
	// so its interval is a reporting knob, not a correctness one.
	go app.RedemptionService.RunExpirySweeper(ctx, config.SWEEP_INTERVAL)

	if err := router.Listen(":" + config.PORT); err != nil {
		logrus.Fatal(err)
	}
}
