package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"inventory-service/app/connection"
	"inventory-service/app/consumer"
	"inventory-service/app/domain"
	handler "inventory-service/app/handler/api"
	"inventory-service/app/middleware"
	"inventory-service/app/repository/broker"
	"inventory-service/app/repository/db"
	"inventory-service/app/usecase"
	"inventory-service/config"
	"inventory-service/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nats-io/nats.go/jetstream"
	slogfiber "github.com/samber/slog-fiber"
)

func main() {
	// init logger
	logger.InitLogger()

	ctx := context.Background()
	// init config
	cfg, err := config.InitConfig(ctx)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		return
	}

	// one database handle and one broker connection for the process
	conn := connection.New(cfg)
	defer conn.Close()

	dbConn, err := conn.DB()
	if err != nil {
		slog.Error("DB connection failed", "error", err)
		return
	}

	js, err := conn.JetStream()
	if err != nil {
		slog.Error("Error connecting to NATS", "error", err)
		return
	}

	streamName := strings.ToUpper(cfg.Nats.StreamName)
	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{cfg.Nats.InventorySubject},
		Storage:  jetstream.FileStorage,
	})
	if err != nil && !errors.Is(err, jetstream.ErrStreamNameAlreadyInUse) {
		slog.Error("create inventory stream failed", "error", err)
		return
	}

	reqValidator := validator.New()
	productRepo := db.NewProductRepository(dbConn)
	healthRepo := db.NewHealthRepository(dbConn)
	inventoryPublisher := broker.NewInventoryPublisher(js, cfg.Nats.InventorySubject)

	productUsecase := usecase.NewProductUsecase(productRepo)
	inventoryUsecase := usecase.NewInventoryUsecase(productRepo, inventoryPublisher)
	healthUsecase := usecase.NewHealthUsecase(healthRepo)
	inventoryProcessor := usecase.NewInventoryProcessor(productRepo)

	// consumer side: parse + fan out inventory events
	dispatcher := consumer.NewDispatcher(js, streamName)
	err = dispatcher.Subscribe(cfg.Nats.InventorySubject, consumer.Parser{
		Name: "inventory-event",
		Parse: func(data []byte) (any, error) {
			return domain.ParseInventoryEvent(data)
		},
	}, inventoryProcessor)
	if err != nil {
		slog.Error("dispatcher subscribe failed", "error", err)
		return
	}
	if err := dispatcher.Activate(ctx); err != nil {
		slog.Error("dispatcher activate failed", "error", err)
		return
	}

	productHandler := handler.NewProductHandler(productUsecase, reqValidator)
	inventoryHandler := handler.NewInventoryHandler(inventoryUsecase, reqValidator)

	// Initialize HTTP web framework
	app := fiber.New()
	app.Use(healthcheck.New(healthcheck.Config{
		LivenessProbe: func(c *fiber.Ctx) bool {
			return true
		},
		LivenessEndpoint: "/live",
		ReadinessProbe: func(c *fiber.Ctx) bool {
			checkCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			return healthUsecase.Check(checkCtx) == nil
		},
		ReadinessEndpoint: "/ready",
	}))
	webLogger := slog.New(&logger.RequestIDHandler{Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})})
	app.Use(slogfiber.New(webLogger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(middleware.RequestIDMiddleware())

	handler.SetupRouter(app, productHandler, inventoryHandler, cfg)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Failed to listen", "port", cfg.Port)
			return
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("Gracefully shutdown")
	if err := app.Shutdown(); err != nil {
		slog.Warn("Unfortunately the shutdown wasn't smooth", "err", err)
	}
	dispatcher.Shutdown()
}
