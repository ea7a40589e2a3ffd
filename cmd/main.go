package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"payexsync/config"
	"payexsync/database"
	"payexsync/handler"
	"payexsync/lib"
	"payexsync/middleware"
	"payexsync/pkg/events"
	"payexsync/repository"
	"payexsync/router"
	"payexsync/scheduler"
	"payexsync/service"
	"payexsync/worker"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	config.SetupEnvFile()

	logger := config.NewLogger()
	defer logger.Sync()

	if err := config.InitPaymentLoggers(logger); err != nil {
		logger.Fatal("failed to init payment loggers", zap.Error(err))
	}
	defer config.LogManager.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.ConnectDB(logger); err != nil {
		logger.Fatal("database setup failed", zap.Error(err))
	}

	var provider service.GatewayConfigProvider = config.EnvGatewayConfig{}
	useMongo, err := database.SetupMongoDB(ctx, logger)
	if err != nil {
		logger.Fatal("mongodb setup failed", zap.Error(err))
	}
	if useMongo {
		provider = repository.NewMongoGatewayConfig(
			database.GetCollection(config.Config("MONGODB_DATABASE", "payex"), "settings"))
	}

	orders := repository.NewOrderRepository(database.DB)
	transactions := repository.NewTransactionRepository(database.DB)
	notices := repository.NewAdminNoticeRepository(database.DB)
	users := repository.NewUserRepository(database.DB)

	if username := config.Config("ADMIN_USERNAME", ""); username != "" {
		created, err := users.EnsureUser(ctx, username, config.Config("ADMIN_EMAIL", ""), config.Config("ADMIN_PASSWORD", ""), "admin")
		if err != nil {
			logger.Fatal("failed to create admin user", zap.Error(err))
		}
		if created {
			logger.Info("admin user created", zap.String("username", username))
		}
	}

	noticeQueue := worker.NewNoticeQueue(notices, config.ConfigInt("NOTICE_QUEUE_SIZE", 100), logger.Named("notices"))
	noticeDone := make(chan struct{})
	go func() {
		noticeQueue.Run(ctx)
		close(noticeDone)
	}()

	var locker service.OrderLocker
	if database.InitRedis(logger) {
		locker = repository.NewRedisLocker(database.RedisClient)
		defer database.RedisClient.Close()
	}

	deps := service.Dependencies{
		Orders:       orders,
		Transactions: transactions,
		Gateways:     lib.NewRegistry(provider, lib.NewPxOrderClient()),
		Notifier:     noticeQueue,
		Logger:       logger.Named("workflow"),
	}

	publisher, err := events.Connect()
	if err != nil {
		logger.Warn("nats connection failed, events disabled", zap.Error(err))
	}
	if publisher != nil {
		deps.Events = publisher
		defer publisher.Close()
	}

	dispatcher := service.NewOrderStatusDispatcher(
		service.NewCaptureWorkflow(deps),
		service.NewCancelWorkflow(deps),
		locker,
		logger.Named("dispatcher"))
	dispatcher.SetLockTTL(config.ConfigDuration("ORDER_LOCK_TTL", service.DefaultLockTTL))

	authScheduler := scheduler.NewAuthorizationScheduler(
		transactions,
		noticeQueue,
		service.NewEmailService(),
		service.NewSFTPService(logger.Named("sftp")),
		logger.Named("scheduler"))
	if err := authScheduler.Start(); err != nil {
		logger.Error("authorization scheduler not started", zap.Error(err))
	} else {
		defer authScheduler.Stop()
	}

	middleware.PrometheusInit()

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		StrictRouting: true,
		ServerHeader:  "Fiber",
		AppName:       "payexsync",
	})

	router.SetupRoutes(app, &handler.Handler{
		Lookup:       service.NewAddressLookupWorkflow(deps.Gateways, logger.Named("lookup")),
		Dispatcher:   dispatcher,
		Transactions: transactions,
		Notices:      notices,
		Users:        users,
		Logger:       logger.Named("http"),
	})

	go func() {
		addr := config.Config("APP_ADDR", ":8080")
		logger.Info("starting http server", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
	<-noticeDone
	logger.Info("server stopped gracefully")
}
