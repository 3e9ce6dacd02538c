package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menubot/internal/config"
	"menubot/internal/handler"
	"menubot/internal/handoff"
	"menubot/internal/menu"
	"menubot/internal/metrics"
	"menubot/internal/middleware"
	"menubot/internal/repository/postgres"
	"menubot/internal/service"
	"menubot/internal/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	telemw "gopkg.in/telebot.v3/middleware"
)

const cleanupInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		return serve(logger, migrationsSource(cmd))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(logger *zap.Logger, migrations string) error {
	logger.Info("Starting menubot")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("Configuration loaded successfully",
		zap.Int64("robot_id", cfg.RobotID),
		zap.String("handoff_backend", cfg.Handoff.Backend),
	)

	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("Database connection established")

	if err := runMigrations(db, migrations, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Telegram handler error", zap.Error(err))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	if err := postgres.NewRobotRepo(db).Ensure(ctx, cfg.RobotID, bot.Me.Username); err != nil {
		return fmt.Errorf("failed to ensure robot: %w", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	menuRepo := postgres.NewMenuRepo(db)
	questionRepo := postgres.NewQuestionRepo(db)
	attendanceRepo := postgres.NewAttendanceRepo(db)

	queue, closeQueue, err := newHandoffQueue(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeQueue()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(reg)

	sender := handler.NewTelegramSender(bot)
	registry := session.NewRegistry()

	dispatcher := service.NewDispatcher(service.Dependencies{
		RobotID:      cfg.RobotID,
		Users:        userRepo,
		Attendances:  attendanceRepo,
		Navigator:    menu.NewNavigator(menuRepo),
		Registration: service.NewRegistrationService(questionRepo, registry, sender, logger),
		Registry:     registry,
		Locker:       session.NewLocker(),
		Queue:        queue,
		Handoff:      handoff.NewBridge(attendanceRepo, sender, logger),
		Sender:       sender,
		Recorder:     recorder,
		Logger:       logger,
	})

	bot.Use(
		telemw.Recover(),
		middleware.PrivateOnly(logger),
		middleware.LoggingMiddleware(recorder, logger),
	)

	h := handler.NewHandler(bot, dispatcher, cfg.TrustProfileName, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metrics.NewRouter(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Metrics server listening", zap.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	if sweeper, ok := queue.(service.Sweeper); ok {
		go runCleanupJob(ctx, service.NewJanitorService(sweeper, logger), logger)
	}

	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Metrics server shutdown failed", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
	return nil
}

// newHandoffQueue builds the configured handoff debounce backend
func newHandoffQueue(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.HandoffQueue, func(), error) {
	if cfg.Handoff.Backend != config.HandoffBackendRedis {
		return handoff.NewMemoryQueue(cfg.Handoff.TTL), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connection established", zap.String("addr", cfg.Redis.Addr))

	queue := handoff.NewRedisQueue(client, cfg.Handoff.TTL)
	return queue, func() {
		if err := queue.Close(); err != nil {
			logger.Warn("Failed to close redis", zap.Error(err))
		}
	}, nil
}

// runCleanupJob periodically drops expired handoff markers
func runCleanupJob(ctx context.Context, janitor *service.JanitorService, logger *zap.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			janitor.Cleanup()
		}
	}
}
