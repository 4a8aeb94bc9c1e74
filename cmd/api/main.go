package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/config"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/notification"
	appHTTP "github.com/cmlabs-hris/hris-calendar-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-calendar-go/internal/repository/postgresql"
	calendarService "github.com/cmlabs-hris/hris-calendar-go/internal/service/calendar"
	leaveService "github.com/cmlabs-hris/hris-calendar-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/hris-calendar-go/internal/service/notification"
	reminderService "github.com/cmlabs-hris/hris-calendar-go/internal/service/reminder"
	timeRecordService "github.com/cmlabs-hris/hris-calendar-go/internal/service/timerecord"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	loc := cfg.Location()
	tx := postgresql.NewTransactor(db)

	userRepo := postgresql.NewUserRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	timeRecordRepo := postgresql.NewTimeRecordRepository(db)
	reminderRepo := postgresql.NewReminderRepository(db)
	reminderSettingsRepo := postgresql.NewReminderSettingsRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	translator := i18n.NewTranslator(cfg.Calendar.Locale)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	calendarSvc := calendarService.NewCalendarService(
		leaveRequestRepo,
		timeRecordRepo,
		reminderRepo,
		userRepo,
		teamRepo,
		translator,
		calendarService.Options{
			DefaultVacationDays: cfg.Calendar.DefaultVacationDays,
			ClipVacationToYear:  cfg.Calendar.ClipVacationToYear,
			MaxCellEntries:      cfg.Calendar.MaxCellEntries,
			CacheEnabled:        cfg.Calendar.CacheEnabled,
			CacheSize:           cfg.Calendar.CacheSize,
			Colors:              cfg.Calendar.Colors,
			Location:            loc,
		},
	)

	hub := sse.NewHub[notification.NotificationResponse](cfg.Notification.SSEBuffer)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
		Location:      loc,
	})
	reminderSvc := reminderService.NewReminderService(
		tx,
		reminderRepo,
		reminderSettingsRepo,
		leaveRequestRepo,
		userRepo,
		notificationSvc,
		calendarSvc,
		translator,
		loc,
	)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRequestRepo, reminderSvc, calendarSvc)
	timeRecordSvc := timeRecordService.NewTimeRecordService(timeRecordRepo, calendarSvc, loc)

	scheduler := cron.NewScheduler(loc)
	if err := cron.NewReminderJobs(reminderSvc).RegisterJobs(scheduler, cfg.Cron.ReminderSpec); err != nil {
		return fmt.Errorf("error registering cron jobs: %w", err)
	}
	scheduler.Start()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       level,
		},
		JWTService,
		appHTTP.Handlers{
			Calendar:     appHTTP.NewCalendarHandler(calendarSvc, loc),
			Leave:        appHTTP.NewLeaveHandler(leaveSvc),
			TimeRecord:   appHTTP.NewTimeRecordHandler(timeRecordSvc),
			Reminder:     appHTTP.NewReminderHandler(reminderSvc),
			Notification: appHTTP.NewNotificationHandler(notificationSvc, JWTService),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "env", cfg.App.Env, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	// Open event streams never finish on their own; closing the hub ends them.
	slog.Info("Closing event streams", "open_streams", hub.TotalSubscribers())
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	scheduler.Stop()
	notificationSvc.Stop()
	slog.Info("Server stopped")
	return nil
}
