package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/coreos/go-systemd/v22/daemon"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.Debug("Homework status bot starting")

	if !cfg.CheckTokens(mainLogger) {
		return
	}

	chatID, err := cfg.ChatID()
	if err != nil {
		mainLogger.WithError(err).Fatal("Invalid destination chat")
	}
	interval, err := scheduler.Parse(cfg.PollSchedule)
	if err != nil {
		mainLogger.WithError(err).Fatal("Invalid poll schedule")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional journal of delivered messages
	var journal notification.Journal = notification.NopJournal{}
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			mainLogger.WithError(err).Fatal("Could not connect to database")
		}
		defer db.Close()
		repo := idb.NewPostgresJournalRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			mainLogger.WithError(err).Fatal("Could not prepare notification journal")
		}
		journal = repo
		mainLogger.Debug("Notification journal enabled")
	}

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.HTTPTimeout)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}
	mainLogger.Debug("Telegram bot created, the token is checked on the first send")

	notifier := app.NewNotifier(
		telegram.NewTelebotAdapter(bot),
		chatID,
		cfg.SendRateInterval,
		journal,
		logger.Component("notifier"),
	)
	apiClient := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.HTTPTimeout, logger.Component("practicum"))

	// The status table and cursor are memory-only; a restart reports every homework again.
	cursor := time.Now().Add(-cfg.LookbackPeriod).Unix()
	poller := app.NewPoller(apiClient, notifier, interval, homework.NewStatusTable(), cursor, logger.Component("poller"))

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		mainLogger.WithError(err).Warn("Could not notify systemd about readiness")
	}
	mainLogger.WithField("schedule", interval.String()).Info("Application setup complete, polling homework statuses")

	err = poller.Run(ctx)
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	if err != nil && !errors.Is(err, context.Canceled) {
		mainLogger.WithError(err).Error("Polling loop exited")
		os.Exit(1)
	}
	mainLogger.Info("Application shut down gracefully.")
}
