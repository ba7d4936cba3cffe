package main

import (
	"context"
	"fmt"
	"liftotron/auth"
	"liftotron/domain"
	"liftotron/internal"
	"liftotron/repositories"
	"liftotron/runtime"
	"liftotron/runtime/workers"
	"liftotron/services"
	"liftotron/transport/telegram"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Liftotron terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal arrives.
// Returning instead of exiting lets the deferred cleanups (database close) run.
func run() (int, error) {
	// 1. Configuration & Logger
	// Schedules are validated here, before any state exists.
	// A missing .env file is fine, the process environment is used as is.
	_ = godotenv.Load()
	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return exitConfig, err
	}
	settings, err := internal.LoadConfig(es)
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(settings.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(settings, log, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Telegram
	api, err := tgbotapi.NewBotAPI(settings.BotToken)
	if err != nil {
		return exitRuntime, fmt.Errorf("telegram authentication failed: %w", err)
	}
	api.Debug = log.Enabled(ctx, slog.LevelDebug)
	log.Info("Authorized on Telegram", "bot", api.Self.UserName)

	// 4. Domain & services
	tracker := domain.NewTracker(settings.StaticUserIDs)
	sender := telegram.NewSender(api, log, settings.SendRatePerSecond, settings.SendBurst)
	journal := repositories.NewAttendanceRepository(db, log)
	bot := services.NewBot(
		log,
		tracker,
		auth.NewAuthorizer(settings.AllowedChats, settings.AllowedUsers),
		sender,
		sender,
		journal,
		services.BotConfig{
			Username:           api.Self.UserName,
			GroupChatID:        settings.GroupChatID,
			Location:           settings.Location,
			SyncAdministrators: settings.SyncAdministrators,
		},
	)

	// 5. Supervision
	updates := telegram.NewUpdatesWorker(api, bot, log)
	defer updates.Stop()
	scheduler := runtime.NewScheduler(log, settings.Location, settings.JobTimeout, Jobs(settings.Config, bot)...)
	sup := workers.NewSupervisor(log, settings.RestartInterval).
		Add(updates).
		Add(scheduler).
		Add(workers.NewHeartbeatWorker(log, tracker, settings.HeartbeatInterval))
	if settings.MetricsAddr != "" {
		sup.Add(workers.NewHTTPServerWorker(log, settings.MetricsAddr, journal))
	}

	log.Info("Liftotron started",
		"chat_id", settings.GroupChatID,
		"static_users", len(settings.StaticUserIDs),
		"timezone", settings.Location.String(),
	)
	sup.Run(ctx)
	log.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(settings internal.Settings, log *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(settings.BadgerFilepath)
	if log.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
