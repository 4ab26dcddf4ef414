// Package main is the entrypoint for the combot CLI.
//
// combot posts a message to a Webex space and repeats it to every member as a
// 1:1 message. By default it only lists who would be messaged; set
// COMBOT_SEND=true to send.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/oklog/ulid/v2"

	"github.com/combot/combot/internal/config"
	"github.com/combot/combot/internal/metrics"
	"github.com/combot/combot/internal/model"
	"github.com/combot/combot/internal/service"
	"github.com/combot/combot/internal/webex"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg, os.Stderr).With("run_id", ulid.Make().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger, os.Stdin, os.Stdout)
	stop()

	if err != nil {
		logger.Error("combot failed", "error", sanitizeError(err, cfg.AccessToken))
		os.Exit(1)
	}
}

// run prompts for the space and message, then lists or messages the members.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) error {
	p := newPrompter(in, out)

	spaceName, err := p.Ask("Enter the name of team space: ")
	if err != nil {
		return fmt.Errorf("read team space: %w", err)
	}
	if spaceName == "" {
		return errors.New("team space name is required")
	}

	message, err := p.Ask("Enter message: ")
	if err != nil {
		return fmt.Errorf("read message: %w", err)
	}
	if !cfg.IsDryRun() && message == "" {
		return service.ErrEmptyMessage
	}

	recorder := metrics.NewInMemory()
	client, err := webex.New(webex.Config{
		BaseURL: cfg.BaseURL,
		Token:   cfg.AccessToken,
		Timeout: cfg.Timeout,
	}, logger, recorder)
	if err != nil {
		return err
	}

	room, err := resolveRoom(ctx, client, cfg.TeamName(), spaceName)
	if err != nil {
		return err
	}
	logger.Info("resolved room", "room_id", room.ID, "title", room.Title)

	notifier := service.NewNotifier(client, logger, recorder)
	defer logSummary(logger, recorder)

	if cfg.IsDryRun() {
		plan, err := notifier.Recipients(ctx, room.ID)
		if err != nil {
			return err
		}
		printRecipients(out, spaceName, plan)
		logger.Info("dry run, no messages sent", "room_id", room.ID, "recipients", len(plan.Emails))
		return nil
	}

	report, err := notifier.SendGroupMessage(ctx, room.ID, message)
	if err != nil {
		return err
	}
	printReport(out, report)

	if failed := report.Failed(); len(failed) > 0 {
		logger.Warn("some direct messages failed", "failed", len(failed), "delivered", len(report.Delivered()))
	}
	return nil
}

// resolveRoom finds the space by title, scoped to teamName when it is set.
func resolveRoom(ctx context.Context, client *webex.Client, teamName, title string) (*model.Room, error) {
	var teamID string
	if teamName != "" {
		team, err := client.FindTeam(ctx, teamName)
		if err != nil {
			return nil, fmt.Errorf("find team %q: %w", teamName, err)
		}
		teamID = team.ID
	}

	room, err := client.FindRoom(ctx, title, teamID)
	if err != nil {
		return nil, fmt.Errorf("find room %q: %w", title, err)
	}
	return room, nil
}

func logSummary(logger *slog.Logger, recorder *metrics.InMemoryRecorder) {
	snap := recorder.Snapshot()
	var requests uint64
	for _, n := range snap.APIRequests {
		requests += n
	}
	logger.Info("run complete",
		"api_requests", requests,
		"api_errors", snap.APIErrors,
		"group_sent", snap.GroupMessagesSent,
		"direct_sent", snap.DirectMessagesSent,
		"direct_failed", snap.DirectMessagesFailed,
	)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// sanitizeError keeps secrets out of logged error messages.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, secret, "[redacted]")
	}
	return msg
}
