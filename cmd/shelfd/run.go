package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dawsen1208/shelfd/internal/alert"
	"github.com/dawsen1208/shelfd/internal/config"
	"github.com/dawsen1208/shelfd/internal/fetch"
	"github.com/dawsen1208/shelfd/internal/poll"
	"github.com/dawsen1208/shelfd/internal/store"
	"github.com/dawsen1208/shelfd/internal/syncer"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the notification watcher daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(parent context.Context) error {
	st, err := openState(cfg)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}

	emitter := alert.NewEmitter(st.prefs)
	emitter.Register(alert.NewTerminalChannel(os.Stdout))

	if tg := cfg.Alerts.Telegram; tg.Enabled {
		ch, err := alert.NewTelegramChannel(tg.BotToken, tg.ChatID)
		if err != nil {
			slog.Warn("Telegram channel unavailable", "error", err)
		} else {
			emitter.Register(ch)
		}
	}
	if sl := cfg.Alerts.Slack; sl.Enabled {
		emitter.Register(alert.NewSlackChannel(sl.BotToken, sl.Channel))
	}

	st.engine.OnAlert(emitter.Emit)

	requestTimeout, err := config.DurationOrDefault(cfg.API.RequestTimeout, config.DefaultAPIRequestTimeout)
	if err != nil {
		return err
	}

	client := fetch.NewClient(cfg.API.BaseURL, requestTimeout)
	fetchers := []poll.Fetcher{
		fetch.NewStatusFetcher(client),
		fetch.NewReviewFetcher(client, func() int {
			return st.prefs.Notification().ReminderLeadDays
		}),
	}

	poller, err := poll.NewPoller(
		cfg.Notify.Schedule,
		fetchers,
		fetch.FileTokenSource{Path: cfg.API.TokenPath},
		st.engine,
		requestTimeout,
	)
	if err != nil {
		return err
	}

	ctx, cancel := watchSignals(parent, poller.Kick)
	defer cancel()

	watcher, err := store.NewWatcher(st.basePath)
	if err != nil {
		return fmt.Errorf("watch state dir: %w", err)
	}
	watcher.Start(ctx)

	syn := syncer.New(watcher.Changes(), st.prefs, func() {
		slog.Info("Logout observed, shutting down")
		cancel()
	})
	go syn.Run(ctx)

	if err := poller.Start(ctx); err != nil {
		return err
	}

	slog.Info("shelfd running", "state", st.basePath, "schedule", cfg.Notify.Schedule)
	<-ctx.Done()

	poller.Stop()
	return nil
}
