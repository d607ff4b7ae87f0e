package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dawsen1208/shelfd/internal/config"
	"github.com/dawsen1208/shelfd/internal/narrate"
	"github.com/dawsen1208/shelfd/internal/store"
	"github.com/dawsen1208/shelfd/internal/syncer"

	"github.com/spf13/cobra"
)

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Speak interaction labels read from stdin",
	Long: `narrate treats each stdin line as one interaction signal and speaks it
through the configured speech command after the debounce window. Narration
follows the persisted accessibility preference live: flipping tts off in
another instance cancels any pending or in-flight utterance here.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNarrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(narrateCmd)
}

func runNarrate(parent context.Context) error {
	st, err := openState(cfg)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}

	debounce, err := config.DurationOrDefault(cfg.Narrate.Debounce, config.DefaultNarrateDebounce)
	if err != nil {
		return err
	}

	speaker := narrate.NewCommandSpeaker(cfg.Narrate.SpeechCommand)
	engine := narrate.NewEngine(speaker, debounce)

	syncEnabled := func() {
		if st.prefs.Accessibility().TTSEnabled {
			engine.Enable()
		} else {
			engine.Disable()
		}
	}
	syncEnabled()
	if !engine.Enabled() {
		fmt.Fprintln(os.Stderr, "narration is off (enable with: shelfd prefs tts on)")
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	watcher, err := store.NewWatcher(st.basePath)
	if err != nil {
		return fmt.Errorf("watch state dir: %w", err)
	}
	watcher.Start(ctx)

	syn := syncer.New(watcher.Changes(), st.prefs, cancel)
	syn.OnPreferencesReload(syncEnabled)
	go syn.Run(ctx)

	slog.Info("Narrator reading stdin", "debounce", debounce, "command", cfg.Narrate.SpeechCommand)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		engine.Interact(&narrate.Node{Label: scanner.Text()})
	}

	// Let a pending utterance clear its debounce window before exiting.
	select {
	case <-time.After(debounce + 50*time.Millisecond):
	case <-ctx.Done():
	}
	return scanner.Err()
}
