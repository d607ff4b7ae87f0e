package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	LogLevel string        `koanf:"log_level"`
	API      APIConfig     `koanf:"api"`
	Notify   NotifyConfig  `koanf:"notify"`
	Store    StoreConfig   `koanf:"store"`
	Alerts   AlertsConfig  `koanf:"alerts"`
	Narrate  NarrateConfig `koanf:"narrate"`
}

type APIConfig struct {
	BaseURL        string `koanf:"base_url"`
	TokenPath      string `koanf:"token_path"`
	RequestTimeout string `koanf:"request_timeout"`
}

type NotifyConfig struct {
	// Schedule accepts a cron spec or "@every 30s".
	Schedule string `koanf:"schedule"`
	LogCap   int    `koanf:"log_cap"`
}

type StoreConfig struct {
	Path         string `koanf:"path"`
	LockTimeout  string `koanf:"lock_timeout"`
	LockRetry    string `koanf:"lock_retry"`
	LockMaxRetry int    `koanf:"lock_max_retry"`
}

type AlertsConfig struct {
	Telegram TelegramConfig `koanf:"telegram"`
	Slack    SlackConfig    `koanf:"slack"`
}

type TelegramConfig struct {
	Enabled  bool   `koanf:"enabled"`
	BotToken string `koanf:"bot_token"`
	ChatID   int64  `koanf:"chat_id"`
}

type SlackConfig struct {
	Enabled  bool   `koanf:"enabled"`
	BotToken string `koanf:"bot_token"`
	Channel  string `koanf:"channel"`
}

type NarrateConfig struct {
	Debounce      string `koanf:"debounce"`
	SpeechCommand string `koanf:"speech_command"`
}

const (
	DefaultLogLevel          = "info"
	DefaultAPIBaseURL        = "http://localhost:4000/api"
	DefaultAPIRequestTimeout = "10s"
	DefaultNotifySchedule    = "@every 30s"
	DefaultNotifyLogCap      = 30
	DefaultStoreLockTimeout  = "5s"
	DefaultStoreLockRetry    = "50ms"
	DefaultStoreLockMaxRetry = 100
	DefaultNarrateDebounce   = "300ms"
	DefaultSpeechCommand     = "espeak"
)

func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	// Hardcoded Defaults
	defaults := map[string]interface{}{
		"log_level":               DefaultLogLevel,
		"api.base_url":            DefaultAPIBaseURL,
		"api.token_path":          filepath.Join(os.Getenv("HOME"), ".shelfd", "auth", "token"),
		"api.request_timeout":     DefaultAPIRequestTimeout,
		"notify.schedule":         DefaultNotifySchedule,
		"notify.log_cap":          DefaultNotifyLogCap,
		"store.path":              filepath.Join(os.Getenv("HOME"), ".shelfd", "state"),
		"store.lock_timeout":      DefaultStoreLockTimeout,
		"store.lock_retry":        DefaultStoreLockRetry,
		"store.lock_max_retry":    DefaultStoreLockMaxRetry,
		"alerts.telegram.enabled": false,
		"alerts.slack.enabled":    false,
		"narrate.debounce":        DefaultNarrateDebounce,
		"narrate.speech_command":  DefaultSpeechCommand,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	// Config file loading
	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			globalPath := filepath.Join(home, ".shelfd", "config.yaml")
			if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
				slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
			}
		}
	}

	// Environment Variables
	k.Load(env.Provider("SHELFD_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SHELFD_")), "_", ".", -1)
	}), nil)

	// CLI Flags
	if cmd != nil {
		k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if key := os.Getenv("SHELFD_TELEGRAM_BOT_TOKEN"); key != "" && cfg.Alerts.Telegram.BotToken == "" {
		cfg.Alerts.Telegram.BotToken = key
	}
	if key := os.Getenv("SHELFD_SLACK_BOT_TOKEN"); key != "" && cfg.Alerts.Slack.BotToken == "" {
		cfg.Alerts.Slack.BotToken = key
	}

	return &cfg, nil
}
