package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultNotifySchedule, cfg.Notify.Schedule)
	assert.Equal(t, DefaultNotifyLogCap, cfg.Notify.LogCap)
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.False(t, cfg.Alerts.Telegram.Enabled)
	assert.False(t, cfg.Alerts.Slack.Enabled)
	assert.NotEmpty(t, cfg.Store.Path)
	assert.NotEmpty(t, cfg.API.TokenPath)
}

func TestDurationOrDefault(t *testing.T) {
	d, err := DurationOrDefault("", "30s")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	d, err = DurationOrDefault("5m", "30s")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, d)

	_, err = DurationOrDefault("nonsense", "30s")
	assert.Error(t, err)

	_, err = DurationOrDefault("", "")
	assert.Error(t, err)
}
