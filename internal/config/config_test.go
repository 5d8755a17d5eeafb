package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoad_FileValues(t *testing.T) {
	dir := writeConfig(t, `
app:
  env: development
port: "9090"
features:
  auth_required: true
  extended_analytics: false
history:
  cap: 1234
auth:
  signing_key: secret
  token_ttl: 2h
status:
  log_interval: 10m
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 1234, cfg.History.Cap)
	assert.Equal(t, basicRecentLimit, cfg.History.RecentLimit)
	assert.Equal(t, basicPeakHours, cfg.History.PeakHours)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.Status.LogInterval)
	assert.Equal(t, 7, cfg.History.CivilOffsetHours)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PARKING_AUTH_SIGNING_KEY", "from-env")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "from-env", cfg.Auth.SigningKey)
	assert.Equal(t, extendedHistoryCap, cfg.History.Cap)
	assert.Equal(t, extendedRecentLim, cfg.History.RecentLimit)
	assert.Equal(t, extendedPeakHours, cfg.History.PeakHours)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 6, cfg.Auth.MinPasswordLen)
}

func TestLoad_RequiresSigningKeyWhenAuthEnabled(t *testing.T) {
	dir := writeConfig(t, "features:\n  auth_required: true\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing_key")
}

func TestLoad_AuthDisabledNeedsNoKey(t *testing.T) {
	dir := writeConfig(t, "features:\n  auth_required: false\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, cfg.Features.AuthRequired)
}

func TestFromViper_RejectsOffsetOutOfRange(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("features.auth_required", false)
	v.Set("history.civil_offset_hours", 20)

	_, err := fromViper(v)
	require.Error(t, err)
}
