package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ericzzh/telegram-deletewatch/server/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
bot_token: "123:abc"
database:
  dsn: "postgres://localhost/deletewatch"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultGroupName, cfg.Group.Name)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, 4, cfg.Purge.Hour)
	assert.Equal(t, "Asia/Singapore", cfg.Purge.Timezone)
	assert.Equal(t, "0 4 * * *", cfg.PurgeCron())
	assert.Equal(t, 1, cfg.Probe.Concurrency)
	assert.Equal(t, 15*time.Second, cfg.Probe.Timeout)
	assert.False(t, cfg.Probe.Strict)
	assert.Equal(t, "Asia/Singapore", cfg.PurgeLocation().String())
	assert.Equal(t, config.DefaultRatePerSecond, cfg.Telegram.RatePerSecond)
}

func TestDefaultRateStaysUnderGroupLimit(t *testing.T) {
	cfg := config.Default()

	assert.Greater(t, cfg.Telegram.RatePerSecond, 0.0)
	assert.InDelta(t, 18, cfg.ForwardsPerMinute(), 1e-9)
	assert.Less(t, cfg.ForwardsPerMinute(), float64(config.GroupMessagesPerMinute))
}

func TestLoadYaml(t *testing.T) {
	path := writeFile(t, "config.yaml", `
bot_token: "123:abc"
webhook_domain: "bot.example.com"
group:
  name: "Other Group"
  id: -100200
database:
  driver: sqlite3
  dsn: "file:test.db"
purge:
  cron: "30 3 * * 1"
probe:
  concurrency: 4
  timeout: 2s
  strict: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Other Group", cfg.Group.Name)
	assert.Equal(t, int64(-100200), cfg.Group.ID)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "30 3 * * 1", cfg.PurgeCron())
	assert.Equal(t, 4, cfg.Probe.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.Probe.Timeout)
	assert.True(t, cfg.Probe.Strict)
	assert.Equal(t, "https://bot.example.com/webhook/123:abc", cfg.WebhookURL())
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeFile(t, "config.yaml", `
bot_token: "123:abc"
database:
  dsn: "x"
purge_hour: 4
`)

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", `
bot_token: "from-file"
database:
  dsn: "from-file"
`)

	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("DB_URL", "postgres://env/db")
	t.Setenv("PORT", "9000")
	t.Setenv("GROUP_NAME", "Env Group")
	t.Setenv("PURGE_HOUR", "6")
	t.Setenv("PROBE_STRICT", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.BotToken)
	assert.Equal(t, "postgres://env/db", cfg.Database.DSN)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "Env Group", cfg.Group.Name)
	assert.Equal(t, "0 6 * * *", cfg.PurgeCron())
	assert.True(t, cfg.Probe.Strict)
}

func TestEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "BOT_TOKEN=dotenv-token\nDB_URL=file:dotenv.db\nDB_DRIVER=sqlite3\n")
	for _, key := range []string{"BOT_TOKEN", "DB_URL", "DB_DRIVER"} {
		// Setenv restores the original state, Unsetenv lets godotenv fill it.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := config.Load("", envFile, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "dotenv-token", cfg.BotToken)
	assert.Equal(t, "file:dotenv.db", cfg.Database.DSN)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Configuration {
		cfg := config.Default()
		cfg.BotToken = "123:abc"
		cfg.Database.DSN = "postgres://localhost/db"
		return cfg
	}

	require.NoError(t, config.Validate(valid()))

	tests := []struct {
		name   string
		modify func(*config.Configuration)
		target error
	}{
		{"missing token", func(c *config.Configuration) { c.BotToken = "" }, config.ErrRequired},
		{"missing dsn", func(c *config.Configuration) { c.Database.DSN = "" }, config.ErrRequired},
		{"bad driver", func(c *config.Configuration) { c.Database.Driver = "mysql" }, config.ErrInvalid},
		{"bad hour", func(c *config.Configuration) { c.Purge.Hour = 24 }, config.ErrInvalid},
		{"bad cron", func(c *config.Configuration) { c.Purge.Cron = "every day" }, config.ErrInvalid},
		{"bad timezone", func(c *config.Configuration) { c.Purge.Timezone = "Mars/Olympus" }, config.ErrInvalid},
		{"zero concurrency", func(c *config.Configuration) { c.Probe.Concurrency = 0 }, config.ErrInvalid},
		{"zero timeout", func(c *config.Configuration) { c.Probe.Timeout = 0 }, config.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := config.Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), err.Error())
		})
	}
}

func TestServiceImpl(t *testing.T) {
	t.Setenv("BOT_TOKEN", "svc-token")
	t.Setenv("DB_URL", "postgres://svc/db")

	svc, err := config.NewConfigService("")
	require.NoError(t, err)
	assert.Equal(t, "svc-token", svc.GetConfiguration().BotToken)

	var s config.Service = svc
	assert.Equal(t, config.DefaultGroupName, s.GetConfiguration().Group.Name)
}
