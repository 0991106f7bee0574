// Package config loads the bot configuration: a YAML file, then .env, then
// environment overrides.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultGroupName     = "Cheeky Softwear Club Chat"
	DefaultListenAddr    = ":8080"
	DefaultPurgeHour     = 4
	DefaultPurgeTimezone = "Asia/Singapore"
	DefaultProbeTimeout  = 15 * time.Second

	// GroupMessagesPerMinute is Telegram's limit on bot messages into one
	// group. Every forward counts against it.
	GroupMessagesPerMinute = 20
	// DefaultRatePerSecond is shared by the forward and the delete of each
	// existence check, which gives 18 forwards per minute.
	DefaultRatePerSecond = 0.6
)

// Configuration is the whole bot configuration.
type Configuration struct {
	BotToken      string `yaml:"bot_token" validate:"required"`
	WebhookDomain string `yaml:"webhook_domain"`
	WebhookSecret string `yaml:"webhook_secret"`
	ListenAddr    string `yaml:"listen_addr" validate:"required"`

	Group    GroupConfig    `yaml:"group"`
	Database DatabaseConfig `yaml:"database"`
	Purge    PurgeConfig    `yaml:"purge"`
	Probe    ProbeConfig    `yaml:"probe"`
	Telegram TelegramConfig `yaml:"telegram"`
	Log      LogConfig      `yaml:"log"`
}

// GroupConfig identifies the monitored discussion group.
type GroupConfig struct {
	Name string `yaml:"name" validate:"required"`
	// ID is used for probing when /deleted is sent from outside the group.
	ID int64 `yaml:"id"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"oneof=pgx sqlite3"`
	DSN    string `yaml:"dsn" validate:"required"`
}

// PurgeConfig schedules the daily wipe. Cron wins over Hour when both are set.
type PurgeConfig struct {
	Hour     int    `yaml:"hour" validate:"min=0,max=23"`
	Timezone string `yaml:"timezone" validate:"required"`
	Cron     string `yaml:"cron"`
}

type ProbeConfig struct {
	Concurrency int           `yaml:"concurrency" validate:"min=1,max=32"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	Strict      bool          `yaml:"strict"`
}

type TelegramConfig struct {
	APIURL        string  `yaml:"api_url" validate:"omitempty,url"`
	RatePerSecond float64 `yaml:"rate_per_second" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns a configuration with every optional key filled in.
func Default() *Configuration {
	return &Configuration{
		ListenAddr: DefaultListenAddr,
		Group: GroupConfig{
			Name: DefaultGroupName,
		},
		Database: DatabaseConfig{
			Driver: "pgx",
		},
		Purge: PurgeConfig{
			Hour:     DefaultPurgeHour,
			Timezone: DefaultPurgeTimezone,
		},
		Probe: ProbeConfig{
			Concurrency: 1,
			Timeout:     DefaultProbeTimeout,
		},
		Telegram: TelegramConfig{
			RatePerSecond: DefaultRatePerSecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ForwardsPerMinute is how many existence checks the Bot API rate lets
// through per minute. Each check spends one call on the forward and one on
// deleting the copy. Zero means unlimited.
func (c *Configuration) ForwardsPerMinute() float64 {
	return c.Telegram.RatePerSecond * 60 / 2
}

// PurgeCron is the effective purge schedule.
func (c *Configuration) PurgeCron() string {
	if c.Purge.Cron != "" {
		return c.Purge.Cron
	}
	return fmt.Sprintf("0 %d * * *", c.Purge.Hour)
}

// PurgeLocation is the timezone the purge schedule is evaluated in.
func (c *Configuration) PurgeLocation() *time.Location {
	loc, err := time.LoadLocation(c.Purge.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WebhookURL is the address Telegram posts updates to. Empty without a webhook domain.
func (c *Configuration) WebhookURL() string {
	if c.WebhookDomain == "" {
		return ""
	}
	base := c.WebhookDomain
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return strings.TrimSuffix(base, "/") + "/webhook/" + url.PathEscape(c.BotToken)
}
