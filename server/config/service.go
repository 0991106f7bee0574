package config

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/adhocore/gronx"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var (
	ErrRequired = errors.New("missing required value")
	ErrInvalid  = errors.New("invalid value")
)

//go:generate mockgen -destination=mocks/mock_config.go -package=mock_config github.com/ericzzh/telegram-deletewatch/server/config Service

// Service gives components read access to the loaded configuration.
type Service interface {
	GetConfiguration() *Configuration
}

// ServiceImpl holds the configuration loaded at startup.
type ServiceImpl struct {
	configurationLock sync.RWMutex
	configuration     *Configuration
}

// envOverrides lists the environment variables that win over the file.
// Unset variables leave the pointer nil.
type envOverrides struct {
	BotToken      *string        `envconfig:"BOT_TOKEN"`
	WebhookDomain *string        `envconfig:"WEBHOOK_DOMAIN"`
	WebhookSecret *string        `envconfig:"WEBHOOK_SECRET"`
	Port          *string        `envconfig:"PORT"`
	GroupName     *string        `envconfig:"GROUP_NAME"`
	GroupID       *int64         `envconfig:"GROUP_ID"`
	DBDriver      *string        `envconfig:"DB_DRIVER"`
	DBURL         *string        `envconfig:"DB_URL"`
	PurgeHour     *int           `envconfig:"PURGE_HOUR"`
	PurgeTimezone *string        `envconfig:"PURGE_TIMEZONE"`
	PurgeCron     *string        `envconfig:"PURGE_CRON"`
	ProbeStrict   *bool          `envconfig:"PROBE_STRICT"`
	ProbeTimeout  *time.Duration `envconfig:"PROBE_TIMEOUT"`
	LogLevel      *string        `envconfig:"LOG_LEVEL"`
}

// NewConfigService loads path (skipped when empty), then the given .env
// files, then the environment, and validates the result.
func NewConfigService(path string, envFiles ...string) (*ServiceImpl, error) {
	cfg, err := Load(path, envFiles...)
	if err != nil {
		return nil, err
	}
	return &ServiceImpl{configuration: cfg}, nil
}

// GetConfiguration retrieves the active configuration under lock.
//
// Callers must not modify the returned value.
func (c *ServiceImpl) GetConfiguration() *Configuration {
	c.configurationLock.RLock()
	defer c.configurationLock.RUnlock()

	if c.configuration == nil {
		return Default()
	}
	return c.configuration
}

// Load builds a validated Configuration.
func Load(path string, envFiles ...string) (*Configuration, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := LoadFromYaml(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	}

	for _, f := range envFiles {
		// a missing .env is normal outside development.
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(err, "failed to load env file %s", f)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromYaml decodes data over cfg. Unknown keys are an error.
func LoadFromYaml(data []byte, cfg *Configuration) error {
	return yaml.UnmarshalStrict(data, cfg)
}

func applyEnv(cfg *Configuration) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return errors.Wrap(err, "failed to read environment")
	}

	setString(&cfg.BotToken, env.BotToken)
	setString(&cfg.WebhookDomain, env.WebhookDomain)
	setString(&cfg.WebhookSecret, env.WebhookSecret)
	setString(&cfg.Group.Name, env.GroupName)
	setString(&cfg.Database.Driver, env.DBDriver)
	setString(&cfg.Database.DSN, env.DBURL)
	setString(&cfg.Purge.Timezone, env.PurgeTimezone)
	setString(&cfg.Purge.Cron, env.PurgeCron)
	setString(&cfg.Log.Level, env.LogLevel)

	if env.Port != nil {
		cfg.ListenAddr = ":" + strings.TrimPrefix(*env.Port, ":")
	}
	if env.GroupID != nil {
		cfg.Group.ID = *env.GroupID
	}
	if env.PurgeHour != nil {
		cfg.Purge.Hour = *env.PurgeHour
	}
	if env.ProbeStrict != nil {
		cfg.Probe.Strict = *env.ProbeStrict
	}
	if env.ProbeTimeout != nil {
		cfg.Probe.Timeout = *env.ProbeTimeout
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks field constraints, the purge schedule and the timezone.
func Validate(cfg *Configuration) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "required" {
				return errors.Wrapf(ErrRequired, "field:%s", fe.Namespace())
			}
			return errors.Wrapf(ErrInvalid, "field:%s rule:%s value:%v", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return errors.Wrap(err, "failed to validate configuration")
	}

	if !gronx.New().IsValid(cfg.PurgeCron()) {
		return errors.Wrapf(ErrInvalid, "field:purge.cron value:%q", cfg.PurgeCron())
	}

	if _, err := time.LoadLocation(cfg.Purge.Timezone); err != nil {
		return errors.Wrapf(ErrInvalid, "field:purge.timezone value:%q", cfg.Purge.Timezone)
	}
	return nil
}
