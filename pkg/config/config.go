package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "armory"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

type Config struct {
	App    AppConfig
	Data   DataConfig
	Notify NotifyConfig
	Report ReportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ARMORY_APP_ENV" default:"dev"`
	Port         string `envconfig:"ARMORY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ARMORY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ARMORY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DataConfig struct {
	// LicenseFile is the well-known default dataset loaded at startup and
	// on POST /records/reload.
	LicenseFile string `envconfig:"ARMORY_LICENSE_FILE" default:"data/bhopal_weapon_licenses.csv"`

	// StrictDuplicateKeys rejects status updates that would touch more than
	// one row with the same License_No instead of updating all matches.
	StrictDuplicateKeys bool `envconfig:"ARMORY_STRICT_DUPLICATE_KEYS" default:"false"`

	MaxUploadMB int `envconfig:"ARMORY_MAX_UPLOAD_MB" default:"16"`
}

type NotifyConfig struct {
	Contact      string `envconfig:"ARMORY_NOTIFY_CONTACT" default:"0755-XXX-XXXX"`
	DeadlineDays int    `envconfig:"ARMORY_NOTIFY_DEADLINE_DAYS" default:"7"`
	ReturnDays   int    `envconfig:"ARMORY_NOTIFY_RETURN_DAYS" default:"30"`
	RecentLimit  int    `envconfig:"ARMORY_NOTIFY_RECENT_LIMIT" default:"10"`
}

type ReportConfig struct {
	ExpiryWarningDays    int `envconfig:"ARMORY_REPORT_EXPIRY_WARNING_DAYS" default:"30"`
	ConcentrationPercent int `envconfig:"ARMORY_REPORT_CONCENTRATION_PERCENT" default:"15"`
}
