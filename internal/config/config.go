package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/assurly/assurly/internal/types"
)

type Configuration struct {
	Deployment   DeploymentConfig   `validate:"required"`
	Server       ServerConfig       `validate:"required"`
	Logging      LoggingConfig      `validate:"required"`
	Postgres     PostgresConfig     `validate:"required"`
	Document     DocumentConfig     `validate:"required"`
	S3           S3Config           ``
	Notification NotificationConfig `validate:"required"`
	Audit        AuditConfig        `validate:"required"`
	Payment      PaymentConfig      `validate:"required"`
	Sweep        SweepConfig        `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

// DocumentConfig holds renderer settings for legal document generation
type DocumentConfig struct {
	TypstBinary string
	TemplateDir string
	FontDir     string
	OutputDir   string
}

type S3Config struct {
	Enabled bool
	Region  string
	// Bucket for rendered policy documents
	DocumentBucket    string
	DocumentKeyPrefix string
	// Bucket for claim attachments uploaded by policy holders
	AttachmentBucket    string
	AttachmentKeyPrefix string
}

type NotificationConfig struct {
	Topic string `validate:"required"`
}

type AuditConfig struct {
	Topic string `validate:"required"`
}

// PaymentConfig drives the payment simulator that stands in for a
// real payment provider.
type PaymentConfig struct {
	// SuccessRate in [0,1]; 1 means every payment succeeds
	SuccessRate float64 `validate:"gte=0,lte=1"`
}

type SweepConfig struct {
	// PreExpiryNoticeDays is the upper bound of the expiring-soon
	// window; the lower bound is PreExpiryNoticeDays-1.
	PreExpiryNoticeDays int `validate:"gt=0"`
	// StaleClaimDays is the inactivity threshold for flagging claims
	StaleClaimDays int `validate:"gt=0"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/assurly")

	v.SetEnvPrefix("ASSURLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "assurly")
	v.SetDefault("postgres.dbname", "assurly")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.maxconns", 10)
	v.SetDefault("document.typstbinary", "typst")
	v.SetDefault("document.templatedir", "assets/templates")
	v.SetDefault("document.fontdir", "assets/fonts")
	v.SetDefault("document.outputdir", "/tmp/assurly-docs")
	v.SetDefault("notification.topic", "notifications")
	v.SetDefault("audit.topic", "audit")
	v.SetDefault("payment.successrate", 0.9)
	v.SetDefault("sweep.preexpirynoticedays", 30)
	v.SetDefault("sweep.staleclaimdays", 30)
}

func (c *Configuration) Validate() error {
	if !c.Logging.Level.Validate() {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	return validator.New().Struct(c)
}

// DSN returns the postgres connection string
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
