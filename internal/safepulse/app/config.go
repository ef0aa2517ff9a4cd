package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aussiebroadwan/safepulse/pkg/jwtx"
	"github.com/aussiebroadwan/safepulse/pkg/smsx"
)

// ConfigFileEnv names an optional YAML/TOML/JSON config file. Environment
// variables always win over values from the file.
const ConfigFileEnv = "SAFEPULSE_CONFIG"

type Config struct {
	Port                int           `mapstructure:"PORT"`
	Env                 string        `mapstructure:"ENV"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	LogFormat           string        `mapstructure:"LOG_FORMAT"`
	ShutdownGracePeriod time.Duration `mapstructure:"SHUTDOWN_GRACE_PERIOD"`

	// DatabaseURL is a postgres:// URL or a SQLite file path.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	SessionIssuer string        `mapstructure:"SESSION_ISSUER"`
	PepperFile    string        `mapstructure:"PEPPER_FILE"`

	SMSProvider      string        `mapstructure:"SMS_PROVIDER"`
	Fast2SMSAPIKey   string        `mapstructure:"FAST2SMS_API_KEY"`
	Fast2SMSEndpoint string        `mapstructure:"FAST2SMS_ENDPOINT"`
	TwilioAccountSID string        `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string        `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFrom       string        `mapstructure:"TWILIO_FROM_NUMBER"`
	SMSTimeout       time.Duration `mapstructure:"SMS_TIMEOUT"`
	SMSMaxParallel   int           `mapstructure:"SMS_MAX_PARALLEL"`
	SMSDefaultRegion string        `mapstructure:"SMS_DEFAULT_REGION"`
}

var defaults = map[string]any{
	"PORT":                  8080,
	"ENV":                   "production",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
	"SHUTDOWN_GRACE_PERIOD": 10 * time.Second,

	"DATABASE_URL":  "",
	"DATABASE_NAME": "safepulse",

	"SESSION_SECRET": "",
	"SESSION_TTL":    jwtx.DefaultSessionTTL,
	"SESSION_ISSUER": "safepulse",
	"PEPPER_FILE":    "./data/pepper.key",

	"SMS_PROVIDER":       smsx.ProviderAuto,
	"FAST2SMS_API_KEY":   "",
	"FAST2SMS_ENDPOINT":  "",
	"TWILIO_ACCOUNT_SID": "",
	"TWILIO_AUTH_TOKEN":  "",
	"TWILIO_FROM_NUMBER": "",
	"SMS_TIMEOUT":        10 * time.Second,
	"SMS_MAX_PARALLEL":   4,
	"SMS_DEFAULT_REGION": "IN",
}

// LoadConfig reads defaults, then the optional config file, then the
// environment, and validates the result.
func LoadConfig() (Config, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (Config, error) {
	// AutomaticEnv only resolves keys viper already knows about.
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("safepulse")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/safepulse/")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service must not start with.
// Missing SMS credentials are not an error; alerts fall back to the
// simulated notifier.
func (c Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if len(c.SessionSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if c.SMSTimeout <= 0 {
		errs = append(errs, errors.New("SMS_TIMEOUT must be positive"))
	}
	if c.SMSMaxParallel < 1 {
		errs = append(errs, errors.New("SMS_MAX_PARALLEL must be at least 1"))
	}

	switch strings.ToLower(c.SMSProvider) {
	case smsx.ProviderAuto, smsx.ProviderFast2SMS, smsx.ProviderTwilio, smsx.ProviderSimulated:
	default:
		errs = append(errs, fmt.Errorf("SMS_PROVIDER %q is not supported", c.SMSProvider))
	}

	return errors.Join(errs...)
}
