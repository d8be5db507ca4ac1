package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every setting the dispatcher needs. Values come from
// config.defaults.yaml (if present) overridden by APP_-prefixed
// environment variables.
type Config struct {
	ServerPort         int    `mapstructure:"SERVER_PORT"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	LogFormat          string `mapstructure:"LOG_FORMAT"`
	Prod               bool   `mapstructure:"PROD"`
	APIURL             string `mapstructure:"API_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// Optional dispatch-event feed; disabled when empty.
	NATSUrl string `mapstructure:"NATS_URL"`

	// Eureka registration block, required when Prod is true.
	EurekaServer       string `mapstructure:"EUREKA_SERVER"`
	EurekaAuthUser     string `mapstructure:"EUREKA_AUTH_USER"`
	EurekaAuthPassword string `mapstructure:"EUREKA_AUTH_PASSWORD"`
	EurekaContext      string `mapstructure:"EUREKA_CONTEXT"`
	InstanceID         string `mapstructure:"INSTANCE_ID"`
	InstancePort       int    `mapstructure:"INSTANCE_PORT"`
}

// Load reads configuration for the dispatcher. A missing defaults file is
// fine; environment variables alone can configure the service.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP")

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PROD", false)
	v.SetDefault("API_URL", "")
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 10)
	v.SetDefault("NATS_URL", "")
	v.SetDefault("EUREKA_SERVER", "")
	v.SetDefault("EUREKA_AUTH_USER", "")
	v.SetDefault("EUREKA_AUTH_PASSWORD", "")
	v.SetDefault("EUREKA_CONTEXT", "")
	v.SetDefault("INSTANCE_ID", "")
	v.SetDefault("INSTANCE_PORT", 0)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("API_URL must be set")
	}

	if !c.Prod {
		return nil
	}

	// Production instances register with Eureka, so the whole block has
	// to be present before startup continues.
	missing := map[string]bool{
		"EUREKA_SERVER":        c.EurekaServer == "",
		"EUREKA_AUTH_USER":     c.EurekaAuthUser == "",
		"EUREKA_AUTH_PASSWORD": c.EurekaAuthPassword == "",
		"EUREKA_CONTEXT":       c.EurekaContext == "",
		"INSTANCE_ID":          c.InstanceID == "",
		"INSTANCE_PORT":        c.InstancePort == 0,
	}

	var names []string
	for name, isMissing := range missing {
		if isMissing {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	return fmt.Errorf("Eureka values are not valid. missing: %s", strings.Join(names, ", "))
}
