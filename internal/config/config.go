package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Payment  *PaymentConfig  `mapstructure:"payment"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// PaymentConfig carries the payment processor credentials and the
// environment capability flags consumed by the sponsorship service.
// AllowSandboxAutoComplete must stay false on production deployments
// unless simulated completions are explicitly wanted there.
type PaymentConfig struct {
	SecretKey                string `mapstructure:"secret_key"`
	WebhookSecret            string `mapstructure:"webhook_secret"`
	SuccessURL               string `mapstructure:"success_url"`
	CancelURL                string `mapstructure:"cancel_url"`
	AllowSandboxAutoComplete bool   `mapstructure:"allow_sandbox_autocomplete"`
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)

	viper.SetEnvPrefix("CLUBSPHERE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return conf, nil
}
