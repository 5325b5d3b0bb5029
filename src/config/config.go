package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
	Trading         TradingConfig        `mapstructure:"trading"`
	AWS             AWSConfig            `mapstructure:"aws"`
}

type ServiceConfig struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"logLevel"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	// PasswordSecretID, when set, overrides Password with the value fetched
	// from AWS Secrets Manager.
	PasswordSecretID string `mapstructure:"passwordSecretId"`
}

type ExternalClientConfig struct {
	Quotes QuotesConfig `mapstructure:"quotes"`
}

type QuotesConfig struct {
	BaseURL        string `mapstructure:"baseUrl"`
	APIKey         string `mapstructure:"apiKey"`
	APIKeySecretID string `mapstructure:"apiKeySecretId"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
	MaxRetries     int    `mapstructure:"maxRetries"`
}

type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwtSecret"`
	TokenTTLMinutes int    `mapstructure:"tokenTTLMinutes"`
}

type TradingConfig struct {
	// StartingCash is the cash balance granted to every new account,
	// as a decimal string.
	StartingCash string `mapstructure:"startingCash"`
	Currency     string `mapstructure:"currency"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

func LoadConfig(path, env string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	if env == "" {
		viper.SetConfigName("appsettings")
	} else {
		viper.SetConfigName("appsettings." + env)
	}
	viper.SetConfigType("yaml")

	viper.SetDefault("service.port", "8000")
	viper.SetDefault("service.logLevel", "info")
	viper.SetDefault("externalClients.quotes.timeoutSeconds", 10)
	viper.SetDefault("externalClients.quotes.maxRetries", 3)
	viper.SetDefault("auth.tokenTTLMinutes", 60)
	viper.SetDefault("trading.startingCash", "10000.00")
	viper.SetDefault("trading.currency", "USD")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
