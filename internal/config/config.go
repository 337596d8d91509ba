package config

import (
	"github.com/caarlos0/env/v8"
)

// Config holds the runtime settings for the ledger server. Defaults match
// the file names the console application has always used, so running with
// no environment at all still works.
type Config struct {
	TransactionsFile string `env:"TRANSACTIONS_FILE" envDefault:"transactions.csv"`
	ProfilesFile     string `env:"PROFILES_FILE" envDefault:"profiles.csv"`
	HTTPPort         string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
}

// ProcessEnvironmentVariables reads the configuration from the environment.
func ProcessEnvironmentVariables() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
