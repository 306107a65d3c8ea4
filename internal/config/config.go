// Package config loads the reference CLI's settings from the environment,
// with an optional .env file for local development.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	ClientID     string   `env:"LOGIN_CLIENT_ID,required"`
	ClientSecret string   `env:"LOGIN_CLIENT_SECRET"`
	Scopes       []string `env:"LOGIN_SCOPES" envSeparator:" " envDefault:"openid email profile"`
	AuthURL      string   `env:"LOGIN_AUTH_URL" envDefault:"https://accounts.google.com/o/oauth2/auth"`
	TokenURL     string   `env:"LOGIN_TOKEN_URL" envDefault:"https://oauth2.googleapis.com/token"`
	// EmailURL, when set, switches the identity query to the legacy
	// URL-encoded email endpoint instead of the structured userinfo API.
	EmailURL     string `env:"LOGIN_EMAIL_URL"`
	StorePath    string `env:"LOGIN_STORE_PATH" envDefault:"login-accounts.db"`
	CallbackAddr string `env:"LOGIN_CALLBACK_ADDR" envDefault:"127.0.0.1:0"`
}

func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env file is fine

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "[config.Load] env.Parse")
	}
	return cfg, nil
}
