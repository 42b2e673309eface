// Package config loads tool settings from DNSQ_-prefixed environment
// variables, applying defaults and validating the result.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
// The name to look up and the resolver to ask are positional CLI arguments,
// not configuration.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// ResolverPort is the UDP port queries are sent to on the resolver.
	ResolverPort int `koanf:"resolver_port" validate:"required,gte=1,lte=65535"`

	// Timeout is how many seconds to wait for the resolver's reply.
	Timeout uint `koanf:"timeout" validate:"required,gte=1,lte=60"`

	// QueryType is the record type to ask for, as a type mnemonic.
	QueryType string `koanf:"query_type" validate:"required"`
}

// DEFAULT_APP_CONFIG defines the default settings: production logging at
// info level, the standard DNS port, a five second receive timeout, and an
// address (A) query.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:          "prod",
	LogLevel:     "info",
	ResolverPort: 53,
	Timeout:      5,
	QueryType:    "A",
}

// envLoader loads environment variables with the prefix "DNSQ_",
// transforming keys to lowercase without the prefix.
// It is a variable so tests can substitute it.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNSQ_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNSQ_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads default configuration values into the provided Koanf
// instance using the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
