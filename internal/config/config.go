// Package config loads settings from an optional YAML file, EXAMPREP_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "EXAMPREP_"

// Config holds the runtime settings shared by every command.
type Config struct {
	DB          string `koanf:"db" validate:"required"`
	Addr        string `koanf:"addr" validate:"required"`
	Log         string `koanf:"log" validate:"oneof=dev prod test"`
	Extractor   string `koanf:"extractor" validate:"oneof=native pdftotext"`
	Repos       string `koanf:"repos" validate:"required"`
	MaxUploadMB int64  `koanf:"max_upload_mb" validate:"min=1"`
}

// RegisterFlags adds the configuration flags, with their defaults, to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a YAML config file")
	flags.String("db", "questions.db", "path to the SQLite database file")
	flags.String("addr", ":8080", "address the web UI listens on")
	flags.String("log", "dev", "log mode (dev|prod|test)")
	flags.String("extractor", "native", "PDF text extractor (native|pdftotext)")
	flags.String("repos", "repos", "directory git sources are cloned into")
	flags.Int64("max_upload_mb", 32, "largest accepted upload in megabytes")
}

// Load merges the config file named by the --config flag (or EXAMPREP_CONFIG),
// the environment and the parsed flags, then validates the result.
func Load(flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	path, _ := flags.GetString("config")
	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	// Flags override earlier layers only when set explicitly; defaults fill
	// the keys nothing else provided.
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
