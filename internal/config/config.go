// Package config loads studycentre settings from an optional YAML file,
// STUDYCENTRE_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, with dots in keys
// replaced by underscores (STUDYCENTRE_SERVER_ADDR).
const EnvPrefix = "STUDYCENTRE"

type Config struct {
	Env        string       `mapstructure:"env" validate:"oneof=development production"`
	DBPath     string       `mapstructure:"db_path"`
	ContentDir string       `mapstructure:"content_dir"`
	Learner    string       `mapstructure:"learner" validate:"max=64"`
	Quiz       QuizConfig   `mapstructure:"quiz"`
	Server     ServerConfig `mapstructure:"server"`
	Log        LogConfig    `mapstructure:"log"`
}

type QuizConfig struct {
	PassThreshold int `mapstructure:"pass_threshold" validate:"min=1,max=100"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr" validate:"required"`
	SessionTTL     time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
	AllowedOrigins []string      `mapstructure:"allowed_origins" validate:"min=1"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("db_path", "")
	v.SetDefault("content_dir", "")
	v.SetDefault("learner", "")
	v.SetDefault("quiz.pass_threshold", 80)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_ttl", 2*time.Hour)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load reads configuration. When path is empty, studycentre.yaml is looked
// up in the working directory and $XDG_CONFIG_HOME/studycentre; a missing
// file is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("studycentre")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateStruct(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "studycentre"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "studycentre"), nil
}
