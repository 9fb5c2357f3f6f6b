package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by the CLI.
const EnvPrefix = "CLAIMFORM"

// Config contains the settings shared by every command.
type Config struct {
	Messages  []string `mapstructure:"messages"`
	Mappings  string   `mapstructure:"mappings"`
	Root      string   `mapstructure:"root"`
	Debug     bool     `mapstructure:"debug"`
	LogLevel  string   `mapstructure:"log-level"`
	LogFormat string   `mapstructure:"log-format"`
}

// LoadConfig merges, by increasing priority, the config file, CLAIMFORM_*
// environment variables and the flags that were set explicitly.
// A missing config file is only an error when path was given.
func LoadConfig(v *viper.Viper, path string, flags *pflag.FlagSet) (Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("claimform")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Messages = splitList(cfg.Messages)
	return cfg, nil
}

// splitList accepts both repeated values and a single comma separated
// value, as environment variables carry lists that way.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
