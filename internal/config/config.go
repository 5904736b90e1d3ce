package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/grahms/variantweaver"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds settings shared by all commands.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Unclosed  string `mapstructure:"unclosed"`
	Jobs      int    `mapstructure:"jobs"`
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
	"unclosed":   "unclosed",
	"jobs":       "jobs",
}

// Load reads configuration from, in increasing priority: defaults, a YAML
// config file, VARIANTWEAVER_* environment variables and flags. When path
// is empty, .variantweaver.yaml in the working directory is used if present.
func Load(path string, flags *pflag.FlagSet) (config Config, err error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("unclosed", "ignore")
	v.SetDefault("jobs", 4)

	v.SetEnvPrefix("VARIANTWEAVER")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(".variantweaver")
		v.SetConfigType("yaml")
	}
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return config, fmt.Errorf("cannot read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err = v.BindPFlag(key, f); err != nil {
					return config, fmt.Errorf("cannot bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("cannot decode config: %w", err)
	}
	if config.Jobs < 1 {
		config.Jobs = 1
	}
	return config, nil
}

// Policy maps the "unclosed" setting to the engine policy.
func (c Config) Policy() (variantweaver.UnclosedPolicy, error) {
	switch strings.ToLower(c.Unclosed) {
	case "", "ignore":
		return variantweaver.UnclosedIgnore, nil
	case "audit", "warn":
		return variantweaver.UnclosedAudit, nil
	case "strict", "error":
		return variantweaver.UnclosedStrict, nil
	default:
		return 0, fmt.Errorf("unknown unclosed policy %q (want ignore, audit or strict)", c.Unclosed)
	}
}
