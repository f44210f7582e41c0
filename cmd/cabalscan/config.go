package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jpl-au/cabalscan"
)

const (
	configName = "cabalscan"
	envPrefix  = "CABALSCAN"

	formatText = "text"
	formatJSON = "json"
)

// settings are resolved with the usual precedence: flags set on the command
// line, then CABALSCAN_* environment variables, then the config file, then
// defaults.
type settings struct {
	Format     string `mapstructure:"format"`
	Digest     string `mapstructure:"digest"`
	MaxSize    int64  `mapstructure:"max_size"`
	Decompress bool   `mapstructure:"decompress"`
	Verbose    bool   `mapstructure:"verbose"`
}

func defaultSettings() settings {
	return settings{
		Format:     formatText,
		Digest:     digestXXH3,
		MaxSize:    cabalscan.DefaultMaxSize,
		Decompress: true,
	}
}

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"format":     "format",
	"digest":     "digest",
	"max_size":   "max-size",
	"decompress": "decompress",
	"verbose":    "verbose",
}

// loadSettings resolves settings. An explicit cfgFile must exist; otherwise
// cabalscan.{yaml,toml,json} is looked up in the working directory and then
// the user config directory, and its absence is not an error. It also
// returns the config file used, if any.
func loadSettings(cfgFile string, flags *pflag.FlagSet) (settings, string, error) {
	v := viper.New()

	d := defaultSettings()
	v.SetDefault("format", d.Format)
	v.SetDefault("digest", d.Digest)
	v.SetDefault("max_size", d.MaxSize)
	v.SetDefault("decompress", d.Decompress)
	v.SetDefault("verbose", d.Verbose)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return settings{}, "", fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return settings{}, "", fmt.Errorf("read config: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, "", fmt.Errorf("parse config: %w", err)
	}
	if err := s.validate(); err != nil {
		return settings{}, "", err
	}
	return s, v.ConfigFileUsed(), nil
}

func (s settings) validate() error {
	switch s.Format {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("invalid format %q: want %s or %s", s.Format, formatText, formatJSON)
	}
	if _, err := digester(s.Digest); err != nil {
		return err
	}
	return nil
}
