package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/protchange/internal/annotate"
)

const (
	configName      = ".protchange"
	envPrefix       = "PROTCHANGE"
	defaultLogLevel = "warn"
)

// Settings holds the resolved configuration of a run.
type Settings struct {
	Output string `mapstructure:"output"`
	DB     string `mapstructure:"db"`
	Log    struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Annotation struct {
		InfoKey         string `mapstructure:"info_key"`
		StrictDeletions bool   `mapstructure:"strict_deletions"`
	} `mapstructure:"annotation"`
}

type valueKind int

const (
	stringValue valueKind = iota
	boolValue
	levelValue
)

// configKey is a setting that can be stored in the config file, with the
// command-line flag that overrides it.
type configKey struct {
	flag string
	kind valueKind
}

var configKeys = map[string]configKey{
	"output":                      {flag: "output", kind: stringValue},
	"db":                          {flag: "db", kind: stringValue},
	"log.level":                   {flag: "log-level", kind: levelValue},
	"annotation.info_key":         {flag: "info-key", kind: stringValue},
	"annotation.strict_deletions": {flag: "strict-deletions", kind: boolValue},
}

func knownKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookupConfigKey(key string) (configKey, error) {
	k, ok := configKeys[key]
	if !ok {
		return configKey{}, fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(knownKeys(), ", "))
	}
	return k, nil
}

// parseConfigValue converts a command-line value to the type stored for key.
func parseConfigValue(key, value string) (interface{}, error) {
	k, err := lookupConfigKey(key)
	if err != nil {
		return nil, err
	}

	switch k.kind {
	case boolValue:
		switch strings.ToLower(value) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
		return nil, fmt.Errorf("%s expects true or false, got %q", key, value)
	case levelValue:
		if _, err := zapcore.ParseLevel(value); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	if key == "annotation.info_key" && value == "" {
		return nil, fmt.Errorf("%s must not be empty", key)
	}
	return value, nil
}

// initConfig loads ~/.protchange.yaml (or cfgFile), PROTCHANGE_* environment
// variables and the flags of cmd into viper.
func initConfig(cmd *cobra.Command, cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	for key, k := range configKeys {
		if f := cmd.Flags().Lookup(k.flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", k.flag, err)
			}
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("output", "")
	viper.SetDefault("db", "")
	viper.SetDefault("log.level", defaultLogLevel)
	viper.SetDefault("annotation.info_key", annotate.DefaultInfoKey)
	viper.SetDefault("annotation.strict_deletions", false)
}

func loadSettings() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if s.Annotation.InfoKey == "" {
		return nil, fmt.Errorf("annotation.info_key must not be empty")
	}
	return &s, nil
}

// newLogger builds a console logger writing to w at the given level.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
