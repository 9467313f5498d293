package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/bulb"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/errors"
)

const (
	configName = "settings"
	configType = "yaml"
	envPrefix  = "LIGHTSYNC"

	// EnvConfigFile overrides the config file search paths entirely.
	EnvConfigFile = "LIGHTSYNC_CONFIG"
)

// Defaults applied before the config file and environment are read. The
// backend sections carry no defaults; whichever backend is selected
// validates its own required fields at startup.
const (
	DefaultVRChatIP            = "127.0.0.1"
	DefaultVRChatPort          = 9000
	DefaultMaxUpdatesPerSecond = 5
	DefaultHTTPTimeout         = 30 * time.Second
)

// HomeAssistant holds the home_assistant section.
type HomeAssistant struct {
	EntityID    string `mapstructure:"entity_id"`
	ServerIP    string `mapstructure:"server_ip"`
	ServerPort  int    `mapstructure:"server_port"`
	BearerToken string `mapstructure:"bearer_token"`
}

// Hue holds the hue section.
type Hue struct {
	Bridge   string `mapstructure:"bridge"`
	Username string `mapstructure:"username"`
	LightID  int    `mapstructure:"light_id"`
}

// MQTT holds the mqtt section.
type MQTT struct {
	Broker   string `mapstructure:"broker"`
	Topic    string `mapstructure:"topic"`
	ClientID string `mapstructure:"client_id"`
}

type Config struct {
	VRChatIP            string        `mapstructure:"vrchat_ip"`
	VRChatPort          int           `mapstructure:"vrchat_port"`
	MaxUpdatesPerSecond int           `mapstructure:"max_updates_per_second"`
	BulbService         string        `mapstructure:"bulb_service"`
	LogLevel            string        `mapstructure:"log_level"`
	HTTPTimeout         time.Duration `mapstructure:"http_timeout"`
	HomeAssistant       HomeAssistant `mapstructure:"home_assistant"`
	Hue                 Hue           `mapstructure:"hue"`
	MQTT                MQTT          `mapstructure:"mqtt"`
}

// Load reads configuration from flags, environment, and the settings file,
// then validates it. The file is searched in the working directory,
// ~/.config/vrchat-light-sync, and /etc/vrchat-light-sync unless an
// explicit path is given via --config or LIGHTSYNC_CONFIG.
func Load() (*Config, error) {
	errFactory := errors.New()

	flags := pflag.NewFlagSet("vrchat-light-sync", pflag.ContinueOnError)
	configFlag := flags.String("config", "", "Path to the settings file")
	logLevelFlag := flags.String("log-level", "", "Log level (debug, info, warning, error)")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}

		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("vrchat_ip", DefaultVRChatIP)
	v.SetDefault("vrchat_port", DefaultVRChatPort)
	v.SetDefault("max_updates_per_second", DefaultMaxUpdatesPerSecond)
	v.SetDefault("bulb_service", bulb.ServiceHomeAssistant.String())
	v.SetDefault("log_level", DefaultLogLevel.String())
	v.SetDefault("http_timeout", DefaultHTTPTimeout.String())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := *configFlag
	if configFile == "" {
		configFile = os.Getenv(EnvConfigFile)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vrchat-light-sync")
		v.AddConfigPath("/etc/vrchat-light-sync")
	}

	// A missing file in the search paths is fine; the validation below
	// still catches any required value it would have supplied. An explicit
	// path that cannot be read is an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	if flags.Changed("log-level") {
		v.Set("log_level", *logLevelFlag)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	errFactory := errors.New()

	if c.VRChatIP == "" {
		return errFactory.WithMessage(errors.ErrMissingConfig, "vrchat_ip is required")
	}
	if c.VRChatPort <= 0 {
		return errFactory.WithMessage(errors.ErrMissingConfig, "vrchat_port is required")
	}
	if c.MaxUpdatesPerSecond < 1 {
		return errFactory.WithData(errors.ErrInvalidRate, c.MaxUpdatesPerSecond)
	}
	if !bulb.Service(c.BulbService).IsValid() {
		return errFactory.WithData(errors.ErrUnknownService, c.BulbService)
	}
	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}
