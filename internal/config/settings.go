// File: internal/config/settings.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "DRIVESYNC"

	DefaultPushCommand   = "drive push -ignore-name-clashes -no-prompt ."
	DefaultNotifyCommand = `notify-send "$1"`
)

// Setting keys as seen by viper; flags are bound onto these
const (
	KeyConfig        = "config"
	KeyWorkers       = "workers"
	KeyPushCommand   = "push_command"
	KeyNotifyCommand = "notify_command"
	KeyNotify        = "notify"
	KeyTimeout       = "timeout"
	KeyProgress      = "progress"
	KeyDebug         = "debug"
)

// Runtime behaviour of a run, layered flag > DRIVESYNC_* env > default
type Settings struct {
	ConfigFile    string        `mapstructure:"config" validate:"required"`
	Workers       int           `mapstructure:"workers" validate:"gte=0"`
	PushCommand   string        `mapstructure:"push_command" validate:"required"`
	NotifyCommand string        `mapstructure:"notify_command"`
	Notify        bool          `mapstructure:"notify"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Progress      bool          `mapstructure:"progress"`
	Debug         bool          `mapstructure:"debug"`
}

// Creates a viper instance with defaults and environment lookup configured
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyConfig, DefaultFileName)
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyPushCommand, DefaultPushCommand)
	v.SetDefault(KeyNotifyCommand, DefaultNotifyCommand)
	v.SetDefault(KeyNotify, true)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyProgress, false)
	v.SetDefault(KeyDebug, false)

	return v
}

func LoadSettings(v *viper.Viper) (*Settings, error) {
	var settings Settings

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&settings, hook); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}

	settings.PushCommand = strings.TrimSpace(settings.PushCommand)
	settings.NotifyCommand = strings.TrimSpace(settings.NotifyCommand)

	if err := validate.Struct(settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &settings, nil
}
