package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configurable represents a type that can be configured via flags and config files.
type Configurable interface {
	// AddFlags should add command-line flags to the provided FlagSet
	AddFlags(fs *pflag.FlagSet)
}

// Loader loads configuration with the precedence
// defaults < config file < explicitly set flags.
type Loader struct {
	configFile string
	defaults   map[string]any
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{
		defaults: make(map[string]any),
	}
}

// SetConfigFile sets the configuration file path. An empty path means no
// config file is read and only defaults and flags apply.
func (l *Loader) SetConfigFile(configFile string) {
	l.configFile = configFile
}

// SetDefault sets a default value for a configuration key.
func (l *Loader) SetDefault(key string, value any) {
	l.defaults[key] = value
}

// SetDefaults sets multiple default values at once.
func (l *Loader) SetDefaults(defaults map[string]any) {
	for key, value := range defaults {
		l.defaults[key] = value
	}
}

// LoadConfigWithFlagSet populates config, which must be a pointer to a
// struct with mapstructure tags. Only flags the user explicitly set
// override the config file.
func (l *Loader) LoadConfigWithFlagSet(config any, fs *pflag.FlagSet) error {
	v := viper.New()

	for key, value := range l.defaults {
		v.SetDefault(key, value)
	}

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w %s: %v", ErrConfigFileRead, l.configFile, err)
		}
	}

	fs.Visit(func(flag *pflag.Flag) {
		// Flag names map to viper keys with hyphens as underscores,
		// e.g. --list-devices -> list_devices.
		viperKey := strings.ReplaceAll(flag.Name, "-", "_")

		switch flag.Value.Type() {
		case "bool":
			if val, err := strconv.ParseBool(flag.Value.String()); err == nil {
				v.Set(viperKey, val)
			} else {
				v.Set(viperKey, flag.Value.String())
			}
		case "stringSlice":
			if sliceFlag, ok := flag.Value.(pflag.SliceValue); ok {
				v.Set(viperKey, sliceFlag.GetSlice())
			} else {
				v.Set(viperKey, flag.Value.String())
			}
		default:
			// Strings, durations, and numbers round-trip through
			// their string form; the decode hooks below take care
			// of conversion.
			v.Set(viperKey, flag.Value.String())
		}
	})

	if err := v.Unmarshal(config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return nil
}
