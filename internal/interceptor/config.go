package interceptor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"

	"github.com/larsks/snaptap/internal/config"
	"github.com/larsks/snaptap/internal/resolver"
	"github.com/larsks/snaptap/internal/sink"
)

// DefaultPairs is the stock last-pressed-wins policy: the strafe pair and
// the forward/back pair.
var DefaultPairs = []string{"A:D", "W:S"}

const (
	defaultSink   = "evdev"
	defaultSettle = 3 * time.Second
)

type Config struct {
	ConfigFile  string        `mapstructure:"config-file"`
	Device      string        `mapstructure:"device"`
	Pairs       []string      `mapstructure:"pairs"`
	Sink        string        `mapstructure:"sink"`
	Settle      time.Duration `mapstructure:"settle"`
	ListDevices bool          `mapstructure:"list_devices"`
}

func NewConfig() *Config {
	return &Config{
		Pairs:  DefaultPairs,
		Sink:   defaultSink,
		Settle: defaultSettle,
	}
}

func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", defaultConfigFile(), "Config file to use")
	fs.StringVar(&c.Device, "device", c.Device, "Input device to grab (skips the interactive picker)")
	fs.StringSliceVar(&c.Pairs, "pairs", c.Pairs, "Mutually exclusive key pair, e.g. A:D (repeatable)")
	fs.StringVar(&c.Sink, "sink", c.Sink, "Virtual device driver to use")
	fs.DurationVar(&c.Settle, "settle", c.Settle, "How long to wait before grabbing the device")
	fs.BoolVar(&c.ListDevices, "list-devices", false, "List candidate keyboards and exit")
}

func (c *Config) LoadConfig() error {
	return c.LoadConfigWithFlagSet(pflag.CommandLine)
}

func (c *Config) LoadConfigWithFlagSet(fs *pflag.FlagSet) error {
	loader := config.NewLoader()
	loader.SetConfigFile(c.ConfigFile)
	loader.SetDefaults(map[string]any{
		"pairs":  DefaultPairs,
		"sink":   defaultSink,
		"settle": defaultSettle,
	})
	return loader.LoadConfigWithFlagSet(c, fs)
}

func (c *Config) Validate() error {
	if len(c.Pairs) == 0 {
		return fmt.Errorf("at least one key pair is required")
	}
	if _, err := resolver.ParsePairSpecs(c.Pairs); err != nil {
		return err
	}

	known := false
	for _, name := range sink.ListDrivers() {
		if name == c.Sink {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown sink driver %q (available: %v)", c.Sink, sink.ListDrivers())
	}

	if c.Settle < 0 {
		return fmt.Errorf("settle time must not be negative")
	}

	return nil
}

// defaultConfigFile returns the per-user config file path if one exists.
// There is no required configuration; a missing file just means defaults.
func defaultConfigFile() string {
	path := filepath.Join(xdg.ConfigHome, "snaptap", "snaptap.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
