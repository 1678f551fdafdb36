package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/pflag"
)

// stubConfig implements Configurable for testing
type stubConfig struct {
	Device     string
	LoadCalled bool
	LoadError  error
}

func (s *stubConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.Device, "device", "", "Input device")
}

func (s *stubConfig) LoadConfigWithFlagSet(fs *pflag.FlagSet) error {
	s.LoadCalled = true
	return s.LoadError
}

// stubHandler implements CommandHandler for testing
type stubHandler struct {
	StartCalled bool
	StartError  error
}

func (s *stubHandler) Start(config Configurable) error {
	s.StartCalled = true
	return s.StartError
}

func TestParseArgsStandard_Version(t *testing.T) {
	cli := NewBaseCLI(os.Stdout, os.Stderr)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg := &stubConfig{}
	cmdArgs, err := cli.ParseArgsStandardWithFlagSet([]string{"--version"}, func() Configurable { return cfg }, fs)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cmdArgs.Command != "version" {
		t.Errorf("Expected command 'version', got '%s'", cmdArgs.Command)
	}

	if cfg.LoadCalled {
		t.Error("Config should not be loaded for version command")
	}
}

func TestParseArgsStandard_Start(t *testing.T) {
	cli := NewBaseCLI(os.Stdout, os.Stderr)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg := &stubConfig{}
	cmdArgs, err := cli.ParseArgsStandardWithFlagSet([]string{"--device", "/dev/input/event0"}, func() Configurable { return cfg }, fs)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cmdArgs.Command != "start" {
		t.Errorf("Expected command 'start', got '%s'", cmdArgs.Command)
	}

	if cfg.Device != "/dev/input/event0" {
		t.Errorf("Expected device '/dev/input/event0', got '%s'", cfg.Device)
	}

	if !cfg.LoadCalled {
		t.Error("Config should have been loaded for start command")
	}
}

func TestParseArgsStandard_LoadError(t *testing.T) {
	cli := NewBaseCLI(os.Stdout, os.Stderr)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg := &stubConfig{LoadError: errors.New("bad config")}
	_, err := cli.ParseArgsStandardWithFlagSet(nil, func() Configurable { return cfg }, fs)
	if err == nil {
		t.Fatal("Expected error from failed config load")
	}
}

func TestExecute_Start(t *testing.T) {
	cli := NewBaseCLI(os.Stdout, os.Stderr)
	handler := &stubHandler{}

	err := cli.Execute(&CommandArgs{Command: "start", Config: &stubConfig{}}, handler)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !handler.StartCalled {
		t.Error("Start should have been called for start command")
	}
}

func TestExecute_StartError(t *testing.T) {
	cli := NewBaseCLI(os.Stdout, os.Stderr)
	handler := &stubHandler{StartError: errors.New("device exploded")}

	err := cli.Execute(&CommandArgs{Command: "start", Config: &stubConfig{}}, handler)
	if err == nil {
		t.Fatal("Expected handler error to propagate")
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	cli := NewBaseCLI(os.Stdout, os.Stderr)
	handler := &stubHandler{}

	err := cli.Execute(&CommandArgs{Command: "unknown", Config: &stubConfig{}}, handler)
	if err == nil {
		t.Fatal("Expected error for unknown command")
	}

	if handler.StartCalled {
		t.Error("Start should not have been called for unknown command")
	}
}
