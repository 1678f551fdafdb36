package interceptor

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/larsks/snaptap/internal/cli"
	"github.com/larsks/snaptap/internal/picker"
	"github.com/larsks/snaptap/internal/resolver"
	"github.com/larsks/snaptap/internal/sink"
	"github.com/larsks/snaptap/internal/source"
)

// Handler implements the snaptap command handler
type Handler struct {
	stdin  io.Reader
	stdout io.Writer
}

// NewHandler creates a new snaptap handler
func NewHandler() *Handler {
	return &Handler{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// Start acquires the devices described by the configuration and runs the
// interception loop until a signal or a device error ends it.
func (h *Handler) Start(cfg cli.Configurable) error {
	config, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type: %T", cfg)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if config.ListDevices {
		return h.listDevices()
	}

	pairs, err := resolver.ParsePairSpecs(config.Pairs)
	if err != nil {
		return err
	}
	res, err := resolver.New(pairs)
	if err != nil {
		return err
	}

	devicePath := config.Device
	if devicePath == "" {
		keyboards, err := picker.ListKeyboards()
		if err != nil {
			return err
		}
		selected, err := picker.Prompt(h.stdin, h.stdout, keyboards)
		if err != nil {
			return err
		}
		devicePath = selected.Path
	}

	if config.Settle > 0 {
		// Give the user time to release the Enter that confirmed the
		// selection; a key held across the grab would never see its
		// release on the virtual device.
		log.Printf("waiting %s before grabbing; do not press any keys", config.Settle)
		time.Sleep(config.Settle)
	}

	src, err := source.Open(devicePath)
	if err != nil {
		return err
	}
	log.Printf("grabbed %s (%s)", src.Path(), src.Name())

	snk, err := sink.Create(config.Sink, src.KeyCapabilities())
	if err != nil {
		src.Close() //nolint:errcheck
		return err
	}

	ic := New(src, snk, res)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		sig := <-sigChan
		log.Printf("received %s, shutting down", sig)
		ic.Stop()
	}()

	log.Printf("intercepting with pairs %v; press Ctrl-C to exit", config.Pairs)
	return ic.Run()
}

func (h *Handler) listDevices() error {
	keyboards, err := picker.ListKeyboards()
	if err != nil {
		return err
	}
	for _, kbd := range keyboards {
		fmt.Fprintf(h.stdout, "%s\t%s\n", kbd.Path, kbd.Name)
	}
	return nil
}
