package source

import (
	"fmt"
	"sync"

	evdev "github.com/holoplot/go-evdev"
)

// Device is an exclusively grabbed physical keyboard. While the grab is
// held the kernel delivers the device's events only to this process.
type Device struct {
	path string
	name string
	dev  *evdev.InputDevice

	mu      sync.Mutex
	grabbed bool
	closed  bool
}

// Open opens the input device at path and places it in exclusive grab mode.
// The device must advertise a keyboard-like key vocabulary.
func Open(path string) (*Device, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDeviceUnavailable, path, err)
	}

	if !IsKeyboard(dev) {
		dev.Close() //nolint:errcheck
		return nil, fmt.Errorf("%w %s: not a keyboard", ErrDeviceUnavailable, path)
	}

	name, err := dev.Name()
	if err != nil {
		name = "unknown keyboard"
	}

	if err := dev.Grab(); err != nil {
		dev.Close() //nolint:errcheck
		return nil, fmt.Errorf("%w %s: %v", ErrExclusiveAccessDenied, path, err)
	}

	return &Device{
		path:    path,
		name:    name,
		dev:     dev,
		grabbed: true,
	}, nil
}

// IsKeyboard reports whether the device looks like a real keyboard: it must
// support EV_KEY and advertise at least KEY_A, KEY_Z, and KEY_SPACE. This
// filters out power buttons, lid switches, and similar single-key devices
// that also live under /dev/input.
func IsKeyboard(dev *evdev.InputDevice) bool {
	var hasA, hasZ, hasSpace bool
	for _, code := range dev.CapableEvents(evdev.EV_KEY) {
		switch code {
		case evdev.KEY_A:
			hasA = true
		case evdev.KEY_Z:
			hasZ = true
		case evdev.KEY_SPACE:
			hasSpace = true
		}
	}
	return hasA && hasZ && hasSpace
}

// Path returns the device node path.
func (d *Device) Path() string {
	return d.path
}

// Name returns the device's advertised name.
func (d *Device) Name() string {
	return d.name
}

// KeyCapabilities returns the EV_KEY codes the device can generate. The
// virtual sink advertises the same set so it can re-emit anything the
// physical keyboard produces.
func (d *Device) KeyCapabilities() []evdev.EvCode {
	return d.dev.CapableEvents(evdev.EV_KEY)
}

// ReadOne blocks until the next event arrives. It returns an error once the
// device is closed or disconnects, which is how the event loop learns to
// shut down.
func (d *Device) ReadOne() (*evdev.InputEvent, error) {
	return d.dev.ReadOne()
}

// Close releases the exclusive grab and closes the device node. It is safe
// to call multiple times and from a goroutine other than the reader; closing
// unblocks a pending ReadOne.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if d.grabbed {
		if err := d.dev.Ungrab(); err != nil {
			// The grab dies with the fd anyway; nothing to do but
			// report it.
			d.dev.Close() //nolint:errcheck
			return fmt.Errorf("failed to ungrab %s: %w", d.path, err)
		}
		d.grabbed = false
	}

	return d.dev.Close()
}
