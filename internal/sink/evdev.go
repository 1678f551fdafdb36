package sink

import (
	"fmt"
	"sync"

	evdev "github.com/holoplot/go-evdev"

	"github.com/larsks/snaptap/internal/events"
)

const virtualDeviceName = "snaptap-virtual"

// evdevSink emits events through a uinput device created with go-evdev. The
// device advertises exactly the key capability set of the grabbed physical
// keyboard, and non-key events are forwarded verbatim.
type evdevSink struct {
	dev *evdev.InputDevice

	mu     sync.Mutex
	closed bool
}

type evdevFactory struct{}

func init() {
	if err := Register("evdev", &evdevFactory{}); err != nil {
		panic(err)
	}
}

func (f *evdevFactory) CreateSink(caps []evdev.EvCode) (Sink, error) {
	dev, err := evdev.CreateDevice(
		virtualDeviceName,
		evdev.InputID{
			BusType: 0x03,
			Vendor:  0x4711,
			Product: 0x0815,
			Version: 1,
		},
		map[evdev.EvType][]evdev.EvCode{
			evdev.EV_KEY: caps,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	return &evdevSink{dev: dev}, nil
}

func (s *evdevSink) EmitKey(code events.KeyCode, pressed bool) error {
	value := int32(events.KeyReleased)
	if pressed {
		value = events.KeyPressed
	}

	if err := s.dev.WriteOne(&evdev.InputEvent{
		Type:  evdev.EV_KEY,
		Code:  evdev.EvCode(code),
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to emit key %s: %w", events.KeyName(code), err)
	}

	return s.sync()
}

func (s *evdevSink) Forward(ev *evdev.InputEvent) error {
	return s.dev.WriteOne(ev)
}

func (s *evdevSink) sync() error {
	return s.dev.WriteOne(&evdev.InputEvent{
		Type:  evdev.EV_SYN,
		Code:  evdev.SYN_REPORT,
		Value: 0,
	})
}

func (s *evdevSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return s.dev.Close()
}
