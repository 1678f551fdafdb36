package sink

import (
	"fmt"
	"sync"

	"github.com/bendahl/uinput"
	evdev "github.com/holoplot/go-evdev"

	"github.com/larsks/snaptap/internal/events"
)

const uinputDevice = "/dev/uinput"

// uinputSink emits events through a bendahl/uinput virtual keyboard. The
// device advertises the full uinput key range rather than the physical
// keyboard's capability set, and non-key events are dropped: the library
// only speaks key presses. Each KeyDown/KeyUp is followed by its own
// synchronization report.
type uinputSink struct {
	kbd uinput.Keyboard

	mu     sync.Mutex
	closed bool
}

type uinputFactory struct{}

func init() {
	if err := Register("uinput", &uinputFactory{}); err != nil {
		panic(err)
	}
}

func (f *uinputFactory) CreateSink(caps []evdev.EvCode) (Sink, error) {
	kbd, err := uinput.CreateKeyboard(uinputDevice, []byte(virtualDeviceName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}
	return &uinputSink{kbd: kbd}, nil
}

func (s *uinputSink) EmitKey(code events.KeyCode, pressed bool) error {
	var err error
	if pressed {
		err = s.kbd.KeyDown(int(code))
	} else {
		err = s.kbd.KeyUp(int(code))
	}
	if err != nil {
		return fmt.Errorf("failed to emit key %s: %w", events.KeyName(code), err)
	}
	return nil
}

func (s *uinputSink) Forward(ev *evdev.InputEvent) error {
	// Not representable through this driver.
	return nil
}

func (s *uinputSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return s.kbd.Close()
}
