package sink

import (
	evdev "github.com/holoplot/go-evdev"

	"github.com/larsks/snaptap/internal/events"
)

// Sink is a virtual input device that re-emits the corrected event stream.
// Implementations must deliver events in the order the methods are called;
// the mutual-exclusion guarantee depends on a release never overtaking the
// press that follows it.
type Sink interface {
	// EmitKey sends a single key state change followed by a
	// synchronization marker, so downstream consumers observe the change
	// atomically.
	EmitKey(code events.KeyCode, pressed bool) error

	// Forward passes a non-key event (synchronization markers, scan
	// codes) through unmodified. Implementations that cannot represent
	// the event may drop it.
	Forward(ev *evdev.InputEvent) error

	// Close destroys the virtual device. Safe to call multiple times.
	Close() error
}

// Factory creates a sink advertising the given key capability set.
type Factory interface {
	CreateSink(caps []evdev.EvCode) (Sink, error)
}
