package interceptor

import (
	"fmt"
	"log"
	"sync"

	evdev "github.com/holoplot/go-evdev"

	"github.com/larsks/snaptap/internal/events"
	"github.com/larsks/snaptap/internal/resolver"
	"github.com/larsks/snaptap/internal/sink"
)

// Source is the grabbed physical device as the event loop sees it.
// source.Device satisfies this; tests substitute a fake.
type Source interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// Interceptor pulls events from the grabbed source, threads them through
// the resolver, and forwards the resulting synthetic events to the sink.
// Whether the loop ends via Stop or via a read error, the shutdown release
// sequence runs before Run returns, so no key is left pressed downstream.
type Interceptor struct {
	source   Source
	sink     sink.Sink
	resolver *resolver.Resolver

	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates an Interceptor. It takes ownership of source and sink: both
// are closed when Run returns.
func New(src Source, snk sink.Sink, res *resolver.Resolver) *Interceptor {
	return &Interceptor{
		source:   src,
		sink:     snk,
		resolver: res,
		stopChan: make(chan struct{}),
	}
}

// Stop requests a clean shutdown. Closing the source unblocks the pending
// read, so the loop notices without waiting for another keystroke. Safe to
// call multiple times and from any goroutine.
func (ic *Interceptor) Stop() {
	ic.stopOnce.Do(func() {
		close(ic.stopChan)
		if err := ic.source.Close(); err != nil {
			log.Printf("error closing source device: %v", err)
		}
	})
}

// Run processes events until Stop is called or the source fails. It returns
// nil on a requested shutdown and the read error if the device went away;
// either way the release sequence has run and both devices are closed.
func (ic *Interceptor) Run() error {
	eventChan := make(chan *evdev.InputEvent, 64)
	errorChan := make(chan error, 1)

	go func() {
		for {
			ev, err := ic.source.ReadOne()
			if err != nil {
				select {
				case errorChan <- err:
				case <-ic.stopChan:
				}
				return
			}
			select {
			case eventChan <- ev:
			case <-ic.stopChan:
				return
			}
		}
	}()

	var runErr error

loop:
	for {
		select {
		case <-ic.stopChan:
			break loop
		case err := <-errorChan:
			if !ic.stopping() {
				runErr = fmt.Errorf("%w: %v", ErrDeviceRead, err)
			}
			break loop
		case ev := <-eventChan:
			ic.handleEvent(ev)
		}
	}

	ic.shutdown()
	return runErr
}

// handleEvent resolves one physical event into zero or more synthetic
// events and forwards them in order.
func (ic *Interceptor) handleEvent(ev *evdev.InputEvent) {
	if ev.Type != evdev.EV_KEY {
		if err := ic.sink.Forward(ev); err != nil {
			log.Printf("error forwarding event: %v", err)
		}
		return
	}

	if ev.Value == events.KeyRepeated {
		// The paired-key state machine treats a held key as held;
		// repeats carry no state change worth resolving.
		return
	}

	code := events.KeyCode(ev.Code)
	pressed := ev.Value == events.KeyPressed

	for _, ke := range ic.resolver.Resolve(code, pressed) {
		if err := ic.sink.EmitKey(ke.Code, ke.Pressed); err != nil {
			log.Printf("error emitting %s %s: %v",
				events.KeyName(ke.Code), events.KeyStateName(boolToState(ke.Pressed)), err)
		}
	}
}

// shutdown releases every key still reported as pressed downstream, then
// tears down the sink and the source. This must run on every exit path.
func (ic *Interceptor) shutdown() {
	released := 0
	for _, ke := range ic.resolver.ReleaseAll() {
		if err := ic.sink.EmitKey(ke.Code, ke.Pressed); err != nil {
			log.Printf("error releasing %s during shutdown: %v", events.KeyName(ke.Code), err)
			continue
		}
		released++
	}
	if released > 0 {
		log.Printf("released %d key(s) during shutdown", released)
	}

	if err := ic.sink.Close(); err != nil {
		log.Printf("error closing virtual device: %v", err)
	}
	if err := ic.source.Close(); err != nil {
		log.Printf("error closing source device: %v", err)
	}
}

func (ic *Interceptor) stopping() bool {
	select {
	case <-ic.stopChan:
		return true
	default:
		return false
	}
}

func boolToState(pressed bool) int32 {
	if pressed {
		return events.KeyPressed
	}
	return events.KeyReleased
}
