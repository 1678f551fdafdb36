package resolver

import (
	"log"
	"sort"

	"github.com/larsks/snaptap/internal/events"
)

// KeyEvent is a single synthetic key state change to forward downstream.
type KeyEvent struct {
	Code    events.KeyCode
	Pressed bool
}

// pairState tracks the runtime state of one key pair. Only one member of a
// pair is ever reported as pressed downstream (the active key); the press
// order stack decides which member to restore when the active key is
// released while the other is still physically held.
type pairState struct {
	first  events.KeyCode
	second events.KeyCode

	held      map[events.KeyCode]bool
	order     []events.KeyCode // most recent press last
	active    events.KeyCode
	hasActive bool
}

// Resolver decides, for each incoming physical key event, which synthetic
// events to emit so that no pair has both members held at the same time.
// Keys that belong to no pair pass through unchanged. Resolver does no I/O
// and is not safe for concurrent use; the event loop owns it.
type Resolver struct {
	pairs       []*pairState
	owner       map[events.KeyCode]*pairState
	passthrough map[events.KeyCode]bool
}

// New creates a Resolver for the given set of key pairs.
func New(pairs []Pair) (*Resolver, error) {
	r := &Resolver{
		owner:       make(map[events.KeyCode]*pairState),
		passthrough: make(map[events.KeyCode]bool),
	}

	for _, pair := range pairs {
		if err := pair.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.owner[pair.First]; exists {
			return nil, ErrOverlappingPairs
		}
		if _, exists := r.owner[pair.Second]; exists {
			return nil, ErrOverlappingPairs
		}

		state := &pairState{
			first:  pair.First,
			second: pair.Second,
			held:   make(map[events.KeyCode]bool),
		}
		r.pairs = append(r.pairs, state)
		r.owner[pair.First] = state
		r.owner[pair.Second] = state
	}

	return r, nil
}

// Resolve consumes one physical key state change and returns the synthetic
// events to emit, in order. Key-repeat notifications must be filtered out by
// the caller; a press for an already-held key is treated as a repeat and
// produces no events.
func (r *Resolver) Resolve(code events.KeyCode, pressed bool) []KeyEvent {
	state := r.owner[code]
	if state == nil {
		if pressed {
			r.passthrough[code] = true
		} else {
			delete(r.passthrough, code)
		}
		return []KeyEvent{{Code: code, Pressed: pressed}}
	}

	if pressed {
		return r.resolvePress(state, code)
	}
	return r.resolveRelease(state, code)
}

func (r *Resolver) resolvePress(state *pairState, code events.KeyCode) []KeyEvent {
	if state.held[code] {
		// Already held: a key-repeat. Never re-suppress the other
		// member or duplicate the press.
		return nil
	}

	state.held[code] = true
	state.order = append(state.order, code)

	var out []KeyEvent
	if state.hasActive && state.active != code {
		out = append(out, KeyEvent{Code: state.active, Pressed: false})
	}
	out = append(out, KeyEvent{Code: code, Pressed: true})
	state.active = code
	state.hasActive = true

	return out
}

func (r *Resolver) resolveRelease(state *pairState, code events.KeyCode) []KeyEvent {
	wasHeld := state.held[code]
	delete(state.held, code)
	state.removeFromOrder(code)

	if !state.hasActive || state.active != code {
		// The released key was already suppressed by policy (or was
		// never held); downstream state is unchanged.
		return nil
	}

	out := []KeyEvent{{Code: code, Pressed: false}}
	if !wasHeld {
		log.Printf("pair state for %s was active but not held; correcting", events.KeyName(code))
	}

	if restore, ok := state.topOfOrder(); ok {
		out = append(out, KeyEvent{Code: restore, Pressed: true})
		state.active = restore
	} else {
		state.hasActive = false
	}

	return out
}

// ReleaseAll returns one release event for every key currently reported as
// pressed downstream: the active member of each pair and every held
// pass-through key. All internal state is cleared. This backs the shutdown
// guarantee that no key is ever left stuck after the virtual device goes
// away.
func (r *Resolver) ReleaseAll() []KeyEvent {
	var out []KeyEvent

	for _, state := range r.pairs {
		if state.hasActive {
			out = append(out, KeyEvent{Code: state.active, Pressed: false})
		}
		state.held = make(map[events.KeyCode]bool)
		state.order = nil
		state.hasActive = false
	}

	codes := make([]events.KeyCode, 0, len(r.passthrough))
	for code := range r.passthrough {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		out = append(out, KeyEvent{Code: code, Pressed: false})
	}
	r.passthrough = make(map[events.KeyCode]bool)

	return out
}

// PairedKeys returns the codes of all keys that belong to a pair, in pair
// declaration order. The sink uses this to size its capability set.
func (r *Resolver) PairedKeys() []events.KeyCode {
	keys := make([]events.KeyCode, 0, len(r.pairs)*2)
	for _, state := range r.pairs {
		keys = append(keys, state.first, state.second)
	}
	return keys
}

func (s *pairState) removeFromOrder(code events.KeyCode) {
	kept := s.order[:0]
	for _, c := range s.order {
		if c != code {
			kept = append(kept, c)
		}
	}
	s.order = kept
}

func (s *pairState) topOfOrder() (events.KeyCode, bool) {
	if len(s.order) == 0 {
		return 0, false
	}
	return s.order[len(s.order)-1], true
}
