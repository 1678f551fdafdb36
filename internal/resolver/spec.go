package resolver

import (
	"fmt"
	"strings"

	"github.com/larsks/snaptap/internal/events"
)

// Pair is an unordered pair of key codes that are mutually exclusive under
// the last-pressed-wins policy.
type Pair struct {
	First  events.KeyCode
	Second events.KeyCode
}

// Validate checks that the pair refers to two distinct keys.
func (p Pair) Validate() error {
	if p.First == p.Second {
		return fmt.Errorf("%w: %s", ErrSelfPair, events.KeyName(p.First))
	}
	return nil
}

func (p Pair) String() string {
	return events.KeyName(p.First) + ":" + events.KeyName(p.Second)
}

// ParsePairSpec parses a pair specification string.
// Format: key:key, using key names from linux/input-event-codes.h with an
// optional KEY_ prefix. Example: "A:D" or "KEY_W:KEY_S".
func ParsePairSpec(spec string) (Pair, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return Pair{}, fmt.Errorf("invalid pair spec %q. Expected: key:key", spec)
	}

	first, ok := events.LookupKeyCode(parts[0])
	if !ok {
		return Pair{}, fmt.Errorf("unknown key name: %s", parts[0])
	}
	second, ok := events.LookupKeyCode(parts[1])
	if !ok {
		return Pair{}, fmt.Errorf("unknown key name: %s", parts[1])
	}

	pair := Pair{First: first, Second: second}
	if err := pair.Validate(); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// ParsePairSpecs parses a list of pair specifications.
func ParsePairSpecs(specs []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(specs))
	for _, spec := range specs {
		pair, err := ParsePairSpec(spec)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
