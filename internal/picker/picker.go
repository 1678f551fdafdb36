package picker

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	evdev "github.com/holoplot/go-evdev"

	"github.com/larsks/snaptap/internal/source"
)

// Entry describes one selectable keyboard device.
type Entry struct {
	Path string
	Name string
}

// ListKeyboards enumerates input devices and returns the ones that look
// like keyboards. Devices we lack permission to open are skipped rather
// than treated as errors; only an empty result is fatal.
func ListKeyboards() ([]Entry, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("cannot list input devices: %w", err)
	}

	var keyboards []Entry
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}

		if source.IsKeyboard(dev) {
			name, err := dev.Name()
			if err != nil || name == "" {
				name = p.Name
			}
			keyboards = append(keyboards, Entry{Path: p.Path, Name: name})
		}

		dev.Close() //nolint:errcheck
	}

	if len(keyboards) == 0 {
		return nil, ErrNoKeyboards
	}

	return keyboards, nil
}

// Prompt lists the keyboards on out and reads the user's selection from in.
func Prompt(in io.Reader, out io.Writer, keyboards []Entry) (Entry, error) {
	for idx, kbd := range keyboards {
		fmt.Fprintf(out, "%d: %s (%s)\n", idx, kbd.Name, kbd.Path)
	}
	fmt.Fprint(out, "Select keyboard: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return Entry{}, fmt.Errorf("failed to read selection: %w", err)
	}

	idx, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid selection %q: %w", strings.TrimSpace(line), err)
	}
	if idx < 0 || idx >= len(keyboards) {
		return Entry{}, fmt.Errorf("selection %d out of range (0-%d)", idx, len(keyboards)-1)
	}

	return keyboards[idx], nil
}
