package picker

import "errors"

var ErrNoKeyboards = errors.New("no keyboards found (do you have permission to read /dev/input?)")
