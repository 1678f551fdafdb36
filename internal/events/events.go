package events

import (
	"fmt"
	"strings"
)

// KeyCode identifies a key by its Linux EV_KEY event code.
type KeyCode uint16

// Key state values carried by EV_KEY events (from linux/input.h)
const (
	KeyReleased int32 = 0
	KeyPressed  int32 = 1
	KeyRepeated int32 = 2
)

// Key codes and their conventional names (from linux/input-event-codes.h)
var keyNames = map[KeyCode]string{
	1:   "ESC",
	2:   "1",
	3:   "2",
	4:   "3",
	5:   "4",
	6:   "5",
	7:   "6",
	8:   "7",
	9:   "8",
	10:  "9",
	11:  "0",
	12:  "MINUS",
	13:  "EQUAL",
	14:  "BACKSPACE",
	15:  "TAB",
	16:  "Q",
	17:  "W",
	18:  "E",
	19:  "R",
	20:  "T",
	21:  "Y",
	22:  "U",
	23:  "I",
	24:  "O",
	25:  "P",
	26:  "LEFTBRACE",
	27:  "RIGHTBRACE",
	28:  "ENTER",
	29:  "LEFTCTRL",
	30:  "A",
	31:  "S",
	32:  "D",
	33:  "F",
	34:  "G",
	35:  "H",
	36:  "J",
	37:  "K",
	38:  "L",
	39:  "SEMICOLON",
	40:  "APOSTROPHE",
	41:  "GRAVE",
	42:  "LEFTSHIFT",
	43:  "BACKSLASH",
	44:  "Z",
	45:  "X",
	46:  "C",
	47:  "V",
	48:  "B",
	49:  "N",
	50:  "M",
	51:  "COMMA",
	52:  "DOT",
	53:  "SLASH",
	54:  "RIGHTSHIFT",
	55:  "KPASTERISK",
	56:  "LEFTALT",
	57:  "SPACE",
	58:  "CAPSLOCK",
	97:  "RIGHTCTRL",
	100: "RIGHTALT",
	102: "HOME",
	103: "UP",
	104: "PAGEUP",
	105: "LEFT",
	106: "RIGHT",
	107: "END",
	108: "DOWN",
	109: "PAGEDOWN",
	110: "INSERT",
	111: "DELETE",
	125: "LEFTMETA",
	126: "RIGHTMETA",
}

// codesByName is the reverse of keyNames, built at startup.
var codesByName map[string]KeyCode

func init() {
	codesByName = make(map[string]KeyCode, len(keyNames))
	for code, name := range keyNames {
		codesByName[name] = code
	}
}

// KeyName returns the conventional name for a key code.
func KeyName(code KeyCode) string {
	if name, exists := keyNames[code]; exists {
		return name
	}
	return fmt.Sprintf("KEY_%d", code)
}

// LookupKeyCode resolves a key name to its event code. Names are matched
// case-insensitively and an optional "KEY_" prefix is accepted, so "a",
// "A", and "KEY_A" all resolve to code 30.
func LookupKeyCode(name string) (KeyCode, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.TrimPrefix(normalized, "KEY_")
	code, exists := codesByName[normalized]
	return code, exists
}

// KeyStateName returns a printable name for an EV_KEY event value.
func KeyStateName(value int32) string {
	switch value {
	case KeyReleased:
		return "RELEASED"
	case KeyPressed:
		return "PRESSED"
	case KeyRepeated:
		return "REPEATED"
	default:
		return fmt.Sprintf("UNKNOWN_%d", value)
	}
}
