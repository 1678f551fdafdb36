package picker

import (
	"bytes"
	"strings"
	"testing"
)

var testKeyboards = []Entry{
	{Path: "/dev/input/event0", Name: "AT Translated Set 2 keyboard"},
	{Path: "/dev/input/event5", Name: "USB gaming keyboard"},
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Entry
		expectedErr string
	}{
		{
			name:     "first entry",
			input:    "0\n",
			expected: testKeyboards[0],
		},
		{
			name:     "second entry",
			input:    "1\n",
			expected: testKeyboards[1],
		},
		{
			name:     "surrounding whitespace",
			input:    " 1 \n",
			expected: testKeyboards[1],
		},
		{
			name:        "not a number",
			input:       "abc\n",
			expectedErr: "invalid selection",
		},
		{
			name:        "negative index",
			input:       "-1\n",
			expectedErr: "out of range",
		},
		{
			name:        "index too large",
			input:       "2\n",
			expectedErr: "out of range",
		},
		{
			name:        "empty input",
			input:       "",
			expectedErr: "failed to read selection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Prompt(strings.NewReader(tt.input), &out, testKeyboards)

			if tt.expectedErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.expectedErr)
				}
				if !strings.Contains(err.Error(), tt.expectedErr) {
					t.Errorf("expected error containing %q, got %q", tt.expectedErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPrompt_ListsDevices(t *testing.T) {
	var out bytes.Buffer
	_, err := Prompt(strings.NewReader("0\n"), &out, testKeyboards)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	listing := out.String()
	for _, kbd := range testKeyboards {
		if !strings.Contains(listing, kbd.Name) {
			t.Errorf("expected listing to contain %q", kbd.Name)
		}
		if !strings.Contains(listing, kbd.Path) {
			t.Errorf("expected listing to contain %q", kbd.Path)
		}
	}
	if !strings.Contains(listing, "Select keyboard:") {
		t.Error("expected listing to contain selection prompt")
	}
}
