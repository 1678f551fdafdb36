package resolver

import (
	"strings"
	"testing"
)

func TestParsePairSpec(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Pair
		expectedErr string
	}{
		{
			name:     "bare names",
			input:    "A:D",
			expected: Pair{First: keyA, Second: keyD},
		},
		{
			name:     "lowercase",
			input:    "w:s",
			expected: Pair{First: keyW, Second: keyS},
		},
		{
			name:     "KEY_ prefix",
			input:    "KEY_A:KEY_D",
			expected: Pair{First: keyA, Second: keyD},
		},
		{
			name:        "too few parts",
			input:       "A",
			expectedErr: "invalid pair spec",
		},
		{
			name:        "too many parts",
			input:       "A:D:W",
			expectedErr: "invalid pair spec",
		},
		{
			name:        "unknown first key",
			input:       "BOGUS:D",
			expectedErr: "unknown key name: BOGUS",
		},
		{
			name:        "unknown second key",
			input:       "A:BOGUS",
			expectedErr: "unknown key name: BOGUS",
		},
		{
			name:        "same key twice",
			input:       "A:A",
			expectedErr: "two distinct keys",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePairSpec(tt.input)

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

func TestParsePairSpecs(t *testing.T) {
	pairs, err := ParsePairSpecs([]string{"A:D", "W:S"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}

	if _, err := ParsePairSpecs([]string{"A:D", "nope"}); err == nil {
		t.Error("expected error for invalid spec in list")
	}
}

func TestPair_String(t *testing.T) {
	p := Pair{First: keyA, Second: keyD}
	if got := p.String(); got != "A:D" {
		t.Errorf("expected %q, got %q", "A:D", got)
	}
}
