package errors

import (
	"strings"
	"testing"
)

func TestValidateSelectorList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"single", "Jan-21", false},
		{"list with blanks", "Jan-21, ,Mar-21", false},
		{"unicode label", "Région Nord", false},

		{"control char", "Jan\x01-21", true},
		{"newline", "Jan-21,\nFeb-21", false}, // trimmed away
		{"embedded tab", "Jan\t21", true},
		{"too long", strings.Repeat("x", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelectorList(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSelectorList(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", GetCode(err))
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/chart.svg", false},
		{"absolute", "/tmp/chart.svg", false},
		{"empty", "", true},
		{"null byte", "chart\x00.svg", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
