package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tbckr/fwver/internal/output"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string", "1.2.3", "1.2.3"},
		{"red color", "\x1b[31mred\x1b[0m", "red"},
		{"bold", "\x1b[1mbold\x1b[0m", "bold"},
		{"multiple sequences", "\x1b[1m\x1b[31merror\x1b[0m", "error"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, output.StripANSI(tc.input))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "1.2.3-4-gabc1234", "1.2.3-4-gabc1234"},
		{"ansi", "\x1b[2J1.0", "1.0"},
		{"bell and newline", "1.0\a\n", "1.0"},
		{"carriage return", "1.0\rfake", "1.0fake"},
		{"delete", "1.\x7f0", "1.0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, output.Sanitize(tc.input))
		})
	}
}
