package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", "''"},
		{"plain", "croxz_bridge.py", "croxz_bridge.py"},
		{"url unquoted", "https://example.com/a.zip", "https://example.com/a.zip"},
		{"space", "my file", "'my file'"},
		{"query string", "https://example.com/watch?v=a&b=c", "'https://example.com/watch?v=a&b=c'"},
		{"single quote", "it's", `'it'"'"'s'`},
		{"dollar", "$HOME", "'$HOME'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShellEscape(tt.input))
		})
	}
}

func TestShellEscapeCommand(t *testing.T) {
	assert.Equal(t,
		"python3 bridge.py extract 'https://example.com/watch?v=a'",
		ShellEscapeCommand("python3", "bridge.py", "extract", "https://example.com/watch?v=a"))
}
