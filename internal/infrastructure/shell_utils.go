package infrastructure

import "strings"

// shellSpecialChars are characters with special meaning in a shell
const shellSpecialChars = " \t'\"$`\\!*?[](){}|;<>&~#%\n\r"

// ShellEscape escapes a string for safe display in a shell command line.
// This is used for logging purposes only - exec.Command doesn't need this.
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellSpecialChars) {
		return s
	}

	// Use single quotes, but handle embedded single quotes specially
	// Replace ' with '"'"' (end quote, quoted quote, start quote)
	var result strings.Builder
	result.WriteString("'")
	for _, c := range s {
		if c == '\'' {
			result.WriteString(`'"'"'`)
		} else {
			result.WriteRune(c)
		}
	}
	result.WriteString("'")
	return result.String()
}

// ShellEscapeCommand creates a shell-safe command line string for logging.
func ShellEscapeCommand(binary string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, ShellEscape(binary))
	for _, arg := range args {
		parts = append(parts, ShellEscape(arg))
	}
	return strings.Join(parts, " ")
}
